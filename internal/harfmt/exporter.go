package harfmt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync/atomic"

	"redtrace/internal/diag"
	"redtrace/internal/trace"
	"redtrace/internal/txn"
)

// maxLinkDepth is how far below the root linked transactions become entries.
// Links of a linked transaction are never followed.
const maxLinkDepth = 1

// Exporter renders transaction trees into archives. One Exporter may be
// shared between goroutines: every Build call gets its own page id.
type Exporter struct {
	reg  *diag.Registry
	opts Options

	// lastPage is the most recently issued page number. Ids are never reused,
	// not even when an export fails.
	lastPage atomic.Uint64
}

// NewExporter creates an exporter over reg. A nil registry means diag.Default().
func NewExporter(reg *diag.Registry, opts Options) *Exporter {
	if reg == nil {
		reg = diag.Default()
	}
	return &Exporter{reg: reg, opts: opts.withDefaults()}
}

// Options returns the effective options, defaults applied.
func (e *Exporter) Options() Options { return e.opts }

func (e *Exporter) nextPageID() string {
	return "page" + strconv.FormatUint(e.lastPage.Add(1), 10)
}

// Build assembles the archive for root without serializing it.
func (e *Exporter) Build(ctx context.Context, root *txn.Transaction) (ArchiveJSON, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeExport, "export", trace.CurrentSpan(ctx).SpanID)

	pageID := e.nextPageID()
	archive, err := e.build(ctx, root, pageID, span.ID())
	if err != nil {
		span.WithExtra("page", pageID).End(err.Error())
		return ArchiveJSON{}, err
	}
	span.WithExtra("entries", strconv.Itoa(len(archive.Log.Entries))).End(pageID)
	return archive, nil
}

func (e *Exporter) build(ctx context.Context, root *txn.Transaction, pageID string, spanID uint64) (ArchiveJSON, error) {
	if root == nil {
		return ArchiveJSON{}, txn.Malformed(nil, "missing root transaction", nil)
	}
	if err := root.CheckLinks(); err != nil {
		return ArchiveJSON{}, err
	}

	members := pageTransactions(root)
	entries := make([]EntryJSON, 0, len(members))
	for i, t := range members {
		if err := ctx.Err(); err != nil {
			return ArchiveJSON{}, err
		}
		entry, err := e.buildEntry(ctx, t, pageID, spanID)
		if err != nil {
			return ArchiveJSON{}, fmt.Errorf("entry %d (%s %s): %w", i, t.Method, t.URI, err)
		}
		entries = append(entries, entry)
	}

	creator := CreatorJSON{Name: e.opts.Creator.Name, Version: e.opts.Creator.Version}
	return ArchiveJSON{
		Log: LogJSON{
			Version: HARVersion,
			Creator: creator,
			Browser: creator,
			Pages: []PageJSON{{
				StartedDateTime: formatTimestamp(root.ReqTS),
				ID:              pageID,
				Title:           "",
				PageTimings:     PageTimingsJSON{OnContentLoad: -1, OnLoad: -1},
			}},
			Entries: entries,
		},
	}, nil
}

// pageTransactions lists root followed by its linked transactions, breadth
// first, down to maxLinkDepth.
func pageTransactions(root *txn.Transaction) []*txn.Transaction {
	out := []*txn.Transaction{root}
	level := out
	for depth := 0; depth < maxLinkDepth; depth++ {
		var next []*txn.Transaction
		for _, t := range level {
			next = append(next, t.Linked...)
		}
		out = append(out, next...)
		level = next
	}
	return out
}

// Encode serializes archive with the configured indentation. HTML characters
// in templates are written as-is.
func (e *Exporter) Encode(archive ArchiveJSON) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if e.opts.Indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", e.opts.Indent))
	}
	if err := enc.Encode(archive); err != nil {
		return nil, fmt.Errorf("failed to encode archive: %w", err)
	}
	return buf.Bytes(), nil
}

// Export builds and serializes the archive for root and writes it to w.
// Nothing is written when building or encoding fails.
func (e *Exporter) Export(ctx context.Context, w io.Writer, root *txn.Transaction) error {
	archive, err := e.Build(ctx, root)
	if err != nil {
		return err
	}
	data, err := e.Encode(archive)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
