// Package pipeline exports batches of snapshot files with a bounded pool of
// workers sharing one exporter.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"redtrace/internal/diag"
	"redtrace/internal/harfmt"
	"redtrace/internal/snapshot"
	"redtrace/internal/trace"
	"redtrace/internal/txn"
)

// ArchiveExt is the extension of files written into ExportRequest.OutDir.
const ArchiveExt = ".har"

// ExportRequest configures a batch export.
type ExportRequest struct {
	Files []string
	// Exporter is shared by all workers; nil means a default exporter.
	Exporter *harfmt.Exporter
	// Registry resolves note names in snapshots; nil means diag.Default().
	Registry *diag.Registry
	// OutDir receives one <name>.har per input. When empty, Output is used
	// and only a single input is allowed.
	OutDir string
	Output io.Writer
	Jobs   int
	// Progress receives per-file events; nil discards them.
	Progress ProgressSink
	// Counters, when set, is updated as files start and finish.
	Counters *Counters
}

// FileResult describes the outcome for one input.
type FileResult struct {
	File     string
	Output   string // written path, empty when writing to ExportRequest.Output
	PageID   string
	Entries  int
	Problems int // bad notes across all entries
	Timings  Timings
	Err      error
}

// ExportResult lists file results in input order.
type ExportResult struct {
	Files []FileResult
}

// Failed returns the number of files that could not be exported.
func (r ExportResult) Failed() int {
	n := 0
	for _, f := range r.Files {
		if f.Err != nil {
			n++
		}
	}
	return n
}

// Export runs the batch. A failing file produces no output and does not stop
// the others; all failures are returned joined once every file finished.
func Export(ctx context.Context, req *ExportRequest) (ExportResult, error) {
	var result ExportResult
	if req == nil {
		return result, fmt.Errorf("missing export request")
	}
	reqCopy := *req
	req = &reqCopy
	if len(req.Files) == 0 {
		return result, fmt.Errorf("no snapshot files given")
	}
	if req.OutDir == "" {
		if req.Output == nil {
			return result, fmt.Errorf("either an output directory or an output writer is required")
		}
		if len(req.Files) > 1 {
			return result, fmt.Errorf("%d inputs need an output directory", len(req.Files))
		}
	}
	if req.Registry == nil {
		req.Registry = diag.Default()
	}
	if req.Exporter == nil {
		req.Exporter = harfmt.NewExporter(req.Registry, harfmt.Options{})
	}
	if req.Jobs < 1 {
		req.Jobs = 1
	}

	outputs, err := outputPaths(req.OutDir, req.Files)
	if err != nil {
		return result, err
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "export_batch", trace.CurrentSpan(ctx).SpanID)
	span.WithExtra("files", strconv.Itoa(len(req.Files))).WithExtra("jobs", strconv.Itoa(req.Jobs))

	result.Files = make([]FileResult, len(req.Files))
	for i, file := range req.Files {
		result.Files[i].File = file
		emit(req.Progress, Event{File: file, Stage: StageDecode, Status: StatusQueued})
	}
	emit(req.Progress, Event{Stage: StageExport, Status: StatusWorking})
	started := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(req.Jobs)
	for i := range req.Files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			res := &result.Files[i]
			fileCtx := trace.WithSpanContext(gctx, trace.SpanContext{SpanID: span.ID()})
			req.Counters.begin()
			res.Err = exportFile(fileCtx, req, res, outputs[i])
			req.Counters.finish(res.Err)
			// only cancellation stops the batch
			if errors.Is(res.Err, context.Canceled) || errors.Is(res.Err, context.DeadlineExceeded) {
				return res.Err
			}
			return nil
		})
	}
	waitErr := g.Wait()
	if waitErr == nil {
		waitErr = ctx.Err()
	}

	var errs []error
	for i := range result.Files {
		f := &result.Files[i]
		if f.Err == nil && waitErr != nil && f.PageID == "" {
			f.Err = waitErr
		}
		if f.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.File, f.Err))
		}
	}
	err = errors.Join(errs...)

	status := StatusDone
	if err != nil {
		status = StatusError
	}
	emit(req.Progress, Event{Stage: StageExport, Status: status, Err: err, Elapsed: time.Since(started)})
	span.WithExtra("failed", strconv.Itoa(result.Failed())).End(string(status))
	return result, err
}

func exportFile(ctx context.Context, req *ExportRequest, res *FileResult, outPath string) (err error) {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeExport, "file", trace.CurrentSpan(ctx).SpanID)
	span.WithExtra("path", res.File)
	defer func() {
		detail := res.PageID
		if err != nil {
			detail = err.Error()
		}
		span.End(detail)
	}()
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()})

	stage := StageDecode
	run := func(next Stage, fn func() error) error {
		stage = next
		emit(req.Progress, Event{File: res.File, Stage: stage, Status: StatusWorking})
		begin := time.Now()
		ferr := fn()
		res.Timings.Set(stage, time.Since(begin))
		return ferr
	}
	defer func() {
		if err != nil {
			emit(req.Progress, Event{File: res.File, Stage: stage, Status: StatusError, Err: err, Elapsed: res.Timings.Sum(StageDecode, StageExport, StageWrite)})
		} else {
			emit(req.Progress, Event{File: res.File, Stage: stage, Status: StatusDone, Elapsed: res.Timings.Sum(StageDecode, StageExport, StageWrite)})
		}
	}()

	var root *txn.Transaction
	if err := run(StageDecode, func() error {
		doc, err := snapshot.ReadFile(res.File)
		if err != nil {
			return err
		}
		root, err = doc.Resolve(req.Registry)
		return err
	}); err != nil {
		return err
	}

	var data []byte
	if err := run(StageExport, func() error {
		archive, err := req.Exporter.Build(ctx, root)
		if err != nil {
			return err
		}
		data, err = req.Exporter.Encode(archive)
		if err != nil {
			return err
		}
		res.PageID = archive.Log.Pages[0].ID
		res.Entries = len(archive.Log.Entries)
		res.Problems = countProblems(req.Registry, root)
		return nil
	}); err != nil {
		return err
	}

	return run(StageWrite, func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if outPath == "" {
			_, err := req.Output.Write(data)
			return err
		}
		if err := snapshot.WriteAtomic(outPath, data); err != nil {
			return err
		}
		res.Output = outPath
		return nil
	})
}

// countProblems counts bad notes on the root and its direct links.
func countProblems(reg *diag.Registry, root *txn.Transaction) int {
	n := len(root.NotesAt(reg, diag.SevBad))
	for _, l := range root.Linked {
		n += len(l.NotesAt(reg, diag.SevBad))
	}
	return n
}

// outputPaths maps inputs to <outDir>/<name>.har; inputs that would collide
// are rejected before any work starts.
func outputPaths(outDir string, files []string) ([]string, error) {
	out := make([]string, len(files))
	if outDir == "" {
		return out, nil
	}
	seen := make(map[string]string, len(files))
	for i, file := range files {
		base := filepath.Base(file)
		name := strings.TrimSuffix(base, filepath.Ext(base)) + ArchiveExt
		path := filepath.Join(outDir, name)
		if prev, dup := seen[path]; dup {
			return nil, fmt.Errorf("%s and %s would both be written to %s", prev, file, path)
		}
		seen[path] = file
		out[i] = path
	}
	return out, nil
}
