package harfmt

import (
	"context"
	"fmt"

	"redtrace/internal/diag"
	"redtrace/internal/trace"
	"redtrace/internal/txn"
)

const (
	// subrequestSeverity selects which notes of a subrequest are listed.
	subrequestSeverity = diag.SevBad
	// subrequestNoteDepth is how many subrequest levels contribute notes.
	subrequestNoteDepth = 1
)

func (e *Exporter) buildMessages(ctx context.Context, t *txn.Transaction, parent uint64) ([]MessageJSON, error) {
	tracer := trace.FromContext(ctx)
	out := make([]MessageJSON, 0, len(t.Notes))
	for i, n := range t.Notes {
		def, summary, err := e.render(t, n)
		if err != nil {
			return nil, fmt.Errorf("note %d: %w", i, err)
		}
		subs, err := e.subrequestMessages(n.Subrequest)
		if err != nil {
			return nil, fmt.Errorf("note %d (%s): subrequest: %w", i, n.Code.Name(), err)
		}
		trace.Point(tracer, trace.ScopeNote, "note", n.Code.Name(), parent)
		out = append(out, MessageJSON{
			Subject:     n.Subject,
			Category:    def.Category.String(),
			Level:       def.Severity.String(),
			Summary:     summary,
			Subrequests: subs,
		})
	}
	return out, nil
}

// subrequestMessages lists the notes of sub that match subrequestSeverity.
// The result is never nil.
func (e *Exporter) subrequestMessages(sub *txn.Transaction) ([]SubMessageJSON, error) {
	out := []SubMessageJSON{}
	level := []*txn.Transaction{}
	if sub != nil {
		level = append(level, sub)
	}
	for depth := 0; depth < subrequestNoteDepth; depth++ {
		var next []*txn.Transaction
		for _, s := range level {
			for i, n := range s.Notes {
				def, ok := e.reg.Lookup(n.Code)
				if !ok {
					return nil, unknownCode(s, i, n)
				}
				if def.Severity != subrequestSeverity {
					continue
				}
				_, summary, err := e.render(s, n)
				if err != nil {
					return nil, fmt.Errorf("note %d: %w", i, err)
				}
				out = append(out, SubMessageJSON{
					Subject:  n.Subject,
					Category: def.Category.String(),
					Level:    def.Severity.String(),
					Summary:  summary,
				})
				if n.Subrequest != nil {
					next = append(next, n.Subrequest)
				}
			}
		}
		level = next
	}
	return out, nil
}

func (e *Exporter) render(t *txn.Transaction, n txn.Note) (diag.Definition, string, error) {
	def, ok := e.reg.Lookup(n.Code)
	if !ok {
		return diag.Definition{}, "", unknownCode(t, -1, n)
	}
	summary, err := e.reg.Render(n.Code, n.Vars, e.opts.Lang)
	if err != nil {
		return diag.Definition{}, "", err
	}
	return def, summary, nil
}

func unknownCode(t *txn.Transaction, idx int, n txn.Note) error {
	reason := fmt.Sprintf("note code %d is not registered", n.Code)
	if idx >= 0 {
		reason = fmt.Sprintf("note %d: code %d is not registered", idx, n.Code)
	}
	return txn.Malformed(t, reason, diag.ErrUnknownCode)
}
