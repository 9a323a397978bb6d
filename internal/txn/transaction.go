// Package txn holds the analyzed HTTP transaction record handed over by the
// analysis engine. Values are read-only once given to an exporter.
package txn

import (
	"time"

	"redtrace/internal/diag"
)

// Note is a concrete occurrence of a registry definition.
type Note struct {
	Code    diag.Code
	Subject string
	Vars    map[string]any
	// Subrequest points at a linked transaction whose notes give context.
	// It is a reference, not ownership.
	Subrequest *Transaction
}

// Transaction is one analyzed request/response exchange.
type Transaction struct {
	Method string
	URI    string
	// Version is the response protocol version without the "HTTP/" prefix.
	Version string

	ReqTS     time.Time // request sent
	ResTS     time.Time // response headers received
	ResDoneTS time.Time // response body complete

	ReqHeaders Headers

	Status     int
	Phrase     string
	ResHeaders Headers
	// BodyDecodedLen is the body length after content decoding.
	BodyDecodedLen uint64
	// BodyLen is the body length as transferred.
	BodyLen uint64
	// HeaderBytes is the raw response header block length reported by the connection.
	HeaderBytes uint64

	Notes  []Note
	Linked []*Transaction
}

// Elapsed returns the total request duration.
func (t *Transaction) Elapsed() time.Duration { return t.ResDoneTS.Sub(t.ReqTS) }

// Wait returns the time until response headers arrived.
func (t *Transaction) Wait() time.Duration { return t.ResTS.Sub(t.ReqTS) }

// Receive returns the time spent reading the response body.
func (t *Transaction) Receive() time.Duration { return t.ResDoneTS.Sub(t.ResTS) }

// NotesAt returns the notes of t with the given severity, in order.
func (t *Transaction) NotesAt(reg *diag.Registry, sev diag.Severity) []Note {
	if t == nil {
		return nil
	}
	var out []Note
	for _, n := range t.Notes {
		d, ok := reg.Lookup(n.Code)
		if ok && d.Severity == sev {
			out = append(out, n)
		}
	}
	return out
}
