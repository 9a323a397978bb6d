package snapshot

import (
	"fmt"
	"math"
	"time"

	"redtrace/internal/diag"
	"redtrace/internal/txn"
)

// Resolve converts the document into a transaction tree, resolving note
// codes against reg. Invariants of the tree itself are left to the exporter.
func (d *Document) Resolve(reg *diag.Registry) (*txn.Transaction, error) {
	if reg == nil {
		reg = diag.Default()
	}
	r := resolver{reg: reg}
	root, err := r.transaction(d.Root, "root")
	if err != nil {
		return nil, err
	}
	// subrequest indexes point into the root's linked list, so notes are
	// wired only after every linked transaction exists
	if err := r.wireNotes(root); err != nil {
		return nil, err
	}
	return root, nil
}

type pendingNote struct {
	owner *txn.Transaction
	note  int
	index int
	where string
}

type resolver struct {
	reg     *diag.Registry
	pending []pendingNote
}

func (r *resolver) transaction(s *Transaction, where string) (*txn.Transaction, error) {
	if s == nil {
		return nil, fmt.Errorf("%s: empty transaction", where)
	}
	t := &txn.Transaction{
		Method:         s.Method,
		URI:            s.URI,
		Version:        s.Version,
		ReqHeaders:     headersIn(s.ReqHeaders),
		Status:         s.Status,
		Phrase:         s.Phrase,
		ResHeaders:     headersIn(s.ResHeaders),
		BodyDecodedLen: s.BodyDecodedLen,
		BodyLen:        s.BodyLen,
		HeaderBytes:    s.HeaderBytes,
	}
	var err error
	if t.ReqTS, err = timeIn(s.ReqTS); err != nil {
		return nil, fmt.Errorf("%s: req_ts: %w", where, err)
	}
	if t.ResTS, err = timeIn(s.ResTS); err != nil {
		return nil, fmt.Errorf("%s: res_ts: %w", where, err)
	}
	if t.ResDoneTS, err = timeIn(s.ResDoneTS); err != nil {
		return nil, fmt.Errorf("%s: res_done_ts: %w", where, err)
	}

	if len(s.Notes) > 0 {
		t.Notes = make([]txn.Note, len(s.Notes))
	}
	for i, n := range s.Notes {
		def, ok := r.reg.LookupName(n.Code)
		if !ok {
			return nil, fmt.Errorf("%s: note %d: %w: %q", where, i, diag.ErrUnknownCode, n.Code)
		}
		t.Notes[i] = txn.Note{Code: def.Code, Subject: n.Subject, Vars: n.Vars}
		if n.Subrequest != nil {
			r.pending = append(r.pending, pendingNote{
				owner: t, note: i, index: *n.Subrequest,
				where: fmt.Sprintf("%s: note %d", where, i),
			})
		}
	}

	for i, child := range s.Linked {
		c, err := r.transaction(child, fmt.Sprintf("%s.linked[%d]", where, i))
		if err != nil {
			return nil, err
		}
		t.Linked = append(t.Linked, c)
	}
	return t, nil
}

func (r *resolver) wireNotes(root *txn.Transaction) error {
	for _, p := range r.pending {
		if p.index < 0 || p.index >= len(root.Linked) {
			return fmt.Errorf("%s: subrequest %d out of range (root has %d linked)", p.where, p.index, len(root.Linked))
		}
		p.owner.Notes[p.note].Subrequest = root.Linked[p.index]
	}
	return nil
}

func headersIn(in []Header) txn.Headers {
	if len(in) == 0 {
		return nil
	}
	out := make(txn.Headers, len(in))
	for i, h := range in {
		out[i] = txn.Header{Name: h[0], Value: h[1]}
	}
	return out
}

// timeIn converts float unix seconds to a UTC time with microsecond precision.
func timeIn(secs float64) (time.Time, error) {
	if math.IsNaN(secs) || math.IsInf(secs, 0) {
		return time.Time{}, fmt.Errorf("invalid timestamp %v", secs)
	}
	micros := math.Round(secs * 1e6)
	if micros >= math.MaxInt64 || micros < math.MinInt64 {
		return time.Time{}, fmt.Errorf("timestamp %v out of range", secs)
	}
	return time.UnixMicro(int64(micros)).UTC(), nil
}

func timeOut(t time.Time) float64 {
	return float64(t.UnixMicro()) / 1e6
}

// FromTxn converts a transaction tree back into a document. Every note
// subrequest must be one of root's linked transactions.
func FromTxn(root *txn.Transaction) (*Document, error) {
	if root == nil {
		return nil, fmt.Errorf("missing root transaction")
	}
	index := make(map[*txn.Transaction]int, len(root.Linked))
	for i, l := range root.Linked {
		if _, dup := index[l]; !dup {
			index[l] = i
		}
	}
	s, err := fromTxn(root, index, "root", 0)
	if err != nil {
		return nil, err
	}
	return &Document{Schema: SchemaVersion, Root: s}, nil
}

// maxDepth bounds recursion on trees that link back to an ancestor.
const maxDepth = 16

func fromTxn(t *txn.Transaction, index map[*txn.Transaction]int, where string, depth int) (*Transaction, error) {
	if t == nil {
		return nil, fmt.Errorf("%s: empty transaction", where)
	}
	if depth > maxDepth {
		return nil, fmt.Errorf("%s: links nested deeper than %d", where, maxDepth)
	}
	s := &Transaction{
		Method:         t.Method,
		URI:            t.URI,
		Version:        t.Version,
		ReqTS:          timeOut(t.ReqTS),
		ResTS:          timeOut(t.ResTS),
		ResDoneTS:      timeOut(t.ResDoneTS),
		ReqHeaders:     headersOut(t.ReqHeaders),
		Status:         t.Status,
		Phrase:         t.Phrase,
		ResHeaders:     headersOut(t.ResHeaders),
		BodyDecodedLen: t.BodyDecodedLen,
		BodyLen:        t.BodyLen,
		HeaderBytes:    t.HeaderBytes,
	}
	for i, n := range t.Notes {
		out := Note{Code: n.Code.Name(), Subject: n.Subject, Vars: n.Vars}
		if n.Subrequest != nil {
			idx, ok := index[n.Subrequest]
			if !ok {
				return nil, fmt.Errorf("%s: note %d: subrequest is not linked from the root", where, i)
			}
			out.Subrequest = &idx
		}
		s.Notes = append(s.Notes, out)
	}
	for i, l := range t.Linked {
		c, err := fromTxn(l, index, fmt.Sprintf("%s.linked[%d]", where, i), depth+1)
		if err != nil {
			return nil, err
		}
		s.Linked = append(s.Linked, c)
	}
	return s, nil
}

func headersOut(in txn.Headers) []Header {
	out := make([]Header, len(in))
	for i, h := range in {
		out[i] = Header{h.Name, h.Value}
	}
	return out
}
