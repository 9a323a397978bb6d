package txn

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"redtrace/internal/diag"
)

func sample(start time.Time) *Transaction {
	return &Transaction{
		Method:    "GET",
		URI:       "http://example.com/",
		Version:   "1.1",
		ReqTS:     start,
		ResTS:     start.Add(120 * time.Millisecond),
		ResDoneTS: start.Add(300 * time.Millisecond),
	}
}

func TestHeadersLookup(t *testing.T) {
	h := Headers{
		{Name: "Content-Type", Value: " text/html "},
		{Name: "Vary", Value: "Accept-Encoding"},
		{Name: "vary", Value: "User-Agent"},
	}
	if v, ok := h.Get("content-type"); !ok || v != "text/html" {
		t.Errorf("Get(content-type) = %q, %v", v, ok)
	}
	if _, ok := h.Get("Location"); ok {
		t.Error("Get(Location) should miss")
	}
	if got, want := h.Values("VARY"), []string{"Accept-Encoding", "User-Agent"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Values(VARY) = %v, want %v", got, want)
	}
	if got, want := (Headers{{Name: "A", Value: "1"}}).Size(), len("A: 1\r\n"); got != want {
		t.Errorf("Size = %d, want %d", got, want)
	}
}

func TestDurations(t *testing.T) {
	tr := sample(time.Unix(1000, 0))
	if tr.Elapsed() != 300*time.Millisecond || tr.Wait() != 120*time.Millisecond || tr.Receive() != 180*time.Millisecond {
		t.Errorf("unexpected durations: %v %v %v", tr.Elapsed(), tr.Wait(), tr.Receive())
	}
}

func TestCheckTimestamps(t *testing.T) {
	base := time.Unix(1000, 0)
	if err := sample(base).CheckTimestamps(); err != nil {
		t.Fatalf("valid transaction rejected: %v", err)
	}

	equal := sample(base)
	equal.ResTS, equal.ResDoneTS = base, base
	if err := equal.CheckTimestamps(); err != nil {
		t.Fatalf("equal timestamps rejected: %v", err)
	}

	early := sample(base)
	early.ResTS = base.Add(-time.Millisecond)
	if err := early.CheckTimestamps(); !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}

	done := sample(base)
	done.ResDoneTS = done.ResTS.Add(-time.Microsecond)
	err := done.CheckTimestamps()
	var me *MalformedInputError
	if !errors.As(err, &me) {
		t.Fatalf("expected *MalformedInputError, got %v", err)
	}
	if me.URI != "http://example.com/" || me.Method != "GET" {
		t.Errorf("unexpected error fields: %+v", me)
	}
}

func TestCheckLinks(t *testing.T) {
	base := time.Unix(1000, 0)

	ok := sample(base)
	ok.Linked = []*Transaction{sample(base), sample(base)}
	if err := ok.CheckLinks(); err != nil {
		t.Fatalf("valid links rejected: %v", err)
	}

	self := sample(base)
	self.Linked = []*Transaction{self}

	back := sample(base)
	child := sample(base)
	child.Linked = []*Transaction{back}
	back.Linked = []*Transaction{child}

	nilLink := sample(base)
	nilLink.Linked = []*Transaction{nil}

	for name, tr := range map[string]*Transaction{"self": self, "back": back, "nil": nilLink} {
		if err := tr.CheckLinks(); !errors.Is(err, ErrMalformedInput) {
			t.Errorf("%s: expected ErrMalformedInput, got %v", name, err)
		}
	}
}

func TestNotesAt(t *testing.T) {
	tr := sample(time.Unix(0, 0))
	tr.Notes = []Note{
		{Code: diag.AgePresent, Subject: "header-age"},
		{Code: diag.INMFull, Subject: "header-etag"},
		{Code: diag.CLCorrect, Subject: "header-content-length"},
		{Code: diag.LMFuture, Subject: "header-last-modified"},
	}
	bad := tr.NotesAt(diag.Default(), diag.SevBad)
	if len(bad) != 2 || bad[0].Code != diag.INMFull || bad[1].Code != diag.LMFuture {
		t.Errorf("NotesAt(bad) = %+v", bad)
	}
	var none *Transaction
	if got := none.NotesAt(diag.Default(), diag.SevBad); got != nil {
		t.Errorf("nil transaction should yield nil, got %v", got)
	}
}
