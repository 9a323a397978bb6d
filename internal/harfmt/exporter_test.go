package harfmt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"redtrace/internal/diag"
	"redtrace/internal/trace"
	"redtrace/internal/txn"
)

var fixtureBase = time.Unix(1300000000, 250000000)

// fixture builds a root with two linked probes. The first probe carries one
// note of every severity.
func fixture() *txn.Transaction {
	inm := &txn.Transaction{
		Method: "GET", URI: "http://example.com/page", Version: "1.1",
		ReqTS:     fixtureBase.Add(2 * time.Second),
		ResTS:     fixtureBase.Add(2*time.Second + 50*time.Millisecond),
		ResDoneTS: fixtureBase.Add(2*time.Second + 60*time.Millisecond),
		ReqHeaders: txn.Headers{
			{Name: "If-None-Match", Value: `"abc"`},
		},
		Status: 200, Phrase: "OK",
		BodyDecodedLen: 100, BodyLen: 100, HeaderBytes: 150,
		Notes: []txn.Note{
			{Code: diag.INMFull, Subject: "header-etag"},
			{Code: diag.CLCorrect, Subject: "header-content-length"},
			{Code: diag.AgePresent, Subject: "header-age", Vars: map[string]any{"age": "3 min"}},
		},
	}
	rng := &txn.Transaction{
		Method: "GET", URI: "http://example.com/page", Version: "1.0",
		ReqTS:     fixtureBase.Add(3 * time.Second),
		ResTS:     fixtureBase.Add(3 * time.Second),
		ResDoneTS: fixtureBase.Add(3 * time.Second),
		Status:    200, Phrase: "OK",
		Notes: []txn.Note{{Code: diag.RangeFull, Subject: "header-accept-ranges"}},
	}
	return &txn.Transaction{
		Method: "GET", URI: "http://example.com/page", Version: "1.1",
		ReqTS:     fixtureBase,
		ResTS:     fixtureBase.Add(120 * time.Millisecond),
		ResDoneTS: fixtureBase.Add(1999*time.Millisecond + 900*time.Microsecond),
		ReqHeaders: txn.Headers{
			{Name: "Host", Value: "example.com"},
			{Name: "Accept-Encoding", Value: "gzip"},
		},
		Status: 301, Phrase: "Moved Permanently",
		ResHeaders: txn.Headers{
			{Name: "Content-Type", Value: "text/html; charset=utf-8"},
			{Name: "Set-Cookie", Value: "a=1"},
			{Name: "Set-Cookie", Value: "b=2"},
			{Name: "Location", Value: "http://example.com/next"},
		},
		BodyDecodedLen: 100, BodyLen: 120, HeaderBytes: 233,
		Notes: []txn.Note{
			{Code: diag.HeaderTooLarge, Subject: "header-set-cookie",
				Vars: map[string]any{"header_name": "Set-Cookie", "header_size": "8 KB"}},
			{Code: diag.INMFull, Subject: "header-etag", Subrequest: inm},
			{Code: diag.VaryAsterisk, Subject: "header-vary"},
		},
		Linked: []*txn.Transaction{inm, rng},
	}
}

func exportString(t *testing.T, e *Exporter, root *txn.Transaction) string {
	t.Helper()
	var buf bytes.Buffer
	if err := e.Export(context.Background(), &buf, root); err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	return buf.String()
}

func decode(t *testing.T, raw string) ArchiveJSON {
	t.Helper()
	var out ArchiveJSON
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, raw)
	}
	return out
}

func TestExportDocument(t *testing.T) {
	e := NewExporter(nil, Options{Creator: Creator{Name: "redtrace", Version: "1.2.3"}})
	raw := exportString(t, e, fixture())
	doc := decode(t, raw)

	if !strings.HasPrefix(raw, "{\n    \"log\": {\n        \"version\": \"1.1\"") {
		t.Errorf("expected four-space indented document, got:\n%.80s", raw)
	}
	if doc.Log.Creator != (CreatorJSON{Name: "redtrace", Version: "1.2.3"}) || doc.Log.Browser != doc.Log.Creator {
		t.Errorf("unexpected creator/browser: %+v %+v", doc.Log.Creator, doc.Log.Browser)
	}
	if len(doc.Log.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(doc.Log.Pages))
	}
	page := doc.Log.Pages[0]
	want := PageJSON{
		StartedDateTime: "2011-03-13T07:06:40.250000Z",
		ID:              "page1",
		PageTimings:     PageTimingsJSON{OnContentLoad: -1, OnLoad: -1},
	}
	if page != want {
		t.Errorf("page = %+v, want %+v", page, want)
	}

	if len(doc.Log.Entries) != 3 {
		t.Fatalf("expected 1+2 entries, got %d", len(doc.Log.Entries))
	}
	for i, entry := range doc.Log.Entries {
		if entry.PageRef != "page1" {
			t.Errorf("entry %d pageref = %q", i, entry.PageRef)
		}
	}
	if got := doc.Log.Entries[1].StartedDateTime; got != "2011-03-13T07:06:42.250000Z" {
		t.Errorf("linked entry started at %q", got)
	}
}

func TestExportEntryFields(t *testing.T) {
	doc := decode(t, exportString(t, NewExporter(nil, Options{}), fixture()))
	entry := doc.Log.Entries[0]

	if entry.Time != 1999 {
		t.Errorf("time = %d, want 1999 (truncated)", entry.Time)
	}
	wantTimings := TimingsJSON{DNS: -1, Connect: -1, Blocked: 0, Send: 0, Wait: 120, Receive: 1879}
	if entry.Timings != wantTimings {
		t.Errorf("timings = %+v, want %+v", entry.Timings, wantTimings)
	}

	req := entry.Request
	if req.Method != "GET" || req.URL != "http://example.com/page" || req.HTTPVersion != "HTTP/1.1" {
		t.Errorf("unexpected request line: %+v", req)
	}
	if req.HeadersSize != -1 || req.BodySize != -1 {
		t.Errorf("request sizes = %d/%d, want -1/-1", req.HeadersSize, req.BodySize)
	}
	if req.Cookies == nil || req.QueryString == nil || len(req.Cookies)+len(req.QueryString) != 0 {
		t.Errorf("cookies/queryString should be empty arrays: %v %v", req.Cookies, req.QueryString)
	}
	if len(req.Headers) != 2 || req.Headers[0].Name != "Host" || req.Headers[1].Name != "Accept-Encoding" {
		t.Errorf("request headers = %+v", req.Headers)
	}

	res := entry.Response
	if res.Status != 301 || res.StatusText != "Moved Permanently" || res.HTTPVersion != "HTTP/1.1" {
		t.Errorf("unexpected status line: %+v", res)
	}
	wantHeaders := []NameValueJSON{
		{"Content-Type", "text/html; charset=utf-8"},
		{"Set-Cookie", "a=1"},
		{"Set-Cookie", "b=2"},
		{"Location", "http://example.com/next"},
	}
	if len(res.Headers) != len(wantHeaders) {
		t.Fatalf("response headers = %+v", res.Headers)
	}
	for i := range wantHeaders {
		if res.Headers[i] != wantHeaders[i] {
			t.Errorf("header %d = %+v, want %+v", i, res.Headers[i], wantHeaders[i])
		}
	}
	wantContent := ContentJSON{Size: 100, Compression: -20, MimeType: "text/html; charset=utf-8"}
	if res.Content != wantContent {
		t.Errorf("content = %+v, want %+v", res.Content, wantContent)
	}
	if res.RedirectURL != "http://example.com/next" {
		t.Errorf("redirectURL = %q", res.RedirectURL)
	}
	if res.HeadersSize != 233 || res.BodySize != 120 {
		t.Errorf("response sizes = %d/%d, want 233/120", res.HeadersSize, res.BodySize)
	}

	probe := doc.Log.Entries[2].Response
	if probe.HTTPVersion != "HTTP/1.0" || probe.Content.MimeType != "" || probe.RedirectURL != "" {
		t.Errorf("unexpected probe response: %+v", probe)
	}
	if len(probe.Headers) != 0 || probe.Headers == nil {
		t.Errorf("probe headers should be an empty array, got %v", probe.Headers)
	}
}

func TestExportMessages(t *testing.T) {
	raw := exportString(t, NewExporter(nil, Options{}), fixture())
	doc := decode(t, raw)
	msgs := doc.Log.Entries[0].Messages

	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	first := msgs[0]
	if first.Subject != "header-set-cookie" || first.Category != "General" || first.Level != "bad" {
		t.Errorf("unexpected message: %+v", first)
	}
	if first.Summary != "The Set-Cookie header is very large (8 KB)." {
		t.Errorf("summary = %q", first.Summary)
	}
	if first.Subrequests == nil || len(first.Subrequests) != 0 {
		t.Errorf("note without subrequest should list [], got %v", first.Subrequests)
	}

	subs := msgs[1].Subrequests
	if len(subs) != 1 {
		t.Fatalf("expected only the bad subrequest note, got %+v", subs)
	}
	if subs[0].Subject != "header-etag" || subs[0].Level != "bad" || subs[0].Category != "Caching" {
		t.Errorf("unexpected subrequest note: %+v", subs[0])
	}

	probeMsgs := doc.Log.Entries[1].Messages
	if len(probeMsgs) != 3 || probeMsgs[2].Summary != "It already been cached for 3 min." {
		t.Errorf("probe messages = %+v", probeMsgs)
	}
	if !strings.Contains(raw, `"subrequests": []`) {
		t.Error("empty subrequests must be serialized as []")
	}
}

func TestExportLinksOneLevelOnly(t *testing.T) {
	root := fixture()
	grandchild := fixture().Linked[1]
	root.Linked[1].Linked = []*txn.Transaction{grandchild}

	doc := decode(t, exportString(t, NewExporter(nil, Options{}), root))
	if len(doc.Log.Entries) != 3 {
		t.Errorf("expected 3 entries, got %d", len(doc.Log.Entries))
	}
}

func TestExportNoLinks(t *testing.T) {
	root := fixture()
	root.Linked = nil
	root.Notes = nil

	doc := decode(t, exportString(t, NewExporter(nil, Options{}), root))
	if len(doc.Log.Entries) != 1 || len(doc.Log.Pages) != 1 {
		t.Fatalf("expected 1 page and 1 entry, got %d/%d", len(doc.Log.Pages), len(doc.Log.Entries))
	}
	if doc.Log.Entries[0].Messages == nil {
		t.Error("_red_messages should be an empty array")
	}
}

func TestExportEpoch(t *testing.T) {
	root := &txn.Transaction{
		Method: "HEAD", URI: "http://example.com/", Version: "1.1",
		ReqTS: time.Unix(0, 0), ResTS: time.Unix(0, 0), ResDoneTS: time.Unix(0, 0),
		Status: 204, Phrase: "No Content",
	}
	doc := decode(t, exportString(t, NewExporter(nil, Options{}), root))
	if got := doc.Log.Pages[0].StartedDateTime; got != "1970-01-01T00:00:00Z" {
		t.Errorf("page startedDateTime = %q", got)
	}
	if got := doc.Log.Entries[0].StartedDateTime; got != "1970-01-01T00:00:00Z" {
		t.Errorf("entry startedDateTime = %q", got)
	}
	if doc.Log.Entries[0].Time != 0 {
		t.Errorf("time = %d, want 0", doc.Log.Entries[0].Time)
	}
}

func TestPageIDsNeverReused(t *testing.T) {
	e := NewExporter(nil, Options{})
	ctx := context.Background()

	first, err := e.Build(ctx, fixture())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	bad := fixture()
	bad.ResTS = bad.ReqTS.Add(-time.Second)
	if _, err := e.Build(ctx, bad); err == nil {
		t.Fatal("expected malformed input error")
	}

	third, err := e.Build(ctx, fixture())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if first.Log.Pages[0].ID != "page1" || third.Log.Pages[0].ID != "page3" {
		t.Errorf("page ids = %s, %s; want page1, page3", first.Log.Pages[0].ID, third.Log.Pages[0].ID)
	}
	for _, entry := range third.Log.Entries {
		if entry.PageRef != "page3" {
			t.Errorf("entry pageref = %q, want page3", entry.PageRef)
		}
	}
}

func TestPageIDsUniqueUnderConcurrency(t *testing.T) {
	const workers = 64
	e := NewExporter(nil, Options{})

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		seen = make(map[string]int)
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			doc, err := e.Build(context.Background(), fixture())
			if err != nil {
				t.Errorf("Build() error: %v", err)
				return
			}
			mu.Lock()
			seen[doc.Log.Pages[0].ID]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(seen) != workers {
		t.Fatalf("expected %d distinct page ids, got %d", workers, len(seen))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("page id %s issued %d times", id, n)
		}
	}
}

func TestExportDeterministic(t *testing.T) {
	a := exportString(t, NewExporter(nil, Options{}), fixture())
	b := exportString(t, NewExporter(nil, Options{}), fixture())
	if a != b {
		t.Error("fresh exporters produced different output for the same input")
	}
}

func TestExportIndentOptions(t *testing.T) {
	two := exportString(t, NewExporter(nil, Options{Indent: 2}), fixture())
	if !strings.HasPrefix(two, "{\n  \"log\": {") {
		t.Errorf("expected two-space indent, got:\n%.40s", two)
	}
	compact := exportString(t, NewExporter(nil, Options{Indent: -1}), fixture())
	if !strings.HasPrefix(compact, `{"log":{"version":"1.1"`) {
		t.Errorf("expected compact output, got:\n%.40s", compact)
	}
}

func TestExportKeepsMarkup(t *testing.T) {
	reg, err := diag.NewRegistry([]diag.Definition{{
		Code: diag.URITooLong, Category: diag.CatGeneral, Severity: diag.SevBad,
		Summary: map[string]string{"en": "<b>%(uri_len)s</b> & more"},
		Text:    map[string]string{"en": "long"},
	}})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	root := fixture()
	root.Linked = nil
	root.Notes = []txn.Note{{Code: diag.URITooLong, Subject: "uri", Vars: map[string]any{"uri_len": 9000}}}

	raw := exportString(t, NewExporter(reg, Options{}), root)
	if !strings.Contains(raw, `"summary": "<b>9000</b> & more"`) {
		t.Errorf("markup should be written unescaped:\n%s", raw)
	}
}

func TestExportErrors(t *testing.T) {
	tests := []struct {
		name   string
		opts   Options
		mutate func(root *txn.Transaction)
		target []error
	}{
		{
			name:   "missing translation",
			opts:   Options{Lang: "fr"},
			mutate: func(*txn.Transaction) {},
			target: []error{diag.ErrMissingTranslation},
		},
		{
			name:   "missing variable",
			mutate: func(root *txn.Transaction) { root.Notes[0].Vars = nil },
			target: []error{diag.ErrRender},
		},
		{
			name:   "response before request",
			mutate: func(root *txn.Transaction) { root.ResTS = root.ReqTS.Add(-time.Millisecond) },
			target: []error{txn.ErrMalformedInput},
		},
		{
			name: "linked completes before headers",
			mutate: func(root *txn.Transaction) {
				root.Linked[0].ResDoneTS = root.Linked[0].ResTS.Add(-time.Millisecond)
			},
			target: []error{txn.ErrMalformedInput},
		},
		{
			name:   "self link",
			mutate: func(root *txn.Transaction) { root.Linked = append(root.Linked, root) },
			target: []error{txn.ErrMalformedInput},
		},
		{
			name:   "cycle through child",
			mutate: func(root *txn.Transaction) { root.Linked[1].Linked = []*txn.Transaction{root} },
			target: []error{txn.ErrMalformedInput},
		},
		{
			name:   "unknown code",
			mutate: func(root *txn.Transaction) { root.Notes = append(root.Notes, txn.Note{Code: diag.Code(9999)}) },
			target: []error{txn.ErrMalformedInput, diag.ErrUnknownCode},
		},
		{
			name: "unknown code in subrequest",
			mutate: func(root *txn.Transaction) {
				root.Linked[0].Notes = append(root.Linked[0].Notes, txn.Note{Code: diag.Code(42)})
			},
			target: []error{txn.ErrMalformedInput, diag.ErrUnknownCode},
		},
		{
			name:   "length overflow",
			mutate: func(root *txn.Transaction) { root.BodyLen = math.MaxUint64 },
			target: []error{txn.ErrMalformedInput},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := fixture()
			tt.mutate(root)

			var buf bytes.Buffer
			err := NewExporter(nil, tt.opts).Export(context.Background(), &buf, root)
			if err == nil {
				t.Fatal("expected error")
			}
			for _, target := range tt.target {
				if !errors.Is(err, target) {
					t.Errorf("error %v is not %v", err, target)
				}
			}
			if buf.Len() != 0 {
				t.Errorf("partial output written on error: %q", buf.String())
			}
		})
	}
}

func TestExportMissingTranslationDetails(t *testing.T) {
	_, err := NewExporter(nil, Options{Lang: "fr"}).Build(context.Background(), fixture())
	var te *diag.TranslationError
	if !errors.As(err, &te) {
		t.Fatalf("expected *diag.TranslationError, got %v", err)
	}
	if te.Lang != "fr" || te.Code != diag.HeaderTooLarge {
		t.Errorf("unexpected translation error: %+v", te)
	}
}

func TestBuildNilRoot(t *testing.T) {
	_, err := NewExporter(nil, Options{}).Build(context.Background(), nil)
	if !errors.Is(err, txn.ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
}

func TestBuildCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewExporter(nil, Options{}).Build(ctx, fixture()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestBuildTraces(t *testing.T) {
	ring := trace.NewRingTracer(128, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)
	if _, err := NewExporter(nil, Options{}).Build(ctx, fixture()); err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	counts := make(map[trace.Scope]int)
	for _, ev := range ring.Snapshot() {
		counts[ev.Scope]++
	}
	// begin/end per span, one point per message
	if counts[trace.ScopeExport] != 2 || counts[trace.ScopeEntry] != 6 || counts[trace.ScopeNote] != 7 {
		t.Errorf("unexpected trace event counts: %v", counts)
	}
}
