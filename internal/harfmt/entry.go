package harfmt

import (
	"context"
	"fmt"

	"fortio.org/safecast"

	"redtrace/internal/trace"
	"redtrace/internal/txn"
)

// requestHTTPVersion is reported for every request; the analyzer always
// speaks HTTP/1.1 on the wire.
const requestHTTPVersion = "HTTP/1.1"

func (e *Exporter) buildEntry(ctx context.Context, t *txn.Transaction, pageID string, parent uint64) (EntryJSON, error) {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeEntry, "entry", parent)
	span.WithExtra("url", t.URI)

	entry, err := e.entry(ctx, t, pageID, span.ID())
	if err != nil {
		span.End(err.Error())
		return EntryJSON{}, err
	}
	span.End("")
	return entry, nil
}

func (e *Exporter) entry(ctx context.Context, t *txn.Transaction, pageID string, spanID uint64) (EntryJSON, error) {
	if err := t.CheckTimestamps(); err != nil {
		return EntryJSON{}, err
	}

	response, err := buildResponse(t)
	if err != nil {
		return EntryJSON{}, err
	}

	messages, err := e.buildMessages(ctx, t, spanID)
	if err != nil {
		return EntryJSON{}, err
	}

	return EntryJSON{
		PageRef:         pageID,
		StartedDateTime: formatTimestamp(t.ReqTS),
		Time:            millis(t.Elapsed()),
		Request: RequestJSON{
			Method:      t.Method,
			URL:         t.URI,
			HTTPVersion: requestHTTPVersion,
			Cookies:     []NameValueJSON{},
			Headers:     headersJSON(t.ReqHeaders),
			QueryString: []NameValueJSON{},
			HeadersSize: -1,
			BodySize:    -1,
		},
		Response: response,
		Cache:    CacheJSON{},
		Timings: TimingsJSON{
			DNS:     -1,
			Connect: -1,
			Blocked: 0,
			Send:    0,
			Wait:    millis(t.Wait()),
			Receive: millis(t.Receive()),
		},
		Messages: messages,
	}, nil
}

func buildResponse(t *txn.Transaction) (ResponseJSON, error) {
	size, err := length(t, "decoded body length", t.BodyDecodedLen)
	if err != nil {
		return ResponseJSON{}, err
	}
	bodySize, err := length(t, "body length", t.BodyLen)
	if err != nil {
		return ResponseJSON{}, err
	}
	headersSize, err := length(t, "header length", t.HeaderBytes)
	if err != nil {
		return ResponseJSON{}, err
	}

	mimeType, _ := t.ResHeaders.Get("Content-Type")
	location, _ := t.ResHeaders.Get("Location")

	return ResponseJSON{
		Status:      t.Status,
		StatusText:  t.Phrase,
		HTTPVersion: "HTTP/" + t.Version,
		Cookies:     []NameValueJSON{},
		Headers:     headersJSON(t.ResHeaders),
		Content: ContentJSON{
			Size:        size,
			Compression: size - bodySize,
			MimeType:    mimeType,
		},
		RedirectURL: location,
		HeadersSize: headersSize,
		BodySize:    bodySize,
	}, nil
}

func length(t *txn.Transaction, what string, n uint64) (int64, error) {
	v, err := safecast.Conv[int64](n)
	if err != nil {
		return 0, txn.Malformed(t, fmt.Sprintf("%s %d out of range", what, n), err)
	}
	return v, nil
}

// headersJSON keeps order and duplicates; the result is never nil.
func headersJSON(h txn.Headers) []NameValueJSON {
	out := make([]NameValueJSON, len(h))
	for i, f := range h {
		out[i] = NameValueJSON{Name: f.Name, Value: f.Value}
	}
	return out
}
