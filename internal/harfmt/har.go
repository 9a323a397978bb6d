// Package harfmt renders analyzed transaction trees as HAR 1.1 archives.
//
// One export call produces one page holding the root transaction and each of
// its direct linked transactions as entries. Diagnostic notes travel in the
// "_red_messages" entry extension.
package harfmt

// MediaType is the media type of an exported archive.
const MediaType = "application/json"

// HARVersion is the archive format version written to log.version.
const HARVersion = "1.1"

// ArchiveJSON is the root of an exported document.
type ArchiveJSON struct {
	Log LogJSON `json:"log"`
}

// LogJSON holds the archive contents.
type LogJSON struct {
	Version string      `json:"version"`
	Creator CreatorJSON `json:"creator"`
	Browser CreatorJSON `json:"browser"`
	Pages   []PageJSON  `json:"pages"`
	Entries []EntryJSON `json:"entries"`
}

// CreatorJSON names the tool that produced the archive.
type CreatorJSON struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// PageJSON groups the entries of one export.
type PageJSON struct {
	StartedDateTime string          `json:"startedDateTime"`
	ID              string          `json:"id" jsonschema:"pattern=^page[0-9]+$"`
	Title           string          `json:"title"`
	PageTimings     PageTimingsJSON `json:"pageTimings"`
}

// PageTimingsJSON is always unknown (-1) for analyzed transactions.
type PageTimingsJSON struct {
	OnContentLoad int64 `json:"onContentLoad"`
	OnLoad        int64 `json:"onLoad"`
}

// EntryJSON is one transaction of the page.
type EntryJSON struct {
	PageRef         string        `json:"pageref"`
	StartedDateTime string        `json:"startedDateTime"`
	Time            int64         `json:"time"`
	Request         RequestJSON   `json:"request"`
	Response        ResponseJSON  `json:"response"`
	Cache           CacheJSON     `json:"cache"`
	Timings         TimingsJSON   `json:"timings"`
	Messages        []MessageJSON `json:"_red_messages"`
}

// NameValueJSON is a header, cookie or query parameter.
type NameValueJSON struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// RequestJSON describes the request half of an entry.
type RequestJSON struct {
	Method      string          `json:"method"`
	URL         string          `json:"url"`
	HTTPVersion string          `json:"httpVersion"`
	Cookies     []NameValueJSON `json:"cookies"`
	Headers     []NameValueJSON `json:"headers"`
	QueryString []NameValueJSON `json:"queryString"`
	HeadersSize int64           `json:"headersSize"`
	BodySize    int64           `json:"bodySize"`
}

// ResponseJSON describes the response half of an entry.
type ResponseJSON struct {
	Status      int             `json:"status"`
	StatusText  string          `json:"statusText"`
	HTTPVersion string          `json:"httpVersion"`
	Cookies     []NameValueJSON `json:"cookies"`
	Headers     []NameValueJSON `json:"headers"`
	Content     ContentJSON     `json:"content"`
	RedirectURL string          `json:"redirectURL"`
	HeadersSize int64           `json:"headersSize"`
	BodySize    int64           `json:"bodySize"`
}

// ContentJSON describes the response body.
type ContentJSON struct {
	Size int64 `json:"size"`
	// Compression is decoded minus transferred length; negative when the
	// transfer was larger than the decoded body.
	Compression int64  `json:"compression"`
	MimeType    string `json:"mimeType"`
}

// CacheJSON is always written as an empty object.
type CacheJSON struct{}

// TimingsJSON holds phase durations in milliseconds; -1 means not available.
type TimingsJSON struct {
	DNS     int64 `json:"dns"`
	Connect int64 `json:"connect"`
	Blocked int64 `json:"blocked"`
	Send    int64 `json:"send"`
	Wait    int64 `json:"wait"`
	Receive int64 `json:"receive"`
}

// MessageJSON is one rendered diagnostic note.
type MessageJSON struct {
	Subject     string           `json:"subject"`
	Category    string           `json:"category" jsonschema:"enum=General,enum=Caching,enum=Connection,enum=Tests"`
	Level       string           `json:"level" jsonschema:"enum=good,enum=bad,enum=info"`
	Summary     string           `json:"summary"`
	Subrequests []SubMessageJSON `json:"subrequests"`
}

// SubMessageJSON is a note of a subrequest, listed under the note that
// triggered it. It never nests further.
type SubMessageJSON struct {
	Subject  string `json:"subject"`
	Category string `json:"category"`
	Level    string `json:"level"`
	Summary  string `json:"summary"`
}
