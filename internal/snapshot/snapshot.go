// Package snapshot stores analyzed transaction trees on disk.
//
// A snapshot mirrors txn.Transaction in a form that survives JSON, YAML and
// msgpack: timestamps are float unix seconds, headers are [name, value]
// pairs, note codes are symbolic names and a note's subrequest is an index
// into the root's linked list.
package snapshot

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SchemaVersion is written into every encoded document. Bump it when the
// layout changes incompatibly.
const SchemaVersion uint16 = 1

// Format selects the on-disk encoding.
type Format uint8

const (
	FormatJSON Format = iota + 1
	FormatYAML
	FormatMsgpack
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatMsgpack:
		return "msgpack"
	default:
		return "unknown"
	}
}

// ParseFormat converts a format name to Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "msgpack", "mp":
		return FormatMsgpack, nil
	default:
		return 0, fmt.Errorf("unknown snapshot format %q (expected json|yaml|msgpack)", s)
	}
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return 0, fmt.Errorf("%s: cannot infer snapshot format without an extension", path)
	}
	f, err := ParseFormat(ext)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Document is the top-level value of a snapshot file.
type Document struct {
	Schema uint16       `json:"schema" yaml:"schema" msgpack:"schema"`
	Root   *Transaction `json:"root" yaml:"root" msgpack:"root"`
}

// Header is a [name, value] pair.
type Header [2]string

// Note references a registry definition by symbolic name.
type Note struct {
	Code    string         `json:"code" yaml:"code" msgpack:"code"`
	Subject string         `json:"subject" yaml:"subject" msgpack:"subject"`
	Vars    map[string]any `json:"vars,omitempty" yaml:"vars,omitempty" msgpack:"vars,omitempty"`
	// Subrequest indexes the root's linked list.
	Subrequest *int `json:"subrequest,omitempty" yaml:"subrequest,omitempty" msgpack:"subrequest,omitempty"`
}

// Transaction is the serializable form of txn.Transaction.
type Transaction struct {
	Method  string `json:"method" yaml:"method" msgpack:"method"`
	URI     string `json:"uri" yaml:"uri" msgpack:"uri"`
	Version string `json:"version" yaml:"version" msgpack:"version"`

	ReqTS     float64 `json:"req_ts" yaml:"req_ts" msgpack:"req_ts"`
	ResTS     float64 `json:"res_ts" yaml:"res_ts" msgpack:"res_ts"`
	ResDoneTS float64 `json:"res_done_ts" yaml:"res_done_ts" msgpack:"res_done_ts"`

	ReqHeaders []Header `json:"req_headers" yaml:"req_headers" msgpack:"req_headers"`

	Status         int      `json:"status" yaml:"status" msgpack:"status"`
	Phrase         string   `json:"phrase" yaml:"phrase" msgpack:"phrase"`
	ResHeaders     []Header `json:"res_headers" yaml:"res_headers" msgpack:"res_headers"`
	BodyDecodedLen uint64   `json:"body_decoded_len" yaml:"body_decoded_len" msgpack:"body_decoded_len"`
	BodyLen        uint64   `json:"body_len" yaml:"body_len" msgpack:"body_len"`
	HeaderBytes    uint64   `json:"header_bytes" yaml:"header_bytes" msgpack:"header_bytes"`

	Notes  []Note         `json:"notes,omitempty" yaml:"notes,omitempty" msgpack:"notes,omitempty"`
	Linked []*Transaction `json:"linked,omitempty" yaml:"linked,omitempty" msgpack:"linked,omitempty"`
}
