package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// ErrSchema reports a document written by a newer, incompatible release.
var ErrSchema = errors.New("unsupported snapshot schema")

// Decode reads one document from r. Unknown fields are rejected for the
// text formats.
func Decode(r io.Reader, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode json snapshot: %w", err)
		}
		normalizeTree(doc.Root)
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode yaml snapshot: %w", err)
		}
	case FormatMsgpack:
		if err := msgpack.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode msgpack snapshot: %w", err)
		}
	default:
		return nil, fmt.Errorf("decode snapshot: unsupported format %s", format)
	}

	// schema 0 means a hand-written file that omitted the field
	if doc.Schema > SchemaVersion {
		return nil, fmt.Errorf("%w: %d (this build reads up to %d)", ErrSchema, doc.Schema, SchemaVersion)
	}
	if doc.Root == nil {
		return nil, errors.New("snapshot has no root transaction")
	}
	return &doc, nil
}

// normalizeTree turns json.Number vars into int64 when they are integral and
// float64 otherwise, so every format hands the same Go types to templates.
func normalizeTree(t *Transaction) {
	if t == nil {
		return
	}
	for i := range t.Notes {
		for k, v := range t.Notes[i].Vars {
			t.Notes[i].Vars[k] = normalizeValue(v)
		}
	}
	for _, l := range t.Linked {
		normalizeTree(l)
	}
}

func normalizeValue(v any) any {
	switch x := v.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case map[string]any:
		for k, item := range x {
			x[k] = normalizeValue(item)
		}
		return x
	case []any:
		for i, item := range x {
			x[i] = normalizeValue(item)
		}
		return x
	default:
		return v
	}
}

// ReadFile decodes the snapshot at path, choosing the format by extension.
func ReadFile(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Encode writes doc to w. The schema version is always set to SchemaVersion.
func Encode(w io.Writer, format Format, doc *Document) error {
	out := *doc
	out.Schema = SchemaVersion
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(&out)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(&out); err != nil {
			return err
		}
		return enc.Close()
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(&out)
	default:
		return fmt.Errorf("encode snapshot: unsupported format %s", format)
	}
}

// WriteFile encodes doc into path, choosing the format by extension.
// The file is replaced atomically.
func WriteFile(path string, doc *Document) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, format, doc); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return WriteAtomic(path, buf.Bytes())
}

// WriteAtomic writes data to a temporary file next to path and renames it
// into place, so readers never observe a partial file.
func WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	// Атомарная замена
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
