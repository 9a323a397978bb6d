package txn

import "strings"

// Header is a single field line. Names keep their original spelling.
type Header struct {
	Name  string
	Value string
}

// Headers is an ordered field list; duplicates are kept.
type Headers []Header

// Get returns the value of the first field named name, ignoring case.
func (h Headers) Get(name string) (string, bool) {
	for _, f := range h {
		if strings.EqualFold(f.Name, name) {
			return strings.TrimSpace(f.Value), true
		}
	}
	return "", false
}

// Values returns the values of every field named name, in order.
func (h Headers) Values(name string) []string {
	var out []string
	for _, f := range h {
		if strings.EqualFold(f.Name, name) {
			out = append(out, strings.TrimSpace(f.Value))
		}
	}
	return out
}

// Size returns the byte length of the fields as "Name: Value\r\n" lines.
func (h Headers) Size() int {
	n := 0
	for _, f := range h {
		n += len(f.Name) + len(": ") + len(f.Value) + len("\r\n")
	}
	return n
}
