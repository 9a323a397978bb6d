package diag

import (
	"fmt"
	"strings"
)

// Severity is the outcome polarity of a note.
type Severity uint8

const (
	// SevInfo is for notes that neither pass nor fail a check.
	SevInfo Severity = iota
	// SevGood is for checks the resource passed.
	SevGood
	SevBad
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "info"
	case SevGood:
		return "good"
	case SevBad:
		return "bad"
	}
	return "unknown"
}

// ParseSeverity converts the wire form back to a Severity, ignoring case.
func ParseSeverity(s string) (Severity, error) {
	for _, sev := range []Severity{SevInfo, SevGood, SevBad} {
		if strings.EqualFold(s, sev.String()) {
			return sev, nil
		}
	}
	return SevInfo, fmt.Errorf("invalid severity: %q (expected: good|bad|info)", s)
}

// Category is the functional area a note relates to.
type Category uint8

const (
	CatGeneral Category = iota + 1
	CatCaching
	CatConnection
	CatTests
)

func (c Category) String() string {
	switch c {
	case CatGeneral:
		return "General"
	case CatCaching:
		return "Caching"
	case CatConnection:
		return "Connection"
	case CatTests:
		return "Tests"
	}
	return "Unknown"
}

// ParseCategory accepts the wire form in any letter case.
func ParseCategory(s string) (Category, error) {
	for _, c := range []Category{CatGeneral, CatCaching, CatConnection, CatTests} {
		if strings.EqualFold(s, c.String()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("invalid category: %q (expected: General|Caching|Connection|Tests)", s)
}
