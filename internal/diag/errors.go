package diag

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingTranslation reports a definition without the requested language.
	ErrMissingTranslation = errors.New("missing translation")
	// ErrRender reports a template that could not be rendered with the given variables.
	ErrRender = errors.New("render error")
	// ErrUnknownCode reports a code that has no definition in the registry.
	ErrUnknownCode = errors.New("unknown note code")
)

// TranslationError is returned when a definition lacks the requested language.
type TranslationError struct {
	Code Code
	Lang string
	// Err is set when the tag itself could not be parsed.
	Err error
}

func (e *TranslationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: language %q: %v", ErrMissingTranslation, e.Code.Name(), e.Lang, e.Err)
	}
	return fmt.Sprintf("%s: %s has no %q template", ErrMissingTranslation, e.Code.Name(), e.Lang)
}

func (e *TranslationError) Is(target error) bool { return target == ErrMissingTranslation }

func (e *TranslationError) Unwrap() error { return e.Err }

// RenderError is returned when a template cannot be filled from the variables.
type RenderError struct {
	Code Code
	Lang string
	// Name is the offending placeholder, empty for syntax errors.
	Name   string
	Offset int
	Reason string
}

func (e *RenderError) Error() string {
	where := ""
	if e.Code != UnknownCode {
		where = fmt.Sprintf(" %s[%s]", e.Code.Name(), e.Lang)
	}
	if e.Name != "" {
		return fmt.Sprintf("%s%s: placeholder %q: %s", ErrRender, where, e.Name, e.Reason)
	}
	return fmt.Sprintf("%s%s: offset %d: %s", ErrRender, where, e.Offset, e.Reason)
}

func (e *RenderError) Is(target error) bool { return target == ErrRender }
