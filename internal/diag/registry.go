package diag

import (
	"fmt"
	"sort"
	"sync"

	"golang.org/x/text/language"
)

// Definition describes one note the analyzer can emit.
type Definition struct {
	Code     Code
	Category Category
	Severity Severity
	// Summary maps a language tag to the short plain-text template.
	Summary map[string]string
	// Text maps a language tag to the long template, which may hold inline HTML.
	Text map[string]string
}

// Languages returns the tags present in both template maps, sorted.
func (d Definition) Languages() []string {
	out := make([]string, 0, len(d.Summary))
	for lang := range d.Summary {
		if _, ok := d.Text[lang]; ok {
			out = append(out, lang)
		}
	}
	sort.Strings(out)
	return out
}

// Registry is an immutable lookup table of note definitions.
// All methods are safe for concurrent use.
type Registry struct {
	defs  map[Code]Definition
	order []Code
}

// NewRegistry validates defs and builds a registry. Template maps are copied
// under canonical language tags, so later changes to defs are not observed.
func NewRegistry(defs []Definition) (*Registry, error) {
	r := &Registry{
		defs:  make(map[Code]Definition, len(defs)),
		order: make([]Code, 0, len(defs)),
	}
	for i, d := range defs {
		if d.Code == UnknownCode {
			return nil, fmt.Errorf("definition %d: missing code", i)
		}
		if _, dup := r.defs[d.Code]; dup {
			return nil, fmt.Errorf("definition %d: duplicate code %s", i, d.Code.Name())
		}
		if len(d.Summary) == 0 || len(d.Text) == 0 {
			return nil, fmt.Errorf("%s: summary and text need at least one language", d.Code.Name())
		}
		summary, err := canonicalMap(d.Code, d.Summary)
		if err != nil {
			return nil, err
		}
		text, err := canonicalMap(d.Code, d.Text)
		if err != nil {
			return nil, err
		}
		d.Summary, d.Text = summary, text
		r.defs[d.Code] = d
		r.order = append(r.order, d.Code)
	}
	sort.Slice(r.order, func(i, j int) bool { return r.order[i] < r.order[j] })
	return r, nil
}

func canonicalMap(code Code, in map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(in))
	for lang, tmpl := range in {
		tag, err := canonicalLang(lang)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid language tag %q: %w", code.Name(), lang, err)
		}
		out[tag] = tmpl
	}
	return out, nil
}

func canonicalLang(lang string) (string, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return "", err
	}
	return tag.String(), nil
}

// Default returns the registry holding the built-in catalog.
var Default = sync.OnceValue(func() *Registry {
	r, err := NewRegistry(catalog)
	if err != nil {
		panic(fmt.Errorf("diag: built-in catalog: %w", err))
	}
	return r
})

// Len returns the number of definitions.
func (r *Registry) Len() int { return len(r.order) }

// Codes returns all codes in ascending order.
func (r *Registry) Codes() []Code {
	return append([]Code(nil), r.order...)
}

// Lookup returns the definition for code.
func (r *Registry) Lookup(code Code) (Definition, bool) {
	d, ok := r.defs[code]
	return d, ok
}

// LookupName resolves a symbolic name such as "VARY_ASTERISK".
func (r *Registry) LookupName(name string) (Definition, bool) {
	code, ok := CodeByName(name)
	if !ok {
		return Definition{}, false
	}
	return r.Lookup(code)
}

// Templates returns the short and long templates of code for lang.
func (r *Registry) Templates(code Code, lang string) (summary, text string, err error) {
	d, ok := r.defs[code]
	if !ok {
		return "", "", fmt.Errorf("%w: %d", ErrUnknownCode, code)
	}
	tag, err := canonicalLang(lang)
	if err != nil {
		return "", "", &TranslationError{Code: code, Lang: lang, Err: err}
	}
	summary, ok = d.Summary[tag]
	if !ok {
		return "", "", &TranslationError{Code: code, Lang: tag}
	}
	text, ok = d.Text[tag]
	if !ok {
		return "", "", &TranslationError{Code: code, Lang: tag}
	}
	return summary, text, nil
}

// Render fills the short template of code for lang.
func (r *Registry) Render(code Code, vars map[string]any, lang string) (string, error) {
	summary, _, err := r.Templates(code, lang)
	if err != nil {
		return "", err
	}
	return interpolateFor(code, lang, summary, vars)
}

// RenderText fills the long template of code for lang.
func (r *Registry) RenderText(code Code, vars map[string]any, lang string) (string, error) {
	_, text, err := r.Templates(code, lang)
	if err != nil {
		return "", err
	}
	return interpolateFor(code, lang, text, vars)
}

func interpolateFor(code Code, lang, tmpl string, vars map[string]any) (string, error) {
	out, err := Interpolate(tmpl, vars)
	if err != nil {
		if re, ok := err.(*RenderError); ok {
			re.Code = code
			re.Lang = lang
		}
		return "", err
	}
	return out, nil
}
