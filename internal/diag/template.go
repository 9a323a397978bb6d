package diag

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Interpolate fills %(name)s placeholders from vars. "%%" yields a single
// percent sign. Any other use of '%' is an error, as is a placeholder that
// vars does not define. On error no text is returned.
func Interpolate(tmpl string, vars map[string]any) (string, error) {
	if strings.IndexByte(tmpl, '%') < 0 {
		return norm.NFC.String(tmpl), nil
	}

	var b strings.Builder
	b.Grow(len(tmpl) + 16)
	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(tmpl) {
			return "", &RenderError{Offset: i, Reason: "incomplete format"}
		}
		switch tmpl[i+1] {
		case '%':
			b.WriteByte('%')
			i++
		case '(':
			end := strings.IndexByte(tmpl[i+2:], ')')
			if end < 0 {
				return "", &RenderError{Offset: i, Reason: "unterminated placeholder"}
			}
			name := tmpl[i+2 : i+2+end]
			conv := i + 2 + end + 1
			if conv >= len(tmpl) {
				return "", &RenderError{Name: name, Offset: i, Reason: "missing conversion"}
			}
			if tmpl[conv] != 's' {
				return "", &RenderError{Name: name, Offset: i, Reason: fmt.Sprintf("unsupported conversion %q", tmpl[conv])}
			}
			v, ok := vars[name]
			if !ok {
				return "", &RenderError{Name: name, Offset: i, Reason: "no value supplied"}
			}
			b.WriteString(formatValue(v))
			i = conv
		default:
			return "", &RenderError{Offset: i, Reason: "stray '%' (use %% for a literal percent sign)"}
		}
	}
	return norm.NFC.String(b.String()), nil
}

// Placeholders lists the placeholder names of tmpl in order of first use.
// Malformed placeholders are skipped; Interpolate reports them.
func Placeholders(tmpl string) []string {
	var names []string
	seen := make(map[string]bool)
	for i := 0; i < len(tmpl); i++ {
		if tmpl[i] != '%' || i+1 >= len(tmpl) {
			continue
		}
		if tmpl[i+1] == '%' {
			i++
			continue
		}
		if tmpl[i+1] != '(' {
			continue
		}
		end := strings.IndexByte(tmpl[i+2:], ')')
		if end < 0 {
			break
		}
		name := tmpl[i+2 : i+2+end]
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
		i += 2 + end
	}
	return names
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	case float64:
		// без экспоненты: 12345678, а не 1.2345678e+07
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	default:
		return fmt.Sprint(x)
	}
}
