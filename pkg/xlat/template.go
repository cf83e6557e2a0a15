package xlat

import (
	"strings"

	"github.com/gigabytetmn/freeradius-server/pkg/radius"
)

// EscapeFunc sanitizes an expanded sub-value before it is inserted into the
// output string. ctx is the opaque expansion context supplied by the caller,
// usually the owning module instance.
type EscapeFunc func(req *radius.Request, value string, ctx any) string

// segment is one parsed piece of a template: either literal text or an
// attribute reference.
type segment struct {
	text string
	ref  bool
}

// Template is a parsed expansion template. Templates are immutable after
// Parse and safe for concurrent expansion.
type Template struct {
	raw      string
	segments []segment
}

// Parse compiles template text. It returns a ParseError for an unterminated
// or empty %{...} directive. A literal percent sign is written "%%".
func Parse(text string) (*Template, error) {
	t := &Template{raw: text}

	var lit strings.Builder
	for i := 0; i < len(text); {
		if text[i] != '%' {
			lit.WriteByte(text[i])
			i++
			continue
		}

		// "%" at end of input is literal.
		if i+1 >= len(text) {
			lit.WriteByte('%')
			i++
			continue
		}

		switch text[i+1] {
		case '%':
			lit.WriteByte('%')
			i += 2
		case '{':
			end := strings.IndexByte(text[i+2:], '}')
			if end < 0 {
				return nil, &ParseError{Template: text, Offset: i, Message: "unterminated %{ directive"}
			}
			ref := text[i+2 : i+2+end]
			if ref == "" {
				return nil, &ParseError{Template: text, Offset: i, Message: "empty %{} directive"}
			}
			if lit.Len() > 0 {
				t.segments = append(t.segments, segment{text: lit.String()})
				lit.Reset()
			}
			t.segments = append(t.segments, segment{text: ref, ref: true})
			i += 2 + end + 1
		default:
			lit.WriteByte(text[i])
			i++
		}
	}
	if lit.Len() > 0 {
		t.segments = append(t.segments, segment{text: lit.String()})
	}

	return t, nil
}

// MustParse is Parse for templates known valid at compile time, such as
// test fixtures and built-in defaults.
func MustParse(text string) *Template {
	t, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return t
}

// String returns the original template text.
func (t *Template) String() string {
	return t.raw
}

// Expand resolves the template against a request. Every directive is looked
// up with Request.Attr; a missing attribute aborts expansion with an
// ExpandError. When escape is non-nil it is applied to each resolved
// sub-value before concatenation. Literal text is never escaped.
func (t *Template) Expand(req *radius.Request, escape EscapeFunc, ctx any) (string, error) {
	// Fast path: purely literal template.
	if len(t.segments) == 1 && !t.segments[0].ref {
		return t.segments[0].text, nil
	}

	var out strings.Builder
	out.Grow(len(t.raw))

	for _, seg := range t.segments {
		if !seg.ref {
			out.WriteString(seg.text)
			continue
		}

		value, ok := req.Attr(seg.text)
		if !ok {
			return "", &ExpandError{Ref: seg.text}
		}
		if escape != nil {
			value = escape(req, value, ctx)
		}
		out.WriteString(value)
	}

	return out.String(), nil
}
