package xlat

import "fmt"

// ParseError reports a malformed template.
type ParseError struct {
	// Template is the raw template text.
	Template string

	// Offset is the byte offset where parsing failed.
	Offset int

	// Message describes the problem.
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("template parse error at offset %d: %s", e.Offset, e.Message)
}

// ExpandError reports a directive that could not be resolved at expansion
// time, typically because the referenced attribute is absent from the
// request.
type ExpandError struct {
	// Ref is the attribute reference that failed to resolve.
	Ref string
}

// Error implements the error interface.
func (e *ExpandError) Error() string {
	return fmt.Sprintf("cannot expand %%{%s}: attribute not found", e.Ref)
}
