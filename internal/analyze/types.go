package analyze

import (
	"fmt"

	"transmuter/internal/common"
)

// Kind distinguishes the two symbol kinds.
type Kind int

const (
	KindFunction Kind = iota
	KindClass
)

// String returns a human-readable representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindClass:
		return "class"
	default:
		return common.UnknownStr
	}
}

// Function is a top-level function declaration.
type Function[P any] struct {
	Name string // Original global name
	Unit string // Path of the unit declaring it
	// Guard is the function name of the enclosing
	// `if (!function_exists('...'))` block, if any.
	Guard string
	Decl  P
}

// Class is a top-level class declaration.
type Class[P any] struct {
	Name    string   // Original global name
	Unit    string   // Path of the unit declaring it
	Super   string   // Declared superclass as written, "" if none
	Members []string // Method names in declaration order
	Guard   string   // See Function.Guard
	Decl    P
}

// Guard is the verbatim text of a top-level
// `if (!function_exists('<Name>')) { ... }` block.
type Guard struct {
	Name string
	Text string
}

// Unit is one parsed source file.
type Unit[P any] struct {
	Path      string
	Functions []Function[P]
	Classes   []Class[P]
	Guards    []Guard
	// Err is set when the unit could not be parsed; its declarations are ignored.
	Err error
}

// ParseError reports a source unit that could not be parsed.
type ParseError struct {
	Path string
	Err  error
}

// Error implements error.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying parser error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
