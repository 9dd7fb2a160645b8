package plan

import (
	"transmuter/internal/common"
	"transmuter/internal/diagnostic"
	"transmuter/internal/mapping"
)

// Target is the fully qualified location a symbol resolves to. An empty
// Class designates the global class named after Namespace.
type Target struct {
	Namespace string // as written in the mapping, "/" or "\" separated
	Class     string
	Method    string
}

// FunctionTarget returns the target of a function entry.
func FunctionTarget(e mapping.FunctionEntry) Target {
	return Target{Namespace: e.Namespace, Class: e.Class, Method: e.Method}
}

// ClassTarget returns the target of a class entry.
func ClassTarget(e mapping.ClassEntry) Target {
	return Target{Namespace: e.Namespace, Class: e.Class}
}

// Global reports whether the target is on a global class.
func (t Target) Global() bool {
	return t.Class == ""
}

// ClassName returns the class part without a leading separator:
// `Minnow\Widgets\Widget`, or `Minnow` for a global class.
func (t Target) ClassName() string {
	if t.Global() {
		return common.PHPNamespace(t.Namespace)
	}

	return common.PHPNamespace(t.Namespace) + `\` + t.Class
}

// FQCN returns the absolute class name, e.g. `\Minnow\Widgets\Widget`.
func (t Target) FQCN() string {
	return `\` + t.ClassName()
}

// String renders the target as `Ns\Class::method` or `Ns::method`.
func (t Target) String() string {
	if t.Method == "" {
		return t.ClassName()
	}

	return t.ClassName() + "::" + t.Method
}

// Placement records where one original symbol went.
type Placement struct {
	Symbol string
	Target Target
}

// Method is one public static method of a generated class.
type Method[P any] struct {
	Name string
	// Function is the original function name; empty for the accessor.
	Function string
	Decl     P
	// Accessor marks the synthesized get() method of a global class.
	Accessor bool
}

// ClassDecl is one class of the output: either built from functions
// (Methods set) or a relocated original class (Origin set).
type ClassDecl[P any] struct {
	Name string
	// Namespace is the PHP namespace (`\` separated); empty for global classes.
	Namespace string
	Global    bool
	Methods   []Method[P]

	Origin  string // original class name
	Extends string // superclass to write, "" when none is declared
	Decl    P
}

// Relocated reports whether the class is an original class moved to a
// namespace.
func (c *ClassDecl[P]) Relocated() bool {
	return c.Origin != ""
}

// FQCN returns the absolute name of the class.
func (c *ClassDecl[P]) FQCN() string {
	return common.FullyQualified(c.Namespace, c.Name)
}

// Namespace is a node of the namespace tree.
type Namespace[P any] struct {
	Name     string // last segment, empty for the root
	Path     string // PHP namespace, e.g. `Minnow\Widgets`
	Children []*Namespace[P]
	Classes  []*ClassDecl[P]

	index map[string]*Namespace[P]
}

func newNamespace[P any](name, path string) *Namespace[P] {
	return &Namespace[P]{Name: name, Path: path, index: map[string]*Namespace[P]{}}
}

// Walk visits n and its descendants depth-first, parents before children.
func (n *Namespace[P]) Walk(fn func(*Namespace[P])) {
	fn(n)

	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Plan is the result of Resolve.
type Plan[P any] struct {
	// Root is the unnamed root of the namespace tree.
	Root *Namespace[P]
	// Globals are the classes emitted in the global namespace.
	Globals []*ClassDecl[P]
	// Functions and Classes list every placed symbol in collection order.
	Functions []Placement
	Classes   []Placement
	// Table is the mapping table extended with synthesized and reinstated entries.
	Table *mapping.Table
	// Diagnostics holds resolution warnings.
	Diagnostics *diagnostic.Diagnostics

	Synthesized int
	Reinstated  int
}

// ClassDecls returns every class of the plan: globals first, then the tree
// in walk order.
func (p *Plan[P]) ClassDecls() []*ClassDecl[P] {
	out := append([]*ClassDecl[P]{}, p.Globals...)

	p.Root.Walk(func(n *Namespace[P]) {
		out = append(out, n.Classes...)
	})

	return out
}
