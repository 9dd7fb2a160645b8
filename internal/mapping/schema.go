package mapping

import (
	"maps"
	"slices"
)

// PolyfillTag is the scalar value marking a function as a polyfill.
const PolyfillTag = "polyfill"

// Table is the in-memory mapping table. It is threaded through the pipeline
// as an explicit value; stages that change it work on a Clone.
type Table struct {
	// Functions maps an original function name to its target.
	Functions map[string]FunctionEntry
	// Classes maps an original class name to its target.
	Classes map[string]ClassEntry
	// Outdated holds historical entries of symbols no longer found.
	Outdated Outdated

	// functionOrder remembers insertion order of Functions keys. Only the
	// polyfill partition is persisted in this order.
	functionOrder []string
}

// Outdated holds retired mapping entries keyed by original symbol name.
type Outdated struct {
	Functions map[string]OutdatedFunction `yaml:"functions"`
	Classes   map[string]OutdatedClass    `yaml:"classes"`
}

// FunctionEntry is the target of one function: either a polyfill tag or a
// static method location. An empty Class designates a global class named
// after Namespace.
type FunctionEntry struct {
	Polyfill  bool   `yaml:"-"`
	Namespace string `yaml:"namespace"`
	Class     string `yaml:"class,omitempty"`
	Method    string `yaml:"method"`
}

// IsGlobal reports whether the entry targets a global class.
func (e FunctionEntry) IsGlobal() bool {
	return !e.Polyfill && e.Class == ""
}

// ClassEntry is the target of one class.
type ClassEntry struct {
	Namespace string `yaml:"namespace"`
	Class     string `yaml:"class"`
}

// OutdatedFunction is a retired function entry with its removal date.
type OutdatedFunction struct {
	Namespace string `yaml:"namespace"`
	Class     string `yaml:"class,omitempty"`
	Method    string `yaml:"method"`
	Removed   string `yaml:"removed"`
}

// Entry returns the target the function had before it was retired.
func (o OutdatedFunction) Entry() FunctionEntry {
	return FunctionEntry{Namespace: o.Namespace, Class: o.Class, Method: o.Method}
}

// OutdatedClass is a retired class entry with its removal date.
type OutdatedClass struct {
	Namespace string `yaml:"namespace"`
	Class     string `yaml:"class"`
	Removed   string `yaml:"removed"`
}

// Entry returns the target the class had before it was retired.
func (o OutdatedClass) Entry() ClassEntry {
	return ClassEntry{Namespace: o.Namespace, Class: o.Class}
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		Functions: map[string]FunctionEntry{},
		Classes:   map[string]ClassEntry{},
		Outdated: Outdated{
			Functions: map[string]OutdatedFunction{},
			Classes:   map[string]OutdatedClass{},
		},
	}
}

// Clone returns a deep copy of t.
func (t *Table) Clone() *Table {
	c := NewTable()
	maps.Copy(c.Functions, t.Functions)
	maps.Copy(c.Classes, t.Classes)
	maps.Copy(c.Outdated.Functions, t.Outdated.Functions)
	maps.Copy(c.Outdated.Classes, t.Outdated.Classes)
	c.functionOrder = slices.Clone(t.functionOrder)

	return c
}

// SetFunction records e for name, keeping first-insertion order.
func (t *Table) SetFunction(name string, e FunctionEntry) {
	if _, exists := t.Functions[name]; !exists {
		t.functionOrder = append(t.functionOrder, name)
	}

	t.Functions[name] = e
}

// DeleteFunction removes the active entry for name.
func (t *Table) DeleteFunction(name string) {
	if _, exists := t.Functions[name]; !exists {
		return
	}

	delete(t.Functions, name)
	t.functionOrder = slices.DeleteFunc(t.functionOrder, func(s string) bool { return s == name })
}

// Polyfills returns the names of polyfill functions in insertion order.
func (t *Table) Polyfills() []string {
	var out []string

	for _, name := range t.orderedFunctionNames() {
		if t.Functions[name].Polyfill {
			out = append(out, name)
		}
	}

	return out
}

// orderedFunctionNames returns every key of Functions: recorded insertion
// order first, then any keys added directly to the map in sorted order.
func (t *Table) orderedFunctionNames() []string {
	seen := make(map[string]struct{}, len(t.Functions))
	out := make([]string, 0, len(t.Functions))

	for _, name := range t.functionOrder {
		if _, ok := t.Functions[name]; !ok {
			continue
		}

		if _, dup := seen[name]; dup {
			continue
		}

		seen[name] = struct{}{}
		out = append(out, name)
	}

	var rest []string

	for name := range t.Functions {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}

	slices.Sort(rest)

	return append(out, rest...)
}
