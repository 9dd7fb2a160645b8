package plan

import (
	"errors"
	"fmt"
	"strings"

	"transmuter/internal/analyze"
	"transmuter/internal/common"
	"transmuter/internal/diagnostic"
)

// ErrMappingConflict is matched by every *ConflictError.
var ErrMappingConflict = errors.New("mapping conflict")

// ConflictError aborts a run whose mapping places two symbols on the same
// target or contains invalid entries. Nothing has been written when it is
// returned.
type ConflictError struct {
	Diagnostics *diagnostic.Diagnostics
}

// Error implements error.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("%d mapping conflict(s): %v", len(e.Diagnostics.Errors), e.Diagnostics.Error())
}

// Is reports whether target is ErrMappingConflict.
func (e *ConflictError) Is(target error) bool {
	return target == ErrMappingConflict
}

// Check returns a *ConflictError if diags has errors, nil otherwise.
func Check(diags *diagnostic.Diagnostics) error {
	if diags == nil || diags.IsValid() {
		return nil
	}

	return &ConflictError{Diagnostics: diags}
}

// contributions maps a lower-cased key to the display name of the key and
// the symbols claiming it, in the order they were added.
type contributions struct {
	display map[string]string
	sources map[string][]string
}

func newContributions() *contributions {
	return &contributions{display: map[string]string{}, sources: map[string][]string{}}
}

func (c *contributions) add(display, source string) {
	key := strings.ToLower(display)
	if _, ok := c.display[key]; !ok {
		c.display[key] = display
	}

	c.sources[key] = append(c.sources[key], source)
}

// DetectConflicts checks every target of the plan and aggregates all
// collisions:
//   - class_conflict: an original class relocated onto a class built from
//     functions
//   - duplicate_class_target: two original classes relocated to one name
//   - alias_conflict: a global class built from functions taking the name
//     an original class keeps through its alias
//   - method_conflict: two sources for one method of one class, counting
//     functions, the methods original classes already declare, and
//     accessors
//
// Names are compared case-insensitively, as PHP resolves them.
func DetectConflicts[P any](p *Plan[P], members analyze.MemberIndex) *diagnostic.Diagnostics {
	diags := &diagnostic.Diagnostics{}

	fromFunctions := newContributions()
	for _, f := range p.Functions {
		fromFunctions.add(f.Target.ClassName(), analyze.DescribeFunction(f.Symbol))
	}

	relocated := newContributions()
	for _, c := range p.Classes {
		relocated.add(c.Target.ClassName(), analyze.DescribeClass(c.Symbol))
	}

	for _, key := range common.SortedKeys(relocated.sources) {
		classes := relocated.sources[key]
		name := relocated.display[key]

		if fns, ok := fromFunctions.sources[key]; ok {
			diags.AddError("class_conflict",
				"class is both relocated from an original class and built from functions",
				name, append(append([]string{}, classes...), fns...)...)
		}

		if common.IsMultiple(classes) {
			diags.AddError("duplicate_class_target",
				"several original classes are relocated to the same class", name, classes...)
		}
	}

	aliases := newContributions()
	for _, c := range p.Classes {
		aliases.add(c.Symbol, analyze.DescribeClass(c.Symbol))
	}

	for _, cls := range p.Globals {
		key := strings.ToLower(cls.Name)
		if classes, ok := aliases.sources[key]; ok {
			diags.AddError("alias_conflict",
				"global class has the name an original class keeps as an alias",
				cls.Name, append(append([]string{}, classes...), fromFunctions.sources[key]...)...)
		}
	}

	methods := newContributions()

	for _, cls := range p.Globals {
		for _, m := range cls.Methods {
			if m.Accessor {
				t := Target{Namespace: cls.Name, Method: m.Name}
				methods.add(t.String(), "accessor "+t.String()+"()")
			}
		}
	}

	for _, f := range p.Functions {
		methods.add(f.Target.String(), analyze.DescribeFunction(f.Symbol))
	}

	for _, c := range p.Classes {
		for _, m := range members.Methods(c.Symbol) {
			t := c.Target
			t.Method = m
			methods.add(t.String(), analyze.DescribeClassMethod(c.Symbol, m))
		}
	}

	for _, key := range common.SortedKeys(methods.sources) {
		if sources := methods.sources[key]; common.IsMultiple(sources) {
			diags.AddError("method_conflict", "method is generated by multiple sources",
				methods.display[key], sources...)
		}
	}

	return diags
}
