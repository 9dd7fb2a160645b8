package analyze

import (
	"errors"
	"slices"

	"transmuter/internal/common"
	"transmuter/internal/mapping"
)

// Options controls a collection pass.
type Options struct {
	// Exclude reports whether a unit path is skipped entirely.
	Exclude func(path string) bool
	// Polyfills holds the names tagged as polyfill in the mapping table.
	Polyfills common.Set[string]
}

// Symbols is the result of a collection pass. Slices keep first-seen order.
type Symbols[P any] struct {
	Functions []Function[P]
	Classes   []Class[P]
	// Polyfills are the extracted guard blocks of polyfill functions.
	Polyfills []Guard
	// Members is the method pre-scan over every collected class declaration.
	Members MemberIndex
	// Failed lists units skipped because they could not be parsed.
	Failed []*ParseError

	functions map[string]int
	classes   map[string]int
}

// Discovered returns the names found by this pass, for lifecycle tracking.
func (s *Symbols[P]) Discovered() mapping.Discovered {
	d := mapping.Discovered{
		Functions: common.NewSet[string](),
		Classes:   common.NewSet[string](),
	}

	for _, fn := range s.Functions {
		d.Functions.Add(fn.Name)
	}

	for _, c := range s.Classes {
		d.Classes.Add(c.Name)
	}

	return d
}

// Collect walks units in order and gathers their declarations.
//
// Declarations whose name is a polyfill, or which sit inside a polyfill
// guard, are not collected; the guard text is kept instead. For a name
// declared more than once the first declaration wins.
func Collect[P any](units []Unit[P], opts Options) *Symbols[P] {
	s := &Symbols[P]{
		Members:   MemberIndex{},
		functions: map[string]int{},
		classes:   map[string]int{},
	}

	guarded := common.NewSet[string]()

	for _, u := range units {
		if opts.Exclude != nil && opts.Exclude(u.Path) {
			continue
		}

		if u.Err != nil {
			s.Failed = append(s.Failed, asParseError(u.Path, u.Err))
			continue
		}

		for _, g := range u.Guards {
			if !opts.Polyfills.Has(g.Name) || guarded.Has(g.Name) {
				continue
			}

			guarded.Add(g.Name)
			s.Polyfills = append(s.Polyfills, g)
		}

		for _, fn := range u.Functions {
			if opts.Polyfills.Has(fn.Name) || opts.Polyfills.Has(fn.Guard) {
				continue
			}

			if _, seen := s.functions[fn.Name]; seen {
				continue
			}

			s.functions[fn.Name] = len(s.Functions)
			s.Functions = append(s.Functions, fn)
		}

		for _, c := range u.Classes {
			if opts.Polyfills.Has(c.Guard) {
				continue
			}

			s.Members.add(c.Name, c.Members)

			if _, seen := s.classes[c.Name]; seen {
				continue
			}

			s.classes[c.Name] = len(s.Classes)
			s.Classes = append(s.Classes, c)
		}
	}

	return s
}

func asParseError(path string, err error) *ParseError {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe
	}

	return &ParseError{Path: path, Err: err}
}

// MemberIndex maps an original class name to the sorted, unique names of
// the methods it declares.
type MemberIndex map[string][]string

// Methods returns the method names of class, or nil.
func (m MemberIndex) Methods(class string) []string {
	return m[class]
}

func (m MemberIndex) add(class string, methods []string) {
	merged := append(slices.Clone(m[class]), methods...)
	slices.Sort(merged)

	m[class] = slices.Compact(merged)
}
