package plan

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"transmuter/internal/analyze"
	"transmuter/internal/common"
	"transmuter/internal/diagnostic"
	"transmuter/internal/mapping"
	"transmuter/internal/match"
)

// AccessorMethod is the name of the synthesized global accessor.
const AccessorMethod = "get"

// ResolutionConfig holds configuration for the resolution process.
type ResolutionConfig struct {
	// Placement is used for symbols without a mapping entry.
	Placement mapping.Placement
	// GlobalAccessors names the global classes that get an accessor method
	// reading $GLOBALS.
	GlobalAccessors []string
	// MinSuggestionScore is the similarity an unmapped superclass needs to
	// a collected class name before it is reported as a likely typo.
	MinSuggestionScore float64
	// MaxSuggestions caps the suggestions per unmapped superclass.
	MaxSuggestions int
}

// DefaultConfig returns the default resolution configuration.
func DefaultConfig() ResolutionConfig {
	return ResolutionConfig{
		Placement:          mapping.DefaultPlacement(),
		MinSuggestionScore: match.DefaultMinScore,
		MaxSuggestions:     match.DefaultMaxSuggestions,
	}
}

// Resolver performs the resolution pipeline.
type Resolver[P any] struct {
	config ResolutionConfig
	log    *slog.Logger
}

// NewResolver creates a new Resolver.
func NewResolver[P any](config ResolutionConfig, log *slog.Logger) *Resolver[P] {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Resolver[P]{config: config, log: log}
}

// resolution is the working state of one Resolve call.
type resolution[P any] struct {
	plan  *Plan[P]
	table *mapping.Table
	// added holds the synthesized and reinstated entries, merged into the
	// plan's table once every symbol is placed.
	added   *mapping.Table
	synth   map[string]*ClassDecl[P] // lower-cased FQCN -> class built from functions
	entries map[string]mapping.ClassEntry
}

// Resolve places every collected symbol. The given table is not modified;
// the plan carries an extended copy.
func (r *Resolver[P]) Resolve(syms *analyze.Symbols[P], table *mapping.Table) (*Plan[P], error) {
	if syms == nil {
		return nil, errors.New("resolve: symbols are nil")
	}

	if table == nil {
		return nil, errors.New("resolve: mapping table is nil")
	}

	res := &resolution[P]{
		plan: &Plan[P]{
			Root:        newNamespace[P]("", ""),
			Diagnostics: &diagnostic.Diagnostics{},
		},
		table:   table,
		added:   mapping.NewTable(),
		synth:   map[string]*ClassDecl[P]{},
		entries: map[string]mapping.ClassEntry{},
	}

	for _, fn := range syms.Functions {
		r.placeFunction(res, fn)
	}

	// Pass one: every class entry is known before any superclass is rewritten.
	for _, c := range syms.Classes {
		res.entries[strings.ToLower(c.Name)] = r.classEntry(res, c.Name)
	}

	known := make([]string, 0, len(syms.Classes))
	for _, c := range syms.Classes {
		known = append(known, c.Name)
	}

	// Pass two.
	for _, c := range syms.Classes {
		r.placeClass(res, c, known)
	}

	r.addAccessors(res)
	sortPlan(res.plan)

	res.plan.Table = mapping.Merge(table, res.added)

	r.log.Debug("resolved symbols",
		slog.Int("functions", len(res.plan.Functions)),
		slog.Int("classes", len(res.plan.Classes)),
		slog.Int("synthesized", res.plan.Synthesized),
		slog.Int("reinstated", res.plan.Reinstated))

	return res.plan, nil
}

// functionEntry returns the active entry for name, reinstating a retired
// entry or synthesizing a default one when there is none.
func (r *Resolver[P]) functionEntry(res *resolution[P], name string) mapping.FunctionEntry {
	if e, ok := res.table.Functions[name]; ok {
		return e
	}

	e := mapping.SynthesizeFunction(name, r.config.Placement)

	if old, ok := res.table.Outdated.Functions[name]; ok {
		e = old.Entry()
		res.plan.Reinstated++
		res.plan.Diagnostics.AddInfo("reinstated", "retired entry restored, removed "+old.Removed, analyze.DescribeFunction(name))
		r.log.Info("reinstating retired function", slog.String("function", name),
			slog.String("removed", old.Removed))
	} else {
		res.plan.Synthesized++
	}

	res.added.SetFunction(name, e)

	return e
}

func (r *Resolver[P]) classEntry(res *resolution[P], name string) mapping.ClassEntry {
	if e, ok := res.table.Classes[name]; ok {
		return e
	}

	e := mapping.SynthesizeClass(name, r.config.Placement)

	if old, ok := res.table.Outdated.Classes[name]; ok {
		e = old.Entry()
		res.plan.Reinstated++
		res.plan.Diagnostics.AddInfo("reinstated", "retired entry restored, removed "+old.Removed, analyze.DescribeClass(name))
		r.log.Info("reinstating retired class", slog.String("class", name),
			slog.String("removed", old.Removed))
	} else {
		res.plan.Synthesized++
	}

	res.added.Classes[name] = e

	return e
}

func (r *Resolver[P]) placeFunction(res *resolution[P], fn analyze.Function[P]) {
	e := r.functionEntry(res, fn.Name)
	if e.Polyfill {
		return
	}

	target := FunctionTarget(e)
	res.plan.Functions = append(res.plan.Functions, Placement{Symbol: fn.Name, Target: target})

	key := strings.ToLower(target.ClassName())

	cls, ok := res.synth[key]
	if !ok {
		if target.Global() {
			cls = &ClassDecl[P]{Name: common.PHPNamespace(e.Namespace), Global: true}
			res.plan.Globals = append(res.plan.Globals, cls)
		} else {
			cls = &ClassDecl[P]{Name: e.Class, Namespace: common.PHPNamespace(e.Namespace)}
			ns := res.namespace(e.Namespace)
			ns.Classes = append(ns.Classes, cls)
		}

		res.synth[key] = cls
	}

	cls.Methods = append(cls.Methods, Method[P]{Name: e.Method, Function: fn.Name, Decl: fn.Decl})
}

func (r *Resolver[P]) placeClass(res *resolution[P], c analyze.Class[P], known []string) {
	e := res.entries[strings.ToLower(c.Name)]
	target := ClassTarget(e)

	res.plan.Classes = append(res.plan.Classes, Placement{Symbol: c.Name, Target: target})

	decl := &ClassDecl[P]{
		Name:      e.Class,
		Namespace: common.PHPNamespace(e.Namespace),
		Origin:    c.Name,
		Decl:      c.Decl,
	}

	if c.Super != "" {
		decl.Extends = r.superclass(res, c, known)
	}

	ns := res.namespace(e.Namespace)
	ns.Classes = append(ns.Classes, decl)
}

// superclass returns the name c should extend: the new location when the
// superclass is a collected class, its original global name otherwise.
func (r *Resolver[P]) superclass(res *resolution[P], c analyze.Class[P], known []string) string {
	if e, ok := res.entries[strings.ToLower(c.Super)]; ok {
		return ClassTarget(e).FQCN()
	}

	if suggestions := match.Suggest(c.Super, known, r.config.MinSuggestionScore, r.config.MaxSuggestions); len(suggestions) > 0 {
		res.plan.Diagnostics.AddWarning("unresolved_superclass",
			fmt.Sprintf("class %s extends %s, which is not a collected class; kept as a global reference", c.Name, c.Super),
			c.Super, suggestions...)
	}

	return `\` + c.Super
}

// addAccessors prepends the accessor method to configured global classes.
func (r *Resolver[P]) addAccessors(res *resolution[P]) {
	for _, cls := range res.plan.Globals {
		if !slices.ContainsFunc(r.config.GlobalAccessors, func(s string) bool { return strings.EqualFold(s, cls.Name) }) {
			continue
		}

		cls.Methods = append([]Method[P]{{Name: AccessorMethod, Accessor: true}}, cls.Methods...)
	}
}

// namespace returns the tree node for ns, creating missing segments.
// Segments are matched case-insensitively; the first spelling wins.
func (res *resolution[P]) namespace(ns string) *Namespace[P] {
	n := res.plan.Root

	for _, seg := range common.NamespaceSegments(ns) {
		key := strings.ToLower(seg)

		child, ok := n.index[key]
		if !ok {
			path := seg
			if n.Path != "" {
				path = n.Path + `\` + seg
			}

			child = newNamespace[P](seg, path)
			n.index[key] = child
			n.Children = append(n.Children, child)
		}

		n = child
	}

	return n
}

// sortPlan orders the tree, classes and methods lexically so output does
// not depend on collection order. Accessors stay first.
func sortPlan[P any](p *Plan[P]) {
	byName := func(a, b *ClassDecl[P]) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.Origin, b.Origin))
	}

	slices.SortStableFunc(p.Globals, byName)

	p.Root.Walk(func(n *Namespace[P]) {
		slices.SortFunc(n.Children, func(a, b *Namespace[P]) int { return cmp.Compare(a.Name, b.Name) })
		slices.SortStableFunc(n.Classes, byName)
	})

	for _, cls := range p.ClassDecls() {
		slices.SortStableFunc(cls.Methods, func(a, b Method[P]) int {
			if a.Accessor != b.Accessor {
				if a.Accessor {
					return -1
				}

				return 1
			}

			return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.Function, b.Function))
		})
	}
}
