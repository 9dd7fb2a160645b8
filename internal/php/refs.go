package php

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"transmuter/internal/common"
)

// unqualifiable are names that never refer to a global class.
var unqualifiable = common.NewSet(
	"self", "static", "parent",
	"array", "bool", "callable", "false", "float", "int", "iterable",
	"mixed", "never", "null", "object", "string", "true", "void",
)

// refCollector records the class references of one declaration.
type refCollector struct {
	w    *walker
	d    *Decl
	seen map[uint32]bool
}

func (r *refCollector) walk(n *sitter.Node) {
	switch n.Type() {
	case "string", "encapsed_string", "heredoc", "nowdoc":
		r.d.verbatim = append(r.d.verbatim, span{n.StartByte(), n.EndByte()})
		return

	case "named_type", "base_clause", "class_interface_clause", "type_list", "use_declaration":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			r.qualify(n.NamedChild(i))
		}

	case "object_creation_expression", "class_constant_access_expression":
		if n.NamedChildCount() > 0 {
			r.qualify(n.NamedChild(0))
		}

	case "scoped_call_expression", "scoped_property_access_expression":
		r.qualify(n.ChildByFieldName("scope"))

	case "binary_expression":
		if op := n.ChildByFieldName("operator"); op != nil && op.Type() == "instanceof" {
			r.qualify(n.ChildByFieldName("right"))
		}
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		r.walk(n.NamedChild(i))
	}
}

// qualify makes a relative class name absolute.
func (r *refCollector) qualify(n *sitter.Node) {
	if !isName(n) || r.seen[n.StartByte()] {
		return
	}

	name := n.Content(r.w.src)
	lower := strings.ToLower(name)

	if strings.HasPrefix(name, `\`) || strings.HasPrefix(lower, `namespace\`) || unqualifiable.Has(lower) {
		return
	}

	r.seen[n.StartByte()] = true

	e := edit{start: n.StartByte(), end: n.StartByte(), text: `\`}
	if expanded := r.w.expand(name); expanded != name {
		e = edit{start: n.StartByte(), end: n.EndByte(), text: expanded}
	}

	r.d.refs = append(r.d.refs, e)
}

// use records the aliases of a `use Foo\Bar [as Baz];` statement. Grouped,
// function and const imports are not tracked.
func (w *walker) use(n *sitter.Node) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		clause := n.NamedChild(i)
		if clause.Type() != "namespace_use_clause" {
			continue
		}

		var target, alias string

		for j := 0; j < int(clause.ChildCount()); j++ {
			c := clause.Child(j)

			switch {
			case isName(c) && target == "":
				target = c.Content(w.src)
			case c.Type() == "namespace_aliasing_clause":
				if an := firstNameChild(c); an != nil {
					alias = an.Content(w.src)
				}
			case isName(c):
				alias = c.Content(w.src)
			}
		}

		if target == "" {
			continue
		}

		target = strings.TrimPrefix(target, `\`)
		if alias == "" {
			segs := common.NamespaceSegments(target)
			alias = segs[len(segs)-1]
		}

		w.uses[strings.ToLower(alias)] = target
	}
}

// expand resolves the first segment of name against the recorded use
// aliases and returns the absolute name, or name unchanged.
func (w *walker) expand(name string) string {
	if strings.HasPrefix(name, `\`) {
		return name
	}

	first, rest, _ := strings.Cut(name, `\`)

	target, ok := w.uses[strings.ToLower(first)]
	if !ok {
		return name
	}

	if rest != "" {
		return `\` + target + `\` + rest
	}

	return `\` + target
}
