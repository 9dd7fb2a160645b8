package php

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/php"

	"transmuter/internal/analyze"
)

// Unit is a parsed PHP source unit.
type Unit = analyze.Unit[*Decl]

// guardCond matches the condition of `if ( ! function_exists( 'name' ) )`.
var guardCond = regexp.MustCompile(`^\(\s*!\s*\\?function_exists\s*\(\s*['"]([^'"]+)['"]\s*\)\s*\)$`)

// Parser wraps a tree-sitter parser for PHP. A Parser is not safe for
// concurrent use; create one per goroutine.
type Parser struct {
	p *sitter.Parser
}

// NewParser creates a new Parser.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(php.GetLanguage())

	return &Parser{p: p}
}

// Close releases the underlying tree-sitter parser.
func (p *Parser) Close() {
	p.p.Close()
}

// Parse parses src and returns the top-level function and class
// declarations of its global namespace. A unit with syntax errors is
// returned with Err set and no declarations.
func (p *Parser) Parse(ctx context.Context, path string, src []byte) Unit {
	unit := Unit{Path: path}

	tree, err := p.p.ParseCtx(ctx, nil, src)
	if err != nil {
		unit.Err = &analyze.ParseError{Path: path, Err: err}
		return unit
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		unit.Err = &analyze.ParseError{Path: path, Err: syntaxError(root)}
		return unit
	}

	w := &walker{src: src, unit: &unit, uses: map[string]string{}}
	w.statements(root, "", true)

	return unit
}

func syntaxError(root *sitter.Node) error {
	n := firstError(root)
	if n == nil {
		return errors.New("syntax error")
	}

	return fmt.Errorf("syntax error at line %d, column %d", n.StartPoint().Row+1, n.StartPoint().Column+1)
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil || !c.HasError() && !c.IsMissing() {
			continue
		}

		if found := firstError(c); found != nil {
			return found
		}
	}

	return nil
}

// walker visits statement lists, collecting declarations into unit.
type walker struct {
	src  []byte
	unit *Unit
	uses map[string]string // lower-cased alias -> imported name
}

func (w *walker) statements(n *sitter.Node, guard string, top bool) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)

		switch c.Type() {
		case "function_definition":
			w.function(c, guard)

		case "class_declaration":
			w.class(c, guard)

		case "namespace_use_declaration":
			w.use(c)

		case "namespace_definition":
			body := c.ChildByFieldName("body")
			if body == nil {
				// `namespace Foo;` puts the rest of the file in Foo
				return
			}

			if c.ChildByFieldName("name") == nil {
				w.statements(body, guard, top)
			}

		case "if_statement":
			g := guard
			if name, ok := w.guardName(c); ok {
				if top {
					w.unit.Guards = append(w.unit.Guards, analyze.Guard{Name: name, Text: c.Content(w.src)})
				}

				g = name
			}

			w.statements(c, g, false)

		case "compound_statement", "colon_block", "else_clause", "else_if_clause":
			w.statements(c, guard, false)
		}
	}
}

func (w *walker) guardName(ifNode *sitter.Node) (string, bool) {
	cond := ifNode.ChildByFieldName("condition")
	if cond == nil {
		cond = childOfType(ifNode, "parenthesized_expression")
	}

	if cond == nil {
		return "", false
	}

	m := guardCond.FindStringSubmatch(cond.Content(w.src))
	if m == nil {
		return "", false
	}

	return m[1], true
}

func (w *walker) function(n *sitter.Node, guard string) {
	nameNode := n.ChildByFieldName("name")
	params := n.ChildByFieldName("parameters")

	if nameNode == nil || params == nil {
		return
	}

	d := w.decl(n, nameNode)
	d.tail = params.StartByte()

	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.StartByte() >= nameNode.StartByte() {
			break
		}

		switch c.Type() {
		case "attribute_list":
			if d.attrs.empty() {
				d.attrs.start = c.StartByte()
			}

			d.attrs.end = c.EndByte()
		case "reference_modifier", "&":
			d.byRef = true
		}
	}

	w.unit.Functions = append(w.unit.Functions, analyze.Function[*Decl]{
		Name:  nameNode.Content(w.src),
		Unit:  w.unit.Path,
		Guard: guard,
		Decl:  d,
	})
}

func (w *walker) class(n *sitter.Node, guard string) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}

	d := w.decl(n, nameNode)
	d.class = true

	var super string

	if base := childOfType(n, "base_clause"); base != nil {
		if sn := firstNameChild(base); sn != nil {
			d.super = span{sn.StartByte(), sn.EndByte()}
			super = strings.TrimPrefix(w.expand(sn.Content(w.src)), `\`)
			d.superFQ = `\` + super
			d.refs = removeEdit(d.refs, d.super.start)
		}
	}

	var members []string

	if body := n.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			m := body.NamedChild(i)
			if m.Type() != "method_declaration" {
				continue
			}

			if mn := m.ChildByFieldName("name"); mn != nil {
				members = append(members, mn.Content(w.src))
			}
		}
	}

	w.unit.Classes = append(w.unit.Classes, analyze.Class[*Decl]{
		Name:    nameNode.Content(w.src),
		Unit:    w.unit.Path,
		Super:   super,
		Members: members,
		Guard:   guard,
		Decl:    d,
	})
}

// decl builds the common part of a declaration payload.
func (w *walker) decl(n, nameNode *sitter.Node) *Decl {
	d := &Decl{
		src:  w.src,
		span: span{n.StartByte(), n.EndByte()},
		name: span{nameNode.StartByte(), nameNode.EndByte()},
		col:  n.StartPoint().Column,
	}

	if prev := n.PrevSibling(); prev != nil && prev.Type() == "comment" {
		between := w.src[prev.EndByte():n.StartByte()]
		if strings.HasPrefix(prev.Content(w.src), "/**") && strings.Count(string(between), "\n") <= 1 &&
			strings.TrimSpace(string(between)) == "" {
			d.doc = span{prev.StartByte(), prev.EndByte()}
		}
	}

	r := &refCollector{w: w, d: d, seen: map[uint32]bool{}}
	r.walk(n)

	return d
}

func childOfType(n *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c.Type() == typ {
			return c
		}
	}

	return nil
}

func firstNameChild(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); isName(c) {
			return c
		}
	}

	return nil
}

func isName(n *sitter.Node) bool {
	return n != nil && (n.Type() == "name" || n.Type() == "qualified_name")
}

func removeEdit(edits []edit, start uint32) []edit {
	out := edits[:0]
	for _, e := range edits {
		if e.start != start {
			out = append(out, e)
		}
	}

	return out
}
