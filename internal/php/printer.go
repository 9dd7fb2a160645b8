package php

import (
	"errors"
	"strings"
)

// DefaultIndent is one level of indentation in generated classes.
const DefaultIndent = "    "

var errNilDecl = errors.New("php: nil declaration")

// Printer renders Decl payloads as PHP source.
type Printer struct {
	// Indent is written in front of every line of a method body.
	Indent string
}

// NewPrinter creates a Printer using DefaultIndent.
func NewPrinter() *Printer {
	return &Printer{Indent: DefaultIndent}
}

// Method renders a function declaration as a public static method called
// name, indented one level. Parameters, return type and body are kept.
func (p *Printer) Method(name string, d *Decl) (string, error) {
	if d == nil {
		return "", errNilDecl
	}

	if d.class {
		return "", errors.New("php: class declaration printed as method")
	}

	var b strings.Builder

	if !d.doc.empty() {
		b.WriteString(p.Indent)
		d.render(&b, d.doc.start, d.doc.end, nil, p.Indent)
		b.WriteByte('\n')
	}

	if !d.attrs.empty() {
		b.WriteString(p.Indent)
		d.render(&b, d.attrs.start, d.attrs.end, d.refs, p.Indent)
		b.WriteByte('\n')
	}

	b.WriteString(p.Indent)
	b.WriteString("public static function ")

	if d.byRef {
		b.WriteByte('&')
	}

	b.WriteString(name)
	d.render(&b, d.tail, d.span.end, d.refs, p.Indent)

	return b.String(), nil
}

// Class renders a class declaration renamed to name. A non-empty extends
// replaces the declared superclass; otherwise the superclass is written as
// an absolute name.
func (p *Printer) Class(name, extends string, d *Decl) (string, error) {
	if d == nil {
		return "", errNilDecl
	}

	if !d.class {
		return "", errors.New("php: function declaration printed as class")
	}

	edits := append([]edit{{start: d.name.start, end: d.name.end, text: name}}, d.refs...)

	if !d.super.empty() {
		if extends == "" {
			extends = d.superFQ
		}

		edits = append(edits, edit{start: d.super.start, end: d.super.end, text: extends})
	}

	var b strings.Builder

	if !d.doc.empty() {
		d.render(&b, d.doc.start, d.doc.end, nil, "")
		b.WriteByte('\n')
	}

	d.render(&b, d.span.start, d.span.end, edits, "")

	return b.String(), nil
}
