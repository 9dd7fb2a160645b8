package php

import (
	"fmt"
	"slices"
	"strings"
)

// span is a half-open byte range into a unit's source.
type span struct {
	start, end uint32
}

func (s span) empty() bool {
	return s.end <= s.start
}

func (s span) contains(off uint32) bool {
	return off >= s.start && off < s.end
}

// edit replaces src[start:end] with text. start == end inserts.
type edit struct {
	start, end uint32
	text       string
}

// Decl is the payload of one collected declaration.
type Decl struct {
	src   []byte
	class bool

	span    span   // declaration, leading doc comment excluded
	doc     span   // leading /** */ comment
	name    span
	col     uint32 // column the declaration starts at
	attrs   span   // functions: attribute lists before the keyword
	tail    uint32 // functions: start of the parameter list
	byRef   bool   // functions: declared with &
	super   span   // classes: superclass name
	superFQ string // classes: superclass as an absolute name

	refs     []edit // rewrites of class references inside span
	verbatim []span // string literals, never re-indented
}

// String keeps debug dumps short; the source itself is not printed.
func (d *Decl) String() string {
	kind := "function"
	if d.class {
		kind = "class"
	}

	return fmt.Sprintf("%s %s [%d:%d]", kind, d.text(d.name), d.span.start, d.span.end)
}

// Text returns the original declaration text.
func (d *Decl) Text() string {
	return d.text(d.span)
}

func (d *Decl) text(s span) string {
	return string(d.src[s.start:s.end])
}

func (d *Decl) inVerbatim(off uint32) bool {
	for _, v := range d.verbatim {
		if v.contains(off) {
			return true
		}
	}

	return false
}

// render copies src[from:to] into b applying edits. After every newline
// outside a string literal up to d.col leading blanks are dropped and
// indent is written instead, unless the line is empty.
func (d *Decl) render(b *strings.Builder, from, to uint32, edits []edit, indent string) {
	edits = slices.DeleteFunc(slices.Clone(edits), func(e edit) bool {
		return e.start < from || e.end > to
	})
	slices.SortFunc(edits, func(a, b edit) int {
		return int(a.start) - int(b.start)
	})

	k := 0
	for i := from; i < to; {
		if k < len(edits) && edits[k].start <= i {
			e := edits[k]
			k++

			if e.start < i {
				continue // overlapped by a previous edit
			}

			b.WriteString(e.text)
			i = e.end

			continue
		}

		c := d.src[i]
		b.WriteByte(c)
		i++

		if c != '\n' || d.inVerbatim(i) {
			continue
		}

		for n := uint32(0); n < d.col && i < to && isBlank(d.src[i]); n++ {
			i++
		}

		if i < to && d.src[i] != '\n' && d.src[i] != '\r' {
			b.WriteString(indent)
		}
	}
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}
