package mapping

import (
	"fmt"
	"time"

	"transmuter/internal/common"
)

// Discovered is the set of symbol names found in the current run.
type Discovered struct {
	Functions common.Set[string]
	Classes   common.Set[string]
}

// Retire returns a copy of t in which every active entry whose symbol was not
// discovered has moved to the outdated table, dated now. Polyfill entries are
// exempt. Existing outdated records are kept; a new record for the same name
// replaces the old one.
func Retire(t *Table, found Discovered, now time.Time) *Table {
	out := t.Clone()
	removed := FormatRemovalDate(now)

	for _, name := range t.orderedFunctionNames() {
		e := t.Functions[name]
		if e.Polyfill || found.Functions.Has(name) {
			continue
		}

		out.DeleteFunction(name)
		out.Outdated.Functions[name] = OutdatedFunction{
			Namespace: e.Namespace,
			Class:     e.Class,
			Method:    e.Method,
			Removed:   removed,
		}
	}

	for name, e := range t.Classes {
		if found.Classes.Has(name) {
			continue
		}

		delete(out.Classes, name)
		out.Outdated.Classes[name] = OutdatedClass{
			Namespace: e.Namespace,
			Class:     e.Class,
			Removed:   removed,
		}
	}

	return out
}

// FormatRemovalDate renders t like "Oct 4th 2024".
func FormatRemovalDate(t time.Time) string {
	return fmt.Sprintf("%s %d%s %d", t.Format("Jan"), t.Day(), ordinalSuffix(t.Day()), t.Year())
}

func ordinalSuffix(day int) string {
	if day%100 >= 11 && day%100 <= 13 {
		return "th"
	}

	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
