package mapping

import (
	"cmp"
	"slices"
)

// SortedFunctionNames returns the function names in persisted order:
// targets sorted by (namespace, class, method), then polyfills in insertion
// order. The symbol name breaks ties so the order is total.
func SortedFunctionNames(t *Table) []string {
	var sortable, polyfills []string

	for _, name := range t.orderedFunctionNames() {
		if t.Functions[name].Polyfill {
			polyfills = append(polyfills, name)
			continue
		}

		sortable = append(sortable, name)
	}

	slices.SortFunc(sortable, func(a, b string) int {
		ea, eb := t.Functions[a], t.Functions[b]

		return cmp.Or(
			cmp.Compare(ea.Namespace, eb.Namespace),
			cmp.Compare(ea.Class, eb.Class),
			cmp.Compare(ea.Method, eb.Method),
			cmp.Compare(a, b),
		)
	})

	return append(sortable, polyfills...)
}
