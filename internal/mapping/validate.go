package mapping

import (
	"fmt"

	"transmuter/internal/common"
	"transmuter/internal/diagnostic"
)

// Validate checks every active entry for structural problems: empty
// namespaces, malformed identifiers, functions without a method. It does not
// look for collisions between entries; that needs the discovered symbols.
func Validate(t *Table) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if t == nil {
		res.AddError("table_is_nil", "mapping table is nil", "")
		return res
	}

	for _, name := range common.SortedKeys(t.Functions) {
		e := t.Functions[name]
		if e.Polyfill {
			continue
		}

		src := fmt.Sprintf("function %s()", name)

		validateNamespace(res, e.Namespace, src)

		if e.Class != "" {
			validateIdentifier(res, "invalid_class", "class", e.Class, src)
		} else if len(common.NamespaceSegments(e.Namespace)) > 1 {
			res.AddError("invalid_global_class",
				fmt.Sprintf("function without class needs a single-segment namespace to act as a global class, got %q", e.Namespace),
				e.Namespace, src)
		}

		validateIdentifier(res, "invalid_method", "method", e.Method, src)
	}

	for _, name := range common.SortedKeys(t.Classes) {
		e := t.Classes[name]
		src := "class " + name

		validateNamespace(res, e.Namespace, src)
		validateIdentifier(res, "invalid_class", "class", e.Class, src)
	}

	return res
}
