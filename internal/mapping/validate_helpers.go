package mapping

import (
	"fmt"
	"regexp"
	"strings"

	"transmuter/internal/common"
	"transmuter/internal/diagnostic"
)

// phpIdentifier matches a PHP label: letter, underscore or non-ASCII first.
var phpIdentifier = regexp.MustCompile(`^[A-Za-z_\x{80}-\x{10FFFF}][A-Za-z0-9_\x{80}-\x{10FFFF}]*$`)

// IsIdentifier reports whether s is a valid PHP class, method or namespace segment name.
func IsIdentifier(s string) bool {
	return phpIdentifier.MatchString(s)
}

func validateNamespace(res *diagnostic.Diagnostics, ns, src string) {
	if strings.TrimSpace(ns) == "" {
		res.AddError("invalid_namespace", "namespace is empty", "", src)
		return
	}

	for _, seg := range common.NamespaceSegments(ns) {
		if !IsIdentifier(seg) {
			res.AddError("invalid_namespace",
				fmt.Sprintf("namespace segment %q is not a valid identifier", seg), ns, src)
		}
	}
}

func validateIdentifier(res *diagnostic.Diagnostics, code, what, value, src string) {
	if value == "" {
		res.AddError(code, what+" is empty", "", src)
		return
	}

	if !IsIdentifier(value) {
		res.AddError(code, fmt.Sprintf("%s %q is not a valid identifier", what, value), value, src)
	}
}
