package common

import "strings"

// UnknownStr is the String() fallback for out-of-range enum values.
const UnknownStr = "unknown"

// NamespaceSegments splits a mapping namespace on either "/" or "\".
// Empty segments are dropped, so "Minnow//Widgets/" yields [Minnow Widgets].
func NamespaceSegments(ns string) []string {
	fields := strings.FieldsFunc(ns, func(r rune) bool {
		return r == '/' || r == '\\'
	})

	return fields
}

// PHPNamespace returns ns with PHP "\" separators and no leading separator.
func PHPNamespace(ns string) string {
	return strings.Join(NamespaceSegments(ns), `\`)
}

// FullyQualified joins the given parts into an absolute PHP name such as
// `\Minnow\Widgets\Widget`. Each part may itself contain separators.
func FullyQualified(parts ...string) string {
	var segs []string
	for _, p := range parts {
		segs = append(segs, NamespaceSegments(p)...)
	}

	return `\` + strings.Join(segs, `\`)
}
