package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent folds a PHP identifier for fuzzy matching: case is
// dropped along with word separators and a leading namespace separator, so
// "WP_Base_Widget", "wpBaseWidget" and `\wp-base-widget` all normalize to
// "wpbasewidget".
func NormalizeIdent(s string) string {
	s = strings.TrimLeft(s, `\`)

	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}
