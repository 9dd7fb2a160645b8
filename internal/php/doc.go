// Package php parses PHP source units with tree-sitter and prints relocated
// declarations back out.
//
// Parser produces analyze.Unit values whose payload is a *Decl: byte spans
// into the unit's source plus the class references found inside the
// declaration. Printer splices those spans into a public static method or a
// renamed class. Bodies are copied byte for byte; only names change:
//   - the declaration's own name and superclass
//   - unqualified class references, which gain a leading `\` so they keep
//     resolving to the global class once the code sits in a namespace
//   - names imported with `use`, which are expanded to their full name
package php
