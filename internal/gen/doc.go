// Package gen emits the output tree of a run from a resolved plan.
//
// Generation uses text/template over pre-rendered declaration text. The
// declarations themselves are printed by a Printer supplied by the parser
// side, so gen never looks inside a declaration.
//
// Output layout (relative to the output directory):
//   - app/<namespace minus root>/<Class>.php: one file per class
//   - app/<Class>.php: global classes, in the global namespace
//   - bindings.php: a forwarding function per relocated function and a
//     class_alias per relocated class
//   - polyfills.php: the extracted polyfill guard blocks
//
// Output is deterministic: the same plan and table produce byte-identical
// files in the same order.
package gen
