// Package mapping provides the mapping table: YAML schema, loading,
// persistence, default synthesis, validation and the active/outdated
// lifecycle of entries.
//
// The mapping file is the human-maintained source of truth that turns a
// flat set of global PHP functions and classes into a namespaced layout.
//
// # Schema Overview
//
//	functions:
//	  wp_trim_words:                 # function -> static method
//	    namespace: Minnow/Formatting
//	    class: Words
//	    method: trim
//	  wp_die:                        # no class: "global class" Minnow
//	    namespace: Minnow
//	    method: die
//	  array_is_list: polyfill        # not relocated, guard block extracted
//	classes:
//	  WP_Widget:
//	    namespace: Minnow/Widgets
//	    class: Widget
//	outdated:
//	  functions:
//	    wp_old_helper:
//	      namespace: Minnow
//	      class: Misc
//	      method: wp_old_helper
//	      removed: Oct 4th 2024
//	  classes: {}
//
// # Defaults
//
// Symbols without an entry are placed at (root, "Misc", name) for functions
// and (root, name) for classes. Pre-existing entries are never rewritten by
// a run; they only move to "outdated" once their symbol disappears.
//
// # Output Order
//
// Persisted function entries are sorted by (namespace, class, method) with
// polyfill entries appended afterwards in their original order. Classes and
// outdated entries are sorted by symbol name. Re-running on unchanged input
// reproduces the file byte for byte.
package mapping
