// Package pipeline runs one transmutation pass end to end: load the
// mapping, discover and parse sources, resolve targets, check for
// conflicts, retire vanished symbols, generate and write the output.
//
// A pass either writes everything or nothing. Conflicts and invalid
// mapping entries are detected before the output directory is touched.
package pipeline
