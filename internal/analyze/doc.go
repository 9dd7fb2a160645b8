// Package analyze collects the function and class declarations of a parsed
// source set.
//
// The package never looks inside a declaration: every declaration carries an
// opaque payload P owned by the parser that produced it, so the collector
// works with any declaration-tree representation.
//
// Key types:
//   - Unit: one parsed source file and the declarations found in it
//   - Function / Class: a top-level declaration with its payload
//   - Symbols: the deduplicated result of Collect
//   - MemberIndex: method names declared by each original class
package analyze
