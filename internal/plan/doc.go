// Package plan turns collected symbols and the mapping table into the
// namespaced layout consumed by code generation.
//
// Resolution pipeline:
//  1. Resolve every function entry, synthesizing defaults for unmapped
//     functions and reinstating retired ones, and group the functions
//     into the classes they become methods of
//  2. Resolve every class entry (pass one)
//  3. Rename each class and rewrite its superclass against the entries of
//     pass one (pass two)
//  4. Order the namespace tree and method lists lexically
//
// DetectConflicts then checks the plan for targets claimed twice; any
// conflict is fatal and reported as a *ConflictError.
package plan
