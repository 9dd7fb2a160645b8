// Package source finds the PHP files of a source tree and applies the
// configured textual rewrites to them before parsing.
package source
