package diagnostic

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"transmuter/internal/common"
)

// Severity ranks a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns the lower-case severity name used in reports.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Diagnostic is one finding about a target name.
type Diagnostic struct {
	Severity Severity
	// Code identifies the kind of finding, e.g. "method_conflict".
	Code    string
	Message string
	// Target is the name the finding is about, e.g. `Minnow\Misc::foo`.
	Target string
	// Sources lists the symbols that produced Target, in discovery order.
	Sources []string
	// Suggestions are near-miss names the user may have meant.
	Suggestions []string
}

// String renders the diagnostic as "target: [code] message".
func (d Diagnostic) String() string {
	var b strings.Builder

	if d.Target != "" {
		b.WriteString(d.Target)
		b.WriteString(": ")
	}

	if d.Code != "" {
		fmt.Fprintf(&b, "[%s] ", d.Code)
	}

	b.WriteString(d.Message)

	return b.String()
}

// Diagnostics collects findings by severity. The zero value is ready to use.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// AddError records an error; sources are the contributing symbols.
func (d *Diagnostics) AddError(code, message, target string, sources ...string) {
	d.add(Diagnostic{Severity: SeverityError, Code: code, Message: message, Target: target, Sources: sources})
}

// AddWarning records a warning with optional suggestions.
func (d *Diagnostics) AddWarning(code, message, target string, suggestions ...string) {
	d.add(Diagnostic{Severity: SeverityWarning, Code: code, Message: message, Target: target, Suggestions: suggestions})
}

// AddInfo records an informational finding.
func (d *Diagnostics) AddInfo(code, message, target string) {
	d.add(Diagnostic{Severity: SeverityInfo, Code: code, Message: message, Target: target})
}

func (d *Diagnostics) add(diag Diagnostic) {
	switch diag.Severity {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// Merge appends every finding of other.
func (d *Diagnostics) Merge(other Diagnostics) {
	for _, group := range [][]Diagnostic{other.Errors, other.Warnings, other.Infos} {
		for _, diag := range group {
			d.add(diag)
		}
	}
}

// IsValid reports whether no error was recorded.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error joins every error finding into one error, or returns nil.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// Report writes every finding, errors first. Sources and suggestions are
// listed under their finding so a whole mapping can be fixed in one pass.
func (d *Diagnostics) Report(w io.Writer) {
	for _, group := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
		for _, diag := range group {
			_, _ = fmt.Fprintf(w, "%s: %s\n", diag.Severity, diag)

			for _, src := range diag.Sources {
				_, _ = fmt.Fprintf(w, "  - %s\n", src)
			}

			if len(diag.Suggestions) > 0 {
				_, _ = fmt.Fprintf(w, "  did you mean: %s\n", strings.Join(diag.Suggestions, ", "))
			}
		}
	}
}
