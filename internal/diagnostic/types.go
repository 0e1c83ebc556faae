package diagnostic

import (
	"cmp"
	"errors"
	"fmt"
	"go/token"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"

	"prefs-generator/internal/common"
)

// Sink receives diagnostics as they are raised.
type Sink interface {
	Emit(d Diagnostic)
}

// Diagnostics holds all diagnostic information from one run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Location attributes a diagnostic to source.
type Location struct {
	// Interface is the qualified name of the top-level interface.
	Interface string
	// Method is the accessor method name (if any).
	Method string
	// Pos is the most specific source position known.
	Pos token.Position
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	Location

	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Emit implements Sink by routing d on its severity.
func (d *Diagnostics) Emit(diag Diagnostic) {
	switch diag.Severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// Errorf emits an error diagnostic to sink.
func Errorf(sink Sink, code string, loc Location, format string, args ...any) {
	sink.Emit(Diagnostic{
		Location: loc,
		Severity: DiagnosticError,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Warnf emits a warning diagnostic to sink.
func Warnf(sink Sink, code string, loc Location, format string, args ...any) {
	sink.Emit(Diagnostic{
		Location: loc,
		Severity: DiagnosticWarning,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
	})
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message string, loc Location) {
	d.Emit(Diagnostic{Location: loc, Severity: DiagnosticError, Code: code, Message: message})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message string, loc Location) {
	d.Emit(Diagnostic{Location: loc, Severity: DiagnosticWarning, Code: code, Message: message})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message string, loc Location) {
	d.Emit(Diagnostic{Location: loc, Severity: DiagnosticInfo, Code: code, Message: message})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Codes returns the codes of All diagnostics.
func (d *Diagnostics) Codes() []string {
	var codes []string
	for _, diag := range d.All() {
		codes = append(codes, diag.Code)
	}

	return codes
}

// All returns errors, warnings and infos ordered by file position.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)
	all = append(all, d.Infos...)

	slices.SortStableFunc(all, func(a, b Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.Pos.Filename, b.Pos.Filename),
			cmp.Compare(a.Pos.Line, b.Pos.Line),
			cmp.Compare(a.Pos.Column, b.Pos.Column),
		)
	})

	return all
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	var merr *multierror.Error
	for _, e := range d.Errors {
		merr = multierror.Append(merr, errors.New(e.String()))
	}

	if merr != nil {
		merr.ErrorFormat = listFormat
	}

	return merr.ErrorOrNil()
}

func listFormat(errs []error) string {
	parts := make([]string, len(errs))
	for i, err := range errs {
		parts[i] = err.Error()
	}

	return fmt.Sprintf("%d error diagnostic(s): %s", len(errs), strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string:
// "file:line:col: [CODE] pkg.Iface.Method: message (did you mean ...?)".
func (d Diagnostic) String() string {
	var b strings.Builder

	if d.Pos.IsValid() {
		b.WriteString(d.Pos.String())
		b.WriteString(": ")
	}

	if d.Code != "" {
		fmt.Fprintf(&b, "[%s] ", d.Code)
	}

	if subject := d.Subject(); subject != "" {
		b.WriteString(subject)
		b.WriteString(": ")
	}

	b.WriteString(d.Message)

	if len(d.Suggestions) > 0 {
		fmt.Fprintf(&b, " (did you mean %s?)", strings.Join(d.Suggestions, ", "))
	}

	return b.String()
}

// Subject returns "pkg.Iface" or "pkg.Iface.Method" for the location.
func (l Location) Subject() string {
	subject := common.PkgAlias(l.Interface)
	if l.Method == "" {
		return subject
	}

	if subject == "" {
		return l.Method
	}

	return subject + "." + l.Method
}
