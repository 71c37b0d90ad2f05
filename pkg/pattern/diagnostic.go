// Package pattern reads and writes cell states in a Life 1.05 flavoured
// plaintext format. Parsing is best effort: it always yields a state and
// reports everything odd it met as diagnostics.
package pattern

import (
	"errors"
	"fmt"

	"unbounded-life/pkg/cellstate"
	"unbounded-life/pkg/rule"
)

// DiagnosticKind classifies a parse diagnostic.
type DiagnosticKind int

const (
	UnexpectedInput DiagnosticKind = iota
	UnexpectedCharacter
	UnexpectedHeader
	UnexpectedShortLine
	UnexpectedBlankLine
	UnexpectedEmptyFile
	RuleNotSupported
	DuplicateTopLeftCoordinate
)

var kindNames = [...]string{
	UnexpectedInput:            "unexpected-input",
	UnexpectedCharacter:        "unexpected-character",
	UnexpectedHeader:           "unexpected-header",
	UnexpectedShortLine:        "unexpected-short-line",
	UnexpectedBlankLine:        "unexpected-blank-line",
	UnexpectedEmptyFile:        "unexpected-empty-file",
	RuleNotSupported:           "rule-not-supported",
	DuplicateTopLeftCoordinate: "duplicate-top-left-coordinate",
}

func (k DiagnosticKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("diagnostic(%d)", int(k))
}

// Diagnostic is a non-fatal parse problem. Line is 1-based and 0 when the
// diagnostic concerns the whole input; Char is 0-based and -1 when it does
// not apply.
type Diagnostic struct {
	Kind   DiagnosticKind
	Line   int
	Char   int
	Input  string
	Offset cellstate.Coord
}

func (d Diagnostic) String() string {
	switch d.Kind {
	case UnexpectedInput:
		return fmt.Sprintf("Unexpected input %q starting on line %d, character %d", d.Input, d.Line, d.Char)
	case UnexpectedCharacter:
		return fmt.Sprintf("Unexpected character %s on line %d, offset %d interpreted as on", d.Input, d.Line, d.Char)
	case UnexpectedHeader:
		return "Unexpected header, found " + d.Input
	case UnexpectedShortLine:
		return fmt.Sprintf("Line %d is unexpectedly short", d.Line)
	case UnexpectedBlankLine:
		return fmt.Sprintf("Unexpected blank line at line %d", d.Line)
	case UnexpectedEmptyFile:
		return "Unexpected empty file, assuming blank pattern"
	case RuleNotSupported:
		return "Ruleset not supported"
	case DuplicateTopLeftCoordinate:
		return fmt.Sprintf("Duplicate top-left coordinate instruction, overwriting with (%d, %d)", d.Offset.X, d.Offset.Y)
	}
	return d.Kind.String()
}

// Error lets a Diagnostic travel as an error for strict callers.
func (d Diagnostic) Error() string { return d.String() }

// Result is the outcome of parsing.
type Result struct {
	State       cellstate.CellState
	Diagnostics []Diagnostic
	Rule        rule.Rule
	Name        string
	Comments    []string
}

// Err joins every diagnostic into one error, or returns nil when the input
// parsed cleanly.
func (r Result) Err() error {
	if len(r.Diagnostics) == 0 {
		return nil
	}
	errs := make([]error, len(r.Diagnostics))
	for i, d := range r.Diagnostics {
		errs[i] = d
	}
	return errors.Join(errs...)
}

// Has reports whether any diagnostic of kind k was produced.
func (r Result) Has(k DiagnosticKind) bool {
	for _, d := range r.Diagnostics {
		if d.Kind == k {
			return true
		}
	}
	return false
}
