// Package errors provides structured errors and lint finding collection for
// manual content.
//
// Content problems are reported as Findings carrying the section, content
// file, JSON pointer and, for embedded sources such as diagrams, the line and
// column. The ErrorCollector gathers findings from the loader and the linter
// and is safe for concurrent use.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrorSeverity represents the severity of a finding.
type ErrorSeverity int

const (
	ErrorSeverityInfo ErrorSeverity = iota
	ErrorSeverityWarning
	ErrorSeverityError
)

// String returns the string representation of the severity
func (s ErrorSeverity) String() string {
	switch s {
	case ErrorSeverityInfo:
		return "info"
	case ErrorSeverityWarning:
		return "warning"
	case ErrorSeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText encodes the severity by name.
func (s ErrorSeverity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Finding is one content problem found while loading or linting.
type Finding struct {
	Code     string        `json:"code"`
	Severity ErrorSeverity `json:"severity"`
	Section  string        `json:"section,omitempty"`
	File     string        `json:"file,omitempty"`
	Pointer  string        `json:"pointer,omitempty"`
	Line     int           `json:"line,omitempty"`
	Column   int           `json:"column,omitempty"`
	Message  string        `json:"message"`
}

// Error implements the error interface
func (f Finding) Error() string {
	location := formatLocation(f.File, f.Pointer, f.Line, f.Column)
	if location == "" {
		location = "<manual>"
	}
	return fmt.Sprintf("%s: %s: %s: %s", location, f.Severity, f.Code, f.Message)
}

// FindingFromError converts err to a finding of the given severity,
// keeping the location of a ManualError.
func FindingFromError(err error, severity ErrorSeverity) Finding {
	var me *ManualError
	if errors.As(err, &me) {
		msg := me.Message
		if me.Cause != nil {
			msg = fmt.Sprintf("%s: %v", msg, me.Cause)
		}
		return Finding{
			Code:     me.Code,
			Severity: severity,
			Section:  me.Section,
			File:     me.FilePath,
			Pointer:  me.Pointer,
			Line:     me.Line,
			Column:   me.Column,
			Message:  msg,
		}
	}
	return Finding{Code: ErrCodeInternalError, Severity: severity, Message: err.Error()}
}

// ErrorCollector collects findings.
type ErrorCollector struct {
	findings []Finding
	mutex    sync.RWMutex
}

// NewErrorCollector creates a new error collector
func NewErrorCollector() *ErrorCollector {
	return &ErrorCollector{
		findings: make([]Finding, 0),
	}
}

// Add adds a finding to the collector
func (ec *ErrorCollector) Add(f Finding) {
	ec.mutex.Lock()
	defer ec.mutex.Unlock()
	ec.findings = append(ec.findings, f)
}

// AddError records err as an error-severity finding.
func (ec *ErrorCollector) AddError(err error) {
	if err == nil {
		return
	}
	ec.Add(FindingFromError(err, ErrorSeverityError))
}

// AddWarning records err as a warning.
func (ec *ErrorCollector) AddWarning(err error) {
	if err == nil {
		return
	}
	ec.Add(FindingFromError(err, ErrorSeverityWarning))
}

// Findings returns every finding ordered by file, pointer, line and code.
func (ec *ErrorCollector) Findings() []Finding {
	ec.mutex.RLock()
	result := make([]Finding, len(ec.findings))
	copy(result, ec.findings)
	ec.mutex.RUnlock()

	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Pointer != b.Pointer {
			return a.Pointer < b.Pointer
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Code < b.Code
	})
	return result
}

// Count returns the number of findings at the given severity.
func (ec *ErrorCollector) Count(severity ErrorSeverity) int {
	ec.mutex.RLock()
	defer ec.mutex.RUnlock()
	n := 0
	for _, f := range ec.findings {
		if f.Severity == severity {
			n++
		}
	}
	return n
}

// HasErrors returns true if any finding has error severity.
func (ec *ErrorCollector) HasErrors() bool {
	return ec.Count(ErrorSeverityError) > 0
}

// Len returns the number of findings of any severity.
func (ec *ErrorCollector) Len() int {
	ec.mutex.RLock()
	defer ec.mutex.RUnlock()
	return len(ec.findings)
}

// Merge appends every finding of other.
func (ec *ErrorCollector) Merge(other *ErrorCollector) {
	if other == nil || other == ec {
		return
	}
	for _, f := range other.Findings() {
		ec.Add(f)
	}
}

// FindingsBySection returns findings for a specific section
func (ec *ErrorCollector) FindingsBySection(section string) []Finding {
	var out []Finding
	for _, f := range ec.Findings() {
		if f.Section == section {
			out = append(out, f)
		}
	}
	return out
}

// Clear clears all findings
func (ec *ErrorCollector) Clear() {
	ec.mutex.Lock()
	defer ec.mutex.Unlock()
	ec.findings = ec.findings[:0]
}

// Err returns nil when there are no error-severity findings, and otherwise
// an error summarizing them.
func (ec *ErrorCollector) Err() error {
	n := ec.Count(ErrorSeverityError)
	if n == 0 {
		return nil
	}
	return NewValidationError("ERR_LINT_FAILED", fmt.Sprintf("content has %d error(s)", n))
}
