// Package errors provides error types and collection for the content
// pipeline. Scan and build failures are recorded per file so a single bad
// article never aborts a whole scan or site build.
package errors

import (
	"fmt"
	"sync"
	"time"
)

// ErrorSeverity represents the severity of an error
type ErrorSeverity int

const (
	ErrorSeverityInfo ErrorSeverity = iota
	ErrorSeverityWarning
	ErrorSeverityError
	ErrorSeverityFatal
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
	case ErrorSeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// ScanError represents a failure while discovering or parsing an article
type ScanError struct {
	File      string
	Message   string
	Severity  ErrorSeverity
	Timestamp time.Time
	Cause     error
}

// Error implements the error interface
func (se *ScanError) Error() string {
	if se.Cause != nil {
		return fmt.Sprintf("%s: %s: %s: %v", se.File, se.Severity, se.Message, se.Cause)
	}
	return fmt.Sprintf("%s: %s: %s", se.File, se.Severity, se.Message)
}

// Unwrap returns the underlying cause
func (se *ScanError) Unwrap() error {
	return se.Cause
}

// NewScanError creates a scan error for the given file
func NewScanError(file, message string, cause error) *ScanError {
	return &ScanError{
		File:      file,
		Message:   message,
		Severity:  ErrorSeverityError,
		Timestamp: time.Now(),
		Cause:     cause,
	}
}

// BuildError represents a failure while rendering or writing a page
type BuildError struct {
	Page      string
	Message   string
	Severity  ErrorSeverity
	Timestamp time.Time
	Cause     error
}

// Error implements the error interface
func (be *BuildError) Error() string {
	if be.Cause != nil {
		return fmt.Sprintf("%s: %s: %s: %v", be.Page, be.Severity, be.Message, be.Cause)
	}
	return fmt.Sprintf("%s: %s: %s", be.Page, be.Severity, be.Message)
}

// Unwrap returns the underlying cause
func (be *BuildError) Unwrap() error {
	return be.Cause
}

// NewBuildError creates a build error for the given page
func NewBuildError(page, message string, cause error) *BuildError {
	return &BuildError{
		Page:      page,
		Message:   message,
		Severity:  ErrorSeverityError,
		Timestamp: time.Now(),
		Cause:     cause,
	}
}

// ErrorCollector collects errors from a scan or build pass
type ErrorCollector struct {
	errors []error
	mutex  sync.RWMutex
}

// NewErrorCollector creates a new error collector
func NewErrorCollector() *ErrorCollector {
	return &ErrorCollector{
		errors: make([]error, 0),
	}
}

// Add adds an error to the collector, ignoring nil
func (ec *ErrorCollector) Add(err error) {
	if err == nil {
		return
	}
	ec.mutex.Lock()
	defer ec.mutex.Unlock()
	ec.errors = append(ec.errors, err)
}

// Errors returns a copy of all collected errors
func (ec *ErrorCollector) Errors() []error {
	ec.mutex.RLock()
	defer ec.mutex.RUnlock()

	result := make([]error, len(ec.errors))
	copy(result, ec.errors)
	return result
}

// HasErrors returns true if there are any errors
func (ec *ErrorCollector) HasErrors() bool {
	ec.mutex.RLock()
	defer ec.mutex.RUnlock()
	return len(ec.errors) > 0
}

// Count returns the number of collected errors
func (ec *ErrorCollector) Count() int {
	ec.mutex.RLock()
	defer ec.mutex.RUnlock()
	return len(ec.errors)
}

// Clear clears all errors
func (ec *ErrorCollector) Clear() {
	ec.mutex.Lock()
	defer ec.mutex.Unlock()
	ec.errors = ec.errors[:0]
}
