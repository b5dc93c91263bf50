// pkg/batch/error.go
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/David-Botos/data-quality/pkg/source"
)

// ErrorCategory defines categories of errors during a batch run
type ErrorCategory int

const (
	// Error categories with increasing severity
	ErrorCategoryNone ErrorCategory = iota
	ErrorCategoryWarning
	ErrorCategoryDataConversion
	ErrorCategoryValidation
	ErrorCategorySource
	ErrorCategoryConnectionLevel
	ErrorCategoryCanceled
	ErrorCategorySystemLevel
)

// String returns a string representation of the error category
func (ec ErrorCategory) String() string {
	switch ec {
	case ErrorCategoryNone:
		return "None"
	case ErrorCategoryWarning:
		return "Warning"
	case ErrorCategoryDataConversion:
		return "DataConversion"
	case ErrorCategoryValidation:
		return "Validation"
	case ErrorCategorySource:
		return "Source"
	case ErrorCategoryConnectionLevel:
		return "ConnectionLevel"
	case ErrorCategoryCanceled:
		return "Canceled"
	case ErrorCategorySystemLevel:
		return "SystemLevel"
	default:
		return fmt.Sprintf("Unknown(%d)", ec)
	}
}

// ErrorRecord represents a single failure while processing a dataset
type ErrorRecord struct {
	Category    ErrorCategory
	Dataset     string
	Error       error
	Message     string // Derived from Error but stored for serialization
	Timestamp   time.Time
	Recoverable bool
}

// NewErrorRecord creates a new error record with current timestamp
func NewErrorRecord(err error, category ErrorCategory) ErrorRecord {
	record := ErrorRecord{
		Category:    category,
		Error:       err,
		Timestamp:   time.Now(),
		Recoverable: category < ErrorCategorySource,
	}

	if err != nil {
		record.Message = err.Error()
	}

	return record
}

// WithDataset adds dataset information to the error record
func (r ErrorRecord) WithDataset(name string) ErrorRecord {
	r.Dataset = name
	return r
}

// String returns a formatted error message
func (r ErrorRecord) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] ", r.Category))

	if r.Dataset != "" {
		sb.WriteString(fmt.Sprintf("Dataset: %s ", r.Dataset))
	}

	if r.Error != nil {
		sb.WriteString(fmt.Sprintf("Error: %s", r.Error.Error()))
	} else if r.Message != "" {
		sb.WriteString(fmt.Sprintf("Error: %s", r.Message))
	}

	return sb.String()
}

// CategorizeError determines the category of an error.
// Known sentinels are matched first, then the message is inspected.
func CategorizeError(err error) ErrorCategory {
	if err == nil {
		return ErrorCategoryNone
	}

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrorCategoryCanceled
	case errors.Is(err, source.ErrNoUsableRows), errors.Is(err, source.ErrUnsupportedFormat):
		return ErrorCategoryValidation
	case errors.Is(err, os.ErrNotExist):
		return ErrorCategorySource
	case errors.Is(err, os.ErrPermission):
		return ErrorCategorySystemLevel
	}

	msg := err.Error()
	switch {
	// Connection errors
	case strings.Contains(msg, "connection") &&
		(strings.Contains(msg, "refused") ||
			strings.Contains(msg, "timeout") ||
			strings.Contains(msg, "EOF")):
		return ErrorCategoryConnectionLevel

	// Data conversion errors
	case strings.Contains(msg, "convert") ||
		strings.Contains(msg, "parse") ||
		strings.Contains(msg, "decode") ||
		strings.Contains(msg, "unmarshal"):
		return ErrorCategoryDataConversion

	// Validation errors
	case strings.Contains(msg, "validate") ||
		strings.Contains(msg, "invalid"):
		return ErrorCategoryValidation

	// System-level errors
	case strings.Contains(msg, "disk") ||
		strings.Contains(msg, "memory"):
		return ErrorCategorySystemLevel

	// Default to a source error if we can't categorize more specifically
	default:
		return ErrorCategorySource
	}
}
