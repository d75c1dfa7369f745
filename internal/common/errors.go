package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Document-level error taxonomy. Extraction and analysis errors are converted
// into failed records by the pipeline; only export errors reach the caller raw.
var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrExtractionFailed  = errors.New("text extraction failed")
	ErrEmptyContent      = errors.New("no text could be extracted from the document")
	ErrAnalysisFailed    = errors.New("document analysis failed")
	ErrExportFailed      = errors.New("export failed")
	ErrInvalidInput      = errors.New("invalid input")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
