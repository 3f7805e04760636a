package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput   = errors.New("input is empty or contains only whitespace")
	ErrInvalidJSON  = errors.New("invalid JSON format")
	ErrMultipleJSON = errors.New("multiple JSON values found at the root, only one is allowed")
	ErrNoLeague     = errors.New("no league id provided: pass one with --league or set league_id in the config file")
	ErrBadStatus    = errors.New("unexpected HTTP status")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput   ErrorType = "input"
	ErrorTypeConfig  ErrorType = "config"
	ErrorTypeParsing ErrorType = "parsing"
	ErrorTypeFetch   ErrorType = "fetch"
	ErrorTypeSurvey  ErrorType = "survey"
	ErrorTypeReport  ErrorType = "report"
	ErrorTypeOutput  ErrorType = "output"
	ErrorTypeUnknown ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewInputError creates a new error related to input processing
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewConfigError creates a new error related to configuration
func NewConfigError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfig,
		Message: message,
		Err:     err,
	}
}

// NewParsingError creates a new error related to JSON parsing
func NewParsingError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeParsing,
		Message: message,
		Err:     err,
	}
}

// NewFetchError creates a new error related to an API request
func NewFetchError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeFetch,
		Message: message,
		Err:     err,
	}
}

// NewSurveyError creates a new error related to the endpoint survey
func NewSurveyError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeSurvey,
		Message: message,
		Err:     err,
	}
}

// NewReportError creates a new error related to report generation
func NewReportError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeReport,
		Message: message,
		Err:     err,
	}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeOutput,
		Message: message,
		Err:     err,
	}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeConfig:
			return fmt.Sprintf("Configuration error: %s", appErr.Message)
		case ErrorTypeParsing:
			return fmt.Sprintf("JSON parsing error: %s", appErr.Message)
		case ErrorTypeFetch:
			return fmt.Sprintf("API request error: %s", appErr.Message)
		case ErrorTypeSurvey:
			return fmt.Sprintf("Survey error: %s", appErr.Message)
		case ErrorTypeReport:
			return fmt.Sprintf("Report generation error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrEmptyInput) {
		return "Error: The response body is empty. The endpoint may not exist for this league."
	}
	if errors.Is(err, ErrInvalidJSON) {
		return "Error: The response contains invalid JSON."
	}
	if errors.Is(err, ErrMultipleJSON) {
		return "Error: Multiple JSON values found where a single document was expected."
	}
	if errors.Is(err, ErrNoLeague) {
		return "Error: No league id provided. Pass one with --league or set league_id in the config file."
	}
	if errors.Is(err, ErrBadStatus) {
		return "Error: The API returned an unexpected HTTP status."
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}
