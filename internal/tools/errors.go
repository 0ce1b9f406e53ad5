package tools

import (
	"fmt"

	"github.com/nebulus/blackbox/internal/logger"
)

// ToolError is a structured tool failure. The Message is what the calling
// model sees; code and suggestion feed the logs.
type ToolError struct {
	Code       string
	Message    string
	Suggestion string
}

// Error implements the error interface.
func (e *ToolError) Error() string {
	return e.Message
}

// LogFields returns fields for structured logging.
func (e *ToolError) LogFields() []logger.Field {
	fields := []logger.Field{
		{Key: "error_code", Value: e.Code},
		{Key: "error_message", Value: e.Message},
	}
	if e.Suggestion != "" {
		fields = append(fields, logger.Field{Key: "error_suggestion", Value: e.Suggestion})
	}
	return fields
}

// NewAccessDeniedError creates a path or command denial.
func NewAccessDeniedError(message string) *ToolError {
	return &ToolError{Code: "access_denied", Message: message}
}

// NewNotFoundError creates a "not found" failure.
func NewNotFoundError(message, suggestion string) *ToolError {
	return &ToolError{Code: "not_found", Message: message, Suggestion: suggestion}
}

// NewTimeoutError creates a timeout failure with the bound that expired.
func NewTimeoutError(operation string, seconds int) *ToolError {
	return &ToolError{
		Code:    "timeout",
		Message: fmt.Sprintf("%s timed out after %ds", operation, seconds),
	}
}

// NewUpstreamError creates a network or collaborator failure.
func NewUpstreamError(message string) *ToolError {
	return &ToolError{Code: "upstream_failure", Message: message}
}
