package errors

import "fmt"

// Error codes
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeReferenceData = "REFERENCE_DATA_ERROR"
	CodeStore         = "STORE_ERROR"
	CodeInternal      = "INTERNAL_ERROR"
)

type ChatbotError struct {
	Message string
	Code    string
	Context map[string]any
	Cause   error
}

func (e *ChatbotError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ChatbotError) Unwrap() error {
	return e.Cause
}

func (e *ChatbotError) WithCause(cause error) *ChatbotError {
	e.Cause = cause
	return e
}

// ValidationError marks bad user input (missing income, malformed amount).
// Reported back to the user with guidance, never logged as a system failure.
type ValidationError struct {
	*ChatbotError
	Field string
	Value any
}

func NewValidationError(message, field string, value any) *ValidationError {
	return &ValidationError{
		ChatbotError: &ChatbotError{
			Message: message,
			Code:    CodeValidation,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

// ReferenceDataError marks missing or empty reference collections (no tax
// brackets loaded). The user sees a service-degraded message.
type ReferenceDataError struct {
	*ChatbotError
	Collection string
}

func NewReferenceDataError(message, collection string) *ReferenceDataError {
	return &ReferenceDataError{
		ChatbotError: &ChatbotError{
			Message: message,
			Code:    CodeReferenceData,
			Context: map[string]any{
				"collection": collection,
			},
		},
		Collection: collection,
	}
}

// StoreError wraps database and cache failures from the storage layer.
type StoreError struct {
	*ChatbotError
	Operation string
	Table     string
}

func NewStoreError(message, operation, table string, cause error) *StoreError {
	return &StoreError{
		ChatbotError: &ChatbotError{
			Message: message,
			Code:    CodeStore,
			Context: map[string]any{
				"operation": operation,
				"table":     table,
			},
			Cause: cause,
		},
		Operation: operation,
		Table:     table,
	}
}

// InternalError covers unexpected failures anywhere in the pipeline. Logged
// with context and converted to a generic apologetic response.
type InternalError struct {
	*ChatbotError
	Component string
}

func NewInternalError(message, component string, cause error) *InternalError {
	return &InternalError{
		ChatbotError: &ChatbotError{
			Message: message,
			Code:    CodeInternal,
			Context: map[string]any{
				"component": component,
			},
			Cause: cause,
		},
		Component: component,
	}
}
