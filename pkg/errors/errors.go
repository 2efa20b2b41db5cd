package errors

import "fmt"

// Error codes
const (
	CodeDashError = "DASH_ERROR"
	CodeAPIError  = "API_ERROR"
	CodeStream    = "STREAM_ERROR"
	CodeCache     = "CACHE_ERROR"
	CodeService   = "SERVICE_ERROR"
	CodeDecode    = "DECODE_ERROR"
)

type DashError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *DashError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DashError) Unwrap() error {
	return e.Cause
}

func NewDashError(message, code string, statusCode int, context map[string]any) *DashError {
	return &DashError{
		Message:    message,
		Code:       code,
		StatusCode: statusCode,
		Context:    context,
	}
}

func (e *DashError) WithCause(cause error) *DashError {
	e.Cause = cause
	return e
}

type APIError struct {
	*DashError
}

func NewAPIError(message string, statusCode int, context map[string]any) *APIError {
	return &APIError{
		DashError: &DashError{
			Message:    message,
			Code:       CodeAPIError,
			StatusCode: statusCode,
			Context:    context,
		},
	}
}

// StreamError marks failures of the incremental response path, including a
// streaming endpoint that answers without a readable body.
type StreamError struct {
	*DashError
}

func NewStreamError(message string, cause error) *StreamError {
	return &StreamError{
		DashError: &DashError{
			Message:    message,
			Code:       CodeStream,
			StatusCode: 502,
			Cause:      cause,
		},
	}
}

type DecodeError struct {
	*DashError
}

func NewDecodeError(message string, cause error) *DecodeError {
	return &DecodeError{
		DashError: &DashError{
			Message:    message,
			Code:       CodeDecode,
			StatusCode: 500,
			Cause:      cause,
		},
	}
}

type CacheError struct {
	*DashError
	Operation string
	Key       string
}

func NewCacheError(message, operation, key string, cause error) *CacheError {
	return &CacheError{
		DashError: &DashError{
			Message:    message,
			Code:       CodeCache,
			StatusCode: 500,
			Context: map[string]any{
				"operation": operation,
				"key":       key,
			},
			Cause: cause,
		},
		Operation: operation,
		Key:       key,
	}
}

type ServiceError struct {
	*DashError
	Service   string
	Operation string
}

func NewServiceError(message, service, operation string, cause error) *ServiceError {
	return &ServiceError{
		DashError: &DashError{
			Message:    message,
			Code:       CodeService,
			StatusCode: 500,
			Context: map[string]any{
				"service":   service,
				"operation": operation,
			},
			Cause: cause,
		},
		Service:   service,
		Operation: operation,
	}
}
