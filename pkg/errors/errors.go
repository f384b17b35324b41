package errors

import "fmt"

// Error codes
const (
	CodeTransport       = "TRANSPORT_ERROR"
	CodeEmptyResponse   = "EMPTY_RESPONSE"
	CodeMalformedResult = "MALFORMED_RESULT"
	CodeDownloadTarget  = "UNAVAILABLE_DOWNLOAD_TARGET"
	CodeValidation      = "VALIDATION_ERROR"
	CodeService         = "SERVICE_ERROR"
)

type AnalysisError struct {
	Message string
	Code    string
	Context map[string]any
	Cause   error
}

func (e *AnalysisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// TransportError signals that the outbound call to the generation service
// could not complete (network, auth, quota). Never retried here; the caller
// decides whether to resubmit.
type TransportError struct {
	*AnalysisError
	Provider string
}

func NewTransportError(provider string, cause error) *TransportError {
	return &TransportError{
		AnalysisError: &AnalysisError{
			Message: fmt.Sprintf("%s request failed", provider),
			Code:    CodeTransport,
			Context: map[string]any{"provider": provider},
			Cause:   cause,
		},
		Provider: provider,
	}
}

// EmptyResponseError signals that the generation service answered with no
// usable text. A hard failure, not an empty-result success.
type EmptyResponseError struct {
	*AnalysisError
	Provider string
}

func NewEmptyResponseError(provider string) *EmptyResponseError {
	return &EmptyResponseError{
		AnalysisError: &AnalysisError{
			Message: fmt.Sprintf("%s returned no response text", provider),
			Code:    CodeEmptyResponse,
			Context: map[string]any{"provider": provider},
		},
		Provider: provider,
	}
}

// MalformedResultError signals that the response text could not be parsed
// into the expected result shape. No partial recovery is attempted.
type MalformedResultError struct {
	*AnalysisError
}

func NewMalformedResultError(message string, cause error) *MalformedResultError {
	return &MalformedResultError{
		AnalysisError: &AnalysisError{
			Message: message,
			Code:    CodeMalformedResult,
			Cause:   cause,
		},
	}
}

// UnavailableDownloadTargetError signals that a download command was
// requested without a configured source URL. Caller-recoverable: prompt for
// a URL and ask again.
type UnavailableDownloadTargetError struct {
	*AnalysisError
	ClipID string
}

func NewUnavailableDownloadTargetError(clipID string) *UnavailableDownloadTargetError {
	return &UnavailableDownloadTargetError{
		AnalysisError: &AnalysisError{
			Message: "no source URL configured for download command",
			Code:    CodeDownloadTarget,
			Context: map[string]any{"clip_id": clipID},
		},
		ClipID: clipID,
	}
}

type ValidationError struct {
	*AnalysisError
	Field string
	Value any
}

func NewValidationError(message, field string, value any) *ValidationError {
	return &ValidationError{
		AnalysisError: &AnalysisError{
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

type ServiceError struct {
	*AnalysisError
	Service   string
	Operation string
}

func NewServiceError(message, service, operation string, cause error) *ServiceError {
	return &ServiceError{
		AnalysisError: &AnalysisError{
			Message: message,
			Code:    CodeService,
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

// Code extracts the taxonomy code from any error produced by this package.
// Errors from elsewhere map to CodeService.
func Code(err error) string {
	switch e := err.(type) {
	case *TransportError:
		return e.Code
	case *EmptyResponseError:
		return e.Code
	case *MalformedResultError:
		return e.Code
	case *UnavailableDownloadTargetError:
		return e.Code
	case *ValidationError:
		return e.Code
	case *ServiceError:
		return e.Code
	case *AnalysisError:
		return e.Code
	default:
		return CodeService
	}
}
