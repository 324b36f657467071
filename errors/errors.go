package errors

import (
	"fmt"
	"net/http"
	"time"
)

// AppError is the error type every handler maps to an HTTP response
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the raw cause to errors.Is / errors.As
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	details := make(map[string]string, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	e.Details = details
	return e
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusInternalServerError,
		Code:      ErrorCode_INTERNAL,
		Message:   "Internal server error",
		Timestamp: time.Now(),
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode:  http.StatusBadRequest,
		Code:      ErrorCode_INVALID_ARGUMENT,
		Message:   message,
		Timestamp: time.Now(),
	}
}

func ErrInvalidPayload() AppError {
	return AppError{
		HTTPCode:  http.StatusBadRequest,
		Code:      ErrorCode_INVALID_PAYLOAD,
		Message:   "Invalid payload",
		Timestamp: time.Now(),
	}
}

func ErrPayloadTooLarge(limitBytes int64) AppError {
	return AppError{
		HTTPCode:  http.StatusRequestEntityTooLarge,
		Code:      ErrorCode_PAYLOAD_TOO_LARGE,
		Message:   "Uploaded file is too large",
		Timestamp: time.Now(),
	}.WithDetail("limit_bytes", fmt.Sprintf("%d", limitBytes))
}

func ErrUpstreamTimeout(stage string, err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusGatewayTimeout,
		Code:      ErrorCode_TIMEOUT,
		Message:   "Upstream call timed out",
		Timestamp: time.Now(),
	}.WithDetail("stage", stage)
}

func ErrNotConfigured(feature string) AppError {
	return AppError{
		HTTPCode:  http.StatusNotImplemented,
		Code:      ErrorCode_NOT_CONFIGURED,
		Message:   fmt.Sprintf("%s is not enabled on this server", feature),
		Timestamp: time.Now(),
	}
}

// Media Errors
func ErrMissingFile(field string) AppError {
	return AppError{
		HTTPCode:  http.StatusBadRequest,
		Code:      ErrorCode_MEDIA_MISSING_FILE,
		Message:   "Missing media file",
		Timestamp: time.Now(),
	}.WithDetail("field", field)
}

func ErrInvalidMedia(err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusBadRequest,
		Code:      ErrorCode_MEDIA_UNREADABLE,
		Message:   "Uploaded media could not be read",
		Timestamp: time.Now(),
	}
}

func ErrTranscodeFailed(err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusUnprocessableEntity,
		Code:      ErrorCode_MEDIA_TRANSCODE_FAIL,
		Message:   "Failed to normalize media",
		Timestamp: time.Now(),
	}
}

// AI Errors
func ErrClassificationFailed(err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusBadGateway,
		Code:      ErrorCode_AI_CLASSIFICATION_FAILED,
		Message:   "Sentiment classification failed",
		Timestamp: time.Now(),
	}
}

func ErrTranscriptionFailed(err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusBadGateway,
		Code:      ErrorCode_AI_TRANSCRIPTION_FAILED,
		Message:   "Audio transcription failed",
		Timestamp: time.Now(),
	}
}

func ErrGenerationFailed(err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusBadGateway,
		Code:      ErrorCode_AI_GENERATION_FAILED,
		Message:   "Failed to generate coaching reply",
		Timestamp: time.Now(),
	}
}

func ErrAIServiceUnavailable(service string) AppError {
	return AppError{
		HTTPCode:  http.StatusServiceUnavailable,
		Code:      ErrorCode_AI_SERVICE_UNAVAILABLE,
		Message:   "AI service temporarily unavailable",
		Timestamp: time.Now(),
	}.WithDetail("service", service)
}

func ErrAIQuotaExceeded(service string) AppError {
	return AppError{
		HTTPCode:  http.StatusTooManyRequests,
		Code:      ErrorCode_AI_QUOTA_EXCEEDED,
		Message:   "AI service quota exceeded",
		Timestamp: time.Now(),
	}.WithDetail("service", service)
}

// Coaching Errors
func ErrMalformedSentiment(raw string) AppError {
	return AppError{
		HTTPCode:  http.StatusBadRequest,
		Code:      ErrorCode_COACH_MALFORMED_SENTIMENT,
		Message:   "Expected a body of the form \"<context> (<sentiment>).\"",
		Timestamp: time.Now(),
	}.WithDetail("body", raw)
}

func ErrFormatFailed(err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusInternalServerError,
		Code:      ErrorCode_COACH_FORMAT_FAILED,
		Message:   "Failed to format coaching reply",
		Timestamp: time.Now(),
	}
}

// Integration Errors
func ErrStorageFailed(operation string, err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusInternalServerError,
		Code:      ErrorCode_INTEGRATION_STORAGE_FAILED,
		Message:   fmt.Sprintf("Storage operation failed: %s", operation),
		Timestamp: time.Now(),
	}
}

func ErrCacheFailed(operation string, err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusInternalServerError,
		Code:      ErrorCode_INTEGRATION_CACHE_FAILED,
		Message:   fmt.Sprintf("Cache operation failed: %s", operation),
		Timestamp: time.Now(),
	}
}

func ErrExternalAPIFailed(service string, err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusBadGateway,
		Code:      ErrorCode_INTEGRATION_EXTERNAL_API_FAILED,
		Message:   fmt.Sprintf("External API call failed: %s", service),
		Timestamp: time.Now(),
	}
}

// Database Errors
func ErrDBQueryFailed(query string, err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusInternalServerError,
		Code:      ErrorCode_DB_QUERY_FAILED,
		Message:   "Database query failed",
		Timestamp: time.Now(),
	}.WithDetail("query", query)
}
