package errors

// ErrorCode identifies a failure class in API error bodies.
type ErrorCode int32

const (
	ErrorCode_HTTP_OK ErrorCode = 200

	// General
	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 1003
	ErrorCode_PAYLOAD_TOO_LARGE ErrorCode = 1004
	ErrorCode_TIMEOUT           ErrorCode = 1005
	ErrorCode_NOT_CONFIGURED    ErrorCode = 1006

	// Media
	ErrorCode_MEDIA_MISSING_FILE   ErrorCode = 2000
	ErrorCode_MEDIA_UNREADABLE     ErrorCode = 2001
	ErrorCode_MEDIA_TRANSCODE_FAIL ErrorCode = 2002

	// Inference
	ErrorCode_AI_CLASSIFICATION_FAILED ErrorCode = 3000
	ErrorCode_AI_TRANSCRIPTION_FAILED  ErrorCode = 3001
	ErrorCode_AI_GENERATION_FAILED     ErrorCode = 3002
	ErrorCode_AI_QUOTA_EXCEEDED        ErrorCode = 3003
	ErrorCode_AI_SERVICE_UNAVAILABLE   ErrorCode = 3004

	// Coaching
	ErrorCode_COACH_MALFORMED_SENTIMENT ErrorCode = 4000
	ErrorCode_COACH_FORMAT_FAILED       ErrorCode = 4001

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED      ErrorCode = 5000
	ErrorCode_INTEGRATION_CACHE_FAILED        ErrorCode = 5001
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED ErrorCode = 5002
	ErrorCode_DB_QUERY_FAILED                 ErrorCode = 5003
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                         "HTTP_OK",
	ErrorCode_INTERNAL:                        "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:                "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                       "NOT_FOUND",
	ErrorCode_INVALID_PAYLOAD:                 "INVALID_PAYLOAD",
	ErrorCode_PAYLOAD_TOO_LARGE:               "PAYLOAD_TOO_LARGE",
	ErrorCode_TIMEOUT:                         "TIMEOUT",
	ErrorCode_NOT_CONFIGURED:                  "NOT_CONFIGURED",
	ErrorCode_MEDIA_MISSING_FILE:              "MEDIA_MISSING_FILE",
	ErrorCode_MEDIA_UNREADABLE:                "MEDIA_UNREADABLE",
	ErrorCode_MEDIA_TRANSCODE_FAIL:            "MEDIA_TRANSCODE_FAIL",
	ErrorCode_AI_CLASSIFICATION_FAILED:        "AI_CLASSIFICATION_FAILED",
	ErrorCode_AI_TRANSCRIPTION_FAILED:         "AI_TRANSCRIPTION_FAILED",
	ErrorCode_AI_GENERATION_FAILED:            "AI_GENERATION_FAILED",
	ErrorCode_AI_QUOTA_EXCEEDED:               "AI_QUOTA_EXCEEDED",
	ErrorCode_AI_SERVICE_UNAVAILABLE:          "AI_SERVICE_UNAVAILABLE",
	ErrorCode_COACH_MALFORMED_SENTIMENT:       "COACH_MALFORMED_SENTIMENT",
	ErrorCode_COACH_FORMAT_FAILED:             "COACH_FORMAT_FAILED",
	ErrorCode_INTEGRATION_STORAGE_FAILED:      "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:        "INTEGRATION_CACHE_FAILED",
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED: "INTEGRATION_EXTERNAL_API_FAILED",
	ErrorCode_DB_QUERY_FAILED:                 "DB_QUERY_FAILED",
}

// String returns the symbolic name of the code.
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
