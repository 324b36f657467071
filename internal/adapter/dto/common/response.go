package common

import "github.com/emotioncoach/emotion-coach/errors"

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Code    errors.ErrorCode `json:"code"`
	Message string           `json:"message"`
	Info    string           `json:"info,omitempty"`
}

// MessageResponse is the liveness body
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse reports service status
type HealthResponse struct {
	Status      string            `json:"status"`
	Service     string            `json:"service"`
	Environment string            `json:"environment"`
	Components  map[string]string `json:"components,omitempty"`
}

// ListResponse wraps history listings
type ListResponse struct {
	Data  interface{} `json:"data"`
	Count int         `json:"count"`
}
