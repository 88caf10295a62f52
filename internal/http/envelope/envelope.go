// Package envelope builds the standardized top-level JSON shapes returned by
// every endpoint, so callers can branch on error.code without caring which
// handler produced the response.
package envelope

import "time"

type SuccessResponse struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data"`
	Timestamp string `json:"timestamp"`
	Message   string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Message    string         `json:"message"`
	StatusCode int            `json:"status_code"`
	Timestamp  string         `json:"timestamp"`
	Code       string         `json:"code,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
}

// Success wraps data in the success envelope. message may be empty.
func Success(data any, message string) SuccessResponse {
	return SuccessResponse{
		Success:   true,
		Data:      data,
		Timestamp: Timestamp(),
		Message:   message,
	}
}

// Error builds the error envelope. code and details may be zero values.
func Error(message string, status int, code string, details map[string]any) ErrorResponse {
	return ErrorResponse{
		Error: ErrorBody{
			Message:    message,
			StatusCode: status,
			Timestamp:  Timestamp(),
			Code:       code,
			Details:    details,
		},
	}
}

// Timestamp returns the current UTC instant in RFC 3339 with a trailing Z.
func Timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
