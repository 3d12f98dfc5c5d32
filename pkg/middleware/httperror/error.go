package httperror

import (
	"fmt"
	"net/http"
)

// Error is an error which knows how it should be presented to the HTTP client.
type Error struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

// Response is the JSON body written for an Error.
type Response struct {
	Status      string `json:"status"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("%d %s: %s: %s", e.StatusCode, e.Code, e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Response returns the body presented to the client, it never contains the wrapped error details.
func (e *Error) Response() Response {
	return Response{
		Status:      "error",
		Code:        e.Code,
		Description: e.Message,
	}
}

// IsClientError reports whether the error was caused by the request.
func (e *Error) IsClientError() bool {
	return e.StatusCode >= http.StatusBadRequest && e.StatusCode < http.StatusInternalServerError
}
