package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/cbuclub/internal/common"
)

var (
	// ErrUnavailable wraps every failure to reach the backend.
	ErrUnavailable = fmt.Errorf("server unavailable: %w", common.ErrTransport)

	// ErrEmptyResponse is returned when a 2xx response that must carry a
	// body has none.
	ErrEmptyResponse = fmt.Errorf("empty response body: %w", common.ErrTransport)
)

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int
	// Code is the machine-readable code, or the status text when absent.
	Code string
	// Message comes from the "message" or "responseMessage" field.
	Message string
	// Reason comes from the "error" field.
	Reason string
	Body   []byte
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Reason
	}
	if msg == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, msg)
}

// Unwrap classifies a response with nothing to show as a transport failure.
func (e *APIError) Unwrap() error {
	if e.Message == "" && e.Reason == "" {
		return common.ErrTransport
	}
	return nil
}

// Text returns Reason, falling back to Message.
func (e *APIError) Text() string {
	if e.Reason != "" {
		return e.Reason
	}
	return e.Message
}

// AsAPIError reports whether err carries an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func parseError(statusCode int, body []byte) error {
	apiErr := &APIError{
		StatusCode: statusCode,
		Code:       http.StatusText(statusCode),
		Body:       body,
	}

	var payload struct {
		Code            string `json:"code"`
		Message         string `json:"message"`
		ResponseMessage string `json:"responseMessage"`
		Error           string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return apiErr
	}

	if payload.Code != "" {
		apiErr.Code = payload.Code
	}
	apiErr.Message = payload.Message
	if apiErr.Message == "" {
		apiErr.Message = payload.ResponseMessage
	}
	apiErr.Reason = payload.Error
	return apiErr
}
