package backend

import (
	"errors"
	"fmt"
)

// APIError is a non-2xx backend response, normalized at the client
// boundary: Message already holds the user-facing text selected per
// the backend's dual-field convention, so callers never branch on the
// status code again.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: status %d: %s", e.Status, e.Message)
}

// newAPIError selects the user-facing message from the error payload.
// The backend puts the unauthorized text in the "error" field of 401
// responses and the generic text in "message" for everything else.
// This is a quirk of the backend wire format and is preserved as-is.
func newAPIError(status int, message, unauthorized string) *APIError {
	text := message
	if status == 401 && unauthorized != "" {
		text = unauthorized
	}
	if text == "" {
		text = fmt.Sprintf("request failed with status %d", status)
	}
	return &APIError{Status: status, Message: text}
}

// UserMessage extracts the text to surface for any client error:
// the normalized message for API errors, err.Error() otherwise.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
