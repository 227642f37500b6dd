package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrNoBaseURL       = errors.New("api base url is required")
	ErrInvalidResponse = errors.New("invalid api response")
)

// Error is a non-2xx answer from the backend.
type Error struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
}

func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// StatusCode returns the backend status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func hasStatus(err error, code int) bool {
	return StatusCode(err) == code
}

func newError(method, path string, status int, body []byte) *Error {
	msg := http.StatusText(status)

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case strings.TrimSpace(payload.Error) != "":
			msg = payload.Error
		case strings.TrimSpace(payload.Message) != "":
			msg = payload.Message
		}
	}

	return &Error{Method: method, Path: path, StatusCode: status, Message: msg}
}
