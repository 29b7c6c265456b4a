package apiclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Kind classifies why a backend call failed.
type Kind int

const (
	// KindServerRejected means the backend answered with a non-2xx status.
	KindServerRejected Kind = iota + 1
	// KindNoResponse means the request was sent but no response arrived.
	KindNoResponse
	// KindRequestSetup means the request could not be constructed.
	KindRequestSetup
)

func (k Kind) String() string {
	switch k {
	case KindServerRejected:
		return "server_rejected"
	case KindNoResponse:
		return "no_response"
	case KindRequestSetup:
		return "request_setup"
	default:
		return "unknown"
	}
}

// Error is returned by every Client call that does not succeed.
type Error struct {
	Kind   Kind
	Method string
	Path   string
	Status int
	Body   []byte
	// Message is a plain message sent by the backend, either as the whole
	// body or as its "message" field.
	Message string
	// ValidationErrors is the field-keyed map of a model validation failure.
	ValidationErrors map[string][]string
	Err              error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindServerRejected:
		return fmt.Sprintf("apiclient: %s %s: status %d: %s", e.Method, e.Path, e.Status, e.Detail())
	case KindNoResponse:
		return fmt.Sprintf("apiclient: %s %s: no response: %v", e.Method, e.Path, e.Err)
	default:
		return fmt.Sprintf("apiclient: %s %s: request setup: %v", e.Method, e.Path, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Detail renders the server-provided reason in human readable form.
func (e *Error) Detail() string {
	if e.Kind != KindServerRejected {
		if e.Err != nil {
			return e.Err.Error()
		}
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if len(e.ValidationErrors) > 0 {
		return "Validation Errors: " + FlattenValidationErrors(e.ValidationErrors)
	}
	return fmt.Sprintf("Server responded with status %d.", e.Status)
}

// FlattenValidationErrors joins a field-keyed error map as
// "Field: a, b; Other: c" with fields in sorted order.
func FlattenValidationErrors(fields map[string][]string) string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", key, strings.Join(fields[key], ", ")))
	}
	return strings.Join(parts, "; ")
}

type serverBody struct {
	Message       string              `json:"message"`
	MessagePascal string              `json:"Message"`
	Errors        map[string][]string `json:"errors"`
}

func newServerError(method, path string, status int, body []byte) *Error {
	apiErr := &Error{
		Kind:   KindServerRejected,
		Method: method,
		Path:   path,
		Status: status,
		Body:   body,
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return apiErr
	}
	switch trimmed[0] {
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err == nil {
			apiErr.Message = strings.TrimSpace(text)
			return apiErr
		}
	case '{':
		var parsed serverBody
		if err := json.Unmarshal(trimmed, &parsed); err == nil {
			apiErr.Message = strings.TrimSpace(parsed.Message)
			if apiErr.Message == "" {
				apiErr.Message = strings.TrimSpace(parsed.MessagePascal)
			}
			apiErr.ValidationErrors = parsed.Errors
			return apiErr
		}
	}
	if isPlainText(trimmed) {
		apiErr.Message = string(trimmed)
	}
	return apiErr
}

func isPlainText(body []byte) bool {
	return len(body) > 0 && body[0] != '{' && body[0] != '['
}

// Describe builds the inline message shown to the user for a failed action,
// e.g. Describe("update company", err).
func Describe(action string, err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return fmt.Sprintf("Failed to %s: %v", action, err)
	}
	switch apiErr.Kind {
	case KindServerRejected:
		return fmt.Sprintf("Failed to %s: %s", action, apiErr.Detail())
	case KindNoResponse:
		return fmt.Sprintf("Failed to %s: No response from server. Check network connection.", action)
	default:
		return fmt.Sprintf("Failed to %s: Error setting up request.", action)
	}
}

// StatusOf returns the backend status code carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Kind == KindServerRejected {
		return apiErr.Status
	}
	return 0
}

// IsNotFound reports whether the backend answered 404.
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}

// KindOf returns the failure kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}
