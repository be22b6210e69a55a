package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ErrorKind classifies an API failure for the action boundary. The UI-facing
// layer switches on the kind; the message is already displayable.
type ErrorKind string

const (
	KindAuthentication ErrorKind = "authentication"
	KindAuthorization  ErrorKind = "authorization"
	KindNotFound       ErrorKind = "not_found"
	KindValidation     ErrorKind = "validation"
	KindNetwork        ErrorKind = "network"
	KindServer         ErrorKind = "server"
)

// APIError is any failure talking to the HR backend. Fields holds the
// per-field messages of a validation rejection for best-effort mapping back
// onto a form.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Fields     map[string][]string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// IsKind reports whether err carries an APIError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

func networkError(err error) *APIError {
	return &APIError{
		Kind:    KindNetwork,
		Message: fmt.Sprintf("cannot reach the server: %v", err),
	}
}

// newStatusError turns a non-2xx response into an APIError, flattening the
// backend's error payload. The backend speaks several dialects: a bare
// string, {"detail": ...}, {"error": ...}, {"non_field_errors": [...]} and
// {"field": ["msg", ...]}; all of them collapse into one message.
func newStatusError(statusCode int, body []byte) *APIError {
	e := &APIError{
		StatusCode: statusCode,
		Kind:       kindForStatus(statusCode),
		Message:    http.StatusText(statusCode),
	}

	if len(body) == 0 {
		return e
	}

	var asString string
	if err := json.Unmarshal(body, &asString); err == nil {
		e.Message = asString
		return e
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		e.Message = strings.TrimSpace(string(body))
		return e
	}

	if msg, ok := stringField(payload, "detail"); ok {
		e.Message = msg
		return e
	}
	if msg, ok := stringField(payload, "error"); ok {
		e.Message = msg
		return e
	}
	if msgs, ok := stringListField(payload, "non_field_errors"); ok && len(msgs) > 0 {
		e.Message = strings.Join(msgs, ", ")
		return e
	}

	// remaining keys are per-field validation messages
	fields := make(map[string][]string)
	for key, raw := range payload {
		var list []string
		if err := json.Unmarshal(raw, &list); err == nil {
			fields[key] = list
			continue
		}
		var single string
		if err := json.Unmarshal(raw, &single); err == nil {
			fields[key] = []string{single}
		}
	}
	if len(fields) > 0 {
		e.Fields = fields
		if e.Kind == KindServer && statusCode < http.StatusInternalServerError {
			e.Kind = KindValidation
		}
		e.Message = flattenFields(fields)
	}
	return e
}

func kindForStatus(statusCode int) ErrorKind {
	switch {
	case statusCode == http.StatusUnauthorized:
		return KindAuthentication
	case statusCode == http.StatusForbidden:
		return KindAuthorization
	case statusCode == http.StatusNotFound:
		return KindNotFound
	case statusCode == http.StatusBadRequest:
		return KindValidation
	default:
		return KindServer
	}
}

func stringField(payload map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := payload[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func stringListField(payload map[string]json.RawMessage, key string) ([]string, bool) {
	raw, ok := payload[key]
	if !ok {
		return nil, false
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, false
	}
	return list, true
}

func flattenFields(fields map[string][]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(fields[k], ", ")))
	}
	return strings.Join(parts, "; ")
}
