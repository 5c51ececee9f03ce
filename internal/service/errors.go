package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrNotFound is returned when a resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is returned when there is no valid session.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when the session lacks the required role.
	ErrForbidden = errors.New("forbidden")
	// ErrNotValid is returned when a request is rejected as invalid.
	ErrNotValid = errors.New("not valid")
)

// DefaultErrorMessage is used when neither the payload nor the transport say anything useful.
const DefaultErrorMessage = "Unexpected server error."

// ErrorPayload is the decoded shape of an error response body.
// Implementations: StringPayload, MessagePayload, ErrorFieldPayload, FieldPayload, TransportPayload.
type ErrorPayload interface {
	isErrorPayload()
}

// StringPayload is a plain string body.
type StringPayload string

// MessagePayload is an object body with a string "message" field.
type MessagePayload struct{ Message string }

// ErrorFieldPayload is an object body with a string "error" field and no "message".
type ErrorFieldPayload struct{ Error string }

// FieldPayload is an object body whose first string-valued member is Value.
type FieldPayload struct {
	Field string
	Value string
}

// TransportPayload carries a transport-level failure (no usable body).
type TransportPayload struct{ Err error }

func (StringPayload) isErrorPayload()     {}
func (MessagePayload) isErrorPayload()    {}
func (ErrorFieldPayload) isErrorPayload() {}
func (FieldPayload) isErrorPayload()      {}
func (TransportPayload) isErrorPayload()  {}

// ParseErrorPayload decodes a response body into its payload variant.
// A nil return means the body carries no message.
func ParseErrorPayload(body []byte) ErrorPayload {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return nil
	}

	var v any
	if err := json.Unmarshal([]byte(trimmed), &v); err != nil {
		// Not JSON: the server answered with raw text.
		return StringPayload(trimmed)
	}

	switch val := v.(type) {
	case string:
		return StringPayload(val)
	case map[string]any:
		if s, ok := val["message"].(string); ok && s != "" {
			return MessagePayload{Message: s}
		}
		if s, ok := val["error"].(string); ok && s != "" {
			return ErrorFieldPayload{Error: s}
		}
		if k, s, ok := firstStringField([]byte(trimmed)); ok {
			return FieldPayload{Field: k, Value: s}
		}
	}
	return nil
}

// firstStringField walks the top-level object in document order and returns
// the first member whose value is a string.
func firstStringField(data []byte) (string, string, bool) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return "", "", false
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return "", "", false
		}
		key, _ := keyTok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return "", "", false
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return key, s, true
		}
	}
	return "", "", false
}

// PayloadMessage returns the user-visible message carried by the payload.
func PayloadMessage(p ErrorPayload) string {
	switch v := p.(type) {
	case StringPayload:
		return string(v)
	case MessagePayload:
		return v.Message
	case ErrorFieldPayload:
		return v.Error
	case FieldPayload:
		return v.Value
	case TransportPayload:
		if v.Err != nil {
			return v.Err.Error()
		}
	}
	return ""
}

// APIError is a failed API call.
type APIError struct {
	// StatusCode is 0 for transport failures.
	StatusCode int
	Payload    ErrorPayload
}

func (e *APIError) Error() string {
	msg := PayloadMessage(e.Payload)
	if msg == "" {
		if e.StatusCode != 0 {
			msg = fmt.Sprintf("request failed with status %d", e.StatusCode)
		} else {
			msg = DefaultErrorMessage
		}
	}
	return msg
}

// Unwrap maps HTTP status codes onto the package sentinels.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return ErrNotValid
	}
	if tp, ok := e.Payload.(TransportPayload); ok {
		return tp.Err
	}
	return nil
}

// Message derives the single user-visible message for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	if s := err.Error(); s != "" {
		return s
	}
	return DefaultErrorMessage
}
