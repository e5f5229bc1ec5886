package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnauthenticated is returned before any I/O when an authenticated
	// endpoint is called without a token.
	ErrUnauthenticated = errors.New("not logged in")
	// ErrUnauthorized matches any *Error with a 401 status.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrMalformedResponse wraps bodies that fit none of the expected shapes.
	ErrMalformedResponse = errors.New("malformed response")
)

// Error is a non-2xx answer from the backend.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned %d %s", e.Status, http.StatusText(e.Status))
	}
	return e.Message
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses.
func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// errorMessage extracts a human message from an error body. It understands
// {"message": "..."}, {"message": ["..."]}, {"error": "..."}, a JSON string,
// and falls back to the trimmed raw text.
func errorMessage(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ""
	}
	switch body[0] {
	case '{':
		var obj struct {
			Message json.RawMessage `json:"message"`
			Error   string          `json:"error"`
		}
		if err := json.Unmarshal(body, &obj); err == nil {
			if m := rawMessage(obj.Message); m != "" {
				return m
			}
			return obj.Error
		}
	case '"':
		var s string
		if err := json.Unmarshal(body, &s); err == nil {
			return s
		}
	}
	return string(body)
}

func rawMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, "; ")
	}
	return ""
}
