// Package requests turns decoded JSON bodies into validated inputs.
//
// Every function here is pure: it takes the raw field map produced by
// bind.Fields and returns either a typed input or a *ValidationError.
package requests

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ValidationError is a 400-class failure. Missing and Invalid name the
// offending fields in a fixed order.
type ValidationError struct {
	Message string   `json:"message"`
	Missing []string `json:"missing,omitempty"`
	Invalid []string `json:"invalid,omitempty"`
	Hint    string   `json:"hint,omitempty"`

	// LoginAttempt marks a sign-up body that only lacks a username, which
	// usually means the client meant to log in.
	LoginAttempt bool `json:"-"`
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// first returns the first synonym present with a non-null value.
func first(raw map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// text converts a JSON scalar to its string form.
func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// trimmed returns the trimmed text of the first present synonym.
func trimmed(raw map[string]any, keys ...string) (string, bool) {
	v, ok := first(raw, keys...)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(text(v)), true
}

func ptr(s string) *string { return &s }

// Field synonyms accepted by the user endpoints.
var (
	usernameKeys = []string{"username", "userName", "user_name"}
	emailKeys    = []string{"email", "mail"}
	passwordKeys = []string{"password", "pass"}
)
