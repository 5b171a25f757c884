// Package bind decodes HTTP request bodies.
package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// DefaultMaxBytes caps request bodies when the caller passes no limit.
const DefaultMaxBytes int64 = 4 << 20

var (
	// ErrInvalidJSON is returned for bodies that are not a JSON object.
	ErrInvalidJSON = errors.New("invalid JSON body")
	// ErrTooLarge is returned when the body exceeds the limit.
	ErrTooLarge = errors.New("request body too large")
)

// Fields decodes the body as a JSON object. Numbers are kept as json.Number
// so the caller decides how to coerce them.
func Fields(r *http.Request, maxBytes int64) (map[string]any, error) {
	raw, err := read(r, maxBytes)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var out map[string]any
	if err := dec.Decode(&out); err != nil || out == nil {
		return nil, ErrInvalidJSON
	}
	if dec.More() {
		return nil, ErrInvalidJSON
	}
	return out, nil
}

func read(r *http.Request, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if r.Body == nil {
		return nil, ErrInvalidJSON
	}
	raw, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, maxBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("%w (max %d bytes)", ErrTooLarge, maxErr.Limit)
		}
		return nil, ErrInvalidJSON
	}
	return raw, nil
}
