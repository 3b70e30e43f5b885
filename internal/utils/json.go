package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxBodyBytes caps request bodies.
const MaxBodyBytes = 4 << 20

var ErrBodyTooLarge = errors.New("request body too large")

// DecodeJSONRequest reads exactly one JSON value into dst. Unknown fields
// and trailing data are rejected.
func DecodeJSONRequest(r *http.Request, dst any) error {
	body, err := ReadRequestBody(r)
	if err != nil {
		return fmt.Errorf("failed to read request body: %w", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()
	if err = decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if decoder.More() {
		return errors.New("invalid JSON: unexpected data after value")
	}
	return nil
}

// ReadRequestBody returns the whole body, failing once it grows past
// MaxBodyBytes.
func ReadRequestBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, err
	}
	if len(body) > MaxBodyBytes {
		return nil, ErrBodyTooLarge
	}
	return body, nil
}
