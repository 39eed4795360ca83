package shared

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// MaxRequestBodyBytes caps request bodies read by DecodeJSON.
const MaxRequestBodyBytes = 64 << 10

// Decode errors.
var (
	ErrEmptyBody    = errors.New("request body is empty")
	ErrTrailingData = errors.New("unexpected data after JSON body")
)

var validate = validator.New()

// DecodeJSON decodes a single JSON value from the request body into v.
// Unknown fields and trailing data are rejected.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return ErrEmptyBody
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, MaxRequestBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return ErrTrailingData
	}
	return nil
}

// ValidateRequest validates v with its own Validate method if it has one,
// otherwise with its struct tags.
func ValidateRequest(v interface{}) error {
	if validator, ok := v.(interface{ Validate() error }); ok {
		return validator.Validate()
	}
	return validate.Struct(v)
}
