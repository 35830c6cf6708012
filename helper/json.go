package helper

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var Validator *validator.Validate

func init() {
	Validator = validator.New(validator.WithRequiredStructEnabled())
	// report json field names so error paths match the request body
	Validator.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

func WriteJson(w http.ResponseWriter, status int, payload any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(payload)
}

func ReadJson(w http.ResponseWriter, r *http.Request, payload any) error {
	maxBytes := 1_048_578
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(payload); err != nil {
		if errors.Is(err, io.EOF) {
			return BadRequest("request body is required")
		}
		return BadRequest(fmt.Sprintf("malformed request body: %v", err))
	}
	return nil
}

// Normalizer is implemented by request DTOs that clean their input before validation.
type Normalizer interface {
	Normalize()
}

// ReadAndValidate decodes the body into payload, normalizes it and runs the
// struct validator. The returned error is ready for WriteError.
func ReadAndValidate(w http.ResponseWriter, r *http.Request, payload any) error {
	if err := ReadJson(w, r, payload); err != nil {
		return err
	}
	if n, ok := payload.(Normalizer); ok {
		n.Normalize()
	}
	return Validator.Struct(payload)
}
