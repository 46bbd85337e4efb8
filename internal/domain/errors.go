package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidInput marks caller mistakes (maps to 400). Field details via FieldErrors(err).
	ErrInvalidInput = errors.New("invalid input")
	// ErrUpstream marks a 4xx/5xx answer from the catalog or the Riot API.
	ErrUpstream = errors.New("upstream request failed")
	ErrNotFound = errors.New("not found")
	// ErrDecode marks a success status whose body could not be decoded.
	ErrDecode = errors.New("failed to decode upstream response")
	// ErrDataIntegrity marks skew between the catalog and the mastery source.
	ErrDataIntegrity = errors.New("upstream data is inconsistent")
)

type UpstreamError struct {
	StatusCode int
	URL        string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("API error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *UpstreamError) Is(target error) bool {
	switch target {
	case ErrUpstream:
		return true
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

func NewInvalidInputError(fields []FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return &invalidInputError{fields: fields}
}

func FieldErrors(err error) []FieldError {
	var inv *invalidInputError
	if errors.As(err, &inv) {
		return inv.Fields()
	}
	return nil
}

// IsFailureStatus reports whether an upstream status must be treated as a
// failure: any client or server error, 400 through 599.
func IsFailureStatus(status int) bool {
	return status >= 400 && status <= 599
}
