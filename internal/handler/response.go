package handler

import (
	"errors"
	"net/http"

	"mastery-service/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ErrorPayload is the error envelope returned by every REST endpoint.
type ErrorPayload struct {
	Error       string              `json:"error"`
	Message     string              `json:"message,omitempty"`
	FieldErrors []domain.FieldError `json:"field_errors,omitempty"`
}

// MapError converts a service error into a status and payload. Only caller
// mistakes are 400; every upstream or consistency failure is a 500.
func MapError(err error) (int, ErrorPayload) {
	if err == nil {
		return http.StatusOK, ErrorPayload{Error: "ok"}
	}

	if errors.Is(err, domain.ErrInvalidInput) {
		return http.StatusBadRequest, ErrorPayload{
			Error:       "invalid_input",
			Message:     "one or more fields are invalid",
			FieldErrors: domain.FieldErrors(err),
		}
	}

	switch {
	case errors.Is(err, domain.ErrDataIntegrity):
		return http.StatusInternalServerError, ErrorPayload{Error: "data_integrity_error"}
	case errors.Is(err, domain.ErrDecode):
		return http.StatusInternalServerError, ErrorPayload{Error: "upstream_decode_error"}
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusInternalServerError, ErrorPayload{Error: "upstream_error"}
	default:
		return http.StatusInternalServerError, ErrorPayload{Error: "internal_error"}
	}
}

func WriteError(c *gin.Context, err error) {
	status, payload := MapError(err)
	if status >= http.StatusInternalServerError {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	c.AbortWithStatusJSON(status, payload)
}

func WriteData(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}
