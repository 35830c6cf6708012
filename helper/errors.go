package helper

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// HttpError is an error that already knows its response status.
type HttpError struct {
	Status  int
	Type    string
	Message string
	Err     error
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func BadRequest(msg string) *HttpError {
	return &HttpError{Status: http.StatusBadRequest, Type: "BadRequestError", Message: msg}
}

func Unauthorized(msg string) *HttpError {
	return &HttpError{Status: http.StatusUnauthorized, Type: "UnauthorizedError", Message: msg}
}

func Forbidden(msg string) *HttpError {
	return &HttpError{Status: http.StatusForbidden, Type: "ForbiddenError", Message: msg}
}

func NotFound(msg string) *HttpError {
	return &HttpError{Status: http.StatusNotFound, Type: "NotFoundError", Message: msg}
}

func TooManyRequests(msg string) *HttpError {
	return &HttpError{Status: http.StatusTooManyRequests, Type: "TooManyRequestsError", Message: msg}
}

// Internal wraps err; the client only ever sees a generic message.
func Internal(err error) *HttpError {
	return &HttpError{Status: http.StatusInternalServerError, Type: "InternalServerError", Message: "Internal server error", Err: err}
}

type ErrorItem struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Path    string `json:"path"`
}

type ErrorResponse struct {
	Errors []ErrorItem `json:"errors"`
}

// WriteError renders err as {"errors": [...]}. Validation failures produce one
// entry per field; anything that is not an HttpError becomes a 500.
func WriteError(w http.ResponseWriter, logger *zap.SugaredLogger, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		items := make([]ErrorItem, 0, len(verrs))
		for _, fe := range verrs {
			items = append(items, ErrorItem{Type: "ValidationError", Message: validationMessage(fe), Path: fe.Field()})
		}
		_ = WriteJson(w, http.StatusBadRequest, ErrorResponse{Errors: items})
		return
	}

	var herr *HttpError
	if !errors.As(err, &herr) {
		herr = Internal(err)
	}
	if herr.Status >= http.StatusInternalServerError {
		logger.Errorw("Request failed", "error", err)
	} else {
		logger.Debugw("Request rejected", "status", herr.Status, "error", herr.Message)
	}
	_ = WriteJson(w, herr.Status, ErrorResponse{Errors: []ErrorItem{{Type: herr.Type, Message: herr.Message, Path: ""}}})
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s should be a valid email", fe.Field())
	case "min":
		return fmt.Sprintf("%s should be at least %s characters long", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s should be at most %s characters long", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s should be one of [%s]", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
