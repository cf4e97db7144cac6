package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound            = errors.New("requested resource not found")
	ErrUnauthorized        = errors.New("unauthorized access")
	ErrForbidden           = errors.New("forbidden access")
	ErrBadRequest          = errors.New("bad request")
	ErrConflict            = errors.New("resource conflict")
	ErrInternalServer      = errors.New("internal server error")
	ErrValidation          = errors.New("validation failed")
	ErrUnsupportedLanguage = errors.New("unsupported language")
)

// Wire error codes carried on structured failure payloads.
const (
	CodeValidationError     = "validation_error"
	CodeStarterCodeMissing  = "starter_code_missing"
	CodeTestCasesMissing    = "test_cases_missing"
	CodeUnsupportedLanguage = "unsupported_language"
	CodeRoleMissing         = "role_missing"
	CodeForbidden           = "forbidden"
	CodeServerError         = "server_error"
)

// CodedError pairs a domain error with the errorType code that goes on the wire.
type CodedError struct {
	Code    string
	Message string
	Err     error
}

func (e *CodedError) Error() string { return e.Message }
func (e *CodedError) Unwrap() error { return e.Err }

func NewCodedError(code, message string, err error) *CodedError {
	return &CodedError{Code: code, Message: message, Err: err}
}

// ErrorCode extracts the wire code from an error chain, defaulting to server_error.
func ErrorCode(err error) string {
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Code
	}
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrBadRequest) {
		return CodeValidationError
	}
	if errors.Is(err, ErrUnsupportedLanguage) {
		return CodeUnsupportedLanguage
	}
	if errors.Is(err, ErrForbidden) {
		return CodeForbidden
	}
	return CodeServerError
}

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrBadRequest) || errors.Is(err, ErrValidation) || errors.Is(err, ErrUnsupportedLanguage) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrConflict) {
		return http.StatusConflict
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" { // Unique violation
			return http.StatusConflict
		}
	}

	return http.StatusInternalServerError
}

// Errorf creates a new error with formatting, useful for wrapping.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
