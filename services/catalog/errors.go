package catalog

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound     = "not_found"
	CodeForbidden    = "forbidden"
	CodeInvalidInput = "invalid_input"
	CodeConflict     = "conflict"
)

type CatalogError struct {
	Code    string
	Message string
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrorCode is the machine-readable code sent to API clients.
func (e *CatalogError) ErrorCode() string { return e.Code }

func (e *CatalogError) Status() int {
	switch e.Code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeForbidden:
		return http.StatusForbidden
	case CodeInvalidInput:
		return http.StatusUnprocessableEntity
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func newCatalogError(code, format string, args ...any) error {
	return &CatalogError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func HasCode(err error, code string) bool {
	var ce *CatalogError
	return errors.As(err, &ce) && ce.Code == code
}
