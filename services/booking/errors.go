package booking

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound        = "not_found"
	CodeForbidden       = "forbidden"
	CodeInvalidState    = "invalid_state"
	CodeSlotUnavailable = "slot_unavailable"
	CodeSlotBusy        = "slot_busy"
)

type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrorCode is the machine-readable code sent to API clients.
func (e *BookingError) ErrorCode() string { return e.Code }

func (e *BookingError) Status() int {
	switch e.Code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeForbidden:
		return http.StatusForbidden
	case CodeInvalidState, CodeSlotUnavailable, CodeSlotBusy:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func newBookingError(code, format string, args ...any) error {
	return &BookingError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// HasCode reports whether err is a BookingError with the given code.
func HasCode(err error, code string) bool {
	var be *BookingError
	return errors.As(err, &be) && be.Code == code
}
