package bidding

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound        = "not_found"
	CodeForbidden       = "forbidden"
	CodeInvalidState    = "invalid_state"
	CodeInvalidAmount   = "invalid_amount"
	CodeSlotUnavailable = "slot_unavailable"
	CodeAuctionClosed   = "auction_closed"
	CodeSlotBusy        = "slot_busy"
	CodeIncomplete      = "incomplete"
)

// BidError is a domain failure of the negotiation workflow.
type BidError struct {
	Code    string
	Message string
}

func (e *BidError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrorCode is the machine-readable code sent to API clients.
func (e *BidError) ErrorCode() string { return e.Code }

// Status maps the error code to an HTTP status.
func (e *BidError) Status() int {
	switch e.Code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeForbidden:
		return http.StatusForbidden
	case CodeInvalidAmount:
		return http.StatusUnprocessableEntity
	case CodeInvalidState, CodeSlotUnavailable, CodeAuctionClosed, CodeSlotBusy:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func newBidError(code, format string, args ...any) error {
	return &BidError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// HasCode reports whether err is a BidError with the given code.
func HasCode(err error, code string) bool {
	var be *BidError
	return errors.As(err, &be) && be.Code == code
}
