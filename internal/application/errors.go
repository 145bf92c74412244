package application

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")
var ErrConflict = errors.New("conflict")
var ErrBadRequest = errors.New("bad request")
var ErrInUse = errors.New("in use")
var ErrUnknownCurrency = errors.New("unknown currency")

// DetailedError pairs one of the sentinels above with a message that is safe
// to show to the caller.
type DetailedError struct {
	Kind    error
	Message string
}

func (e *DetailedError) Error() string { return e.Message }
func (e *DetailedError) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...any) error {
	return &DetailedError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Message returns the caller-facing message carried by err, or "" when err
// has none (storage failures and the like).
func Message(err error) string {
	var de *DetailedError
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}

// Shared caller-facing messages.
const (
	MsgCurrencyNotFound   = "Currency not found"
	MsgCurrencyCodeExists = "Currency code already exists"
	MsgCurrencyInUse      = "Cannot delete currency: it is referenced in exchange rates"
	MsgRateNotFound       = "Rate not found"
	MsgNoRatesForDate     = "No rates found for the specified date"
	MsgInvalidPagination  = "Invalid pagination parameters"
)

// CurrencyNotFound is returned by repositories for a missing currency row.
func CurrencyNotFound() error { return newError(ErrNotFound, MsgCurrencyNotFound) }

// CurrencyCodeTaken is returned when a code collides with another currency.
func CurrencyCodeTaken() error { return newError(ErrConflict, MsgCurrencyCodeExists) }

// CurrencyInUse is returned when a referenced currency is deleted.
func CurrencyInUse() error { return newError(ErrInUse, MsgCurrencyInUse) }

// RateNotFound is returned by repositories for a missing rate row.
func RateNotFound() error { return newError(ErrNotFound, MsgRateNotFound) }

// UnknownCurrency names the side of the pair whose code did not resolve.
func UnknownCurrency(side, code string) error {
	return newError(ErrUnknownCurrency, "%s currency with code %s does not exist", side, code)
}
