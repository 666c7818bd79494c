package receipt

import (
	"errors"
	"fmt"
)

var (
	ErrMissingHeaderField    = errors.New("missing header field")
	ErrMalformedDateTime     = errors.New("malformed slot date/time")
	ErrMalformedCardSuffix   = errors.New("malformed payment card suffix")
	ErrMissingSectionMarker  = errors.New("missing item section marker")
	ErrUnterminatedItemEntry = errors.New("item region ended inside an unterminated entry")
	ErrInvalidAmount         = errors.New("invalid item amount")
	ErrInvalidPrice          = errors.New("invalid price")
	ErrMissingItemName       = errors.New("item name not found")
)

// MissingHeaderFieldError names the header field that was never matched.
type MissingHeaderFieldError struct {
	Field string
}

func (e *MissingHeaderFieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingHeaderField, e.Field)
}

func (e *MissingHeaderFieldError) Unwrap() error {
	return ErrMissingHeaderField
}

// MissingSectionMarkerError names the item region boundary that was not found.
type MissingSectionMarkerError struct {
	Marker string
}

func (e *MissingSectionMarkerError) Error() string {
	return fmt.Sprintf("%s: %q", ErrMissingSectionMarker, e.Marker)
}

func (e *MissingSectionMarkerError) Unwrap() error {
	return ErrMissingSectionMarker
}

// InvalidAmountError carries the amount zone text that could not be classified.
type InvalidAmountError struct {
	Text string
	Line string
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("%s %q in line %q", ErrInvalidAmount, e.Text, e.Line)
}

func (e *InvalidAmountError) Unwrap() error {
	return ErrInvalidAmount
}
