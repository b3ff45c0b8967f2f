package pricing

import "fmt"

// InvalidInputError reports a violated precondition on the pricing
// inputs: bad strike, maturity, notional, steps, curve data, or a model
// that lacks a capability the engine requires.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}

// UnsupportedInstrumentError reports that no pricer exists for the
// requested combination, or that an engine was asked to price an
// instrument variant it does not implement.
type UnsupportedInstrumentError struct {
	Reason string
}

func (e *UnsupportedInstrumentError) Error() string {
	return "unsupported instrument: " + e.Reason
}

// InvalidInput builds an InvalidInputError from a plain message.
func InvalidInput(reason string) error {
	return &InvalidInputError{Reason: reason}
}

// InvalidInputf builds an InvalidInputError from a format string.
func InvalidInputf(format string, args ...any) error {
	return &InvalidInputError{Reason: fmt.Sprintf(format, args...)}
}

// Unsupported builds an UnsupportedInstrumentError from a plain message.
func Unsupported(reason string) error {
	return &UnsupportedInstrumentError{Reason: reason}
}

// Unsupportedf builds an UnsupportedInstrumentError from a format string.
func Unsupportedf(format string, args ...any) error {
	return &UnsupportedInstrumentError{Reason: fmt.Sprintf(format, args...)}
}
