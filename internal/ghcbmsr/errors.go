package ghcbmsr

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedResponseCode indicates the response carried a
	// different protocol code than the one paired with the request.
	ErrUnexpectedResponseCode = errors.New("ghcbmsr: unexpected response code")

	// ErrReservedBitsSet indicates a response set data bits the
	// protocol reserves for its kind.
	ErrReservedBitsSet = errors.New("ghcbmsr: reserved bits set in response")

	// ErrValueOutOfRange indicates a response field value outside its
	// protocol-defined domain.
	ErrValueOutOfRange = errors.New("ghcbmsr: response value out of range")

	// ErrInvalidOperand indicates a request operand that does not fit
	// its field or names an undefined value.
	ErrInvalidOperand = errors.New("ghcbmsr: invalid request operand")

	// ErrShouldNotReturn indicates the hypervisor returned control
	// after a termination request.
	ErrShouldNotReturn = errors.New("ghcbmsr: hypervisor returned from termination request")
)

// EchoMismatchError indicates the hypervisor acknowledged a GHCB
// registration with a different GFN than the request carried. The
// registration must not be trusted.
type EchoMismatchError struct {
	Got  uint64
	Want uint64
}

func (e EchoMismatchError) Error() string {
	return fmt.Sprintf("ghcbmsr: response echoed gfn %#x, requested %#x", e.Got, e.Want)
}
