// Package ammerr defines the stable numeric error taxonomy returned by the
// pool core. Codes are part of the wire contract: a caller on the other
// side of the host dispatcher matches on Code, not on the message text.
package ammerr

import "fmt"

// Code is a stable 32-bit error code surfaced to the host.
type Code uint32

const (
	InvalidInstruction Code = 0
	InvalidOwner       Code = 1
	IncorrectProgramId Code = 2
	ConstructorOnce    Code = 3
	Overflow           Code = 4
	UnmatchedPool      Code = 5
	FrozenPool         Code = 6
	ZeroValue          Code = 7
	InsufficientFunds  Code = 8
	InvalidMint        Code = 9
	ExceedLimit        Code = 10
)

var names = map[Code]string{
	InvalidInstruction: "invalid instruction",
	InvalidOwner:       "invalid owner",
	IncorrectProgramId: "incorrect program id",
	ConstructorOnce:    "already constructed",
	Overflow:           "operation overflowed",
	UnmatchedPool:      "pool unmatched",
	FrozenPool:         "pool frozen",
	ZeroValue:          "zero value",
	InsufficientFunds:  "insufficient funds",
	InvalidMint:        "invalid mint",
	ExceedLimit:        "exceed limit",
}

func (c Code) String() string {
	if s, ok := names[c]; ok {
		return s
	}
	return fmt.Sprintf("unknown error %d", uint32(c))
}

// Error is the concrete error value carrying a taxonomy Code. It satisfies
// the standard error interface and compares equal by Code under errors.Is.
type Error struct {
	Code Code
}

func (e *Error) Error() string { return e.Code.String() }

// Is lets errors.Is(err, ammerr.New(Overflow)) match any *Error with the
// same Code, regardless of identity.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// New constructs an *Error for the given Code.
func New(c Code) *Error { return &Error{Code: c} }

// Wrap adds context to err without hiding an *Error's Code from
// errors.As/errors.Is — it only decorates the message.
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}
