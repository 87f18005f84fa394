package errs

import "github.com/cockroachdb/errors"

// ErrorKind identifies a kind of internal error.
// fully support for errors.Is and errors.As.
type ErrorKind string

const (
	// NotFound is returned when a requested item is not found.
	NotFound           = ErrorKind("Not Found")
	InvalidArgument    = ErrorKind("Invalid Argument")
	InternalError      = ErrorKind("Internal Error")
	SomethingWentWrong = ErrorKind("Something Went Wrong")
	Unsupported        = ErrorKind("Unsupported")
	Timeout            = ErrorKind("Timeout")
	Closed             = ErrorKind("Closed")
	Overflow           = ErrorKind("overflow uint256")
)

// Engine failures. A call that returns one of these had no side effects.
const (
	PermissionDenied      = ErrorKind("permission denied")
	PhaseViolation        = ErrorKind("phase violation")
	CapExceeded           = ErrorKind("cap exceeded")
	BelowMinimum          = ErrorKind("below minimum contribution")
	GasPriceExceeded      = ErrorKind("gas price exceeded")
	NotWhitelisted        = ErrorKind("not whitelisted")
	PausedState           = ErrorKind("paused")
	NotPaused             = ErrorKind("not paused")
	AlreadyActivated      = ErrorKind("already activated")
	NotActivated          = ErrorKind("not activated")
	InsufficientAllowance = ErrorKind("insufficient allowance")
	InsufficientBalance   = ErrorKind("insufficient balance")
	TransferNotOpened     = ErrorKind("transfer not opened")
	InvalidRecipient      = ErrorKind("invalid recipient")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Kind returns the innermost ErrorKind wrapped by err.
func Kind(err error) (ErrorKind, bool) {
	var kind ErrorKind
	if errors.As(err, &kind) {
		return kind, true
	}
	return "", false
}

// Code returns a stable identifier for the kind of err, or "unknown".
func Code(err error) string {
	kind, ok := Kind(err)
	if !ok {
		return "unknown"
	}
	return codes[kind]
}

var codes = map[ErrorKind]string{
	NotFound:              "not_found",
	InvalidArgument:       "invalid_argument",
	InternalError:         "internal_error",
	SomethingWentWrong:    "something_went_wrong",
	Unsupported:           "unsupported",
	Timeout:               "timeout",
	Closed:                "closed",
	Overflow:              "overflow",
	PermissionDenied:      "permission_denied",
	PhaseViolation:        "phase_violation",
	CapExceeded:           "cap_exceeded",
	BelowMinimum:          "below_minimum",
	GasPriceExceeded:      "gas_price_exceeded",
	NotWhitelisted:        "not_whitelisted",
	PausedState:           "paused_state",
	NotPaused:             "not_paused",
	AlreadyActivated:      "already_activated",
	NotActivated:          "not_activated",
	InsufficientAllowance: "insufficient_allowance",
	InsufficientBalance:   "insufficient_balance",
	TransferNotOpened:     "transfer_not_opened",
	InvalidRecipient:      "invalid_recipient",
}
