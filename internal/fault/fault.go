// Package fault classifies pipeline failures and maps them to the error
// codes written into the result document.
package fault

import (
	"errors"
	"fmt"
)

// Kind identifies which stage of the pipeline failed.
type Kind int

const (
	Unknown              Kind = iota
	InputMalformed            // extracted payload is not a parseable report
	ConfigurationInvalid      // score table total is zero or max score is non-positive
	LocalizationMissing       // locale table cannot be loaded
	Filesystem                // an artifact cannot be created or written
)

// SentinelCode is reported for malformed input and for errors that carry no Kind.
const SentinelCode = 1001

var codes = map[Kind]int{
	Unknown:              SentinelCode,
	InputMalformed:       SentinelCode,
	ConfigurationInvalid: 1002,
	LocalizationMissing:  1003,
	Filesystem:           1004,
}

var names = map[Kind]string{
	Unknown:              "unknown",
	InputMalformed:       "input_malformed",
	ConfigurationInvalid: "configuration_invalid",
	LocalizationMissing:  "localization_missing",
	Filesystem:           "filesystem",
}

// String returns the snake_case name used in log fields.
func (k Kind) String() string {
	if n, ok := names[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Code returns the numeric error code for k.
func (k Kind) Code() int {
	if c, ok := codes[k]; ok {
		return c
	}
	return SentinelCode
}

// Error is a classified failure. Err carries the underlying cause.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// New wraps err with kind. A nil err yields nil.
func New(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

// Errorf formats a message and classifies it with kind. %w verbs are honoured.
func Errorf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the Kind of the first *Error in err's chain, or Unknown.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Unknown
}

// CodeOf returns the error code for err.
func CodeOf(err error) int {
	return KindOf(err).Code()
}
