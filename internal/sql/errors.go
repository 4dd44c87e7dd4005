package sql

import (
	"errors"
	"fmt"

	pluralize "github.com/gertd/go-pluralize"
)

// Sentinel errors returned (wrapped) by Validate. Use errors.Is to test for them.
var (
	ErrEmptyInput                = errors.New("empty statement")
	ErrUnbalancedParentheses     = errors.New("unbalanced parentheses")
	ErrUnrecognizedCommand       = errors.New("unrecognized command")
	ErrMalformedSelect           = errors.New("malformed SELECT")
	ErrMalformedInsertShape      = errors.New("malformed INSERT")
	ErrArityMismatch             = errors.New("arity mismatch")
	ErrInvalidValueToken         = errors.New("invalid value")
	ErrMalformedCreateTableShape = errors.New("malformed CREATE TABLE")
	ErrInvalidColumnType         = errors.New("invalid column type")
)

var errorKinds = []struct {
	err  error
	kind string
}{
	{ErrEmptyInput, "EmptyInput"},
	{ErrUnbalancedParentheses, "UnbalancedParentheses"},
	{ErrUnrecognizedCommand, "UnrecognizedCommand"},
	{ErrMalformedSelect, "MalformedSelect"},
	{ErrMalformedInsertShape, "MalformedInsertShape"},
	{ErrArityMismatch, "ArityMismatch"},
	{ErrInvalidValueToken, "InvalidValueToken"},
	{ErrMalformedCreateTableShape, "MalformedCreateTableShape"},
	{ErrInvalidColumnType, "InvalidColumnType"},
}

// KindOf returns the stable reason code for a validation error,
// "" for nil and "Unknown" for errors that did not come from Validate.
func KindOf(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "Unknown"
}

var plural = pluralize.NewClient()

// failf wraps a sentinel with a formatted detail message.
func failf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}

// arityError reports a value group whose length differs from the column list,
// e.g. "group 2 has 2 values, expected 1 value".
func arityError(group, got, want int) error {
	return failf(ErrArityMismatch, "group %d has %s, expected %s",
		group, plural.Pluralize("value", got, true), plural.Pluralize("value", want, true))
}
