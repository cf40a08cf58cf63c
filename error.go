package main

import "fmt"

// newUserErrorf is a user-facing error.
// this function is mostly to avoid linters complain about errors starting with a capitalized letter.
func newUserErrorf(format string, a ...any) error {
	return fmt.Errorf(format, a...)
}

// cliError is a wrapper around an error that adds additional context.
type cliError struct {
	err    error
	reason string
}

func (m cliError) Error() string {
	return m.err.Error()
}

func (m cliError) Reason() string {
	return m.reason
}

func (m cliError) Unwrap() error {
	return m.err
}
