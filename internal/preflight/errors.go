package preflight

import (
	"fmt"
	"strings"
)

// MissingFileError reports a required file that does not exist.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("missing file: %s", e.Path)
}

// MissingVariableError reports an environment variable a provider needs
// that is absent from the loaded environment.
type MissingVariableError struct {
	Var      string
	Provider string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("%s requires %s to be set", e.Provider, e.Var)
}

// PlaceholderValueError reports template defaults that survived into a
// value the proxy would actually use. Either Var/Value is set, for a
// single environment variable, or Lines lists the offending document
// lines.
type PlaceholderValueError struct {
	Var   string
	Value string
	Lines []string
}

func (e *PlaceholderValueError) Error() string {
	if e.Var != "" {
		return fmt.Sprintf("%s still holds the placeholder %q", e.Var, e.Value)
	}
	return fmt.Sprintf("config document still holds template placeholders:\n%s",
		strings.Join(e.Lines, "\n"))
}

// PortInUseError reports another process already listening on the proxy
// port. PID is zero when the listener could not be identified.
type PortInUseError struct {
	Port int
	PID  int
}

func (e *PortInUseError) Error() string {
	if e.PID > 0 {
		return fmt.Sprintf("port %d is already in use by pid %d", e.Port, e.PID)
	}
	return fmt.Sprintf("port %d is already in use", e.Port)
}
