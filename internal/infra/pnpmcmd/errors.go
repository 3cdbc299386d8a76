package pnpmcmd

import (
	"fmt"
	"strings"
)

// ProcessError means the child could not be started or its output streams
// broke before it exited.
type ProcessError struct {
	Args []string
	Err  error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("%s failed: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// ExitError is only returned when Options.FailOnExitCode is set.
type ExitError struct {
	Args []string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s finished with code %d", strings.Join(e.Args, " "), e.Code)
}
