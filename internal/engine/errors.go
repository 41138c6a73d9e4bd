package engine

import (
	"errors"
	"fmt"
)

// ErrNotStarted is returned when the context was already done, so the step
// was never spawned.
var ErrNotStarted = errors.New("context done before step started")

// SpawnError means the engine executable could not be started at all.
type SpawnError struct {
	Step Step
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("%s: could not start %s: %v", e.Step, Executable, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// ExitError means the engine ran and exited with a non-zero status.
// Code is -1 when the child was terminated by a signal.
type ExitError struct {
	Step Step
	Code int
}

func (e *ExitError) Error() string {
	if e.Code < 0 {
		return fmt.Sprintf("%s %s was terminated by a signal", Executable, e.Step)
	}
	return fmt.Sprintf("%s %s exited with status %d", Executable, e.Step, e.Code)
}

// ExitCode is the status the process should exit with for err.
func ExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Code > 0 {
		return exitErr.Code
	}
	return 1
}
