// Package engine invokes the container engine CLI as a subprocess.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
)

// Executable is the container engine binary.
const Executable = "docker"

// Runner executes a single engine command and waits for it to exit.
type Runner interface {
	Run(ctx context.Context, cmd *Command) error
}

// Docker runs commands against the docker CLI with the parent's stdio.
type Docker struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// NewDocker returns a runner attached to the process's stdio.
func NewDocker(logger *slog.Logger) *Docker {
	return &Docker{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: logger,
	}
}

// Run starts the command and waits for it. ctx is only consulted before the
// child starts; a running child is never killed from here.
func (d *Docker) Run(ctx context.Context, c *Command) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w: %w", c.Step, ErrNotStarted, err)
	}

	if d.Logger != nil {
		d.Logger.Debug("exec", "cmd", c.String())
	}

	cmd := exec.Command(Executable, c.Args()...)
	cmd.Stdin = d.Stdin
	cmd.Stdout = d.Stdout
	cmd.Stderr = d.Stderr

	if err := cmd.Start(); err != nil {
		return &SpawnError{Step: c.Step, Err: err}
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Step: c.Step, Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("%s: waiting for %s: %w", c.Step, Executable, err)
	}
	return nil
}

var _ Runner = (*Docker)(nil)
