package builder

import (
	"errors"
	"strings"

	"github.com/hashicorp/go-multierror"
)

var (
	// ErrSignal is returned when run mode cannot register for interrupts.
	ErrSignal = errors.New("interrupt handler registration failed")
	// ErrArtifact is returned when the copied archive is missing on the host.
	ErrArtifact = errors.New("artifact readback failed")
)

// combine joins a primary error with cleanup errors on a single line.
func combine(errs ...error) error {
	merr := multierror.Append(nil, errs...)
	merr.ErrorFormat = oneLine
	if len(merr.Errors) == 1 {
		return merr.Errors[0]
	}
	return merr.ErrorOrNil()
}

func oneLine(errs []error) string {
	parts := make([]string, len(errs))
	for i, err := range errs {
		parts[i] = err.Error()
	}
	return strings.Join(parts, "; ")
}
