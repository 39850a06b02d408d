package tmscore

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrStructureNotFound is returned when a File does not name an
	// existing regular file.
	ErrStructureNotFound = errors.New("structure file does not exist")

	// ErrUnsupportedInput is returned for a nil or unknown Structure.
	ErrUnsupportedInput = errors.New("structure argument not recognized")

	// ErrNotYetComputed is returned by a Scorer that has no successful
	// comparison to report on.
	ErrNotYetComputed = errors.New("scores not yet computed")
)

// InvocationError is returned when TMscore can't be started or exits with a
// non-zero status.
type InvocationError struct {
	Binary string
	Args   []string
	Stderr string
	Err    error
}

func (e *InvocationError) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Binary, strings.Join(e.Args, " "), e.Err)
	if stderr := strings.TrimSpace(e.Stderr); len(stderr) > 0 {
		msg += "\n" + stderr
	}
	return msg
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}
