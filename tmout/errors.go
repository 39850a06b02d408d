package tmout

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMatrixNotFound is returned by ParseTransform when a report has no
// complete rotation matrix block.
var ErrMatrixNotFound = errors.New("rotation matrix not found in TMscore output")

// MissingMetricError lists the scores that could not be found in a report.
type MissingMetricError struct {
	Missing []string
}

func (e *MissingMetricError) Error() string {
	return fmt.Sprintf("the following scores were not found in TMscore "+
		"output: %s", strings.Join(e.Missing, ", "))
}

// MalformedLineError describes a recognized report line whose values could
// not be read.
type MalformedLineError struct {
	Line string
	Msg  string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("malformed TMscore output line %q: %s", e.Line, e.Msg)
}
