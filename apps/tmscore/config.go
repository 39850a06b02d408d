package tmscore

import (
	"io"
	"os"

	"go.uber.org/zap"
)

// DefaultConfig runs the TMscore found next to the running program, with
// the mirror check on and the superposition parsed. For example:
//
//	cmp, err := tmscore.DefaultConfig.Compare(ctx, x, y)
var DefaultConfig = Config{
	Binary:         "",
	CheckMirror:    true,
	ParseTransform: true,
	Verbose:        false,
	Parallel:       false,
}

// Config specifies how TMscore is located and run. The zero value is usable
// but, unlike DefaultConfig, skips the mirror check.
type Config struct {
	// Binary is the path to the TMscore executable. When empty, a file named
	// DefaultBinaryName next to the running program is used. Ignored when
	// Aligner is set.
	Binary string

	// CheckMirror runs TMscore a second time with '-mirror 1' and keeps the
	// best of each score across the two runs.
	CheckMirror bool

	// Args are passed to TMscore after the structure arguments.
	Args []string

	// ParseTransform parses the superposition as part of Compare, so that
	// a report without a rotation matrix fails the comparison.
	ParseTransform bool

	// Verbose prints the scores (and superposition, if parsed) to Output
	// after each comparison.
	Verbose bool

	// Output is where verbose output goes. Defaults to stdout.
	Output io.Writer

	// Parallel runs the original and mirror invocations concurrently.
	Parallel bool

	// Workers bounds the number of comparisons RunAll runs at once.
	// Zero means GOMAXPROCS.
	Workers int

	// Logger receives a debug line for each TMscore invocation.
	Logger *zap.Logger

	// Aligner overrides how TMscore is run. When nil, an ExecAligner for
	// Binary is used.
	Aligner Aligner
}

func (conf Config) logger() *zap.Logger {
	if conf.Logger == nil {
		return zap.NewNop()
	}
	return conf.Logger
}

func (conf Config) output() io.Writer {
	if conf.Output == nil {
		return os.Stdout
	}
	return conf.Output
}

func (conf Config) aligner() (Aligner, error) {
	if conf.Aligner != nil {
		return conf.Aligner, nil
	}
	return NewExecAligner(conf.Binary, conf.logger())
}
