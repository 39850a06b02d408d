package tmscore

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"

	"go.uber.org/zap"
)

// DefaultBinaryName is the name of the TMscore executable looked for next to
// the running program when Config.Binary is empty.
const DefaultBinaryName = "TMscore"

// Aligner runs TMscore with the given arguments and returns its stdout.
type Aligner interface {
	Align(ctx context.Context, args []string) (string, error)
}

// AlignerFunc adapts a function to the Aligner interface.
type AlignerFunc func(ctx context.Context, args []string) (string, error)

func (f AlignerFunc) Align(ctx context.Context, args []string) (string, error) {
	return f(ctx, args)
}

// ExecAligner runs a TMscore executable as a subprocess.
type ExecAligner struct {
	Binary string
	Logger *zap.Logger
}

// NewExecAligner finds the TMscore executable with LocateBinary.
func NewExecAligner(binary string, logger *zap.Logger) (*ExecAligner, error) {
	path, err := LocateBinary(binary)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExecAligner{Binary: path, Logger: logger}, nil
}

// Align runs TMscore and waits for it to exit. Output that isn't valid UTF-8
// has the offending bytes replaced. A failure to run, or a non-zero exit
// status, is returned as an *InvocationError carrying TMscore's stderr.
func (a *ExecAligner) Align(ctx context.Context, args []string) (string, error) {
	var stdout, stderr bytes.Buffer
	c := exec.CommandContext(ctx, a.Binary, args...)
	c.Stdout = &stdout
	c.Stderr = &stderr

	a.Logger.Debug("running TMscore",
		zap.String("binary", a.Binary), zap.Strings("args", args))
	if err := c.Run(); err != nil {
		a.Logger.Warn("TMscore failed",
			zap.String("binary", a.Binary), zap.Strings("args", args),
			zap.String("stderr", stderr.String()), zap.Error(err))
		return "", &InvocationError{
			Binary: a.Binary,
			Args:   args,
			Stderr: stderr.String(),
			Err:    err,
		}
	}
	return strings.ToValidUTF8(stdout.String(), "�"), nil
}

// LocateBinary resolves the TMscore executable. An empty path means a file
// named DefaultBinaryName in the same directory as the running program.
// The returned path is absolute with symbolic links resolved. If the path
// is not an existing regular file, a *fs.PathError wrapping ENOENT is
// returned.
func LocateBinary(path string) (string, error) {
	if len(path) == 0 {
		exe, err := os.Executable()
		if err != nil {
			return "", err
		}
		path = filepath.Join(filepath.Dir(exe), DefaultBinaryName)
	}
	notFound := &fs.PathError{Op: "stat", Path: path, Err: syscall.ENOENT}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", notFound
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", notFound
	}
	return resolved, nil
}
