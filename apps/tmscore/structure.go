package tmscore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/tmscore/xyz"
)

// Structure is an argument to TMscore: either a File or Coords.
type Structure interface {
	structure()
}

// File is a path to a structure file readable by TMscore.
type File string

// Coords is a structure held in memory. It is written to a temporary xyz
// file before TMscore is run.
type Coords []xyz.Coords

func (File) structure()   {}
func (Coords) structure() {}

// resolvePath makes path absolute and resolves symbolic links.
// ErrStructureNotFound is returned if it isn't an existing regular file.
func resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s (%s)", ErrStructureNotFound, path, err)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s", ErrStructureNotFound, abs)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %s (%s)", ErrStructureNotFound, abs, err)
	}
	return resolved, nil
}

// formatFlags returns the '-infmtN' flags TMscore needs to read each of the
// structure files. PDB files need none.
func formatFlags(paths [2]string) []string {
	var flags []string
	for i, path := range paths {
		flag := fmt.Sprintf("-infmt%d", i+1)
		switch lower := strings.ToLower(path); {
		case strings.HasSuffix(lower, ".xyz"):
			flags = append(flags, flag, "2")
		case strings.HasSuffix(lower, ".spicker"):
			flags = append(flags, flag, "1")
		}
	}
	return flags
}
