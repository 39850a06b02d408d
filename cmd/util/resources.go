package util

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/tmscore/pdb"
	"github.com/BurntSushi/tmscore/xyz"
)

// IsPDB reports whether path names a (possibly gzipped) PDB file.
func IsPDB(path string) bool {
	lower := strings.TrimSuffix(strings.ToLower(path), ".gz")
	switch filepath.Ext(lower) {
	case ".pdb", ".ent":
		return true
	}
	return false
}

// PDBReadCA reads the C-alpha coordinates of a chain, or the first chain
// when chain is 0.
func PDBReadCA(path string, chain byte) []xyz.Coords {
	coords, err := pdb.ReadCA(path, chain)
	Assert(err, "Could not read PDB file '%s'", path)
	return coords
}

// CoordsRead reads whitespace separated numbers as consecutive (x, y, z)
// triples.
func CoordsRead(path string) []xyz.Coords {
	f := OpenFile(path)
	defer f.Close()

	var vals []float64
	for _, line := range ReadLines(f) {
		if strings.HasPrefix(line, "#") {
			continue
		}
		for _, field := range strings.Fields(line) {
			vals = append(vals, ParseFloat(field))
		}
	}
	coords, err := xyz.FromFlat(vals)
	Assert(err, "Could not read coordinates from '%s'", path)
	return coords
}

func ParseInt(str string) int {
	num, err := strconv.ParseInt(str, 10, 32)
	Assert(err, "Could not parse '%s' as an integer", str)
	return int(num)
}

func ParseFloat(str string) float64 {
	num, err := strconv.ParseFloat(str, 64)
	Assert(err, "Could not parse '%s' as a number", str)
	return num
}
