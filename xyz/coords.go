package xyz

import (
	"fmt"
)

// Coords is a single point in 3-space.
type Coords [3]float64

// FromFlat reshapes a flat slice of coordinates into points. The length of
// vals must be a positive multiple of 3.
func FromFlat(vals []float64) ([]Coords, error) {
	if len(vals) == 0 || len(vals)%3 != 0 {
		return nil, fmt.Errorf("%w: %d values cannot be reshaped to (n, 3)",
			ErrInvalidShape, len(vals))
	}
	coords := make([]Coords, len(vals)/3)
	for i := range coords {
		coords[i] = Coords{vals[3*i], vals[3*i+1], vals[3*i+2]}
	}
	return coords, nil
}

// FromRows reshapes rows of coordinates into points. Rows do not need to
// have length 3; they are concatenated and then reshaped with FromFlat, so
// [[x1 y1 z1 x2] [y2 z2]] is accepted while a total count that isn't a
// multiple of 3 is not.
func FromRows(rows [][]float64) ([]Coords, error) {
	flat := make([]float64, 0, 3*len(rows))
	for _, row := range rows {
		flat = append(flat, row...)
	}
	return FromFlat(flat)
}

// Mirror returns a copy of coords with the given axis (0, 1 or 2) negated.
func Mirror(coords []Coords, axis int) ([]Coords, error) {
	if axis < 0 || axis > 2 {
		return nil, fmt.Errorf("axis must be 0, 1 or 2, but got %d", axis)
	}
	mirrored := make([]Coords, len(coords))
	for i, c := range coords {
		c[axis] = -c[axis]
		mirrored[i] = c
	}
	return mirrored, nil
}
