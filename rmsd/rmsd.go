package rmsd

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/BurntSushi/tmscore/tmout"
	"github.com/BurntSushi/tmscore/xyz"
)

// ErrLengthMismatch is returned when two structures that must be paired
// atom for atom have different lengths.
var ErrLengthMismatch = errors.New("structures have different lengths")

// RMSD returns the smallest root mean square deviation between x and y over
// all rigid superpositions of x onto y.
func RMSD(x, y []xyz.Coords) (float64, error) {
	_, rms, err := Superposition(x, y)
	return rms, err
}

// Superposition computes the rotation and translation that minimize the RMSD
// of x onto y, using the same convention as TMscore's reported transform:
// x is moved with Transform.Apply.
//
// A brief, high-level overview:
//
// Build the Nx3 matrices X and Y containing the coordinates of each of the N
// atoms after centering them by subtracting the centroids.
//
// Compute the covariance matrix C = (X^T)Y and its SVD C = US(V^T).
//
// Compute d = sign(det(V(U^T))). If d is negative, the best orthogonal
// transform is an improper rotation (a reflection), so the sign of the last
// singular vector is flipped.
//
// The rotation (applied to row vectors) is then U diag(1, 1, d) (V^T).
func Superposition(x, y []xyz.Coords) (tmout.Transform, float64, error) {
	if len(x) != len(y) {
		return tmout.Transform{}, 0, fmt.Errorf("%w: %d and %d",
			ErrLengthMismatch, len(x), len(y))
	}
	if len(x) == 0 {
		return tmout.Transform{}, 0, fmt.Errorf("%w: no atoms",
			xyz.ErrInvalidShape)
	}

	cx, cy := centroid(x), centroid(y)
	X, Y := centered(x, cx), centered(y, cy)

	var C mat.Dense
	C.Mul(X.T(), Y)

	var svd mat.SVD
	if !svd.Factorize(&C, mat.SVDFull) {
		return tmout.Transform{}, 0, errors.New("SVD of covariance failed")
	}
	var U, V mat.Dense
	svd.UTo(&U)
	svd.VTo(&V)

	var VUT mat.Dense
	VUT.Mul(&V, U.T())
	d := 1.0
	if mat.Det(&VUT) < 0 {
		d = -1
	}

	var UD, R mat.Dense
	UD.Mul(&U, mat.NewDiagDense(3, []float64{1, 1, d}))
	R.Mul(&UD, V.T())

	var t tmout.Transform
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t.Rotation[i][j] = R.At(i, j)
		}
	}
	// The translation moves the rotated centroid of x onto that of y.
	for j := 0; j < 3; j++ {
		t.Translation[j] = cy[j]
		for i := 0; i < 3; i++ {
			t.Translation[j] -= cx[i] * t.Rotation[i][j]
		}
	}

	rms, err := Superposed(x, y, t)
	return t, rms, err
}

// Superposed returns the RMSD between y and x moved by t.
func Superposed(x, y []xyz.Coords, t tmout.Transform) (float64, error) {
	if len(x) != len(y) {
		return 0, fmt.Errorf("%w: %d and %d", ErrLengthMismatch, len(x), len(y))
	}
	if len(x) == 0 {
		return 0, fmt.Errorf("%w: no atoms", xyz.ErrInvalidShape)
	}

	var sum float64
	for i, moved := range t.Apply(x) {
		for j := range moved {
			dist := moved[j] - y[i][j]
			sum += dist * dist
		}
	}
	return math.Sqrt(sum / float64(len(x))), nil
}

// centroid calculates the average position of a set of atoms.
func centroid(coords []xyz.Coords) xyz.Coords {
	var c xyz.Coords
	for _, atom := range coords {
		for i := range c {
			c[i] += atom[i]
		}
	}
	n := float64(len(coords))
	return xyz.Coords{c[0] / n, c[1] / n, c[2] / n}
}

func centered(coords []xyz.Coords, c xyz.Coords) *mat.Dense {
	m := mat.NewDense(len(coords), 3, nil)
	for i, atom := range coords {
		for j := range atom {
			m.Set(i, j, atom[j]-c[j])
		}
	}
	return m
}
