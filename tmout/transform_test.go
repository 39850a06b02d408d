package tmout

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"

	matrix "github.com/skelterjohn/go.matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BurntSushi/tmscore/xyz"
)

func TestParseTransform(t *testing.T) {
	tr, err := ParseTransform(readReport(t, "1crn_best.out"))
	require.NoError(t, err)

	assert.Equal(t, [3]float64{2.4016574512, -1.1046252178, 0.5713289764},
		tr.Translation)
	// The rotation is the transpose of the printed U matrix.
	assert.Equal(t, [3][3]float64{
		{0.36, -0.8, 0.48},
		{0.48, 0.6, 0.64},
		{-0.8, 0, 0.6},
	}, tr.Rotation)
	assert.True(t, tr.IsOrthonormal(1e-9))
	assert.InDelta(t, 1.0, tr.Det(), 1e-9)
}

func TestParseTransformMirror(t *testing.T) {
	tr, err := ParseTransform(readReport(t, "mirror_perfect.out"))
	require.NoError(t, err)
	assert.True(t, tr.IsOrthonormal(1e-9))
	assert.InDelta(t, -1.0, tr.Det(), 1e-9)
}

func TestParseTransformLastBlock(t *testing.T) {
	first := readReport(t, "mirror_perfect.out")
	second := readReport(t, "1crn_best.out")
	tr, err := ParseTransform(first + second)
	require.NoError(t, err)
	assert.Equal(t, 2.4016574512, tr.Translation[0])
}

func TestParseTransformNotFound(t *testing.T) {
	report := readReport(t, "1crn_best.out")
	cut := strings.Index(report, " 3      0.5713289764")
	end := cut + strings.Index(report[cut:], "\n")
	bad := []string{
		"",
		removeLines(report, " -------- rotation"),
		// The third row is not terminated by a newline.
		report[:end],
		report[:cut],
		strings.Replace(report, "0.4800000000  -0.8000000000",
			"0.4800000000", 1),
		strings.Replace(report, "-1.1046252178", "-1.10x6252178", 1),
	}
	for i, r := range bad {
		_, err := ParseTransform(r)
		assert.True(t, errors.Is(err, ErrMatrixNotFound), "case %d: got %v",
			i, err)
	}
}

func TestApply(t *testing.T) {
	tr, err := ParseTransform(readReport(t, "1crn_best.out"))
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	coords := make([]xyz.Coords, 11)
	flat := make([]float64, 0, 3*len(coords))
	for i := range coords {
		for j := range coords[i] {
			coords[i][j] = rng.NormFloat64() * 10
		}
		flat = append(flat, coords[i][:]...)
	}
	moved := tr.Apply(coords)

	// Cross-check against go.matrix: X·R + t.
	var rot []float64
	for _, row := range tr.Rotation {
		rot = append(rot, row[:]...)
	}
	X := matrix.MakeDenseMatrix(flat, len(coords), 3)
	XR, err := X.TimesDense(matrix.MakeDenseMatrix(rot, 3, 3))
	require.NoError(t, err)
	for i := range coords {
		for j := 0; j < 3; j++ {
			want := XR.Get(i, j) + tr.Translation[j]
			if math.Abs(want-moved[i][j]) > 1e-9 {
				t.Fatalf("point %d axis %d: expected %f but got %f",
					i, j, want, moved[i][j])
			}
		}
	}

	// The printed form, t(i) + sum_j U(i,j) x(j), must agree.
	U := matrix.MakeDenseMatrix(rot, 3, 3).Transpose()
	for i, c := range coords {
		for r := 0; r < 3; r++ {
			want := tr.Translation[r]
			for k := 0; k < 3; k++ {
				want += U.Get(r, k) * c[k]
			}
			assert.InDelta(t, want, moved[i][r], 1e-9)
		}
	}

	assert.Nil(t, tr.Apply(nil))
}
