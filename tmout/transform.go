package tmout

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/BurntSushi/tmscore/xyz"
)

// rotationLandmark introduces the superposition block of a report:
//
//	 -------- rotation matrix to rotate Chain-1 to Chain-2 ------
//	 i          t(i)         U(i,1)         U(i,2)         U(i,3)
//	 1      2.4016574512   0.3600000000   0.4800000000  -0.8000000000
//	 2     -1.1046252178  -0.8000000000   0.6000000000   0.0000000000
//	 3      0.5713289764   0.4800000000   0.6400000000   0.6000000000
const rotationLandmark = "-------- rotation matrix to rotate "

// Transform is the rigid body superposition of the first structure onto the
// second, as computed by TMscore.
//
// Rotation is stored transposed with respect to the printed U matrix so that
// a point x, as a row vector, is moved by x·Rotation + Translation.
type Transform struct {
	Rotation    [3][3]float64
	Translation [3]float64
}

// ParseTransform reads the rotation matrix and translation vector from a
// TMscore report. If the report contains more than one rotation matrix
// block, the last one is used. ErrMatrixNotFound is returned when there is
// no block with three complete rows.
func ParseTransform(report string) (Transform, error) {
	lines := strings.Split(report, "\n")
	start := -1
	for i, line := range lines {
		if strings.Contains(line, rotationLandmark) {
			start = i
		}
	}
	// The landmark line and the column header precede the three rows, and
	// the last row must be terminated by a newline.
	if start == -1 || start+5 >= len(lines) {
		return Transform{}, ErrMatrixNotFound
	}
	if len(lines[start+1]) == 0 {
		return Transform{}, fmt.Errorf("%w: missing column header",
			ErrMatrixNotFound)
	}

	var t Transform
	for i := 0; i < 3; i++ {
		line := lines[start+2+i]
		fields := strings.Fields(line)
		if len(fields) != 5 {
			return Transform{}, fmt.Errorf("%w: expected 5 columns in %q",
				ErrMatrixNotFound, line)
		}
		var row [4]float64
		for j := range row {
			v, err := strconv.ParseFloat(fields[j+1], 64)
			if err != nil {
				return Transform{}, fmt.Errorf("%w: bad value %q in %q",
					ErrMatrixNotFound, fields[j+1], line)
			}
			row[j] = v
		}
		t.Translation[i] = row[0]
		for j := 0; j < 3; j++ {
			t.Rotation[j][i] = row[j+1]
		}
	}
	return t, nil
}

func (t Transform) rotation() *mat.Dense {
	r := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r.Set(i, j, t.Rotation[i][j])
		}
	}
	return r
}

// Apply returns coords moved by the transform.
func (t Transform) Apply(coords []xyz.Coords) []xyz.Coords {
	if len(coords) == 0 {
		return nil
	}
	flat := make([]float64, 0, 3*len(coords))
	for _, c := range coords {
		flat = append(flat, c[:]...)
	}
	var moved mat.Dense
	moved.Mul(mat.NewDense(len(coords), 3, flat), t.rotation())

	out := make([]xyz.Coords, len(coords))
	for i := range out {
		for j := 0; j < 3; j++ {
			out[i][j] = moved.At(i, j) + t.Translation[j]
		}
	}
	return out
}

// Det returns the determinant of the rotation. It is close to 1 for a proper
// rotation and close to -1 when the superposition includes a reflection,
// which is what TMscore reports for a mirrored run.
func (t Transform) Det() float64 {
	return mat.Det(t.rotation())
}

// IsOrthonormal reports whether RᵀR is the identity to within tol.
func (t Transform) IsOrthonormal(tol float64) bool {
	r := t.rotation()
	var rtr mat.Dense
	rtr.Mul(r.T(), r)
	identity := mat.NewDiagDense(3, []float64{1, 1, 1})
	return mat.EqualApprox(&rtr, identity, tol)
}
