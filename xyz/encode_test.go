package xyz

import (
	"bytes"
	"errors"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// The first points of numpy's standard normal stream seeded with 0.
var seedZero = []Coords{
	{1.76405235, 0.40015721, 0.97873798},
	{2.2408932, 1.86755799, -0.97727788},
	{0.95008842, -0.15135721, -0.10321885},
}

func TestEncode(t *testing.T) {
	fields, text, err := Encode(seedZero, 0)
	if err != nil {
		t.Fatal(err)
	}
	wantFields := []Field{
		{"1.764052", "0.400157", "0.978738"},
		{"2.240893", "1.867558", "-0.97727"},
		{"0.950088", "-0.15135", "-0.10321"},
	}
	if diff := cmp.Diff(wantFields, fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	wantText := "3\n\n" +
		"C 1.764052 0.400157 0.978738\n" +
		"C 2.240893 1.867558 -0.97727\n" +
		"C 0.950088 -0.15135 -0.10321"
	if text != wantText {
		t.Fatalf("text mismatch:\n%q\n%q", wantText, text)
	}
}

func TestEncodeOffset(t *testing.T) {
	fields, _, err := Encode([]Coords{{1.76405235, -0.97727788, 12}}, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := Field{"  1.7640", "  -0.977", "    12.0"}
	if fields[0] != want {
		t.Fatalf("expected %q but got %q", want, fields[0])
	}
}

func TestEncodeOffsetSmallValues(t *testing.T) {
	tests := []struct {
		offset int
		want   Field
	}{
		{0, Field{"-1.3e-05", " 2.6e-05", "     1.0"}},
		{1, Field{" -0.0000", " 2.6e-05", "     1.0"}},
		{2, Field{"  -0.000", "  0.0000", "     1.0"}},
		{6, Field{"      -0", "       0", "      1."}},
	}
	coords := []Coords{{-1.3e-05, 2.6e-05, 1}}
	for _, test := range tests {
		fields, text, err := Encode(coords, test.offset)
		if err != nil {
			t.Fatalf("offset %d: %s", test.offset, err)
		}
		if fields[0] != test.want {
			t.Errorf("offset %d: expected %q but got %q",
				test.offset, test.want, fields[0])
		}
		read, err := Read(strings.NewReader(text))
		if err != nil {
			t.Fatalf("offset %d: %s", test.offset, err)
		}
		for j, v := range read[0] {
			if math.Abs(v-coords[0][j]) > 1e-4 {
				t.Errorf("offset %d: %v read back as %v",
					test.offset, coords[0][j], v)
			}
		}
	}
}

func TestEncodeOffsetOutOfRange(t *testing.T) {
	tests := []struct {
		v      float64
		offset int
	}{
		{12345678, 1},
		{123456.7, 3},
		{-1234567, 1},
		{-3, 7},
	}
	for _, test := range tests {
		_, _, err := Encode([]Coords{{test.v, 0, 0}}, test.offset)
		if !errors.Is(err, ErrOutOfRange) {
			t.Errorf("%v at offset %d: expected %v but got %v",
				test.v, test.offset, ErrOutOfRange, err)
		}
	}
}

func TestEncodeSpecialValues(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "     0.0"},
		{4e-7, "     0.0"},
		{-4e-7, "    -0.0"},
		{1e-6, "   1e-06"},
		{-2.5e-5, "-2.5e-05"},
		{0.0001, "  0.0001"},
		{123.4567891, "123.4567"},
		{-123.456789, "-123.456"},
		{12345678.9, "12345679"},
		{-1234567.8, "-1234568"},
		{99999999.4, "99999999"},
		{-9999999.4, "-9999999"},
	}
	for _, test := range tests {
		fields, _, err := Encode([]Coords{{test.v, 0, 0}}, 0)
		if err != nil {
			t.Fatalf("%v: %s", test.v, err)
		}
		if fields[0][0] != test.want {
			t.Errorf("%v: expected %q but got %q", test.v, test.want,
				fields[0][0])
		}
	}
}

func TestEncodeRejects(t *testing.T) {
	tests := []struct {
		name   string
		coords []Coords
		offset int
		want   error
	}{
		{"empty", nil, 0, ErrInvalidShape},
		{"nan", []Coords{{1, math.NaN(), 0}}, 0, ErrNonFinite},
		{"inf", []Coords{{math.Inf(-1), 0, 0}}, 0, ErrNonFinite},
		{"max", []Coords{{1e8, 0, 0}}, 0, ErrOutOfRange},
		{"max after rounding", []Coords{{99999999.6, 0, 0}}, 0, ErrOutOfRange},
		{"min", []Coords{{0, -1e7, 0}}, 0, ErrOutOfRange},
		{"min after rounding", []Coords{{0, 0, -9999999.6}}, 0, ErrOutOfRange},
		{"negative offset", []Coords{{0, 0, 0}}, -1, ErrInvalidOffset},
		{"wide offset", []Coords{{0, 0, 0}}, 8, ErrInvalidOffset},
	}
	for _, test := range tests {
		_, _, err := Encode(test.coords, test.offset)
		if !errors.Is(err, test.want) {
			t.Errorf("%s: expected %v but got %v", test.name, test.want, err)
		}
	}
}

func TestFromFlat(t *testing.T) {
	if _, err := FromFlat([]float64{1, 2, 3, 4}); !errors.Is(err, ErrInvalidShape) {
		t.Fatalf("expected shape error but got %v", err)
	}
	coords, err := FromRows([][]float64{{1, 2, 3, 4}, {5, 6}})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]Coords{{1, 2, 3}, {4, 5, 6}}, coords); diff != "" {
		t.Fatalf("reshape mismatch (-want +got):\n%s", diff)
	}
}

func TestMirror(t *testing.T) {
	mirrored, err := Mirror(seedZero, 1)
	if err != nil {
		t.Fatal(err)
	}
	for i := range seedZero {
		if mirrored[i][1] != -seedZero[i][1] ||
			mirrored[i][0] != seedZero[i][0] ||
			mirrored[i][2] != seedZero[i][2] {
			t.Fatalf("point %d: %v is not %v reflected in y", i,
				mirrored[i], seedZero[i])
		}
	}
	if seedZero[0][1] < 0 {
		t.Fatal("Mirror modified its input")
	}
	if _, err := Mirror(seedZero, 3); err == nil {
		t.Fatal("expected an error for axis 3")
	}
}

// fieldTolerance is the largest difference between a value and what can be
// read back from its formatted field.
func fieldTolerance(field string) float64 {
	field = strings.TrimSpace(field)
	switch {
	case strings.ContainsRune(field, 'e'):
		return 1e-6
	case !strings.ContainsRune(field, '.'):
		return 1
	}
	decimals := len(field) - strings.IndexByte(field, '.') - 1
	return 2*math.Pow(10, -float64(decimals)) + 1e-9
}

func randomValue(rng *rand.Rand) float64 {
	if rng.Intn(2) == 0 {
		return -math.Pow(10, rng.Float64()*14-7)
	}
	return math.Pow(10, rng.Float64()*15-7)
}

func TestEncodeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 200; trial++ {
		coords := make([]Coords, 1+rng.Intn(20))
		for i := range coords {
			for j := range coords[i] {
				coords[i][j] = randomValue(rng)
			}
		}
		for offset := 0; offset < 3; offset++ {
			fields, text, err := Encode(coords, offset)
			if offset > 0 && errors.Is(err, ErrOutOfRange) {
				// Fewer characters can't hold the largest values.
				continue
			}
			if err != nil {
				t.Fatalf("%v: %s", coords, err)
			}
			for i, row := range fields {
				for j, f := range row {
					if len(f) != FieldWidth {
						t.Fatalf("field %q has width %d", f, len(f))
					}
					if !strings.HasPrefix(f, strings.Repeat(" ", offset)) {
						t.Fatalf("field %q should start with %d blanks",
							f, offset)
					}
					got, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
					if err != nil {
						t.Fatal(err)
					}
					tol := fieldTolerance(f)
					if math.Abs(got-coords[i][j]) > tol {
						t.Fatalf("%v encoded as %q, off by more than %g",
							coords[i][j], f, tol)
					}
				}
			}

			read, err := Read(strings.NewReader(text))
			if err != nil {
				t.Fatal(err)
			}
			if len(read) != len(coords) {
				t.Fatalf("wrote %d points but read %d", len(coords), len(read))
			}
		}
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "struct1.xyz")
	var echo bytes.Buffer
	if err := WriteFile(path, seedZero, 0, &echo); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(echo.String(), string(got)) {
		t.Fatalf("echo %q does not contain file contents %q", echo.String(), got)
	}

	bad := filepath.Join(t.TempDir(), "bad.xyz")
	if err := WriteFile(bad, []Coords{{math.NaN(), 0, 0}}, 0, nil); err == nil {
		t.Fatal("expected an error")
	}
	if _, err := os.Stat(bad); !os.IsNotExist(err) {
		t.Fatalf("file should not exist after a failed encode: %v", err)
	}
}
