package xyz

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRead(t *testing.T) {
	text := "2\n\nC      1.5      2.0     -3.0\nC     -4.0      5.0    -6.25\n\n"
	got, err := Read(strings.NewReader(text))
	if err != nil {
		t.Fatal(err)
	}
	want := []Coords{{1.5, 2, -3}, {-4, 5, -6.25}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want, +got):\n%s", diff)
	}
}

func TestReadMalformed(t *testing.T) {
	tests := []struct {
		name string
		text string
		line int
	}{
		{"empty", "", 1},
		{"bad count", "two\n\n", 1},
		{"zero count", "0\n\n", 1},
		{"missing label", "1\n\n1 2 3\n", 3},
		{"bad number", "1\n\nC 1 x 3\n", 3},
		{"too many", "1\n\nC 1 2 3\nC 4 5 6\n", 4},
		{"too few", "2\n\nC 1 2 3\n", 3},
	}
	for _, test := range tests {
		_, err := Read(strings.NewReader(test.text))
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("%s: expected a *ParseError but got %v", test.name, err)
			continue
		}
		if perr.Line != test.line {
			t.Errorf("%s: error on line %d, want line %d",
				test.name, perr.Line, test.line)
		}
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.xyz")
	if err := WriteFile(path, seedZero, 0, nil); err != nil {
		t.Fatal(err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(seedZero) {
		t.Fatalf("read %d points, want %d", len(got), len(seedZero))
	}

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.xyz"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist but got %v", err)
	}
}
