package xyz

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

const (
	// FieldWidth is the number of characters every coordinate occupies.
	FieldWidth = 8

	// MaxValue is the exclusive upper bound of a rounded coordinate.
	MaxValue = 1e8

	// MinValue is the exclusive lower bound of a rounded coordinate.
	MinValue = -1e7

	decimals = 6
)

// Field is the formatted, fixed width representation of one point.
type Field [3]string

// Encode rounds and formats coords for TMscore's coordinate reader.
//
// The offset shrinks the number of characters a value may use (and the
// number of significant figures it is rounded to) without changing the
// field width, leaving at least 'offset' leading blanks in every field.
// Most callers want an offset of 0.
//
// Encode returns the formatted fields of each point along with the full
// text of the file.
func Encode(coords []Coords, offset int) ([]Field, string, error) {
	if len(coords) == 0 {
		return nil, "", fmt.Errorf("%w: structure has no points", ErrInvalidShape)
	}
	if offset < 0 || offset >= FieldWidth {
		return nil, "", fmt.Errorf("%w: %d is not in [0, %d)",
			ErrInvalidOffset, offset, FieldWidth)
	}
	for i, c := range coords {
		for _, v := range c {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, "", fmt.Errorf("%w (point %d is %v)",
					ErrNonFinite, i, c)
			}
		}
	}

	rounded := make([]Coords, len(coords))
	max, min := math.Inf(-1), math.Inf(1)
	for i, c := range coords {
		for j, v := range c {
			v = roundDecimals(v, decimals)
			if v < 0 {
				v = RoundSigFig(v, 7-offset)
			} else {
				v = RoundSigFig(v, 8-offset)
			}
			rounded[i][j] = v
			max, min = math.Max(max, v), math.Min(min, v)
		}
	}
	if max >= MaxValue {
		return nil, "", fmt.Errorf("%w: maximum value of structure must be "+
			"below %d, but got %s", ErrOutOfRange, int(MaxValue),
			strconv.FormatFloat(max, 'f', -1, 64))
	}
	if min <= MinValue {
		return nil, "", fmt.Errorf("%w: minimum value of structure must be "+
			"above %d, but got %s", ErrOutOfRange, int(MinValue),
			strconv.FormatFloat(min, 'f', -1, 64))
	}

	fields := make([]Field, len(rounded))
	var text strings.Builder
	fmt.Fprintf(&text, "%d\n\n", len(rounded))
	for i, c := range rounded {
		for j, v := range c {
			f, err := formatField(v, FieldWidth-offset)
			if err != nil {
				return nil, "", err
			}
			fields[i][j] = f
		}
		if i > 0 {
			text.WriteByte('\n')
		}
		text.WriteString("C " + strings.Join(fields[i][:], " "))
	}
	return fields, text.String(), nil
}

// formatField writes v in at most 'chars' characters and right justifies it
// in a field of FieldWidth characters. Digits beyond 'chars' are dropped;
// rounding has already made sure that only insignificant ones are lost.
//
// Scientific notation can't lose digits that way, so a value whose exponent
// form is too long is written positionally with as many decimals as fit.
// A value whose integer part doesn't fit is out of range.
func formatField(v float64, chars int) (string, error) {
	s := formatShortest(v)
	if len(s) > chars && strings.ContainsRune(s, 'e') {
		s = formatFixed(v, chars)
	}
	if whole := strings.IndexByte(s, '.'); whole > chars {
		return "", fmt.Errorf("%w: %s does not fit in %d characters",
			ErrOutOfRange, s, chars)
	}
	if len(s) > chars {
		s = s[:chars]
	}
	if len(s) < FieldWidth {
		s = strings.Repeat(" ", FieldWidth-len(s)) + s
	}
	if len(s) != FieldWidth {
		return "", fmt.Errorf("%w: %q has length %d", ErrFormattingInvariant,
			s, len(s))
	}
	return s, nil
}

// formatFixed writes a value smaller than 1 in magnitude in at most 'chars'
// characters of positional notation. If not even the sign fits, the value is
// written as an unsigned zero.
func formatFixed(v float64, chars int) string {
	prec := chars - len("0.")
	if v < 0 {
		prec--
	}
	s := strconv.FormatFloat(v, 'f', max(prec, 0), 64)
	if len(s) > chars {
		s = strconv.FormatFloat(math.Abs(v), 'f', max(chars-len("0."), 0), 64)
	}
	return s
}

// Write encodes coords and writes the result to w.
func Write(w io.Writer, coords []Coords, offset int) error {
	_, text, err := Encode(coords, offset)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, text)
	return err
}

// WriteFile encodes coords to a file at path. The file is only created if
// encoding succeeds. If echo is not nil, the encoded text is copied to it.
func WriteFile(path string, coords []Coords, offset int, echo io.Writer) error {
	_, text, err := Encode(coords, offset)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return err
	}
	if echo != nil {
		fmt.Fprintln(echo, text)
	}
	return nil
}
