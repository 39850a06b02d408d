package xyz

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
)

// Read parses a structure in the xyz format. The second line is treated as
// a comment and ignored. Blank lines after the last point are allowed.
func Read(r io.Reader) ([]Coords, error) {
	scanner := bufio.NewScanner(r)
	lineno := 0
	next := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		lineno++
		return scanner.Text(), true
	}

	header, ok := next()
	if !ok {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, &ParseError{Line: 1, Msg: "missing point count"}
	}
	count, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || count < 1 {
		return nil, &ParseError{Line: 1,
			Msg: "expected a positive point count but got " +
				strconv.Quote(header)}
	}
	next() // comment line

	coords := make([]Coords, 0, count)
	for {
		line, ok := next()
		if !ok {
			break
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(coords) == count {
			return nil, &ParseError{Line: lineno,
				Msg: "more points than the declared count of " +
					strconv.Itoa(count)}
		}
		if len(fields) != 4 {
			return nil, &ParseError{Line: lineno,
				Msg: "expected a label and 3 coordinates"}
		}
		var c Coords
		for j := 0; j < 3; j++ {
			v, err := strconv.ParseFloat(fields[j+1], 64)
			if err != nil {
				return nil, &ParseError{Line: lineno, Msg: err.Error()}
			}
			c[j] = v
		}
		coords = append(coords, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(coords) != count {
		return nil, &ParseError{Line: lineno,
			Msg: "declared " + strconv.Itoa(count) + " points but found " +
				strconv.Itoa(len(coords))}
	}
	return coords, nil
}

// ReadFile reads an xyz structure from the file at path.
func ReadFile(path string) ([]Coords, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}
