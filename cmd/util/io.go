package util

import (
	"bufio"
	"io"
	"os"
	"strings"
)

func ReadLines(r io.Reader) []string {
	buf := bufio.NewReader(r)
	lines := make([]string, 0)
	for {
		line, err := buf.ReadString('\n')
		if err != nil && err != io.EOF {
			Fatalf("Could not read line: %s.", err)
		}
		lines = append(lines, strings.TrimSpace(line))
		if err == io.EOF {
			break
		}
	}
	return lines
}

// OpenFile opens path for reading. "-" is stdin.
func OpenFile(path string) io.ReadCloser {
	if path == "-" {
		return io.NopCloser(os.Stdin)
	}
	f, err := os.Open(path)
	Assert(err, "Could not open file '%s'", path)
	return f
}

// CreateFile creates path for writing. "-" is stdout.
func CreateFile(path string) io.WriteCloser {
	if path == "-" {
		return nopWriteCloser{os.Stdout}
	}
	f, err := os.Create(path)
	Assert(err, "Could not create file '%s'", path)
	return f
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
