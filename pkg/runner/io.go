package runner

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Epsilon is the line that stands for the empty input.
const Epsilon = "ε"

// ParseInputs reads one input per line. Lines are trimmed, blank lines are
// skipped and a line holding only Epsilon yields the empty string.
func ParseInputs(r io.Reader) ([]string, error) {
	var inputs []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "":
			continue
		case Epsilon:
			line = ""
		}
		inputs = append(inputs, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read inputs: %w", err)
	}
	return inputs, nil
}
