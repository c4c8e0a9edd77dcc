package menu

import (
	"bufio"
	"io"
	"strings"
)

func splitLines(input string) []string {
	lines, _ := readLines(strings.NewReader(input))
	return lines
}

func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lines := []string{}
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
