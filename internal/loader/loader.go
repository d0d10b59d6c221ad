// Package loader reads a PDP-11 memory image: one octal-encoded 16-bit word
// per line, the Nth line landing at byte address 2N.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"pdp11sim/mem"
)

// Load reads newline-delimited octal words from r into m, the Nth line
// (0-indexed) at byte address 2N. A malformed line or an image that would
// write past the end of memory is a fatal load error.
func Load(r io.Reader, m *mem.Memory) (int, error) {
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		word, err := strconv.ParseUint(line, 8, 16)
		if err != nil {
			return n, fmt.Errorf("loader: line %d: malformed octal word %q: %w", n, line, err)
		}
		addr := 2 * n
		if addr+1 >= mem.Size {
			return n, fmt.Errorf("loader: line %d exceeds memory capacity (%d bytes)", n, mem.Size)
		}
		if err := m.WriteWordAt(n, uint16(word)); err != nil {
			return n, fmt.Errorf("loader: line %d: %w", n, err)
		}
		n++
	}
	if err := scanner.Err(); err != nil {
		return n, fmt.Errorf("loader: reading input: %w", err)
	}
	return n, nil
}
