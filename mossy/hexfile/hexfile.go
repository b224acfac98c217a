// Package hexfile parses the plain-text hex dump format used to describe
// memory images:
//
//	# program
//	0200: EA A2 05 A9 AA 95 01 EA 00
//	FFFC: 00 02
//
// Each line is a 16-bit hex origin, a colon, and hex bytes. Lines starting
// with # (and blank lines) are ignored. A line with bytes but no origin
// continues the previous record.
package hexfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Record is one contiguous block of a memory image.
type Record struct {
	Origin uint16
	Data   []byte
}

// Parse reads hex dump text into records, one per origin line.
func Parse(r io.Reader) ([]Record, error) {
	var records []Record

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		start := 0
		if strings.HasSuffix(fields[0], ":") {
			origin, err := strconv.ParseUint(strings.TrimSuffix(fields[0], ":"), 16, 16)
			if err != nil {
				return nil, fmt.Errorf("hexfile: line %d: bad origin %q: %w", lineNo, fields[0], err)
			}
			records = append(records, Record{Origin: uint16(origin)})
			start = 1
		} else if len(records) == 0 {
			return nil, fmt.Errorf("hexfile: line %d: data before any origin", lineNo)
		}

		rec := &records[len(records)-1]
		for _, f := range fields[start:] {
			b, err := strconv.ParseUint(f, 16, 8)
			if err != nil {
				return nil, fmt.Errorf("hexfile: line %d: bad byte %q: %w", lineNo, f, err)
			}
			rec.Data = append(rec.Data, byte(b))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("hexfile: %w", err)
	}
	return records, nil
}

// ParseString is a convenience wrapper around Parse for tests and inline
// images.
func ParseString(s string) ([]Record, error) {
	return Parse(strings.NewReader(s))
}
