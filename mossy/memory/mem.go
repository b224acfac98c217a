package memory

import (
	"fmt"
	"strings"
)

const pageSize = 256

// RAM is a byte-addressable device covering the inclusive address range
// [lower, upper]. The backing store is split into 256-byte pages that are
// allocated on first write, so a device spanning the full 64K space costs
// almost nothing until a program touches it. Reads from never-written
// locations return 0.
type RAM struct {
	lower uint16
	upper uint16
	pages [pageSize][]byte
}

// New creates a RAM device for the inclusive range [lower, upper].
func New(lower, upper uint16) *RAM {
	if lower > upper {
		panic(fmt.Sprintf("memory: invalid range [0x%04X, 0x%04X]", lower, upper))
	}
	return &RAM{lower: lower, upper: upper}
}

func (r *RAM) contains(address uint16) bool {
	return address >= r.lower && address <= r.upper
}

// ReadableAt reports whether the device responds to reads at the address.
func (r *RAM) ReadableAt(address uint16) bool {
	return r.contains(address)
}

// WritableAt reports whether the device responds to writes at the address.
func (r *RAM) WritableAt(address uint16) bool {
	return r.contains(address)
}

// Read returns the byte stored at the address, or 0 if the location was
// never written. Addresses outside the device range also read as 0.
func (r *RAM) Read(address uint16) byte {
	if !r.contains(address) {
		return 0
	}
	offset := address - r.lower
	page := r.pages[offset>>8]
	if page == nil {
		return 0
	}
	return page[offset&0xFF]
}

// Write stores a byte at the address, allocating the backing page if
// needed. Writes outside the device range are dropped.
func (r *RAM) Write(address uint16, value byte) {
	if !r.contains(address) {
		return
	}
	offset := address - r.lower
	if r.pages[offset>>8] == nil {
		r.pages[offset>>8] = make([]byte, pageSize)
	}
	r.pages[offset>>8][offset&0xFF] = value
}

// Load bulk-writes data sequentially starting at start. If the block would
// run past the top of the device range the load fails before any byte is
// written; partial loads never happen.
func (r *RAM) Load(start uint16, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if !r.contains(start) {
		return fmt.Errorf("memory: load start 0x%04X outside [0x%04X, 0x%04X]", start, r.lower, r.upper)
	}
	end := uint32(start) + uint32(len(data)) - 1
	if end > uint32(r.upper) {
		return fmt.Errorf("memory: load of %d bytes at 0x%04X overflows upper bound 0x%04X", len(data), start, r.upper)
	}
	for i, b := range data {
		r.Write(start+uint16(i), b)
	}
	return nil
}

// Dump formats the inclusive range [lo, hi] as hex lines of 16 bytes, in
// the style "0200: EA A2 05 ...". It is read-only and clamps to the device
// range.
func (r *RAM) Dump(lo, hi uint16) string {
	if lo < r.lower {
		lo = r.lower
	}
	if hi > r.upper {
		hi = r.upper
	}
	if lo > hi {
		return ""
	}

	var sb strings.Builder
	for line := uint32(lo) &^ 0xF; line <= uint32(hi); line += 16 {
		fmt.Fprintf(&sb, "%04X:", line)
		for a := line; a < line+16; a++ {
			if a < uint32(lo) || a > uint32(hi) {
				sb.WriteString("   ")
				continue
			}
			fmt.Fprintf(&sb, " %02X", r.Read(uint16(a)))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Lower returns the first address covered by the device.
func (r *RAM) Lower() uint16 { return r.lower }

// Upper returns the last address covered by the device.
func (r *RAM) Upper() uint16 { return r.upper }
