// Package regions holds the register-window table a gpiomem device is
// allowed to expose and the containment checks mapping admission is built
// on.
package regions

import "errors"

var (
	// ErrRegionCount reports a window count outside [1, MaxRegions], or a
	// raw descriptor payload that does not divide into whole descriptors.
	ErrRegionCount = errors.New("gpiomem: bad register area count")

	// ErrBadRegion reports a window whose resolved bounds are empty or
	// inverted.
	ErrBadRegion = errors.New("gpiomem: invalid register window bounds")
)

// Prot is the access protection of a mapping. The bit values match the
// mmap PROT_* constants so backends can hand them to the kernel unchanged.
type Prot uint32

const (
	R Prot = 1 << iota // readable
	W                  // writable
	X                  // executable
)

// Region is one hardware register window, the physical address interval
// [Start, End). A region is usable only when Start < End.
type Region struct {
	Start uint64
	End   uint64
}

// Size returns the window length in bytes.
func (r Region) Size() uint64 { return r.End - r.Start }

// IsValid reports whether the bounds describe a non-empty interval.
func (r Region) IsValid() bool { return r.Start < r.End }

// ContainsRange reports whether [start, end) lies entirely inside the
// window. An interval whose end wrapped around the address space is never
// contained.
func (r Region) ContainsRange(start, end uint64) bool {
	if end < start {
		return false
	}
	return r.Start <= start && end <= r.End
}
