// Package platform holds the pieces the device core treats as external:
// the board resource provider, the page-mapping primitive and the device
// registration hook, together with simulated implementations that run
// without hardware.
package platform

import "github.com/euikook/gpiomem/regions"

// PageShift converts mmap-style page offsets to physical byte addresses.
// The boards this targets use 4 KiB pages.
const PageShift = 12

// Resources supplies the register-window descriptors discovered for one
// board.
type Resources interface {
	// RegCells returns the raw u32 descriptor payload,
	// regions.RegionCellWords cells per declared window.
	RegCells() []uint32
	// MemResource resolves the i-th declared window to concrete physical
	// bounds. It reports false when no such window is declared.
	MemResource(i int) (regions.Region, bool)
}

// Request is one mapping request: the exact physical interval
// [Start, Start+Length) and the protection asked for.
type Request struct {
	Start  uint64
	Length uint64
	Prot   regions.Prot
}

// RequestAt builds a Request from an mmap-style page offset.
func RequestAt(pgoff, length uint64, prot regions.Prot) Request {
	return Request{Start: pgoff << PageShift, Length: length, Prot: prot}
}

// End returns the exclusive end of the requested interval.
func (r Request) End() uint64 { return r.Start + r.Length }

// Mapping is one live window mapping. Its lifetime belongs to the caller;
// the device core never tracks it.
type Mapping interface {
	// Bytes is the mapped window, exactly the requested length.
	Bytes() []byte
	Close() error
}

// Mapper installs physical page mappings. Implementations own the access
// semantics (an I/O register backend must map non-cached) and only ever
// see requests that passed admission. When mapping resources run out they
// must fail the request rather than install a smaller window.
type Mapper interface {
	Map(req Request) (Mapping, error)
	// Close releases the primitive itself, not the mappings handed out.
	Close() error
}

// Registrar announces a device identity to the outside world (device node,
// class entry). The returned release undoes the registration.
type Registrar interface {
	Register(name string, minor int) (release func(), err error)
}
