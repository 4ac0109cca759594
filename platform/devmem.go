package platform

import (
	"math"
	"os"

	"github.com/go-errors/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/euikook/gpiomem/regions"
)

// DevMemPath is the default physical-memory device node.
const DevMemPath = "/dev/mem"

// DevMem is the hardware Mapper: windows are mapped MAP_SHARED out of a
// physical-memory device file. The file is opened with O_SYNC so the
// kernel applies device-type, non-cached attributes to the pages, which is
// what raw I/O registers need.
type DevMem struct {
	f        *os.File
	pageSize uint64
}

// OpenDevMem opens the device file backing the physical address space. An
// empty path means DevMemPath.
func OpenDevMem(path string) (*DevMem, error) {
	if path == "" {
		path = DevMemPath
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, errors.Wrap(err, 0)
	}
	return &DevMem{f: f, pageSize: uint64(os.Getpagesize())}, nil
}

// Map installs the requested window. The kernel wants page-aligned file
// offsets, so the enclosing pages are mapped and the exact request sliced
// back out; the caller never sees the padding.
func (m *DevMem) Map(req Request) (Mapping, error) {
	if req.Length == 0 {
		return nil, errors.Errorf("cannot map an empty window at %#x", req.Start)
	}
	head := req.Start % m.pageSize
	size := head + req.Length
	if size < req.Length || size > uint64(math.MaxInt) {
		return nil, errors.Errorf("window of %#x bytes does not fit a mapping", req.Length)
	}
	off := req.Start - head
	if off > uint64(math.MaxInt64) {
		return nil, errors.Errorf("window start %#x is beyond the device offset range", req.Start)
	}
	raw, err := unix.Mmap(int(m.f.Fd()), int64(off), int(size), protBits(req.Prot), unix.MAP_SHARED)
	if err != nil {
		return nil, errors.Wrap(err, 0)
	}
	log.WithFields(log.Fields{"start": hex(req.Start), "length": hex(req.Length)}).Debug("mapped device window")
	return &devMapping{raw: raw, win: raw[head : head+req.Length]}, nil
}

// Close releases the device file. Mappings already handed out stay alive
// until their owners close them.
func (m *DevMem) Close() error { return m.f.Close() }

func protBits(p regions.Prot) int {
	bits := 0
	if p&regions.R != 0 {
		bits |= unix.PROT_READ
	}
	if p&regions.W != 0 {
		bits |= unix.PROT_WRITE
	}
	if p&regions.X != 0 {
		bits |= unix.PROT_EXEC
	}
	return bits
}

type devMapping struct {
	raw []byte // page-aligned mapping
	win []byte // the requested slice of raw
}

func (d *devMapping) Bytes() []byte { return d.win }

func (d *devMapping) Close() error {
	if d.raw == nil {
		return nil
	}
	raw := d.raw
	d.raw, d.win = nil, nil
	return unix.Munmap(raw)
}
