package platform

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/OneOfOne/xxhash"
	"github.com/go-errors/errors"
	log "github.com/sirupsen/logrus"
)

const memSalt = uint64(0xa66aec150c63e3fe)

// DefaultSimSlots bounds how many mappings a Sim keeps alive at once when
// the caller does not pick a bound.
const DefaultSimSlots = 8

// Sim is a hermetic Mapper. A mapped window is a plain buffer whose
// content derives from the physical address and the seed alone, so
// repeated runs observe identical register images. Live mappings are
// bounded the way a real backend runs out of map slots: a failed Map can
// be retried once some mapping is closed.
type Sim struct {
	seed  uint64
	slots int

	mu   sync.Mutex
	live int
}

// NewSim builds a simulated mapper. A slots value of zero or less falls
// back to DefaultSimSlots.
func NewSim(seed uint64, slots int) *Sim {
	if slots <= 0 {
		slots = DefaultSimSlots
	}
	return &Sim{seed: seed, slots: slots}
}

func (s *Sim) Map(req Request) (Mapping, error) {
	if req.Length == 0 {
		return nil, errors.Errorf("cannot map an empty window at %#x", req.Start)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live >= s.slots {
		return nil, errors.Errorf("no mapping slots left (%d live)", s.live)
	}
	s.live++
	buf := make([]byte, req.Length)
	for i := range buf {
		buf[i] = byte(fastHash(s.seed^memSalt, req.Start+uint64(i)))
	}
	log.WithFields(log.Fields{"start": hex(req.Start), "length": hex(req.Length)}).Debug("sim mapped window")
	return &simMapping{owner: s, buf: buf}, nil
}

func (s *Sim) Close() error { return nil }

// Live returns the number of mappings currently open.
func (s *Sim) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live
}

type simMapping struct {
	owner *Sim
	buf   []byte
}

func (m *simMapping) Bytes() []byte { return m.buf }

func (m *simMapping) Close() error {
	m.owner.mu.Lock()
	defer m.owner.mu.Unlock()
	if m.buf == nil {
		return nil
	}
	m.buf = nil
	m.owner.live--
	return nil
}

func fastHash(salt uint64, val uint64) uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], val)
	return xxhash.Checksum64S(b[:], salt)
}

func hex(v uint64) string {
	return fmt.Sprintf("0x%x", v)
}
