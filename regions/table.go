package regions

import (
	"fmt"

	"github.com/go-errors/errors"
	log "github.com/sirupsen/logrus"
)

// MaxRegions is the hard ceiling on register windows a single device may
// expose. The board descriptor format reserves exactly this many slots.
const MaxRegions = 32

// Table is the ordered set of register windows one device exposes. It is
// built once at probe time and never mutated, so any number of concurrent
// lookups may share it without locking.
type Table struct {
	wins []Region
}

// NewTable validates the windows and copies them into an immutable table.
// The count must be in [1, MaxRegions] and every window must have usable
// bounds. The windows keep their discovery order and are never merged,
// even when they touch or overlap.
func NewTable(wins []Region) (*Table, error) {
	if len(wins) == 0 || len(wins) > MaxRegions {
		log.WithFields(log.Fields{"count": len(wins), "max": MaxRegions}).Error("register area count out of range")
		return nil, errors.Wrap(ErrRegionCount, 0)
	}
	for i, w := range wins {
		if !w.IsValid() {
			log.WithFields(log.Fields{"area": i, "start": hex(w.Start), "end": hex(w.End)}).Error("register window with invalid bounds")
			return nil, errors.Wrap(ErrBadRegion, 0)
		}
	}
	t := &Table{wins: make([]Region, len(wins))}
	copy(t.wins, wins)
	return t, nil
}

// Len returns the number of windows.
func (t *Table) Len() int { return len(t.wins) }

// At returns the i-th window in discovery order.
func (t *Table) At(i int) Region { return t.wins[i] }

// Find scans the windows in discovery order and returns the first one that
// fully contains [start, end). Overlapping windows are legal; the first
// match always wins, so repeated lookups give the same answer.
func (t *Table) Find(start, end uint64) (Region, bool) {
	for _, w := range t.wins {
		if w.ContainsRange(start, end) {
			return w, true
		}
	}
	return Region{}, false
}

func hex(v uint64) string {
	return fmt.Sprintf("0x%x", v)
}
