package platform

import "github.com/euikook/gpiomem/regions"

// StaticResources is a Resources implementation with the windows already
// in memory: board layouts compiled into a binary, or tables handed to
// tests.
type StaticResources struct {
	cells []uint32
	mems  []regions.Region
}

// NewStaticResources builds a provider from known windows. The raw cell
// payload is synthesized from them, so count derivation sees exactly what
// a board descriptor would carry.
func NewStaticResources(wins ...regions.Region) *StaticResources {
	mems := append([]regions.Region(nil), wins...)
	return &StaticResources{cells: regions.EncodeRegCells(mems), mems: mems}
}

// StaticResourcesFromCells builds a provider from a raw descriptor
// payload.
func StaticResourcesFromCells(cells []uint32) (*StaticResources, error) {
	mems, err := regions.DecodeRegCells(cells)
	if err != nil {
		return nil, err
	}
	return &StaticResources{cells: append([]uint32(nil), cells...), mems: mems}, nil
}

func (s *StaticResources) RegCells() []uint32 { return s.cells }

func (s *StaticResources) MemResource(i int) (regions.Region, bool) {
	if i < 0 || i >= len(s.mems) {
		return regions.Region{}, false
	}
	return s.mems[i], true
}
