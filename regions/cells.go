package regions

import (
	"github.com/go-errors/errors"
	log "github.com/sirupsen/logrus"
)

// RegionCellWords is the number of raw u32 cells one register-window
// descriptor occupies: a 64-bit start address and a 64-bit size, high cell
// first.
const RegionCellWords = 4

// RegionCountFromCells derives the number of declared windows from the raw
// cell count. A payload that does not divide into whole descriptors is a
// board configuration defect and is rejected instead of silently truncated.
func RegionCountFromCells(ncells int) (int, error) {
	if ncells%RegionCellWords != 0 {
		log.WithFields(log.Fields{"cells": ncells, "per_area": RegionCellWords}).Error("register area cells are not whole descriptors")
		return 0, errors.Wrap(ErrRegionCount, 0)
	}
	return ncells / RegionCellWords, nil
}

// DecodeRegCells converts a raw descriptor payload into windows, keeping
// declaration order. Bounds are not validated here; the table constructor
// is the gatekeeper.
func DecodeRegCells(cells []uint32) ([]Region, error) {
	n, err := RegionCountFromCells(len(cells))
	if err != nil {
		return nil, err
	}
	wins := make([]Region, 0, n)
	for i := 0; i < n; i++ {
		c := cells[i*RegionCellWords:]
		start := uint64(c[0])<<32 | uint64(c[1])
		size := uint64(c[2])<<32 | uint64(c[3])
		wins = append(wins, Region{Start: start, End: start + size})
	}
	return wins, nil
}

// EncodeRegCells renders windows back into the raw descriptor payload, the
// inverse of DecodeRegCells.
func EncodeRegCells(wins []Region) []uint32 {
	cells := make([]uint32, 0, len(wins)*RegionCellWords)
	for _, w := range wins {
		size := w.Size()
		cells = append(cells,
			uint32(w.Start>>32), uint32(w.Start),
			uint32(size>>32), uint32(size),
		)
	}
	return cells
}
