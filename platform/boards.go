package platform

import "github.com/euikook/gpiomem/regions"

// Known board layouts. PIO is the main pin controller bank, R_PIO the
// always-on bank in the RTC power domain.

// SunxiH3 returns the register windows of the Allwinner H3 and H5 boards.
func SunxiH3() *StaticResources {
	return NewStaticResources(
		regions.Region{Start: 0x01c20800, End: 0x01c20c00}, // PIO
		regions.Region{Start: 0x01f02c00, End: 0x01f03000}, // R_PIO
	)
}

// SunxiA64 returns the register windows of the Allwinner A64 boards.
func SunxiA64() *StaticResources {
	return NewStaticResources(
		regions.Region{Start: 0x01c20800, End: 0x01c20c00}, // PIO
		regions.Region{Start: 0x01f02c00, End: 0x01f03000}, // R_PIO
	)
}

// Board looks a layout up by board name.
func Board(name string) (*StaticResources, bool) {
	switch name {
	case "sun8i-h3":
		return SunxiH3(), true
	case "sun50i-a64":
		return SunxiA64(), true
	}
	return nil, false
}
