package emucore

import "strings"

// Region is a console video standard.
type Region int

const (
	RegionNTSC Region = iota
	RegionPAL
)

// Regions lists every region in declaration order.
var Regions = []Region{RegionNTSC, RegionPAL}

func (r Region) String() string {
	switch r {
	case RegionNTSC:
		return "NTSC"
	case RegionPAL:
		return "PAL"
	default:
		return "Unknown"
	}
}

// ParseRegion returns the region named s, ignoring case.
func ParseRegion(s string) (Region, bool) {
	for _, r := range Regions {
		if strings.EqualFold(s, r.String()) {
			return r, true
		}
	}
	return RegionNTSC, false
}

// Timing is the frame rate and line count of a region.
type Timing struct {
	FPS       float64
	Scanlines int
}
