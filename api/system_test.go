package emucore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayAspectRatio(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		height   int
		par      float64
		expected float64
	}{
		{"Genesis H40 224 lines", 320, 224, 32.0 / 35.0, (320.0 / 224.0) * (32.0 / 35.0)},
		{"SMS 192 lines", 256, 192, 8.0 / 7.0, (256.0 / 192.0) * (8.0 / 7.0)},
		{"Square pixels", 320, 240, 1.0, 320.0 / 240.0},
		{"Unset pixel aspect", 320, 240, 0, 320.0 / 240.0},
		{"Zero height", 320, 0, 1.0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, DisplayAspectRatio(tt.width, tt.height, tt.par), 1e-9)
		})
	}
}

func TestRegionString(t *testing.T) {
	assert.Equal(t, "NTSC", RegionNTSC.String())
	assert.Equal(t, "PAL", RegionPAL.String())
	assert.Equal(t, "Unknown", Region(7).String())
}

func TestParseRegion(t *testing.T) {
	tests := []struct {
		in   string
		want Region
		ok   bool
	}{
		{"NTSC", RegionNTSC, true},
		{"pal", RegionPAL, true},
		{"Auto", RegionNTSC, false},
		{"", RegionNTSC, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseRegion(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
