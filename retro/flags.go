package retro

import (
	"fmt"
	"unsafe"
)

type flagBits interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~int32
}

// checkFlags validates v against the known bits. In lenient mode unknown
// bits pass through untouched.
func checkFlags[F flagBits](v, known F, strict bool) (F, error) {
	if !strict || v&^known == 0 {
		return v, nil
	}
	return 0, &UnknownBitsError{
		Known:   formatBits(known),
		Unknown: formatBits(v &^ known),
	}
}

func formatBits[F flagBits](v F) string {
	width := int(unsafe.Sizeof(v)) * 8
	u := uint64(v)
	if width < 64 {
		u &= 1<<width - 1
	}
	return fmt.Sprintf("%0*b", width, u)
}
