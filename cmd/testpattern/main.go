// Command testpattern is a libretro core that draws a scrolling
// checkerboard and plays a square wave tone. Build it with:
//
//	go build -buildmode=c-shared -o testpattern_libretro.so ./cmd/testpattern
package main

import (
	"github.com/user-none/goretro/libretro"
)

func init() {
	if err := libretro.Register(newCore()); err != nil {
		panic(err)
	}
}

func main() {}
