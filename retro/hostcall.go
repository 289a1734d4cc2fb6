package retro

import (
	"github.com/ebitengine/purego"
)

// registerFunc binds a Go function variable to a host C function pointer.
// Tests swap it for a table of plain Go funcs.
var registerFunc = purego.RegisterFunc

// bindFunc leaves fptr nil when the host did not provide the function.
func bindFunc(fptr any, addr uintptr) {
	if addr == 0 {
		return
	}
	registerFunc(fptr, addr)
}
