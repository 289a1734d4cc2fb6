package retro

import (
	"fmt"
	"unsafe"

	"github.com/user-none/goretro/abi"
)

// Framebuffer is a software framebuffer. Its memory belongs either to the
// host, valid until Run returns, or to the shared fallback buffer.
type Framebuffer struct {
	Width       uint32
	Height      uint32
	Pitch       uintptr
	Format      PixelFormat
	AccessFlags MemoryAccess
	MemoryFlags MemoryType

	data []byte
	host bool
}

// Data returns the Height*Pitch bytes of the framebuffer.
func (f *Framebuffer) Data() []byte { return f.data }

// HostOwned reports whether the memory was provided by the host.
func (f *Framebuffer) HostOwned() bool { return f.host }

// Pixels16 views the framebuffer as 16 bit pixels. stride is the distance
// between rows in pixels.
func (f *Framebuffer) Pixels16() (pix []uint16, stride int, err error) {
	if f.Format.BytesPerPixel() != 2 {
		return nil, 0, fmt.Errorf("pixels16: format is %s", f.Format)
	}
	return pixelView[uint16](f)
}

// Pixels32 views the framebuffer as 32 bit pixels. stride is the distance
// between rows in pixels.
func (f *Framebuffer) Pixels32() (pix []uint32, stride int, err error) {
	if f.Format.BytesPerPixel() != 4 {
		return nil, 0, fmt.Errorf("pixels32: format is %s", f.Format)
	}
	return pixelView[uint32](f)
}

func pixelView[P uint16 | uint32](f *Framebuffer) ([]P, int, error) {
	var zero P
	size := unsafe.Sizeof(zero)
	if f.Pitch%size != 0 {
		return nil, 0, fmt.Errorf("pitch %d is not a multiple of %d", f.Pitch, size)
	}
	if len(f.data) == 0 {
		return nil, 0, nil
	}
	if uintptr(unsafe.Pointer(&f.data[0]))%size != 0 {
		return nil, 0, fmt.Errorf("framebuffer is not %d byte aligned", size)
	}
	stride := int(f.Pitch / size)
	if uintptr(stride) < uintptr(f.Width) {
		return nil, 0, fmt.Errorf("pitch %d is smaller than a row of %d pixels", f.Pitch, f.Width)
	}
	return unsafe.Slice((*P)(unsafe.Pointer(&f.data[0])), len(f.data)/int(size)), stride, nil
}

// fallbackFramebuffer backs CurrentFramebufferOrFallback. Run is never
// re-entered, so one buffer suffices.
var fallbackFramebuffer []byte

// CurrentFramebuffer asks the host for memory to render the next frame
// into.
func (c *RunContext) CurrentFramebuffer(width, height uint32, access MemoryAccess, format PixelFormat) (*Framebuffer, error) {
	fb, err := c.Generic().SoftwareFramebuffer(abi.Framebuffer{
		Width:       width,
		Height:      height,
		Format:      int32(format),
		AccessFlags: uint32(access),
	})
	if err != nil {
		return nil, err
	}
	if fb.Data == nil {
		return nil, nullPointer("framebuffer.data")
	}
	f := PixelFormat(fb.Format)
	if f.BytesPerPixel() == 0 {
		return nil, &InvalidEnumValueError{Type: "PixelFormat", Value: int64(fb.Format)}
	}
	n := uintptr(fb.Height) * fb.Pitch
	return &Framebuffer{
		Width:       fb.Width,
		Height:      fb.Height,
		Pitch:       fb.Pitch,
		Format:      f,
		AccessFlags: MemoryAccess(fb.AccessFlags),
		MemoryFlags: MemoryType(fb.MemoryFlags),
		data:        unsafe.Slice((*byte)(fb.Data), n),
		host:        true,
	}, nil
}

// CurrentFramebufferOrFallback is CurrentFramebuffer, falling back to a
// package owned buffer when the host has none with the requested access.
func (c *RunContext) CurrentFramebufferOrFallback(width, height uint32, access MemoryAccess, format PixelFormat) *Framebuffer {
	fb, err := c.CurrentFramebuffer(width, height, access, format)
	if err == nil && fb.AccessFlags&access != 0 {
		return fb
	}
	if err != nil {
		c.log().Debug("using fallback framebuffer", "error", err)
	}

	pitch := uintptr(width) * uintptr(format.BytesPerPixel())
	n := int(uintptr(height) * pitch)
	if len(fallbackFramebuffer) < n {
		fallbackFramebuffer = make([]byte, n)
	}
	return &Framebuffer{
		Width:       width,
		Height:      height,
		Pitch:       pitch,
		Format:      format,
		AccessFlags: MemoryAccessRead | MemoryAccessWrite,
		MemoryFlags: MemoryUncached,
		data:        fallbackFramebuffer[:n:n],
	}
}
