package retro

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user-none/goretro/abi"
)

func TestFramebufferFallback(t *testing.T) {
	_, ctx := runContext(t, newFakeHost())

	fb := ctx.CurrentFramebufferOrFallback(4, 3, MemoryAccessWrite, PixelFormatXRGB8888)
	assert.False(t, fb.HostOwned())
	assert.Equal(t, uintptr(16), fb.Pitch)
	assert.Len(t, fb.Data(), 48)

	pix, stride, err := fb.Pixels32()
	require.NoError(t, err)
	assert.Equal(t, 4, stride)
	assert.Len(t, pix, 12)

	_, _, err = fb.Pixels16()
	assert.Error(t, err)

	// A smaller request reuses the same buffer.
	small := ctx.CurrentFramebufferOrFallback(2, 2, MemoryAccessWrite, PixelFormatRGB565)
	assert.Len(t, small.Data(), 8)
	assert.Equal(t, &fb.Data()[0], &small.Data()[0])
}

// TestFramebufferFromHost verifies the host buffer is used when it grants
// the requested access.
func TestFramebufferFromHost(t *testing.T) {
	mem := make([]uint32, 8*2)
	host := newFakeHost().on(abi.EnvGetCurrentSoftwareFramebuffer, func(data unsafe.Pointer) bool {
		fb := (*abi.Framebuffer)(data)
		fb.Data = unsafe.Pointer(&mem[0])
		fb.Pitch = 8 * 4
		fb.Format = abi.PixelFormatXRGB8888
		fb.AccessFlags = abi.MemoryAccessWrite
		return true
	})
	_, ctx := runContext(t, host)

	fb := ctx.CurrentFramebufferOrFallback(6, 2, MemoryAccessWrite, PixelFormatXRGB8888)
	require.True(t, fb.HostOwned())
	pix, stride, err := fb.Pixels32()
	require.NoError(t, err)
	assert.Equal(t, 8, stride)
	pix[stride+1] = 0xff00ff
	assert.Equal(t, uint32(0xff00ff), mem[9])

	// Read access was not granted, so the fallback is used.
	fb = ctx.CurrentFramebufferOrFallback(6, 2, MemoryAccessRead, PixelFormatXRGB8888)
	assert.False(t, fb.HostOwned())
}

func TestFramebufferNullData(t *testing.T) {
	host := newFakeHost().on(abi.EnvGetCurrentSoftwareFramebuffer, func(unsafe.Pointer) bool { return true })
	_, ctx := runContext(t, host)

	_, err := ctx.CurrentFramebuffer(4, 4, MemoryAccessWrite, PixelFormatRGB565)
	assert.ErrorIs(t, err, ErrNullPointer)
}

func TestPixelViewChecksPitch(t *testing.T) {
	fb := &Framebuffer{Width: 4, Height: 1, Pitch: 6, Format: PixelFormatRGB565, data: make([]byte, 6)}
	_, _, err := fb.Pixels16()
	assert.ErrorContains(t, err, "smaller than a row")

	fb = &Framebuffer{Width: 1, Height: 1, Pitch: 6, Format: PixelFormatXRGB8888, data: make([]byte, 8)}
	_, _, err = fb.Pixels32()
	assert.ErrorContains(t, err, "not a multiple of 4")
}

func TestDrawFramebuffer(t *testing.T) {
	d, ctx := runContext(t, newFakeHost())
	var got videoCall
	d.SetVideoRefresh(func(data unsafe.Pointer, w, h uint32, pitch uintptr) {
		got = videoCall{data, w, h, pitch}
	}, nil)

	fb := ctx.CurrentFramebufferOrFallback(2, 2, MemoryAccessWrite, PixelFormatRGB565)
	ctx.DrawFramebuffer(fb)
	assert.Equal(t, unsafe.Pointer(&fb.Data()[0]), got.data)
	assert.Equal(t, uint32(2), got.width)
	assert.Equal(t, uintptr(4), got.pitch)
}
