package adapter

import (
	"github.com/user-none/goretro/retro"
)

// convertRGBAToXRGB8888 converts RGBA pixels to XRGB8888 format.
func convertRGBAToXRGB8888(src, dst []byte, pixels int) {
	for i := 0; i < pixels; i++ {
		srcIdx := i * 4
		dstIdx := i * 4
		dst[dstIdx+0] = src[srcIdx+2] // B
		dst[dstIdx+1] = src[srcIdx+1] // G
		dst[dstIdx+2] = src[srcIdx+0] // R
		dst[dstIdx+3] = 0xFF          // X
	}
}

// outputVideo converts the emulator frame row by row and presents it.
// Rows missing from a short framebuffer are left black.
func (c *Core) outputVideo(ctx *retro.RunContext, fb []byte, stride, activeHeight int) {
	screenWidth := c.sys.ScreenWidth
	if activeHeight <= 0 {
		return
	}
	if activeHeight > c.sys.MaxScreenHeight {
		activeHeight = c.sys.MaxScreenHeight
	}
	if stride <= 0 {
		stride = screenWidth * 4
	}
	rowBytes := screenWidth * 4
	if len(c.xrgbBuf) < rowBytes*activeHeight {
		c.xrgbBuf = make([]byte, rowBytes*c.sys.MaxScreenHeight)
	}

	for y := 0; y < activeHeight; y++ {
		dst := c.xrgbBuf[y*rowBytes : (y+1)*rowBytes]
		start := y * stride
		if start >= len(fb) {
			clear(dst)
			continue
		}
		src := fb[start:min(start+rowBytes, len(fb))]
		convertRGBAToXRGB8888(src, dst, len(src)/4)
	}

	ctx.DrawFrame(c.xrgbBuf[:rowBytes*activeHeight], uint32(screenWidth), uint32(activeHeight), uintptr(rowBytes))
	if c.width != screenWidth || c.height != activeHeight {
		c.width = screenWidth
		c.height = activeHeight
		c.updateGeometry(ctx)
	}
}

// updateGeometry notifies the frontend of geometry changes.
func (c *Core) updateGeometry(ctx *retro.RunContext) {
	if err := ctx.SetGameGeometry(c.geometry(c.width, c.height)); err != nil {
		c.log.Debug("frontend refused geometry", "width", c.width, "height", c.height, "error", err)
	}
}
