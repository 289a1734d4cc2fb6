package main

import (
	"fmt"
	"strconv"

	"github.com/user-none/goretro/retro"
)

const (
	screenWidth  = 320
	screenHeight = 240
	sampleRate   = 48000
	fps          = 60

	samplesPerFrame  = sampleRate / fps
	toneAmplitude    = 4000
	optionSquareSize = "testpattern_square_size"
	optionTone       = "testpattern_tone"
)

// frameUsec is the frame time reference handed to the host.
var frameUsec = retro.FrameTimeReference(fps)

const (
	colorLight uint32 = 0x00E0E0E0
	colorDark  uint32 = 0x00202040
)

type core struct {
	squareSize int
	toneHz     int

	// elapsed is the content time in microseconds, advanced by the
	// host reported frame delta.
	elapsed int64

	audioCallback bool
	audioEnabled  bool
	phase         int
	audioBuf      []int16
}

var (
	_ retro.Core                  = (*core)(nil)
	_ retro.EnvironmentSetter     = (*core)(nil)
	_ retro.OptionsProvider       = (*core)(nil)
	_ retro.OptionsChangedHandler = (*core)(nil)
	_ retro.AudioWriter           = (*core)(nil)
	_ retro.Resetter              = (*core)(nil)
)

func newCore() *core {
	return &core{
		squareSize: 16,
		toneHz:     440,
		audioBuf:   make([]int16, samplesPerFrame*2),
	}
}

func (c *core) SystemInfo() retro.SystemInfo {
	return retro.SystemInfo{
		LibraryName:    "testpattern",
		LibraryVersion: "1.0.0",
	}
}

func (c *core) SetEnvironment(initial bool, ctx *retro.SetEnvironmentContext) {
	if !initial {
		return
	}
	if err := ctx.SetSupportNoGame(true); err != nil {
		ctx.Logger().Warn("frontend refused no-game support", "error", err)
	}
}

func (c *core) CoreOptions() retro.CoreOptions {
	return retro.CoreOptions{
		Categories: []retro.OptionCategory{
			{Key: "video", Desc: "Video", Info: "Pattern settings."},
			{Key: "audio", Desc: "Audio", Info: "Tone settings."},
		},
		Definitions: []retro.CoreOption{
			{
				Key:             optionSquareSize,
				Desc:            "Square Size",
				DescCategorized: "Square Size",
				Info:            "Edge length of a checkerboard square in pixels.",
				CategoryKey:     "video",
				Values:          []retro.OptionValue{{Value: "8"}, {Value: "16"}, {Value: "32"}},
				Default:         "16",
			},
			{
				Key:             optionTone,
				Desc:            "Test Tone",
				DescCategorized: "Tone",
				Info:            "Frequency of the square wave tone.",
				CategoryKey:     "audio",
				Values: []retro.OptionValue{
					{Value: "off", Label: "Off"},
					{Value: "220", Label: "220 Hz"},
					{Value: "440", Label: "440 Hz"},
				},
				Default: "440",
			},
		},
	}
}

func (c *core) OptionsChanged(ctx *retro.OptionsChangedContext) {
	if v, ok, err := ctx.Variable(optionSquareSize); err == nil && ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.squareSize = n
		}
	}
	if v, ok, err := ctx.Variable(optionTone); err == nil && ok {
		if v == "off" {
			c.toneHz = 0
		} else if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.toneHz = n
		}
	}
}

func (c *core) Init(ctx *retro.InitContext) {}

func (c *core) SystemAVInfo(ctx *retro.GetAvInfoContext) retro.SystemAVInfo {
	return retro.SystemAVInfo{
		Geometry: retro.GameGeometry{
			BaseWidth:   screenWidth,
			BaseHeight:  screenHeight,
			MaxWidth:    screenWidth,
			MaxHeight:   screenHeight,
			AspectRatio: 4.0 / 3.0,
		},
		Timing: retro.SystemTiming{FPS: fps, SampleRate: sampleRate},
	}
}

// LoadGame accepts any content, including none.
func (c *core) LoadGame(game *retro.GameInfo, ctx *retro.LoadGameContext) error {
	if err := ctx.SetPixelFormat(retro.PixelFormatXRGB8888); err != nil {
		return fmt.Errorf("XRGB8888 pixel format: %w", err)
	}
	if err := ctx.EnableFrameTimeCallback(frameUsec); err != nil {
		ctx.Logger().Debug("no frame time callback", "error", err)
	}
	c.audioCallback = ctx.Generic().EnableAudioCallback() == nil
	c.audioEnabled = false
	return nil
}

func (c *core) Reset(ctx *retro.ResetContext) {
	c.elapsed = 0
	c.phase = 0
}

func (c *core) Run(ctx *retro.RunContext, delta int64) {
	pad := ctx.JoypadBitmask(0, 0)
	if pad.Has(retro.JoypadStart) && pad.Has(retro.JoypadSelect) {
		ctx.Generic().Shutdown()
		return
	}

	c.elapsed += delta
	offset := int(c.elapsed / frameUsec)

	fb := ctx.CurrentFramebufferOrFallback(screenWidth, screenHeight, retro.MemoryAccessWrite, retro.PixelFormatXRGB8888)
	pix, stride, err := fb.Pixels32()
	if err != nil {
		ctx.Logger().Error("unusable framebuffer", "error", err)
		return
	}
	drawCheckerboard(pix, stride, int(fb.Width), int(fb.Height), c.squareSize, offset, pad.Has(retro.JoypadA))
	ctx.DrawFramebuffer(fb)

	if !c.audioCallback {
		c.writeAudio(ctx.Audio())
	}
}

// WriteAudio runs when the host pulls audio. Without the audio callback
// Run pushes audio instead.
func (c *core) WriteAudio(ctx *retro.AudioContext) {
	if c.audioCallback && c.audioEnabled {
		c.writeAudio(ctx)
	}
}

func (c *core) AudioSetState(enabled bool) {
	c.audioEnabled = enabled
}

func (c *core) writeAudio(ctx *retro.AudioContext) {
	c.phase = fillTone(c.audioBuf, c.toneHz, c.phase)
	ctx.BatchAudioSamples(c.audioBuf)
}

// drawCheckerboard fills a width x height area of pix, scrolled diagonally
// by offset pixels. invert swaps the two colors.
func drawCheckerboard(pix []uint32, stride, width, height, size, offset int, invert bool) {
	if size <= 0 {
		size = 1
	}
	light, dark := colorLight, colorDark
	if invert {
		light, dark = dark, light
	}
	for y := 0; y < height; y++ {
		row := pix[y*stride : y*stride+width]
		by := (y + offset) / size
		for x := range row {
			if ((x+offset)/size+by)%2 == 0 {
				row[x] = light
			} else {
				row[x] = dark
			}
		}
	}
}

// fillTone writes interleaved stereo square wave samples into buf, starting
// at phase (in samples), and returns the phase to continue from. hz of 0
// writes silence.
func fillTone(buf []int16, hz, phase int) int {
	if hz <= 0 {
		clear(buf)
		return 0
	}
	period := sampleRate / hz
	for i := 0; i+1 < len(buf); i += 2 {
		v := int16(toneAmplitude)
		if phase >= period/2 {
			v = -toneAmplitude
		}
		buf[i], buf[i+1] = v, v
		phase++
		if phase >= period {
			phase = 0
		}
	}
	return phase
}
