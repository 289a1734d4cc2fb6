package retro

import (
	"unsafe"

	"github.com/user-none/goretro/abi"
)

// Host callbacks registered through retro_set_*.
type (
	// VideoRefreshFunc presents a frame. A nil data pointer repeats the
	// previous frame.
	VideoRefreshFunc func(data unsafe.Pointer, width, height uint32, pitch uintptr)
	// HardwareFrameFunc presents the hardware framebuffer.
	HardwareFrameFunc    func(width, height uint32, pitch uintptr)
	AudioSampleFunc      func(left, right int16)
	AudioSampleBatchFunc func(data *int16, frames uintptr) uintptr
	InputPollFunc        func()
	InputStateFunc       func(port, device, index, id uint32) int16
)

// frameState is what the run loop remembers between frames.
type frameState struct {
	canDupe          bool
	supportsBitmasks bool
	hadFrame         bool
	width            uint32
	height           uint32
	pitch            uintptr
}

// joypadOrder is the order of single button queries.
var joypadOrder = [16]struct {
	id  uint32
	bit JoypadState
}{
	{abi.JoypadB, JoypadB},
	{abi.JoypadY, JoypadY},
	{abi.JoypadSelect, JoypadSelect},
	{abi.JoypadStart, JoypadStart},
	{abi.JoypadUp, JoypadUp},
	{abi.JoypadDown, JoypadDown},
	{abi.JoypadLeft, JoypadLeft},
	{abi.JoypadRight, JoypadRight},
	{abi.JoypadA, JoypadA},
	{abi.JoypadX, JoypadX},
	{abi.JoypadL, JoypadL},
	{abi.JoypadR, JoypadR},
	{abi.JoypadL2, JoypadL2},
	{abi.JoypadR2, JoypadR2},
	{abi.JoypadL3, JoypadL3},
	{abi.JoypadR3, JoypadR3},
}

// InputDeviceCapabilities returns the device types the host can deliver.
func (c *RunContext) InputDeviceCapabilities() (RetroDevice, error) {
	v, err := Get[uint64](c.env, abi.EnvGetInputDeviceCapabilities)
	if err != nil {
		return 0, err
	}
	return checkFlags(RetroDevice(uint8(v)), retroDeviceAll, c.strict())
}

// SetSystemAVInfo changes geometry and timing. The host may reinitialize
// its drivers.
func (c *RunContext) SetSystemAVInfo(info SystemAVInfo) error {
	if err := Set(c.env, abi.EnvSetSystemAVInfo, info.ABI()); err != nil {
		return err
	}
	c.d.avInfo = info
	c.d.avOverride = &info
	c.d.geometryOverride = nil
	return nil
}

// SetGameGeometry changes base size and aspect ratio in constant time. Max
// sizes are ignored by the host.
func (c *RunContext) SetGameGeometry(g GameGeometry) error {
	if err := Set(c.env, abi.EnvSetGeometry, g.ABI()); err != nil {
		return err
	}
	cur := &c.d.avInfo.Geometry
	cur.BaseWidth = g.BaseWidth
	cur.BaseHeight = g.BaseHeight
	cur.AspectRatio = g.AspectRatio
	c.d.geometryOverride = &g
	return nil
}

// SetMinimumAudioLatency asks for at least ms milliseconds of host audio
// latency.
func (c *RunContext) SetMinimumAudioLatency(ms uint32) error {
	return Set(c.env, abi.EnvSetMinimumAudioLatency, ms)
}

// CanDupe reports the answer to GET_CAN_DUPE cached at Init.
func (c *RunContext) CanDupe() bool {
	return c.d.frame.canDupe
}

// PollInput asks the host to poll input devices.
func (c *RunContext) PollInput() {
	if c.d.inputPoll != nil {
		c.d.inputPoll()
	}
}

// InputState queries one input. It returns 0 when the host registered no
// input callback.
func (c *RunContext) InputState(port, device, index, id uint32) int16 {
	if c.d.inputState == nil {
		return 0
	}
	return c.d.inputState(port, device, index, id)
}

// JoypadState queries all sixteen buttons one at a time.
func (c *RunContext) JoypadState(port, index uint32) JoypadState {
	cb := c.d.inputState
	if cb == nil {
		return 0
	}
	var s JoypadState
	for _, b := range joypadOrder {
		if cb(port, abi.DeviceJoypad, index, b.id) != 0 {
			s |= b.bit
		}
	}
	return s
}

// JoypadBitmask queries all buttons with one JoypadMask call when the host
// supports it and falls back to JoypadState otherwise.
func (c *RunContext) JoypadBitmask(port, index uint32) JoypadState {
	cb := c.d.inputState
	if cb == nil {
		return 0
	}
	if c.d.frame.supportsBitmasks {
		return JoypadState(uint16(cb(port, abi.DeviceJoypad, index, abi.JoypadMask)))
	}
	return c.JoypadState(port, index)
}

func (c *RunContext) recordFrame(width, height uint32, pitch uintptr) {
	f := &c.d.frame
	f.hadFrame = true
	f.width = width
	f.height = height
	f.pitch = pitch
}

// DrawFrame presents a frame of the negotiated pixel format.
func (c *RunContext) DrawFrame(data []byte, width, height uint32, pitch uintptr) {
	if c.d.video == nil {
		return
	}
	c.recordFrame(width, height, pitch)
	var p unsafe.Pointer
	if len(data) > 0 {
		p = unsafe.Pointer(&data[0])
	}
	c.d.video(p, width, height, pitch)
}

// DrawFramebuffer presents a framebuffer from CurrentFramebuffer or
// CurrentFramebufferOrFallback.
func (c *RunContext) DrawFramebuffer(fb *Framebuffer) {
	c.DrawFrame(fb.data, fb.Width, fb.Height, fb.Pitch)
}

// DrawHardwareFrame presents the hardware framebuffer.
func (c *RunContext) DrawHardwareFrame(width, height uint32, pitch uintptr) {
	if c.d.hwFrame == nil {
		return
	}
	c.recordFrame(width, height, pitch)
	c.d.hwFrame(width, height, pitch)
}

// DupeFrame repeats the previous frame. It fails without calling the host
// when duping is unsupported or nothing was drawn yet.
func (c *RunContext) DupeFrame() error {
	f := c.d.frame
	if !f.canDupe {
		c.log().Error("this frontend does not support frame duping")
		return ErrDupeUnsupported
	}
	if !f.hadFrame {
		c.log().Error("cannot dupe frame, no previous frame has been drawn")
		return ErrNoPreviousFrame
	}
	if c.d.video != nil {
		c.d.video(nil, f.width, f.height, f.pitch)
	}
	return nil
}

// BatchAudioSamples writes interleaved stereo samples. A trailing odd
// sample is dropped.
func (c *AudioContext) BatchAudioSamples(samples []int16) {
	if c.d.audioBatch == nil || len(samples) < 2 {
		return
	}
	c.d.audioBatch(&samples[0], uintptr(len(samples)/2))
}

// QueueAudioSample writes a single stereo frame.
func (c *AudioContext) QueueAudioSample(left, right int16) {
	if c.d.audioSample != nil {
		c.d.audioSample(left, right)
	}
}
