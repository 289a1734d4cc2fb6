package retro

import (
	"fmt"

	"github.com/user-none/goretro/abi"
)

// enableIface issues cmd with initial and replaces one registry slot with
// the result. The slot is cleared when the host refuses.
func enableIface[R, I any](s scope, cmd uint32, initial R, slot func(*Interfaces) **I, build func(R) *I) error {
	raw, err := GetMut(s.env, cmd, initial)

	r := s.ifaces()
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		*slot(r) = nil
		return err
	}
	*slot(r) = build(raw)
	return nil
}

// RumbleEffect selects a rumble motor.
type RumbleEffect int32

const (
	RumbleStrong RumbleEffect = abi.RumbleStrong
	RumbleWeak   RumbleEffect = abi.RumbleWeak
)

func enableRumble(s scope) error {
	return enableIface(s, abi.EnvGetRumbleInterface, abi.RumbleInterface{},
		func(r *Interfaces) **rumbleIface { return &r.rumble }, newRumbleIface)
}

// EnableRumbleInterface fetches the host rumble interface.
func (c *InitContext) EnableRumbleInterface() error { return enableRumble(c.scope) }

// EnableRumbleInterface fetches the host rumble interface.
func (c *LoadGameContext) EnableRumbleInterface() error { return enableRumble(c.scope) }

// SetRumbleState sets the strength of one motor of a port.
func (c *GenericContext) SetRumbleState(port uint32, effect RumbleEffect, strength uint16) (bool, error) {
	r := c.ifaces()
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.rumble == nil {
		return false, notFound("rumble", "EnableRumbleInterface()")
	}
	if r.rumble.setRumbleState == nil {
		return false, nullPointer("set_rumble_state")
	}
	return r.rumble.setRumbleState(port, int32(effect), strength), nil
}

// EnableLEDInterface fetches the host LED interface.
func (c *LoadGameContext) EnableLEDInterface() error {
	return enableIface(c.scope, abi.EnvGetLEDInterface, abi.LEDInterface{},
		func(r *Interfaces) **ledIface { return &r.led }, newLEDIface)
}

// LEDInterface queries the raw host LED interface without registering it.
func (c *GenericContext) LEDInterface() (abi.LEDInterface, error) {
	return GetUnchecked[abi.LEDInterface](c.env, abi.EnvGetLEDInterface)
}

// SetLEDState turns an LED on or off.
func (c *GenericContext) SetLEDState(led, state int32) error {
	r := c.ifaces()
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.led == nil {
		return notFound("LED", "EnableLEDInterface()")
	}
	if r.led.setLEDState == nil {
		return nullPointer("set_led_state")
	}
	r.led.setLEDState(led, state)
	return nil
}

// SensorType identifies a sensor reading.
type SensorType uint32

const (
	SensorAccelerometerX SensorType = abi.SensorAccelerometerX
	SensorAccelerometerY SensorType = abi.SensorAccelerometerY
	SensorAccelerometerZ SensorType = abi.SensorAccelerometerZ
	SensorGyroscopeX     SensorType = abi.SensorGyroscopeX
	SensorGyroscopeY     SensorType = abi.SensorGyroscopeY
	SensorGyroscopeZ     SensorType = abi.SensorGyroscopeZ
	SensorIlluminance    SensorType = abi.SensorIlluminance
)

// EnableSensorInterface fetches the host sensor interface.
func (c *LoadGameContext) EnableSensorInterface() error {
	return enableIface(c.scope, abi.EnvGetSensorInterface, abi.SensorInterface{},
		func(r *Interfaces) **sensorIface { return &r.sensor }, newSensorIface)
}

// SensorInterface queries the raw host sensor interface without
// registering it.
func (c *GenericContext) SensorInterface() (abi.SensorInterface, error) {
	return GetUnchecked[abi.SensorInterface](c.env, abi.EnvGetSensorInterface)
}

func (c *RunContext) sensor() (*sensorIface, error) {
	r := c.ifaces()
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.sensor == nil {
		return nil, notFound("sensor", "EnableSensorInterface()")
	}
	return r.sensor, nil
}

// SetSensorState enables or disables a sensor of a port.
func (c *RunContext) SetSensorState(port uint32, action SensorAction, rate uint32) (bool, error) {
	s, err := c.sensor()
	if err != nil {
		return false, err
	}
	if s.setSensorState == nil {
		return false, nullPointer("set_sensor_state")
	}
	return s.setSensorState(port, uint32(action), rate), nil
}

// SensorInput reads one sensor value of a port.
func (c *RunContext) SensorInput(port uint32, id SensorType) (float32, error) {
	s, err := c.sensor()
	if err != nil {
		return 0, err
	}
	if s.getSensorInput == nil {
		return 0, nullPointer("get_sensor_input")
	}
	return s.getSensorInput(port, uint32(id)), nil
}

// CameraCaps selects the buffer types a core accepts from the camera.
type CameraCaps uint64

const (
	CameraOpenGLTexture  CameraCaps = 1 << abi.CameraBufferOpenGLTexture
	CameraRawFramebuffer CameraCaps = 1 << abi.CameraBufferRawFramebuffer
)

// EnableCameraInterface asks the host for a camera delivering frames of the
// given size to CameraHandler.
func (c *LoadGameContext) EnableCameraInterface(caps CameraCaps, width, height uint32) error {
	t := c.tramp()
	cb := abi.CameraCallback{
		Caps:          uint64(caps),
		Width:         width,
		Height:        height,
		Initialized:   t.CameraInitialized,
		Deinitialized: t.CameraDeinitialized,
	}
	if caps&CameraRawFramebuffer != 0 {
		cb.FrameRawFramebuffer = t.CameraRawFramebuffer
	}
	if caps&CameraOpenGLTexture != 0 {
		cb.FrameOpenGLTexture = t.CameraGLTexture
	}
	return enableIface(c.scope, abi.EnvGetCameraInterface, cb,
		func(r *Interfaces) **cameraIface { return &r.camera }, newCameraIface)
}

func (c *RunContext) camera() (*cameraIface, error) {
	r := c.ifaces()
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.camera == nil {
		return nil, notFound("camera", "EnableCameraInterface()")
	}
	return r.camera, nil
}

// CameraStart starts the camera. Frames arrive through CameraHandler.
func (c *RunContext) CameraStart() (bool, error) {
	cam, err := c.camera()
	if err != nil {
		return false, err
	}
	if cam.start == nil {
		return false, nullPointer("start")
	}
	return cam.start(), nil
}

// CameraStop stops the camera.
func (c *RunContext) CameraStop() error {
	cam, err := c.camera()
	if err != nil {
		return err
	}
	if cam.stop == nil {
		return nullPointer("stop")
	}
	cam.stop()
	return nil
}

// EnableLocationInterface fetches the host location interface.
func (c *LoadGameContext) EnableLocationInterface() error {
	t := c.tramp()
	cb := abi.LocationCallback{
		Initialized:   t.LocationInitialized,
		Deinitialized: t.LocationDeinitialized,
	}
	return enableIface(c.scope, abi.EnvGetLocationInterface, cb,
		func(r *Interfaces) **locationIface { return &r.location }, newLocationIface)
}

// LocationInterface queries the raw host location interface without
// registering it.
func (c *GenericContext) LocationInterface() (abi.LocationCallback, error) {
	return GetUnchecked[abi.LocationCallback](c.env, abi.EnvGetLocationInterface)
}

func (c *GenericContext) location() (*locationIface, error) {
	r := c.ifaces()
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.location == nil {
		return nil, notFound("location", "EnableLocationInterface()")
	}
	return r.location, nil
}

// LocationStart starts the location service.
func (c *GenericContext) LocationStart() error {
	l, err := c.location()
	if err != nil {
		return err
	}
	if l.start == nil {
		return nullPointer("start")
	}
	if !l.start() {
		return ErrLocationStart
	}
	return nil
}

// LocationStop stops the location service.
func (c *GenericContext) LocationStop() error {
	l, err := c.location()
	if err != nil {
		return err
	}
	if l.stop == nil {
		return nullPointer("stop")
	}
	l.stop()
	return nil
}

// Position returns the latest location fix.
func (c *GenericContext) Position() (Position, error) {
	l, err := c.location()
	if err != nil {
		return Position{}, err
	}
	if l.getPosition == nil {
		return Position{}, nullPointer("get_position")
	}
	var p Position
	if !l.getPosition(&p.Lat, &p.Lon, &p.HorizAccuracy, &p.VertAccuracy) {
		return Position{}, ErrLocationPosition
	}
	return p, nil
}

// SetLocationInterval sets how often the location service updates.
func (c *GenericContext) SetLocationInterval(intervalMs, intervalDistance uint32) error {
	l, err := c.location()
	if err != nil {
		return err
	}
	if l.setInterval == nil {
		return nullPointer("set_interval")
	}
	l.setInterval(intervalMs, intervalDistance)
	return nil
}

// EnableMIDIInterface fetches the host MIDI interface.
func (c *LoadGameContext) EnableMIDIInterface() error {
	return enableIface(c.scope, abi.EnvGetMIDIInterface, abi.MIDIInterface{},
		func(r *Interfaces) **midiIface { return &r.midi }, newMIDIIface)
}

// MIDIInterface queries the raw host MIDI interface without registering it.
func (c *GenericContext) MIDIInterface() (abi.MIDIInterface, error) {
	return GetUnchecked[abi.MIDIInterface](c.env, abi.EnvGetMIDIInterface)
}

func (c *GenericContext) midi() (*midiIface, error) {
	r := c.ifaces()
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.midi == nil {
		return nil, notFound("MIDI", "EnableMIDIInterface()")
	}
	return r.midi, nil
}

// MIDIInputEnabled reports whether the host delivers MIDI input.
func (c *GenericContext) MIDIInputEnabled() (bool, error) {
	m, err := c.midi()
	if err != nil {
		return false, err
	}
	if m.inputEnabled == nil {
		return false, nullPointer("input_enabled")
	}
	return m.inputEnabled(), nil
}

// MIDIOutputEnabled reports whether the host accepts MIDI output.
func (c *GenericContext) MIDIOutputEnabled() (bool, error) {
	m, err := c.midi()
	if err != nil {
		return false, err
	}
	if m.outputEnabled == nil {
		return false, nullPointer("output_enabled")
	}
	return m.outputEnabled(), nil
}

// MIDIRead reads the next input byte.
func (c *GenericContext) MIDIRead() (byte, error) {
	m, err := c.midi()
	if err != nil {
		return 0, err
	}
	if m.read == nil {
		return 0, nullPointer("read")
	}
	var b byte
	if !m.read(&b) {
		return 0, fmt.Errorf("midi read: %w", ErrFailure)
	}
	return b, nil
}

// MIDIWrite writes one output byte, deltaTime microseconds after the
// previous one.
func (c *GenericContext) MIDIWrite(b byte, deltaTime uint32) error {
	m, err := c.midi()
	if err != nil {
		return err
	}
	if m.write == nil {
		return nullPointer("write")
	}
	if !m.write(b, deltaTime) {
		return fmt.Errorf("midi write: %w", ErrFailure)
	}
	return nil
}

// MIDIFlush flushes pending output.
func (c *GenericContext) MIDIFlush() error {
	m, err := c.midi()
	if err != nil {
		return err
	}
	if m.flush == nil {
		return nullPointer("flush")
	}
	if !m.flush() {
		return fmt.Errorf("midi flush: %w", ErrFailure)
	}
	return nil
}
