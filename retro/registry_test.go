package retro

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user-none/goretro/abi"
)

// TestNarrowingKeepsIdentity verifies narrowed contexts share the
// registry and the environment callback of their origin.
func TestNarrowingKeepsIdentity(t *testing.T) {
	host := newFakeHost().accept(abi.EnvSetRotation)
	d := newTestDispatcher(t, &testCore{}, host)

	run := &RunContext{d.scope()}
	assert.Same(t, run.Interfaces(), run.Generic().Interfaces())
	assert.Same(t, run.Interfaces(), run.Audio().Interfaces())

	special := &LoadGameSpecialContext{d.scope()}
	assert.Same(t, special.Interfaces(), special.LoadGame().Generic().Interfaces())

	before := host.count(abi.EnvSetRotation)
	require.NoError(t, run.Generic().SetRotation(RotationCCW90))
	require.NoError(t, special.LoadGame().Generic().SetRotation(RotationNone))
	assert.Equal(t, before+2, host.count(abi.EnvSetRotation))
}

func rumbleHost(fn func(port uint32, effect int32, strength uint16) bool) *fakeHost {
	return answer(newFakeHost(), abi.EnvGetRumbleInterface, abi.RumbleInterface{SetRumbleState: fakeFunc(fn)})
}

// TestEnableReplacesInterface verifies a second Enable call replaces the
// registered table.
func TestEnableReplacesInterface(t *testing.T) {
	var first, second int
	host := rumbleHost(func(uint32, int32, uint16) bool { first++; return true })
	d := newTestDispatcher(t, &testCore{}, host)
	ic := &InitContext{d.scope()}

	require.NoError(t, ic.EnableRumbleInterface())
	ok, err := ic.Generic().SetRumbleState(0, RumbleStrong, 0xffff)
	require.NoError(t, err)
	assert.True(t, ok)

	answer(host, abi.EnvGetRumbleInterface, abi.RumbleInterface{
		SetRumbleState: fakeFunc(func(uint32, int32, uint16) bool { second++; return false }),
	})
	require.NoError(t, ic.EnableRumbleInterface())
	ok, err = ic.Generic().SetRumbleState(1, RumbleWeak, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}

// TestEnableFailureClearsSlot verifies a refused Enable leaves no stale
// interface behind.
func TestEnableFailureClearsSlot(t *testing.T) {
	host := rumbleHost(func(uint32, int32, uint16) bool { return true })
	d := newTestDispatcher(t, &testCore{}, host)
	ic := &InitContext{d.scope()}
	require.NoError(t, ic.EnableRumbleInterface())

	delete(host.handlers, abi.EnvGetRumbleInterface)
	require.ErrorIs(t, ic.EnableRumbleInterface(), ErrFailure)

	_, err := ic.Generic().SetRumbleState(0, RumbleStrong, 1)
	var nf *InterfaceNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "rumble interface not found, did you call `EnableRumbleInterface()`?", err.Error())
}

func TestMissingFunctionPointer(t *testing.T) {
	host := answer(newFakeHost(), abi.EnvGetLEDInterface, abi.LEDInterface{})
	d := newTestDispatcher(t, &testCore{}, host)
	load := &LoadGameContext{d.scope()}
	require.NoError(t, load.EnableLEDInterface())

	err := load.Generic().SetLEDState(0, 1)
	var npe *NullPointerError
	require.ErrorAs(t, err, &npe)
	assert.Equal(t, "set_led_state", npe.Name)
}

// TestDeinitResetsRegistry verifies interfaces do not survive Deinit.
func TestDeinitResetsRegistry(t *testing.T) {
	host := rumbleHost(func(uint32, int32, uint16) bool { return true })
	d := newTestDispatcher(t, &testCore{}, host)
	require.NoError(t, (&InitContext{d.scope()}).EnableRumbleInterface())

	d.Deinit()
	_, err := d.generic().SetRumbleState(0, RumbleStrong, 1)
	assert.ErrorIs(t, err, ErrInterfaceNotFound)
}

func perfHost(registered *[]string, started *int) *fakeHost {
	return answer(newFakeHost(), abi.EnvGetPerfInterface, abi.PerfCallback{
		GetTimeUsec: fakeFunc(func() int64 { return 1234 }),
		PerfRegister: fakeFunc(func(c *abi.PerfCounter) {
			*registered = append(*registered, goStringUnchecked(c.Ident))
			c.Registered = true
		}),
		PerfStart: fakeFunc(func(c *abi.PerfCounter) { *started++ }),
		PerfStop:  fakeFunc(func(c *abi.PerfCounter) {}),
	})
}

// TestPerfCounters verifies counters register once and that stopping an
// unknown counter names it.
func TestPerfCounters(t *testing.T) {
	var registered []string
	var started int
	d := newTestDispatcher(t, &testCore{}, perfHost(&registered, &started))
	load := &LoadGameContext{d.scope()}
	g := load.Generic()

	err := g.PerfStart("frame")
	assert.ErrorIs(t, err, ErrInterfaceNotFound)

	require.NoError(t, load.EnablePerfInterface())
	require.NoError(t, g.PerfStart("frame"))
	require.NoError(t, g.PerfStop("frame"))
	require.NoError(t, g.PerfStart("frame"))
	assert.Equal(t, []string{"frame"}, registered)
	assert.Equal(t, 2, started)

	err = g.PerfStop("audio")
	var pce *PerfCounterError
	require.ErrorAs(t, err, &pce)
	assert.ErrorIs(t, err, ErrUnknownPerfCounter)
	assert.Equal(t, "Unknown performance counter: “audio”", err.Error())

	usec, err := g.TimeUsec()
	require.NoError(t, err)
	assert.Equal(t, int64(1234), usec)

	_, err = g.PerfCounter()
	assert.ErrorIs(t, err, ErrNullPointer)
}

// TestEnablePerfClearsCounters verifies counters of a previous interface
// are forgotten.
func TestEnablePerfClearsCounters(t *testing.T) {
	var registered []string
	var started int
	d := newTestDispatcher(t, &testCore{}, perfHost(&registered, &started))
	load := &LoadGameContext{d.scope()}

	require.NoError(t, load.EnablePerfInterface())
	require.NoError(t, load.Generic().PerfStart("frame"))
	require.NoError(t, load.EnablePerfInterface())

	err := load.Generic().PerfStop("frame")
	assert.ErrorIs(t, err, ErrUnknownPerfCounter)
}

func TestCPUFeaturesFallsBackLocally(t *testing.T) {
	host := answer(newFakeHost(), abi.EnvGetPerfInterface, abi.PerfCallback{})
	d := newTestDispatcher(t, &testCore{}, host)
	load := &LoadGameContext{d.scope()}
	require.NoError(t, load.EnablePerfInterface())

	got, err := load.Generic().CPUFeatures()
	require.NoError(t, err)
	assert.Equal(t, LocalCPUFeatures(), got)
}

// TestHWRenderLiveWindow verifies render functions only work between
// context reset and destroy.
func TestHWRenderLiveWindow(t *testing.T) {
	host := newFakeHost().on(abi.EnvSetHWRender, func(data unsafe.Pointer) bool {
		cb := (*abi.HWRenderCallback)(data)
		cb.GetCurrentFramebuffer = fakeFunc(func() uintptr { return 42 })
		cb.GetProcAddress = fakeFunc(func(sym *byte) uintptr { return 0 })
		return true
	})
	d := newTestDispatcher(t, &testCore{}, host)
	load := &LoadGameContext{d.scope()}
	g := load.Generic()

	_, err := g.HWRenderGetFramebuffer()
	assert.ErrorIs(t, err, ErrInterfaceNotFound)

	require.NoError(t, load.EnableHWRender(HWRenderOptions{Context: HWContextOpenGLCore, VersionMajor: 3, VersionMinor: 3}))
	_, err = g.HWRenderGetFramebuffer()
	assert.ErrorIs(t, err, ErrHWContextNotLive)

	d.OnHWContextReset()
	fbo, err := g.HWRenderGetFramebuffer()
	require.NoError(t, err)
	assert.Equal(t, uintptr(42), fbo)

	_, err = g.HWRenderGetProcAddress("glClear")
	assert.ErrorIs(t, err, ErrNullPointer)

	d.OnHWContextDestroy()
	_, err = g.HWRenderGetFramebuffer()
	assert.ErrorIs(t, err, ErrHWContextNotLive)
}

// TestNegotiationInterface verifies the size check on raw interfaces and
// that the host receives the registered variant.
func TestNegotiationInterface(t *testing.T) {
	_, err := NewRawNegotiationInterface(make([]byte, 4))
	assert.ErrorIs(t, err, ErrNegotiationTooSmall)

	raw := make([]byte, 16)
	*(*abi.HWRenderContextNegotiationInterface)(unsafe.Pointer(&raw[0])) = abi.HWRenderContextNegotiationInterface{
		InterfaceType:    int32(HWRenderInterfaceD3D12),
		InterfaceVersion: 2,
	}
	n, err := NewRawNegotiationInterface(raw)
	require.NoError(t, err)
	hdr, err := n.Header()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), hdr.InterfaceVersion)

	var got abi.HWRenderContextNegotiationInterface
	host := newFakeHost().on(abi.EnvSetHWRenderContextNegotiationIface, func(data unsafe.Pointer) bool {
		got = *(*abi.HWRenderContextNegotiationInterface)(data)
		return true
	})
	d := newTestDispatcher(t, &testCore{}, host)
	load := &LoadGameContext{d.scope()}

	require.NoError(t, load.EnableHWRenderNegotiationInterfaceVulkan(1, 2, 3))
	assert.Equal(t, int32(abi.HWRenderContextNegotiationVulkan), got.InterfaceType)

	stored, ok := d.Interfaces().Negotiation()
	require.True(t, ok)
	assert.Equal(t, NegotiationVulkan, stored.Kind)
	assert.Equal(t, uintptr(2), stored.Vulkan.CreateDevice)

	require.NoError(t, load.SetHWRenderContextNegotiationInterface(n))
	assert.Equal(t, int32(HWRenderInterfaceD3D12), got.InterfaceType)
}
