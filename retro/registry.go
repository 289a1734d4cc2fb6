package retro

import (
	"runtime"
	"sync"
	"unsafe"

	"github.com/user-none/goretro/abi"
)

// Interfaces holds the optional host interfaces a core negotiated. It is
// shared by every context created for one dispatcher.
//
// Enable* operations take the write lock and replace the previous entry.
// Per-call operations take the read lock, except performance counters which
// mutate the counter map.
type Interfaces struct {
	mu sync.RWMutex

	rumble      *rumbleIface
	perf        *perfIface
	camera      *cameraIface
	sensor      *sensorIface
	led         *ledIface
	midi        *midiIface
	location    *locationIface
	vfs         *vfsIface
	hwRender    *hwRenderIface
	negotiation *NegotiationInterface

	// Go memory the host holds on to across calls: perf counters, the
	// negotiation interface and content overrides.
	pins runtime.Pinner
}

// NewInterfaces returns an empty registry.
func NewInterfaces() *Interfaces {
	return &Interfaces{}
}

func (r *Interfaces) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rumble = nil
	r.perf = nil
	r.camera = nil
	r.sensor = nil
	r.led = nil
	r.midi = nil
	r.location = nil
	r.vfs = nil
	r.hwRender = nil
	r.negotiation = nil
	r.pins.Unpin()
}

// pin keeps p valid for the host until the registry is reset. The caller
// holds the write lock.
func (r *Interfaces) pin(p any) {
	r.pins.Pin(p)
}

// keep is pin for callers that do not hold the lock.
func (r *Interfaces) keep(ptrs ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range ptrs {
		r.pins.Pin(p)
	}
}

type rumbleIface struct {
	setRumbleState func(port uint32, effect int32, strength uint16) bool
}

func newRumbleIface(raw abi.RumbleInterface) *rumbleIface {
	i := &rumbleIface{}
	bindFunc(&i.setRumbleState, raw.SetRumbleState)
	return i
}

type perfIface struct {
	getTimeUsec    func() int64
	getCPUFeatures func() uint64
	getPerfCounter func() uint64
	register       func(c *abi.PerfCounter)
	start          func(c *abi.PerfCounter)
	stop           func(c *abi.PerfCounter)
	log            func()

	counters map[string]*abi.PerfCounter
}

func newPerfIface(raw abi.PerfCallback) *perfIface {
	i := &perfIface{counters: make(map[string]*abi.PerfCounter)}
	bindFunc(&i.getTimeUsec, raw.GetTimeUsec)
	bindFunc(&i.getCPUFeatures, raw.GetCPUFeatures)
	bindFunc(&i.getPerfCounter, raw.GetPerfCounter)
	bindFunc(&i.register, raw.PerfRegister)
	bindFunc(&i.start, raw.PerfStart)
	bindFunc(&i.stop, raw.PerfStop)
	bindFunc(&i.log, raw.PerfLog)
	return i
}

type cameraIface struct {
	raw   abi.CameraCallback
	start func() bool
	stop  func()
}

func newCameraIface(raw abi.CameraCallback) *cameraIface {
	i := &cameraIface{raw: raw}
	bindFunc(&i.start, raw.Start)
	bindFunc(&i.stop, raw.Stop)
	return i
}

type sensorIface struct {
	setSensorState func(port uint32, action uint32, rate uint32) bool
	getSensorInput func(port uint32, id uint32) float32
}

func newSensorIface(raw abi.SensorInterface) *sensorIface {
	i := &sensorIface{}
	bindFunc(&i.setSensorState, raw.SetSensorState)
	bindFunc(&i.getSensorInput, raw.GetSensorInput)
	return i
}

type ledIface struct {
	setLEDState func(led int32, state int32)
}

func newLEDIface(raw abi.LEDInterface) *ledIface {
	i := &ledIface{}
	bindFunc(&i.setLEDState, raw.SetLEDState)
	return i
}

type midiIface struct {
	inputEnabled  func() bool
	outputEnabled func() bool
	read          func(b *byte) bool
	write         func(b byte, deltaTime uint32) bool
	flush         func() bool
}

func newMIDIIface(raw abi.MIDIInterface) *midiIface {
	i := &midiIface{}
	bindFunc(&i.inputEnabled, raw.InputEnabled)
	bindFunc(&i.outputEnabled, raw.OutputEnabled)
	bindFunc(&i.read, raw.Read)
	bindFunc(&i.write, raw.Write)
	bindFunc(&i.flush, raw.Flush)
	return i
}

type locationIface struct {
	start       func() bool
	stop        func()
	getPosition func(lat, lon, horiz, vert *float64) bool
	setInterval func(intervalMs uint32, intervalDistance uint32)
}

func newLocationIface(raw abi.LocationCallback) *locationIface {
	i := &locationIface{}
	bindFunc(&i.start, raw.Start)
	bindFunc(&i.stop, raw.Stop)
	bindFunc(&i.getPosition, raw.GetPosition)
	bindFunc(&i.setInterval, raw.SetInterval)
	return i
}

type vfsIface struct {
	version uint32

	getPath       func(h uintptr) *byte
	open          func(path *byte, mode uint32, hints uint32) uintptr
	close         func(h uintptr) int32
	size          func(h uintptr) int64
	truncate      func(h uintptr, length int64) int64
	tell          func(h uintptr) int64
	seek          func(h uintptr, offset int64, whence int32) int64
	read          func(h uintptr, buf unsafe.Pointer, n uint64) int64
	write         func(h uintptr, buf unsafe.Pointer, n uint64) int64
	flush         func(h uintptr) int32
	remove        func(path *byte) int32
	rename        func(oldPath, newPath *byte) int32
	stat          func(path *byte, size *int32) int32
	mkdir         func(dir *byte) int32
	opendir       func(dir *byte, includeHidden bool) uintptr
	readdir       func(d uintptr) bool
	direntGetName func(d uintptr) *byte
	direntIsDir   func(d uintptr) bool
	closedir      func(d uintptr) int32
}

func newVFSIface(version uint32, raw *abi.VFSInterface) *vfsIface {
	i := &vfsIface{version: version}
	bindFunc(&i.getPath, raw.GetPath)
	bindFunc(&i.open, raw.Open)
	bindFunc(&i.close, raw.Close)
	bindFunc(&i.size, raw.Size)
	bindFunc(&i.tell, raw.Tell)
	bindFunc(&i.seek, raw.Seek)
	bindFunc(&i.read, raw.Read)
	bindFunc(&i.write, raw.Write)
	bindFunc(&i.flush, raw.Flush)
	bindFunc(&i.remove, raw.Remove)
	bindFunc(&i.rename, raw.Rename)
	if version >= 2 {
		bindFunc(&i.truncate, raw.Truncate)
	}
	if version >= 3 {
		bindFunc(&i.stat, raw.Stat)
		bindFunc(&i.mkdir, raw.Mkdir)
		bindFunc(&i.opendir, raw.Opendir)
		bindFunc(&i.readdir, raw.Readdir)
		bindFunc(&i.direntGetName, raw.DirentGetName)
		bindFunc(&i.direntIsDir, raw.DirentIsDir)
		bindFunc(&i.closedir, raw.Closedir)
	}
	return i
}

type hwRenderIface struct {
	raw                   abi.HWRenderCallback
	getCurrentFramebuffer func() uintptr
	getProcAddress        func(sym *byte) uintptr

	// live is true between context reset and context destroy.
	live bool
}

func newHWRenderIface(raw abi.HWRenderCallback) *hwRenderIface {
	i := &hwRenderIface{raw: raw}
	bindFunc(&i.getCurrentFramebuffer, raw.GetCurrentFramebuffer)
	bindFunc(&i.getProcAddress, raw.GetProcAddress)
	return i
}

// VFSVersion returns the negotiated VFS interface version, 0 when none.
func (r *Interfaces) VFSVersion() uint32 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.vfs == nil {
		return 0
	}
	return r.vfs.version
}

// HWRenderLive reports whether the hardware context is currently usable.
func (r *Interfaces) HWRenderLive() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hwRender != nil && r.hwRender.live
}

// Negotiation returns the registered negotiation interface, if any.
func (r *Interfaces) Negotiation() (NegotiationInterface, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.negotiation == nil {
		return NegotiationInterface{}, false
	}
	return *r.negotiation, true
}

func (r *Interfaces) setHWRenderLive(live bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hwRender != nil {
		r.hwRender.live = live
	}
}
