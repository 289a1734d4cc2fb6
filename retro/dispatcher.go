package retro

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"unsafe"

	"github.com/user-none/goretro/abi"
)

// DefaultFrameDelta is passed to Core.Run when the host reported no frame
// time, in microseconds.
const DefaultFrameDelta int64 = 16_666

// Trampolines holds the C function pointers the host calls back into. The
// cgo layer fills them with its exported functions, each of which forwards
// to the matching On* method of the registered Dispatcher.
type Trampolines struct {
	Keyboard              uintptr
	HWContextReset        uintptr
	HWContextDestroy      uintptr
	FrameTime             uintptr
	Audio                 uintptr
	AudioSetState         uintptr
	AudioBufferStatus     uintptr
	CameraRawFramebuffer  uintptr
	CameraGLTexture       uintptr
	CameraInitialized     uintptr
	CameraDeinitialized   uintptr
	LocationInitialized   uintptr
	LocationDeinitialized uintptr
	GetProcAddress        uintptr
	OptionsUpdateDisplay  uintptr
	Disk                  abi.DiskControlExtCallback
}

// Hooks connects a Dispatcher to the C side.
type Hooks struct {
	Trampolines Trampolines

	// LogPrintf forwards messages to the host log interface. Without it
	// logging stays on Config.Stderr.
	LogPrintf LogPrintfFunc
}

// Dispatcher drives a Core through the libretro lifecycle. Each exported
// method without the On prefix corresponds to one retro_* entry point.
//
// All entry points recover panics from the core, log them and return the
// failure value of the entry point.
type Dispatcher struct {
	core   Core
	cfg    Config
	hooks  Hooks
	ifaces *Interfaces
	sink   *logSink
	log    *slog.Logger

	env         Environment
	envSet      bool
	video       VideoRefreshFunc
	hwFrame     HardwareFrameFunc
	audioSample AudioSampleFunc
	audioBatch  AudioSampleBatchFunc
	inputPoll   InputPollFunc
	inputState  InputStateFunc

	// audioMu serialises Run with callbacks from the host audio thread.
	audioMu sync.Mutex

	frame       frameState
	pixelFormat PixelFormat
	avInfo      SystemAVInfo

	// Set by the core through SetSystemAVInfo and SetGameGeometry. They
	// take precedence over Core.SystemAVInfo until the content unloads.
	avOverride       *SystemAVInfo
	geometryOverride *GameGeometry

	subsystems  []SubsystemInfo
	contents    int

	frameDelta    int64
	hasFrameDelta bool

	serializeSize    uintptr
	hasSerializeSize bool

	memData map[uint32][]byte
	memPins runtime.Pinner
}

// NewDispatcher wraps core. The log target defaults to the core's library
// name.
func NewDispatcher(core Core, cfg Config, hooks Hooks) *Dispatcher {
	d := &Dispatcher{
		core:        core,
		cfg:         cfg,
		hooks:       hooks,
		ifaces:      NewInterfaces(),
		sink:        &logSink{stderr: cfg.Stderr},
		pixelFormat: PixelFormat0RGB1555,
	}
	target := cfg.LogTarget
	if target == "" {
		target = core.SystemInfo().LibraryName
	}
	d.log = slog.New(newLogHandler(d.sink, cfg.LogLevel, target))
	return d
}

// Logger returns the logger that writes to the host log interface once one
// was acquired.
func (d *Dispatcher) Logger() *slog.Logger { return d.log }

// Interfaces returns the registry of negotiated host interfaces.
func (d *Dispatcher) Interfaces() *Interfaces { return d.ifaces }

// Core returns the wrapped core.
func (d *Dispatcher) Core() Core { return d.core }

// CurrentAVInfo returns the AV info last reported to the host, including
// later SetGameGeometry and SetSystemAVInfo updates.
func (d *Dispatcher) CurrentAVInfo() SystemAVInfo { return d.avInfo }

// PixelFormat returns the negotiated pixel format.
func (d *Dispatcher) PixelFormat() PixelFormat { return d.pixelFormat }

func (d *Dispatcher) scope() scope { return scope{env: d.env, d: d} }

func (d *Dispatcher) generic() *GenericContext { return &GenericContext{d.scope()} }

func (d *Dispatcher) setSubsystems(infos []SubsystemInfo) {
	d.subsystems = append([]SubsystemInfo(nil), infos...)
}

func (d *Dispatcher) setPixelFormat(f PixelFormat) { d.pixelFormat = f }

func (d *Dispatcher) contentCount() int { return d.contents }

func (d *Dispatcher) trace(entry string) {
	d.log.Log(context.Background(), LevelTrace, entry)
}

func (d *Dispatcher) recoverEntry(entry string) {
	if r := recover(); r != nil {
		d.log.Error("core panicked", "entry", entry, "panic", r)
	}
}

// SystemInfo implements retro_get_system_info.
func (d *Dispatcher) SystemInfo() (info SystemInfo) {
	defer d.recoverEntry("retro_get_system_info")
	return d.core.SystemInfo()
}

// SystemAVInfo implements retro_get_system_av_info.
func (d *Dispatcher) SystemAVInfo() (info SystemAVInfo) {
	defer d.recoverEntry("retro_get_system_av_info")
	d.trace("retro_get_system_av_info")
	info = d.core.SystemAVInfo(&GetAvInfoContext{d.scope()})
	if d.avOverride != nil {
		info = *d.avOverride
	}
	if g := d.geometryOverride; g != nil {
		info.Geometry.BaseWidth = g.BaseWidth
		info.Geometry.BaseHeight = g.BaseHeight
		info.Geometry.AspectRatio = g.AspectRatio
	}
	d.avInfo = info
	return info
}

// SetEnvironment implements retro_set_environment. A nil env withdraws the
// callback.
func (d *Dispatcher) SetEnvironment(env Environment) {
	defer d.recoverEntry("retro_set_environment")
	d.trace("retro_set_environment")

	d.env = env
	if env == nil {
		return
	}
	initial := !d.envSet
	d.envSet = true

	ctx := &SetEnvironmentContext{d.scope()}
	// A later environment that refuses the query keeps earlier support.
	if ctx.Generic().InputBitmasks() {
		d.frame.supportsBitmasks = true
	}
	d.acquireLogInterface()

	// Every environment gets the options, not only the initial one.
	if p, ok := d.core.(OptionsProvider); ok {
		if err := ctx.DeclareCoreOptions(p.CoreOptions()); err != nil {
			d.log.Warn("failed to declare core options", "error", err)
		}
	}
	if s, ok := d.core.(EnvironmentSetter); ok {
		s.SetEnvironment(initial, ctx)
	}
}

func (d *Dispatcher) acquireLogInterface() {
	if d.hooks.LogPrintf == nil || d.sink.hasHost() {
		return
	}
	cb, err := GetUnchecked[abi.LogCallback](d.env, abi.EnvGetLogInterface)
	if err != nil || cb.Log == 0 {
		return
	}
	d.sink.setHost(d.hooks.LogPrintf, cb.Log)
}

// SetVideoRefresh implements retro_set_video_refresh. hw presents the
// hardware framebuffer through the same host callback.
func (d *Dispatcher) SetVideoRefresh(video VideoRefreshFunc, hw HardwareFrameFunc) {
	d.video = video
	d.hwFrame = hw
}

// SetAudioSample implements retro_set_audio_sample.
func (d *Dispatcher) SetAudioSample(cb AudioSampleFunc) { d.audioSample = cb }

// SetAudioSampleBatch implements retro_set_audio_sample_batch.
func (d *Dispatcher) SetAudioSampleBatch(cb AudioSampleBatchFunc) { d.audioBatch = cb }

// SetInputPoll implements retro_set_input_poll.
func (d *Dispatcher) SetInputPoll(cb InputPollFunc) { d.inputPoll = cb }

// SetInputState implements retro_set_input_state.
func (d *Dispatcher) SetInputState(cb InputStateFunc) { d.inputState = cb }

// Init implements retro_init.
func (d *Dispatcher) Init() {
	defer d.recoverEntry("retro_init")
	d.trace("retro_init")

	if d.env != nil {
		d.acquireLogInterface()
	}
	ctx := &InitContext{d.scope()}
	canDupe, err := ctx.Generic().CanDupe()
	if err != nil {
		d.log.Warn("frontend did not answer GET_CAN_DUPE, assuming false", "error", err)
	}
	d.frame.canDupe = canDupe
	d.core.Init(ctx)
}

// Deinit implements retro_deinit. Every negotiated interface is dropped.
func (d *Dispatcher) Deinit() {
	defer d.recoverEntry("retro_deinit")
	d.trace("retro_deinit")

	if c, ok := d.core.(Deiniter); ok {
		c.Deinit(d.generic())
	}
	d.releaseSession()
	d.ifaces.reset()
	d.sink.setHost(nil, 0)
	d.envSet = false
	d.frame.supportsBitmasks = false
}

// SetControllerPortDevice implements retro_set_controller_port_device.
func (d *Dispatcher) SetControllerPortDevice(port, device uint32) {
	defer d.recoverEntry("retro_set_controller_port_device")
	d.trace("retro_set_controller_port_device")
	if c, ok := d.core.(ControllerPortSetter); ok {
		c.SetControllerPortDevice(port, device)
	}
}

// Reset implements retro_reset.
func (d *Dispatcher) Reset() {
	defer d.recoverEntry("retro_reset")
	d.trace("retro_reset")
	if c, ok := d.core.(Resetter); ok {
		c.Reset(d.generic())
	}
}

// Run implements retro_run. Updated options are delivered first, then
// input is polled and the core runs with the pending frame delta.
func (d *Dispatcher) Run() {
	defer d.recoverEntry("retro_run")

	d.audioMu.Lock()
	defer d.audioMu.Unlock()

	ctx := &RunContext{d.scope()}
	if updated, err := ctx.Generic().VariableUpdate(); updated || err != nil {
		d.optionsChanged()
	}
	ctx.PollInput()

	delta := DefaultFrameDelta
	if d.hasFrameDelta {
		delta = d.frameDelta
		d.hasFrameDelta = false
	}
	d.core.Run(ctx, delta)
}

func (d *Dispatcher) optionsChanged() {
	if c, ok := d.core.(OptionsChangedHandler); ok {
		c.OptionsChanged(&OptionsChangedContext{d.scope()})
	}
}

// SerializeSize implements retro_serialize_size. While content stays
// loaded the size never grows: a larger answer is clamped to the smallest
// one reported so far.
func (d *Dispatcher) SerializeSize() (size uintptr) {
	defer d.recoverEntry("retro_serialize_size")
	d.trace("retro_serialize_size")

	s, ok := d.core.(Serializer)
	if !ok {
		return 0
	}
	n := s.SerializeSize(d.generic())
	switch {
	case !d.hasSerializeSize || n < d.serializeSize:
		d.serializeSize = n
		d.hasSerializeSize = true
	case n > d.serializeSize:
		d.log.Warn("serialize size grew during a session, clamping", "reported", n, "size", d.serializeSize)
		n = d.serializeSize
	}
	return n
}

// Serialize implements retro_serialize.
func (d *Dispatcher) Serialize(data unsafe.Pointer, size uintptr) (ok bool) {
	defer d.recoverEntry("retro_serialize")
	d.trace("retro_serialize")

	s, has := d.core.(Serializer)
	if !has || data == nil {
		return false
	}
	buf := unsafe.Slice((*byte)(data), size)
	if err := s.Serialize(buf, d.generic()); err != nil {
		d.log.Error("serialize failed", "error", err)
		return false
	}
	return true
}

// Unserialize implements retro_unserialize.
func (d *Dispatcher) Unserialize(data unsafe.Pointer, size uintptr) (ok bool) {
	defer d.recoverEntry("retro_unserialize")
	d.trace("retro_unserialize")

	s, has := d.core.(Serializer)
	if !has || data == nil {
		return false
	}
	buf := unsafe.Slice((*byte)(data), size)
	if err := s.Unserialize(buf, d.generic()); err != nil {
		d.log.Error("unserialize failed", "error", err)
		return false
	}
	return true
}

// CheatReset implements retro_cheat_reset.
func (d *Dispatcher) CheatReset() {
	defer d.recoverEntry("retro_cheat_reset")
	d.trace("retro_cheat_reset")
	if c, ok := d.core.(Cheater); ok {
		c.CheatReset(d.generic())
	}
}

// CheatSet implements retro_cheat_set.
func (d *Dispatcher) CheatSet(index uint32, enabled bool, code *byte) {
	defer d.recoverEntry("retro_cheat_set")
	d.trace("retro_cheat_set")

	c, ok := d.core.(Cheater)
	if !ok {
		return
	}
	s, err := GoString(code)
	if err != nil {
		d.log.Warn("ignoring cheat", "index", index, "error", err)
		return
	}
	c.CheatSet(index, enabled, s, d.generic())
}

// LoadGame implements retro_load_game. A null game reaches the core as nil.
func (d *Dispatcher) LoadGame(game *abi.GameInfo) (ok bool) {
	defer d.recoverEntry("retro_load_game")
	d.trace("retro_load_game")

	d.optionsChanged()
	d.contents = 1
	if err := d.core.LoadGame(gameInfoFromABI(game), &LoadGameContext{d.scope()}); err != nil {
		d.log.Error("failed to load game", "error", err)
		return false
	}
	return true
}

// LoadGameSpecial implements retro_load_game_special. When subsystems were
// declared, gameType and the content count must match one of them.
func (d *Dispatcher) LoadGameSpecial(gameType uint32, info *abi.GameInfo, num uintptr) (ok bool) {
	defer d.recoverEntry("retro_load_game_special")
	d.trace("retro_load_game_special")

	c, has := d.core.(SpecialLoader)
	if !has || info == nil {
		return false
	}
	if len(d.subsystems) > 0 && !d.subsystemMatches(gameType, num) {
		d.log.Error("no subsystem matches special content", "type", gameType, "count", num)
		return false
	}

	d.optionsChanged()
	raw := unsafe.Slice(info, num)
	games := make([]*GameInfo, num)
	for i := range raw {
		games[i] = gameInfoFromABI(&raw[i])
	}
	d.contents = int(num)
	if err := c.LoadGameSpecial(gameType, games, &LoadGameSpecialContext{d.scope()}); err != nil {
		d.log.Error("failed to load special game", "type", gameType, "error", err)
		return false
	}
	return true
}

func (d *Dispatcher) subsystemMatches(gameType uint32, num uintptr) bool {
	for _, s := range d.subsystems {
		if s.ID == gameType && uintptr(len(s.Roms)) == num {
			return true
		}
	}
	return false
}

// UnloadGame implements retro_unload_game.
func (d *Dispatcher) UnloadGame() {
	defer d.recoverEntry("retro_unload_game")
	d.trace("retro_unload_game")

	if c, ok := d.core.(GameUnloader); ok {
		c.UnloadGame(d.generic())
	}
	d.releaseSession()
}

// releaseSession forgets everything tied to the loaded content.
func (d *Dispatcher) releaseSession() {
	d.frame.hadFrame = false
	d.hasSerializeSize = false
	d.serializeSize = 0
	d.hasFrameDelta = false
	d.contents = 0
	d.memData = nil
	d.memPins.Unpin()
	d.avOverride = nil
	d.geometryOverride = nil
}

// Region implements retro_get_region.
func (d *Dispatcher) Region() (r uint32) {
	defer d.recoverEntry("retro_get_region")
	if c, ok := d.core.(RegionReporter); ok {
		return uint32(c.Region(d.generic()))
	}
	return uint32(RegionNTSC)
}

func (d *Dispatcher) memory(id uint32) []byte {
	c, ok := d.core.(MemoryExposer)
	if !ok {
		return nil
	}
	buf := c.MemoryData(id, d.generic())
	if len(buf) == 0 {
		return nil
	}
	if prev, ok := d.memData[id]; !ok || &prev[0] != &buf[0] {
		d.memPins.Pin(&buf[0])
		if d.memData == nil {
			d.memData = make(map[uint32][]byte)
		}
	}
	d.memData[id] = buf
	return buf
}

// MemoryData implements retro_get_memory_data. The memory stays pinned
// until the content is unloaded.
func (d *Dispatcher) MemoryData(id uint32) (p unsafe.Pointer) {
	defer d.recoverEntry("retro_get_memory_data")
	if buf := d.memory(id); buf != nil {
		return unsafe.Pointer(&buf[0])
	}
	return nil
}

// MemorySize implements retro_get_memory_size.
func (d *Dispatcher) MemorySize(id uint32) (n uintptr) {
	defer d.recoverEntry("retro_get_memory_size")
	return uintptr(len(d.memory(id)))
}

// OnKeyboard forwards a key event to a KeyboardHandler.
func (d *Dispatcher) OnKeyboard(down bool, keycode, character uint32, modifiers uint16) {
	defer d.recoverEntry("keyboard callback")
	if c, ok := d.core.(KeyboardHandler); ok {
		c.KeyboardEvent(down, keycode, character, modifiers)
	}
}

// OnHWContextReset marks the hardware context live and tells the core.
func (d *Dispatcher) OnHWContextReset() {
	defer d.recoverEntry("hw context reset")
	d.ifaces.setHWRenderLive(true)
	if c, ok := d.core.(HWRenderer); ok {
		c.ContextReset(d.generic())
	}
}

// OnHWContextDestroy tells the core, then marks the context dead.
func (d *Dispatcher) OnHWContextDestroy() {
	defer d.recoverEntry("hw context destroy")
	defer d.ifaces.setHWRenderLive(false)
	if c, ok := d.core.(HWRenderer); ok {
		c.ContextDestroy(d.generic())
	}
}

// OnFrameTime stores the frame delta for the next Run.
func (d *Dispatcher) OnFrameTime(usec int64) {
	d.frameDelta = usec
	d.hasFrameDelta = true
}

// OnAudio runs the AudioWriter. It may be called from the host audio
// thread and is serialised with Run.
func (d *Dispatcher) OnAudio() {
	defer d.recoverEntry("audio callback")
	c, ok := d.core.(AudioWriter)
	if !ok {
		return
	}
	d.audioMu.Lock()
	defer d.audioMu.Unlock()
	c.WriteAudio(&AudioContext{d.scope()})
}

// OnAudioSetState forwards the audio state to the AudioWriter.
func (d *Dispatcher) OnAudioSetState(enabled bool) {
	defer d.recoverEntry("audio set state callback")
	c, ok := d.core.(AudioWriter)
	if !ok {
		return
	}
	d.audioMu.Lock()
	defer d.audioMu.Unlock()
	c.AudioSetState(enabled)
}

// OnAudioBufferStatus forwards buffer occupancy.
func (d *Dispatcher) OnAudioBufferStatus(active bool, occupancy uint32, underrunLikely bool) {
	defer d.recoverEntry("audio buffer status callback")
	c, ok := d.core.(AudioBufferStatusHandler)
	if !ok {
		return
	}
	d.audioMu.Lock()
	defer d.audioMu.Unlock()
	c.AudioBufferStatus(active, occupancy, underrunLikely)
}

// OnCameraRawFramebuffer forwards a camera frame.
func (d *Dispatcher) OnCameraRawFramebuffer(buf *uint32, width, height uint32, pitch uintptr) {
	defer d.recoverEntry("camera raw framebuffer callback")
	c, ok := d.core.(CameraHandler)
	if !ok || buf == nil {
		return
	}
	n := uintptr(height) * (pitch / 4)
	c.CameraRawFrame(unsafe.Slice(buf, n), width, height, pitch)
}

// OnCameraGLTexture forwards a camera texture. affine points at 9 floats.
func (d *Dispatcher) OnCameraGLTexture(textureID, textureTarget uint32, affine *float32) {
	defer d.recoverEntry("camera gl texture callback")
	c, ok := d.core.(CameraHandler)
	if !ok {
		return
	}
	var m [9]float32
	if affine != nil {
		copy(m[:], unsafe.Slice(affine, 9))
	}
	c.CameraTextureFrame(textureID, textureTarget, m)
}

func (d *Dispatcher) OnCameraInitialized() {
	defer d.recoverEntry("camera initialized callback")
	if c, ok := d.core.(CameraHandler); ok {
		c.CameraInitialized(d.generic())
	}
}

func (d *Dispatcher) OnCameraDeinitialized() {
	defer d.recoverEntry("camera deinitialized callback")
	if c, ok := d.core.(CameraHandler); ok {
		c.CameraDeinitialized(d.generic())
	}
}

func (d *Dispatcher) OnLocationInitialized() {
	defer d.recoverEntry("location initialized callback")
	if c, ok := d.core.(LocationHandler); ok {
		c.LocationInitialized(d.generic())
	}
}

func (d *Dispatcher) OnLocationDeinitialized() {
	defer d.recoverEntry("location deinitialized callback")
	if c, ok := d.core.(LocationHandler); ok {
		c.LocationDeinitialized(d.generic())
	}
}

// OnGetProcAddress resolves sym through a ProcAddressProvider.
func (d *Dispatcher) OnGetProcAddress(sym *byte) (addr uintptr) {
	defer d.recoverEntry("get proc address callback")
	c, ok := d.core.(ProcAddressProvider)
	if !ok {
		return 0
	}
	s, err := GoString(sym)
	if err != nil {
		d.log.Warn("invalid proc address symbol", "error", err)
		return 0
	}
	return c.ProcAddress(s)
}

// OnOptionsUpdateDisplay asks an OptionsDisplayUpdater to refresh.
func (d *Dispatcher) OnOptionsUpdateDisplay() (changed bool) {
	defer d.recoverEntry("options update display callback")
	if c, ok := d.core.(OptionsDisplayUpdater); ok {
		return c.UpdateOptionsDisplay(d.generic())
	}
	return false
}

func (d *Dispatcher) disk() DiskController {
	c, _ := d.core.(DiskController)
	return c
}

func (d *Dispatcher) OnDiskSetEjectState(ejected bool) (ok bool) {
	defer d.recoverEntry("disk set eject state")
	if c := d.disk(); c != nil {
		return c.SetEjectState(ejected)
	}
	return false
}

func (d *Dispatcher) OnDiskGetEjectState() (ejected bool) {
	defer d.recoverEntry("disk get eject state")
	if c := d.disk(); c != nil {
		return c.EjectState()
	}
	return false
}

func (d *Dispatcher) OnDiskGetImageIndex() (index uint32) {
	defer d.recoverEntry("disk get image index")
	if c := d.disk(); c != nil {
		return c.ImageIndex()
	}
	return 0
}

func (d *Dispatcher) OnDiskSetImageIndex(index uint32) (ok bool) {
	defer d.recoverEntry("disk set image index")
	if c := d.disk(); c != nil {
		return c.SetImageIndex(index)
	}
	return false
}

func (d *Dispatcher) OnDiskGetNumImages() (n uint32) {
	defer d.recoverEntry("disk get num images")
	if c := d.disk(); c != nil {
		return c.NumImages()
	}
	return 0
}

func (d *Dispatcher) OnDiskReplaceImageIndex(index uint32, info *abi.GameInfo) (ok bool) {
	defer d.recoverEntry("disk replace image index")
	if c := d.disk(); c != nil {
		return c.ReplaceImageIndex(index, gameInfoFromABI(info))
	}
	return false
}

func (d *Dispatcher) OnDiskAddImageIndex() (ok bool) {
	defer d.recoverEntry("disk add image index")
	if c := d.disk(); c != nil {
		return c.AddImageIndex()
	}
	return false
}

func (d *Dispatcher) extDisk() ExtDiskController {
	c, _ := d.core.(ExtDiskController)
	return c
}

func (d *Dispatcher) OnDiskSetInitialImage(index uint32, path *byte) (ok bool) {
	defer d.recoverEntry("disk set initial image")
	c := d.extDisk()
	if c == nil {
		return false
	}
	s, err := GoString(path)
	if err != nil {
		d.log.Warn("invalid initial disk image path", "error", err)
		return false
	}
	return c.SetInitialImage(index, s)
}

// OnDiskGetImagePath copies the path into the host buffer of len n.
func (d *Dispatcher) OnDiskGetImagePath(index uint32, buf *byte, n uintptr) (ok bool) {
	defer d.recoverEntry("disk get image path")
	c := d.extDisk()
	if c == nil {
		return false
	}
	path, found := c.ImagePath(index)
	if !found {
		return false
	}
	copyToCBuffer(path, buf, n)
	return true
}

// OnDiskGetImageLabel copies the label into the host buffer of len n.
func (d *Dispatcher) OnDiskGetImageLabel(index uint32, buf *byte, n uintptr) (ok bool) {
	defer d.recoverEntry("disk get image label")
	c := d.extDisk()
	if c == nil {
		return false
	}
	label, found := c.ImageLabel(index)
	if !found {
		return false
	}
	copyToCBuffer(label, buf, n)
	return true
}

// Slot holds the one dispatcher of a loaded core library.
type Slot struct {
	mu sync.Mutex
	d  *Dispatcher
}

// Register creates the dispatcher for core. It fails once a core is
// registered.
func (s *Slot) Register(core Core, cfg Config, hooks Hooks) (*Dispatcher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.d != nil {
		return nil, &AlreadyInitializedError{Existing: s.d.name()}
	}
	s.d = NewDispatcher(core, cfg, hooks)
	return s.d, nil
}

// Dispatcher returns the registered dispatcher.
func (s *Slot) Dispatcher() (*Dispatcher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.d == nil {
		return nil, ErrNotInitialized
	}
	return s.d, nil
}

func (d *Dispatcher) name() (name string) {
	defer func() {
		if recover() != nil {
			name = "unknown"
		}
	}()
	return d.core.SystemInfo().LibraryName
}
