package retro

// Core is implemented by every libretro core. The dispatcher calls it from
// the retro_* entry points with a context scoped to the current phase.
type Core interface {
	// SystemInfo is static and may be requested before Init.
	SystemInfo() SystemInfo

	// SystemAVInfo is requested after a successful LoadGame.
	SystemAVInfo(ctx *GetAvInfoContext) SystemAVInfo

	Init(ctx *InitContext)

	// Run renders one frame. delta is the frame time in microseconds
	// reported by the host, or DefaultFrameDelta.
	Run(ctx *RunContext, delta int64)

	// LoadGame loads content. game is nil when the core supports running
	// without content and none was given.
	LoadGame(game *GameInfo, ctx *LoadGameContext) error
}

// EnvironmentSetter receives the environment callback. initial is true
// for the first call with a usable callback.
type EnvironmentSetter interface {
	SetEnvironment(initial bool, ctx *SetEnvironmentContext)
}

// OptionsProvider declares core options. They are encoded for the options
// version the host supports and declared on every SetEnvironment.
type OptionsProvider interface {
	CoreOptions() CoreOptions
}

// OptionsChangedHandler is told when the host reports updated options and
// before content is loaded.
type OptionsChangedHandler interface {
	OptionsChanged(ctx *OptionsChangedContext)
}

type Deiniter interface {
	Deinit(ctx *DeinitContext)
}

type ControllerPortSetter interface {
	SetControllerPortDevice(port, device uint32)
}

type Resetter interface {
	Reset(ctx *ResetContext)
}

// Serializer implements savestates. The size may only shrink while the
// same content stays loaded.
type Serializer interface {
	SerializeSize(ctx *GetSerializeSizeContext) uintptr
	Serialize(buf []byte, ctx *SerializeContext) error
	Unserialize(buf []byte, ctx *UnserializeContext) error
}

type Cheater interface {
	CheatReset(ctx *CheatResetContext)
	CheatSet(index uint32, enabled bool, code string, ctx *CheatSetContext)
}

// SpecialLoader loads the subsystem content declared with
// SetEnvironmentContext.SetSubsystemInfo.
type SpecialLoader interface {
	LoadGameSpecial(gameType uint32, games []*GameInfo, ctx *LoadGameSpecialContext) error
}

type GameUnloader interface {
	UnloadGame(ctx *UnloadGameContext)
}

// RegionReporter defaults to RegionNTSC when not implemented.
type RegionReporter interface {
	Region(ctx *GetRegionContext) Region
}

// MemoryExposer exposes memory regions such as save RAM by MemoryType id.
// The returned slice must stay allocated and in place until Deinit or the
// next call returning a different slice for the same id.
type MemoryExposer interface {
	MemoryData(id uint32, ctx *GetMemoryDataContext) []byte
}

// KeyboardHandler receives key events after
// GenericContext.EnableKeyboardCallback.
type KeyboardHandler interface {
	KeyboardEvent(down bool, keycode, character uint32, modifiers uint16)
}

// HWRenderer is told about the hardware context enabled with
// LoadGameContext.EnableHWRender.
type HWRenderer interface {
	ContextReset(ctx *GenericContext)
	ContextDestroy(ctx *GenericContext)
}

// DiskController backs the disk control interface.
type DiskController interface {
	SetEjectState(ejected bool) bool
	EjectState() bool
	ImageIndex() uint32
	SetImageIndex(index uint32) bool
	NumImages() uint32
	// ReplaceImageIndex removes the image when info is nil.
	ReplaceImageIndex(index uint32, info *GameInfo) bool
	AddImageIndex() bool
}

// ExtDiskController backs the extended disk control interface.
type ExtDiskController interface {
	DiskController
	SetInitialImage(index uint32, path string) bool
	ImagePath(index uint32) (string, bool)
	ImageLabel(index uint32) (string, bool)
}

// AudioWriter produces audio when the host pulls it through
// GenericContext.EnableAudioCallback.
//
// The host may call WriteAudio and AudioSetState from its audio thread. The
// dispatcher holds a mutex shared with Run while they execute, so the core
// never sees them concurrently with a frame, but they must not block on
// work that only Run completes.
type AudioWriter interface {
	WriteAudio(ctx *AudioContext)
	AudioSetState(enabled bool)
}

// AudioBufferStatusHandler receives host audio buffer occupancy. It may be
// called from the host audio thread under the same mutex as AudioWriter.
type AudioBufferStatusHandler interface {
	AudioBufferStatus(active bool, occupancy uint32, underrunLikely bool)
}

// CameraHandler receives camera frames and lifecycle events.
type CameraHandler interface {
	CameraInitialized(ctx *GenericContext)
	CameraDeinitialized(ctx *GenericContext)
	// CameraRawFrame views host memory valid for the duration of the call.
	CameraRawFrame(buf []uint32, width, height uint32, pitch uintptr)
	// CameraTextureFrame receives a GL texture and its 3x3 affine
	// transform in column major order.
	CameraTextureFrame(textureID, textureTarget uint32, affine [9]float32)
}

type LocationHandler interface {
	LocationInitialized(ctx *GenericContext)
	LocationDeinitialized(ctx *GenericContext)
}

// ProcAddressProvider answers SetEnvironmentContext.EnableProcAddressInterface
// lookups. A zero address means unknown.
type ProcAddressProvider interface {
	ProcAddress(sym string) uintptr
}

// OptionsDisplayUpdater refreshes option visibility when the host asks.
// It reports whether anything changed.
type OptionsDisplayUpdater interface {
	UpdateOptionsDisplay(ctx *GenericContext) bool
}
