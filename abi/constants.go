package abi

// Input device types.
const (
	DeviceTypeShift = 8
	DeviceMask      = (1 << DeviceTypeShift) - 1

	DeviceNone     = 0
	DeviceJoypad   = 1
	DeviceMouse    = 2
	DeviceKeyboard = 3
	DeviceLightgun = 4
	DeviceAnalog   = 5
	DevicePointer  = 6
)

// DeviceSubclass builds a device id specialised from a base device type.
func DeviceSubclass(base, id uint32) uint32 {
	return ((id + 1) << DeviceTypeShift) | base
}

// Joypad button ids.
const (
	JoypadB      = 0
	JoypadY      = 1
	JoypadSelect = 2
	JoypadStart  = 3
	JoypadUp     = 4
	JoypadDown   = 5
	JoypadLeft   = 6
	JoypadRight  = 7
	JoypadA      = 8
	JoypadX      = 9
	JoypadL      = 10
	JoypadR      = 11
	JoypadL2     = 12
	JoypadR2     = 13
	JoypadL3     = 14
	JoypadR3     = 15

	// JoypadMask queries all buttons at once when the host supports
	// input bitmasks.
	JoypadMask = 256
)

// Analog indexes and axis ids.
const (
	AnalogLeft   = 0
	AnalogRight  = 1
	AnalogButton = 2

	AnalogX = 0
	AnalogY = 1
)

// Mouse ids.
const (
	MouseX              = 0
	MouseY              = 1
	MouseLeft           = 2
	MouseRight          = 3
	MouseWheelUp        = 4
	MouseWheelDown      = 5
	MouseMiddle         = 6
	MouseHorizWheelUp   = 7
	MouseHorizWheelDown = 8
	MouseButton4        = 9
	MouseButton5        = 10
)

// Pointer ids.
const (
	PointerX       = 0
	PointerY       = 1
	PointerPressed = 2
	PointerCount   = 3
)

// Lightgun ids.
const (
	LightgunTrigger     = 2
	LightgunAuxA        = 3
	LightgunAuxB        = 4
	LightgunStart       = 6
	LightgunSelect      = 7
	LightgunAuxC        = 8
	LightgunDpadUp      = 9
	LightgunDpadDown    = 10
	LightgunDpadLeft    = 11
	LightgunDpadRight   = 12
	LightgunScreenX     = 13
	LightgunScreenY     = 14
	LightgunIsOffscreen = 15
	LightgunReload      = 16
)

// Keyboard modifier bits passed to the keyboard callback.
const (
	KeyModNone      = 0x0000
	KeyModShift     = 0x01
	KeyModCtrl      = 0x02
	KeyModAlt       = 0x04
	KeyModMeta      = 0x08
	KeyModNumLock   = 0x10
	KeyModCapsLock  = 0x20
	KeyModScrolLock = 0x40
)

// Region values returned from retro_get_region.
const (
	RegionNTSC = 0
	RegionPAL  = 1
)

// Memory ids for retro_get_memory_data and retro_get_memory_size.
const (
	MemoryMask      = 0xff
	MemorySaveRAM   = 0
	MemoryRTC       = 1
	MemorySystemRAM = 2
	MemoryVideoRAM  = 3
)

// Memory descriptor flags.
const (
	MemDescConst     = 1 << 0
	MemDescBigEndian = 1 << 1
	MemDescSystemRAM = 1 << 2
	MemDescSaveRAM   = 1 << 3
	MemDescVideoRAM  = 1 << 4
	MemDescAlign2    = 1 << 16
	MemDescAlign4    = 2 << 16
	MemDescAlign8    = 3 << 16
	MemDescMinSize2  = 1 << 24
	MemDescMinSize4  = 2 << 24
	MemDescMinSize8  = 3 << 24
)

// Pixel formats.
const (
	PixelFormat0RGB1555 = 0
	PixelFormatXRGB8888 = 1
	PixelFormatRGB565   = 2
)

// Hardware context types.
const (
	HWContextNone            = 0
	HWContextOpenGL          = 1
	HWContextOpenGLES2       = 2
	HWContextOpenGLCore      = 3
	HWContextOpenGLES3       = 4
	HWContextOpenGLESVersion = 5
	HWContextVulkan          = 6
	HWContextD3D11           = 7
	HWContextD3D10           = 8
	HWContextD3D12           = 9
	HWContextD3D9            = 10
)

// HWFrameBufferValid is passed as the data pointer of video refresh when
// a hardware rendered frame is ready.
const HWFrameBufferValid = ^uintptr(0)

// Hardware render interface types.
const (
	HWRenderAPIVulkan   = 0
	HWRenderAPID3D9     = 1
	HWRenderAPID3D10    = 2
	HWRenderAPID3D11    = 3
	HWRenderAPID3D12    = 4
	HWRenderAPIGSKitPS2 = 5
)

// Hardware render context negotiation interface types.
const (
	HWRenderContextNegotiationVulkan = 0

	HWRenderInterfaceVulkanVersion                   = 5
	HWRenderContextNegotiationInterfaceVulkanVersion = 1
)

// Camera buffer types, used as bit positions in camera caps.
const (
	CameraBufferOpenGLTexture  = 0
	CameraBufferRawFramebuffer = 1
)

// Sensor actions and input ids.
const (
	SensorAccelerometerEnable  = 0
	SensorAccelerometerDisable = 1
	SensorGyroscopeEnable      = 2
	SensorGyroscopeDisable     = 3
	SensorIlluminanceEnable    = 4
	SensorIlluminanceDisable   = 5

	SensorAccelerometerX = 0
	SensorAccelerometerY = 1
	SensorAccelerometerZ = 2
	SensorGyroscopeX     = 3
	SensorGyroscopeY     = 4
	SensorGyroscopeZ     = 5
	SensorIlluminance    = 6
)

// Log levels.
const (
	LogDebug = 0
	LogInfo  = 1
	LogWarn  = 2
	LogError = 3
)

// Message targets and types for SET_MESSAGE_EXT.
const (
	MessageTargetAll = 0
	MessageTargetOSD = 1
	MessageTargetLog = 2

	MessageTypeNotification    = 0
	MessageTypeNotificationAlt = 1
	MessageTypeStatus          = 2
	MessageTypeProgress        = 3
)

// Serialization quirks.
const (
	SerializationQuirkIncomplete        = 1 << 0
	SerializationQuirkMustInitialize    = 1 << 1
	SerializationQuirkCoreVariableSize  = 1 << 2
	SerializationQuirkFrontVariableSize = 1 << 3
	SerializationQuirkSingleSession     = 1 << 4
	SerializationQuirkEndianDependent   = 1 << 5
	SerializationQuirkPlatformDependent = 1 << 6
)

// SIMD feature bits returned by get_cpu_features.
const (
	SIMDSSE    = 1 << 0
	SIMDSSE2   = 1 << 1
	SIMDVMX    = 1 << 2
	SIMDVMX128 = 1 << 3
	SIMDAVX    = 1 << 4
	SIMDNEON   = 1 << 5
	SIMDSSE3   = 1 << 6
	SIMDSSSE3  = 1 << 7
	SIMDMMX    = 1 << 8
	SIMDMMXEXT = 1 << 9
	SIMDSSE4   = 1 << 10
	SIMDSSE42  = 1 << 11
	SIMDAVX2   = 1 << 12
	SIMDVFPU   = 1 << 13
	SIMDPS     = 1 << 14
	SIMDAES    = 1 << 15
	SIMDVFPV3  = 1 << 16
	SIMDVFPV4  = 1 << 17
	SIMDPOPCNT = 1 << 18
	SIMDMOVBE  = 1 << 19
	SIMDCMOV   = 1 << 20
	SIMDASIMD  = 1 << 21
)

// VFS constants.
const (
	VFSFileAccessRead           = 1 << 0
	VFSFileAccessWrite          = 1 << 1
	VFSFileAccessReadWrite      = VFSFileAccessRead | VFSFileAccessWrite
	VFSFileAccessUpdateExisting = 1 << 2

	VFSFileAccessHintNone           = 0
	VFSFileAccessHintFrequentAccess = 1 << 0

	VFSSeekPositionStart   = 0
	VFSSeekPositionCurrent = 1
	VFSSeekPositionEnd     = 2

	VFSStatIsValid            = 1 << 0
	VFSStatIsDirectory        = 1 << 1
	VFSStatIsCharacterSpecial = 1 << 2
)

// Software framebuffer memory flags.
const (
	MemoryAccessWrite = 1 << 0
	MemoryAccessRead  = 1 << 1
	MemoryTypeCached  = 1 << 0
)

// Audio/video enable bits.
const (
	AVEnableVideo            = 1 << 0
	AVEnableAudio            = 1 << 1
	AVEnableFastSavestates   = 1 << 2
	AVEnableHardDisableAudio = 1 << 3
)

// Savestate contexts.
const (
	SavestateContextNormal               = 0
	SavestateContextRunaheadSameInstance = 1
	SavestateContextRunaheadSameBinary   = 2
	SavestateContextRollbackNetplay      = 3
)

// Throttle modes.
const (
	ThrottleNone          = 0
	ThrottleFrameStepping = 1
	ThrottleFastForward   = 2
	ThrottleSlowMotion    = 3
	ThrottleRewinding     = 4
	ThrottleVsync         = 5
	ThrottleUnblocked     = 6
)

// NumCoreOptionValuesMax is the fixed size of the values array of core
// option definitions. The last entry is always a terminator.
const NumCoreOptionValuesMax = 128

// Language ids.
const (
	LanguageEnglish            = 0
	LanguageJapanese           = 1
	LanguageFrench             = 2
	LanguageSpanish            = 3
	LanguageGerman             = 4
	LanguageItalian            = 5
	LanguageDutch              = 6
	LanguagePortugueseBrazil   = 7
	LanguagePortuguesePortugal = 8
	LanguageRussian            = 9
	LanguageKorean             = 10
	LanguageChineseTraditional = 11
	LanguageChineseSimplified  = 12
	LanguageEsperanto          = 13
	LanguagePolish             = 14
	LanguageVietnamese         = 15
	LanguageArabic             = 16
	LanguageGreek              = 17
	LanguageTurkish            = 18
	LanguageSlovak             = 19
	LanguagePersian            = 20
	LanguageHebrew             = 21
	LanguageAsturian           = 22
	LanguageFinnish            = 23
	LanguageIndonesian         = 24
	LanguageSwedish            = 25
	LanguageUkrainian          = 26
	LanguageCzech              = 27
	LanguageCatalanValencia    = 28
	LanguageCatalan            = 29
	LanguageBritishEnglish     = 30
	LanguageHungarian          = 31
	LanguageBelarusian         = 32
	LanguageLast               = 33
)

// Rumble effects.
const (
	RumbleStrong = 0
	RumbleWeak   = 1
)

