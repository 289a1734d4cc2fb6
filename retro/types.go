package retro

import (
	"fmt"
	"math"
	"strings"
	"unsafe"

	"golang.org/x/text/language"

	"github.com/user-none/goretro/abi"
)

// Version packs major.minor.patch into 10/10/12 bits.
type Version uint32

// NewVersion packs a version. Components are truncated to their field
// widths.
func NewVersion(major, minor, patch uint32) Version {
	return Version((major&0x3ff)<<22 | (minor&0x3ff)<<12 | patch&0xfff)
}

func (v Version) Major() uint32 { return uint32(v) >> 22 }
func (v Version) Minor() uint32 { return (uint32(v) >> 12) & 0x3ff }
func (v Version) Patch() uint32 { return uint32(v) & 0xfff }

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch())
}

// Rotation is a screen rotation.
type Rotation int

const (
	RotationNone Rotation = iota
	RotationCW90
	RotationCW180
	RotationCW270
	RotationCCW90
	RotationCCW180
	RotationCCW270
)

// EnvValue is the counter-clockwise quarter turn count SET_ROTATION
// expects.
func (r Rotation) EnvValue() uint32 {
	switch r {
	case RotationCW90, RotationCCW270:
		return 3
	case RotationCW180, RotationCCW180:
		return 2
	case RotationCW270, RotationCCW90:
		return 1
	}
	return 0
}

// PixelFormat is a software framebuffer pixel format.
type PixelFormat int32

const (
	PixelFormat0RGB1555 PixelFormat = abi.PixelFormat0RGB1555
	PixelFormatXRGB8888 PixelFormat = abi.PixelFormatXRGB8888
	PixelFormatRGB565   PixelFormat = abi.PixelFormatRGB565
)

// BytesPerPixel returns 2 or 4, or 0 for unknown formats.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case PixelFormat0RGB1555, PixelFormatRGB565:
		return 2
	case PixelFormatXRGB8888:
		return 4
	}
	return 0
}

func (f PixelFormat) String() string {
	switch f {
	case PixelFormat0RGB1555:
		return "0RGB1555"
	case PixelFormatXRGB8888:
		return "XRGB8888"
	case PixelFormatRGB565:
		return "RGB565"
	}
	return fmt.Sprintf("PixelFormat(%d)", int32(f))
}

// HWContextType is a hardware rendering API.
type HWContextType int32

const (
	HWContextNone            HWContextType = abi.HWContextNone
	HWContextOpenGL          HWContextType = abi.HWContextOpenGL
	HWContextOpenGLES2       HWContextType = abi.HWContextOpenGLES2
	HWContextOpenGLCore      HWContextType = abi.HWContextOpenGLCore
	HWContextOpenGLES3       HWContextType = abi.HWContextOpenGLES3
	HWContextOpenGLESVersion HWContextType = abi.HWContextOpenGLESVersion
	HWContextVulkan          HWContextType = abi.HWContextVulkan
	HWContextD3D11           HWContextType = abi.HWContextD3D11
	HWContextD3D10           HWContextType = abi.HWContextD3D10
	HWContextD3D12           HWContextType = abi.HWContextD3D12
	HWContextD3D9            HWContextType = abi.HWContextD3D9
)

func (t HWContextType) valid() bool {
	return t >= HWContextNone && t <= HWContextD3D9
}

// SavestateContext tells the core why a savestate is being taken.
type SavestateContext int32

const (
	SavestateNormal               SavestateContext = abi.SavestateContextNormal
	SavestateRunaheadSameInstance SavestateContext = abi.SavestateContextRunaheadSameInstance
	SavestateRunaheadSameBinary   SavestateContext = abi.SavestateContextRunaheadSameBinary
	SavestateRollbackNetplay      SavestateContext = abi.SavestateContextRollbackNetplay
)

// Language is a host UI language.
type Language uint32

var languageTags = [abi.LanguageLast]string{
	abi.LanguageEnglish:            "en-US",
	abi.LanguageJapanese:           "ja",
	abi.LanguageFrench:             "fr",
	abi.LanguageSpanish:            "es",
	abi.LanguageGerman:             "de",
	abi.LanguageItalian:            "it",
	abi.LanguageDutch:              "nl",
	abi.LanguagePortugueseBrazil:   "pt-BR",
	abi.LanguagePortuguesePortugal: "pt-PT",
	abi.LanguageRussian:            "ru",
	abi.LanguageKorean:             "ko",
	abi.LanguageChineseTraditional: "zh-Hant",
	abi.LanguageChineseSimplified:  "zh-Hans",
	abi.LanguageEsperanto:          "eo",
	abi.LanguagePolish:             "pl",
	abi.LanguageVietnamese:         "vi",
	abi.LanguageArabic:             "ar",
	abi.LanguageGreek:              "el",
	abi.LanguageTurkish:            "tr",
	abi.LanguageSlovak:             "sk",
	abi.LanguagePersian:            "fa",
	abi.LanguageHebrew:             "he",
	abi.LanguageAsturian:           "ast",
	abi.LanguageFinnish:            "fi",
	abi.LanguageIndonesian:         "id",
	abi.LanguageSwedish:            "sv",
	abi.LanguageUkrainian:          "uk",
	abi.LanguageCzech:              "cs",
	abi.LanguageCatalanValencia:    "ca-ES-valencia",
	abi.LanguageCatalan:            "ca",
	abi.LanguageBritishEnglish:     "en-GB",
	abi.LanguageHungarian:          "hu",
	abi.LanguageBelarusian:         "be",
}

// Tag returns the BCP 47 tag for the language, or language.Und.
func (l Language) Tag() language.Tag {
	if int(l) >= len(languageTags) {
		return language.Und
	}
	t, err := language.Parse(languageTags[l])
	if err != nil {
		return language.Und
	}
	return t
}

func (l Language) String() string {
	return l.Tag().String()
}

// JoypadState is a RetroPad button bitmask as returned by the MASK query.
type JoypadState uint16

const (
	JoypadB JoypadState = 1 << iota
	JoypadY
	JoypadSelect
	JoypadStart
	JoypadUp
	JoypadDown
	JoypadLeft
	JoypadRight
	JoypadA
	JoypadX
	JoypadL
	JoypadR
	JoypadL2
	JoypadR2
	JoypadL3
	JoypadR3
)

var joypadNames = [16]string{
	"B", "Y", "SELECT", "START", "UP", "DOWN", "LEFT", "RIGHT",
	"A", "X", "L", "R", "L2", "R2", "L3", "R3",
}

// Has reports whether every button in b is pressed.
func (s JoypadState) Has(b JoypadState) bool {
	return s&b == b
}

func (s JoypadState) String() string {
	var names []string
	for i, name := range joypadNames {
		if s&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "NONE"
	}
	return strings.Join(names, "|")
}

// RetroDevice is a set of input device types, one bit per base device.
type RetroDevice uint8

const (
	RetroDeviceNone     RetroDevice = 1 << abi.DeviceNone
	RetroDeviceJoypad   RetroDevice = 1 << abi.DeviceJoypad
	RetroDeviceMouse    RetroDevice = 1 << abi.DeviceMouse
	RetroDeviceKeyboard RetroDevice = 1 << abi.DeviceKeyboard
	RetroDeviceLightgun RetroDevice = 1 << abi.DeviceLightgun
	RetroDeviceAnalog   RetroDevice = 1 << abi.DeviceAnalog
	RetroDevicePointer  RetroDevice = 1 << abi.DevicePointer

	retroDeviceAll = RetroDeviceNone | RetroDeviceJoypad | RetroDeviceMouse |
		RetroDeviceKeyboard | RetroDeviceLightgun | RetroDeviceAnalog | RetroDevicePointer
)

// SerializationQuirks describe limitations of the core's savestates.
type SerializationQuirks uint32

const (
	QuirkIncomplete        SerializationQuirks = abi.SerializationQuirkIncomplete
	QuirkMustInitialize    SerializationQuirks = abi.SerializationQuirkMustInitialize
	QuirkCoreVariableSize  SerializationQuirks = abi.SerializationQuirkCoreVariableSize
	QuirkFrontVariableSize SerializationQuirks = abi.SerializationQuirkFrontVariableSize
	QuirkSingleSession     SerializationQuirks = abi.SerializationQuirkSingleSession
	QuirkEndianDependent   SerializationQuirks = abi.SerializationQuirkEndianDependent
	QuirkPlatformDependent SerializationQuirks = abi.SerializationQuirkPlatformDependent
)

// CPUFeatures is the SIMD feature set reported by the host.
type CPUFeatures uint64

const (
	CPUSSE    CPUFeatures = abi.SIMDSSE
	CPUSSE2   CPUFeatures = abi.SIMDSSE2
	CPUVMX    CPUFeatures = abi.SIMDVMX
	CPUVMX128 CPUFeatures = abi.SIMDVMX128
	CPUAVX    CPUFeatures = abi.SIMDAVX
	CPUNEON   CPUFeatures = abi.SIMDNEON
	CPUSSE3   CPUFeatures = abi.SIMDSSE3
	CPUSSSE3  CPUFeatures = abi.SIMDSSSE3
	CPUMMX    CPUFeatures = abi.SIMDMMX
	CPUMMXEXT CPUFeatures = abi.SIMDMMXEXT
	CPUSSE4   CPUFeatures = abi.SIMDSSE4
	CPUSSE42  CPUFeatures = abi.SIMDSSE42
	CPUAVX2   CPUFeatures = abi.SIMDAVX2
	CPUVFPU   CPUFeatures = abi.SIMDVFPU
	CPUPS     CPUFeatures = abi.SIMDPS
	CPUAES    CPUFeatures = abi.SIMDAES
	CPUVFPV3  CPUFeatures = abi.SIMDVFPV3
	CPUVFPV4  CPUFeatures = abi.SIMDVFPV4
	CPUPOPCNT CPUFeatures = abi.SIMDPOPCNT
	CPUMOVBE  CPUFeatures = abi.SIMDMOVBE
	CPUCMOV   CPUFeatures = abi.SIMDCMOV
	CPUASIMD  CPUFeatures = abi.SIMDASIMD

	cpuFeaturesAll CPUFeatures = 1<<22 - 1
)

// AudioVideoEnable tells the core which outputs the host wants.
type AudioVideoEnable uint32

const (
	EnableVideo         AudioVideoEnable = abi.AVEnableVideo
	EnableAudio         AudioVideoEnable = abi.AVEnableAudio
	UseFastSavestates   AudioVideoEnable = abi.AVEnableFastSavestates
	HardDisableAudio    AudioVideoEnable = abi.AVEnableHardDisableAudio
	audioVideoEnableAll                  = EnableVideo | EnableAudio | UseFastSavestates | HardDisableAudio
)

// MemoryAccess describes how a software framebuffer may be used.
type MemoryAccess uint32

const (
	MemoryAccessWrite MemoryAccess = abi.MemoryAccessWrite
	MemoryAccessRead  MemoryAccess = abi.MemoryAccessRead
)

// MemoryType describes framebuffer caching.
type MemoryType uint32

const (
	MemoryUncached MemoryType = 0
	MemoryCached   MemoryType = abi.MemoryTypeCached
)

// MessageProgress is a percentage in [0, 100] or indeterminate.
type MessageProgress int8

// ProgressIndeterminate marks unmetered progress.
const ProgressIndeterminate MessageProgress = -1

// Percentage returns a progress value, reporting false above 100.
func Percentage(p uint8) (MessageProgress, bool) {
	if p > 100 {
		return 0, false
	}
	return MessageProgress(p), true
}

// MessageTarget selects where SetMessageExt output goes.
type MessageTarget int32

const (
	MessageTargetAll MessageTarget = abi.MessageTargetAll
	MessageTargetOSD MessageTarget = abi.MessageTargetOSD
	MessageTargetLog MessageTarget = abi.MessageTargetLog
)

// MessageType selects how SetMessageExt output is presented.
type MessageType int32

const (
	MessageNotification    MessageType = abi.MessageTypeNotification
	MessageNotificationAlt MessageType = abi.MessageTypeNotificationAlt
	MessageStatus          MessageType = abi.MessageTypeStatus
	MessageProgressBar     MessageType = abi.MessageTypeProgress
)

// LogLevel is a host log level.
type LogLevel int32

const (
	LogLevelDebug LogLevel = abi.LogDebug
	LogLevelInfo  LogLevel = abi.LogInfo
	LogLevelWarn  LogLevel = abi.LogWarn
	LogLevelError LogLevel = abi.LogError
)

// Message is the payload of SetMessageExt.
type Message struct {
	Text     string
	Duration uint32 // milliseconds
	Priority uint32
	Level    LogLevel
	Target   MessageTarget
	Type     MessageType
	Progress MessageProgress
}

// SensorAction enables or disables a sensor.
type SensorAction uint32

const (
	SensorAccelerometerEnable  SensorAction = abi.SensorAccelerometerEnable
	SensorAccelerometerDisable SensorAction = abi.SensorAccelerometerDisable
	SensorGyroscopeEnable      SensorAction = abi.SensorGyroscopeEnable
	SensorGyroscopeDisable     SensorAction = abi.SensorGyroscopeDisable
	SensorIlluminanceEnable    SensorAction = abi.SensorIlluminanceEnable
	SensorIlluminanceDisable   SensorAction = abi.SensorIlluminanceDisable
)

// Position is a location fix.
type Position struct {
	Lat           float64
	Lon           float64
	HorizAccuracy float64
	VertAccuracy  float64
}

// ThrottleState is the host's current pacing.
type ThrottleState struct {
	Mode uint32
	Rate float32
}

// FastForwardingOverride requests host fast-forward behaviour.
type FastForwardingOverride struct {
	Ratio         float32
	FastForward   bool
	Notification  bool
	InhibitToggle bool
}

// Region is the value reported from retro_get_region.
type Region uint32

const (
	RegionNTSC Region = abi.RegionNTSC
	RegionPAL  Region = abi.RegionPAL
)

// SystemInfo is static information about the core.
type SystemInfo struct {
	LibraryName     string
	LibraryVersion  string
	ValidExtensions []string
	NeedFullpath    bool
	BlockExtract    bool
}

// GameGeometry describes the video output size.
type GameGeometry struct {
	BaseWidth   uint32
	BaseHeight  uint32
	MaxWidth    uint32
	MaxHeight   uint32
	AspectRatio float32
}

// ABI converts to the C layout.
func (g GameGeometry) ABI() abi.GameGeometry {
	return abi.GameGeometry{
		BaseWidth:   g.BaseWidth,
		BaseHeight:  g.BaseHeight,
		MaxWidth:    g.MaxWidth,
		MaxHeight:   g.MaxHeight,
		AspectRatio: g.AspectRatio,
	}
}

// SystemTiming holds the core's frame and sample rates.
type SystemTiming struct {
	FPS        float64
	SampleRate float64
}

// SystemAVInfo combines geometry and timing.
type SystemAVInfo struct {
	Geometry GameGeometry
	Timing   SystemTiming
}

// ABI converts to the C layout.
func (i SystemAVInfo) ABI() abi.SystemAVInfo {
	return abi.SystemAVInfo{
		Geometry: i.Geometry.ABI(),
		Timing:   abi.SystemTiming{FPS: i.Timing.FPS, SampleRate: i.Timing.SampleRate},
	}
}

// FrameTimeReference returns the frame time reference in microseconds for
// a frame rate.
func FrameTimeReference(fps float64) int64 {
	return int64(math.Round(1_000_000 / fps))
}

// GameInfo is the content handed to LoadGame. Data aliases host memory and
// is valid only for the duration of the call.
type GameInfo struct {
	Path string
	Data []byte
	Meta string
}

func gameInfoFromABI(g *abi.GameInfo) *GameInfo {
	if g == nil {
		return nil
	}
	info := &GameInfo{
		Path: goStringUnchecked(g.Path),
		Meta: goStringUnchecked(g.Meta),
	}
	if g.Data != nil && g.Size > 0 {
		info.Data = unsafe.Slice((*byte)(g.Data), g.Size)
	}
	return info
}

// GameInfoExt is extended content information.
type GameInfoExt struct {
	FullPath       string
	ArchivePath    string
	ArchiveFile    string
	Dir            string
	Name           string
	Ext            string
	Meta           string
	Data           []byte
	FileInArchive  bool
	PersistentData bool
}
