package emucore

// D-pad bits of the input bitmask. System buttons start at bit 4.
const (
	ButtonUp    = 0
	ButtonDown  = 1
	ButtonLeft  = 2
	ButtonRight = 3
)

// Button is a system button beyond the d-pad.
type Button struct {
	Name string // shown in the host input descriptors
	ID   int    // bit position in the uint32 bitmask (4+)
}

type CoreOptionType int

const (
	// CoreOptionBool offers "true" and "false".
	CoreOptionBool CoreOptionType = iota
	// CoreOptionSelect offers Values.
	CoreOptionSelect
	// CoreOptionRange offers Min to Max in steps of Step.
	CoreOptionRange
)

// CoreOptionCategory is the host category an option is listed under.
type CoreOptionCategory int

const (
	CoreOptionCategoryAudio CoreOptionCategory = iota
	CoreOptionCategoryVideo
	CoreOptionCategoryInput
	CoreOptionCategoryCore
)

// CoreOption is an emulator setting declared to the host as a core option.
// Key must be unique within the system and is declared with the core name
// prefix.
type CoreOption struct {
	Key         string
	Label       string
	Description string
	Type        CoreOptionType
	Default     string
	Values      []string
	Min         int
	Max         int
	Step        int
	Category    CoreOptionCategory
}

// SystemInfo describes the emulated system to the libretro adapter.
type SystemInfo struct {
	// CoreName is the libretro library name. It also prefixes option keys.
	CoreName    string
	CoreVersion string

	// Extensions lists the content extensions, with or without a dot.
	Extensions []string

	ScreenWidth     int
	MaxScreenHeight int

	// PixelAspectRatio is the width of one pixel relative to its height.
	// Zero means square pixels.
	PixelAspectRatio float64

	SampleRate int
	Players    int
	Buttons    []Button

	CoreOptions []CoreOption

	// SerializeSize is the largest save state in bytes. Zero makes the
	// adapter measure a state of the running emulator.
	SerializeSize int

	// ConsoleID is the achievements console id. Zero disables
	// achievement support.
	ConsoleID int
}

// CoreFactory builds emulators for loaded content.
type CoreFactory interface {
	SystemInfo() SystemInfo

	// CreateEmulator builds an emulator for rom running in region.
	CreateEmulator(rom []byte, region Region) (Emulator, error)

	// DetectRegion guesses the region of rom. ok is false when the content
	// carries no region information and the result is a default.
	DetectRegion(rom []byte) (r Region, ok bool)
}
