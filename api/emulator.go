package emucore

// Emulator is a frame-stepped emulator instance driven by a libretro
// adapter. One instance exists per loaded content.
type Emulator interface {
	// RunFrame emulates one video frame.
	RunFrame()

	// GetFramebuffer returns the last frame as RGBA pixels. The adapter
	// reads it before the next RunFrame.
	GetFramebuffer() []byte

	// GetFramebufferStride returns the bytes per framebuffer row.
	GetFramebufferStride() int

	// GetActiveHeight returns the visible lines of the last frame.
	GetActiveHeight() int

	// GetAudioSamples returns the interleaved stereo samples of the last
	// frame.
	GetAudioSamples() []int16

	// SetInput sets the button bitmask of player for the next frame.
	SetInput(player int, buttons uint32)

	GetRegion() Region
	SetRegion(region Region)

	// GetTiming returns the timing of the current region.
	GetTiming() Timing

	// SetOption applies a core option. key is the option key without the
	// core name prefix.
	SetOption(key string, value string)

	Close()
}

// SaveStater is implemented by emulators that support save states.
type SaveStater interface {
	Serialize() ([]byte, error)
	Deserialize(data []byte) error
}

// BatterySaver is implemented by emulators with battery backed RAM that do
// not describe it through MemoryMapper.
type BatterySaver interface {
	// HasSRAM reports whether the loaded content uses battery RAM.
	HasSRAM() bool

	// GetSRAM returns a copy of the battery RAM.
	GetSRAM() []byte

	SetSRAM(data []byte)
}

// MemoryType identifies a memory region the host may read or persist.
type MemoryType int

const (
	// MemorySaveRAM is persisted by the host as the save file.
	MemorySaveRAM MemoryType = iota
	MemorySystemRAM
	MemoryVideoRAM
)

// MemoryRegion is one region of a MemoryMapper and its size in bytes.
type MemoryRegion struct {
	Type MemoryType
	Size int
}

// MemoryMapper is implemented by emulators that expose memory regions.
// The sizes returned by MemoryMap must not change while content is loaded.
type MemoryMapper interface {
	MemoryMap() []MemoryRegion

	// ReadRegion returns a copy of a region.
	ReadRegion(t MemoryType) []byte

	// WriteRegion replaces the contents of a region.
	WriteRegion(t MemoryType, data []byte)
}
