package abi

import "unsafe"

// SystemInfo mirrors struct retro_system_info.
type SystemInfo struct {
	LibraryName     *byte
	LibraryVersion  *byte
	ValidExtensions *byte
	NeedFullpath    bool
	BlockExtract    bool
}

// GameGeometry mirrors struct retro_game_geometry.
type GameGeometry struct {
	BaseWidth   uint32
	BaseHeight  uint32
	MaxWidth    uint32
	MaxHeight   uint32
	AspectRatio float32
}

// SystemTiming mirrors struct retro_system_timing.
type SystemTiming struct {
	FPS        float64
	SampleRate float64
}

// SystemAVInfo mirrors struct retro_system_av_info.
type SystemAVInfo struct {
	Geometry GameGeometry
	Timing   SystemTiming
}

// GameInfo mirrors struct retro_game_info.
type GameInfo struct {
	Path *byte
	Data unsafe.Pointer
	Size uintptr
	Meta *byte
}

// GameInfoExt mirrors struct retro_game_info_ext.
type GameInfoExt struct {
	FullPath       *byte
	ArchivePath    *byte
	ArchiveFile    *byte
	Dir            *byte
	Name           *byte
	Ext            *byte
	Meta           *byte
	Data           unsafe.Pointer
	Size           uintptr
	FileInArchive  bool
	PersistentData bool
}

// Variable mirrors struct retro_variable.
type Variable struct {
	Key   *byte
	Value *byte
}

// Message mirrors struct retro_message.
type Message struct {
	Msg    *byte
	Frames uint32
}

// MessageExt mirrors struct retro_message_ext.
type MessageExt struct {
	Msg      *byte
	Duration uint32
	Priority uint32
	Level    int32
	Target   int32
	Type     int32
	Progress int8
}

// InputDescriptor mirrors struct retro_input_descriptor.
type InputDescriptor struct {
	Port        uint32
	Device      uint32
	Index       uint32
	ID          uint32
	Description *byte
}

// ControllerDescription mirrors struct retro_controller_description.
type ControllerDescription struct {
	Desc *byte
	ID   uint32
}

// ControllerInfo mirrors struct retro_controller_info.
type ControllerInfo struct {
	Types    *ControllerDescription
	NumTypes uint32
}

// SubsystemMemoryInfo mirrors struct retro_subsystem_memory_info.
type SubsystemMemoryInfo struct {
	Extension *byte
	Type      uint32
}

// SubsystemRomInfo mirrors struct retro_subsystem_rom_info.
type SubsystemRomInfo struct {
	Desc            *byte
	ValidExtensions *byte
	NeedFullpath    bool
	BlockExtract    bool
	Required        bool
	Memory          *SubsystemMemoryInfo
	NumMemory       uint32
}

// SubsystemInfo mirrors struct retro_subsystem_info.
type SubsystemInfo struct {
	Desc    *byte
	Ident   *byte
	Roms    *SubsystemRomInfo
	NumRoms uint32
	ID      uint32
}

// MemoryDescriptor mirrors struct retro_memory_descriptor.
type MemoryDescriptor struct {
	Flags      uint64
	Ptr        unsafe.Pointer
	Offset     uintptr
	Start      uintptr
	Select     uintptr
	Disconnect uintptr
	Len        uintptr
	AddrSpace  *byte
}

// MemoryMap mirrors struct retro_memory_map.
type MemoryMap struct {
	Descriptors    *MemoryDescriptor
	NumDescriptors uint32
}

// Framebuffer mirrors struct retro_framebuffer.
type Framebuffer struct {
	Data        unsafe.Pointer
	Width       uint32
	Height      uint32
	Pitch       uintptr
	Format      int32
	AccessFlags uint32
	MemoryFlags uint32
}

// FastForwardingOverride mirrors struct retro_fastforwarding_override.
type FastForwardingOverride struct {
	Ratio         float32
	FastForward   bool
	Notification  bool
	InhibitToggle bool
}

// ThrottleState mirrors struct retro_throttle_state.
type ThrottleState struct {
	Mode uint32
	Rate float32
}

// SystemContentInfoOverride mirrors struct
// retro_system_content_info_override.
type SystemContentInfoOverride struct {
	Extensions     *byte
	NeedFullpath   bool
	PersistentData bool
}

// KeyboardCallback mirrors struct retro_keyboard_callback.
type KeyboardCallback struct {
	Callback uintptr
}

// DiskControlCallback mirrors struct retro_disk_control_callback.
type DiskControlCallback struct {
	SetEjectState     uintptr
	GetEjectState     uintptr
	GetImageIndex     uintptr
	SetImageIndex     uintptr
	GetNumImages      uintptr
	ReplaceImageIndex uintptr
	AddImageIndex     uintptr
}

// DiskControlExtCallback mirrors struct retro_disk_control_ext_callback.
type DiskControlExtCallback struct {
	SetEjectState     uintptr
	GetEjectState     uintptr
	GetImageIndex     uintptr
	SetImageIndex     uintptr
	GetNumImages      uintptr
	ReplaceImageIndex uintptr
	AddImageIndex     uintptr
	SetInitialImage   uintptr
	GetImagePath      uintptr
	GetImageLabel     uintptr
}

// FrameTimeCallback mirrors struct retro_frame_time_callback.
type FrameTimeCallback struct {
	Callback  uintptr
	Reference int64
}

// AudioCallback mirrors struct retro_audio_callback.
type AudioCallback struct {
	Callback uintptr
	SetState uintptr
}

// AudioBufferStatusCallback mirrors struct
// retro_audio_buffer_status_callback.
type AudioBufferStatusCallback struct {
	Callback uintptr
}

// GetProcAddressInterface mirrors struct retro_get_proc_address_interface.
type GetProcAddressInterface struct {
	GetProcAddress uintptr
}

// CoreOptionsUpdateDisplayCallback mirrors struct
// retro_core_options_update_display_callback.
type CoreOptionsUpdateDisplayCallback struct {
	Callback uintptr
}

// HWRenderCallback mirrors struct retro_hw_render_callback.
type HWRenderCallback struct {
	ContextType           int32
	ContextReset          uintptr
	GetCurrentFramebuffer uintptr
	GetProcAddress        uintptr
	Depth                 bool
	Stencil               bool
	BottomLeftOrigin      bool
	VersionMajor          uint32
	VersionMinor          uint32
	CacheContext          bool
	ContextDestroy        uintptr
	DebugContext          bool
}
