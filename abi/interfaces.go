package abi

// RumbleInterface mirrors struct retro_rumble_interface.
type RumbleInterface struct {
	SetRumbleState uintptr
}

// PerfCounter mirrors struct retro_perf_counter.
type PerfCounter struct {
	Ident      *byte
	Start      uint64
	Total      uint64
	CallCnt    uint64
	Registered bool
}

// PerfCallback mirrors struct retro_perf_callback.
type PerfCallback struct {
	GetTimeUsec    uintptr
	GetCPUFeatures uintptr
	GetPerfCounter uintptr
	PerfRegister   uintptr
	PerfStart      uintptr
	PerfStop       uintptr
	PerfLog        uintptr
}

// SensorInterface mirrors struct retro_sensor_interface.
type SensorInterface struct {
	SetSensorState uintptr
	GetSensorInput uintptr
}

// CameraCallback mirrors struct retro_camera_callback.
type CameraCallback struct {
	Caps                uint64
	Width               uint32
	Height              uint32
	Start               uintptr
	Stop                uintptr
	FrameRawFramebuffer uintptr
	FrameOpenGLTexture  uintptr
	Initialized         uintptr
	Deinitialized       uintptr
}

// LocationCallback mirrors struct retro_location_callback.
type LocationCallback struct {
	Start         uintptr
	Stop          uintptr
	GetPosition   uintptr
	SetInterval   uintptr
	Initialized   uintptr
	Deinitialized uintptr
}

// LEDInterface mirrors struct retro_led_interface.
type LEDInterface struct {
	SetLEDState uintptr
}

// MIDIInterface mirrors struct retro_midi_interface.
type MIDIInterface struct {
	InputEnabled  uintptr
	OutputEnabled uintptr
	Read          uintptr
	Write         uintptr
	Flush         uintptr
}

// LogCallback mirrors struct retro_log_callback.
type LogCallback struct {
	Log uintptr
}

// VFSInterfaceInfo mirrors struct retro_vfs_interface_info.
type VFSInterfaceInfo struct {
	RequiredInterfaceVersion uint32
	Iface                    *VFSInterface
}

// VFSInterface mirrors struct retro_vfs_interface. Fields after Rename
// exist only from the interface version noted beside them.
type VFSInterface struct {
	GetPath uintptr
	Open    uintptr
	Close   uintptr
	Size    uintptr
	Tell    uintptr
	Seek    uintptr
	Read    uintptr
	Write   uintptr
	Flush   uintptr
	Remove  uintptr
	Rename  uintptr

	// v2
	Truncate uintptr

	// v3
	Stat          uintptr
	Mkdir         uintptr
	Opendir       uintptr
	Readdir       uintptr
	DirentGetName uintptr
	DirentIsDir   uintptr
	Closedir      uintptr
}

// HWRenderInterface mirrors struct retro_hw_render_interface, the common
// header of every render interface.
type HWRenderInterface struct {
	InterfaceType    int32
	InterfaceVersion uint32
}

// HWRenderInterfaceVulkan mirrors struct retro_hw_render_interface_vulkan.
type HWRenderInterfaceVulkan struct {
	InterfaceType       int32
	InterfaceVersion    uint32
	Handle              uintptr
	Instance            uintptr
	GPU                 uintptr
	Device              uintptr
	GetDeviceProcAddr   uintptr
	GetInstanceProcAddr uintptr
	Queue               uintptr
	QueueIndex          uint32
	SetImage            uintptr
	GetSyncIndex        uintptr
	GetSyncIndexMask    uintptr
	SetCommandBuffers   uintptr
	WaitSyncIndex       uintptr
	LockQueue           uintptr
	UnlockQueue         uintptr
	SetSignalSemaphore  uintptr
}

// HWRenderContextNegotiationInterface mirrors struct
// retro_hw_render_context_negotiation_interface.
type HWRenderContextNegotiationInterface struct {
	InterfaceType    int32
	InterfaceVersion uint32
}

// HWRenderContextNegotiationInterfaceVulkan mirrors struct
// retro_hw_render_context_negotiation_interface_vulkan (version 1).
type HWRenderContextNegotiationInterfaceVulkan struct {
	InterfaceType      int32
	InterfaceVersion   uint32
	GetApplicationInfo uintptr
	CreateDevice       uintptr
	DestroyDevice      uintptr
}
