// Package abi mirrors the libretro C ABI: environment command identifiers,
// numeric constants and struct layouts matching libretro.h on 64-bit targets.
//
// Function pointers are carried as uintptr, C strings as *byte, C enums as
// int32 and size_t as uintptr. Nothing in this package calls into the host.
package abi

// APIVersion is the value returned from retro_api_version.
const APIVersion = 1

// EnvironmentExperimental marks commands that are not yet part of the
// stable API.
const EnvironmentExperimental = 0x10000

// EnvironmentPrivate marks frontend-private commands.
const EnvironmentPrivate = 0x20000

// Environment command identifiers.
const (
	EnvSetRotation                         = 1
	EnvGetOverscan                         = 2
	EnvGetCanDupe                          = 3
	EnvSetMessage                          = 6
	EnvShutdown                            = 7
	EnvSetPerformanceLevel                 = 8
	EnvGetSystemDirectory                  = 9
	EnvSetPixelFormat                      = 10
	EnvSetInputDescriptors                 = 11
	EnvSetKeyboardCallback                 = 12
	EnvSetDiskControlInterface             = 13
	EnvSetHWRender                         = 14
	EnvGetVariable                         = 15
	EnvSetVariables                        = 16
	EnvGetVariableUpdate                   = 17
	EnvSetSupportNoGame                    = 18
	EnvGetLibretroPath                     = 19
	EnvSetFrameTimeCallback                = 21
	EnvSetAudioCallback                    = 22
	EnvGetRumbleInterface                  = 23
	EnvGetInputDeviceCapabilities          = 24
	EnvGetSensorInterface                  = 25 | EnvironmentExperimental
	EnvGetCameraInterface                  = 26 | EnvironmentExperimental
	EnvGetLogInterface                     = 27
	EnvGetPerfInterface                    = 28
	EnvGetLocationInterface                = 29
	EnvGetCoreAssetsDirectory              = 30
	EnvGetSaveDirectory                    = 31
	EnvSetSystemAVInfo                     = 32
	EnvSetProcAddressCallback              = 33
	EnvSetSubsystemInfo                    = 34
	EnvSetControllerInfo                   = 35
	EnvSetMemoryMaps                       = 36 | EnvironmentExperimental
	EnvSetGeometry                         = 37
	EnvGetUsername                         = 38
	EnvGetLanguage                         = 39
	EnvGetCurrentSoftwareFramebuffer       = 40 | EnvironmentExperimental
	EnvGetHWRenderInterface                = 41 | EnvironmentExperimental
	EnvSetSupportAchievements              = 42 | EnvironmentExperimental
	EnvSetHWRenderContextNegotiationIface  = 43 | EnvironmentExperimental
	EnvSetSerializationQuirks              = 44
	EnvSetHWSharedContext                  = 44 | EnvironmentExperimental
	EnvGetVFSInterface                     = 45 | EnvironmentExperimental
	EnvGetLEDInterface                     = 46 | EnvironmentExperimental
	EnvGetAudioVideoEnable                 = 47 | EnvironmentExperimental
	EnvGetMIDIInterface                    = 48 | EnvironmentExperimental
	EnvGetFastForwarding                   = 49 | EnvironmentExperimental
	EnvGetTargetRefreshRate                = 50 | EnvironmentExperimental
	EnvGetInputBitmasks                    = 51 | EnvironmentExperimental
	EnvGetCoreOptionsVersion               = 52
	EnvSetCoreOptions                      = 53
	EnvSetCoreOptionsIntl                  = 54
	EnvSetCoreOptionsDisplay               = 55
	EnvGetPreferredHWRender                = 56
	EnvGetDiskControlInterfaceVersion      = 57
	EnvSetDiskControlExtInterface          = 58
	EnvGetMessageInterfaceVersion          = 59
	EnvSetMessageExt                       = 60
	EnvGetInputMaxUsers                    = 61
	EnvSetAudioBufferStatusCallback        = 62
	EnvSetMinimumAudioLatency              = 63
	EnvSetFastForwardingOverride           = 64
	EnvSetContentInfoOverride              = 65
	EnvGetGameInfoExt                      = 66
	EnvSetCoreOptionsV2                    = 67
	EnvSetCoreOptionsV2Intl                = 68
	EnvSetCoreOptionsUpdateDisplayCallback = 69
	EnvSetVariable                         = 70
	EnvGetThrottleState                    = 71 | EnvironmentExperimental
	EnvGetSavestateContext                 = 72 | EnvironmentExperimental
)

// EnvName returns the RETRO_ENVIRONMENT_* name of a command id, or "" when
// the id is unknown.
func EnvName(cmd uint32) string {
	return envNames[cmd]
}

var envNames = map[uint32]string{
	EnvSetRotation:                         "SET_ROTATION",
	EnvGetOverscan:                         "GET_OVERSCAN",
	EnvGetCanDupe:                          "GET_CAN_DUPE",
	EnvSetMessage:                          "SET_MESSAGE",
	EnvShutdown:                            "SHUTDOWN",
	EnvSetPerformanceLevel:                 "SET_PERFORMANCE_LEVEL",
	EnvGetSystemDirectory:                  "GET_SYSTEM_DIRECTORY",
	EnvSetPixelFormat:                      "SET_PIXEL_FORMAT",
	EnvSetInputDescriptors:                 "SET_INPUT_DESCRIPTORS",
	EnvSetKeyboardCallback:                 "SET_KEYBOARD_CALLBACK",
	EnvSetDiskControlInterface:             "SET_DISK_CONTROL_INTERFACE",
	EnvSetHWRender:                         "SET_HW_RENDER",
	EnvGetVariable:                         "GET_VARIABLE",
	EnvSetVariables:                        "SET_VARIABLES",
	EnvGetVariableUpdate:                   "GET_VARIABLE_UPDATE",
	EnvSetSupportNoGame:                    "SET_SUPPORT_NO_GAME",
	EnvGetLibretroPath:                     "GET_LIBRETRO_PATH",
	EnvSetFrameTimeCallback:                "SET_FRAME_TIME_CALLBACK",
	EnvSetAudioCallback:                    "SET_AUDIO_CALLBACK",
	EnvGetRumbleInterface:                  "GET_RUMBLE_INTERFACE",
	EnvGetInputDeviceCapabilities:          "GET_INPUT_DEVICE_CAPABILITIES",
	EnvGetSensorInterface:                  "GET_SENSOR_INTERFACE",
	EnvGetCameraInterface:                  "GET_CAMERA_INTERFACE",
	EnvGetLogInterface:                     "GET_LOG_INTERFACE",
	EnvGetPerfInterface:                    "GET_PERF_INTERFACE",
	EnvGetLocationInterface:                "GET_LOCATION_INTERFACE",
	EnvGetCoreAssetsDirectory:              "GET_CORE_ASSETS_DIRECTORY",
	EnvGetSaveDirectory:                    "GET_SAVE_DIRECTORY",
	EnvSetSystemAVInfo:                     "SET_SYSTEM_AV_INFO",
	EnvSetProcAddressCallback:              "SET_PROC_ADDRESS_CALLBACK",
	EnvSetSubsystemInfo:                    "SET_SUBSYSTEM_INFO",
	EnvSetControllerInfo:                   "SET_CONTROLLER_INFO",
	EnvSetMemoryMaps:                       "SET_MEMORY_MAPS",
	EnvSetGeometry:                         "SET_GEOMETRY",
	EnvGetUsername:                         "GET_USERNAME",
	EnvGetLanguage:                         "GET_LANGUAGE",
	EnvGetCurrentSoftwareFramebuffer:       "GET_CURRENT_SOFTWARE_FRAMEBUFFER",
	EnvGetHWRenderInterface:                "GET_HW_RENDER_INTERFACE",
	EnvSetSupportAchievements:              "SET_SUPPORT_ACHIEVEMENTS",
	EnvSetHWRenderContextNegotiationIface:  "SET_HW_RENDER_CONTEXT_NEGOTIATION_INTERFACE",
	EnvSetSerializationQuirks:              "SET_SERIALIZATION_QUIRKS",
	EnvSetHWSharedContext:                  "SET_HW_SHARED_CONTEXT",
	EnvGetVFSInterface:                     "GET_VFS_INTERFACE",
	EnvGetLEDInterface:                     "GET_LED_INTERFACE",
	EnvGetAudioVideoEnable:                 "GET_AUDIO_VIDEO_ENABLE",
	EnvGetMIDIInterface:                    "GET_MIDI_INTERFACE",
	EnvGetFastForwarding:                   "GET_FASTFORWARDING",
	EnvGetTargetRefreshRate:                "GET_TARGET_REFRESH_RATE",
	EnvGetInputBitmasks:                    "GET_INPUT_BITMASKS",
	EnvGetCoreOptionsVersion:               "GET_CORE_OPTIONS_VERSION",
	EnvSetCoreOptions:                      "SET_CORE_OPTIONS",
	EnvSetCoreOptionsIntl:                  "SET_CORE_OPTIONS_INTL",
	EnvSetCoreOptionsDisplay:               "SET_CORE_OPTIONS_DISPLAY",
	EnvGetPreferredHWRender:                "GET_PREFERRED_HW_RENDER",
	EnvGetDiskControlInterfaceVersion:      "GET_DISK_CONTROL_INTERFACE_VERSION",
	EnvSetDiskControlExtInterface:          "SET_DISK_CONTROL_EXT_INTERFACE",
	EnvGetMessageInterfaceVersion:          "GET_MESSAGE_INTERFACE_VERSION",
	EnvSetMessageExt:                       "SET_MESSAGE_EXT",
	EnvGetInputMaxUsers:                    "GET_INPUT_MAX_USERS",
	EnvSetAudioBufferStatusCallback:        "SET_AUDIO_BUFFER_STATUS_CALLBACK",
	EnvSetMinimumAudioLatency:              "SET_MINIMUM_AUDIO_LATENCY",
	EnvSetFastForwardingOverride:           "SET_FASTFORWARDING_OVERRIDE",
	EnvSetContentInfoOverride:              "SET_CONTENT_INFO_OVERRIDE",
	EnvGetGameInfoExt:                      "GET_GAME_INFO_EXT",
	EnvSetCoreOptionsV2:                    "SET_CORE_OPTIONS_V2",
	EnvSetCoreOptionsV2Intl:                "SET_CORE_OPTIONS_V2_INTL",
	EnvSetCoreOptionsUpdateDisplayCallback: "SET_CORE_OPTIONS_UPDATE_DISPLAY_CALLBACK",
	EnvSetVariable:                         "SET_VARIABLE",
	EnvGetThrottleState:                    "GET_THROTTLE_STATE",
	EnvGetSavestateContext:                 "GET_SAVESTATE_CONTEXT",
}
