package retro

import (
	"fmt"
	"runtime"
	"strings"
	"unsafe"

	"github.com/user-none/goretro/abi"
)

// SetRotation rotates the video output.
func (c *GenericContext) SetRotation(r Rotation) error {
	return Set(c.env, abi.EnvSetRotation, r.EnvValue())
}

// Overscan reports whether the user wants overscan kept.
func (c *GenericContext) Overscan() (bool, error) {
	return Get[bool](c.env, abi.EnvGetOverscan)
}

// CanDupe asks the host whether it accepts duplicated frames.
func (c *GenericContext) CanDupe() (bool, error) {
	return Get[bool](c.env, abi.EnvGetCanDupe)
}

// SetMessage shows msg for the given number of frames.
func (c *GenericContext) SetMessage(msg string, frames uint32) error {
	var mem hostMemory
	p, err := mem.str(msg)
	if err != nil {
		return err
	}
	return mem.call(func() error {
		return Set(c.env, abi.EnvSetMessage, abi.Message{Msg: p, Frames: frames})
	})
}

// SetMessageExt shows a message with level, target and progress. It needs
// message interface version 1.
func (c *GenericContext) SetMessageExt(m Message) error {
	if m.Progress < ProgressIndeterminate || m.Progress > 100 {
		return &InvalidEnumValueError{Type: "MessageProgress", Value: int64(m.Progress)}
	}
	var mem hostMemory
	p, err := mem.str(m.Text)
	if err != nil {
		return err
	}
	return mem.call(func() error {
		return Set(c.env, abi.EnvSetMessageExt, abi.MessageExt{
			Msg:      p,
			Duration: m.Duration,
			Priority: m.Priority,
			Level:    int32(m.Level),
			Target:   int32(m.Target),
			Type:     int32(m.Type),
			Progress: int8(m.Progress),
		})
	})
}

// Shutdown asks the host to exit. The answer is ignored.
func (c *GenericContext) Shutdown() {
	_ = SetPtr(c.env, abi.EnvShutdown, nil)
}

// SystemDirectory returns the host's system (BIOS) directory.
func (c *GenericContext) SystemDirectory() (string, error) {
	return GetPath(c.env, abi.EnvGetSystemDirectory)
}

// SaveDirectory returns the host's save directory.
func (c *GenericContext) SaveDirectory() (string, error) {
	return GetPath(c.env, abi.EnvGetSaveDirectory)
}

// CoreAssetsDirectory returns the directory of the core's assets.
func (c *GenericContext) CoreAssetsDirectory() (string, error) {
	return GetPath(c.env, abi.EnvGetCoreAssetsDirectory)
}

// LibretroPath returns the path the core was loaded from.
func (c *GenericContext) LibretroPath() (string, error) {
	return GetPath(c.env, abi.EnvGetLibretroPath)
}

// Username returns the user's nickname, if one is set.
func (c *GenericContext) Username() (string, bool, error) {
	return GetOptionalPath(c.env, abi.EnvGetUsername)
}

// Language returns the host UI language.
func (c *GenericContext) Language() (Language, error) {
	id, err := Get[uint32](c.env, abi.EnvGetLanguage)
	if err != nil {
		return 0, err
	}
	if id >= abi.LanguageLast {
		return 0, &InvalidEnumValueError{Type: "Language", Value: int64(id)}
	}
	return Language(id), nil
}

// SetInputDescriptors names the inputs the core reads.
func (c *GenericContext) SetInputDescriptors(descs []InputDescriptor) error {
	var mem hostMemory
	out, err := buildInputDescriptors(&mem, descs)
	if err != nil {
		return err
	}
	mem.keep(c.ifaces())
	return SetPtr(c.env, abi.EnvSetInputDescriptors, unsafe.Pointer(&out[0]))
}

// SetControllerInfo lists the device subclasses each port accepts.
func (c *GenericContext) SetControllerInfo(infos []ControllerInfo) error {
	var mem hostMemory
	out, err := buildControllerInfo(&mem, infos)
	if err != nil {
		return err
	}
	mem.keep(c.ifaces())
	return SetPtr(c.env, abi.EnvSetControllerInfo, unsafe.Pointer(&out[0]))
}

// EnableKeyboardCallback routes key events to KeyboardHandler.
func (c *GenericContext) EnableKeyboardCallback() error {
	cb := abi.KeyboardCallback{Callback: c.tramp().Keyboard}
	if err := Set(c.env, abi.EnvSetKeyboardCallback, cb); err != nil {
		return &FailedToEnableError{What: "keyboard callback", Err: err}
	}
	return nil
}

// EnableDiskControlInterface exposes DiskController to the host.
func (c *GenericContext) EnableDiskControlInterface() error {
	d := c.tramp().Disk
	cb := abi.DiskControlCallback{
		SetEjectState:     d.SetEjectState,
		GetEjectState:     d.GetEjectState,
		GetImageIndex:     d.GetImageIndex,
		SetImageIndex:     d.SetImageIndex,
		GetNumImages:      d.GetNumImages,
		ReplaceImageIndex: d.ReplaceImageIndex,
		AddImageIndex:     d.AddImageIndex,
	}
	if err := Set(c.env, abi.EnvSetDiskControlInterface, cb); err != nil {
		return &FailedToEnableError{What: "disk control interface", Err: err}
	}
	return nil
}

// EnableDiskControlExtInterface exposes ExtDiskController to the host. It
// needs disk control interface version 1.
func (c *GenericContext) EnableDiskControlExtInterface() error {
	if v := c.DiskControlInterfaceVersion(); v < 1 {
		return &UnsupportedError{Reason: fmt.Sprintf("disk control interface version %d < 1", v)}
	}
	if err := Set(c.env, abi.EnvSetDiskControlExtInterface, c.tramp().Disk); err != nil {
		return &FailedToEnableError{What: "extended disk control interface", Err: err}
	}
	return nil
}

// DiskControlInterfaceVersion returns 0 when the host does not answer.
func (c *GenericContext) DiskControlInterfaceVersion() uint32 {
	v, _ := Get[uint32](c.env, abi.EnvGetDiskControlInterfaceVersion)
	return v
}

// MessageInterfaceVersion returns 0 when the host does not answer.
func (c *GenericContext) MessageInterfaceVersion() uint32 {
	v, _ := Get[uint32](c.env, abi.EnvGetMessageInterfaceVersion)
	return v
}

// CoreOptionsVersion returns 0 when the host does not answer.
func (c *GenericContext) CoreOptionsVersion() uint32 {
	return coreOptionsVersion(c.env)
}

func coreOptionsVersion(env Environment) uint32 {
	v, _ := Get[uint32](env, abi.EnvGetCoreOptionsVersion)
	return v
}

// InputMaxUsers returns the number of active ports. The bool is false when
// the host does not know.
func (c *GenericContext) InputMaxUsers() (uint32, bool) {
	v, err := Get[uint32](c.env, abi.EnvGetInputMaxUsers)
	return v, err == nil
}

func variable(s scope, key string) (string, bool, error) {
	k, err := internCString(key)
	if err != nil {
		return "", false, err
	}
	var pin runtime.Pinner
	defer pin.Unpin()
	pin.Pin(k)

	v, err := GetMut(s.env, abi.EnvGetVariable, abi.Variable{Key: k})
	if err != nil {
		return "", false, err
	}
	if v.Value == nil {
		return "", false, nil
	}
	val, err := GoString(v.Value)
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func allVariables(s scope) (map[string]string, bool, error) {
	v, err := GetUnchecked[abi.Variable](s.env, abi.EnvGetVariable)
	if err != nil {
		return nil, false, err
	}
	if v.Value == nil {
		return nil, false, nil
	}
	env, err := GoString(v.Value)
	if err != nil {
		return nil, false, err
	}
	vars, err := parseVariables(env)
	if err != nil {
		return nil, false, err
	}
	return vars, true, nil
}

// parseVariables splits "k1=v1;k2=v2;" into a map.
func parseVariables(env string) (map[string]string, error) {
	vars := make(map[string]string)
	env = strings.TrimSuffix(env, ";")
	if env == "" {
		return vars, nil
	}
	for _, pair := range strings.Split(env, ";") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, &KeyValueError{Pair: pair}
		}
		vars[k] = v
	}
	return vars, nil
}

// Variable returns the current value of a core option. The bool is false
// when the host does not know the key.
func (c *GenericContext) Variable(key string) (string, bool, error) {
	return variable(c.scope, key)
}

// AllVariables returns the whole environment string as a map, for hosts
// that answer a query with a null key. The bool is false otherwise.
func (c *GenericContext) AllVariables() (map[string]string, bool, error) {
	return allVariables(c.scope)
}

// Variable returns the current value of a core option.
func (c *OptionsChangedContext) Variable(key string) (string, bool, error) {
	return variable(c.scope, key)
}

// AllVariables returns every core option value.
func (c *OptionsChangedContext) AllVariables() (map[string]string, bool, error) {
	return allVariables(c.scope)
}

// VariableUpdate reports whether any option changed since the last query.
func (c *GenericContext) VariableUpdate() (bool, error) {
	return Get[bool](c.env, abi.EnvGetVariableUpdate)
}

// SupportsGetVariable probes GET_VARIABLE with a null pointer.
func (c *GenericContext) SupportsGetVariable() bool {
	return SetPtr(c.env, abi.EnvGetVariable, nil) == nil
}

// SetVariable changes the value of a core option.
func (c *GenericContext) SetVariable(key, value string) error {
	var mem hostMemory
	k, err := mem.str(key)
	if err != nil {
		return err
	}
	v, err := mem.str(value)
	if err != nil {
		return err
	}
	return mem.call(func() error {
		return Set(c.env, abi.EnvSetVariable, abi.Variable{Key: k, Value: v})
	})
}

// SupportsSetVariable probes SET_VARIABLE with a null pointer.
func (c *GenericContext) SupportsSetVariable() bool {
	return SetPtr(c.env, abi.EnvSetVariable, nil) == nil
}

// SetCoreOptionsDisplay shows or hides an option in the host menu.
func (c *GenericContext) SetCoreOptionsDisplay(key string, visible bool) error {
	var mem hostMemory
	k, err := mem.str(key)
	if err != nil {
		return err
	}
	return mem.call(func() error {
		return Set(c.env, abi.EnvSetCoreOptionsDisplay, abi.CoreOptionDisplay{Key: k, Visible: visible})
	})
}

// EnableAudioCallback lets the host pull audio through AudioWriter.
func (c *GenericContext) EnableAudioCallback() error {
	t := c.tramp()
	cb := abi.AudioCallback{Callback: t.Audio, SetState: t.AudioSetState}
	if err := Set(c.env, abi.EnvSetAudioCallback, cb); err != nil {
		return &FailedToEnableError{What: "audio callback", Err: err}
	}
	return nil
}

// EnableAudioBufferStatusCallback reports host buffer occupancy to
// AudioBufferStatusHandler.
func (c *GenericContext) EnableAudioBufferStatusCallback() error {
	cb := abi.AudioBufferStatusCallback{Callback: c.tramp().AudioBufferStatus}
	if err := Set(c.env, abi.EnvSetAudioBufferStatusCallback, cb); err != nil {
		return &FailedToEnableError{What: "audio buffer status callback", Err: err}
	}
	return nil
}

// DisableAudioBufferStatusCallback stops buffer status reports.
func (c *GenericContext) DisableAudioBufferStatusCallback() error {
	return SetPtr(c.env, abi.EnvSetAudioBufferStatusCallback, nil)
}

// LogInterface queries the raw host log interface.
func (c *GenericContext) LogInterface() (abi.LogCallback, error) {
	return GetUnchecked[abi.LogCallback](c.env, abi.EnvGetLogInterface)
}

// SoftwareFramebuffer issues GET_CURRENT_SOFTWARE_FRAMEBUFFER with req and
// returns the host answer unchecked. RunContext.CurrentFramebuffer is the
// checked variant.
func (c *GenericContext) SoftwareFramebuffer(req abi.Framebuffer) (abi.Framebuffer, error) {
	return GetMut(c.env, abi.EnvGetCurrentSoftwareFramebuffer, req)
}

// AudioVideoEnable returns which outputs the host consumes.
func (c *GenericContext) AudioVideoEnable() (AudioVideoEnable, error) {
	v, err := Get[uint32](c.env, abi.EnvGetAudioVideoEnable)
	if err != nil {
		return 0, err
	}
	return checkFlags(AudioVideoEnable(v), audioVideoEnableAll, c.strict())
}

// FastForwarding reports whether the host is fast-forwarding.
func (c *GenericContext) FastForwarding() (bool, error) {
	return Get[bool](c.env, abi.EnvGetFastForwarding)
}

// TargetRefreshRate returns the refresh rate the host is pacing to.
func (c *GenericContext) TargetRefreshRate() (float32, error) {
	return Get[float32](c.env, abi.EnvGetTargetRefreshRate)
}

// InputBitmasks reports whether JoypadMask queries are supported. The
// host answers through the callback result.
func (c *GenericContext) InputBitmasks() bool {
	return SetPtr(c.env, abi.EnvGetInputBitmasks, nil) == nil
}

// SupportsFastForwardingOverride probes the override with a null pointer.
func (c *GenericContext) SupportsFastForwardingOverride() bool {
	return SetPtr(c.env, abi.EnvSetFastForwardingOverride, nil) == nil
}

// SetFastForwardingOverride overrides the host fast-forward state.
func (c *GenericContext) SetFastForwardingOverride(o FastForwardingOverride) error {
	return Set(c.env, abi.EnvSetFastForwardingOverride, abi.FastForwardingOverride{
		Ratio:         o.Ratio,
		FastForward:   o.FastForward,
		Notification:  o.Notification,
		InhibitToggle: o.InhibitToggle,
	})
}

// ThrottleState returns the host's current pacing mode and rate.
func (c *GenericContext) ThrottleState() (ThrottleState, error) {
	v, err := GetUnchecked[abi.ThrottleState](c.env, abi.EnvGetThrottleState)
	if err != nil {
		return ThrottleState{}, err
	}
	return ThrottleState{Mode: v.Mode, Rate: v.Rate}, nil
}

// SavestateContext tells why the host is taking a savestate.
func (c *GenericContext) SavestateContext() (SavestateContext, error) {
	v, err := Get[int32](c.env, abi.EnvGetSavestateContext)
	if err != nil {
		return 0, err
	}
	sc := SavestateContext(v)
	if sc < SavestateNormal || sc > SavestateRollbackNetplay {
		return 0, &InvalidEnumValueError{Type: "SavestateContext", Value: int64(v)}
	}
	return sc, nil
}

// SetVariables declares legacy core options. Values use the
// "Description; a|b|c" form with the default first.
func (c *SetEnvironmentContext) SetVariables(vars []Variable) error {
	return setVariables(c.scope, vars)
}

func setVariables(s scope, vars []Variable) error {
	var mem hostMemory
	out, err := buildVariables(&mem, vars)
	if err != nil {
		return err
	}
	mem.keep(s.ifaces())
	return SetPtr(s.env, abi.EnvSetVariables, unsafe.Pointer(&out[0]))
}

// SetSupportNoGame tells the host the core can start without content.
func (c *SetEnvironmentContext) SetSupportNoGame(supported bool) error {
	return Set(c.env, abi.EnvSetSupportNoGame, supported)
}

// SetProcAddressCallback registers a raw proc address interface.
func (c *SetEnvironmentContext) SetProcAddressCallback(cb abi.GetProcAddressInterface) error {
	return Set(c.env, abi.EnvSetProcAddressCallback, cb)
}

// EnableProcAddressInterface lets the host look up functions through
// ProcAddressProvider.
func (c *SetEnvironmentContext) EnableProcAddressInterface() error {
	err := c.SetProcAddressCallback(abi.GetProcAddressInterface{GetProcAddress: c.tramp().GetProcAddress})
	if err != nil {
		return &FailedToEnableError{What: "proc address interface", Err: err}
	}
	return nil
}

// SetSubsystemInfo declares the special content types LoadGameSpecial
// accepts.
func (c *SetEnvironmentContext) SetSubsystemInfo(infos []SubsystemInfo) error {
	var mem hostMemory
	out, err := buildSubsystemInfo(&mem, infos)
	if err != nil {
		return err
	}
	mem.keep(c.ifaces())
	if err := SetPtr(c.env, abi.EnvSetSubsystemInfo, unsafe.Pointer(&out[0])); err != nil {
		return err
	}
	c.d.setSubsystems(infos)
	return nil
}

// SupportsContentInfoOverride probes the override with a null pointer.
func (c *SetEnvironmentContext) SupportsContentInfoOverride() bool {
	return SetPtr(c.env, abi.EnvSetContentInfoOverride, nil) == nil
}

// SetContentInfoOverride overrides SystemInfo loading rules per extension.
func (c *SetEnvironmentContext) SetContentInfoOverride(overrides []ContentInfoOverride) error {
	var mem hostMemory
	out, err := buildContentInfoOverrides(&mem, overrides)
	if err != nil {
		return err
	}
	mem.keep(c.ifaces())
	return SetPtr(c.env, abi.EnvSetContentInfoOverride, unsafe.Pointer(&out[0]))
}

// SetCoreOptionsUpdateDisplayCallback registers a raw display callback.
func (c *SetEnvironmentContext) SetCoreOptionsUpdateDisplayCallback(cb abi.CoreOptionsUpdateDisplayCallback) error {
	return Set(c.env, abi.EnvSetCoreOptionsUpdateDisplayCallback, cb)
}

// EnableOptionsUpdateDisplayCallback lets the host ask
// OptionsDisplayUpdater to refresh option visibility.
func (c *SetEnvironmentContext) EnableOptionsUpdateDisplayCallback() error {
	cb := abi.CoreOptionsUpdateDisplayCallback{Callback: c.tramp().OptionsUpdateDisplay}
	if err := c.SetCoreOptionsUpdateDisplayCallback(cb); err != nil {
		return &FailedToEnableError{What: "core options update display callback", Err: err}
	}
	return nil
}

// SetSupportAchievements tells the host the memory map supports
// achievements.
func (c *InitContext) SetSupportAchievements(supported bool) error {
	return Set(c.env, abi.EnvSetSupportAchievements, supported)
}

func setMemoryMaps(s scope, descs []MemoryDescriptor) error {
	var mem hostMemory
	mm, err := buildMemoryMap(&mem, descs)
	if err != nil {
		return err
	}
	mem.keep(s.ifaces())
	return Set(s.env, abi.EnvSetMemoryMaps, mm)
}

// SetMemoryMaps describes the emulated address space.
func (c *InitContext) SetMemoryMaps(descs []MemoryDescriptor) error {
	return setMemoryMaps(c.scope, descs)
}

// SetMemoryMaps describes the emulated address space.
func (c *LoadGameContext) SetMemoryMaps(descs []MemoryDescriptor) error {
	return setMemoryMaps(c.scope, descs)
}

func setSerializationQuirks(s scope, q SerializationQuirks) (SerializationQuirks, error) {
	v, err := GetMut(s.env, abi.EnvSetSerializationQuirks, uint64(q))
	if err != nil {
		return 0, err
	}
	return SerializationQuirks(v), nil
}

// SetSerializationQuirks declares savestate limitations and returns the
// quirks the host accepted.
func (c *InitContext) SetSerializationQuirks(q SerializationQuirks) (SerializationQuirks, error) {
	return setSerializationQuirks(c.scope, q)
}

// SetSerializationQuirks declares savestate limitations and returns the
// quirks the host accepted.
func (c *LoadGameContext) SetSerializationQuirks(q SerializationQuirks) (SerializationQuirks, error) {
	return setSerializationQuirks(c.scope, q)
}

func setPixelFormat(s scope, f PixelFormat) error {
	if f.BytesPerPixel() == 0 {
		return &InvalidEnumValueError{Type: "PixelFormat", Value: int64(f)}
	}
	if err := Set(s.env, abi.EnvSetPixelFormat, int32(f)); err != nil {
		return err
	}
	s.d.setPixelFormat(f)
	return nil
}

// SetPixelFormat selects the software framebuffer format.
func (c *GetAvInfoContext) SetPixelFormat(f PixelFormat) error {
	return setPixelFormat(c.scope, f)
}

// SetPixelFormat selects the software framebuffer format.
func (c *LoadGameContext) SetPixelFormat(f PixelFormat) error {
	return setPixelFormat(c.scope, f)
}

// SetPerformanceLevel hints how demanding the loaded content is.
func (c *LoadGameContext) SetPerformanceLevel(level uint32) error {
	return Set(c.env, abi.EnvSetPerformanceLevel, level)
}

func enableFrameTimeCallback(s scope, reference int64) error {
	cb := abi.FrameTimeCallback{Callback: s.tramp().FrameTime, Reference: reference}
	if err := Set(s.env, abi.EnvSetFrameTimeCallback, cb); err != nil {
		return &FailedToEnableError{What: "frame time callback", Err: err}
	}
	return nil
}

// EnableFrameTimeCallback makes the host report frame deltas. reference
// is the ideal frame time in microseconds, see FrameTimeReference.
func (c *LoadGameContext) EnableFrameTimeCallback(reference int64) error {
	return enableFrameTimeCallback(c.scope, reference)
}

// EnableFrameTimeCallback makes the host report frame deltas.
func (c *LoadGameSpecialContext) EnableFrameTimeCallback(reference int64) error {
	return enableFrameTimeCallback(c.scope, reference)
}

func gameInfoExt(s scope) ([]GameInfoExt, error) {
	p, err := GetUnchecked[*abi.GameInfoExt](s.env, abi.EnvGetGameInfoExt)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nullPointer("retro_game_info_ext")
	}
	n := s.d.contentCount()
	if n == 0 {
		n = 1
	}
	raw := unsafe.Slice(p, n)
	infos := make([]GameInfoExt, n)
	for i := range raw {
		infos[i] = gameInfoExtFromABI(&raw[i])
	}
	return infos, nil
}

// GameInfoExt returns extended information about the content being
// loaded, one entry per content.
func (c *LoadGameContext) GameInfoExt() ([]GameInfoExt, error) {
	return gameInfoExt(c.scope)
}

// GameInfoExt returns extended information about the content being
// loaded, one entry per content.
func (c *LoadGameSpecialContext) GameInfoExt() ([]GameInfoExt, error) {
	return gameInfoExt(c.scope)
}
