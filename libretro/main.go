// Package libretro exports the retro_* entry points of a libretro core
// library and forwards them to the retro.Dispatcher of the registered core.
//
// Build a core with:
//
//	go build -buildmode=c-shared -o mycore_libretro.so ./cmd/mycore
package libretro

/*
#include "cfuncs.h"
*/
import "C"
import (
	"strings"
	"unsafe"

	"github.com/user-none/goretro/abi"
	"github.com/user-none/goretro/retro"
)

var (
	slot retro.Slot

	// Pre-allocated C strings for retro_get_system_info (allocated once,
	// never freed: the host may keep the pointers past retro_deinit)
	libNameStr   *C.char
	libVerStr    *C.char
	validExtStr  *C.char
	stringsReady bool
)

// Register installs core as the library's core. Call it from init()
// before any retro_* function runs. A second registration fails with
// *retro.AlreadyInitializedError.
func Register(core retro.Core) error {
	return RegisterWithConfig(core, retro.ConfigFromEnv(retro.DefaultConfig()))
}

// RegisterWithConfig is Register with an explicit configuration.
func RegisterWithConfig(core retro.Core, cfg retro.Config) error {
	var t C.struct_goretro_trampolines
	C.goretro_fill_trampolines(&t)
	_, err := slot.Register(core, cfg, retro.Hooks{
		Trampolines: trampolines(&t),
		LogPrintf:   logPrintf,
	})
	return err
}

// mustCurrent returns the registered dispatcher. An entry point called
// before Register aborts the process with retro.ErrNotInitialized.
func mustCurrent() *retro.Dispatcher {
	return mustDispatcher(&slot)
}

func mustDispatcher(s *retro.Slot) *retro.Dispatcher {
	d, err := s.Dispatcher()
	if err != nil {
		panic(err)
	}
	return d
}

func environment(cmd uint32, data unsafe.Pointer) bool {
	return bool(C.call_environment_cb(C.uint(cmd), data))
}

func videoRefresh(data unsafe.Pointer, width, height uint32, pitch uintptr) {
	C.call_video_cb(data, C.uint(width), C.uint(height), C.size_t(pitch))
}

func hardwareFrame(width, height uint32, pitch uintptr) {
	C.call_video_hw_cb(C.uint(width), C.uint(height), C.size_t(pitch))
}

func audioSample(left, right int16) {
	C.call_audio_sample_cb(C.int16_t(left), C.int16_t(right))
}

func audioSampleBatch(data *int16, frames uintptr) uintptr {
	return uintptr(C.call_audio_batch_cb((*C.int16_t)(unsafe.Pointer(data)), C.size_t(frames)))
}

func inputPoll() {
	C.call_input_poll_cb()
}

func inputState(port, device, index, id uint32) int16 {
	return int16(C.call_input_state_cb(C.uint(port), C.uint(device), C.uint(index), C.uint(id)))
}

func logPrintf(fn uintptr, level int32, msg *byte) {
	C.call_log_printf(C.uintptr_t(fn), C.int(level), (*C.char)(unsafe.Pointer(msg)))
}

//export retro_set_environment
func retro_set_environment(cb C.retro_environment_t) {
	C._retro_set_environment(cb)
	d := mustCurrent()
	if cb == nil {
		d.SetEnvironment(nil)
		return
	}
	d.SetEnvironment(environment)
}

//export retro_set_video_refresh
func retro_set_video_refresh(cb C.retro_video_refresh_t) {
	C._retro_set_video_refresh(cb)
	d := mustCurrent()
	if cb == nil {
		d.SetVideoRefresh(nil, nil)
		return
	}
	d.SetVideoRefresh(videoRefresh, hardwareFrame)
}

//export retro_set_audio_sample
func retro_set_audio_sample(cb C.retro_audio_sample_t) {
	C._retro_set_audio_sample(cb)
	d := mustCurrent()
	if cb == nil {
		d.SetAudioSample(nil)
		return
	}
	d.SetAudioSample(audioSample)
}

//export retro_set_audio_sample_batch
func retro_set_audio_sample_batch(cb C.retro_audio_sample_batch_t) {
	C._retro_set_audio_sample_batch(cb)
	d := mustCurrent()
	if cb == nil {
		d.SetAudioSampleBatch(nil)
		return
	}
	d.SetAudioSampleBatch(audioSampleBatch)
}

//export retro_set_input_poll
func retro_set_input_poll(cb C.retro_input_poll_t) {
	C._retro_set_input_poll(cb)
	d := mustCurrent()
	if cb == nil {
		d.SetInputPoll(nil)
		return
	}
	d.SetInputPoll(inputPoll)
}

//export retro_set_input_state
func retro_set_input_state(cb C.retro_input_state_t) {
	C._retro_set_input_state(cb)
	d := mustCurrent()
	if cb == nil {
		d.SetInputState(nil)
		return
	}
	d.SetInputState(inputState)
}

//export retro_init
func retro_init() {
	d := mustCurrent()
	ensureStrings(d)
	d.Init()
}

//export retro_deinit
func retro_deinit() {
	mustCurrent().Deinit()
}

//export retro_api_version
func retro_api_version() C.uint {
	return C.uint(abi.APIVersion)
}

//export retro_get_system_info
func retro_get_system_info(info unsafe.Pointer) {
	d := mustCurrent()
	if info == nil {
		return
	}
	sys := ensureStrings(d)
	out := (*abi.SystemInfo)(info)
	out.LibraryName = (*byte)(unsafe.Pointer(libNameStr))
	out.LibraryVersion = (*byte)(unsafe.Pointer(libVerStr))
	out.ValidExtensions = (*byte)(unsafe.Pointer(validExtStr))
	out.NeedFullpath = sys.NeedFullpath
	out.BlockExtract = sys.BlockExtract
}

//export retro_get_system_av_info
func retro_get_system_av_info(info unsafe.Pointer) {
	d := mustCurrent()
	if info == nil {
		return
	}
	*(*abi.SystemAVInfo)(info) = d.SystemAVInfo().ABI()
}

//export retro_set_controller_port_device
func retro_set_controller_port_device(port C.uint, device C.uint) {
	mustCurrent().SetControllerPortDevice(uint32(port), uint32(device))
}

//export retro_reset
func retro_reset() {
	mustCurrent().Reset()
}

//export retro_run
func retro_run() {
	mustCurrent().Run()
}

//export retro_serialize_size
func retro_serialize_size() C.size_t {
	return C.size_t(mustCurrent().SerializeSize())
}

//export retro_serialize
func retro_serialize(data unsafe.Pointer, size C.size_t) C.bool {
	return C.bool(mustCurrent().Serialize(data, uintptr(size)))
}

//export retro_unserialize
func retro_unserialize(data unsafe.Pointer, size C.size_t) C.bool {
	return C.bool(mustCurrent().Unserialize(data, uintptr(size)))
}

//export retro_cheat_reset
func retro_cheat_reset() {
	mustCurrent().CheatReset()
}

//export retro_cheat_set
func retro_cheat_set(index C.uint, enabled C.bool, code *C.char) {
	mustCurrent().CheatSet(uint32(index), bool(enabled), (*byte)(unsafe.Pointer(code)))
}

//export retro_load_game
func retro_load_game(game unsafe.Pointer) C.bool {
	return C.bool(mustCurrent().LoadGame((*abi.GameInfo)(game)))
}

//export retro_load_game_special
func retro_load_game_special(gameType C.uint, info unsafe.Pointer, num C.size_t) C.bool {
	return C.bool(mustCurrent().LoadGameSpecial(uint32(gameType), (*abi.GameInfo)(info), uintptr(num)))
}

//export retro_unload_game
func retro_unload_game() {
	mustCurrent().UnloadGame()
}

//export retro_get_region
func retro_get_region() C.uint {
	return C.uint(mustCurrent().Region())
}

//export retro_get_memory_data
func retro_get_memory_data(id C.uint) unsafe.Pointer {
	return mustCurrent().MemoryData(uint32(id))
}

//export retro_get_memory_size
func retro_get_memory_size(id C.uint) C.size_t {
	return C.size_t(mustCurrent().MemorySize(uint32(id)))
}

// ensureStrings allocates the system info C strings on first use.
func ensureStrings(d *retro.Dispatcher) retro.SystemInfo {
	sys := d.SystemInfo()
	if stringsReady {
		return sys
	}
	libNameStr = C.CString(stripNul(sys.LibraryName))
	libVerStr = C.CString(stripNul(sys.LibraryVersion))
	validExtStr = C.CString(stripNul(strings.Join(sys.ValidExtensions, "|")))
	stringsReady = true
	return sys
}

func stripNul(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}
