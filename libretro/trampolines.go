package libretro

/*
#include "cfuncs.h"
*/
import "C"
import (
	"unsafe"

	"github.com/user-none/goretro/abi"
	"github.com/user-none/goretro/retro"
)

func trampolines(t *C.struct_goretro_trampolines) retro.Trampolines {
	return retro.Trampolines{
		Keyboard:              uintptr(t.keyboard),
		HWContextReset:        uintptr(t.hw_context_reset),
		HWContextDestroy:      uintptr(t.hw_context_destroy),
		FrameTime:             uintptr(t.frame_time),
		Audio:                 uintptr(t.audio),
		AudioSetState:         uintptr(t.audio_set_state),
		AudioBufferStatus:     uintptr(t.audio_buffer_status),
		CameraRawFramebuffer:  uintptr(t.camera_raw_framebuffer),
		CameraGLTexture:       uintptr(t.camera_gl_texture),
		CameraInitialized:     uintptr(t.camera_initialized),
		CameraDeinitialized:   uintptr(t.camera_deinitialized),
		LocationInitialized:   uintptr(t.location_initialized),
		LocationDeinitialized: uintptr(t.location_deinitialized),
		GetProcAddress:        uintptr(t.get_proc_address),
		OptionsUpdateDisplay:  uintptr(t.options_update_display),
		Disk: abi.DiskControlExtCallback{
			SetEjectState:     uintptr(t.disk_set_eject_state),
			GetEjectState:     uintptr(t.disk_get_eject_state),
			GetImageIndex:     uintptr(t.disk_get_image_index),
			SetImageIndex:     uintptr(t.disk_set_image_index),
			GetNumImages:      uintptr(t.disk_get_num_images),
			ReplaceImageIndex: uintptr(t.disk_replace_image_index),
			AddImageIndex:     uintptr(t.disk_add_image_index),
			SetInitialImage:   uintptr(t.disk_set_initial_image),
			GetImagePath:      uintptr(t.disk_get_image_path),
			GetImageLabel:     uintptr(t.disk_get_image_label),
		},
	}
}

//export goretroKeyboard
func goretroKeyboard(down C.bool, keycode C.uint, character C.uint32_t, modifiers C.uint16_t) {
	mustCurrent().OnKeyboard(bool(down), uint32(keycode), uint32(character), uint16(modifiers))
}

//export goretroHWContextReset
func goretroHWContextReset() {
	mustCurrent().OnHWContextReset()
}

//export goretroHWContextDestroy
func goretroHWContextDestroy() {
	mustCurrent().OnHWContextDestroy()
}

//export goretroFrameTime
func goretroFrameTime(usec C.int64_t) {
	mustCurrent().OnFrameTime(int64(usec))
}

//export goretroAudio
func goretroAudio() {
	mustCurrent().OnAudio()
}

//export goretroAudioSetState
func goretroAudioSetState(enabled C.bool) {
	mustCurrent().OnAudioSetState(bool(enabled))
}

//export goretroAudioBufferStatus
func goretroAudioBufferStatus(active C.bool, occupancy C.uint, underrunLikely C.bool) {
	mustCurrent().OnAudioBufferStatus(bool(active), uint32(occupancy), bool(underrunLikely))
}

//export goretroCameraRawFramebuffer
func goretroCameraRawFramebuffer(buf *C.uint32_t, width, height C.uint, pitch C.size_t) {
	mustCurrent().OnCameraRawFramebuffer((*uint32)(unsafe.Pointer(buf)), uint32(width), uint32(height), uintptr(pitch))
}

//export goretroCameraGLTexture
func goretroCameraGLTexture(textureID, textureTarget C.uint, affine *C.float) {
	mustCurrent().OnCameraGLTexture(uint32(textureID), uint32(textureTarget), (*float32)(unsafe.Pointer(affine)))
}

//export goretroCameraInitialized
func goretroCameraInitialized() {
	mustCurrent().OnCameraInitialized()
}

//export goretroCameraDeinitialized
func goretroCameraDeinitialized() {
	mustCurrent().OnCameraDeinitialized()
}

//export goretroLocationInitialized
func goretroLocationInitialized() {
	mustCurrent().OnLocationInitialized()
}

//export goretroLocationDeinitialized
func goretroLocationDeinitialized() {
	mustCurrent().OnLocationDeinitialized()
}

//export goretroGetProcAddress
func goretroGetProcAddress(sym *C.char) C.uintptr_t {
	return C.uintptr_t(mustCurrent().OnGetProcAddress((*byte)(unsafe.Pointer(sym))))
}

//export goretroOptionsUpdateDisplay
func goretroOptionsUpdateDisplay() C.bool {
	return C.bool(mustCurrent().OnOptionsUpdateDisplay())
}

//export goretroDiskSetEjectState
func goretroDiskSetEjectState(ejected C.bool) C.bool {
	return C.bool(mustCurrent().OnDiskSetEjectState(bool(ejected)))
}

//export goretroDiskGetEjectState
func goretroDiskGetEjectState() C.bool {
	return C.bool(mustCurrent().OnDiskGetEjectState())
}

//export goretroDiskGetImageIndex
func goretroDiskGetImageIndex() C.uint {
	return C.uint(mustCurrent().OnDiskGetImageIndex())
}

//export goretroDiskSetImageIndex
func goretroDiskSetImageIndex(index C.uint) C.bool {
	return C.bool(mustCurrent().OnDiskSetImageIndex(uint32(index)))
}

//export goretroDiskGetNumImages
func goretroDiskGetNumImages() C.uint {
	return C.uint(mustCurrent().OnDiskGetNumImages())
}

//export goretroDiskReplaceImageIndex
func goretroDiskReplaceImageIndex(index C.uint, info unsafe.Pointer) C.bool {
	return C.bool(mustCurrent().OnDiskReplaceImageIndex(uint32(index), (*abi.GameInfo)(info)))
}

//export goretroDiskAddImageIndex
func goretroDiskAddImageIndex() C.bool {
	return C.bool(mustCurrent().OnDiskAddImageIndex())
}

//export goretroDiskSetInitialImage
func goretroDiskSetInitialImage(index C.uint, path *C.char) C.bool {
	return C.bool(mustCurrent().OnDiskSetInitialImage(uint32(index), (*byte)(unsafe.Pointer(path))))
}

//export goretroDiskGetImagePath
func goretroDiskGetImagePath(index C.uint, buf *C.char, n C.size_t) C.bool {
	return C.bool(mustCurrent().OnDiskGetImagePath(uint32(index), (*byte)(unsafe.Pointer(buf)), uintptr(n)))
}

//export goretroDiskGetImageLabel
func goretroDiskGetImageLabel(index C.uint, buf *C.char, n C.size_t) C.bool {
	return C.bool(mustCurrent().OnDiskGetImageLabel(uint32(index), (*byte)(unsafe.Pointer(buf)), uintptr(n)))
}
