package retro

import (
	"unsafe"
)

// Environment is the host environment callback, retro_environment_t.
// A nil Environment means the host has not supplied one.
type Environment func(cmd uint32, data unsafe.Pointer) bool

// Defaulter is implemented by payload types that need non-zero initial
// values before being handed to the host.
type Defaulter interface {
	SetDefaults()
}

func call(env Environment, cmd uint32, data unsafe.Pointer) error {
	if env == nil {
		return nullPointer("retro_environment_t")
	}
	if !env(cmd, data) {
		return &CallError{Cmd: cmd}
	}
	return nil
}

// Get issues cmd with a default initialised T and returns the value the
// host wrote back.
func Get[T any](env Environment, cmd uint32) (T, error) {
	var v T
	if d, ok := any(&v).(Defaulter); ok {
		d.SetDefaults()
	}
	return GetMut(env, cmd, v)
}

// GetUnchecked is Get without defaults: the host receives zeroed memory.
func GetUnchecked[T any](env Environment, cmd uint32) (T, error) {
	var v T
	return GetMut(env, cmd, v)
}

// GetMut issues cmd with a caller supplied initial value.
func GetMut[T any](env Environment, cmd uint32, v T) (T, error) {
	if err := call(env, cmd, unsafe.Pointer(&v)); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// Set passes a pointer to value to the host. Nothing is read back.
func Set[T any](env Environment, cmd uint32, value T) error {
	return call(env, cmd, unsafe.Pointer(&value))
}

// SetPtr passes a raw pointer to the host.
func SetPtr(env Environment, cmd uint32, ptr unsafe.Pointer) error {
	return call(env, cmd, ptr)
}

// GetPath issues cmd expecting a const char* answer and copies it.
func GetPath(env Environment, cmd uint32) (string, error) {
	p, err := GetUnchecked[*byte](env, cmd)
	if err != nil {
		return "", err
	}
	if p == nil {
		return "", nullPointer("path")
	}
	return GoString(p)
}

// GetOptionalPath is GetPath but treats a null answer as absent.
func GetOptionalPath(env Environment, cmd uint32) (string, bool, error) {
	p, err := GetUnchecked[*byte](env, cmd)
	if err != nil {
		return "", false, err
	}
	if p == nil {
		return "", false, nil
	}
	s, err := GoString(p)
	if err != nil {
		return "", false, err
	}
	return s, true, nil
}
