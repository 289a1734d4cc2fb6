package retro

import (
	"errors"
	"fmt"

	"github.com/user-none/goretro/abi"
)

// Sentinel errors. Typed errors below match them through errors.Is.
var (
	ErrNullPointer        = errors.New("null pointer")
	ErrFailure            = errors.New("callback returned `false`")
	ErrUnsupported        = errors.New("unsupported")
	ErrInterfaceNotFound  = errors.New("interface not found")
	ErrInvalidEnumValue   = errors.New("invalid enum value")
	ErrUnknownBits        = errors.New("unknown flag bits")
	ErrNonUTF8            = errors.New("invalid UTF-8 sequence")
	ErrContainsNul        = errors.New("string contains a null byte")
	ErrAlreadyInitialized = errors.New("core already initialized")
	ErrNotInitialized     = errors.New("core has not been initialized yet")
	ErrVersionMismatch    = errors.New("interface version mismatch")

	ErrDupeUnsupported  = errors.New("frontend does not support frame duping")
	ErrNoPreviousFrame  = errors.New("no frame has been drawn yet")
	ErrHWContextNotLive = errors.New("hardware render context is not live")

	ErrNegotiationTooSmall = errors.New("negotiation interface smaller than its header")

	ErrUnknownPerfCounter      = errors.New("unknown performance counter")
	ErrUnregisteredPerfCounter = errors.New("unregistered performance counter")

	ErrLocationStart    = errors.New("failed to start location service")
	ErrLocationPosition = errors.New("failed to get position")
)

// VFS sentinels, wrapped by *VFSError.
var (
	ErrVFSOpen            = errors.New("failed to open path")
	ErrVFSClose           = errors.New("failed to close file handle")
	ErrVFSSize            = errors.New("failed to get file size")
	ErrVFSTruncate        = errors.New("failed to truncate file")
	ErrVFSTell            = errors.New("failed to get cursor position")
	ErrVFSSeek            = errors.New("failed to seek")
	ErrVFSRead            = errors.New("failed to read from file")
	ErrVFSWrite           = errors.New("failed to write to file")
	ErrVFSFlush           = errors.New("failed to flush file to disk")
	ErrVFSRemove          = errors.New("failed to remove path")
	ErrVFSRename          = errors.New("failed to rename path")
	ErrVFSStatInvalidPath = errors.New("stat: path is invalid")
	ErrVFSMkdir           = errors.New("failed to create directory")
	ErrVFSUnexpectedValue = errors.New("unexpected value")
)

// NullPointerError reports that a callback, function pointer or returned
// pointer was null.
type NullPointerError struct {
	Name string
}

func (e *NullPointerError) Error() string {
	return e.Name + " is a null pointer"
}

func (e *NullPointerError) Is(target error) bool {
	return target == ErrNullPointer
}

// CallError reports that the environment callback returned false.
type CallError struct {
	Cmd uint32
}

func (e *CallError) Error() string {
	if name := abi.EnvName(e.Cmd); name != "" {
		return fmt.Sprintf("%s: %s", name, ErrFailure)
	}
	return fmt.Sprintf("environment command %#x: %s", e.Cmd, ErrFailure)
}

func (e *CallError) Is(target error) bool {
	return target == ErrFailure
}

// UnsupportedError reports a feature the host does not support at the
// negotiated version.
type UnsupportedError struct {
	Reason string
}

func (e *UnsupportedError) Error() string {
	return "unsupported: " + e.Reason
}

func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

// InterfaceNotFoundError reports use of an interface that was never
// enabled.
type InterfaceNotFoundError struct {
	Interface string
	Enable    string
}

func (e *InterfaceNotFoundError) Error() string {
	return fmt.Sprintf("%s interface not found, did you call `%s`?", e.Interface, e.Enable)
}

func (e *InterfaceNotFoundError) Is(target error) bool {
	return target == ErrInterfaceNotFound
}

// InvalidEnumValueError reports a host value outside a known enumeration.
type InvalidEnumValueError struct {
	Type  string
	Value int64
}

func (e *InvalidEnumValueError) Error() string {
	return fmt.Sprintf("callback returned an invalid enum value: %d is not a valid %s", e.Value, e.Type)
}

func (e *InvalidEnumValueError) Is(target error) bool {
	return target == ErrInvalidEnumValue
}

// UnknownBitsError reports flag bits the binding does not know. Both
// fields are binary strings padded to the width of the flag type.
type UnknownBitsError struct {
	Known   string
	Unknown string
}

func (e *UnknownBitsError) Error() string {
	return fmt.Sprintf("callback returned unknown flags: %s; Known bits: %s", e.Unknown, e.Known)
}

func (e *UnknownBitsError) Is(target error) bool {
	return target == ErrUnknownBits
}

// KeyValueError reports a malformed key=value pair.
type KeyValueError struct {
	Pair string
}

func (e *KeyValueError) Error() string {
	return "failed to parse key-value pair: " + e.Pair
}

// FailedToEnableError reports that the host refused to enable a callback
// interface.
type FailedToEnableError struct {
	What string
	Err  error
}

func (e *FailedToEnableError) Error() string {
	return "failed to enable " + e.What
}

func (e *FailedToEnableError) Unwrap() error {
	return e.Err
}

// VFSError describes a failed VFS operation.
type VFSError struct {
	Op     string
	Path   string
	Detail string
	Err    error
}

func (e *VFSError) Error() string {
	msg := "vfs " + e.Op
	if e.Path != "" {
		msg += " “" + e.Path + "”"
	}
	msg += ": " + e.Err.Error()
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *VFSError) Unwrap() error {
	return e.Err
}

// VFSVersionError reports an operation that needs a newer VFS interface
// than the one negotiated.
type VFSVersionError struct {
	Have uint32
	Want uint32
}

func (e *VFSVersionError) Error() string {
	return fmt.Sprintf("VFS interface version %d < %d", e.Have, e.Want)
}

func (e *VFSVersionError) Is(target error) bool {
	return target == ErrVersionMismatch
}

// PerfCounterError names the counter a performance operation failed on.
type PerfCounterError struct {
	Name string
	Err  error
}

func (e *PerfCounterError) Error() string {
	switch e.Err {
	case ErrUnknownPerfCounter:
		return "Unknown performance counter: “" + e.Name + "”"
	case ErrUnregisteredPerfCounter:
		return "Unregistered performance counter: “" + e.Name + "”"
	}
	return e.Name + ": " + e.Err.Error()
}

func (e *PerfCounterError) Unwrap() error {
	return e.Err
}

// AlreadyInitializedError is returned when registering a core into a slot
// that already holds one.
type AlreadyInitializedError struct {
	Existing string
}

func (e *AlreadyInitializedError) Error() string {
	return fmt.Sprintf("core already initialized: %q is registered", e.Existing)
}

func (e *AlreadyInitializedError) Is(target error) bool {
	return target == ErrAlreadyInitialized
}

// OptionError reports an invalid core option declaration.
type OptionError struct {
	Key    string
	Reason string
}

func (e *OptionError) Error() string {
	if e.Key == "" {
		return "core option: " + e.Reason
	}
	return fmt.Sprintf("core option %q: %s", e.Key, e.Reason)
}

func nullPointer(name string) error {
	return &NullPointerError{Name: name}
}

func notFound(iface, enable string) error {
	return &InterfaceNotFoundError{Interface: iface, Enable: enable}
}

func vfsErr(op, path string, err error) error {
	return &VFSError{Op: op, Path: path, Err: err}
}
