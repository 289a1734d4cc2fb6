package retro

import (
	"strconv"
	"unsafe"

	"github.com/user-none/goretro/abi"
)

// VFSOpenFlags is the access mode of VFSOpen.
type VFSOpenFlags uint32

const (
	VFSRead           VFSOpenFlags = abi.VFSFileAccessRead
	VFSWrite          VFSOpenFlags = abi.VFSFileAccessWrite
	VFSReadWrite      VFSOpenFlags = abi.VFSFileAccessReadWrite
	VFSUpdateExisting VFSOpenFlags = abi.VFSFileAccessUpdateExisting

	vfsOpenFlagsAll = VFSReadWrite | VFSUpdateExisting
)

// VFSOpenHints are access pattern hints for VFSOpen.
type VFSOpenHints uint32

const (
	VFSHintNone           VFSOpenHints = abi.VFSFileAccessHintNone
	VFSHintFrequentAccess VFSOpenHints = abi.VFSFileAccessHintFrequentAccess
)

// VFSSeekPosition is the whence of VFSSeek.
type VFSSeekPosition int32

const (
	VFSSeekStart   VFSSeekPosition = abi.VFSSeekPositionStart
	VFSSeekCurrent VFSSeekPosition = abi.VFSSeekPositionCurrent
	VFSSeekEnd     VFSSeekPosition = abi.VFSSeekPositionEnd
)

// VFSStat describes a path as returned by VFSStat.
type VFSStat int32

const (
	VFSStatValid            VFSStat = abi.VFSStatIsValid
	VFSStatDirectory        VFSStat = abi.VFSStatIsDirectory
	VFSStatCharacterSpecial VFSStat = abi.VFSStatIsCharacterSpecial

	vfsStatAll = VFSStatValid | VFSStatDirectory | VFSStatCharacterSpecial
)

// VFSMkdirStatus is the successful outcome of VFSMkdir.
type VFSMkdirStatus int

const (
	VFSMkdirCreated VFSMkdirStatus = iota
	VFSMkdirExists
)

// VFSReadDirStatus is the outcome of VFSReaddir.
type VFSReadDirStatus int

const (
	VFSReadDirOK VFSReadDirStatus = iota
	VFSReadDirLastEntry
)

// VFSHandle is an opaque host file handle.
type VFSHandle uintptr

// VFSDirHandle is an opaque host directory handle.
type VFSDirHandle uintptr

// EnableVFSInterface negotiates a VFS interface of at least minVersion and
// returns the version the host provided.
func (c *SetEnvironmentContext) EnableVFSInterface(minVersion uint32) (uint32, error) {
	info, err := c.VFSInterface(minVersion)
	if err == nil && info.Iface == nil {
		err = nullPointer("retro_vfs_interface")
	}

	r := c.ifaces()
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.vfs = nil
		return 0, err
	}
	r.vfs = newVFSIface(info.RequiredInterfaceVersion, info.Iface)
	return info.RequiredInterfaceVersion, nil
}

// VFSInterface queries the raw host VFS interface without registering it.
func (c *SetEnvironmentContext) VFSInterface(minVersion uint32) (abi.VFSInterfaceInfo, error) {
	return GetMut(c.env, abi.EnvGetVFSInterface, abi.VFSInterfaceInfo{RequiredInterfaceVersion: minVersion})
}

func (c *GenericContext) vfs(minVersion uint32) (*vfsIface, error) {
	r := c.ifaces()
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.vfs == nil {
		return nil, notFound("VFS", "EnableVFSInterface()")
	}
	if r.vfs.version < minVersion {
		return nil, &VFSVersionError{Have: r.vfs.version, Want: minVersion}
	}
	return r.vfs, nil
}

// VFSGetPath returns the path a handle was opened with.
func (c *GenericContext) VFSGetPath(h VFSHandle) (string, error) {
	v, err := c.vfs(1)
	if err != nil {
		return "", err
	}
	if v.getPath == nil {
		return "", nullPointer("get_path")
	}
	return GoString(v.getPath(uintptr(h)))
}

// VFSOpen opens path on the host filesystem.
func (c *GenericContext) VFSOpen(path string, mode VFSOpenFlags, hints VFSOpenHints) (VFSHandle, error) {
	v, err := c.vfs(1)
	if err != nil {
		return 0, err
	}
	if v.open == nil {
		return 0, nullPointer("open")
	}
	if mode, err = checkFlags(mode, vfsOpenFlagsAll, c.strict()); err != nil {
		return 0, err
	}
	p, err := CString(path)
	if err != nil {
		return 0, err
	}
	h := v.open(p, uint32(mode), uint32(hints))
	if h == 0 {
		return 0, vfsErr("open", path, ErrVFSOpen)
	}
	return VFSHandle(h), nil
}

// VFSClose closes h. The handle is invalid afterwards even on error.
func (c *GenericContext) VFSClose(h VFSHandle) error {
	v, err := c.vfs(1)
	if err != nil {
		return err
	}
	if v.close == nil {
		return nullPointer("close")
	}
	if v.close(uintptr(h)) != 0 {
		return vfsErr("close", "", ErrVFSClose)
	}
	return nil
}

// VFSSize returns the size of the file behind h.
func (c *GenericContext) VFSSize(h VFSHandle) (int64, error) {
	v, err := c.vfs(1)
	if err != nil {
		return 0, err
	}
	if v.size == nil {
		return 0, nullPointer("size")
	}
	n := v.size(uintptr(h))
	if n < 0 {
		return 0, vfsErr("size", "", ErrVFSSize)
	}
	return n, nil
}

// VFSTruncate sets the length of the file behind h. Needs VFS version 2.
func (c *GenericContext) VFSTruncate(h VFSHandle, length int64) error {
	v, err := c.vfs(2)
	if err != nil {
		return err
	}
	if v.truncate == nil {
		return nullPointer("truncate")
	}
	if v.truncate(uintptr(h), length) != 0 {
		return &VFSError{Op: "truncate", Detail: "length " + strconv.FormatInt(length, 10), Err: ErrVFSTruncate}
	}
	return nil
}

// VFSTell returns the cursor position of h.
func (c *GenericContext) VFSTell(h VFSHandle) (int64, error) {
	v, err := c.vfs(1)
	if err != nil {
		return 0, err
	}
	if v.tell == nil {
		return 0, nullPointer("tell")
	}
	pos := v.tell(uintptr(h))
	if pos < 0 {
		return 0, vfsErr("tell", "", ErrVFSTell)
	}
	return pos, nil
}

// VFSSeek moves the cursor of h and returns the new position.
func (c *GenericContext) VFSSeek(h VFSHandle, offset int64, whence VFSSeekPosition) (int64, error) {
	v, err := c.vfs(1)
	if err != nil {
		return 0, err
	}
	if v.seek == nil {
		return 0, nullPointer("seek")
	}
	pos := v.seek(uintptr(h), offset, int32(whence))
	if pos < 0 {
		return 0, &VFSError{Op: "seek", Detail: "offset " + strconv.FormatInt(offset, 10), Err: ErrVFSSeek}
	}
	return pos, nil
}

// VFSRead reads up to len(buf) bytes.
func (c *GenericContext) VFSRead(h VFSHandle, buf []byte) (int, error) {
	v, err := c.vfs(1)
	if err != nil {
		return 0, err
	}
	if v.read == nil {
		return 0, nullPointer("read")
	}
	if len(buf) == 0 {
		return 0, nil
	}
	n := v.read(uintptr(h), unsafe.Pointer(&buf[0]), uint64(len(buf)))
	if n < 0 {
		return 0, &VFSError{Op: "read", Detail: strconv.Itoa(len(buf)) + " bytes", Err: ErrVFSRead}
	}
	return int(n), nil
}

// VFSWrite writes buf and returns the number of bytes written.
func (c *GenericContext) VFSWrite(h VFSHandle, buf []byte) (int, error) {
	v, err := c.vfs(1)
	if err != nil {
		return 0, err
	}
	if v.write == nil {
		return 0, nullPointer("write")
	}
	if len(buf) == 0 {
		return 0, nil
	}
	n := v.write(uintptr(h), unsafe.Pointer(&buf[0]), uint64(len(buf)))
	if n < 0 {
		return 0, &VFSError{Op: "write", Detail: strconv.Itoa(len(buf)) + " bytes", Err: ErrVFSWrite}
	}
	return int(n), nil
}

// VFSFlush flushes h to disk.
func (c *GenericContext) VFSFlush(h VFSHandle) error {
	v, err := c.vfs(1)
	if err != nil {
		return err
	}
	if v.flush == nil {
		return nullPointer("flush")
	}
	if v.flush(uintptr(h)) != 0 {
		return vfsErr("flush", "", ErrVFSFlush)
	}
	return nil
}

// VFSRemove deletes path.
func (c *GenericContext) VFSRemove(path string) error {
	v, err := c.vfs(1)
	if err != nil {
		return err
	}
	if v.remove == nil {
		return nullPointer("remove")
	}
	p, err := CString(path)
	if err != nil {
		return err
	}
	if v.remove(p) != 0 {
		return vfsErr("remove", path, ErrVFSRemove)
	}
	return nil
}

// VFSRename moves oldPath to newPath.
func (c *GenericContext) VFSRename(oldPath, newPath string) error {
	v, err := c.vfs(1)
	if err != nil {
		return err
	}
	if v.rename == nil {
		return nullPointer("rename")
	}
	op, err := CString(oldPath)
	if err != nil {
		return err
	}
	np, err := CString(newPath)
	if err != nil {
		return err
	}
	if v.rename(op, np) != 0 {
		return &VFSError{Op: "rename", Path: oldPath, Detail: "to " + newPath, Err: ErrVFSRename}
	}
	return nil
}

// VFSStat describes path and returns its size. Needs VFS version 3.
func (c *GenericContext) VFSStat(path string) (VFSStat, int32, error) {
	v, err := c.vfs(3)
	if err != nil {
		return 0, 0, err
	}
	if v.stat == nil {
		return 0, 0, nullPointer("stat")
	}
	p, err := CString(path)
	if err != nil {
		return 0, 0, err
	}
	var size int32
	st, err := checkFlags(VFSStat(v.stat(p, &size)), vfsStatAll, c.strict())
	if err != nil {
		return 0, 0, err
	}
	if st&VFSStatValid == 0 {
		return 0, 0, vfsErr("stat", path, ErrVFSStatInvalidPath)
	}
	return st, size, nil
}

// VFSMkdir creates dir. Needs VFS version 3.
func (c *GenericContext) VFSMkdir(dir string) (VFSMkdirStatus, error) {
	v, err := c.vfs(3)
	if err != nil {
		return 0, err
	}
	if v.mkdir == nil {
		return 0, nullPointer("mkdir")
	}
	p, err := CString(dir)
	if err != nil {
		return 0, err
	}
	switch n := v.mkdir(p); n {
	case 0:
		return VFSMkdirCreated, nil
	case -2:
		return VFSMkdirExists, nil
	case -1:
		return 0, vfsErr("mkdir", dir, ErrVFSMkdir)
	default:
		return 0, &VFSError{Op: "mkdir", Path: dir, Detail: strconv.Itoa(int(n)), Err: ErrVFSUnexpectedValue}
	}
}

// VFSOpendir opens dir for listing. Needs VFS version 3.
func (c *GenericContext) VFSOpendir(dir string, includeHidden bool) (VFSDirHandle, error) {
	v, err := c.vfs(3)
	if err != nil {
		return 0, err
	}
	if v.opendir == nil {
		return 0, nullPointer("opendir")
	}
	p, err := CString(dir)
	if err != nil {
		return 0, err
	}
	d := v.opendir(p, includeHidden)
	if d == 0 {
		return 0, vfsErr("opendir", dir, ErrVFSOpen)
	}
	return VFSDirHandle(d), nil
}

// VFSReaddir advances d to its next entry.
func (c *GenericContext) VFSReaddir(d VFSDirHandle) (VFSReadDirStatus, error) {
	v, err := c.vfs(3)
	if err != nil {
		return 0, err
	}
	if v.readdir == nil {
		return 0, nullPointer("readdir")
	}
	if v.readdir(uintptr(d)) {
		return VFSReadDirOK, nil
	}
	return VFSReadDirLastEntry, nil
}

// VFSDirentName returns the name of the current entry of d.
func (c *GenericContext) VFSDirentName(d VFSDirHandle) (string, error) {
	v, err := c.vfs(3)
	if err != nil {
		return "", err
	}
	if v.direntGetName == nil {
		return "", nullPointer("dirent_get_name")
	}
	return GoString(v.direntGetName(uintptr(d)))
}

// VFSDirentIsDir reports whether the current entry of d is a directory.
func (c *GenericContext) VFSDirentIsDir(d VFSDirHandle) (bool, error) {
	v, err := c.vfs(3)
	if err != nil {
		return false, err
	}
	if v.direntIsDir == nil {
		return false, nullPointer("dirent_is_dir")
	}
	return v.direntIsDir(uintptr(d)), nil
}

// VFSClosedir closes d.
func (c *GenericContext) VFSClosedir(d VFSDirHandle) error {
	v, err := c.vfs(3)
	if err != nil {
		return err
	}
	if v.closedir == nil {
		return nullPointer("closedir")
	}
	if v.closedir(uintptr(d)) != 0 {
		return vfsErr("closedir", "", ErrVFSClose)
	}
	return nil
}
