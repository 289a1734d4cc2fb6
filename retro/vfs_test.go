package retro

import (
	"errors"
	"io"
	"os"
	"sort"
	"testing"
	"unsafe"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user-none/goretro/abi"
)

// memVFS is a host VFS interface backed by an afero.MemMapFs.
type memVFS struct {
	fs    afero.Fs
	next  uintptr
	files map[uintptr]afero.File
	paths map[uintptr][]byte
	dirs  map[uintptr]*memDir
}

type memDir struct {
	entries []os.FileInfo
	pos     int
	name    []byte
}

func newMemVFS() *memVFS {
	return &memVFS{
		fs:    afero.NewMemMapFs(),
		files: make(map[uintptr]afero.File),
		paths: make(map[uintptr][]byte),
		dirs:  make(map[uintptr]*memDir),
	}
}

func (v *memVFS) handle() uintptr {
	v.next++
	return v.next
}

func (v *memVFS) iface() *abi.VFSInterface {
	return &abi.VFSInterface{
		GetPath: fakeFunc(func(h uintptr) *byte { return &v.paths[h][0] }),
		Open: fakeFunc(func(path *byte, mode uint32, hints uint32) uintptr {
			name := goStringUnchecked(path)
			flag := os.O_RDONLY
			switch {
			case mode&abi.VFSFileAccessWrite != 0 && mode&abi.VFSFileAccessUpdateExisting != 0:
				flag = os.O_RDWR
			case mode&abi.VFSFileAccessWrite != 0:
				flag = os.O_RDWR | os.O_CREATE | os.O_TRUNC
			}
			f, err := v.fs.OpenFile(name, flag, 0o644)
			if err != nil {
				return 0
			}
			h := v.handle()
			v.files[h] = f
			v.paths[h] = append([]byte(name), 0)
			return h
		}),
		Close: fakeFunc(func(h uintptr) int32 {
			f, ok := v.files[h]
			if !ok {
				return -1
			}
			delete(v.files, h)
			if f.Close() != nil {
				return -1
			}
			return 0
		}),
		Size: fakeFunc(func(h uintptr) int64 {
			fi, err := v.files[h].Stat()
			if err != nil {
				return -1
			}
			return fi.Size()
		}),
		Tell: fakeFunc(func(h uintptr) int64 {
			pos, err := v.files[h].Seek(0, io.SeekCurrent)
			if err != nil {
				return -1
			}
			return pos
		}),
		Seek: fakeFunc(func(h uintptr, offset int64, whence int32) int64 {
			pos, err := v.files[h].Seek(offset, int(whence))
			if err != nil {
				return -1
			}
			return pos
		}),
		Read: fakeFunc(func(h uintptr, buf unsafe.Pointer, n uint64) int64 {
			got, err := v.files[h].Read(unsafe.Slice((*byte)(buf), n))
			if err != nil && !errors.Is(err, io.EOF) {
				return -1
			}
			return int64(got)
		}),
		Write: fakeFunc(func(h uintptr, buf unsafe.Pointer, n uint64) int64 {
			got, err := v.files[h].Write(unsafe.Slice((*byte)(buf), n))
			if err != nil {
				return -1
			}
			return int64(got)
		}),
		Flush: fakeFunc(func(h uintptr) int32 { return 0 }),
		Remove: fakeFunc(func(path *byte) int32 {
			if v.fs.Remove(goStringUnchecked(path)) != nil {
				return -1
			}
			return 0
		}),
		Rename: fakeFunc(func(oldPath, newPath *byte) int32 {
			if v.fs.Rename(goStringUnchecked(oldPath), goStringUnchecked(newPath)) != nil {
				return -1
			}
			return 0
		}),
		Truncate: fakeFunc(func(h uintptr, length int64) int64 {
			if v.files[h].Truncate(length) != nil {
				return -1
			}
			return 0
		}),
		Stat: fakeFunc(func(path *byte, size *int32) int32 {
			fi, err := v.fs.Stat(goStringUnchecked(path))
			if err != nil {
				return 0
			}
			st := int32(abi.VFSStatIsValid)
			if fi.IsDir() {
				st |= abi.VFSStatIsDirectory
			}
			if size != nil {
				*size = int32(fi.Size())
			}
			return st
		}),
		Mkdir: fakeFunc(func(dir *byte) int32 {
			name := goStringUnchecked(dir)
			if ok, _ := afero.Exists(v.fs, name); ok {
				return -2
			}
			if v.fs.Mkdir(name, 0o755) != nil {
				return -1
			}
			return 0
		}),
		Opendir: fakeFunc(func(dir *byte, includeHidden bool) uintptr {
			entries, err := afero.ReadDir(v.fs, goStringUnchecked(dir))
			if err != nil {
				return 0
			}
			sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
			h := v.handle()
			v.dirs[h] = &memDir{entries: entries, pos: -1}
			return h
		}),
		Readdir: fakeFunc(func(d uintptr) bool {
			dir := v.dirs[d]
			dir.pos++
			if dir.pos >= len(dir.entries) {
				return false
			}
			dir.name = append([]byte(dir.entries[dir.pos].Name()), 0)
			return true
		}),
		DirentGetName: fakeFunc(func(d uintptr) *byte { return &v.dirs[d].name[0] }),
		DirentIsDir: fakeFunc(func(d uintptr) bool {
			dir := v.dirs[d]
			return dir.entries[dir.pos].IsDir()
		}),
		Closedir: fakeFunc(func(d uintptr) int32 {
			delete(v.dirs, d)
			return 0
		}),
	}
}

// vfsHost answers GET_VFS_INTERFACE with iface at version.
func vfsHost(version uint32, iface *abi.VFSInterface) *fakeHost {
	return newFakeHost().on(abi.EnvGetVFSInterface, func(data unsafe.Pointer) bool {
		info := (*abi.VFSInterfaceInfo)(data)
		if info.RequiredInterfaceVersion > version {
			return false
		}
		info.RequiredInterfaceVersion = version
		info.Iface = iface
		return true
	})
}

func enableVFS(t *testing.T, version uint32, iface *abi.VFSInterface) *Dispatcher {
	t.Helper()
	d := newTestDispatcher(t, &testCore{}, vfsHost(version, iface))
	got, err := (&SetEnvironmentContext{d.scope()}).EnableVFSInterface(1)
	require.NoError(t, err)
	require.Equal(t, version, got)
	return d
}

// countingVFS is a VFS interface whose version 2 and 3 functions only
// count their calls.
func countingVFS(calls *int) *abi.VFSInterface {
	iface := newMemVFS().iface()
	iface.Truncate = fakeFunc(func(uintptr, int64) int64 { *calls++; return 0 })
	iface.Stat = fakeFunc(func(*byte, *int32) int32 { *calls++; return 1 })
	iface.Mkdir = fakeFunc(func(*byte) int32 { *calls++; return 0 })
	iface.Opendir = fakeFunc(func(*byte, bool) uintptr { *calls++; return 1 })
	iface.Readdir = fakeFunc(func(uintptr) bool { *calls++; return true })
	iface.DirentGetName = fakeFunc(func(uintptr) *byte { *calls++; return nil })
	iface.DirentIsDir = fakeFunc(func(uintptr) bool { *calls++; return true })
	iface.Closedir = fakeFunc(func(uintptr) int32 { *calls++; return 0 })
	return iface
}

// TestVFSVersionGate verifies operations above the negotiated version fail
// without reaching the host.
func TestVFSVersionGate(t *testing.T) {
	testCases := []struct {
		name string
		have uint32
		want uint32
		call func(g *GenericContext) error
	}{
		{"truncate", 1, 2, func(g *GenericContext) error { return g.VFSTruncate(1, 0) }},
		{"stat", 2, 3, func(g *GenericContext) error { _, _, err := g.VFSStat("/saves"); return err }},
		{"mkdir", 2, 3, func(g *GenericContext) error { _, err := g.VFSMkdir("/saves"); return err }},
		{"opendir", 2, 3, func(g *GenericContext) error { _, err := g.VFSOpendir("/saves", false); return err }},
		{"readdir", 2, 3, func(g *GenericContext) error { _, err := g.VFSReaddir(1); return err }},
		{"dirent name", 2, 3, func(g *GenericContext) error { _, err := g.VFSDirentName(1); return err }},
		{"dirent is dir", 2, 3, func(g *GenericContext) error { _, err := g.VFSDirentIsDir(1); return err }},
		{"closedir", 2, 3, func(g *GenericContext) error { return g.VFSClosedir(1) }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var calls int
			d := enableVFS(t, tc.have, countingVFS(&calls))

			err := tc.call(d.generic())
			var ve *VFSVersionError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.have, ve.Have)
			assert.Equal(t, tc.want, ve.Want)
			assert.ErrorIs(t, err, ErrVersionMismatch)

			assert.Zero(t, calls)
			assert.Equal(t, tc.have, d.Interfaces().VFSVersion())
		})
	}
}

func TestVFSRefusedVersion(t *testing.T) {
	d := newTestDispatcher(t, &testCore{}, vfsHost(2, newMemVFS().iface()))
	_, err := (&SetEnvironmentContext{d.scope()}).EnableVFSInterface(3)
	assert.ErrorIs(t, err, ErrFailure)
	assert.Equal(t, uint32(0), d.Interfaces().VFSVersion())

	_, err = d.generic().VFSOpen("/x", VFSRead, VFSHintNone)
	assert.ErrorIs(t, err, ErrInterfaceNotFound)
}

func TestVFSMkdirStatus(t *testing.T) {
	testCases := []struct {
		name string
		code int32
		want VFSMkdirStatus
		err  error
	}{
		{"created", 0, VFSMkdirCreated, nil},
		{"exists", -2, VFSMkdirExists, nil},
		{"failed", -1, 0, ErrVFSMkdir},
		{"unexpected", -7, 0, ErrVFSUnexpectedValue},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			iface := newMemVFS().iface()
			code := tc.code
			iface.Mkdir = fakeFunc(func(*byte) int32 { return code })
			d := enableVFS(t, 3, iface)

			got, err := d.generic().VFSMkdir("/saves")
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestVFSFileOperations(t *testing.T) {
	d := enableVFS(t, 3, newMemVFS().iface())
	g := d.generic()

	h, err := g.VFSOpen("/save.srm", VFSWrite, VFSHintNone)
	require.NoError(t, err)
	n, err := g.VFSWrite(h, []byte("hello world"))
	require.NoError(t, err)
	assert.Equal(t, 11, n)

	path, err := g.VFSGetPath(h)
	require.NoError(t, err)
	assert.Equal(t, "/save.srm", path)

	size, err := g.VFSSize(h)
	require.NoError(t, err)
	assert.Equal(t, int64(11), size)

	require.NoError(t, g.VFSTruncate(h, 5))
	pos, err := g.VFSSeek(h, 0, VFSSeekStart)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pos)

	buf := make([]byte, 16)
	n, err = g.VFSRead(h, buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf[:n]))

	tell, err := g.VFSTell(h)
	require.NoError(t, err)
	assert.Equal(t, int64(5), tell)
	require.NoError(t, g.VFSFlush(h))
	require.NoError(t, g.VFSClose(h))

	st, sz, err := g.VFSStat("/save.srm")
	require.NoError(t, err)
	assert.Equal(t, VFSStatValid, st)
	assert.Equal(t, int32(5), sz)

	require.NoError(t, g.VFSRename("/save.srm", "/save.bak"))
	_, _, err = g.VFSStat("/save.srm")
	assert.ErrorIs(t, err, ErrVFSStatInvalidPath)

	require.NoError(t, g.VFSRemove("/save.bak"))
	_, err = g.VFSOpen("/save.bak", VFSRead, VFSHintNone)
	assert.ErrorIs(t, err, ErrVFSOpen)
}

func TestVFSOpenRejectsUnknownModeBits(t *testing.T) {
	d := newTestDispatcher(t, &testCore{}, vfsHost(3, newMemVFS().iface()))
	d.cfg.StrictFlags = true
	_, err := (&SetEnvironmentContext{d.scope()}).EnableVFSInterface(3)
	require.NoError(t, err)

	_, err = d.generic().VFSOpen("/a", VFSOpenFlags(1<<5)|VFSRead, VFSHintNone)
	assert.ErrorIs(t, err, ErrUnknownBits)
}

func TestVFSDirectoryListing(t *testing.T) {
	mem := newMemVFS()
	require.NoError(t, mem.fs.MkdirAll("/saves/slots", 0o755))
	require.NoError(t, afero.WriteFile(mem.fs, "/saves/a.srm", []byte("a"), 0o644))
	d := enableVFS(t, 3, mem.iface())
	g := d.generic()

	dir, err := g.VFSOpendir("/saves", false)
	require.NoError(t, err)

	type entry struct {
		name string
		dir  bool
	}
	var got []entry
	for {
		st, err := g.VFSReaddir(dir)
		require.NoError(t, err)
		if st == VFSReadDirLastEntry {
			break
		}
		name, err := g.VFSDirentName(dir)
		require.NoError(t, err)
		isDir, err := g.VFSDirentIsDir(dir)
		require.NoError(t, err)
		got = append(got, entry{name, isDir})
	}
	require.NoError(t, g.VFSClosedir(dir))
	assert.Equal(t, []entry{{"a.srm", false}, {"slots", true}}, got)
}

// TestVFSAsAferoFs drives the host VFS through the afero.Fs adapter.
func TestVFSAsAferoFs(t *testing.T) {
	mem := newMemVFS()
	d := enableVFS(t, 3, mem.iface())
	fs := NewFS(d.generic())

	require.NoError(t, fs.MkdirAll("/saves/core/slot", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/saves/core/game.srm", []byte{1, 2, 3}, 0o644))

	data, err := afero.ReadFile(fs, "/saves/core/game.srm")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)

	fi, err := fs.Stat("/saves/core/game.srm")
	require.NoError(t, err)
	assert.Equal(t, int64(3), fi.Size())
	assert.False(t, fi.IsDir())

	_, err = fs.Stat("/missing")
	assert.ErrorIs(t, err, os.ErrNotExist)

	infos, err := afero.ReadDir(fs, "/saves/core")
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "game.srm", infos[0].Name())
	assert.True(t, infos[1].IsDir())

	err = fs.Mkdir("/saves", 0o755)
	assert.ErrorIs(t, err, os.ErrExist)

	f, err := fs.OpenFile("/saves/core/game.srm", os.O_WRONLY|os.O_APPEND, 0)
	require.NoError(t, err)
	_, err = f.Write([]byte{4})
	require.NoError(t, err)
	require.NoError(t, f.Close())
	data, err = afero.ReadFile(mem.fs, "/saves/core/game.srm")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, data)

	require.NoError(t, fs.Rename("/saves/core/game.srm", "/saves/core/game.bak"))
	ok, err := afero.Exists(mem.fs, "/saves/core/game.bak")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, fs.RemoveAll("/saves"))
	ok, err = afero.Exists(mem.fs, "/saves")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, fs.Chmod("/x", 0), errors.ErrUnsupported)
}
