package retro

import (
	"errors"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// NewFS exposes the negotiated host VFS interface as an afero.Fs. The
// filesystem never calls the environment callback, so it may be kept after
// the call that created it returns, until Deinit resets the registry.
func NewFS(ctx *GenericContext) afero.Fs {
	return &vfsFS{ctx: &GenericContext{scope{d: ctx.d}}}
}

type vfsFS struct {
	ctx *GenericContext
}

var _ afero.Fs = (*vfsFS)(nil)

func (fs *vfsFS) Name() string { return "RetroVFS" }

func (fs *vfsFS) Create(name string) (afero.File, error) {
	return fs.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o666)
}

func (fs *vfsFS) Open(name string) (afero.File, error) {
	return fs.OpenFile(name, os.O_RDONLY, 0)
}

func (fs *vfsFS) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if st, _, err := fs.ctx.VFSStat(name); err == nil && st&VFSStatDirectory != 0 {
		return &vfsFile{fs: fs, name: name, dir: true}, nil
	}

	var mode VFSOpenFlags
	switch flag & (os.O_RDONLY | os.O_WRONLY | os.O_RDWR) {
	case os.O_WRONLY:
		mode = VFSWrite
	case os.O_RDWR:
		mode = VFSReadWrite
	default:
		mode = VFSRead
	}
	if mode&VFSWrite != 0 && flag&os.O_TRUNC == 0 {
		mode |= VFSUpdateExisting
	}

	h, err := fs.ctx.VFSOpen(name, mode, VFSHintNone)
	if err != nil {
		return nil, &os.PathError{Op: "open", Path: name, Err: err}
	}
	f := &vfsFile{fs: fs, name: name, h: h}
	if flag&os.O_APPEND != 0 {
		if _, err := f.Seek(0, io.SeekEnd); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func (fs *vfsFS) Mkdir(name string, perm os.FileMode) error {
	st, err := fs.ctx.VFSMkdir(name)
	if err != nil {
		return &os.PathError{Op: "mkdir", Path: name, Err: err}
	}
	if st == VFSMkdirExists {
		return &os.PathError{Op: "mkdir", Path: name, Err: os.ErrExist}
	}
	return nil
}

func (fs *vfsFS) MkdirAll(p string, perm os.FileMode) error {
	var cur string
	if strings.HasPrefix(p, "/") {
		cur = "/"
	}
	for _, part := range strings.Split(path.Clean(p), "/") {
		if part == "" {
			continue
		}
		cur = path.Join(cur, part)
		if err := fs.Mkdir(cur, perm); err != nil && !errors.Is(err, os.ErrExist) {
			return err
		}
	}
	return nil
}

func (fs *vfsFS) Remove(name string) error {
	if err := fs.ctx.VFSRemove(name); err != nil {
		return &os.PathError{Op: "remove", Path: name, Err: err}
	}
	return nil
}

func (fs *vfsFS) RemoveAll(p string) error {
	st, _, err := fs.ctx.VFSStat(p)
	if err != nil {
		if errors.Is(err, ErrVFSStatInvalidPath) {
			return nil
		}
		return &os.PathError{Op: "removeall", Path: p, Err: err}
	}
	if st&VFSStatDirectory != 0 {
		f := &vfsFile{fs: fs, name: p, dir: true}
		names, err := f.Readdirnames(-1)
		if err != nil {
			return err
		}
		for _, n := range names {
			if err := fs.RemoveAll(path.Join(p, n)); err != nil {
				return err
			}
		}
	}
	return fs.Remove(p)
}

func (fs *vfsFS) Rename(oldname, newname string) error {
	if err := fs.ctx.VFSRename(oldname, newname); err != nil {
		return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: err}
	}
	return nil
}

func (fs *vfsFS) Stat(name string) (os.FileInfo, error) {
	st, size, err := fs.ctx.VFSStat(name)
	if err != nil {
		if errors.Is(err, ErrVFSStatInvalidPath) {
			err = os.ErrNotExist
		}
		return nil, &os.PathError{Op: "stat", Path: name, Err: err}
	}
	return &vfsFileInfo{name: path.Base(name), size: int64(size), dir: st&VFSStatDirectory != 0}, nil
}

func (fs *vfsFS) Chmod(name string, mode os.FileMode) error {
	return &os.PathError{Op: "chmod", Path: name, Err: errors.ErrUnsupported}
}

func (fs *vfsFS) Chown(name string, uid, gid int) error {
	return &os.PathError{Op: "chown", Path: name, Err: errors.ErrUnsupported}
}

func (fs *vfsFS) Chtimes(name string, atime time.Time, mtime time.Time) error {
	return &os.PathError{Op: "chtimes", Path: name, Err: errors.ErrUnsupported}
}

type vfsFile struct {
	fs   *vfsFS
	name string
	h    VFSHandle
	dir  bool
}

var _ afero.File = (*vfsFile)(nil)

func (f *vfsFile) ctx() *GenericContext { return f.fs.ctx }

func (f *vfsFile) Name() string { return f.name }

func (f *vfsFile) Close() error {
	if f.dir || f.h == 0 {
		return nil
	}
	err := f.ctx().VFSClose(f.h)
	f.h = 0
	return err
}

func (f *vfsFile) Read(p []byte) (int, error) {
	if f.dir {
		return 0, &os.PathError{Op: "read", Path: f.name, Err: errors.New("is a directory")}
	}
	if len(p) == 0 {
		return 0, nil
	}
	n, err := f.ctx().VFSRead(f.h, p)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

func (f *vfsFile) ReadAt(p []byte, off int64) (int, error) {
	prev, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	defer f.Seek(prev, io.SeekStart)

	if _, err := f.Seek(off, io.SeekStart); err != nil {
		return 0, err
	}
	return io.ReadFull(f, p)
}

func (f *vfsFile) Seek(offset int64, whence int) (int64, error) {
	var pos VFSSeekPosition
	switch whence {
	case io.SeekCurrent:
		pos = VFSSeekCurrent
	case io.SeekEnd:
		pos = VFSSeekEnd
	default:
		pos = VFSSeekStart
	}
	return f.ctx().VFSSeek(f.h, offset, pos)
}

func (f *vfsFile) Write(p []byte) (int, error) {
	n, err := f.ctx().VFSWrite(f.h, p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	return n, err
}

func (f *vfsFile) WriteAt(p []byte, off int64) (int, error) {
	if _, err := f.Seek(off, io.SeekStart); err != nil {
		return 0, err
	}
	return f.Write(p)
}

func (f *vfsFile) WriteString(s string) (int, error) {
	return f.Write([]byte(s))
}

func (f *vfsFile) Readdir(count int) ([]os.FileInfo, error) {
	if !f.dir {
		return nil, &os.PathError{Op: "readdir", Path: f.name, Err: errors.New("not a directory")}
	}
	c := f.ctx()
	d, err := c.VFSOpendir(f.name, true)
	if err != nil {
		return nil, err
	}
	defer c.VFSClosedir(d)

	var infos []os.FileInfo
	for count <= 0 || len(infos) < count {
		st, err := c.VFSReaddir(d)
		if err != nil {
			return infos, err
		}
		if st == VFSReadDirLastEntry {
			break
		}
		name, err := c.VFSDirentName(d)
		if err != nil {
			return infos, err
		}
		if name == "." || name == ".." {
			continue
		}
		isDir, err := c.VFSDirentIsDir(d)
		if err != nil {
			return infos, err
		}
		infos = append(infos, &vfsFileInfo{name: name, dir: isDir})
	}
	if count > 0 && len(infos) == 0 {
		return nil, io.EOF
	}
	return infos, nil
}

func (f *vfsFile) Readdirnames(n int) ([]string, error) {
	infos, err := f.Readdir(n)
	names := make([]string, len(infos))
	for i, fi := range infos {
		names[i] = fi.Name()
	}
	return names, err
}

func (f *vfsFile) Stat() (os.FileInfo, error) {
	if f.dir {
		return &vfsFileInfo{name: path.Base(f.name), dir: true}, nil
	}
	size, err := f.ctx().VFSSize(f.h)
	if err != nil {
		return nil, err
	}
	return &vfsFileInfo{name: path.Base(f.name), size: size}, nil
}

func (f *vfsFile) Sync() error {
	return f.ctx().VFSFlush(f.h)
}

func (f *vfsFile) Truncate(size int64) error {
	return f.ctx().VFSTruncate(f.h, size)
}

type vfsFileInfo struct {
	name string
	size int64
	dir  bool
}

func (i *vfsFileInfo) Name() string       { return i.name }
func (i *vfsFileInfo) Size() int64        { return i.size }
func (i *vfsFileInfo) ModTime() time.Time { return time.Time{} }
func (i *vfsFileInfo) IsDir() bool        { return i.dir }
func (i *vfsFileInfo) Sys() any           { return nil }

func (i *vfsFileInfo) Mode() os.FileMode {
	if i.dir {
		return os.ModeDir | 0o755
	}
	return 0o644
}
