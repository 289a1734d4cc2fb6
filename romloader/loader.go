// Package romloader loads content files, including content packed in
// archives (ZIP, 7z, RAR) or compressed streams (gzip, zstd, xz, brotli,
// optionally wrapping a tar archive).
package romloader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/spf13/afero"
)

// Magic bytes for format detection
var (
	magicZIP    = []byte{0x50, 0x4B, 0x03, 0x04}
	magicZIPEnd = []byte{0x50, 0x4B, 0x05, 0x06} // empty zip
	magic7z     = []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}
	magicGzip   = []byte{0x1F, 0x8B}
	magicRAR    = []byte{0x52, 0x61, 0x72, 0x21} // "Rar!"
	magicZstd   = []byte{0x28, 0xB5, 0x2F, 0xFD}
	magicXZ     = []byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00}
	magicTar    = []byte("ustar")
)

// tarMagicOffset is where "ustar" sits in a tar header block.
const tarMagicOffset = 257

// DefaultMaxSize is the extracted content size limit of a zero Loader.
const DefaultMaxSize = 64 * 1024 * 1024

// ArchiveExtensions lists the container extensions Decode understands, in
// the form used by libretro valid_extensions.
var ArchiveExtensions = []string{"zip", "7z", "rar", "gz", "tgz", "zst", "xz", "br"}

// ErrNoROMFile is returned when no content file is found in an archive
var ErrNoROMFile = errors.New("no ROM file found in archive")

// ErrUnsupportedFormat is returned for unrecognized file formats
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrFileTooLarge is returned when extracted content exceeds size limit
var ErrFileTooLarge = errors.New("file exceeds maximum size limit")

// Format is the detected container format of a file.
type Format int

const (
	FormatUnknown Format = iota
	FormatRaw
	FormatZIP
	Format7z
	FormatGzip
	FormatRAR
	FormatZstd
	FormatXZ
	FormatBrotli
)

func (f Format) String() string {
	switch f {
	case FormatRaw:
		return "raw"
	case FormatZIP:
		return "zip"
	case Format7z:
		return "7z"
	case FormatGzip:
		return "gzip"
	case FormatRAR:
		return "rar"
	case FormatZstd:
		return "zstd"
	case FormatXZ:
		return "xz"
	case FormatBrotli:
		return "brotli"
	default:
		return "unknown"
	}
}

// ROM is loaded content.
type ROM struct {
	// Name is the base name of the content file, inside the archive when
	// it came from one.
	Name   string
	Data   []byte
	Format Format
}

// Loader reads content through an afero.Fs.
type Loader struct {
	Fs afero.Fs
	// MaxSize limits the extracted content size. Zero means DefaultMaxSize.
	MaxSize int64
}

// New returns a Loader reading from fs.
func New(fs afero.Fs) *Loader {
	return &Loader{Fs: fs}
}

// NewOS returns a Loader reading from the operating system file system.
func NewOS() *Loader {
	return New(afero.NewOsFs())
}

func (l *Loader) maxSize() int64 {
	if l.MaxSize > 0 {
		return l.MaxSize
	}
	return DefaultMaxSize
}

// Load reads content from a file path. It auto-detects archives via magic
// bytes and extracts the first file matching one of the given extensions.
// Extensions are matched case-insensitively, with or without the leading
// dot.
func (l *Loader) Load(name string, extensions []string) (*ROM, error) {
	f, err := l.Fs.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	// Archives are at most as large as their content in practice, the
	// margin covers headers of stored entries.
	data, err := l.limitedRead(f, l.maxSize()+l.maxSize()/8+4096)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return l.Decode(name, data, extensions)
}

// Decode extracts content from data already in memory. name is used for
// extension based detection and to name the content of compressed
// streams.
func (l *Loader) Decode(name string, data []byte, extensions []string) (*ROM, error) {
	format := detectFormat(data, name, extensions)

	var rom *ROM
	var err error
	switch format {
	case FormatRaw:
		if int64(len(data)) > l.maxSize() {
			return nil, ErrFileTooLarge
		}
		rom = &ROM{Name: path.Base(name), Data: data}
	case FormatZIP:
		rom, err = l.extractFromZIP(data, extensions)
	case Format7z:
		rom, err = l.extractFrom7z(data, extensions)
	case FormatRAR:
		rom, err = l.extractFromRAR(data, extensions)
	case FormatGzip, FormatZstd, FormatXZ, FormatBrotli:
		rom, err = l.extractFromStream(format, name, data, extensions)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	if err != nil {
		return nil, err
	}
	rom.Format = format
	return rom, nil
}

// Load reads content from the operating system file system with the
// default size limit.
func Load(name string, extensions []string) (*ROM, error) {
	return NewOS().Load(name, extensions)
}

// detectFormat determines the file format based on magic bytes and extension.
func detectFormat(header []byte, name string, extensions []string) Format {
	switch {
	case bytes.HasPrefix(header, magicZIP), bytes.HasPrefix(header, magicZIPEnd):
		return FormatZIP
	case bytes.HasPrefix(header, magicRAR):
		return FormatRAR
	case bytes.HasPrefix(header, magic7z):
		return Format7z
	case bytes.HasPrefix(header, magicXZ):
		return FormatXZ
	case bytes.HasPrefix(header, magicZstd):
		return FormatZstd
	case bytes.HasPrefix(header, magicGzip):
		return FormatGzip
	}

	// Check if the file extension matches a known content extension before
	// archive extensions, so a core that accepts ".zip" content gets it raw.
	if isROMFile(name, extensions) {
		return FormatRaw
	}

	switch strings.ToLower(path.Ext(name)) {
	case ".zip":
		return FormatZIP
	case ".7z":
		return Format7z
	case ".gz", ".tgz":
		return FormatGzip
	case ".rar":
		return FormatRAR
	case ".zst", ".tzst":
		return FormatZstd
	case ".xz", ".txz":
		return FormatXZ
	case ".br":
		return FormatBrotli
	}
	return FormatUnknown
}

// isROMFile checks if a filename has one of the given extensions (case-insensitive)
func isROMFile(name string, extensions []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range extensions {
		ext = strings.ToLower(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// limitedRead reads from r up to max bytes, returning an error if exceeded
func (l *Loader) limitedRead(r io.Reader, max int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > max {
		return nil, ErrFileTooLarge
	}
	return data, nil
}

// readEntry reads one extracted file with the content size limit.
func (l *Loader) readEntry(r io.Reader, name string) (*ROM, error) {
	data, err := l.limitedRead(r, l.maxSize())
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return &ROM{Name: path.Base(name), Data: data}, nil
}
