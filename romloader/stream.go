package romloader

import (
	"archive/tar"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// streamSuffixes are stripped from the file name to name the content of a
// compressed stream. Tar shorthands map to ".tar".
var streamSuffixes = map[Format][]string{
	FormatGzip:   {".tgz", ".gz"},
	FormatZstd:   {".tzst", ".zst"},
	FormatXZ:     {".txz", ".xz"},
	FormatBrotli: {".br"},
}

func openStream(format Format, r io.Reader) (io.ReadCloser, error) {
	switch format {
	case FormatGzip:
		return gzip.NewReader(r)
	case FormatZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case FormatXZ:
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(xr), nil
	case FormatBrotli:
		return io.NopCloser(brotli.NewReader(r)), nil
	}
	return nil, fmt.Errorf("%w: %s stream", ErrUnsupportedFormat, format)
}

// extractFromStream decompresses a single stream. A tar archive inside is
// searched for the first content file, anything else is the content.
func (l *Loader) extractFromStream(format Format, name string, data []byte, extensions []string) (*ROM, error) {
	rc, err := openStream(format, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s reader: %w", format, err)
	}
	defer rc.Close()

	inner, err := l.limitedRead(rc, l.maxSize())
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %s: %w", format, err)
	}

	base := innerName(format, path.Base(name))
	if isTar(inner) || strings.HasSuffix(strings.ToLower(base), ".tar") {
		return l.extractFromTar(bytes.NewReader(inner), extensions)
	}
	return &ROM{Name: base, Data: inner}, nil
}

func innerName(format Format, name string) string {
	lower := strings.ToLower(name)
	for _, suffix := range streamSuffixes[format] {
		if strings.HasSuffix(lower, suffix) {
			stem := name[:len(name)-len(suffix)]
			if strings.HasPrefix(suffix, ".t") {
				return stem + ".tar"
			}
			return stem
		}
	}
	return name
}

func isTar(data []byte) bool {
	end := tarMagicOffset + len(magicTar)
	return len(data) >= end && bytes.Equal(data[tarMagicOffset:end], magicTar)
}

// extractFromTar extracts the first content file from a tar archive
func (l *Loader) extractFromTar(r io.Reader, extensions []string) (*ROM, error) {
	tr := tar.NewReader(r)

	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tar entry: %w", err)
		}
		if header.Typeflag != tar.TypeReg || !isROMFile(header.Name, extensions) {
			continue
		}
		return l.readEntry(tr, header.Name)
	}

	return nil, ErrNoROMFile
}
