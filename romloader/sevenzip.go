package romloader

import (
	"bytes"
	"fmt"

	"github.com/bodgit/sevenzip"
)

// extractFrom7z extracts the first content file from a 7z archive
func (l *Loader) extractFrom7z(data []byte, extensions []string) (*ROM, error) {
	r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open 7z: %w", err)
	}

	for _, f := range r.File {
		if f.FileInfo().IsDir() || !isROMFile(f.Name, extensions) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s in archive: %w", f.Name, err)
		}
		defer rc.Close()
		return l.readEntry(rc, f.Name)
	}

	return nil, ErrNoROMFile
}
