package romloader

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/nwaples/rardecode/v2"
)

// extractFromRAR extracts the first content file from a RAR archive.
// rardecode can panic on corrupted input, that is reported as an error.
func (l *Loader) extractFromRAR(data []byte, extensions []string) (rom *ROM, err error) {
	defer func() {
		if p := recover(); p != nil {
			rom, err = nil, fmt.Errorf("corrupt rar: %v", p)
		}
	}()

	r, err := rardecode.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open rar: %w", err)
	}

	for {
		header, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read rar entry: %w", err)
		}
		if header.IsDir || !isROMFile(header.Name, extensions) {
			continue
		}
		return l.readEntry(r, header.Name)
	}

	return nil, ErrNoROMFile
}
