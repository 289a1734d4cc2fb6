package retro

import (
	"strings"
	"unicode/utf8"
	"unsafe"

	lru "github.com/hashicorp/golang-lru/v2"
)

// GoString copies a NUL terminated host string.
func GoString(p *byte) (string, error) {
	if p == nil {
		return "", nullPointer("string")
	}
	s := goStringUnchecked(p)
	if !utf8.ValidString(s) {
		return "", ErrNonUTF8
	}
	return s, nil
}

// goStringUnchecked copies without UTF-8 validation. A nil pointer yields "".
func goStringUnchecked(p *byte) string {
	if p == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return string(unsafe.Slice(p, n))
}

// CString returns a NUL terminated copy of s in Go memory. Callers pin the
// result while the host can see it.
func CString(s string) (*byte, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return nil, ErrContainsNul
	}
	b := make([]byte, len(s)+1)
	copy(b, s)
	return &b[0], nil
}

// cstringOrEmpty is CString for strings that were validated earlier.
func cstringOrEmpty(s string) *byte {
	p, err := CString(s)
	if err != nil {
		b := []byte{0}
		return &b[0]
	}
	return p
}

// copyToCBuffer writes s into a host buffer of size n, truncating and
// always NUL terminating.
func copyToCBuffer(s string, buf *byte, n uintptr) {
	if buf == nil || n == 0 {
		return
	}
	dst := unsafe.Slice(buf, n)
	m := copy(dst[:n-1], s)
	dst[m] = 0
}

const internSize = 256

// Keys for per-frame variable lookups are converted once and reused.
var interned, _ = lru.New[string, *byte](internSize)

func internCString(s string) (*byte, error) {
	if p, ok := interned.Get(s); ok {
		return p, nil
	}
	p, err := CString(s)
	if err != nil {
		return nil, err
	}
	interned.Add(s, p)
	return p, nil
}
