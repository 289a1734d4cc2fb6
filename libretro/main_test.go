package libretro

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user-none/goretro/retro"
)

type stubCore struct {
	info retro.SystemInfo
}

func (c *stubCore) SystemInfo() retro.SystemInfo { return c.info }

func (c *stubCore) SystemAVInfo(*retro.GetAvInfoContext) retro.SystemAVInfo {
	return retro.SystemAVInfo{}
}

func (c *stubCore) Init(*retro.InitContext) {}

func (c *stubCore) Run(*retro.RunContext, int64) {}

func (c *stubCore) LoadGame(*retro.GameInfo, *retro.LoadGameContext) error { return nil }

func newStubDispatcher(info retro.SystemInfo) *retro.Dispatcher {
	cfg := retro.DefaultConfig()
	cfg.Stderr = nil
	return retro.NewDispatcher(&stubCore{info: info}, cfg, retro.Hooks{})
}

func goString(t *testing.T, p unsafe.Pointer) string {
	t.Helper()
	s, err := retro.GoString((*byte)(p))
	require.NoError(t, err)
	return s
}

func TestStripNul(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"core", "core"},
		{"co\x00re", "core"},
		{"\x00\x00", ""},
		{"gb|gbc\x00", "gb|gbc"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripNul(tt.in), "stripNul(%q)", tt.in)
	}
}

func TestEnsureStrings(t *testing.T) {
	stringsReady = false
	t.Cleanup(func() { stringsReady = false })

	d := newStubDispatcher(retro.SystemInfo{
		LibraryName:     "te\x00st",
		LibraryVersion:  "1.2",
		ValidExtensions: []string{"gb", "gbc"},
		NeedFullpath:    true,
	})
	sys := ensureStrings(d)
	assert.True(t, sys.NeedFullpath)
	assert.Equal(t, "test", goString(t, unsafe.Pointer(libNameStr)))
	assert.Equal(t, "1.2", goString(t, unsafe.Pointer(libVerStr)))
	assert.Equal(t, "gb|gbc", goString(t, unsafe.Pointer(validExtStr)))

	// The host may hold the pointers, so later calls keep them.
	name := libNameStr
	other := newStubDispatcher(retro.SystemInfo{LibraryName: "other"})
	assert.Equal(t, "other", ensureStrings(other).LibraryName)
	assert.Same(t, name, libNameStr)
	assert.Equal(t, "test", goString(t, unsafe.Pointer(libNameStr)))
}

func TestMustDispatcher(t *testing.T) {
	var s retro.Slot
	assert.PanicsWithValue(t, retro.ErrNotInitialized, func() { mustDispatcher(&s) })

	cfg := retro.DefaultConfig()
	cfg.Stderr = nil
	d, err := s.Register(&stubCore{}, cfg, retro.Hooks{})
	require.NoError(t, err)
	assert.Same(t, d, mustDispatcher(&s))
}
