package adapter

import (
	"bytes"
	"errors"
	"testing"
	"unsafe"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user-none/goretro/abi"
	emucore "github.com/user-none/goretro/api"
	"github.com/user-none/goretro/retro"
)

type fakeEmu struct {
	rom     []byte
	frames  int
	input   map[int]uint32
	region  emucore.Region
	options map[string]string
	sram    []byte
	ram     []byte
	height  int
	state   []byte
	closed  bool
}

func (e *fakeEmu) RunFrame() {
	e.frames++
	e.ram[0] = byte(e.frames)
}

// GetFramebuffer returns 4 pixels per row of R=1 G=2 B=3 A=0.
func (e *fakeEmu) GetFramebuffer() []byte {
	fb := make([]byte, 4*4*e.height)
	for i := 0; i < len(fb); i += 4 {
		fb[i], fb[i+1], fb[i+2] = 1, 2, 3
	}
	return fb
}

func (e *fakeEmu) GetFramebufferStride() int { return 16 }
func (e *fakeEmu) GetActiveHeight() int { return e.height }
func (e *fakeEmu) GetAudioSamples() []int16 { return []int16{1, 2, 3, 4} }
func (e *fakeEmu) SetInput(player int, buttons uint32) { e.input[player] = buttons }
func (e *fakeEmu) GetRegion() emucore.Region { return e.region }
func (e *fakeEmu) SetRegion(r emucore.Region) { e.region = r }
func (e *fakeEmu) SetOption(key, value string) { e.options[key] = value }
func (e *fakeEmu) Close() { e.closed = true }

func (e *fakeEmu) GetTiming() emucore.Timing {
	if e.region == emucore.RegionPAL {
		return emucore.Timing{FPS: 50, Scanlines: 313}
	}
	return emucore.Timing{FPS: 60, Scanlines: 262}
}

func (e *fakeEmu) Serialize() ([]byte, error) { return append([]byte(nil), e.state...), nil }

func (e *fakeEmu) Deserialize(data []byte) error {
	e.state = data
	return nil
}

func (e *fakeEmu) MemoryMap() []emucore.MemoryRegion {
	return []emucore.MemoryRegion{
		{Type: emucore.MemorySaveRAM, Size: len(e.sram)},
		{Type: emucore.MemorySystemRAM, Size: len(e.ram)},
	}
}

func (e *fakeEmu) ReadRegion(t emucore.MemoryType) []byte {
	if t == emucore.MemorySaveRAM {
		return append([]byte(nil), e.sram...)
	}
	return append([]byte(nil), e.ram...)
}

func (e *fakeEmu) WriteRegion(t emucore.MemoryType, data []byte) {
	if t == emucore.MemorySaveRAM {
		copy(e.sram, data)
	}
}

// batteryEmu hides the memory map of fakeEmu and keeps save RAM as
// battery RAM instead.
type batteryEmu struct {
	emucore.Emulator
	sram []byte
}

func (e *batteryEmu) HasSRAM() bool { return true }
func (e *batteryEmu) GetSRAM() []byte { return append([]byte(nil), e.sram...) }
func (e *batteryEmu) SetSRAM(data []byte) { copy(e.sram, data) }

type fakeFactory struct {
	created []*fakeEmu
	battery *batteryEmu
	fail    error
}

func (f *fakeFactory) SystemInfo() emucore.SystemInfo {
	return emucore.SystemInfo{
		CoreName:        "fake",
		CoreVersion:     "1.0",
		Extensions:      []string{".fk"},
		ScreenWidth:     4,
		MaxScreenHeight: 3,
		SampleRate:      44100,
		Players:         2,
		Buttons:         []emucore.Button{{Name: "A", ID: 4}, {Name: "Start", ID: 5}},
		CoreOptions: []emucore.CoreOption{
			{Key: "palette", Label: "Palette", Type: emucore.CoreOptionSelect, Default: "warm", Values: []string{"cold", "warm"}, Category: emucore.CoreOptionCategoryVideo},
			{Key: "sprites", Label: "Sprite limit", Type: emucore.CoreOptionBool, Default: "true", Category: emucore.CoreOptionCategoryVideo},
			{Key: "volume", Label: "Volume", Type: emucore.CoreOptionRange, Default: "10", Min: 0, Max: 10, Step: 5, Category: emucore.CoreOptionCategoryAudio},
		},
		SerializeSize:    64,
		PixelAspectRatio: 1,
	}
}

func (f *fakeFactory) CreateEmulator(rom []byte, region emucore.Region) (emucore.Emulator, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	e := &fakeEmu{
		rom:     rom,
		input:   map[int]uint32{},
		region:  region,
		options: map[string]string{},
		sram:    make([]byte, 8),
		ram:     make([]byte, 4),
		height:  3,
	}
	f.created = append(f.created, e)
	if f.battery != nil {
		f.battery.Emulator = e
		return f.battery, nil
	}
	return e, nil
}

func (f *fakeFactory) DetectRegion(rom []byte) (emucore.Region, bool) {
	if len(rom) > 0 && rom[0] == 'P' {
		return emucore.RegionPAL, true
	}
	return emucore.RegionNTSC, false
}

func (f *fakeFactory) emu() *fakeEmu { return f.created[len(f.created)-1] }

var testMapping = []RetropadMapping{
	{RetroID: abi.JoypadA, BitID: 4},
	{RetroID: abi.JoypadStart, BitID: 5},
}

// host answers the environment commands the adapter issues.
type host struct {
	vars        map[string]string
	declared    map[string]string
	updated     bool
	pixelFormat int32
	geometry    []abi.GameGeometry
	keep        [][]byte
}

func goString(p *byte) string {
	if p == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return string(unsafe.Slice(p, n))
}

func (h *host) cstr(s string) *byte {
	b := append([]byte(s), 0)
	h.keep = append(h.keep, b)
	return &b[0]
}

func (h *host) env(cmd uint32, data unsafe.Pointer) bool {
	switch cmd {
	case abi.EnvSetPixelFormat:
		h.pixelFormat = *(*int32)(data)
		return true
	case abi.EnvGetVariable:
		if data == nil {
			return true
		}
		v := (*abi.Variable)(data)
		val, ok := h.vars[goString(v.Key)]
		if !ok {
			return false
		}
		v.Value = h.cstr(val)
		return true
	case abi.EnvGetVariableUpdate:
		*(*bool)(data) = h.updated
		h.updated = false
		return true
	case abi.EnvSetVariables:
		h.declared = map[string]string{}
		for v := (*abi.Variable)(data); v.Key != nil; v = (*abi.Variable)(unsafe.Add(unsafe.Pointer(v), unsafe.Sizeof(*v))) {
			h.declared[goString(v.Key)] = goString(v.Value)
		}
		return true
	case abi.EnvSetGeometry:
		h.geometry = append(h.geometry, *(*abi.GameGeometry)(data))
		return true
	case abi.EnvSetInputDescriptors:
		return true
	}
	return false
}

type session struct {
	d       *retro.Dispatcher
	h       *host
	f       *fakeFactory
	frames  [][]byte
	pitches []uintptr
	audio   []uintptr
	pressed map[uint32]bool
	log     bytes.Buffer
}

func newSession(t *testing.T, vars map[string]string) *session {
	t.Helper()
	s := &session{
		h:       &host{vars: vars},
		f:       &fakeFactory{},
		pressed: map[uint32]bool{},
	}
	cfg := retro.DefaultConfig()
	cfg.Stderr = &s.log
	s.d = retro.NewDispatcher(New(s.f, testMapping), cfg, retro.Hooks{})
	s.d.SetEnvironment(s.h.env)
	s.d.SetVideoRefresh(func(data unsafe.Pointer, w, h uint32, pitch uintptr) {
		s.frames = append(s.frames, append([]byte(nil), unsafe.Slice((*byte)(data), uintptr(h)*pitch)...))
		s.pitches = append(s.pitches, pitch)
	}, nil)
	s.d.SetAudioSampleBatch(func(data *int16, frames uintptr) uintptr {
		s.audio = append(s.audio, frames)
		return frames
	})
	s.d.SetInputState(func(port, device, index, id uint32) int16 {
		if port == 0 && s.pressed[id] {
			return 1
		}
		return 0
	})
	s.d.Init()
	return s
}

func (s *session) load(t *testing.T, name string, data []byte) bool {
	t.Helper()
	game := abi.GameInfo{Path: s.h.cstr(name), Size: uintptr(len(data))}
	if len(data) > 0 {
		game.Data = unsafe.Pointer(&data[0])
	}
	return s.d.LoadGame(&game)
}

func TestConvertRGBAToXRGB8888(t *testing.T) {
	testCases := []struct {
		name string
		src  []byte
		want []byte
	}{
		{"channels swap", []byte{0xFF, 0x80, 0x40, 0x00}, []byte{0x40, 0x80, 0xFF, 0xFF}},
		{"alpha ignored", []byte{0x12, 0x34, 0x56, 0x80}, []byte{0x56, 0x34, 0x12, 0xFF}},
		{"two pixels", []byte{1, 2, 3, 4, 5, 6, 7, 8}, []byte{3, 2, 1, 0xFF, 7, 6, 5, 0xFF}},
		{"empty", []byte{}, []byte{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dst := make([]byte, len(tc.src))
			convertRGBAToXRGB8888(tc.src, dst, len(tc.src)/4)
			assert.Equal(t, tc.want, dst)
		})
	}
}

func TestButtons(t *testing.T) {
	c := New(&fakeFactory{}, testMapping)
	testCases := []struct {
		name  string
		state retro.JoypadState
		want  uint32
	}{
		{"none", 0, 0},
		{"dpad", retro.JoypadUp | retro.JoypadRight, 1<<emucore.ButtonUp | 1<<emucore.ButtonRight},
		{"mapped", retro.JoypadA | retro.JoypadStart, 1<<4 | 1<<5},
		{"unmapped ignored", retro.JoypadL | retro.JoypadDown, 1 << emucore.ButtonDown},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, c.buttons(tc.state))
		})
	}
}

func TestSystemInfo(t *testing.T) {
	info := New(&fakeFactory{}, nil).SystemInfo()
	assert.Equal(t, "fake", info.LibraryName)
	assert.Equal(t, "1.0", info.LibraryVersion)
	assert.Equal(t, "fk", info.ValidExtensions[0])
	assert.Contains(t, info.ValidExtensions, "7z")
	assert.True(t, info.BlockExtract)
	assert.False(t, info.NeedFullpath)
}

func TestCoreOptions(t *testing.T) {
	opts := New(&fakeFactory{}, nil).CoreOptions()
	require.NoError(t, opts.Validate())

	var keys []string
	for _, d := range opts.Definitions {
		keys = append(keys, d.Key)
	}
	assert.Equal(t, []string{"fake_region", "fake_palette", "fake_sprites", "fake_volume"}, keys)

	var cats []string
	for _, c := range opts.Categories {
		cats = append(cats, c.Key)
	}
	assert.Equal(t, []string{"audio", "video", "system"}, cats)

	volume := opts.Definitions[3]
	assert.Equal(t, []retro.OptionValue{{Value: "0"}, {Value: "5"}, {Value: "10"}}, volume.Values)
	assert.Equal(t, "10", volume.DefaultValue())
	assert.Equal(t, []retro.OptionValue{{Value: "true"}, {Value: "false"}}, opts.Definitions[2].Values)
}

func TestRangeOptionCapped(t *testing.T) {
	vals := optionValues(emucore.CoreOption{Type: emucore.CoreOptionRange, Min: 0, Max: 1000})
	assert.Len(t, vals, retro.MaxOptionValues)
	assert.Equal(t, "0", vals[0].Value)
}

// TestOptionsDeclaredToHost verifies a host without options versions gets
// the legacy strings with the default first.
func TestOptionsDeclaredToHost(t *testing.T) {
	s := newSession(t, nil)
	assert.Equal(t, "Region; Auto|NTSC|PAL", s.h.declared["fake_region"])
	assert.Equal(t, "Palette; warm|cold", s.h.declared["fake_palette"])
	assert.Equal(t, "Volume; 10|0|5", s.h.declared["fake_volume"])
}

func TestLoadAndRun(t *testing.T) {
	s := newSession(t, nil)
	require.True(t, s.load(t, "/roms/game.fk", []byte("NTSC game")))
	assert.Equal(t, int32(abi.PixelFormatXRGB8888), s.h.pixelFormat)

	emu := s.f.emu()
	assert.Equal(t, []byte("NTSC game"), emu.rom)
	assert.Equal(t, uint32(abi.RegionNTSC), s.d.Region())

	s.pressed[abi.JoypadUp] = true
	s.pressed[abi.JoypadA] = true
	s.d.Run()

	assert.Equal(t, 1<<emucore.ButtonUp|uint32(1<<4), emu.input[0])
	assert.Equal(t, uint32(0), emu.input[1])

	require.Len(t, s.frames, 1)
	assert.Equal(t, uintptr(16), s.pitches[0])
	assert.Len(t, s.frames[0], 16*3)
	assert.Equal(t, []byte{3, 2, 1, 0xFF}, s.frames[0][:4])
	assert.Equal(t, []uintptr{2}, s.audio)

	av := s.d.SystemAVInfo()
	assert.Equal(t, 60.0, av.Timing.FPS)
	assert.Equal(t, 44100.0, av.Timing.SampleRate)
	assert.InDelta(t, 4.0/3.0, av.Geometry.AspectRatio, 1e-6)
}

func TestLoadArchivedContent(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	fw, err := w.Create("set/game.fk")
	require.NoError(t, err)
	_, err = fw.Write([]byte("zipped game"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	s := newSession(t, nil)
	require.True(t, s.load(t, "/roms/set.zip", buf.Bytes()))
	assert.Equal(t, []byte("zipped game"), s.f.emu().rom)
}

func TestLoadFailures(t *testing.T) {
	s := newSession(t, nil)
	assert.False(t, s.d.LoadGame(nil))

	s.f.fail = errors.New("bad header")
	assert.False(t, s.load(t, "/roms/game.fk", []byte("game")))
	assert.Contains(t, s.log.String(), "create emulator: bad header")
}

func TestRegionOption(t *testing.T) {
	testCases := []struct {
		name   string
		option string
		rom    string
		want   uint32
		fps    float64
	}{
		{"auto detects pal", "Auto", "PAL game", abi.RegionPAL, 50},
		{"auto detects ntsc", "Auto", "game", abi.RegionNTSC, 60},
		{"forced ntsc", "NTSC", "PAL game", abi.RegionNTSC, 60},
		{"forced pal", "PAL", "game", abi.RegionPAL, 50},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newSession(t, map[string]string{"fake_region": tc.option})
			require.True(t, s.load(t, "game.fk", []byte(tc.rom)))
			assert.Equal(t, tc.want, s.d.Region())
			assert.Equal(t, tc.fps, s.d.SystemAVInfo().Timing.FPS)
		})
	}
}

// TestOptionsReachEmulator verifies values read before loading reach the
// new emulator and later changes are forwarded once.
func TestOptionsReachEmulator(t *testing.T) {
	vars := map[string]string{"fake_palette": "cold"}
	s := newSession(t, vars)
	require.True(t, s.load(t, "game.fk", []byte("game")))

	emu := s.f.emu()
	assert.Equal(t, map[string]string{"palette": "cold"}, emu.options)

	vars["fake_palette"] = "warm"
	vars["fake_volume"] = "5"
	s.h.updated = true
	s.d.Run()
	assert.Equal(t, map[string]string{"palette": "warm", "volume": "5"}, emu.options)

	vars["fake_region"] = "PAL"
	s.h.updated = true
	s.d.Run()
	assert.Equal(t, emucore.RegionPAL, emu.region)
}

func TestGeometryFollowsActiveHeight(t *testing.T) {
	s := newSession(t, nil)
	require.True(t, s.load(t, "game.fk", []byte("game")))
	s.d.Run()
	assert.Empty(t, s.h.geometry)

	s.f.emu().height = 2
	s.d.Run()
	require.Len(t, s.h.geometry, 1)
	g := s.h.geometry[0]
	assert.Equal(t, uint32(2), g.BaseHeight)
	assert.Equal(t, uint32(3), g.MaxHeight)
	assert.InDelta(t, 2.0, g.AspectRatio, 1e-6)
	assert.Len(t, s.frames[1], 16*2)
}

func TestMemoryRegions(t *testing.T) {
	s := newSession(t, nil)
	require.True(t, s.load(t, "game.fk", []byte("game")))
	emu := s.f.emu()

	assert.Equal(t, uintptr(8), s.d.MemorySize(abi.MemorySaveRAM))
	assert.Equal(t, uintptr(4), s.d.MemorySize(abi.MemorySystemRAM))
	assert.Equal(t, uintptr(0), s.d.MemorySize(abi.MemoryVideoRAM))

	// The host restores save RAM before the first frame.
	sram := unsafe.Slice((*byte)(s.d.MemoryData(abi.MemorySaveRAM)), 8)
	copy(sram, "SAVEDATA")
	s.d.Run()
	assert.Equal(t, []byte("SAVEDATA"), emu.sram)

	ram := unsafe.Slice((*byte)(s.d.MemoryData(abi.MemorySystemRAM)), 4)
	assert.Equal(t, byte(1), ram[0])

	s.d.UnloadGame()
	assert.True(t, emu.closed)
	assert.Equal(t, uintptr(0), s.d.MemorySize(abi.MemorySaveRAM))
}

func TestSaveStates(t *testing.T) {
	s := newSession(t, nil)
	require.True(t, s.load(t, "game.fk", []byte("game")))
	emu := s.f.emu()
	emu.state = bytes.Repeat([]byte("state"), 12)

	size := s.d.SerializeSize()
	assert.Equal(t, uintptr(stateBound(64)), size)

	buf := make([]byte, size)
	require.True(t, s.d.Serialize(unsafe.Pointer(&buf[0]), size))

	want := emu.state
	emu.state = nil
	require.True(t, s.d.Unserialize(unsafe.Pointer(&buf[0]), size))
	assert.Equal(t, want, emu.state)

	bad := make([]byte, size)
	assert.False(t, s.d.Unserialize(unsafe.Pointer(&bad[0]), size))
}

func TestResetRecreatesEmulator(t *testing.T) {
	s := newSession(t, map[string]string{"fake_palette": "cold"})
	require.True(t, s.load(t, "game.fk", []byte("game")))
	first := s.f.emu()

	s.d.Reset()
	require.Len(t, s.f.created, 2)
	assert.True(t, first.closed)
	assert.Equal(t, "cold", s.f.emu().options["palette"])
}

func TestBatterySaveRAM(t *testing.T) {
	s := newSession(t, nil)
	battery := &batteryEmu{sram: []byte("INIT")}
	s.f.battery = battery
	require.True(t, s.load(t, "game.fk", []byte("game")))

	assert.Equal(t, uintptr(4), s.d.MemorySize(abi.MemorySaveRAM))
	assert.Equal(t, uintptr(0), s.d.MemorySize(abi.MemorySystemRAM))

	sram := unsafe.Slice((*byte)(s.d.MemoryData(abi.MemorySaveRAM)), 4)
	assert.Equal(t, []byte("INIT"), sram)

	copy(sram, "SAVE")
	s.d.Run()
	assert.Equal(t, []byte("SAVE"), battery.sram)
	assert.Equal(t, []byte("SAVE"), sram)
}
