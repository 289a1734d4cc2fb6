// Package adapter runs an emucore emulator as a libretro core. It maps
// RetroPad input to emucore button bits, converts RGBA frames to
// XRGB8888, declares the emulator's core options and exposes its memory
// regions and save states.
package adapter

import (
	"errors"
	"fmt"
	"log/slog"
	"path"

	"github.com/spf13/afero"

	"github.com/user-none/goretro/abi"
	emucore "github.com/user-none/goretro/api"
	"github.com/user-none/goretro/retro"
	"github.com/user-none/goretro/romloader"
)

// RetropadMapping maps a libretro button ID to an emucore bit position.
type RetropadMapping struct {
	RetroID uint32 // abi.Joypad* button id
	BitID   int    // emucore bit position (from Button.ID)
}

// ErrNoContent is returned when the host loads without content.
var ErrNoContent = errors.New("adapter: content required")

// Core implements retro.Core for an emucore.CoreFactory.
type Core struct {
	factory  emucore.CoreFactory
	inputMap []RetropadMapping
	sys      emucore.SystemInfo
	prefix   string
	log      *slog.Logger

	emulator     emucore.Emulator
	saveStater   emucore.SaveStater
	memoryMapper emucore.MemoryMapper
	batterySaver emucore.BatterySaver

	region         emucore.Region
	detectedRegion emucore.Region
	optionRegion   string
	options        map[string]string

	romData []byte
	xrgbBuf []byte
	width   int
	height  int

	// memory holds the regions the host reads through
	// retro_get_memory_data, keyed by libretro memory id
	memory          map[uint32][]byte
	sramFromBattery bool

	vfs bool
}

var (
	_ retro.Core                  = (*Core)(nil)
	_ retro.EnvironmentSetter     = (*Core)(nil)
	_ retro.OptionsProvider       = (*Core)(nil)
	_ retro.OptionsChangedHandler = (*Core)(nil)
	_ retro.Serializer            = (*Core)(nil)
	_ retro.MemoryExposer         = (*Core)(nil)
	_ retro.RegionReporter        = (*Core)(nil)
	_ retro.Resetter              = (*Core)(nil)
	_ retro.GameUnloader          = (*Core)(nil)
	_ retro.Deiniter              = (*Core)(nil)
)

// New returns a core for f. mapping lists the RetroPad buttons beyond the
// d-pad, which always maps to emucore.ButtonUp..ButtonRight.
func New(f emucore.CoreFactory, mapping []RetropadMapping) *Core {
	sys := f.SystemInfo()
	return &Core{
		factory:      f,
		inputMap:     mapping,
		sys:          sys,
		prefix:       sys.CoreName + "_",
		log:          slog.Default(),
		optionRegion: regionAuto,
		options:      make(map[string]string),
	}
}

// SystemInfo implements retro.Core. Archives are extracted by the core, so
// the host is told not to.
func (c *Core) SystemInfo() retro.SystemInfo {
	exts := make([]string, 0, len(c.sys.Extensions)+len(romloader.ArchiveExtensions))
	for _, e := range c.sys.Extensions {
		exts = append(exts, trimDot(e))
	}
	exts = append(exts, romloader.ArchiveExtensions...)
	return retro.SystemInfo{
		LibraryName:     c.sys.CoreName,
		LibraryVersion:  c.sys.CoreVersion,
		ValidExtensions: exts,
		BlockExtract:    true,
	}
}

// SetEnvironment takes the dispatcher's logger and tries to read content
// through the host VFS.
func (c *Core) SetEnvironment(initial bool, ctx *retro.SetEnvironmentContext) {
	c.log = ctx.Logger()
	if !initial {
		return
	}
	if _, err := ctx.EnableVFSInterface(1); err == nil {
		c.vfs = true
	}
}

// Init implements retro.Core.
func (c *Core) Init(ctx *retro.InitContext) {
	maxPixels := c.sys.ScreenWidth * c.sys.MaxScreenHeight
	c.xrgbBuf = make([]byte, maxPixels*4)
	c.width = c.sys.ScreenWidth
	c.height = c.sys.MaxScreenHeight

	if c.sys.ConsoleID != 0 {
		if err := ctx.SetSupportAchievements(true); err != nil {
			c.log.Debug("frontend did not take achievement support", "error", err)
		}
	}
}

// Deinit drops the emulator and content.
func (c *Core) Deinit(ctx *retro.DeinitContext) {
	c.unload()
	c.xrgbBuf = nil
}

// SystemAVInfo implements retro.Core.
func (c *Core) SystemAVInfo(ctx *retro.GetAvInfoContext) retro.SystemAVInfo {
	fps := 60.0
	if c.emulator != nil {
		fps = c.emulator.GetTiming().FPS
	}

	baseWidth := c.width
	if baseWidth == 0 {
		baseWidth = c.sys.ScreenWidth
	}
	baseHeight := c.height
	if baseHeight == 0 {
		baseHeight = c.sys.MaxScreenHeight
	}
	return retro.SystemAVInfo{
		Geometry: c.geometry(baseWidth, baseHeight),
		Timing: retro.SystemTiming{
			FPS:        fps,
			SampleRate: float64(c.sys.SampleRate),
		},
	}
}

func (c *Core) geometry(width, height int) retro.GameGeometry {
	return retro.GameGeometry{
		BaseWidth:   uint32(width),
		BaseHeight:  uint32(height),
		MaxWidth:    uint32(c.sys.ScreenWidth),
		MaxHeight:   uint32(c.sys.MaxScreenHeight),
		AspectRatio: float32(emucore.DisplayAspectRatio(width, height, c.sys.PixelAspectRatio)),
	}
}

// LoadGame implements retro.Core.
func (c *Core) LoadGame(game *retro.GameInfo, ctx *retro.LoadGameContext) error {
	if game == nil || (len(game.Data) == 0 && game.Path == "") {
		return ErrNoContent
	}
	if err := ctx.SetPixelFormat(retro.PixelFormatXRGB8888); err != nil {
		return fmt.Errorf("XRGB8888 pixel format: %w", err)
	}

	rom, err := c.readContent(game, ctx.Generic())
	if err != nil {
		return err
	}
	c.romData = rom.Data

	c.detectedRegion, _ = c.factory.DetectRegion(c.romData)
	c.region = c.detectedRegion
	c.applyRegionOption()

	emu, err := c.factory.CreateEmulator(c.romData, c.region)
	if err != nil {
		c.romData = nil
		return fmt.Errorf("create emulator: %w", err)
	}
	c.setEmulator(emu)
	c.applyOptions()
	c.allocMemory()

	if err := ctx.Generic().SetInputDescriptors(c.inputDescriptors()); err != nil {
		c.log.Debug("frontend did not take input descriptors", "error", err)
	}
	c.log.Info("content loaded", "name", rom.Name, "format", rom.Format, "region", c.region)
	return nil
}

// readContent copies host data, extracting archives, or reads the path
// through the host VFS when the host passed no data.
func (c *Core) readContent(game *retro.GameInfo, ctx *retro.GenericContext) (*romloader.ROM, error) {
	if len(game.Data) > 0 {
		name := game.Path
		if name == "" {
			name = "content"
		}
		data := make([]byte, len(game.Data))
		copy(data, game.Data)
		return new(romloader.Loader).Decode(path.Base(name), data, c.sys.Extensions)
	}

	fs := afero.NewOsFs()
	if c.vfs {
		fs = retro.NewFS(ctx)
	}
	return romloader.New(fs).Load(game.Path, c.sys.Extensions)
}

// UnloadGame implements retro.GameUnloader.
func (c *Core) UnloadGame(ctx *retro.UnloadGameContext) {
	c.unload()
}

func (c *Core) unload() {
	if c.emulator != nil {
		c.emulator.Close()
	}
	c.emulator = nil
	c.saveStater = nil
	c.memoryMapper = nil
	c.batterySaver = nil
	c.romData = nil
	c.memory = nil
	c.sramFromBattery = false
}

// Reset recreates the emulator from the loaded content.
func (c *Core) Reset(ctx *retro.ResetContext) {
	if c.romData == nil {
		return
	}

	c.applyRegionOption()

	emu, err := c.factory.CreateEmulator(c.romData, c.region)
	if err != nil {
		c.log.Error("failed to recreate emulator", "error", err)
		return
	}
	if c.emulator != nil {
		c.emulator.Close()
	}
	c.setEmulator(emu)
	c.applyOptions()
	c.pushSaveRAM()
}

// setEmulator sets the emulator and detects optional interface support.
func (c *Core) setEmulator(emu emucore.Emulator) {
	c.emulator = emu
	c.saveStater, _ = emu.(emucore.SaveStater)
	c.memoryMapper, _ = emu.(emucore.MemoryMapper)
	c.batterySaver, _ = emu.(emucore.BatterySaver)
}

// Region implements retro.RegionReporter.
func (c *Core) Region(ctx *retro.GetRegionContext) retro.Region {
	if c.region == emucore.RegionPAL {
		return retro.RegionPAL
	}
	return retro.RegionNTSC
}

// Run implements retro.Core.
func (c *Core) Run(ctx *retro.RunContext, delta int64) {
	if c.emulator == nil {
		return
	}

	for player := 0; player < c.sys.Players; player++ {
		c.emulator.SetInput(player, c.buttons(ctx.JoypadBitmask(uint32(player), 0)))
	}

	c.pushSaveRAM()
	c.emulator.RunFrame()
	c.pullMemory()

	if fb := c.emulator.GetFramebuffer(); len(fb) > 0 {
		c.outputVideo(ctx, fb, c.emulator.GetFramebufferStride(), c.emulator.GetActiveHeight())
	}

	if samples := c.emulator.GetAudioSamples(); len(samples) > 0 {
		ctx.Audio().BatchAudioSamples(samples)
	}
}

var dpad = [...]struct {
	retro retro.JoypadState
	bit   int
}{
	{retro.JoypadUp, emucore.ButtonUp},
	{retro.JoypadDown, emucore.ButtonDown},
	{retro.JoypadLeft, emucore.ButtonLeft},
	{retro.JoypadRight, emucore.ButtonRight},
}

// buttons builds the emucore bitmask for one player.
func (c *Core) buttons(state retro.JoypadState) uint32 {
	var buttons uint32
	for _, d := range dpad {
		if state.Has(d.retro) {
			buttons |= 1 << d.bit
		}
	}
	for _, m := range c.inputMap {
		if state.Has(retro.JoypadState(1) << m.RetroID) {
			buttons |= 1 << uint(m.BitID)
		}
	}
	return buttons
}

func (c *Core) inputDescriptors() []retro.InputDescriptor {
	names := make(map[int]string, len(c.sys.Buttons))
	for _, b := range c.sys.Buttons {
		names[b.ID] = b.Name
	}
	dpadNames := map[uint32]string{
		abi.JoypadUp:    "D-Pad Up",
		abi.JoypadDown:  "D-Pad Down",
		abi.JoypadLeft:  "D-Pad Left",
		abi.JoypadRight: "D-Pad Right",
	}

	var descs []retro.InputDescriptor
	for player := 0; player < c.sys.Players; player++ {
		for _, id := range []uint32{abi.JoypadUp, abi.JoypadDown, abi.JoypadLeft, abi.JoypadRight} {
			descs = append(descs, retro.InputDescriptor{
				Port: uint32(player), Device: abi.DeviceJoypad, ID: id, Description: dpadNames[id],
			})
		}
		for _, m := range c.inputMap {
			name, ok := names[m.BitID]
			if !ok {
				continue
			}
			descs = append(descs, retro.InputDescriptor{
				Port: uint32(player), Device: abi.DeviceJoypad, ID: m.RetroID, Description: name,
			})
		}
	}
	return descs
}

func trimDot(ext string) string {
	if len(ext) > 0 && ext[0] == '.' {
		return ext[1:]
	}
	return ext
}
