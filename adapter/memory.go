package adapter

import (
	"github.com/user-none/goretro/abi"
	emucore "github.com/user-none/goretro/api"
	"github.com/user-none/goretro/retro"
)

// memoryIDs maps emucore region types to libretro memory ids.
var memoryIDs = map[emucore.MemoryType]uint32{
	emucore.MemorySaveRAM:   abi.MemorySaveRAM,
	emucore.MemorySystemRAM: abi.MemorySystemRAM,
	emucore.MemoryVideoRAM:  abi.MemoryVideoRAM,
}

// allocMemory allocates the host visible buffers of the emulator's
// memory regions. They keep their address until the content is unloaded.
// Battery RAM of a BatterySaver is the save RAM when the memory map has
// none.
func (c *Core) allocMemory() {
	c.memory = make(map[uint32][]byte)

	if c.memoryMapper != nil {
		for _, r := range c.memoryMapper.MemoryMap() {
			id, ok := memoryIDs[r.Type]
			if !ok || r.Size <= 0 {
				continue
			}
			buf := make([]byte, r.Size)
			copy(buf, c.memoryMapper.ReadRegion(r.Type))
			c.memory[id] = buf
		}
	}

	if _, ok := c.memory[abi.MemorySaveRAM]; !ok && c.batterySaver != nil && c.batterySaver.HasSRAM() {
		if sram := c.batterySaver.GetSRAM(); len(sram) > 0 {
			c.memory[abi.MemorySaveRAM] = sram
			c.sramFromBattery = true
		}
	}
}

// MemoryData implements retro.MemoryExposer.
func (c *Core) MemoryData(id uint32, ctx *retro.GetMemoryDataContext) []byte {
	return c.memory[id]
}

// pushSaveRAM syncs save RAM the host may have written into the emulator.
func (c *Core) pushSaveRAM() {
	buf, ok := c.memory[abi.MemorySaveRAM]
	if !ok {
		return
	}
	data := make([]byte, len(buf))
	copy(data, buf)
	if c.sramFromBattery {
		c.batterySaver.SetSRAM(data)
		return
	}
	c.memoryMapper.WriteRegion(emucore.MemorySaveRAM, data)
}

// pullMemory syncs emulator memory into the host visible buffers.
func (c *Core) pullMemory() {
	if c.sramFromBattery {
		copy(c.memory[abi.MemorySaveRAM], c.batterySaver.GetSRAM())
	}
	if c.memoryMapper == nil {
		return
	}
	for regionType, id := range memoryIDs {
		buf, ok := c.memory[id]
		if !ok || (id == abi.MemorySaveRAM && c.sramFromBattery) {
			continue
		}
		if data := c.memoryMapper.ReadRegion(regionType); len(data) > 0 {
			copy(buf, data)
		}
	}
}
