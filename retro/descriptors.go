package retro

import (
	"unsafe"

	"github.com/user-none/goretro/abi"
)

// InputDescriptor names one input of one port for the host's remapping UI.
type InputDescriptor struct {
	Port        uint32
	Device      uint32
	Index       uint32
	ID          uint32
	Description string
}

// ControllerDescription names a device subclass a port accepts.
type ControllerDescription struct {
	Desc string
	ID   uint32
}

// ControllerInfo lists the device subclasses of one port.
type ControllerInfo struct {
	Types []ControllerDescription
}

// SubsystemMemoryInfo describes a save memory type of a subsystem content.
type SubsystemMemoryInfo struct {
	Extension string
	Type      uint32
}

// SubsystemRomInfo describes one content slot of a subsystem.
type SubsystemRomInfo struct {
	Desc            string
	ValidExtensions []string
	NeedFullpath    bool
	BlockExtract    bool
	Required        bool
	Memory          []SubsystemMemoryInfo
}

// SubsystemInfo describes a special content type for LoadGameSpecial.
type SubsystemInfo struct {
	Desc  string
	Ident string
	Roms  []SubsystemRomInfo
	ID    uint32
}

// MemoryDescriptor maps a region of emulated memory. Data must stay
// allocated until Deinit.
type MemoryDescriptor struct {
	Flags      uint64
	Data       []byte
	Offset     uintptr
	Start      uintptr
	Select     uintptr
	Disconnect uintptr
	Len        uintptr
	AddrSpace  string
}

// ContentInfoOverride overrides SystemInfo loading rules for some
// extensions.
type ContentInfoOverride struct {
	Extensions     []string
	NeedFullpath   bool
	PersistentData bool
}

// Variable is a legacy core option declaration or a key/value update.
type Variable struct {
	Key   string
	Value string
}

func buildInputDescriptors(m *hostMemory, descs []InputDescriptor) ([]abi.InputDescriptor, error) {
	out := make([]abi.InputDescriptor, len(descs)+1)
	for i, d := range descs {
		p, err := m.str(d.Description)
		if err != nil {
			return nil, err
		}
		out[i] = abi.InputDescriptor{Port: d.Port, Device: d.Device, Index: d.Index, ID: d.ID, Description: p}
	}
	m.add(&out[0])
	return out, nil
}

func buildControllerInfo(m *hostMemory, infos []ControllerInfo) ([]abi.ControllerInfo, error) {
	out := make([]abi.ControllerInfo, len(infos)+1)
	for i, info := range infos {
		if len(info.Types) == 0 {
			continue
		}
		types := make([]abi.ControllerDescription, len(info.Types))
		for j, t := range info.Types {
			p, err := m.str(t.Desc)
			if err != nil {
				return nil, err
			}
			types[j] = abi.ControllerDescription{Desc: p, ID: t.ID}
		}
		m.add(&types[0])
		out[i] = abi.ControllerInfo{Types: &types[0], NumTypes: uint32(len(types))}
	}
	m.add(&out[0])
	return out, nil
}

func buildSubsystemInfo(m *hostMemory, infos []SubsystemInfo) ([]abi.SubsystemInfo, error) {
	out := make([]abi.SubsystemInfo, len(infos)+1)
	for i, info := range infos {
		desc, err := m.str(info.Desc)
		if err != nil {
			return nil, err
		}
		ident, err := m.str(info.Ident)
		if err != nil {
			return nil, err
		}
		out[i] = abi.SubsystemInfo{Desc: desc, Ident: ident, ID: info.ID}
		if len(info.Roms) == 0 {
			continue
		}

		roms := make([]abi.SubsystemRomInfo, len(info.Roms))
		for j, rom := range info.Roms {
			rd, err := m.str(rom.Desc)
			if err != nil {
				return nil, err
			}
			exts, err := m.extensions(rom.ValidExtensions)
			if err != nil {
				return nil, err
			}
			roms[j] = abi.SubsystemRomInfo{
				Desc:            rd,
				ValidExtensions: exts,
				NeedFullpath:    rom.NeedFullpath,
				BlockExtract:    rom.BlockExtract,
				Required:        rom.Required,
			}
			if len(rom.Memory) == 0 {
				continue
			}
			mem := make([]abi.SubsystemMemoryInfo, len(rom.Memory))
			for k, mi := range rom.Memory {
				ext, err := m.str(mi.Extension)
				if err != nil {
					return nil, err
				}
				mem[k] = abi.SubsystemMemoryInfo{Extension: ext, Type: mi.Type}
			}
			m.add(&mem[0])
			roms[j].Memory = &mem[0]
			roms[j].NumMemory = uint32(len(mem))
		}
		m.add(&roms[0])
		out[i].Roms = &roms[0]
		out[i].NumRoms = uint32(len(roms))
	}
	m.add(&out[0])
	return out, nil
}

func buildMemoryMap(m *hostMemory, descs []MemoryDescriptor) (abi.MemoryMap, error) {
	if len(descs) == 0 {
		return abi.MemoryMap{}, nil
	}
	out := make([]abi.MemoryDescriptor, len(descs))
	for i, d := range descs {
		space, err := m.optStr(d.AddrSpace)
		if err != nil {
			return abi.MemoryMap{}, err
		}
		var ptr unsafe.Pointer
		if len(d.Data) > 0 {
			ptr = unsafe.Pointer(&d.Data[0])
			m.add(ptr)
		}
		out[i] = abi.MemoryDescriptor{
			Flags:      d.Flags,
			Ptr:        ptr,
			Offset:     d.Offset,
			Start:      d.Start,
			Select:     d.Select,
			Disconnect: d.Disconnect,
			Len:        d.Len,
			AddrSpace:  space,
		}
		if out[i].Len == 0 {
			out[i].Len = uintptr(len(d.Data))
		}
	}
	m.add(&out[0])
	return abi.MemoryMap{Descriptors: &out[0], NumDescriptors: uint32(len(out))}, nil
}

func buildContentInfoOverrides(m *hostMemory, overrides []ContentInfoOverride) ([]abi.SystemContentInfoOverride, error) {
	out := make([]abi.SystemContentInfoOverride, len(overrides)+1)
	for i, o := range overrides {
		exts, err := m.extensions(o.Extensions)
		if err != nil {
			return nil, err
		}
		out[i] = abi.SystemContentInfoOverride{Extensions: exts, NeedFullpath: o.NeedFullpath, PersistentData: o.PersistentData}
	}
	m.add(&out[0])
	return out, nil
}

func buildVariables(m *hostMemory, vars []Variable) ([]abi.Variable, error) {
	out := make([]abi.Variable, len(vars)+1)
	for i, v := range vars {
		k, err := m.str(v.Key)
		if err != nil {
			return nil, err
		}
		val, err := m.str(v.Value)
		if err != nil {
			return nil, err
		}
		out[i] = abi.Variable{Key: k, Value: val}
	}
	m.add(&out[0])
	return out, nil
}

func gameInfoExtFromABI(g *abi.GameInfoExt) GameInfoExt {
	info := GameInfoExt{
		FullPath:       goStringUnchecked(g.FullPath),
		ArchivePath:    goStringUnchecked(g.ArchivePath),
		ArchiveFile:    goStringUnchecked(g.ArchiveFile),
		Dir:            goStringUnchecked(g.Dir),
		Name:           goStringUnchecked(g.Name),
		Ext:            goStringUnchecked(g.Ext),
		Meta:           goStringUnchecked(g.Meta),
		FileInArchive:  g.FileInArchive,
		PersistentData: g.PersistentData,
	}
	if g.Data != nil && g.Size > 0 {
		info.Data = unsafe.Slice((*byte)(g.Data), g.Size)
	}
	return info
}
