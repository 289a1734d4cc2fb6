package retro

import (
	"unsafe"

	"github.com/user-none/goretro/abi"
)

// HWRenderOptions configures EnableHWRender.
type HWRenderOptions struct {
	Context          HWContextType
	VersionMajor     uint32
	VersionMinor     uint32
	Depth            bool
	Stencil          bool
	BottomLeftOrigin bool
	DebugContext     bool
}

// HWRenderInterfaceType identifies the API of a render or negotiation
// interface.
type HWRenderInterfaceType int32

const (
	HWRenderInterfaceVulkan   HWRenderInterfaceType = abi.HWRenderAPIVulkan
	HWRenderInterfaceD3D9     HWRenderInterfaceType = abi.HWRenderAPID3D9
	HWRenderInterfaceD3D10    HWRenderInterfaceType = abi.HWRenderAPID3D10
	HWRenderInterfaceD3D11    HWRenderInterfaceType = abi.HWRenderAPID3D11
	HWRenderInterfaceD3D12    HWRenderInterfaceType = abi.HWRenderAPID3D12
	HWRenderInterfaceGSKitPS2 HWRenderInterfaceType = abi.HWRenderAPIGSKitPS2
)

// NegotiationKind selects the populated variant of a NegotiationInterface.
type NegotiationKind int

const (
	NegotiationBase NegotiationKind = iota
	NegotiationVulkan
	NegotiationUnknown
)

// NegotiationInterface is a hardware render context negotiation interface.
// Exactly the field named by Kind is used.
type NegotiationInterface struct {
	Kind   NegotiationKind
	Base   abi.HWRenderContextNegotiationInterface
	Vulkan abi.HWRenderContextNegotiationInterfaceVulkan

	// Raw holds an interface of an API this package has no mirror for. It
	// must start with the common header.
	Raw []byte
}

const negotiationHeaderSize = unsafe.Sizeof(abi.HWRenderContextNegotiationInterface{})

// NewRawNegotiationInterface wraps an interface of an unknown API.
func NewRawNegotiationInterface(raw []byte) (NegotiationInterface, error) {
	if uintptr(len(raw)) < negotiationHeaderSize {
		return NegotiationInterface{}, ErrNegotiationTooSmall
	}
	return NegotiationInterface{Kind: NegotiationUnknown, Raw: raw}, nil
}

// Header returns the common interface header of any variant.
func (n *NegotiationInterface) Header() (abi.HWRenderContextNegotiationInterface, error) {
	switch n.Kind {
	case NegotiationBase:
		return n.Base, nil
	case NegotiationVulkan:
		return abi.HWRenderContextNegotiationInterface{
			InterfaceType:    n.Vulkan.InterfaceType,
			InterfaceVersion: n.Vulkan.InterfaceVersion,
		}, nil
	case NegotiationUnknown:
		if uintptr(len(n.Raw)) < negotiationHeaderSize {
			return abi.HWRenderContextNegotiationInterface{}, ErrNegotiationTooSmall
		}
		return *(*abi.HWRenderContextNegotiationInterface)(unsafe.Pointer(&n.Raw[0])), nil
	}
	return abi.HWRenderContextNegotiationInterface{}, &InvalidEnumValueError{Type: "NegotiationKind", Value: int64(n.Kind)}
}

func (n *NegotiationInterface) pointer() (unsafe.Pointer, error) {
	switch n.Kind {
	case NegotiationBase:
		return unsafe.Pointer(&n.Base), nil
	case NegotiationVulkan:
		return unsafe.Pointer(&n.Vulkan), nil
	case NegotiationUnknown:
		if uintptr(len(n.Raw)) < negotiationHeaderSize {
			return nil, ErrNegotiationTooSmall
		}
		return unsafe.Pointer(&n.Raw[0]), nil
	}
	return nil, &InvalidEnumValueError{Type: "NegotiationKind", Value: int64(n.Kind)}
}

// EnableHWRender asks the host for a hardware rendering context. The
// context becomes usable once HWRenderer.ContextReset is called.
func (c *LoadGameContext) EnableHWRender(opts HWRenderOptions) error {
	if !opts.Context.valid() {
		return &InvalidEnumValueError{Type: "HWContextType", Value: int64(opts.Context)}
	}
	t := c.tramp()
	cb := abi.HWRenderCallback{
		ContextType:      int32(opts.Context),
		ContextReset:     t.HWContextReset,
		ContextDestroy:   t.HWContextDestroy,
		Depth:            opts.Depth,
		Stencil:          opts.Stencil,
		BottomLeftOrigin: opts.BottomLeftOrigin,
		VersionMajor:     opts.VersionMajor,
		VersionMinor:     opts.VersionMinor,
		CacheContext:     true,
		DebugContext:     opts.DebugContext,
	}
	cb, err := GetMut(c.env, abi.EnvSetHWRender, cb)

	r := c.ifaces()
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.hwRender = nil
		return err
	}
	r.hwRender = newHWRenderIface(cb)
	return nil
}

// SetHWRenderContextNegotiationInterface hands n to the host. The host
// keeps the pointer, so the interface stays pinned until Deinit.
func (c *LoadGameContext) SetHWRenderContextNegotiationInterface(n NegotiationInterface) error {
	held := new(NegotiationInterface)
	*held = n
	if held.Kind == NegotiationUnknown {
		held.Raw = append([]byte(nil), n.Raw...)
	}
	ptr, err := held.pointer()
	if err != nil {
		return err
	}

	r := c.ifaces()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pin(ptr)
	if err := SetPtr(c.env, abi.EnvSetHWRenderContextNegotiationIface, ptr); err != nil {
		r.negotiation = nil
		return err
	}
	r.negotiation = held
	return nil
}

// EnableHWRenderNegotiationInterface registers a header-only negotiation
// interface.
func (c *LoadGameContext) EnableHWRenderNegotiationInterface(t HWRenderInterfaceType, version uint32) error {
	return c.SetHWRenderContextNegotiationInterface(NegotiationInterface{
		Kind: NegotiationBase,
		Base: abi.HWRenderContextNegotiationInterface{
			InterfaceType:    int32(t),
			InterfaceVersion: version,
		},
	})
}

// EnableHWRenderNegotiationInterfaceVulkan registers a version 1 Vulkan
// negotiation interface. The arguments are C function pointers.
func (c *LoadGameContext) EnableHWRenderNegotiationInterfaceVulkan(getApplicationInfo, createDevice, destroyDevice uintptr) error {
	return c.SetHWRenderContextNegotiationInterface(NegotiationInterface{
		Kind: NegotiationVulkan,
		Vulkan: abi.HWRenderContextNegotiationInterfaceVulkan{
			InterfaceType:      abi.HWRenderContextNegotiationVulkan,
			InterfaceVersion:   abi.HWRenderContextNegotiationInterfaceVulkanVersion,
			GetApplicationInfo: getApplicationInfo,
			CreateDevice:       createDevice,
			DestroyDevice:      destroyDevice,
		},
	})
}

// HWRenderInterface returns the header of the host render interface.
func (c *GenericContext) HWRenderInterface() (abi.HWRenderInterface, error) {
	p, err := GetUnchecked[*abi.HWRenderInterface](c.env, abi.EnvGetHWRenderInterface)
	if err != nil {
		return abi.HWRenderInterface{}, err
	}
	if p == nil {
		return abi.HWRenderInterface{}, nullPointer("retro_hw_render_interface")
	}
	return *p, nil
}

// HWRenderInterfaceVulkan returns the host Vulkan render interface. The
// result points into host memory and is valid while the context is live.
func (c *GenericContext) HWRenderInterfaceVulkan() (*abi.HWRenderInterfaceVulkan, error) {
	p, err := GetUnchecked[*abi.HWRenderInterface](c.env, abi.EnvGetHWRenderInterface)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nullPointer("retro_hw_render_interface")
	}
	if p.InterfaceType != abi.HWRenderAPIVulkan {
		return nil, &InvalidEnumValueError{Type: "vulkan render interface type", Value: int64(p.InterfaceType)}
	}
	if p.InterfaceVersion != abi.HWRenderInterfaceVulkanVersion {
		return nil, &UnsupportedError{Reason: "vulkan render interface version"}
	}
	return (*abi.HWRenderInterfaceVulkan)(unsafe.Pointer(p)), nil
}

// SetHWSharedContext asks the host for a context shared with its own.
func (c *GenericContext) SetHWSharedContext() error {
	return SetPtr(c.env, abi.EnvSetHWSharedContext, nil)
}

// PreferredHWRender returns the rendering API the host would like.
func (c *GenericContext) PreferredHWRender() (HWContextType, error) {
	v, err := Get[uint32](c.env, abi.EnvGetPreferredHWRender)
	if err != nil {
		return HWContextNone, err
	}
	t := HWContextType(v)
	if !t.valid() {
		return HWContextNone, &InvalidEnumValueError{Type: "HWContextType", Value: int64(v)}
	}
	return t, nil
}

func (c *GenericContext) hwRender() (*hwRenderIface, error) {
	r := c.ifaces()
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.hwRender == nil {
		return nil, notFound("hardware render", "EnableHWRender()")
	}
	if !r.hwRender.live {
		return nil, ErrHWContextNotLive
	}
	return r.hwRender, nil
}

// HWRenderGetProcAddress looks up a symbol of the host rendering API.
func (c *GenericContext) HWRenderGetProcAddress(symbol string) (uintptr, error) {
	hw, err := c.hwRender()
	if err != nil {
		return 0, err
	}
	if hw.getProcAddress == nil {
		return 0, nullPointer("get_proc_address")
	}
	sym, err := CString(symbol)
	if err != nil {
		return 0, err
	}
	addr := hw.getProcAddress(sym)
	if addr == 0 {
		return 0, nullPointer(symbol)
	}
	return addr, nil
}

// HWRenderGetFramebuffer returns the framebuffer object to render into
// this frame.
func (c *GenericContext) HWRenderGetFramebuffer() (uintptr, error) {
	hw, err := c.hwRender()
	if err != nil {
		return 0, err
	}
	if hw.getCurrentFramebuffer == nil {
		return 0, nullPointer("get_current_framebuffer")
	}
	return hw.getCurrentFramebuffer(), nil
}
