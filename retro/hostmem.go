package retro

import (
	"runtime"
	"strings"
)

// hostMemory collects the Go allocations one command hands to the host so
// they can be pinned together, either for the call or for the session.
type hostMemory struct {
	ptrs []any
}

func (m *hostMemory) add(p any) {
	m.ptrs = append(m.ptrs, p)
}

func (m *hostMemory) str(s string) (*byte, error) {
	p, err := CString(s)
	if err != nil {
		return nil, err
	}
	m.add(p)
	return p, nil
}

// optStr maps "" to a null pointer.
func (m *hostMemory) optStr(s string) (*byte, error) {
	if s == "" {
		return nil, nil
	}
	return m.str(s)
}

func (m *hostMemory) extensions(exts []string) (*byte, error) {
	if len(exts) == 0 {
		return nil, nil
	}
	return m.str(strings.Join(exts, "|"))
}

// pinFor pins everything into p.
func (m *hostMemory) pinFor(p *runtime.Pinner) {
	for _, x := range m.ptrs {
		p.Pin(x)
	}
}

// keep pins everything until the registry is reset.
func (m *hostMemory) keep(r *Interfaces) {
	r.keep(m.ptrs...)
}

// call runs fn with everything pinned for its duration.
func (m *hostMemory) call(fn func() error) error {
	var p runtime.Pinner
	defer p.Unpin()
	m.pinFor(&p)
	return fn()
}
