package retro

import (
	"github.com/user-none/goretro/abi"
)

// EnablePerfInterface fetches the host performance interface. Counters
// started through an earlier interface are forgotten.
func (c *LoadGameContext) EnablePerfInterface() error {
	raw, err := GetUnchecked[abi.PerfCallback](c.env, abi.EnvGetPerfInterface)

	r := c.ifaces()
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.perf = nil
		return err
	}
	r.perf = newPerfIface(raw)
	return nil
}

// PerfInterface queries the raw host performance interface without
// registering it.
func (c *GenericContext) PerfInterface() (abi.PerfCallback, error) {
	return GetUnchecked[abi.PerfCallback](c.env, abi.EnvGetPerfInterface)
}

func (c *GenericContext) perf() (*perfIface, error) {
	r := c.ifaces()
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.perf == nil {
		return nil, notFound("performance", "EnablePerfInterface()")
	}
	return r.perf, nil
}

// TimeUsec returns the host's current time in microseconds.
func (c *GenericContext) TimeUsec() (int64, error) {
	p, err := c.perf()
	if err != nil {
		return 0, err
	}
	if p.getTimeUsec == nil {
		return 0, nullPointer("get_time_usec")
	}
	return p.getTimeUsec(), nil
}

// PerfCounter returns the raw CPU tick counter.
func (c *GenericContext) PerfCounter() (uint64, error) {
	p, err := c.perf()
	if err != nil {
		return 0, err
	}
	if p.getPerfCounter == nil {
		return 0, nullPointer("get_perf_counter")
	}
	return p.getPerfCounter(), nil
}

// CPUFeatures returns the SIMD features reported by the host. When the host
// leaves get_cpu_features unset the features are detected locally.
func (c *GenericContext) CPUFeatures() (CPUFeatures, error) {
	p, err := c.perf()
	if err != nil {
		return 0, err
	}
	if p.getCPUFeatures == nil {
		return LocalCPUFeatures(), nil
	}
	return checkFlags(CPUFeatures(p.getCPUFeatures()), cpuFeaturesAll, c.strict())
}

// PerfStart starts the named counter, registering it on first use.
func (c *GenericContext) PerfStart(name string) error {
	r := c.ifaces()
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.perf
	if p == nil {
		return notFound("performance", "EnablePerfInterface()")
	}

	counter, ok := p.counters[name]
	if !ok {
		ident, err := CString(name)
		if err != nil {
			return &PerfCounterError{Name: name, Err: err}
		}
		counter = &abi.PerfCounter{Ident: ident}
		r.pin(ident)
		r.pin(counter)
		p.counters[name] = counter
	}

	if !counter.Registered {
		if p.register == nil {
			return nullPointer("perf_register")
		}
		p.register(counter)
	}
	if p.start == nil {
		return nullPointer("perf_start")
	}
	p.start(counter)
	return nil
}

// PerfStop stops a counter started with PerfStart.
func (c *GenericContext) PerfStop(name string) error {
	r := c.ifaces()
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.perf
	if p == nil {
		return notFound("performance", "EnablePerfInterface()")
	}

	counter, ok := p.counters[name]
	if !ok {
		return &PerfCounterError{Name: name, Err: ErrUnknownPerfCounter}
	}
	if !counter.Registered {
		return &PerfCounterError{Name: name, Err: ErrUnregisteredPerfCounter}
	}
	if p.stop == nil {
		return nullPointer("perf_stop")
	}
	p.stop(counter)
	return nil
}

// PerfLog asks the host to log all registered counters.
func (c *GenericContext) PerfLog() error {
	p, err := c.perf()
	if err != nil {
		return err
	}
	if p.log == nil {
		return nullPointer("perf_log")
	}
	p.log()
	return nil
}
