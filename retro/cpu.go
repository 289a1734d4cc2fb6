package retro

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// LocalCPUFeatures detects the SIMD features of the running CPU.
func LocalCPUFeatures() CPUFeatures {
	var f CPUFeatures
	set := func(has bool, bits CPUFeatures) {
		if has {
			f |= bits
		}
	}

	switch runtime.GOARCH {
	case "386", "amd64":
		// Every SSE2 capable CPU has these.
		set(cpu.X86.HasSSE2, CPUSSE|CPUSSE2|CPUMMX|CPUMMXEXT|CPUCMOV)
		set(cpu.X86.HasSSE3, CPUSSE3)
		set(cpu.X86.HasSSSE3, CPUSSSE3)
		set(cpu.X86.HasSSE41, CPUSSE4)
		set(cpu.X86.HasSSE42, CPUSSE42)
		set(cpu.X86.HasAVX, CPUAVX)
		set(cpu.X86.HasAVX2, CPUAVX2)
		set(cpu.X86.HasAES, CPUAES)
		set(cpu.X86.HasPOPCNT, CPUPOPCNT)
	case "arm64":
		set(cpu.ARM64.HasASIMD, CPUASIMD|CPUNEON)
		set(cpu.ARM64.HasAES, CPUAES)
	case "arm":
		set(cpu.ARM.HasNEON, CPUNEON)
		set(cpu.ARM.HasVFPv3, CPUVFPV3)
		set(cpu.ARM.HasVFPv4, CPUVFPV4)
		set(cpu.ARM.HasAES, CPUAES)
	}
	return f
}
