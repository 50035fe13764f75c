// Package rewriter implements the mkextmod-specific policy that turns a
// loaded relocatable ELF32/ARM object into a dynamically-loadable extension
// module: preprocessing, veneer symbol recovery, relocation-to-addend
// conversion, dynamic section synthesis, and final layout.
package rewriter

// CPUConfig names the per-CPU constants the rewriter needs. Only the two
// CPUs the extension loader currently targets are known; anything else is
// reported as an *UnsupportedCPUError (there is no sentinel error to match
// it with errors.Is; use errors.As).
type CPUConfig struct {
	// VeneerSymbolOffset is the byte offset, within a linker-generated
	// Thumb veneer function, of the literal pool word holding the address
	// of the real function the veneer jumps to.
	VeneerSymbolOffset uint32
}

var cpuConfigs = map[string]CPUConfig{
	"6S-M":     {VeneerSymbolOffset: 12},
	"8-M.MAIN": {VeneerSymbolOffset: 4},
}

// LookupCPU returns the configuration for the given Tag_CPU_name build
// attribute value.
func LookupCPU(cpuName string) (CPUConfig, error) {
	cfg, ok := cpuConfigs[cpuName]
	if !ok {
		return CPUConfig{}, &UnsupportedCPUError{CPU: cpuName}
	}
	return cfg, nil
}
