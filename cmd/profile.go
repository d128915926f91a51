package cmd

import (
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/huangsam/motionlens/internal/contract"
)

// profile holds profiling configuration.
var profile = &contract.ProfileConfig{}

// cpuProfile is open while a CPU profile is being written.
var cpuProfile *os.File

// startProfiling starts CPU profiling when --profile is set. The heap
// profile is taken by stopProfiling.
func startProfiling() error {
	if !profile.Enabled {
		return nil
	}
	f, err := os.Create(profile.Prefix + ".cpu.prof")
	if err != nil {
		return fmt.Errorf("could not create CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("could not start CPU profiling: %w", err)
	}
	cpuProfile = f
	contract.LogInfo("Profiling to %s.cpu.prof and %s.mem.prof", profile.Prefix, profile.Prefix)
	return nil
}

// stopProfiling flushes the CPU profile and writes the heap profile.
func stopProfiling() error {
	if !profile.Enabled || cpuProfile == nil {
		return nil
	}
	pprof.StopCPUProfile()
	_ = cpuProfile.Close()
	cpuProfile = nil

	memFile, err := os.Create(profile.Prefix + ".mem.prof")
	if err != nil {
		return fmt.Errorf("could not create memory profile: %w", err)
	}
	defer func() { _ = memFile.Close() }()
	if err := pprof.WriteHeapProfile(memFile); err != nil {
		return fmt.Errorf("could not write memory profile: %w", err)
	}
	contract.LogInfo("Profiling complete. Use 'go tool pprof %s.cpu.prof' to analyze.", profile.Prefix)
	return nil
}

// StopProfiling stops profiling if enabled.
func StopProfiling() error {
	return stopProfiling()
}
