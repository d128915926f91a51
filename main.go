// main is the entry point of the motionlens CLI.
package main

import (
	"github.com/huangsam/motionlens/cmd"
	"github.com/huangsam/motionlens/internal/contract"
	"github.com/huangsam/motionlens/internal/iocache"
)

func main() {
	defer iocache.CloseCaching()
	defer func() {
		if err := cmd.StopProfiling(); err != nil {
			contract.LogWarn("Failed to stop profiling", err)
		}
	}()
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Cannot run motionlens", err)
	}
}
