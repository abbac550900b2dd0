package main

import (
	"os"

	"github.com/waverun-org/waverun/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
