package main

import (
	"os"

	"github.com/ciricc/go-transcript-player/cmd/client/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
