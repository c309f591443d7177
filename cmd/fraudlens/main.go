package main

import (
	"fmt"
	"os"

	"github.com/fraudlens/fraudlens/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error processing fraud data: %v\n", err)
		os.Exit(1)
	}
}
