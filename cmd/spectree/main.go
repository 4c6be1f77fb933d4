package main

import (
	"fmt"
	"os"

	"github.com/specvital/spectree/internal/samples"
	"github.com/specvital/spectree/pkg/cli"
	"github.com/specvital/spectree/pkg/registry"
)

var version = "dev"

func main() {
	reg := registry.DefaultRegistry()
	if err := samples.Register(reg); err != nil {
		fmt.Fprintf(os.Stderr, "register samples: %v\n", err)
		os.Exit(1)
	}

	if err := cli.NewRootCmd(reg, version).Execute(); err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}
