package main

import (
	"os"

	"github.com/stencilworks/stencil/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
