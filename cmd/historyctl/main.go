package main

import (
	"os"

	"github.com/hupe1980/meshkit/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
