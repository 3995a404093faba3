package main

import (
	"os"
)

// Version value, injected via go build `ldflags` at build time.
var version = "dev"

func main() {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
