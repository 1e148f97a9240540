// Package main provides the entry point for the horaire-ets CLI.
package main

import (
	"os"

	"github.com/antoinebou12/horaire-ets/cmd/horaire/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
