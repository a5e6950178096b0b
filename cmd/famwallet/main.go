package main

import (
	"os"

	"github.com/famwallet/famwallet/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
