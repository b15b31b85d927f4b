package main

import (
	"os"

	"github.com/moolen/pantry/cmd/pantry/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
