package main

import (
	"os"

	"github.com/ocelotsec/ocelot/cmd/ocelot/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(2)
	}
}
