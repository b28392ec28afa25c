package main

import (
	"os"

	"github.com/tstpierre-tc/lcd2004/cmd/ticker/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
