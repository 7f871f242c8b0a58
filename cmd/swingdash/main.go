package main

import (
	"os"

	"github.com/elcap/swingdash/cmd/swingdash/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
