package main

import (
	"os"

	"stockcast/cmd/stockcast/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
