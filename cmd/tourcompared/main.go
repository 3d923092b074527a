package main

import (
	"os"

	"go-tour-compare/cmd/tourcompared/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
