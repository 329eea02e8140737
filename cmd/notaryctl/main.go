package main

import (
	"os"

	"github.com/nursejordan/i-notarize-online.com/cmd/notaryctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
