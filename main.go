package main

import (
	"os"

	"github.com/relq/relq/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
