package main

import (
	"os"

	"github.com/jnbooth/ritual/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
