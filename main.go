package main

import (
	"os"

	"github.com/teeterq/teeter/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
