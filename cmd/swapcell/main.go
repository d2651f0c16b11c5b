package main

import (
	"os"

	"github.com/swapcell/swapcell/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
