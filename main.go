package main

import (
	"os"

	"github.com/inayatwani8899/mindgauge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
