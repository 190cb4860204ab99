package main

import (
	"os"

	"github.com/yacademy/researchsite/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
