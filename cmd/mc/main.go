package main

import (
	"os"

	"github.com/bnema/mission-control/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
