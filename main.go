package main

import (
	"os"

	"github.com/calcpress/calcpress/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
