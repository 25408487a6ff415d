package main

import (
	"os"

	"github.com/ducdmdev/prrisk/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
