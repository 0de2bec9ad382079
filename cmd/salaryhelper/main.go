package main

import (
	"os"

	"github.com/salaryhelper/salaryhelper-client/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
