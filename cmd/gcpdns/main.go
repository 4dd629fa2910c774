package main

import (
	"os"

	"github.com/domainaware/gcpdns/cmd/gcpdns/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
