package main

import (
	"os"

	"github.com/etivest/rebalancer/cmd/rebalancer/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
