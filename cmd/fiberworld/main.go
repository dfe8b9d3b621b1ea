// Command fiberworld renders and serves the payment network animation.
package main

import (
	"os"

	"github.com/chenyukang/fiber-world/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
