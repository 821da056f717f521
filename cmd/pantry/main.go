package main

import (
	"os"

	"github.com/Lixing-Zhang/pantry-tracker/backend/internal/cli"
)

func main() {
	if err := cli.NewRootCommand(cli.DefaultApp).Execute(); err != nil {
		os.Exit(1)
	}
}
