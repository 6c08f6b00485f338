package main

import (
	"os"

	"github.com/revuehq/revue/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
