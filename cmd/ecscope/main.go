package main

import (
	"os"

	"github.com/dhth/ecscope/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
