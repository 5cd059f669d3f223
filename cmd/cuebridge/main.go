package main

import (
	"os"

	"github.com/lydakis/cuebridge/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
