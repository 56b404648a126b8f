package main

import (
	"os"

	"github.com/raveheart1/newsgen/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
