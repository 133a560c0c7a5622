package main

import (
	"github.com/fkoehler/stadtticker/internal/cli"
)

func main() {
	cli.Execute()
}
