package main

import (
	"os"

	"github.com/hashicorp-forge/termid/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
