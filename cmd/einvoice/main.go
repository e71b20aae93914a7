package main

import (
	"os"

	"github.com/afea/einvoice/cmd/einvoice/cmd"
)

func main() {
	os.Exit(cmd.Run(os.Args[1:], os.Stdout, os.Stderr))
}
