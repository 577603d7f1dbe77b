package main

import (
	"os"

	"github.com/pablor21/gondoc/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
