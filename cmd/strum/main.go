package main

import (
	"github.com/strumcli/strum/internal/cli"
)

func main() {
	cli.Execute()
}
