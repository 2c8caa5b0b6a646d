package main

import (
	"os"

	"k8s.io/component-base/cli"

	"github.com/paretoscope/paretoscope/cmd/paretoscope/app"
)

func main() {
	command := app.NewCommand()
	code := cli.Run(command)
	os.Exit(code)
}
