package main

import (
	"github.com/robotalks/rclink/pkg/cli/sh"
	"github.com/robotalks/rclink/pkg/l0/serial"

	_ "github.com/robotalks/rclink/pkg/cli/cmds/all"
)

//go-build: CGO_ENABLED=0

func init() {
	serial.SetupFlags()
}

func main() {
	sh.Main()
}
