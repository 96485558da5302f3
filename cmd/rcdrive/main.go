package main

//go-build: CGO_ENABLED=0

import (
	"flag"

	"github.com/golang/glog"

	fx "github.com/robotalks/rclink/pkg/framework"
	"github.com/robotalks/rclink/pkg/l0/serial"
	"github.com/robotalks/rclink/pkg/l1"
	env "github.com/robotalks/rclink/pkg/l1/env/controller"
	"github.com/robotalks/rclink/pkg/monitor"
	"github.com/robotalks/rclink/pkg/motion"
	"github.com/robotalks/rclink/pkg/rc/link"
)

func init() {
	env.SetControllerType("rccar", l1.ControllerMeta{Description: "SBUS tank drive"})
	env.SetupFlags()
	serial.SetupFlags()
	link.SetupFlags()
	motion.SetupFlags()
	monitor.SetupFlags()
}

func main() {
	flag.Parse()

	e := env.NewConfig().MustNewEnv()
	drv, err := motion.NewConfig().NewDriver()
	if err != nil {
		glog.Exit(err)
	}
	port, err := serial.NewConfig().Open()
	if err != nil {
		drv.Close()
		glog.Exit(err)
	}
	ctl, err := link.NewConfig().NewController(port.Device, port, e.Registrar)
	if err != nil {
		port.Close()
		drv.Close()
		glog.Exit(err)
	}
	defer drv.Close()
	defer port.Close()

	loop := fx.NewLoop().Add(e, ctl, drv)
	if addr := monitor.DefaultAddr(); addr != "" {
		mon := monitor.NewServer(addr)
		ctl.Subscribe(mon)
		loop.Add(mon)
	}

	runner := fx.NewRunner().HandleSignals()
	runner.Go(loop)
	if err := runner.Wait(); err != nil {
		glog.Error(err)
	}
}
