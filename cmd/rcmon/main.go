package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"errors"
	"flag"
	"os"
	"reflect"

	"github.com/golang/glog"

	fx "github.com/robotalks/rclink/pkg/framework"
	"github.com/robotalks/rclink/pkg/l1/comm/mqtt"
	"github.com/robotalks/rclink/pkg/l1/msgs"
)

var (
	mqttURL = "mqtt://localhost:1883/robo/"
	ctlType string
)

func init() {
	if val := os.Getenv("RCLINK_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
	flag.StringVar(&ctlType, "type", ctlType, "Only watch controllers of this type.")
}

func printEvent(ev *mqtt.Event) {
	name := ev.Ref.Name()
	switch {
	case ev.Gone:
		glog.Infof("%s: gone", name)
	case ev.Meta != nil:
		glog.Infof("%s: online %q", name, ev.Meta.Description)
	case ev.Msg != nil:
		glog.Infof("%s: [%s] %s", name,
			reflect.Indirect(reflect.ValueOf(ev.Msg)).Type().Name(),
			ev.Msg.(msgs.SerializableMessage).Serializable().String())
	}
}

func main() {
	flag.Set("logtostderr", "true")
	flag.Parse()

	w, err := mqtt.NewWatcher(mqttURL)
	if err != nil {
		glog.Exit(err)
	}
	w.Type = ctlType

	runner := fx.NewRunner().HandleSignals()
	runner.Go(fx.RunnableFunc(func(ctx context.Context) error {
		return w.Watch(ctx, printEvent)
	}))
	if err := runner.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		glog.Exit(err)
	}
}
