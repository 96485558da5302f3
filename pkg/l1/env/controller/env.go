package controller

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"

	fx "github.com/robotalks/rclink/pkg/framework"
	"github.com/robotalks/rclink/pkg/l1"
	"github.com/robotalks/rclink/pkg/l1/comm/mqtt"
	"github.com/robotalks/rclink/pkg/l1/env"
)

// Config provides common options to setup an env for L1 controllers.
type Config struct {
	Info l1.ControllerInfo

	// MQTTBrokerURL specifies the MQTT broker to use.
	// e.g. mqtt://host:port/topic-prefix
	// Empty disables telemetry.
	MQTTBrokerURL string
}

var defaultConfig = Config{
	Info: l1.ControllerInfo{
		Ref: l1.ControllerRef{Type: "rccar"},
	},
}

func init() {
	if val := os.Getenv("RCLINK_MQTT_URL"); val != "" {
		defaultConfig.MQTTBrokerURL = val
	}
	defaultConfig.Info.Ref.ID = env.MachineIDOr("")
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Info.Ref.Type, "type", defaultConfig.Info.Ref.Type, "Controller type")
	flag.StringVar(&defaultConfig.Info.Ref.ID, "id", defaultConfig.Info.Ref.ID, "Controller ID")
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL, empty to disable telemetry")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// SetControllerType should be called in init with basic info about the controller.
func SetControllerType(typ string, meta l1.ControllerMeta) {
	defaultConfig.Info.Ref.Type = typ
	defaultConfig.Info.Meta = meta
}

// Env is the env for L1 controllers.
type Env struct {
	Config       *Config
	RegistryURLs []string
	Registrar    *l1.RegistrarMux
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewEnv creates Env from config.
// An Env without registrars is valid, events are dropped.
func (c *Config) NewEnv() (*Env, error) {
	e := &Env{
		Config:    c,
		Registrar: &l1.RegistrarMux{},
	}
	if c.MQTTBrokerURL == "" {
		return e, nil
	}
	if !c.Info.Ref.IsValid() {
		return nil, fmt.Errorf("controller type and id must be specified")
	}
	reg, err := mqtt.NewRegistrar(c.MQTTBrokerURL, c.Info)
	if err != nil {
		return nil, fmt.Errorf("create MQTT registrar error: %w", err)
	}
	e.Registrar.Add(reg)
	e.RegistryURLs = append(e.RegistryURLs, c.MQTTBrokerURL)
	glog.Infof("telemetry %s at %s", c.Info.Ref.Name(), c.MQTTBrokerURL)
	return e, nil
}

// MustNewEnv creates Env and fails on error.
func (c *Config) MustNewEnv() *Env {
	e, err := c.NewEnv()
	if err != nil {
		glog.Exit(err)
	}
	return e
}

// AddToLoop adds registrars to loop.
func (e *Env) AddToLoop(loop *fx.Loop) {
	loop.Add(e.Registrar)
}
