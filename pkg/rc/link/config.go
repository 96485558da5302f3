package link

import (
	"flag"
	"fmt"
	"time"

	"github.com/robotalks/rclink/pkg/l0/sbus"
	"github.com/robotalks/rclink/pkg/l1"
	"github.com/robotalks/rclink/pkg/rc"
)

// Config defines the configurations for the link controller.
type Config struct {
	StatusInterval  time.Duration
	SwitchTolerance uint
	Verbose         bool
}

var defaultConfig = Config{
	StatusInterval: time.Second,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.DurationVar(&defaultConfig.StatusInterval, "status-interval", defaultConfig.StatusInterval, "Interval of status telemetry, 0 to disable.")
	flag.UintVar(&defaultConfig.SwitchTolerance, "switch-tolerance", defaultConfig.SwitchTolerance, fmt.Sprintf("Accepted distance from nominal three-position switch codes, 0 for exact match, below %d.", rc.SwitchToleranceLimit))
	flag.BoolVar(&defaultConfig.Verbose, "verbose", defaultConfig.Verbose, "Log frame gaps.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewController creates a controller using the config.
func (c *Config) NewController(device string, src sbus.Source, reg l1.Registrar) (*Controller, error) {
	if c.SwitchTolerance >= rc.SwitchToleranceLimit {
		return nil, fmt.Errorf("switch tolerance %d out of range [0, %d)", c.SwitchTolerance, rc.SwitchToleranceLimit)
	}
	ctl := NewController(src)
	ctl.Device = device
	ctl.Registrar = reg
	ctl.StatusInterval = c.StatusInterval
	ctl.Mapper.SwitchTolerance = uint16(c.SwitchTolerance)
	ctl.Verbose = c.Verbose
	return ctl, nil
}
