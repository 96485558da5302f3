package serial

import (
	"flag"
	"os"
	"time"
)

// SBUS line parameters.
const (
	DefaultBaudRate = 100000
	DataBits        = 8
)

// Config defines the serial port options.
type Config struct {
	Device   string
	BaudRate int
	// ReadTimeout bounds each read, 0 polls without blocking.
	ReadTimeout time.Duration
}

var defaultConfig = Config{
	BaudRate: DefaultBaudRate,
}

func init() {
	if val := os.Getenv("RCLINK_SERIAL"); val != "" {
		defaultConfig.Device = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Device, "serial", defaultConfig.Device, "Serial device connected to the SBUS receiver.")
	flag.IntVar(&defaultConfig.BaudRate, "serial-baud", defaultConfig.BaudRate, "Serial baud rate.")
	flag.DurationVar(&defaultConfig.ReadTimeout, "serial-read-timeout", defaultConfig.ReadTimeout, "Timeout of each read, 0 for nonblocking.")
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
