package motion

import (
	"flag"
	"fmt"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/rclink/pkg/motion/sysfs"
)

// Config defines the PWM wiring of the car.
type Config struct {
	PWMRoot        string
	PWMChip        int
	LeftForward    int
	LeftReverse    int
	RightForward   int
	RightReverse   int
	Period         time.Duration
	MaxDuty        uint
	StopOnFailsafe bool
	// DryRun logs duties instead of driving PWM outputs.
	DryRun bool
}

var defaultConfig = Config{
	PWMRoot:      sysfs.DefaultRoot,
	LeftForward:  0,
	LeftReverse:  1,
	RightForward: 2,
	RightReverse: 3,
	Period:       sysfs.DefaultPeriod,
	MaxDuty:      MaxDuty,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.IntVar(&defaultConfig.PWMChip, "pwm-chip", defaultConfig.PWMChip, "PWM chip number under "+sysfs.DefaultRoot+".")
	flag.IntVar(&defaultConfig.LeftForward, "pwm-left-fwd", defaultConfig.LeftForward, "PWM channel of left motor forward.")
	flag.IntVar(&defaultConfig.LeftReverse, "pwm-left-rev", defaultConfig.LeftReverse, "PWM channel of left motor reverse.")
	flag.IntVar(&defaultConfig.RightForward, "pwm-right-fwd", defaultConfig.RightForward, "PWM channel of right motor forward.")
	flag.IntVar(&defaultConfig.RightReverse, "pwm-right-rev", defaultConfig.RightReverse, "PWM channel of right motor reverse.")
	flag.DurationVar(&defaultConfig.Period, "pwm-period", defaultConfig.Period, "PWM period.")
	flag.UintVar(&defaultConfig.MaxDuty, "max-duty", defaultConfig.MaxDuty, "Duty at full throttle, up to 65535.")
	flag.BoolVar(&defaultConfig.StopOnFailsafe, "failsafe-stop", defaultConfig.StopOnFailsafe, "Stop motors while the receiver reports failsafe.")
	flag.BoolVar(&defaultConfig.DryRun, "dry-run", defaultConfig.DryRun, "Log motor duties instead of driving PWM.")
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

// NewDriver opens the PWM channels and creates a Driver.
func (c *Config) NewDriver() (*Driver, error) {
	if c.MaxDuty > MaxDuty {
		return nil, fmt.Errorf("max duty %d out of range", c.MaxDuty)
	}
	d := &Driver{StopOnFailsafe: c.StopOnFailsafe}
	d.Car.Left.MaxDuty, d.Car.Right.MaxDuty = uint16(c.MaxDuty), uint16(c.MaxDuty)
	if c.DryRun {
		d.Left = Outputs{Forward: &LogActuator{Name: "left-fwd"}, Reverse: &LogActuator{Name: "left-rev"}}
		d.Right = Outputs{Forward: &LogActuator{Name: "right-fwd"}, Reverse: &LogActuator{Name: "right-rev"}}
		return d, nil
	}
	outs := []*Actuator{&d.Left.Forward, &d.Left.Reverse, &d.Right.Forward, &d.Right.Reverse}
	for n, index := range []int{c.LeftForward, c.LeftReverse, c.RightForward, c.RightReverse} {
		ch, err := sysfs.OpenChannel(c.PWMRoot, c.PWMChip, index, c.Period)
		if err != nil {
			for _, opened := range d.channels {
				opened.Close()
			}
			return nil, err
		}
		d.channels = append(d.channels, ch)
		*outs[n] = ch
	}
	return d, nil
}

// LogActuator logs duties.
type LogActuator struct {
	Name string
	Duty uint16
}

// SetDuty implements Actuator.
func (a *LogActuator) SetDuty(duty uint16) error {
	if duty != a.Duty {
		glog.V(1).Infof("%s duty %d", a.Name, duty)
	}
	a.Duty = duty
	return nil
}
