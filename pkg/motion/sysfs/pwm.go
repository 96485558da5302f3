// Package sysfs provides PWM outputs using the Linux sysfs PWM interface.
package sysfs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"
)

// DefaultRoot is the sysfs PWM class directory.
const DefaultRoot = "/sys/class/pwm"

// DefaultPeriod is 20kHz, above the audible range for small motors.
const DefaultPeriod = 50 * time.Microsecond

// Channel is a PWM channel pwmchipN/pwmM.
type Channel struct {
	Root   string
	Chip   int
	Index  int
	Period time.Duration

	dir string
}

// OpenChannel exports and enables a channel with duty 0.
func OpenChannel(root string, chip, index int, period time.Duration) (*Channel, error) {
	if root == "" {
		root = DefaultRoot
	}
	if period <= 0 {
		period = DefaultPeriod
	}
	c := &Channel{Root: root, Chip: chip, Index: index, Period: period}
	chipDir := filepath.Join(root, "pwmchip"+strconv.Itoa(chip))
	c.dir = filepath.Join(chipDir, "pwm"+strconv.Itoa(index))
	if _, err := os.Stat(c.dir); errors.Is(err, os.ErrNotExist) {
		glog.V(1).Infof("export %s", c.dir)
		if err := writeValue(filepath.Join(chipDir, "export"), strconv.Itoa(index)); err != nil {
			return nil, err
		}
	}
	// duty_cycle must not exceed period while period is changed.
	if err := c.write("duty_cycle", 0); err != nil {
		return nil, err
	}
	if err := c.write("period", period.Nanoseconds()); err != nil {
		return nil, err
	}
	if err := c.write("enable", 1); err != nil {
		return nil, err
	}
	return c, nil
}

// Name returns pwmchipN/pwmM.
func (c *Channel) Name() string {
	return fmt.Sprintf("pwmchip%d/pwm%d", c.Chip, c.Index)
}

// SetDuty implements motion.Actuator, mapping 0..65535 onto the period.
func (c *Channel) SetDuty(duty uint16) error {
	return c.write("duty_cycle", c.Period.Nanoseconds()*int64(duty)/0xffff)
}

// Close disables the channel.
func (c *Channel) Close() error {
	if err := c.write("duty_cycle", 0); err != nil {
		return err
	}
	return c.write("enable", 0)
}

func (c *Channel) write(attr string, val int64) error {
	return writeValue(filepath.Join(c.dir, attr), strconv.FormatInt(val, 10))
}

func writeValue(fn, val string) error {
	if err := os.WriteFile(fn, []byte(val), 0644); err != nil {
		return fmt.Errorf("write %q to %s: %w", val, fn, err)
	}
	return nil
}

// ReadValue reads an integer attribute.
func ReadValue(fn string) (int64, error) {
	data, err := os.ReadFile(fn)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
}
