// Package motion drives a differential (tank) car from throttles.
package motion

import (
	"math"
)

// MaxDuty is the full-scale PWM duty.
const MaxDuty = math.MaxUint16

// Actuator is a PWM output.
type Actuator interface {
	SetDuty(uint16) error
}

// Outputs is the pair of PWM outputs of an H-bridge.
type Outputs struct {
	Forward Actuator
	Reverse Actuator
}

// Motor converts a throttle in [-1, 1] into H-bridge duties.
type Motor struct {
	Throttle float32
	// MaxDuty scales the duty, 0 means MaxDuty.
	MaxDuty uint16
}

// Duty returns the duty for the magnitude of the throttle.
func (m *Motor) Duty() uint16 {
	t := math.Abs(float64(m.Throttle))
	if t > 1 {
		t = 1
	}
	full := m.MaxDuty
	if full == 0 {
		full = MaxDuty
	}
	return uint16(t * float64(full))
}

// Drive applies the duty to the forward output for non-negative
// throttles, otherwise to the reverse output. The other output is 0.
func (m *Motor) Drive(out Outputs) error {
	fwd, rev := m.Duty(), uint16(0)
	if m.Throttle < 0 {
		fwd, rev = rev, fwd
	}
	// release before engaging so both sides are never driven.
	if fwd == 0 {
		if err := out.Forward.SetDuty(0); err != nil {
			return err
		}
		return out.Reverse.SetDuty(rev)
	}
	if err := out.Reverse.SetDuty(0); err != nil {
		return err
	}
	return out.Forward.SetDuty(fwd)
}

// Car has two motors.
type Car struct {
	Left  Motor
	Right Motor
}

// Update sets the throttles.
func (c *Car) Update(left, right float32) {
	c.Left.Throttle, c.Right.Throttle = left, right
}

// Drive applies both motors.
func (c *Car) Drive(left, right Outputs) error {
	if err := c.Left.Drive(left); err != nil {
		return err
	}
	return c.Right.Drive(right)
}

// Stop sets both throttles to 0 and applies them.
func (c *Car) Stop(left, right Outputs) error {
	c.Update(0, 0)
	return c.Drive(left, right)
}
