// Package rc maps raw RC channels into controller primitives.
package rc

import (
	"fmt"
	"math"
)

// Calibration of the radio link.
const (
	ChannelCenter = 1000
	ChannelRange  = 800
	ChannelHigh   = ChannelCenter + ChannelRange
	ChannelLow    = ChannelCenter - ChannelRange

	// DeadZone collapses normalized values closer to center into 0.
	DeadZone = 0.02
)

// float32 machine epsilon.
const axisEpsilon = 1.1920929e-07

// Axis is a normalized value in range [-1.0, 1.0].
type Axis float32

// AxisFromChannel normalizes a raw channel value.
func AxisFromChannel(val uint16) Axis {
	v := (float32(val) - ChannelCenter) / ChannelRange
	switch {
	case float32(math.Abs(float64(v))) < DeadZone:
		v = 0
	case v > 1:
		v = 1
	case v < -1:
		v = -1
	}
	return Axis(v)
}

// Value returns the axis as float32.
func (a Axis) Value() float32 {
	return float32(a)
}

// Equal compares two axes with tolerance of float32 epsilon.
func (a Axis) Equal(o Axis) bool {
	return math.Abs(float64(a)-float64(o)) <= axisEpsilon
}

// String implements fmt.Stringer.
func (a Axis) String() string {
	return fmt.Sprintf("%.3f", float32(a))
}

// Button is a two-state control.
type Button int

// Button states.
const (
	Released Button = iota
	Pressed
)

// ButtonFromChannel maps a raw channel to a Button.
func ButtonFromChannel(val uint16) Button {
	if val > ChannelCenter {
		return Pressed
	}
	return Released
}

// String implements fmt.Stringer.
func (b Button) String() string {
	if b == Pressed {
		return "pressed"
	}
	return "released"
}

// ThreeWay is a three-position switch.
type ThreeWay int

// Switch positions.
const (
	Mid ThreeWay = iota
	Up
	Down
)

// ThreeWayFromChannel maps a raw channel to a switch position.
// Only the exact codes are recognized, anything else is Mid.
func ThreeWayFromChannel(val uint16) ThreeWay {
	switch val {
	case ChannelHigh:
		return Up
	case ChannelLow:
		return Down
	}
	return Mid
}

// SwitchToleranceLimit is the exclusive upper bound of switch tolerances.
// Bands reaching the center would make a centered switch read Up or Down.
const SwitchToleranceLimit = (ChannelHigh - ChannelLow) / 4

// ThreeWayFromChannelTolerance is ThreeWayFromChannel accepting values
// within tol of each nominal code. tol is capped below SwitchToleranceLimit.
func ThreeWayFromChannelTolerance(val, tol uint16) ThreeWay {
	if tol >= SwitchToleranceLimit {
		tol = SwitchToleranceLimit - 1
	}
	d := func(code int) int {
		diff := int(val) - code
		if diff < 0 {
			diff = -diff
		}
		return diff
	}
	switch {
	case d(ChannelHigh) <= int(tol):
		return Up
	case d(ChannelLow) <= int(tol):
		return Down
	}
	return Mid
}

// String implements fmt.Stringer.
func (s ThreeWay) String() string {
	switch s {
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return "mid"
}

// Stick is a pair of axes.
type Stick struct {
	X Axis
	Y Axis
}

// StickFromChannels creates a Stick from raw x, y channels.
func StickFromChannels(x, y uint16) Stick {
	return Stick{X: AxisFromChannel(x), Y: AxisFromChannel(y)}
}

// Equal compares two sticks with tolerance.
func (s Stick) Equal(o Stick) bool {
	return s.X.Equal(o.X) && s.Y.Equal(o.Y)
}
