package rc

import (
	"github.com/robotalks/rclink/pkg/l0/sbus"
)

// Channel assignment on the transmitter.
const (
	ChRightThumbX = iota
	ChRightThumbY
	ChLeftThumbY
	ChLeftThumbX
	ChRightTrigger
	ChRightShoulder
	ChLeftTrigger
	ChLeftShoulder
)

// ControllerState is the state of all controls on the transmitter.
// Channels 8-15 are not mapped.
type ControllerState struct {
	LeftThumb     Stick
	LeftShoulder  Axis
	LeftTrigger   ThreeWay
	RightThumb    Stick
	RightShoulder Button
	RightTrigger  ThreeWay
}

// Mapper converts channels into ControllerState.
type Mapper struct {
	// SwitchTolerance is the accepted distance from the nominal codes
	// of the three-position switches. 0 requires exact codes.
	SwitchTolerance uint16
}

// StateFromChannels maps channels using exact switch codes.
func StateFromChannels(chs *[sbus.NumChannels]sbus.Chan) ControllerState {
	var m Mapper
	return m.Map(chs)
}

// Map maps channels into ControllerState.
func (m Mapper) Map(chs *[sbus.NumChannels]sbus.Chan) ControllerState {
	val := func(i int) uint16 { return chs[i].Value() }
	return ControllerState{
		RightThumb:    StickFromChannels(val(ChRightThumbX), val(ChRightThumbY)),
		LeftThumb:     StickFromChannels(val(ChLeftThumbX), val(ChLeftThumbY)),
		RightTrigger:  ThreeWayFromChannelTolerance(val(ChRightTrigger), m.SwitchTolerance),
		RightShoulder: ButtonFromChannel(val(ChRightShoulder)),
		LeftTrigger:   ThreeWayFromChannelTolerance(val(ChLeftTrigger), m.SwitchTolerance),
		LeftShoulder:  AxisFromChannel(val(ChLeftShoulder)),
	}
}

// Equal compares states with axis tolerance.
func (s ControllerState) Equal(o ControllerState) bool {
	return s.LeftThumb.Equal(o.LeftThumb) &&
		s.LeftShoulder.Equal(o.LeftShoulder) &&
		s.LeftTrigger == o.LeftTrigger &&
		s.RightThumb.Equal(o.RightThumb) &&
		s.RightShoulder == o.RightShoulder &&
		s.RightTrigger == o.RightTrigger
}
