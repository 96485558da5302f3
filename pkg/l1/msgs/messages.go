package msgs

import (
	"time"

	"github.com/golang/protobuf/proto"

	fx "github.com/robotalks/rclink/pkg/framework"
	"github.com/robotalks/rclink/pkg/l0/sbus"
	"github.com/robotalks/rclink/pkg/rc"
)

// RCControls is the mapped controller state on the wire.
// Switches use the values of rc.ThreeWay, buttons are booleans.
type RCControls struct {
	LeftThumbX    float32 `protobuf:"fixed32,1,opt,name=left_thumb_x,proto3" json:"left_thumb_x"`
	LeftThumbY    float32 `protobuf:"fixed32,2,opt,name=left_thumb_y,proto3" json:"left_thumb_y"`
	RightThumbX   float32 `protobuf:"fixed32,3,opt,name=right_thumb_x,proto3" json:"right_thumb_x"`
	RightThumbY   float32 `protobuf:"fixed32,4,opt,name=right_thumb_y,proto3" json:"right_thumb_y"`
	LeftShoulder  float32 `protobuf:"fixed32,5,opt,name=left_shoulder,proto3" json:"left_shoulder"`
	RightShoulder bool    `protobuf:"varint,6,opt,name=right_shoulder,proto3" json:"right_shoulder"`
	LeftTrigger   int32   `protobuf:"varint,7,opt,name=left_trigger,proto3" json:"left_trigger"`
	RightTrigger  int32   `protobuf:"varint,8,opt,name=right_trigger,proto3" json:"right_trigger"`
}

// ProtoMessage implements proto.Message.
func (m *RCControls) ProtoMessage() {}

// Reset implements proto.Message.
func (m *RCControls) Reset() { *m = RCControls{} }

// String implements proto.Message.
func (m *RCControls) String() string { return proto.CompactTextString(m) }

// ControlsFromState converts a mapped controller state.
func ControlsFromState(s *rc.ControllerState) *RCControls {
	return &RCControls{
		LeftThumbX:    s.LeftThumb.X.Value(),
		LeftThumbY:    s.LeftThumb.Y.Value(),
		RightThumbX:   s.RightThumb.X.Value(),
		RightThumbY:   s.RightThumb.Y.Value(),
		LeftShoulder:  s.LeftShoulder.Value(),
		RightShoulder: s.RightShoulder == rc.Pressed,
		LeftTrigger:   int32(s.LeftTrigger),
		RightTrigger:  int32(s.RightTrigger),
	}
}

// State converts back to rc.ControllerState.
func (m *RCControls) State() rc.ControllerState {
	s := rc.ControllerState{
		LeftThumb:    rc.Stick{X: rc.Axis(m.LeftThumbX), Y: rc.Axis(m.LeftThumbY)},
		RightThumb:   rc.Stick{X: rc.Axis(m.RightThumbX), Y: rc.Axis(m.RightThumbY)},
		LeftShoulder: rc.Axis(m.LeftShoulder),
		LeftTrigger:  rc.ThreeWay(m.LeftTrigger),
		RightTrigger: rc.ThreeWay(m.RightTrigger),
	}
	if m.RightShoulder {
		s.RightShoulder = rc.Pressed
	}
	return s
}

// RCState is an Event message carrying the latest decoded frame.
type RCState struct {
	Channels  []uint32    `protobuf:"varint,1,rep,packed,name=channels,proto3" json:"channels"`
	Ch17      bool        `protobuf:"varint,2,opt,name=ch17,proto3" json:"ch17"`
	Ch18      bool        `protobuf:"varint,3,opt,name=ch18,proto3" json:"ch18"`
	FrameLost bool        `protobuf:"varint,4,opt,name=frame_lost,proto3" json:"frame_lost"`
	Failsafe  bool        `protobuf:"varint,5,opt,name=failsafe,proto3" json:"failsafe"`
	Controls  *RCControls `protobuf:"bytes,6,opt,name=controls,proto3" json:"controls,omitempty"`
}

// NewRCState creates RCState from a frame and its mapped state.
func NewRCState(frame *sbus.Frame, state *rc.ControllerState) *RCState {
	m := &RCState{
		Channels:  make([]uint32, sbus.NumChannels),
		Ch17:      frame.Ch17,
		Ch18:      frame.Ch18,
		FrameLost: frame.FrameLost,
		Failsafe:  frame.Failsafe,
	}
	for n, ch := range frame.Channels {
		m.Channels[n] = uint32(ch.Value())
	}
	if state != nil {
		m.Controls = ControlsFromState(state)
	}
	return m
}

// NewMessage implements Message.
func (m *RCState) NewMessage() fx.Message { return &RCState{} }

// TypeID implements SerializableMessage.
func (m *RCState) TypeID() uint32 { return RCStateTypeID }

// Serializable implements SerializableMessage.
func (m *RCState) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *RCState) ProtoMessage() {}

// Reset implements proto.Message.
func (m *RCState) Reset() { *m = RCState{} }

// String implements proto.Message.
func (m *RCState) String() string { return proto.CompactTextString(m) }

// RCStatus is an Event message reporting link health.
type RCStatus struct {
	Device       string `protobuf:"bytes,1,opt,name=device,proto3" json:"device,omitempty"`
	Frames       uint64 `protobuf:"varint,2,opt,name=frames,proto3" json:"frames"`
	Bytes        uint64 `protobuf:"varint,3,opt,name=bytes,proto3" json:"bytes"`
	HeaderErrors uint64 `protobuf:"varint,4,opt,name=header_errors,proto3" json:"header_errors"`
	FooterErrors uint64 `protobuf:"varint,5,opt,name=footer_errors,proto3" json:"footer_errors"`
	ReadErrors   uint64 `protobuf:"varint,6,opt,name=read_errors,proto3" json:"read_errors"`
	// SinceLastFrameMs is -1 before the first frame.
	SinceLastFrameMs int64 `protobuf:"varint,7,opt,name=since_last_frame_ms,proto3" json:"since_last_frame_ms"`
}

// NewRCStatus creates RCStatus from poller stats.
func NewRCStatus(device string, stats sbus.Stats, sinceLastFrame time.Duration, received bool) *RCStatus {
	m := &RCStatus{
		Device:           device,
		Frames:           stats.Frames,
		Bytes:            stats.Bytes,
		HeaderErrors:     stats.HeaderErrors,
		FooterErrors:     stats.FooterErrors,
		ReadErrors:       stats.ReadErrors,
		SinceLastFrameMs: -1,
	}
	if received {
		m.SinceLastFrameMs = sinceLastFrame.Milliseconds()
	}
	return m
}

// NewMessage implements Message.
func (m *RCStatus) NewMessage() fx.Message { return &RCStatus{} }

// TypeID implements SerializableMessage.
func (m *RCStatus) TypeID() uint32 { return RCStatusTypeID }

// Serializable implements SerializableMessage.
func (m *RCStatus) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *RCStatus) ProtoMessage() {}

// Reset implements proto.Message.
func (m *RCStatus) Reset() { *m = RCStatus{} }

// String implements proto.Message.
func (m *RCStatus) String() string { return proto.CompactTextString(m) }

// TypeID Groups
const (
	GroupRC     uint32 = 0x00100000
	GroupCustom uint32 = 0x7f000000 // base group id for custom messages.
)

// TypeIDs
const (
	RCStateTypeID  uint32 = TypeIDKindEvent | GroupRC | 0x0000
	RCStatusTypeID uint32 = TypeIDKindEvent | GroupRC | 0x0001
)
