package msgs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/rclink/pkg/framework"
	"github.com/robotalks/rclink/pkg/l0/sbus"
	"github.com/robotalks/rclink/pkg/rc"
)

type plainMsg struct{}

func (m *plainMsg) NewMessage() fx.Message { return &plainMsg{} }

func testFrame() sbus.Frame {
	var f sbus.Frame
	for n := range f.Channels {
		f.Channels[n] = sbus.NewChan(1000)
	}
	f.Channels[rc.ChRightThumbX] = sbus.NewChan(1800)
	f.Channels[rc.ChLeftThumbY] = sbus.NewChan(600)
	f.Channels[rc.ChRightShoulder] = sbus.NewChan(1500)
	f.Channels[rc.ChLeftTrigger] = sbus.NewChan(200)
	f.Channels[15] = sbus.NewChan(2047)
	f.Ch17, f.Failsafe = true, true
	return f
}

func TestTypedRCState(t *testing.T) {
	frame := testFrame()
	state := rc.StateFromChannels(&frame.Channels)
	data, err := EncodeEvent(NewRCState(&frame, &state))
	require.NoError(t, err)

	typed, err := DecodeTyped(data)
	require.NoError(t, err)
	assert.Equal(t, RCStateTypeID, typed.TypeId)
	assert.True(t, typed.IsEvent())
	assert.False(t, typed.IsCommand())

	msg, err := typed.Decode()
	require.NoError(t, err)
	decoded, ok := msg.(*RCState)
	require.True(t, ok)
	require.Len(t, decoded.Channels, sbus.NumChannels)
	assert.EqualValues(t, 1800, decoded.Channels[rc.ChRightThumbX])
	assert.EqualValues(t, 2047, decoded.Channels[15])
	assert.True(t, decoded.Ch17)
	assert.False(t, decoded.Ch18)
	assert.False(t, decoded.FrameLost)
	assert.True(t, decoded.Failsafe)
	require.NotNil(t, decoded.Controls)
	got := decoded.Controls.State()
	assert.True(t, state.Equal(got), "%v != %v", state, got)
	assert.Equal(t, rc.Pressed, got.RightShoulder)
	assert.Equal(t, rc.Down, got.LeftTrigger)
	assert.Equal(t, rc.Mid, got.RightTrigger)
}

func TestTypedRCStatus(t *testing.T) {
	stats := sbus.Stats{Bytes: 100, Frames: 3, HeaderErrors: 1, ReadErrors: 2}

	status := NewRCStatus("/dev/ttyS0", stats, 0, false)
	assert.EqualValues(t, -1, status.SinceLastFrameMs)

	status = NewRCStatus("/dev/ttyS0", stats, 1500*time.Millisecond, true)
	data, err := EncodeEvent(status)
	require.NoError(t, err)
	typed, err := DecodeTyped(data)
	require.NoError(t, err)
	msg, err := typed.Decode()
	require.NoError(t, err)
	decoded, ok := msg.(*RCStatus)
	require.True(t, ok)
	assert.Equal(t, "/dev/ttyS0", decoded.Device)
	assert.EqualValues(t, 3, decoded.Frames)
	assert.EqualValues(t, 100, decoded.Bytes)
	assert.EqualValues(t, 1, decoded.HeaderErrors)
	assert.EqualValues(t, 0, decoded.FooterErrors)
	assert.EqualValues(t, 2, decoded.ReadErrors)
	assert.EqualValues(t, 1500, decoded.SinceLastFrameMs)
}

func TestTypedErrors(t *testing.T) {
	_, err := TypedFrom(&plainMsg{})
	assert.Equal(t, ErrNotSerializable, err)

	typed := &Typed{TypeId: TypeIDKindEvent | GroupCustom | 1}
	_, err = typed.Decode()
	var unknown *ErrUnknownType
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, typed.TypeId, unknown.TypeID)
	assert.Equal(t, "unknown type: ff000001", err.Error())
}
