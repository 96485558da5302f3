package mqtt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/rclink/pkg/l0/sbus"
	"github.com/robotalks/rclink/pkg/l1"
	"github.com/robotalks/rclink/pkg/l1/msgs"
)

func TestParseTopic(t *testing.T) {
	ref, suffix, ok := ParseTopic("rccar/abc/msg")
	require.True(t, ok)
	assert.Equal(t, l1.ControllerRef{Type: "rccar", ID: "abc"}, ref)
	assert.Equal(t, MsgTopic, suffix)

	_, _, ok = ParseTopic("rccar/abc")
	assert.False(t, ok)
	_, _, ok = ParseTopic("rccar//msg")
	assert.False(t, ok)
}

func TestDecodeEvent(t *testing.T) {
	ev, err := DecodeEvent("rccar/abc/meta", []byte(`{"description":"car"}`))
	require.NoError(t, err)
	require.NotNil(t, ev.Meta)
	assert.Equal(t, "car", ev.Meta.Description)
	assert.False(t, ev.Gone)

	ev, err = DecodeEvent("rccar/abc/meta", nil)
	require.NoError(t, err)
	assert.True(t, ev.Gone)

	pkt, err := msgs.EncodeEvent(msgs.NewRCStatus("uart", sbus.Stats{Frames: 9}, 0, false))
	require.NoError(t, err)
	ev, err = DecodeEvent("rccar/abc/msg", pkt)
	require.NoError(t, err)
	status, ok := ev.Msg.(*msgs.RCStatus)
	require.True(t, ok)
	assert.EqualValues(t, 9, status.Frames)
	assert.Equal(t, "abc", ev.Ref.ID)

	ev, err = DecodeEvent("rccar/abc/cmd", pkt)
	require.NoError(t, err)
	assert.Nil(t, ev)

	_, err = DecodeEvent("rccar/abc/meta", []byte("{"))
	assert.Error(t, err)
}
