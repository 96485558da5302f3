package sbus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoller(t *testing.T) {
	expect := testFrame()
	data := expect.Bytes()
	bad := expect.Bytes()
	bad[0] = 0

	script := NewScript().
		Idle().
		Bytes(data[:10]...).
		Err(&ReadError{Kind: ReadParity}).
		Bytes(data[10:]...).
		Bytes(bad...).
		Idle().
		Frames(expect)
	p := NewPoller(script)

	var frames []Frame
	polls := 0
	for script.Remaining() > 0 {
		f, err := p.Poll()
		require.NoError(t, err)
		if f != nil {
			frames = append(frames, *f)
		}
		polls++
	}
	require.Equal(t, []Frame{expect, expect}, frames)
	require.Equal(t, 7, polls)
	require.Equal(t, Stats{
		Bytes:        3 * PacketSize,
		Frames:       2,
		HeaderErrors: 1,
		ReadErrors:   1,
	}, p.Stats)

	f, err := p.Poll()
	require.NoError(t, err)
	require.Nil(t, f)
}

func TestPollerSourceError(t *testing.T) {
	errClosed := errors.New("port closed")
	p := NewPoller(NewScript().Bytes(1, 2, 3).Err(errClosed))
	f, err := p.Poll()
	require.NoError(t, err)
	require.Nil(t, f)
	_, err = p.Poll()
	require.Equal(t, errClosed, err)
	require.Equal(t, 3, p.Receiver.Len())
}

func TestScriptSplitsChunks(t *testing.T) {
	s := NewScript().Bytes(1, 2, 3, 4, 5)
	buf := make([]byte, 2)
	var got []byte
	for s.Remaining() > 0 {
		n, err := s.Read(buf)
		require.NoError(t, err)
		got = append(got, buf[:n]...)
	}
	require.Equal(t, []byte{1, 2, 3, 4, 5}, got)
}

func TestReadError(t *testing.T) {
	for kind, name := range map[ReadErrorKind]string{
		ReadOverrun: "overrun",
		ReadBreak:   "break",
		ReadParity:  "parity",
		ReadFraming: "framing",
	} {
		err := &ReadError{Kind: kind}
		require.Equal(t, "read error: "+name, err.Error())
		require.True(t, IsReadError(err))
	}
	require.False(t, IsReadError(errors.New("other")))
}
