package monitor

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"

	"github.com/robotalks/rclink/pkg/l0/sbus"
	"github.com/robotalks/rclink/pkg/l1/msgs"
	"github.com/robotalks/rclink/pkg/rc"
	"github.com/robotalks/rclink/pkg/rc/link"
)

func stateMsg(vals ...uint16) *link.StateMsg {
	var f sbus.Frame
	for n := range f.Channels {
		f.Channels[n] = sbus.NewChan(rc.ChannelCenter)
	}
	for n, val := range vals {
		f.Channels[n] = sbus.NewChan(val)
	}
	return &link.StateMsg{Frame: f, Controls: rc.StateFromChannels(&f.Channels)}
}

func receiveState(t *testing.T, conn *websocket.Conn) *msgs.RCState {
	var text string
	require.NoError(t, websocket.Message.Receive(conn, &text))
	var state msgs.RCState
	require.NoError(t, json.Unmarshal([]byte(text), &state))
	return &state
}

func TestServerWebsocket(t *testing.T) {
	s := NewServer("")
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	s.StateChanged(nil, stateMsg(1800))
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, err := websocket.Dial(url, "", srv.URL)
	require.NoError(t, err)
	defer conn.Close()

	state := receiveState(t, conn)
	assert.EqualValues(t, 1800, state.Channels[rc.ChRightThumbX])
	require.NotNil(t, state.Controls)
	assert.EqualValues(t, 1, state.Controls.RightThumbX)

	s.StateChanged(nil, stateMsg(1000, 200))
	state = receiveState(t, conn)
	assert.EqualValues(t, 200, state.Channels[rc.ChRightThumbY])
	assert.EqualValues(t, -1, state.Controls.RightThumbY)
}

func TestServerState(t *testing.T) {
	s := NewServer("")
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/state")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	s.Publish([]byte(`{"channels":[1]}`))
	resp, err = http.Get(srv.URL + "/state")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"channels":[1]}`, string(body))
}

func TestClientKeepsLatest(t *testing.T) {
	c := &client{ch: make(chan []byte, 1)}
	c.offer([]byte("1"))
	c.offer([]byte("2"))
	c.offer([]byte("3"))
	assert.Equal(t, "3", string(<-c.ch))
	select {
	case data := <-c.ch:
		t.Fatalf("unexpected %q", data)
	default:
	}
}
