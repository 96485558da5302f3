// Package monitor streams the controller state to browsers over websocket.
package monitor

import (
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"sync"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	fx "github.com/robotalks/rclink/pkg/framework"
	"github.com/robotalks/rclink/pkg/l1/msgs"
	"github.com/robotalks/rclink/pkg/rc/link"
)

var defaultAddr string

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultAddr, "monitor", defaultAddr, "Websocket monitor listen address, e.g. :8080. Empty to disable.")
}

// DefaultAddr returns the configured listen address.
func DefaultAddr() string {
	return defaultAddr
}

// Server broadcasts the latest state to websocket clients at /ws
// and serves it as JSON at /state. Slow clients only get the latest.
type Server struct {
	Addr string

	lock    sync.Mutex
	latest  []byte
	clients map[*client]struct{}
}

type client struct {
	ch chan []byte
}

// NewServer creates a Server.
func NewServer(addr string) *Server {
	return &Server{Addr: addr, clients: make(map[*client]struct{})}
}

// StateChanged implements link.Listener.
func (s *Server) StateChanged(_ fx.ControlContext, msg *link.StateMsg) {
	data, err := json.Marshal(msgs.NewRCState(&msg.Frame, &msg.Controls))
	if err != nil {
		glog.Errorf("encode state error: %v", err)
		return
	}
	s.Publish(data)
}

// Publish broadcasts a JSON document.
func (s *Server) Publish(data []byte) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.latest = data
	for c := range s.clients {
		c.offer(data)
	}
}

// Latest returns the last published document.
func (s *Server) Latest() []byte {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.latest
}

func (c *client) offer(data []byte) {
	select {
	case c.ch <- data:
		return
	default:
	}
	// replace the pending one.
	select {
	case <-c.ch:
	default:
	}
	select {
	case c.ch <- data:
	default:
	}
}

func (s *Server) addClient() *client {
	c := &client{ch: make(chan []byte, 1)}
	s.lock.Lock()
	s.clients[c] = struct{}{}
	if s.latest != nil {
		c.ch <- s.latest
	}
	s.lock.Unlock()
	return c
}

func (s *Server) removeClient(c *client) {
	s.lock.Lock()
	delete(s.clients, c)
	s.lock.Unlock()
}

// Clients returns the number of connected clients.
func (s *Server) Clients() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.clients)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", websocket.Handler(s.serveWS))
	mux.HandleFunc("/state", s.serveState)
	return mux
}

func (s *Server) serveState(w http.ResponseWriter, r *http.Request) {
	data := s.Latest()
	if data == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) serveWS(conn *websocket.Conn) {
	defer conn.Close()
	c := s.addClient()
	defer s.removeClient(c)
	glog.V(1).Infof("monitor client %s connected", conn.Request().RemoteAddr)

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		var discard string
		for {
			if err := websocket.Message.Receive(conn, &discard); err != nil {
				return
			}
		}
	}()
	for {
		select {
		case <-closed:
			glog.V(1).Infof("monitor client %s disconnected", conn.Request().RemoteAddr)
			return
		case data := <-c.ch:
			if err := websocket.Message.Send(conn, string(data)); err != nil {
				glog.V(1).Infof("monitor send error: %v", err)
				return
			}
		}
	}
}

// AddToLoop implements LoopAdder.
func (s *Server) AddToLoop(loop *fx.Loop) {
	loop.AddRunnable(fx.NamedRun("monitor", s))
}

// Run implements Runnable.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.Addr, Handler: s.Handler()}
	glog.Infof("monitor listening on %s", s.Addr)
	return fx.RunWithCloser(ctx, srv, srv.ListenAndServe)
}
