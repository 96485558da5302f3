package link

import (
	"errors"
	"time"

	"github.com/golang/glog"

	fx "github.com/robotalks/rclink/pkg/framework"
	"github.com/robotalks/rclink/pkg/l0/sbus"
	"github.com/robotalks/rclink/pkg/l1"
	"github.com/robotalks/rclink/pkg/l1/msgs"
	"github.com/robotalks/rclink/pkg/rc"
)

// GapThreshold is the gap between frames logged in verbose mode.
const GapThreshold = time.Second

// State is the link state carried across loop iterations.
type State struct {
	// LastFrameAt is the loop time of the last decoded frame,
	// zero before the first one.
	LastFrameAt time.Time
	Frame       sbus.Frame
	Controls    rc.ControllerState
	Stats       sbus.Stats
	// SourceErr is the last error returned by the source.
	SourceErr error
}

// Received indicates at least one frame was decoded.
func (s State) Received() bool {
	return !s.LastFrameAt.IsZero()
}

// SinceLastFrame returns the time elapsed since the last frame.
// It is for diagnostics only and doesn't affect decoding.
func (s State) SinceLastFrame(now time.Time) (time.Duration, bool) {
	if !s.Received() {
		return 0, false
	}
	return now.Sub(s.LastFrameAt), true
}

// StateMsg is added to the message store on every decoded frame,
// visible to controllers with lower priorities in the same iteration.
type StateMsg struct {
	At       time.Time
	Frame    sbus.Frame
	Controls rc.ControllerState
}

// NewMessage implements Message.
func (m *StateMsg) NewMessage() fx.Message { return &StateMsg{} }

// Listener is notified on every decoded frame.
type Listener interface {
	StateChanged(fx.ControlContext, *StateMsg)
}

// ListenerFunc is the func form of Listener.
type ListenerFunc func(fx.ControlContext, *StateMsg)

// StateChanged implements Listener.
func (f ListenerFunc) StateChanged(cc fx.ControlContext, msg *StateMsg) {
	f(cc, msg)
}

// Controller polls the SBUS source once per iteration and publishes
// the decoded controller state.
type Controller struct {
	Device         string
	Poller         *sbus.Poller
	Mapper         rc.Mapper
	Registrar      l1.Registrar
	StatusInterval time.Duration
	Verbose        bool

	state        State
	lastStatusAt time.Time
	stateChanged bool
	listeners    []Listener
}

// NewController creates a Controller.
func NewController(src sbus.Source) *Controller {
	return &Controller{
		Poller:         sbus.NewPoller(src),
		StatusInterval: defaultConfig.StatusInterval,
		Verbose:        defaultConfig.Verbose,
	}
}

// Subscribe adds a listener.
func (c *Controller) Subscribe(ln Listener) {
	c.listeners = append(c.listeners, ln)
}

// State returns a snapshot of the link state.
func (c *Controller) State() State {
	return c.state
}

// AddToLoop implements LoopAdder.
func (c *Controller) AddToLoop(loop *fx.Loop) {
	loop.AddController(fx.PrLvSense, c)
	loop.AddController(fx.PrLvPostProc, fx.ControlFunc(c.reportStatus))
}

// Control implements Controller.
func (c *Controller) Control(cc fx.ControlContext) error {
	frame, err := c.Poller.Poll()
	c.state.Stats = c.Poller.Stats
	if err != nil {
		if c.state.SourceErr == nil || c.state.SourceErr.Error() != err.Error() {
			glog.Errorf("sbus source %s error: %v", c.Device, err)
		}
		c.state.SourceErr = err
		return nil
	}
	c.state.SourceErr = nil
	if frame == nil {
		return nil
	}

	now := cc.Time()
	if c.Verbose {
		if gap, ok := c.state.SinceLastFrame(now); ok && gap > GapThreshold {
			glog.V(1).Infof("no frame for %v", gap)
		}
		if frame.Failsafe || frame.FrameLost {
			glog.V(1).Infof("receiver flags: frame_lost=%v failsafe=%v", frame.FrameLost, frame.Failsafe)
		}
	}
	c.state.LastFrameAt = now
	c.state.Frame = *frame
	c.state.Controls = c.Mapper.Map(&frame.Channels)
	c.stateChanged = true

	msg := &StateMsg{At: now, Frame: *frame, Controls: c.state.Controls}
	cc.Messages().AddMessages(msg)
	for _, ln := range c.listeners {
		ln.StateChanged(cc, msg)
	}
	return nil
}

func (c *Controller) reportStatus(cc fx.ControlContext) error {
	if c.Registrar == nil || c.StatusInterval <= 0 {
		return nil
	}
	now := cc.Time()
	if !c.lastStatusAt.IsZero() && now.Sub(c.lastStatusAt) < c.StatusInterval {
		return nil
	}
	c.lastStatusAt = now

	var errs fx.AggregatedError
	since, received := c.state.SinceLastFrame(now)
	errs.Add(c.Registrar.SendEvent(cc.Context(), msgs.NewRCStatus(c.Device, c.state.Stats, since, received)))
	if c.stateChanged {
		// kept pending until delivered.
		err := c.Registrar.SendEvent(cc.Context(), msgs.NewRCState(&c.state.Frame, &c.state.Controls))
		c.stateChanged = err != nil
		errs.Add(err)
	}
	err := errs.Aggregate()
	if err != nil && notConnected(err) {
		glog.V(1).Infof("status not sent: %v", err)
		return nil
	}
	return err
}

// notConnected reports whether every error in err is l1.ErrNotConnected.
func notConnected(err error) bool {
	if agg, ok := err.(*fx.AggregatedError); ok {
		for _, e := range agg.Errors {
			if !notConnected(e) {
				return false
			}
		}
		return len(agg.Errors) > 0
	}
	return errors.Is(err, l1.ErrNotConnected)
}
