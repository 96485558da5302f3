package motion

import (
	"github.com/golang/glog"

	fx "github.com/robotalks/rclink/pkg/framework"
	"github.com/robotalks/rclink/pkg/motion/sysfs"
	"github.com/robotalks/rclink/pkg/rc/link"
)

// Driver drives the car tank-style from the thumb sticks:
// left_thumb.y is the left throttle, right_thumb.y the right one.
type Driver struct {
	Car   Car
	Left  Outputs
	Right Outputs
	// StopOnFailsafe stops the car while the receiver reports failsafe.
	StopOnFailsafe bool

	channels []*sysfs.Channel
}

// AddToLoop implements LoopAdder.
func (d *Driver) AddToLoop(loop *fx.Loop) {
	loop.AddController(fx.PrLvActuate, d)
}

// Control implements Controller.
// Only the latest state in the iteration is applied.
func (d *Driver) Control(cc fx.ControlContext) error {
	var latest *link.StateMsg
	cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mctx fx.MessageProcessingContext) {
		if msg, ok := mctx.CurrentMessage().(*link.StateMsg); ok {
			latest = msg
		}
	}))
	if latest == nil {
		return nil
	}
	if d.StopOnFailsafe && latest.Frame.Failsafe {
		if d.Car.Left.Throttle != 0 || d.Car.Right.Throttle != 0 {
			glog.Warning("failsafe, stopping")
		}
		return d.Car.Stop(d.Left, d.Right)
	}
	ctl := latest.Controls
	d.Car.Update(ctl.LeftThumb.Y.Value(), ctl.RightThumb.Y.Value())
	return d.Car.Drive(d.Left, d.Right)
}

// Close stops the car and releases PWM channels.
func (d *Driver) Close() error {
	var errs fx.AggregatedError
	errs.Add(d.Car.Stop(d.Left, d.Right))
	for _, ch := range d.channels {
		errs.Add(ch.Close())
	}
	d.channels = nil
	return errs.Aggregate()
}
