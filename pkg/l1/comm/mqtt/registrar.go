package mqtt

import (
	"context"
	"encoding/json"

	"github.com/golang/glog"

	fx "github.com/robotalks/rclink/pkg/framework"
	"github.com/robotalks/rclink/pkg/l1"
	"github.com/robotalks/rclink/pkg/l1/msgs"
)

// Topic suffixes under <type>/<id>.
const (
	MetaTopic = "meta"
	MsgTopic  = "msg"
)

// Registrar implements l1.Registrar using MQTT.
// It publishes retained meta at <type>/<id>/meta and events
// at <type>/<id>/msg.
type Registrar struct {
	Queue *Queue
	Info  l1.ControllerInfo

	metaJSON []byte
}

// NewRegistrar creates a Registrar.
func NewRegistrar(brokerURL string, info l1.ControllerInfo) (*Registrar, error) {
	meta, err := json.Marshal(&info.Meta)
	if err != nil {
		return nil, err
	}
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	// broker clears the meta when the controller disappears.
	opts.SetBinaryWill(topicPrefix+Topic(info.Ref.Name(), MetaTopic), nil, 1, true)
	if opts.ClientID == "" {
		opts.SetClientID("rclink:" + info.Ref.Name())
	}
	r := &Registrar{
		Queue:    NewQueue(opts, topicPrefix),
		Info:     info,
		metaJSON: meta,
	}
	r.Queue.OnConnect = r.onConnected
	return r, nil
}

// SendEvent implements Registrar.
// It doesn't wait for the broker, publish failures are logged.
func (r *Registrar) SendEvent(ctx context.Context, msg fx.Message) error {
	pkt, err := msgs.EncodeEvent(msg)
	if err != nil {
		return err
	}
	if !r.Queue.Client.IsConnected() {
		return ErrNotConnected
	}
	token := r.Queue.Pub(Topic(r.Info.Ref.Name(), MsgTopic), pkt)
	go func() {
		if err := WaitToken(ctx, token); err != nil {
			glog.Warningf("publish event error: %v", err)
		}
	}()
	return nil
}

// AddToLoop implements LoopAdder.
func (r *Registrar) AddToLoop(loop *fx.Loop) {
	loop.AddRunnable(r)
}

// Run implements Runnable.
func (r *Registrar) Run(ctx context.Context) error {
	r.Queue.Connect()
	<-ctx.Done()
	if r.Queue.Client.IsConnected() {
		r.Queue.PubWith(Topic(r.Info.Ref.Name(), MetaTopic), nil, 1, true).WaitTimeout(DefaultTokenTimeout)
	}
	r.Queue.Close()
	return ctx.Err()
}

func (r *Registrar) onConnected() {
	r.Queue.PubWith(Topic(r.Info.Ref.Name(), MetaTopic), r.metaJSON, 1, true)
}
