package mqtt

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/golang/glog"

	fx "github.com/robotalks/rclink/pkg/framework"
	"github.com/robotalks/rclink/pkg/l1"
	"github.com/robotalks/rclink/pkg/l1/msgs"
)

// Event is an event received from an L1 controller.
type Event struct {
	Ref l1.ControllerRef
	// Meta is set when the controller (re)registers, Msg is nil then.
	Meta *l1.ControllerMeta
	// Gone indicates the controller cleared its meta.
	Gone bool
	Msg  fx.Message
}

// Watcher subscribes to meta and events of all controllers
// under the topic prefix.
type Watcher struct {
	Queue *Queue
	// Type filters controllers by type, empty for all.
	Type string
}

// NewWatcher creates a Watcher.
func NewWatcher(brokerURL string) (*Watcher, error) {
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	return &Watcher{Queue: NewQueue(opts, topicPrefix)}, nil
}

// ParseTopic splits <type>/<id>/<suffix>.
func ParseTopic(topic string) (ref l1.ControllerRef, suffix string, ok bool) {
	items := strings.Split(topic, "/")
	if len(items) != 3 {
		return
	}
	ref.Type, ref.ID, suffix = items[0], items[1], items[2]
	return ref, suffix, ref.IsValid()
}

// DecodeEvent converts a received MQTT message into an Event.
func DecodeEvent(topic string, payload []byte) (*Event, error) {
	ref, suffix, ok := ParseTopic(topic)
	if !ok {
		return nil, nil
	}
	ev := &Event{Ref: ref}
	switch suffix {
	case MetaTopic:
		if len(payload) == 0 {
			ev.Gone = true
			return ev, nil
		}
		var meta l1.ControllerMeta
		if err := json.Unmarshal(payload, &meta); err != nil {
			return nil, err
		}
		ev.Meta = &meta
	case MsgTopic:
		typed, err := msgs.DecodeTyped(payload)
		if err != nil {
			return nil, err
		}
		if ev.Msg, err = typed.Decode(); err != nil {
			return nil, err
		}
	default:
		return nil, nil
	}
	return ev, nil
}

// Watch delivers events until ctx is canceled.
func (w *Watcher) Watch(ctx context.Context, handler func(*Event)) error {
	token := w.Queue.Connect()
	if err := WaitToken(ctx, token); err != nil {
		return err
	}
	defer w.Queue.Close()

	typ := w.Type
	if typ == "" {
		typ = "+"
	}
	eventCh := make(chan *Event, 16)
	h := Handler(func(topic string, payload []byte) {
		ev, err := DecodeEvent(topic, payload)
		if err != nil {
			glog.Warningf("decode %q error: %v", topic, err)
			return
		}
		if ev == nil {
			return
		}
		select {
		case eventCh <- ev:
		case <-ctx.Done():
		}
	})
	for _, suffix := range []string{MetaTopic, MsgTopic} {
		sub := w.Queue.Sub(Topic(typ, "+", suffix), h)
		defer sub.Close()
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-eventCh:
			handler(ev)
		}
	}
}
