package l1

import (
	"context"
	"errors"

	fx "github.com/robotalks/rclink/pkg/framework"
)

// ErrNotConnected is returned by SendEvent while the registry is unreachable.
// Callers may treat it as a dropped event rather than a failure.
var ErrNotConnected = errors.New("registry not connected")

// Registrar registers an L1 controller to a registry and
// publishes its events.
type Registrar interface {
	// SendEvent sends an event to subscribers.
	SendEvent(context.Context, fx.Message) error
}

// ControllerRef is a reference to an L1 controller.
type ControllerRef struct {
	// Type is controller type (vehicle type).
	Type string
	// ID is unique ID of the device.
	ID string
}

// Name retrieves the name from ref.
func (r ControllerRef) Name() string {
	return r.Type + "/" + r.ID
}

// IsValid indicates ControllerRef is valid.
func (r ControllerRef) IsValid() bool {
	return r.Type != "" && r.ID != ""
}

// ControllerMeta provides metadata for L1 controller.
type ControllerMeta struct {
	Description string            `json:"description,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
}

// ControllerInfo provides information of an L1 controller.
type ControllerInfo struct {
	Ref  ControllerRef
	Meta ControllerMeta
}

// RegistrarMux sends events to multiple Registrars.
type RegistrarMux struct {
	Registrars []Registrar
}

// SendEvent implements Registrar.
func (r *RegistrarMux) SendEvent(ctx context.Context, msg fx.Message) error {
	var errs fx.AggregatedError
	for _, reg := range r.Registrars {
		errs.Add(reg.SendEvent(ctx, msg))
	}
	return errs.Aggregate()
}

// AddToLoop implements LoopAdder.
func (r *RegistrarMux) AddToLoop(l *fx.Loop) {
	for _, reg := range r.Registrars {
		if adder, ok := reg.(fx.LoopAdder); ok {
			l.Add(adder)
		}
	}
}

// Add adds more registrars.
func (r *RegistrarMux) Add(regs ...Registrar) {
	r.Registrars = append(r.Registrars, regs...)
}

// Len returns the number of registrars.
func (r *RegistrarMux) Len() int {
	return len(r.Registrars)
}
