package framework

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/golang/glog"
)

// ErrForcedExit is returned by Runner.Wait after a second stop signal.
var ErrForcedExit = errors.New("forced exit")

type namedRunnable struct {
	Runnable
	name string
}

func (r *namedRunnable) Name() string {
	return r.name
}

// NamedRun wraps a Runnable with a name used in logs and errors.
func NamedRun(name string, runnable Runnable) Runnable {
	return &namedRunnable{name: name, Runnable: runnable}
}

// Runner runs Runnables in goroutines sharing one context.
type Runner struct {
	Context context.Context

	started int
	errCh   chan error
	exitCh  chan struct{}
}

// NewRunner creates a runner with a background context.
func NewRunner() *Runner {
	return NewRunnerWith(context.Background())
}

// NewRunnerWith creates a runner with a specified context.
func NewRunnerWith(ctx context.Context) *Runner {
	return &Runner{
		Context: ctx,
		errCh:   make(chan error),
		exitCh:  make(chan struct{}),
	}
}

// HandleSignals cancels the context on Ctrl-C or SIGTERM.
// A second signal makes Wait return ErrForcedExit without waiting.
func (r *Runner) HandleSignals() *Runner {
	ctx, cancel := context.WithCancel(r.Context)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	r.Context = ctx
	go func() {
		sig := <-sigCh
		glog.Infof("%v: stopping", sig)
		cancel()
		<-sigCh
		glog.Error("stop requested again")
		close(r.exitCh)
	}()
	return r
}

// Go starts Runnables.
func (r *Runner) Go(runnables ...Runnable) *Runner {
	for _, runnable := range runnables {
		name := strconv.Itoa(r.started)
		if named, ok := runnable.(Named); ok {
			name = named.Name()
		}
		r.started++
		go func(runnable Runnable, name string) {
			glog.V(4).Infof("runner %s started", name)
			err := runnable.Run(r.Context)
			glog.V(4).Infof("runner %s stopped: %v", name, err)
			if err != nil {
				err = fmt.Errorf("%s: %w", name, err)
			}
			select {
			case r.errCh <- err:
			case <-r.exitCh:
			}
		}(runnable, name)
	}
	return r
}

// Wait waits for all started Runnables and aggregates their errors.
// Cancellation is not an error.
func (r *Runner) Wait() error {
	var errs AggregatedError
	for ; r.started > 0; r.started-- {
		select {
		case <-r.exitCh:
			return ErrForcedExit
		case err := <-r.errCh:
			if !errors.Is(err, context.Canceled) {
				errs.Add(err)
			}
		}
	}
	return errs.Aggregate()
}

// RunWithCloser runs a blocking fn which doesn't accept a context,
// like http.Server.ListenAndServe. closer is closed when ctx is done
// to unblock fn, and context.Canceled is returned.
func RunWithCloser(ctx context.Context, closer io.Closer, fn func() error) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- fn()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		if err := closer.Close(); err != nil {
			glog.Warningf("close error: %v", err)
		}
		<-errCh
		return context.Canceled
	}
}
