package framework

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testMsg struct {
	val int
}

func (m *testMsg) NewMessage() Message { return &testMsg{} }

func collect(mc MessageProcessingContext, vals *[]int) {
	if msg, ok := mc.CurrentMessage().(*testMsg); ok {
		*vals = append(*vals, msg.val)
		mc.MessageTaken()
	}
}

func TestLoopStepPriorityOrder(t *testing.T) {
	var order []int
	loop := NewLoop()
	for _, lv := range []int{PrLvActuate, PrLvSense, PrLvControl} {
		lv := lv
		loop.AddController(lv, ControlFunc(func(cc ControlContext) error {
			require.Equal(t, lv, cc.PriorityLevel())
			order = append(order, lv)
			return nil
		}))
	}
	loop.Step(context.Background())
	assert.Equal(t, []int{PrLvSense, PrLvControl, PrLvActuate}, order)
}

func TestLoopStepClock(t *testing.T) {
	at := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	loop := NewLoop()
	loop.Clock = func() time.Time { return at }
	var seen time.Time
	loop.AddController(PrLvControl, ControlFunc(func(cc ControlContext) error {
		seen = cc.Time()
		return nil
	}))
	loop.Step(context.Background())
	assert.Equal(t, at, seen)
}

func TestLoopMessagesWithinIteration(t *testing.T) {
	var got []int
	var leftover []int
	loop := NewLoop()
	loop.AddController(PrLvSense, ControlFunc(func(cc ControlContext) error {
		cc.Messages().AddMessages(&testMsg{val: 1}, &testMsg{val: 2})
		return nil
	}))
	loop.AddController(PrLvControl, ControlFunc(func(cc ControlContext) error {
		cc.Messages().ProcessMessages(ProcessMessageFunc(func(mc MessageProcessingContext) {
			msg := mc.CurrentMessage().(*testMsg)
			if msg.val == 1 {
				got = append(got, msg.val)
				mc.MessageTaken()
			}
		}))
		return nil
	}))
	loop.AddController(PrLvPostProc, ControlFunc(func(cc ControlContext) error {
		cc.Messages().ProcessMessages(ProcessMessageFunc(func(mc MessageProcessingContext) {
			collect(mc, &leftover)
		}))
		return nil
	}))
	loop.Step(context.Background())
	assert.Equal(t, []int{1}, got)
	assert.Equal(t, []int{2}, leftover)

	// untaken messages don't survive the iteration
	got, leftover = nil, nil
	loop.controllers[PrLvSense] = nil
	loop.Step(context.Background())
	assert.Empty(t, got)
	assert.Empty(t, leftover)
}

func TestLoopStopProcessing(t *testing.T) {
	var first, second []int
	loop := NewLoop()
	loop.AddController(PrLvSense, ControlFunc(func(cc ControlContext) error {
		cc.Messages().AddMessages(&testMsg{val: 1}, &testMsg{val: 2}, &testMsg{val: 3})
		return nil
	}))
	loop.AddController(PrLvControl, ControlFunc(func(cc ControlContext) error {
		cc.Messages().ProcessMessages(ProcessMessageFunc(func(mc MessageProcessingContext) {
			collect(mc, &first)
			mc.StopProcessing()
		}))
		return nil
	}))
	loop.AddController(PrLvActuate, ControlFunc(func(cc ControlContext) error {
		cc.Messages().ProcessMessages(ProcessMessageFunc(func(mc MessageProcessingContext) {
			collect(mc, &second)
		}))
		return nil
	}))
	loop.Step(context.Background())
	assert.Equal(t, []int{1}, first)
	assert.Equal(t, []int{2, 3}, second)
}

func TestLoopPostMessage(t *testing.T) {
	var got []int
	loop := NewLoop()
	loop.AddController(PrLvControl, ControlFunc(func(cc ControlContext) error {
		cc.Messages().ProcessMessages(ProcessMessageFunc(func(mc MessageProcessingContext) {
			collect(mc, &got)
		}))
		return nil
	}))
	loop.PostMessage(&testMsg{val: 7})
	loop.Step(context.Background())
	assert.Equal(t, []int{7}, got)
	loop.Step(context.Background())
	assert.Equal(t, []int{7}, got)
}

func TestLoopControllerErrorContinues(t *testing.T) {
	var ran bool
	loop := NewLoop()
	loop.AddController(PrLvSense, ControlFunc(func(ControlContext) error {
		return errors.New("sensor failed")
	}))
	loop.AddController(PrLvControl, ControlFunc(func(ControlContext) error {
		ran = true
		return nil
	}))
	loop.Step(context.Background())
	assert.True(t, ran)
}

func TestLoopRunStopsOnCancel(t *testing.T) {
	loop := NewLoop()
	loop.Interval = time.Millisecond
	steps := make(chan struct{}, 1)
	loop.AddController(PrLvControl, ControlFunc(func(ControlContext) error {
		select {
		case steps <- struct{}{}:
		default:
		}
		return nil
	}))
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- loop.Run(ctx) }()
	select {
	case <-steps:
	case <-time.After(5 * time.Second):
		t.Fatal("loop never stepped")
	}
	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)
}

func TestAggregatedError(t *testing.T) {
	var errs AggregatedError
	require.NoError(t, errs.Add(nil).Aggregate())
	errA, errB := errors.New("a"), errors.New("b")
	errs.Add(errA)
	assert.Equal(t, "a", errs.Aggregate().Error())
	errs.Add(errB)
	err := errs.Aggregate()
	assert.Equal(t, "multiple errors:\na\nb", err.Error())
	assert.ErrorIs(t, err, errB)
}

func TestRunnerWait(t *testing.T) {
	fail := errors.New("fail")
	runner := NewRunner()
	runner.Go(
		NamedRun("ok", RunnableFunc(func(context.Context) error { return nil })),
		NamedRun("canceled", RunnableFunc(func(context.Context) error { return context.Canceled })),
		NamedRun("fail", RunnableFunc(func(context.Context) error { return fail })),
	)
	err := runner.Wait()
	assert.ErrorIs(t, err, fail)
	assert.Equal(t, "fail: fail", err.Error())
}

func TestRunnerCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	runner := NewRunnerWith(ctx)
	runner.Go(RunnableFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}))
	cancel()
	assert.NoError(t, runner.Wait())
}

type chanCloser chan struct{}

func (c chanCloser) Close() error {
	close(c)
	return nil
}

func TestRunWithCloser(t *testing.T) {
	unblocked := errors.New("closed")
	closer := make(chanCloser)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- RunWithCloser(ctx, closer, func() error {
			<-closer
			return unblocked
		})
	}()
	cancel()
	select {
	case err := <-done:
		assert.Equal(t, context.Canceled, err)
	case <-time.After(time.Second):
		t.Fatal("fn not unblocked")
	}

	err := RunWithCloser(context.Background(), make(chanCloser), func() error { return unblocked })
	assert.Equal(t, unblocked, err)
}
