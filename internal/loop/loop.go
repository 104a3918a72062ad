// Package loop runs the per-frame render task on a clock.
package loop

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// DefaultFPS is the frame rate used when none is configured.
const DefaultFPS = 30

// ErrRunning is returned by Start when the loop is already running.
var ErrRunning = errors.New("render loop already running")

// Loop calls a frame function at a fixed interval until stopped.
type Loop struct {
	clock    quartz.Clock
	interval time.Duration
	frame    func()
	logger   *log.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	waiter quartz.Waiter
	frames atomic.Int64
}

// New creates a loop calling frame fps times a second on clock.
func New(clock quartz.Clock, fps int, frame func(), logger *log.Logger) *Loop {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Loop{
		clock:    clock,
		interval: time.Second / time.Duration(fps),
		frame:    frame,
		logger:   logger.WithPrefix("loop"),
	}
}

// Interval returns the time between frames.
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// Frames returns how many frames have run.
func (l *Loop) Frames() int64 {
	return l.frames.Load()
}

// Start schedules the frame task. The ticker is registered before Start
// returns; frames stop when ctx is done or Stop is called.
func (l *Loop) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		return ErrRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.waiter = l.clock.TickerFunc(ctx, l.interval, func() error {
		l.frames.Add(1)
		l.frame()
		return nil
	}, "loop", "frame")

	l.logger.Debug("Render loop started", "interval", l.interval)
	return nil
}

// Stop cancels the frame task and waits for an in-flight frame to finish.
// Stopping a loop that is not running is a no-op.
func (l *Loop) Stop() error {
	l.mu.Lock()
	cancel, waiter := l.cancel, l.waiter
	l.cancel, l.waiter = nil, nil
	l.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	err := waiter.Wait()
	l.logger.Debug("Render loop stopped", "frames", l.Frames())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Run starts the loop and blocks until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return l.Stop()
}
