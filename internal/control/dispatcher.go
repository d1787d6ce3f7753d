package control

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ayusman/mudra/internal/gesture"
)

// Action is a named zero-argument side effect bound to a gesture.
type Action struct {
	Name string
	Run  func() error
}

// ActionMap binds gestures to actions. It is built once and not modified.
type ActionMap map[gesture.Gesture]Action

// Outcome describes one attempt to run an action.
type Outcome struct {
	Gesture gesture.Gesture
	Action  string
	At      time.Time
	Err     error
}

// Executed reports whether the action ran without error.
func (o Outcome) Executed() bool {
	return o.Err == nil
}

// Observer receives every action attempt made by a Dispatcher.
type Observer func(Outcome)

// Dispatcher runs mapped actions no more often than its cooldown allows.
// It is not safe for concurrent use.
type Dispatcher struct {
	actions  ActionMap
	cooldown Cooldown
	observer Observer
	logger   *zap.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithObserver registers fn to be called after each action attempt.
func WithObserver(fn Observer) Option {
	return func(d *Dispatcher) {
		d.observer = fn
	}
}

// WithLogger sets the logger used to report action failures.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDispatcher creates a Dispatcher over a copy of actions. A non-positive
// interval selects DefaultCooldown.
func NewDispatcher(actions ActionMap, interval time.Duration, opts ...Option) *Dispatcher {
	if interval <= 0 {
		interval = DefaultCooldown
	}

	frozen := make(ActionMap, len(actions))
	for g, a := range actions {
		frozen[g] = a
	}

	d := &Dispatcher{
		actions:  frozen,
		cooldown: Cooldown{Interval: interval},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch runs the action mapped to g unless the cooldown is active.
// It returns true only when the action ran successfully, in which case the
// cooldown restarts at now. Failures are logged and leave the cooldown as is.
func (d *Dispatcher) Dispatch(g gesture.Gesture, now time.Time) bool {
	action, ok := d.actions[g]
	if g == gesture.None || !ok || action.Run == nil {
		return false
	}

	if d.cooldown.Active(now) {
		return false
	}

	err := run(action)
	if d.observer != nil {
		d.observer(Outcome{Gesture: g, Action: action.Name, At: now, Err: err})
	}
	if err != nil {
		d.logger.Warn("action failed",
			zap.String("gesture", g.String()),
			zap.String("action", action.Name),
			zap.Error(err),
		)
		return false
	}

	d.cooldown.mark(now)
	d.logger.Debug("action executed",
		zap.String("gesture", g.String()),
		zap.String("action", action.Name),
	)
	return true
}

// run invokes the action, turning a panic into an error.
func run(a Action) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("action %s panicked: %v", a.Name, r)
		}
	}()
	return a.Run()
}

// Reset clears the cooldown so the next gesture dispatches immediately.
func (d *Dispatcher) Reset() {
	d.cooldown.clear()
}

// Remaining returns the cooldown time left at now.
func (d *Dispatcher) Remaining(now time.Time) time.Duration {
	return d.cooldown.Remaining(now)
}

// Interval returns the configured cooldown interval.
func (d *Dispatcher) Interval() time.Duration {
	return d.cooldown.Interval
}

// Cooldown returns a snapshot of the cooldown state.
func (d *Dispatcher) Cooldown() Cooldown {
	return d.cooldown
}
