// Package app runs the capture, recognition and dispatch loop.
package app

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/control"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/player"
	"github.com/ayusman/mudra/internal/plugin"
	"github.com/ayusman/mudra/internal/store"
)

var (
	// ErrCameraUnavailable is returned when the camera cannot be opened.
	ErrCameraUnavailable = errors.New("camera unavailable")
	// ErrFrameCapture ends the loop when a frame cannot be read.
	ErrFrameCapture = errors.New("frame capture failed")
)

// App wires the camera, detector, dispatcher and display for one session.
type App struct {
	cfg        config.Config
	logger     *zap.Logger
	camera     capture.Camera
	detector   detector.Detector
	display    Display
	controller *player.Controller
	dispatcher *control.Dispatcher
	journal    *store.EventRepository
	now        func() time.Time

	// detectorFailing is set while consecutive frames fail detection.
	detectorFailing bool
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithCamera replaces the device camera.
func WithCamera(c capture.Camera) Option {
	return func(a *App) { a.camera = c }
}

// WithDetector replaces the MediaPipe detector.
func WithDetector(d detector.Detector) Option {
	return func(a *App) { a.detector = d }
}

// WithDisplay replaces the on-screen window.
func WithDisplay(d Display) Option {
	return func(a *App) { a.display = d }
}

// WithClock sets the time source used for cooldowns.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithJournal records every action attempt in the journal.
func WithJournal(events *store.EventRepository) Option {
	return func(a *App) { a.journal = events }
}

// New builds an App that sends actions to sink. Components not supplied as
// options are created from cfg.
func New(cfg config.Config, sink player.Sink, opts ...Option) (*App, error) {
	a := &App{
		cfg:    cfg,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.camera == nil {
		a.camera = capture.NewCamera(cfg.CameraID)
	}
	if a.display == nil {
		a.display = NewWindow(cfg.WindowTitle)
	}
	if a.detector == nil {
		d, err := detector.NewMediaPipeDetector(cfg.Detector, a.logger)
		if err != nil {
			return nil, fmt.Errorf("hand detector: %w", err)
		}
		a.detector = d
	}

	a.controller = player.NewController(sink, a.logger)
	a.dispatcher = control.NewDispatcher(
		player.ActionMap(a.controller),
		cfg.Cooldown,
		control.WithLogger(a.logger),
		control.WithObserver(a.record),
	)

	return a, nil
}

// record writes an action attempt to the journal, if one is configured.
func (a *App) record(o control.Outcome) {
	if a.journal == nil {
		return
	}
	if err := a.journal.Record(store.EventFromOutcome(o)); err != nil {
		a.logger.Warn("failed to journal dispatch", zap.String("gesture", o.Gesture.String()), zap.Error(err))
	}
}

// Dispatcher returns the dispatcher that owns the cooldown.
func (a *App) Dispatcher() *control.Dispatcher {
	return a.dispatcher
}

// Controller returns the player controller.
func (a *App) Controller() *player.Controller {
	return a.controller
}

// NewSink builds the action sink selected by cfg.Sink.
func NewSink(cfg config.Config, logger *zap.Logger) (player.Sink, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Sink {
	case config.SinkKeys:
		return player.NewKeySink(cfg.Player), nil
	case config.SinkPlugin:
		manager := plugin.NewManager(cfg.PluginDir, logger)
		if err := manager.Discover(); err != nil {
			return nil, fmt.Errorf("discover plugins in %s: %w", cfg.PluginDir, err)
		}
		for _, name := range []string{player.SystemControlPlugin, player.KeyboardPlugin} {
			if _, err := manager.Get(name); err != nil {
				return nil, err
			}
		}
		executor := plugin.NewExecutor(cfg.PluginTimeout)
		logger.Info("plugin sink ready",
			zap.String("dir", manager.PluginDir()),
			zap.Int("plugins", len(manager.List())),
			zap.Duration("timeout", executor.Timeout()),
		)
		return player.NewPluginSink(cfg.Player, manager, executor), nil
	default:
		return nil, fmt.Errorf("%w: unknown sink %q", config.ErrInvalid, cfg.Sink)
	}
}
