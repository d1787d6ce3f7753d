package player

import (
	"go.uber.org/zap"
)

// Controller wraps a Sink with logging and tracks whether the player has
// been focused at least once.
type Controller struct {
	sink   Sink
	logger *zap.Logger
	ready  bool
}

// NewController returns a Controller over sink.
func NewController(sink Sink, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{sink: sink, logger: logger}
}

// Ready reports whether FocusPlayer has succeeded.
func (c *Controller) Ready() bool {
	return c.ready
}

// NextTrack skips to the next track.
func (c *Controller) NextTrack() error { return c.do("next track", c.sink.NextTrack) }

// PreviousTrack returns to the previous track.
func (c *Controller) PreviousTrack() error { return c.do("previous track", c.sink.PreviousTrack) }

// PlayPause toggles playback.
func (c *Controller) PlayPause() error { return c.do("play/pause", c.sink.PlayPause) }

// VolumeUp raises the volume.
func (c *Controller) VolumeUp() error { return c.do("volume up", c.sink.VolumeUp) }

// VolumeDown lowers the volume.
func (c *Controller) VolumeDown() error { return c.do("volume down", c.sink.VolumeDown) }

// ToggleMute mutes or unmutes.
func (c *Controller) ToggleMute() error { return c.do("toggle mute", c.sink.ToggleMute) }

// Like likes the current track.
func (c *Controller) Like() error { return c.do("like", c.sink.Like) }

// Shuffle toggles shuffle.
func (c *Controller) Shuffle() error { return c.do("shuffle", c.sink.Shuffle) }

// FocusPlayer raises or opens the player. On success the controller is ready.
func (c *Controller) FocusPlayer() error {
	if err := c.do("focus player", c.sink.FocusPlayer); err != nil {
		return err
	}
	c.ready = true
	return nil
}

// do runs fn and logs the outcome under what.
func (c *Controller) do(what string, fn func() error) error {
	if err := fn(); err != nil {
		c.logger.Warn("player command failed", zap.String("command", what), zap.Error(err))
		return err
	}
	c.logger.Info("player command", zap.String("command", what))
	return nil
}
