package player

import (
	"fmt"

	"github.com/go-vgo/robotgo"
	"github.com/pkg/browser"
)

// Media key names understood by robotgo.
const (
	keyNext    = "audio_next"
	keyPrev    = "audio_prev"
	keyPlay    = "audio_play"
	keyVolUp   = "audio_vol_up"
	keyVolDown = "audio_vol_down"
	keyMute    = "audio_mute"
)

// Keyboard injects key presses and raises windows.
type Keyboard interface {
	Tap(key string, modifiers ...string) error
	Activate(name string) error
}

// robotKeyboard is the OS input layer.
type robotKeyboard struct{}

func (robotKeyboard) Tap(key string, modifiers ...string) error {
	args := make([]interface{}, len(modifiers))
	for i, m := range modifiers {
		args[i] = m
	}
	return robotgo.KeyTap(key, args...)
}

func (robotKeyboard) Activate(name string) error {
	pids, err := robotgo.FindIds(name)
	if err != nil {
		return err
	}
	if len(pids) == 0 {
		return fmt.Errorf("%w: %s", ErrNotRunning, name)
	}
	return robotgo.ActivePid(pids[0])
}

// KeySink sends OS media keys and hotkeys to the focused player.
type KeySink struct {
	cfg  Config
	keys Keyboard
	open func(url string) error
}

// NewKeySink returns a sink backed by robotgo and the system browser.
func NewKeySink(cfg Config) *KeySink {
	return newKeySink(cfg, robotKeyboard{}, browser.OpenURL)
}

func newKeySink(cfg Config, keys Keyboard, open func(string) error) *KeySink {
	return &KeySink{cfg: cfg, keys: keys, open: open}
}

// NextTrack taps the next-track media key.
func (s *KeySink) NextTrack() error { return s.keys.Tap(keyNext) }

// PreviousTrack taps the previous-track media key.
func (s *KeySink) PreviousTrack() error { return s.keys.Tap(keyPrev) }

// PlayPause taps the play/pause media key.
func (s *KeySink) PlayPause() error { return s.keys.Tap(keyPlay) }

// VolumeUp taps the volume-up media key.
func (s *KeySink) VolumeUp() error { return s.keys.Tap(keyVolUp) }

// VolumeDown taps the volume-down media key.
func (s *KeySink) VolumeDown() error { return s.keys.Tap(keyVolDown) }

// ToggleMute taps the mute media key.
func (s *KeySink) ToggleMute() error { return s.keys.Tap(keyMute) }

// Like sends the configured like hotkey.
func (s *KeySink) Like() error {
	return s.shortcut(s.cfg.Like)
}

// Shuffle sends the configured shuffle hotkey.
func (s *KeySink) Shuffle() error {
	return s.shortcut(s.cfg.Shuffle)
}

// shortcut taps sc, failing when no key is configured.
func (s *KeySink) shortcut(sc Shortcut) error {
	if sc.Key == "" {
		return fmt.Errorf("no hotkey configured")
	}
	if err := s.keys.Tap(sc.Key, sc.Modifiers...); err != nil {
		return fmt.Errorf("hotkey %s: %w", sc, err)
	}
	return nil
}

// FocusPlayer raises the running player, or opens the player URL.
func (s *KeySink) FocusPlayer() error {
	var focusErr error
	if s.cfg.Name != "" {
		if focusErr = s.keys.Activate(s.cfg.Name); focusErr == nil {
			return nil
		}
	}

	if s.cfg.URL == "" {
		return fmt.Errorf("focus %s: %w", s.cfg.Name, focusErr)
	}
	if err := s.open(s.cfg.URL); err != nil {
		return fmt.Errorf("open %s: %w", s.cfg.URL, err)
	}
	return nil
}
