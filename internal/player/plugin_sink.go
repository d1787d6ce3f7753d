package player

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ayusman/mudra/internal/plugin"
)

// Plugin names and actions used by PluginSink.
const (
	SystemControlPlugin = "system-control"
	KeyboardPlugin      = "keyboard"

	actionNext      = "media-next"
	actionPrev      = "media-prev"
	actionPlayPause = "media-play-pause"
	actionVolUp     = "volume-up"
	actionVolDown   = "volume-down"
	actionMute      = "volume-mute"
	actionFocus     = "player-focus"
	actionShortcut  = "shortcut"
)

type focusParams struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// PluginSink delegates media commands to plugin executables.
type PluginSink struct {
	cfg      Config
	manager  *plugin.Manager
	executor *plugin.Executor
}

// NewPluginSink returns a sink that runs actions through discovered plugins.
func NewPluginSink(cfg Config, manager *plugin.Manager, executor *plugin.Executor) *PluginSink {
	return &PluginSink{cfg: cfg, manager: manager, executor: executor}
}

// NextTrack asks the system-control plugin to skip forward.
func (s *PluginSink) NextTrack() error { return s.call(SystemControlPlugin, actionNext, nil) }

// PreviousTrack asks the system-control plugin to skip back.
func (s *PluginSink) PreviousTrack() error { return s.call(SystemControlPlugin, actionPrev, nil) }

// PlayPause asks the system-control plugin to toggle playback.
func (s *PluginSink) PlayPause() error { return s.call(SystemControlPlugin, actionPlayPause, nil) }

// VolumeUp asks the system-control plugin to raise the volume.
func (s *PluginSink) VolumeUp() error { return s.call(SystemControlPlugin, actionVolUp, nil) }

// VolumeDown asks the system-control plugin to lower the volume.
func (s *PluginSink) VolumeDown() error { return s.call(SystemControlPlugin, actionVolDown, nil) }

// ToggleMute asks the system-control plugin to toggle mute.
func (s *PluginSink) ToggleMute() error { return s.call(SystemControlPlugin, actionMute, nil) }

// Like sends the like hotkey through the keyboard plugin.
func (s *PluginSink) Like() error {
	return s.call(KeyboardPlugin, actionShortcut, s.cfg.Like)
}

// Shuffle sends the shuffle hotkey through the keyboard plugin.
func (s *PluginSink) Shuffle() error {
	return s.call(KeyboardPlugin, actionShortcut, s.cfg.Shuffle)
}

// FocusPlayer asks the system-control plugin to raise or open the player.
func (s *PluginSink) FocusPlayer() error {
	return s.call(SystemControlPlugin, actionFocus, focusParams{Name: s.cfg.Name, URL: s.cfg.URL})
}

func (s *PluginSink) call(name, action string, params any) error {
	p, err := s.manager.Get(name)
	if err != nil {
		return err
	}
	if !p.Supports(action) {
		return fmt.Errorf("plugin %s does not support %s", name, action)
	}

	req := &plugin.Request{Action: action}
	if params != nil {
		raw, err := json.Marshal(params)
		if err != nil {
			return fmt.Errorf("failed to encode params: %w", err)
		}
		req.Params = raw
	}

	resp, err := s.executor.Execute(context.Background(), p, req)
	if err != nil {
		return fmt.Errorf("%s/%s: %w", name, action, err)
	}
	return resp.Err()
}
