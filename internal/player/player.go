// Package player performs media-control actions against the music player.
package player

import (
	"errors"
	"strings"
)

// ErrNotRunning is returned when the player process cannot be found.
var ErrNotRunning = errors.New("player is not running")

// Sink executes media commands. Every call is fire-and-forget; an error means
// the command could not be delivered.
type Sink interface {
	NextTrack() error
	PreviousTrack() error
	PlayPause() error
	VolumeUp() error
	VolumeDown() error
	ToggleMute() error
	Like() error
	Shuffle() error
	// FocusPlayer brings the player to the foreground, opening it if needed.
	FocusPlayer() error
}

// Shortcut is a key combination such as ctrl+l.
type Shortcut struct {
	Key       string   `yaml:"key" json:"key"`
	Modifiers []string `yaml:"modifiers" json:"modifiers"`
}

// String renders the shortcut as "ctrl+l".
func (s Shortcut) String() string {
	return strings.Join(append(append([]string{}, s.Modifiers...), s.Key), "+")
}

// Config identifies the player and its hotkeys.
type Config struct {
	Name    string   `yaml:"name"` // process name used to focus the player
	URL     string   `yaml:"url"`  // opened in the browser when the player is not running
	Like    Shortcut `yaml:"like"`
	Shuffle Shortcut `yaml:"shuffle"`
}

// DefaultConfig targets Spotify and its web player shortcuts.
func DefaultConfig() Config {
	return Config{
		Name:    "Spotify",
		URL:     "https://open.spotify.com",
		Like:    Shortcut{Key: "l", Modifiers: []string{"ctrl"}},
		Shuffle: Shortcut{Key: "s", Modifiers: []string{"ctrl"}},
	}
}
