package player

import (
	"github.com/ayusman/mudra/internal/control"
	"github.com/ayusman/mudra/internal/gesture"
)

// Binding ties a gesture to a player command.
type Binding struct {
	Gesture gesture.Gesture
	Action  string // stable action name, recorded in the journal
	Pose    string // how to make the gesture
	Effect  string // what happens
	Hint    string // compact form for the on-screen guide
	run     func(Sink) error
}

var bindings = []Binding{
	{gesture.ThumbsUp, "next-track", "Thumbs up", "Next track", "Up=Next", Sink.NextTrack},
	{gesture.ThumbsDown, "previous-track", "Thumbs down", "Previous track", "Down=Prev", Sink.PreviousTrack},
	{gesture.ThreeFingers, "play-pause", "Three fingers", "Play / pause", "3=Play", Sink.PlayPause},
	{gesture.FourFingers, "focus-player", "Four fingers", "Open / focus player", "4=Open", Sink.FocusPlayer},
	{gesture.Victory, "toggle-mute", "Victory (index + middle)", "Mute / unmute", "V=Mute", Sink.ToggleMute},
	{gesture.IndexUp, "volume-up", "Index up", "Volume up", "1=Vol+", Sink.VolumeUp},
	{gesture.IndexDown, "volume-down", "Index folded, others up", "Volume down", "1Down=Vol-", Sink.VolumeDown},
	{gesture.Rock, "like", "Rock (index + pinky)", "Like track", "Rock=Like", Sink.Like},
	{gesture.OK, "shuffle", "OK (thumb touches index)", "Toggle shuffle", "OK=Shuffle", Sink.Shuffle},
}

// Bindings returns the gesture bindings in guide order.
func Bindings() []Binding {
	out := make([]Binding, len(bindings))
	copy(out, bindings)
	return out
}

// ActionMap builds the dispatcher action table over sink.
func ActionMap(sink Sink) control.ActionMap {
	actions := make(control.ActionMap, len(bindings))
	for _, b := range bindings {
		run := b.run
		actions[b.Gesture] = control.Action{
			Name: b.Action,
			Run:  func() error { return run(sink) },
		}
	}
	return actions
}
