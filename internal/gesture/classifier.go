package gesture

import "github.com/ayusman/mudra/internal/detector"

// OKDistance is the thumb-to-index tip distance below which the tips touch.
const OKDistance = 0.05

// rule is one entry of the classification table.
type rule struct {
	gesture Gesture
	match   func(f FingerState, tipDistance float64) bool
}

// rules is evaluated top to bottom and the first match wins. The predicates
// overlap in places, so the order is part of the behavior.
var rules = []rule{
	{ThumbsUp, func(f FingerState, _ float64) bool {
		return f.Up(Thumb) && f.Down(Index, Middle, Ring, Pinky)
	}},
	{ThumbsDown, func(f FingerState, _ float64) bool {
		return f.Down(Thumb, Index, Middle, Ring, Pinky)
	}},
	{ThreeFingers, func(f FingerState, _ float64) bool {
		return f.Up(Index, Middle, Ring) && f.Down(Pinky)
	}},
	{FourFingers, func(f FingerState, _ float64) bool {
		return f.Up(Index, Middle, Ring, Pinky)
	}},
	{Victory, func(f FingerState, _ float64) bool {
		return f.Up(Index, Middle) && f.Down(Ring, Pinky, Thumb)
	}},
	{IndexUp, func(f FingerState, _ float64) bool {
		return f.Up(Index) && f.Down(Middle, Ring, Pinky, Thumb)
	}},
	{IndexDown, func(f FingerState, _ float64) bool {
		return f.Down(Index) && f.Up(Middle, Ring, Pinky, Thumb)
	}},
	{Rock, func(f FingerState, _ float64) bool {
		return f.Up(Index, Pinky) && f.Down(Middle, Ring, Thumb)
	}},
	{OK, func(f FingerState, d float64) bool {
		return d < OKDistance && f.Down(Middle, Ring, Pinky)
	}},
}

// Classify returns the gesture shown by hand, or None.
func Classify(hand *detector.HandLandmarks) Gesture {
	if hand == nil {
		return None
	}
	return Match(Fingers(hand), TipDistance(hand))
}

// Match applies the rule table to a finger vector and thumb-index tip distance.
func Match(f FingerState, tipDistance float64) Gesture {
	for _, r := range rules {
		if r.match(f, tipDistance) {
			return r.gesture
		}
	}
	return None
}

// Rules returns the gestures in evaluation order.
func Rules() []Gesture {
	out := make([]Gesture, len(rules))
	for i, r := range rules {
		out[i] = r.gesture
	}
	return out
}
