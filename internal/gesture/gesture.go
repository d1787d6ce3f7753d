// Package gesture classifies hand landmarks into a fixed vocabulary of static gestures.
package gesture

// Gesture is a recognized hand pose label.
type Gesture string

// The closed set of gestures. None means no rule matched.
const (
	None         Gesture = "none"
	ThumbsUp     Gesture = "thumbs_up"
	ThumbsDown   Gesture = "thumbs_down"
	ThreeFingers Gesture = "three_fingers"
	FourFingers  Gesture = "four_fingers"
	Victory      Gesture = "victory"
	IndexUp      Gesture = "index_up"
	IndexDown    Gesture = "index_down"
	Rock         Gesture = "rock"
	OK           Gesture = "ok"
)

// String returns the gesture label.
func (g Gesture) String() string {
	return string(g)
}

// Valid reports whether g is one of the known gestures, None included.
func (g Gesture) Valid() bool {
	if g == None {
		return true
	}
	for _, r := range rules {
		if r.gesture == g {
			return true
		}
	}
	return false
}
