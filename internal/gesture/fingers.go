package gesture

import (
	"strings"

	"github.com/ayusman/mudra/internal/detector"
)

// Digit indexes a FingerState.
type Digit int

// Digits in FingerState order.
const (
	Thumb Digit = iota
	Index
	Middle
	Ring
	Pinky
)

// FingerState holds one extension flag per digit, true meaning extended.
type FingerState [5]bool

// fingerJoints pairs each non-thumb tip with its PIP joint.
var fingerJoints = [4][2]int{
	{detector.IndexTip, detector.IndexPIP},
	{detector.MiddleTip, detector.MiddlePIP},
	{detector.RingTip, detector.RingPIP},
	{detector.PinkyTip, detector.PinkyPIP},
}

// Fingers derives the extension flags for a hand in a mirrored frame.
//
// The thumb counts as extended when its tip lies left of the IP joint.
// The other fingers count as extended when the tip lies above (smaller y)
// the PIP joint.
func Fingers(hand *detector.HandLandmarks) FingerState {
	var f FingerState
	if hand == nil {
		return f
	}

	p := &hand.Points
	f[Thumb] = p[detector.ThumbTip].X < p[detector.ThumbIP].X
	for i, j := range fingerJoints {
		f[Index+Digit(i)] = p[j[0]].Y < p[j[1]].Y
	}
	return f
}

// TipDistance is the image-plane distance between the thumb and index tips.
func TipDistance(hand *detector.HandLandmarks) float64 {
	if hand == nil {
		return 0
	}
	return detector.Distance2D(hand.Points[detector.ThumbTip], hand.Points[detector.IndexTip])
}

// Up reports whether every given digit is extended.
func (f FingerState) Up(digits ...Digit) bool {
	for _, d := range digits {
		if !f[d] {
			return false
		}
	}
	return true
}

// Down reports whether every given digit is curled.
func (f FingerState) Down(digits ...Digit) bool {
	for _, d := range digits {
		if f[d] {
			return false
		}
	}
	return true
}

// String renders the flags thumb first, e.g. "10000" for a thumbs up.
func (f FingerState) String() string {
	var b strings.Builder
	b.Grow(len(f))
	for _, up := range f {
		if up {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
