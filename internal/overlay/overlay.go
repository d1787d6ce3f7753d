// Package overlay renders the status text and hand skeleton onto frames.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/player"
)

// Overlay colors.
var (
	// Green labels a gesture whose action just ran.
	Green = color.RGBA{R: 0, G: 255, B: 0, A: 0}
	// Red labels a gesture that did not run and draws the hand joints.
	Red   = color.RGBA{R: 255, G: 0, B: 0, A: 0}
	// White is used for player status and the control guide.
	White = color.RGBA{R: 255, G: 255, B: 255, A: 0}
	// Cyan draws the hand skeleton bones.
	Cyan  = color.RGBA{R: 0, G: 200, B: 255, A: 0}
)

// guideSplit is how many bindings go on the first guide line.
const guideSplit = 4

// Status is what the overlay reports for one frame.
type Status struct {
	Gesture      gesture.Gesture
	Executed     bool
	CooldownLeft time.Duration
	PlayerReady  bool
}

// Line is one piece of text to draw.
type Line struct {
	Text      string
	Origin    image.Point
	Scale     float64
	Color     color.RGBA
	Thickness int
}

// Layout places the status lines for a frame of the given size.
func Layout(s Status, width, height int) []Line {
	label := s.Gesture
	if label == "" {
		label = gesture.None
	}

	gestureColor := Red
	if s.Executed {
		gestureColor = Green
	}

	playerText := "Player: OPEN PLAYER"
	if s.PlayerReady {
		playerText = "Player: READY"
	}

	first, second := Guide()

	return []Line{
		{Text: "Gesture: " + label.String(), Origin: image.Pt(10, 30), Scale: 1, Color: gestureColor, Thickness: 2},
		{Text: fmt.Sprintf("Cooldown: %.1fs", s.CooldownLeft.Seconds()), Origin: image.Pt(10, 70), Scale: 0.7, Color: Red, Thickness: 2},
		{Text: playerText, Origin: image.Pt(10, 110), Scale: 0.7, Color: White, Thickness: 2},
		{Text: first, Origin: image.Pt(10, height-60), Scale: 0.5, Color: White, Thickness: 1},
		{Text: second, Origin: image.Pt(10, height-30), Scale: 0.5, Color: White, Thickness: 1},
		{Text: "Press 'Q' to quit", Origin: image.Pt(width-200, 30), Scale: 0.6, Color: White, Thickness: 2},
	}
}

// Guide returns the two control-guide lines built from the bindings.
func Guide() (string, string) {
	var first, second []string
	for i, b := range player.Bindings() {
		if i < guideSplit {
			first = append(first, b.Hint)
		} else {
			second = append(second, b.Hint)
		}
	}
	return strings.Join(first, "  "), strings.Join(second, "  ")
}

// Draw renders the status lines onto frame.
func Draw(frame *gocv.Mat, s Status) {
	if frame == nil || frame.Empty() {
		return
	}
	for _, l := range Layout(s, frame.Cols(), frame.Rows()) {
		gocv.PutText(frame, l.Text, l.Origin, gocv.FontHersheySimplex, l.Scale, l.Color, l.Thickness)
	}
}

// HandPoints maps normalized landmarks to pixel coordinates.
func HandPoints(hand *detector.HandLandmarks, width, height int) []image.Point {
	points := make([]image.Point, len(hand.Points))
	for i, p := range hand.Points {
		points[i] = image.Pt(int(p.X*float64(width)), int(p.Y*float64(height)))
	}
	return points
}

// DrawHand draws the landmark skeleton of hand onto frame.
func DrawHand(frame *gocv.Mat, hand *detector.HandLandmarks) {
	if frame == nil || frame.Empty() || hand == nil {
		return
	}

	points := HandPoints(hand, frame.Cols(), frame.Rows())
	for _, c := range detector.HandConnections {
		gocv.Line(frame, points[c[0]], points[c[1]], Cyan, 2)
	}
	for _, p := range points {
		gocv.Circle(frame, p, 4, Red, -1)
	}
}
