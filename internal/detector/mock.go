package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands  []HandLandmarks
	err    error
	calls  int
	closed int
}

var _ Detector = (*MockDetector)(nil)

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close records the call; the mock holds no resources.
func (m *MockDetector) Close() error {
	m.closed++
	return nil
}

// Calls returns how many times Detect was invoked.
func (m *MockDetector) Calls() int { return m.calls }

// Closed returns how many times Close was invoked.
func (m *MockDetector) Closed() int { return m.closed }

// Finger column positions used by PoseLandmarks.
var fingerColumns = [4]float64{0.56, 0.50, 0.44, 0.38}

// PoseLandmarks builds a hand whose digits are extended or curled as given,
// in the mirrored frame orientation: an extended thumb tip lies left of its
// IP joint, an extended finger tip lies above its PIP joint.
func PoseLandmarks(thumb, index, middle, ring, pinky bool) HandLandmarks {
	hand := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	hand.Points[Wrist] = Point3D{X: 0.50, Y: 0.80}

	hand.Points[ThumbCMC] = Point3D{X: 0.56, Y: 0.76}
	hand.Points[ThumbMCP] = Point3D{X: 0.60, Y: 0.70}
	hand.Points[ThumbIP] = Point3D{X: 0.62, Y: 0.64}
	if thumb {
		hand.Points[ThumbTip] = Point3D{X: 0.54, Y: 0.50}
	} else {
		hand.Points[ThumbTip] = Point3D{X: 0.66, Y: 0.62}
	}

	bases := [4]int{IndexMCP, MiddleMCP, RingMCP, PinkyMCP}
	extended := [4]bool{index, middle, ring, pinky}
	for i, mcp := range bases {
		x := fingerColumns[i]
		hand.Points[mcp] = Point3D{X: x, Y: 0.66, Z: -0.01}
		hand.Points[mcp+1] = Point3D{X: x, Y: 0.56, Z: -0.02}
		if extended[i] {
			hand.Points[mcp+2] = Point3D{X: x, Y: 0.46, Z: -0.02}
			hand.Points[mcp+3] = Point3D{X: x, Y: 0.36, Z: -0.02}
		} else {
			hand.Points[mcp+2] = Point3D{X: x - 0.02, Y: 0.60, Z: -0.05}
			hand.Points[mcp+3] = Point3D{X: x - 0.03, Y: 0.66, Z: -0.03}
		}
	}

	return hand
}

// ThumbsUpLandmarks returns a preset hand with only the thumb extended.
func ThumbsUpLandmarks() HandLandmarks {
	return PoseLandmarks(true, false, false, false, false)
}

// OpenPalmLandmarks returns a preset hand with all five digits extended.
func OpenPalmLandmarks() HandLandmarks {
	return PoseLandmarks(true, true, true, true, true)
}

// OKLandmarks returns a preset hand with the thumb and index tips touching
// and the remaining fingers curled.
func OKLandmarks() HandLandmarks {
	hand := PoseLandmarks(true, true, false, false, false)
	thumbTip := hand.Points[ThumbTip]
	hand.Points[IndexTip] = Point3D{X: thumbTip.X + 0.01, Y: thumbTip.Y - 0.01, Z: -0.02}
	return hand
}
