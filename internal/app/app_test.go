package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/store"
)

var t0 = time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

// fakeDisplay counts frames and replays queued key presses.
type fakeDisplay struct {
	shown  int
	keys   []int
	closes int
}

func (d *fakeDisplay) Show(frame *gocv.Mat) { d.shown++ }

func (d *fakeDisplay) PollKey() int {
	if len(d.keys) == 0 {
		return -1
	}
	k := d.keys[0]
	d.keys = d.keys[1:]
	return k
}

func (d *fakeDisplay) Close() error {
	d.closes++
	return nil
}

// stepClock returns the given offsets from t0, repeating the last one.
func stepClock(offsets ...time.Duration) func() time.Time {
	i := 0
	return func() time.Time {
		d := offsets[i]
		if i < len(offsets)-1 {
			i++
		}
		return t0.Add(d)
	}
}

type recordingSink struct {
	calls []string
	err   error
}

func (s *recordingSink) rec(name string) error {
	s.calls = append(s.calls, name)
	return s.err
}

func (s *recordingSink) NextTrack() error     { return s.rec("next") }
func (s *recordingSink) PreviousTrack() error { return s.rec("prev") }
func (s *recordingSink) PlayPause() error     { return s.rec("play") }
func (s *recordingSink) VolumeUp() error      { return s.rec("vol+") }
func (s *recordingSink) VolumeDown() error    { return s.rec("vol-") }
func (s *recordingSink) ToggleMute() error    { return s.rec("mute") }
func (s *recordingSink) Like() error          { return s.rec("like") }
func (s *recordingSink) Shuffle() error       { return s.rec("shuffle") }
func (s *recordingSink) FocusPlayer() error   { return s.rec("focus") }

type panicDetector struct{ closed int }

func (d *panicDetector) Detect(*gocv.Mat) ([]detector.HandLandmarks, error) {
	panic("landmark service crashed")
}

func (d *panicDetector) Close() error {
	d.closed++
	return nil
}

type fixture struct {
	app     *App
	camera  *capture.MockCamera
	det     *detector.MockDetector
	display *fakeDisplay
	sink    *recordingSink
	frames  []gocv.Mat
}

func newFixture(t *testing.T, frames int, opts ...Option) *fixture {
	t.Helper()

	f := &fixture{
		det:     detector.NewMockDetector(),
		display: &fakeDisplay{},
		sink:    &recordingSink{},
	}

	mats := make([]*gocv.Mat, frames)
	for i := 0; i < frames; i++ {
		m := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
		f.frames = append(f.frames, m)
	}
	for i := range f.frames {
		mats[i] = &f.frames[i]
	}
	t.Cleanup(func() {
		for i := range f.frames {
			f.frames[i].Close()
		}
	})
	f.camera = capture.NewMockCamera(mats, false)

	base := []Option{
		WithCamera(f.camera),
		WithDetector(f.det),
		WithDisplay(f.display),
		WithLogger(zaptest.NewLogger(t)),
	}

	a, err := New(config.Default(), f.sink, append(base, opts...)...)
	require.NoError(t, err)
	f.app = a
	return f
}

func newFrame(t *testing.T) *gocv.Mat {
	t.Helper()
	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	t.Cleanup(func() { frame.Close() })
	return &frame
}

func TestRun_CaptureFailureEndsLoop(t *testing.T) {
	f := newFixture(t, 3, WithClock(stepClock(0)))

	err := f.app.Run(context.Background())
	require.ErrorIs(t, err, ErrFrameCapture)

	assert.Equal(t, 3, f.display.shown)
	assert.Equal(t, 3, f.det.Calls())
	assert.Equal(t, 1, f.camera.Closes())
	assert.Equal(t, 1, f.display.closes)
	assert.Equal(t, 1, f.det.Closed())
}

func TestRun_CameraUnavailable(t *testing.T) {
	f := newFixture(t, 0)
	f.camera.SetOpenError(errors.New("no device"))

	err := f.app.Run(context.Background())
	require.ErrorIs(t, err, ErrCameraUnavailable)

	assert.Equal(t, 1, f.camera.Opens())
	assert.Equal(t, 0, f.camera.Closes(), "a camera that never opened is not closed")
	assert.Equal(t, 0, f.display.shown)
	assert.Equal(t, 1, f.det.Closed())
}

func TestRun_CooldownAcrossFrames(t *testing.T) {
	f := newFixture(t, 3, WithClock(stepClock(0, time.Second, 1600*time.Millisecond)))
	f.det.SetHands([]detector.HandLandmarks{detector.ThumbsUpLandmarks()})

	f.app.Run(context.Background())

	assert.Equal(t, []string{"next", "next"}, f.sink.calls)
}

func TestRun_QuitKey(t *testing.T) {
	f := newFixture(t, 5)
	f.display.keys = []int{-1, 'q'}

	require.NoError(t, f.app.Run(context.Background()))
	assert.Equal(t, 2, f.display.shown)
	assert.Equal(t, 1, f.camera.Closes())
}

func TestRun_UppercaseQuitKey(t *testing.T) {
	f := newFixture(t, 5)
	f.display.keys = []int{'Q'}

	require.NoError(t, f.app.Run(context.Background()))
	assert.Equal(t, 1, f.display.shown)
}

func TestRun_ContextCancelled(t *testing.T) {
	f := newFixture(t, 5)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, f.app.Run(ctx))
	assert.Equal(t, 0, f.display.shown)
	assert.Equal(t, 1, f.camera.Closes())
}

func TestRun_ResetKey(t *testing.T) {
	f := newFixture(t, 2, WithClock(stepClock(0, 500*time.Millisecond)))
	f.det.SetHands([]detector.HandLandmarks{detector.ThumbsUpLandmarks()})
	f.display.keys = []int{'r'}

	f.app.Run(context.Background())

	assert.Len(t, f.sink.calls, 2, "reset lets the second frame dispatch")
}

func TestRun_FocusKey(t *testing.T) {
	f := newFixture(t, 1)
	f.display.keys = []int{'s'}

	f.app.Run(context.Background())

	assert.True(t, f.app.Controller().Ready())
	assert.Equal(t, []string{"focus"}, f.sink.calls)
}

func TestRun_PanicReleasesCamera(t *testing.T) {
	det := &panicDetector{}
	f := newFixture(t, 2, WithDetector(det))

	assert.Panics(t, func() {
		f.app.Run(context.Background())
	})

	assert.Equal(t, 1, f.camera.Closes())
	assert.Equal(t, 1, f.display.closes)
	assert.Equal(t, 1, det.closed)
}

func TestRun_Journal(t *testing.T) {
	s, err := store.New(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer s.Close()

	f := newFixture(t, 3, WithClock(stepClock(0, time.Second, 2*time.Second)), WithJournal(s.Events()))
	f.det.SetHands([]detector.HandLandmarks{detector.OpenPalmLandmarks()})

	f.app.Run(context.Background())

	events, err := s.Events().List(0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	for _, e := range events {
		assert.Equal(t, string(gesture.FourFingers), e.Gesture)
		assert.Equal(t, "focus-player", e.Action)
		assert.True(t, e.Executed)
	}
}

func TestStep(t *testing.T) {
	f := newFixture(t, 0)
	frame := newFrame(t)

	assert.Equal(t, Result{Gesture: gesture.None}, f.app.Step(frame, t0), "no hand")

	f.det.SetHands([]detector.HandLandmarks{detector.OKLandmarks()})
	assert.Equal(t, Result{Hands: 1, Gesture: gesture.OK, Executed: true}, f.app.Step(frame, t0))

	r := f.app.Step(frame, t0.Add(time.Second))
	assert.Equal(t, gesture.OK, r.Gesture)
	assert.False(t, r.Executed, "within cooldown")
}

func TestStep_FirstRecognizedHandWins(t *testing.T) {
	f := newFixture(t, 0)

	unknown := detector.PoseLandmarks(true, true, false, false, true)
	f.det.SetHands([]detector.HandLandmarks{unknown, detector.ThumbsUpLandmarks()})

	r := f.app.Step(newFrame(t), t0)
	assert.Equal(t, 2, r.Hands)
	assert.Equal(t, gesture.ThumbsUp, r.Gesture, "second hand decides")
}

func TestStep_DetectorErrorIsNoHand(t *testing.T) {
	f := newFixture(t, 0)
	f.det.SetError(errors.New("service restarting"))

	assert.Equal(t, Result{Gesture: gesture.None}, f.app.Step(newFrame(t), t0))
}

func TestStep_DetectorFailureLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	f := newFixture(t, 0, WithLogger(zap.New(core)))
	frame := newFrame(t)

	f.det.SetError(errors.New("broken pipe"))
	f.app.Step(frame, t0)
	f.app.Step(frame, t0)

	f.det.SetError(nil)
	f.app.Step(frame, t0)

	f.det.SetError(errors.New("broken pipe"))
	f.app.Step(frame, t0)

	failing := logs.FilterMessage("hand detection failing").All()
	require.Len(t, failing, 2, "first failure of each run is reported")
	assert.Equal(t, zapcore.WarnLevel, failing[0].Level)
	assert.Equal(t, "broken pipe", failing[0].ContextMap()["error"])

	repeated := logs.FilterMessage("hand detection failed").All()
	require.Len(t, repeated, 1)
	assert.Equal(t, zapcore.DebugLevel, repeated[0].Level)

	assert.Equal(t, 1, logs.FilterMessage("hand detection recovered").Len())
}

func TestStep_ActionFailure(t *testing.T) {
	f := newFixture(t, 0)
	f.sink.err = errors.New("player closed")
	f.det.SetHands([]detector.HandLandmarks{detector.ThumbsUpLandmarks()})

	r := f.app.Step(newFrame(t), t0)
	assert.False(t, r.Executed)
	assert.Zero(t, f.app.Dispatcher().Remaining(t0), "failed action does not start the cooldown")
}

func TestStep_Mirror(t *testing.T) {
	f := newFixture(t, 0)
	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC1)
	defer frame.Close()
	frame.SetUCharAt(240, 0, 255)

	f.app.Step(&frame, t0)

	assert.Equal(t, uint8(255), frame.GetUCharAt(240, 639))
	assert.Equal(t, uint8(0), frame.GetUCharAt(240, 0))
}

func TestNewSink(t *testing.T) {
	cfg := config.Default()
	_, err := NewSink(cfg, nil)
	require.NoError(t, err, "keys sink")

	cfg.Sink = config.SinkPlugin
	cfg.PluginDir = t.TempDir()
	_, err = NewSink(cfg, zaptest.NewLogger(t))
	assert.Error(t, err, "plugin sink needs plugins")

	cfg.Sink = "midi"
	_, err = NewSink(cfg, nil)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestNewSink_PluginSinkReady(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"system-control", "keyboard"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, name), 0755))
		manifest := `{"name":"` + name + `","executable":"run.sh"}`
		require.NoError(t, os.WriteFile(filepath.Join(dir, name, "plugin.json"), []byte(manifest), 0644))
	}

	cfg := config.Default()
	cfg.Sink = config.SinkPlugin
	cfg.PluginDir = dir
	cfg.PluginTimeout = 3 * time.Second

	core, logs := observer.New(zapcore.InfoLevel)
	sink, err := NewSink(cfg, zap.New(core))
	require.NoError(t, err)
	assert.NotNil(t, sink)

	ready := logs.FilterMessage("plugin sink ready").All()
	require.Len(t, ready, 1)
	fields := ready[0].ContextMap()
	assert.Equal(t, dir, fields["dir"])
	assert.EqualValues(t, 2, fields["plugins"])
	assert.Equal(t, 3*time.Second, fields["timeout"])
}
