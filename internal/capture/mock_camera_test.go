package capture

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestMockCamera_Playback(t *testing.T) {
	frame1 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame1.Close()
	frame2 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame2.Close()

	cam := NewMockCamera([]*gocv.Mat{&frame1, &frame2}, false)

	require.NoError(t, cam.Open())
	defer cam.Close()

	for i := 0; i < 2; i++ {
		f, err := cam.ReadFrame()
		require.NoError(t, err, "frame %d", i)
		f.Close()
	}

	_, err := cam.ReadFrame()
	assert.ErrorIs(t, err, ErrNoMoreFrames, "playback without loop ends")
}

func TestMockCamera_Loop(t *testing.T) {
	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	cam := NewMockCamera([]*gocv.Mat{&frame}, true)
	require.NoError(t, cam.Open())
	defer cam.Close()

	for i := 0; i < 5; i++ {
		f, err := cam.ReadFrame()
		require.NoError(t, err, "iteration %d", i)
		f.Close()
	}
}

func TestMockCamera_ReopenRestartsPlayback(t *testing.T) {
	frame := gocv.NewMatWithSize(2, 2, gocv.MatTypeCV8UC1)
	defer frame.Close()

	cam := NewMockCamera([]*gocv.Mat{&frame}, false)
	require.NoError(t, cam.Open())
	f, err := cam.ReadFrame()
	require.NoError(t, err)
	f.Close()
	require.NoError(t, cam.Close())

	require.NoError(t, cam.Open())
	f, err = cam.ReadFrame()
	require.NoError(t, err)
	f.Close()

	assert.Equal(t, 2, cam.Opens())
}

func TestMockCamera_NoFrames(t *testing.T) {
	cam := NewMockCamera(nil, true)
	require.NoError(t, cam.Open())

	_, err := cam.ReadFrame()
	assert.ErrorIs(t, err, ErrNoMoreFrames)
}

func TestMockCamera_NotOpen(t *testing.T) {
	cam := NewMockCamera(nil, false)

	_, err := cam.ReadFrame()
	assert.ErrorIs(t, err, ErrCameraNotOpen)
}

func TestMockCamera_OpenError(t *testing.T) {
	cam := NewMockCamera(nil, false)
	busy := errors.New("device busy")
	cam.SetOpenError(busy)

	assert.ErrorIs(t, cam.Open(), busy)
	assert.False(t, cam.IsOpen(), "camera stays closed after a failed Open")
	assert.Equal(t, 1, cam.Opens())
}

func TestMockCamera_CountsCloses(t *testing.T) {
	cam := NewMockCamera(nil, false)
	require.NoError(t, cam.Open())
	cam.Close()
	cam.Close()

	assert.Equal(t, 2, cam.Closes())
}
