package app

import (
	"gocv.io/x/gocv"
)

// Display shows annotated frames and reports key presses.
type Display interface {
	Show(frame *gocv.Mat)
	// PollKey waits briefly for a key and returns its code, or -1.
	PollKey() int
	Close() error
}

// window is a highgui window created on the first frame.
type window struct {
	title string
	win   *gocv.Window
}

// NewWindow returns a Display backed by an OpenCV window.
func NewWindow(title string) Display {
	return &window{title: title}
}

func (w *window) Show(frame *gocv.Mat) {
	if w.win == nil {
		w.win = gocv.NewWindow(w.title)
	}
	w.win.IMShow(*frame)
}

func (w *window) PollKey() int {
	if w.win == nil {
		return -1
	}
	return w.win.WaitKey(1)
}

func (w *window) Close() error {
	if w.win == nil {
		return nil
	}
	err := w.win.Close()
	w.win = nil
	return err
}
