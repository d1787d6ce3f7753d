// Command mudra controls a music player with hand gestures seen by a webcam.
package main

import (
	"fmt"
	"os"
	"runtime"
)

func init() {
	// OpenCV windows must be driven from the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
