package main

import (
	"fmt"
	"io"
	"time"

	"github.com/muesli/termenv"

	"github.com/ayusman/mudra/internal/player"
)

func printBanner(w io.Writer) {
	p := termenv.ColorProfile()
	title := termenv.String("  MUDRA  hand gesture music control").Bold().Foreground(p.Color("#a78bfa"))
	rule := termenv.String("  ==================================").Foreground(p.Color("#818cf8"))

	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
}

// printGuide lists every gesture binding.
func printGuide(w io.Writer) {
	p := termenv.ColorProfile()
	fmt.Fprintln(w, termenv.String("  Controls").Bold())
	for _, b := range player.Bindings() {
		pose := termenv.String(fmt.Sprintf("%-26s", b.Pose)).Foreground(p.Color("#34d399"))
		fmt.Fprintf(w, "    %s %s\n", pose, b.Effect)
	}
	fmt.Fprintln(w)
}

// printTips prints usage advice for a session gated by cooldown.
func printTips(w io.Writer, cooldown time.Duration) {
	p := termenv.ColorProfile()
	fmt.Fprintln(w, termenv.String("  Tips").Bold())
	for _, tip := range []string{
		"Keep your hand 30-60cm from the camera, palm facing it.",
		fmt.Sprintf("Hold each pose steady; actions repeat at most every %s.", cooldown),
		"Press Q to quit, R to reset the cooldown, S to open the player.",
	} {
		fmt.Fprintf(w, "    %s %s\n", termenv.String("-").Foreground(p.Color("#fbbf24")), tip)
	}
	fmt.Fprintln(w)
}
