package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the ASCII art banner shown by the interactive commands.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{" ____  _____ _    ", "#818cf8"},
		{"|  _ \\|  ___/ \\   ", "#a78bfa"},
		{"| | | | |_ / _ \\  ", "#c084fc"},
		{"| |_| |  _/ ___ \\ ", "#e879f9"},
		{"|____/|_|/_/   \\_\\", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Verdict returns ACCEPTED in green or REJECTED in red, as the writer's
// colour profile allows.
func Verdict(w io.Writer, accepted bool) string {
	out := termenv.NewOutput(w)
	if accepted {
		return out.String("ACCEPTED").Bold().Foreground(out.Color("2")).String()
	}
	return out.String("REJECTED").Bold().Foreground(out.Color("1")).String()
}
