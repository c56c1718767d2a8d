package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/muesli/termenv"
)

// TextHandler writes results as an aligned table, colouring the status
// column when the writer is a colour terminal.
type TextHandler struct {
	out       *termenv.Output
	tw        *tabwriter.Writer
	wroteHead bool
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*[]termenv.OutputOption)

// WithColorProfile forces a colour profile instead of detecting one.
func WithColorProfile(p termenv.Profile) TextHandlerOption {
	return func(o *[]termenv.OutputOption) {
		*o = append(*o, termenv.WithProfile(p))
	}
}

// NewTextHandler creates a table handler writing to w.
func NewTextHandler(w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if w == nil {
		w = os.Stdout
	}
	var outOpts []termenv.OutputOption
	for _, opt := range opts {
		opt(&outOpts)
	}
	out := termenv.NewOutput(w, outOpts...)
	return &TextHandler{
		out: out,
		tw:  tabwriter.NewWriter(out, 0, 0, 2, ' ', 0),
	}
}

func (h *TextHandler) Result(ctx context.Context, r Result) error {
	if !h.wroteHead {
		fmt.Fprintln(h.tw, "#\tINPUT\tFINAL\tSTATUS")
		h.wroteHead = true
	}
	input := r.Input
	if input == "" {
		input = Epsilon
	}
	final := r.FinalState
	if final == "" {
		final = "-"
	}
	status := h.status(r)
	_, err := fmt.Fprintf(h.tw, "%d\t%s\t%s\t%s\n", r.Index+1, input, final, status)
	return err
}

func (h *TextHandler) Summary(ctx context.Context, s Summary) error {
	if err := h.tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(h.out, "\n%d inputs: %d accepted, %d rejected, %d errors\n",
		s.Total, s.Accepted, s.Rejected, s.Errors)
	return err
}

func (h *TextHandler) status(r Result) string {
	label := string(r.Status)
	var color termenv.Color
	switch r.Status {
	case StatusAccepted:
		color = h.out.Color("2")
	case StatusRejected:
		color = h.out.Color("1")
	default:
		label = fmt.Sprintf("%s (%s)", r.Status, r.Error)
		color = h.out.Color("3")
	}
	return h.out.String(label).Foreground(color).String()
}
