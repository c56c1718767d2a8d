package runner

import "context"

// Handler presents batch results.
type Handler interface {
	// Result is called once per input, in input order.
	Result(ctx context.Context, r Result) error

	// Summary is called once after the last input.
	Summary(ctx context.Context, s Summary) error
}
