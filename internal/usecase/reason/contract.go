package reason

import "context"

// Generator produces raw completion text for one constrained prompt.
// Output is untrusted: it may be prose, a fenced block, or malformed, and
// transport errors are expected in normal operation.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
