package advisor

import "context"

// TextGenerator is an opaque text-completion capability. Available reports
// whether the provider is worth attempting at all (credential configured,
// runtime reachable); Generate turns a prompt into text or fails.
type TextGenerator interface {
	Available() bool
	Generate(ctx context.Context, prompt string) (string, error)
}
