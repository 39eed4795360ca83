package generation

import "context"

// TextGenerator produces free text for a prompt.
type TextGenerator interface {
	// GenerateText sends prompt to the model and returns its text reply.
	// An empty reply is returned as "" with a nil error; callers decide how
	// to present it.
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to TextGenerator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// GenerateText calls f.
func (f GeneratorFunc) GenerateText(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
