package port

import "context"

// CompletionRequest carries one prompt to a language model.
type CompletionRequest struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Completer abstracts a language-model text completion call.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
