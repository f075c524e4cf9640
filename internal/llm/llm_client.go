package llm

import "context"

// Request is one prompt on its way to whichever provider answers it.
// Zero MaxTokens/Temperature means provider defaults.
type Request struct {
    System      string
    Prompt      string
    MaxTokens   int
    Temperature float64
}

type LLMClient interface {
    Ping(ctx context.Context) error
    Chat(ctx context.Context, req Request) (string, error)
}
