package llm

import (
	"context"
	"fmt"

	"github.com/launchpad-ai/launchpad/internal/logx"
	"github.com/launchpad-ai/launchpad/internal/metrics"
)

// Chain tries providers in order until one answers. The first entry is the
// primary; the rest only see traffic when everything before them failed.
type Chain struct {
	names   []string
	clients []LLMClient
}

var _ LLMClient = (*Chain)(nil)

func NewChain() *Chain {
	return &Chain{}
}

func (c *Chain) Add(name string, client LLMClient) *Chain {
	c.names = append(c.names, name)
	c.clients = append(c.clients, client)
	return c
}

func (c *Chain) Len() int {
	return len(c.clients)
}

// Ping succeeds if any provider answers; readiness only needs one healthy.
func (c *Chain) Ping(ctx context.Context) error {
	if len(c.clients) == 0 {
		return fmt.Errorf("llm chain is empty")
	}
	var lastErr error
	for i, cl := range c.clients {
		if err := cl.Ping(ctx); err != nil {
			lastErr = fmt.Errorf("%s: %w", c.names[i], err)
			continue
		}
		return nil
	}
	return fmt.Errorf("no provider answered ping: %w", lastErr)
}

func (c *Chain) Chat(ctx context.Context, req Request) (string, error) {
	if len(c.clients) == 0 {
		return "", fmt.Errorf("llm chain is empty")
	}
	var lastErr error
	for i, cl := range c.clients {
		out, err := cl.Chat(ctx, req)
		if err != nil {
			logx.Warn("App", "provider %s failed, trying next: %v", c.names[i], err)
			lastErr = fmt.Errorf("%s: %w", c.names[i], err)
			continue
		}
		if i > 0 {
			metrics.LLMFallbacks.Inc(map[string]string{"provider": c.names[i]})
		}
		return out, nil
	}
	return "", fmt.Errorf("all providers failed to respond: %w", lastErr)
}
