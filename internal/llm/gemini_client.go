package llm

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/launchpad-ai/launchpad/internal/metrics"
)

type GeminiClient struct {
	client *genai.Client
	Model  string
}

var _ LLMClient = (*GeminiClient)(nil)

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}
	cl, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}
	return &GeminiClient{client: cl, Model: model}, nil
}

func (c *GeminiClient) Ping(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if _, err := c.client.Models.Get(ctx, c.Model, nil); err != nil {
		metrics.LLMPings.Inc(map[string]string{"provider": "gemini", "outcome": "error"})
		return fmt.Errorf("gemini ping failed: %w", err)
	}
	metrics.LLMPings.Inc(map[string]string{"provider": "gemini", "outcome": "ok"})
	return nil
}

func (c *GeminiClient) Chat(ctx context.Context, req Request) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := &genai.GenerateContentConfig{}
	if req.Temperature > 0 {
		cfg.Temperature = genai.Ptr(float32(req.Temperature))
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.System != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.Model, genai.Text(req.Prompt), cfg)
	if err != nil {
		metrics.LLMChats.Inc(map[string]string{"provider": "gemini", "outcome": "error"})
		return "", fmt.Errorf("gemini chat failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		metrics.LLMChats.Inc(map[string]string{"provider": "gemini", "outcome": "error"})
		return "", fmt.Errorf("gemini: empty response")
	}

	metrics.LLMChats.Inc(map[string]string{"provider": "gemini", "outcome": "ok"})
	metrics.LLMChatDur.Observe(map[string]string{"provider": "gemini", "outcome": "ok"}, time.Since(start).Seconds())
	return text, nil
}
