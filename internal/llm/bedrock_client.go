package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrock"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/launchpad-ai/launchpad/internal/metrics"
)

// ModelSpec binds a short alias to the Bedrock model id and its body format.
// Nova models ride inference profiles, Anthropic models use the messages API.
type ModelSpec struct {
	ID     string
	Format string // nova | anthropic
}

var modelConfigs = map[string]ModelSpec{
	"nova-micro":    {ID: "us.amazon.nova-micro-v1:0", Format: "nova"},
	"nova-lite":     {ID: "amazon.nova-lite-v1:0", Format: "nova"},
	"claude-haiku":  {ID: "anthropic.claude-3-haiku-20240307-v1:0", Format: "anthropic"},
	"claude-sonnet": {ID: "anthropic.claude-3-sonnet-20240229-v1:0", Format: "anthropic"},
}

type BedrockClient struct {
	rt  *bedrockruntime.Client
	ctl *bedrock.Client
	// aliases in invocation order; primero el primario, luego fallbacks
	Models []string
	// tabla de definitions/models; pisa los alias compilados
	overrides map[string]ModelSpec
}

var _ LLMClient = (*BedrockClient)(nil)

func NewBedrockClient(ctx context.Context, region, accessKey, secretKey string, models []string, overrides map[string]ModelSpec) (*BedrockClient, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}
	if len(models) == 0 {
		models = []string{"nova-micro"}
	}
	return &BedrockClient{
		rt:        bedrockruntime.NewFromConfig(cfg),
		ctl:       bedrock.NewFromConfig(cfg),
		Models:    models,
		overrides: overrides,
	}, nil
}

func (c *BedrockClient) resolveModel(alias string) (ModelSpec, bool) {
	if mc, ok := c.overrides[alias]; ok {
		return mc, true
	}
	mc, ok := modelConfigs[alias]
	return mc, ok
}

// Ping lists foundation models, the same call the credential checker makes.
func (c *BedrockClient) Ping(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if _, err := c.ctl.ListFoundationModels(ctx, &bedrock.ListFoundationModelsInput{}); err != nil {
		metrics.LLMPings.Inc(map[string]string{"provider": "bedrock", "outcome": "error"})
		return fmt.Errorf("bedrock ping failed: %w", err)
	}
	metrics.LLMPings.Inc(map[string]string{"provider": "bedrock", "outcome": "ok"})
	return nil
}

// Chat invoca los modelos en orden hasta que uno responda.
func (c *BedrockClient) Chat(ctx context.Context, req Request) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	var lastErr error
	for _, alias := range c.Models {
		mc, ok := c.resolveModel(alias)
		if !ok {
			// unknown alias, skip like the rest of the chain
			continue
		}

		body, err := buildModelBody(mc.Format, req)
		if err != nil {
			lastErr = err
			continue
		}

		out, err := c.rt.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
			ModelId:     aws.String(mc.ID),
			Body:        body,
			ContentType: aws.String("application/json"),
			Accept:      aws.String("application/json"),
		})
		if err != nil {
			lastErr = fmt.Errorf("invoke %s: %w", mc.ID, err)
			continue
		}

		text, err := parseModelOutput(mc.Format, out.Body)
		if err != nil {
			lastErr = fmt.Errorf("parse %s: %w", mc.ID, err)
			continue
		}

		metrics.LLMChats.Inc(map[string]string{"provider": "bedrock", "outcome": "ok"})
		metrics.LLMChatDur.Observe(map[string]string{"provider": "bedrock", "outcome": "ok"}, time.Since(start).Seconds())
		return text, nil
	}

	metrics.LLMChats.Inc(map[string]string{"provider": "bedrock", "outcome": "error"})
	if lastErr == nil {
		lastErr = fmt.Errorf("no usable models in %v", c.Models)
	}
	return "", fmt.Errorf("all models failed to respond: %w", lastErr)
}

type bedrockText struct {
	Text string `json:"text"`
}

type novaMessage struct {
	Role    string        `json:"role"`
	Content []bedrockText `json:"content"`
}

type novaRequest struct {
	System          []bedrockText `json:"system,omitempty"`
	Messages        []novaMessage `json:"messages"`
	InferenceConfig struct {
		MaxTokens   int     `json:"maxTokens,omitempty"`
		Temperature float64 `json:"temperature,omitempty"`
	} `json:"inferenceConfig"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicMessage struct {
	Role    string             `json:"role"`
	Content []anthropicContent `json:"content"`
}

type anthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	MaxTokens        int                `json:"max_tokens"`
	System           string             `json:"system,omitempty"`
	Messages         []anthropicMessage `json:"messages"`
	Temperature      float64            `json:"temperature,omitempty"`
}

func buildModelBody(format string, req Request) ([]byte, error) {
	switch format {
	case "nova":
		var body novaRequest
		if req.System != "" {
			body.System = []bedrockText{{Text: req.System}}
		}
		body.Messages = []novaMessage{
			{Role: "user", Content: []bedrockText{{Text: req.Prompt}}},
		}
		body.InferenceConfig.MaxTokens = req.MaxTokens
		body.InferenceConfig.Temperature = req.Temperature
		return json.Marshal(body)

	case "anthropic":
		maxTokens := req.MaxTokens
		if maxTokens <= 0 {
			maxTokens = 1000 // the messages API refuses max_tokens 0
		}
		body := anthropicRequest{
			AnthropicVersion: "bedrock-2023-05-31",
			MaxTokens:        maxTokens,
			System:           req.System,
			Temperature:      req.Temperature,
			Messages: []anthropicMessage{
				{Role: "user", Content: []anthropicContent{{Type: "text", Text: req.Prompt}}},
			},
		}
		return json.Marshal(body)
	}
	return nil, fmt.Errorf("unknown body format %q", format)
}

func parseModelOutput(format string, raw []byte) (string, error) {
	switch format {
	case "nova":
		var resp struct {
			Output struct {
				Message struct {
					Content []bedrockText `json:"content"`
				} `json:"message"`
			} `json:"output"`
		}
		if err := json.Unmarshal(raw, &resp); err != nil {
			return "", err
		}
		if len(resp.Output.Message.Content) == 0 {
			return "", fmt.Errorf("empty nova response")
		}
		return resp.Output.Message.Content[0].Text, nil

	case "anthropic":
		var resp struct {
			Content []anthropicContent `json:"content"`
		}
		if err := json.Unmarshal(raw, &resp); err != nil {
			return "", err
		}
		if len(resp.Content) == 0 {
			return "", fmt.Errorf("empty anthropic response")
		}
		return resp.Content[0].Text, nil
	}
	return "", fmt.Errorf("unknown body format %q", format)
}
