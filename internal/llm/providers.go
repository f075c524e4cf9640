package llm

import (
	"context"
	"errors"

	"github.com/launchpad-ai/launchpad/internal/config"
	"github.com/launchpad-ai/launchpad/internal/logx"
)

// FromEnv monta la cadena de proveedores en el orden de LLM_PROVIDERS. Un
// proveedor que no se puede construir se salta con un warning; si no queda
// ninguno, error. cfg aporta la tabla de modelos de definitions y puede ser
// nil (el worker no carga definitions).
func FromEnv(ctx context.Context, env *config.EnvVars, cfg *config.Config) (LLMClient, error) {
	chain := NewChain()

	for _, provider := range env.ProviderChain() {
		switch provider {
		case "bedrock":
			client, err := NewBedrockClient(ctx, env.AWSRegion, env.AWSAccessKeyID, env.AWSSecretAccessKey, env.BedrockModels(), bedrockOverrides(cfg))
			if err != nil {
				logx.Warn("LLM", "bedrock no disponible: %v", err)
				continue
			}
			chain.Add("bedrock", client)
		case "openai":
			chain.Add("openai", NewOpenAIClient(env.LLMBaseURL, env.LLMApiKey, env.LLMModel))
		case "ollama":
			chain.Add("ollama", NewOllamaClient(env.OllamaBaseURL, env.OllamaModel))
		case "gemini":
			client, err := NewGeminiClient(ctx, env.GeminiApiKey, env.GeminiModel)
			if err != nil {
				logx.Warn("LLM", "gemini no disponible: %v", err)
				continue
			}
			chain.Add("gemini", client)
		default:
			logx.Warn("LLM", "proveedor desconocido: %q", provider)
		}
	}

	if chain.Len() == 0 {
		return nil, errors.New("ningún proveedor LLM configurado")
	}
	return chain, nil
}

func bedrockOverrides(cfg *config.Config) map[string]ModelSpec {
	if cfg == nil || len(cfg.Models) == 0 {
		return nil
	}
	out := make(map[string]ModelSpec, len(cfg.Models))
	for name, m := range cfg.Models {
		out[name] = ModelSpec{ID: m.ID, Format: m.Format}
	}
	return out
}
