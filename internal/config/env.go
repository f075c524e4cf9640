package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type EnvVars struct {
	AppEnv       string        `envconfig:"APP_ENV" default:"dev"`
	Port         int           `envconfig:"PORT" default:"8080"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"60s"`
	LogLevel     string        `envconfig:"LOG_LEVEL" default:"info"`

	AgentBuffer int           `envconfig:"AGENT_BUFFER" default:"16"`
	TaskTTL     time.Duration `envconfig:"TASK_TTL" default:"10m"`
	ResultWait  time.Duration `envconfig:"RESULT_WAIT" default:"45s"`

	// chain of providers tried in order: bedrock, openai, ollama, gemini
	LLMProviders   string        `envconfig:"LLM_PROVIDERS" default:"bedrock"`
	LLMTimeout     time.Duration `envconfig:"LLM_TIMEOUT" default:"30s"`
	LLMMaxTokens   int           `envconfig:"MAX_TOKENS" default:"1000"`
	LLMTemperature float64       `envconfig:"TEMPERATURE" default:"0.7"`

	// Bedrock
	AWSRegion             string `envconfig:"AWS_REGION" default:"eu-west-3"`
	AWSAccessKeyID        string `envconfig:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey    string `envconfig:"AWS_SECRET_ACCESS_KEY"`
	BedrockModelID        string `envconfig:"BEDROCK_MODEL_ID" default:"nova-micro"`
	BedrockFallbackModels string `envconfig:"BEDROCK_FALLBACK_MODELS" default:"claude-haiku,claude-sonnet"`

	// OpenAI-compatible endpoint
	LLMApiKey  string `envconfig:"LLM_API_KEY"`
	LLMBaseURL string `envconfig:"LLM_BASE_URL" default:"https://api.openai.com/v1"`
	LLMModel   string `envconfig:"LLM_MODEL" default:"gpt-4.1"`

	// Ollama (local LLM) configuration
	OllamaBaseURL string `envconfig:"OLLAMA_BASE_URL" default:"http://localhost:11434"`
	OllamaModel   string `envconfig:"OLLAMA_MODEL" default:"qwen3:0.6b"`

	// Gemini
	GeminiApiKey string `envconfig:"GEMINI_API_KEY"`
	GeminiModel  string `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`

	// Postgres; empty means in-memory stores only
	DBURL string `envconfig:"DB_URL"`

	// S3 document store; empty bucket means the archive is disabled
	S3Bucket   string `envconfig:"S3_BUCKET"`
	S3Endpoint string `envconfig:"S3_ENDPOINT"`

	// resume pipeline
	AMQPURL        string `envconfig:"AMQP_URL"`
	ResumeQueue    string `envconfig:"RESUME_QUEUE" default:"resume_jobs"`
	UpdateExchange string `envconfig:"UPDATE_EXCHANGE" default:"resume_updates"`
	WorkerCount    int    `envconfig:"WORKER_COUNT" default:"4"`
}

func LoadEnv() (*EnvVars, error) {
	var v EnvVars
	if err := envconfig.Process("", &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// ProviderChain splits LLM_PROVIDERS into its ordered entries.
func (v *EnvVars) ProviderChain() []string {
	return splitList(v.LLMProviders)
}

// BedrockModels returns the primary model alias followed by the fallbacks.
func (v *EnvVars) BedrockModels() []string {
	out := []string{v.BedrockModelID}
	return append(out, splitList(v.BedrockFallbackModels)...)
}
