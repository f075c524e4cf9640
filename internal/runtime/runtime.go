package runtime

import (
	"context"

	"github.com/launchpad-ai/launchpad/internal/llm"
)

// Pinger es lo único que el readiness check necesita de la base de datos.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Runtime agrupa el estado que los health checks consultan.
type Runtime struct {
	SpecsLoaded bool // definiciones YAML cargadas
	LLMClient   llm.LLMClient
	DB          Pinger // nil cuando el store corre en memoria
}
