package agent

import (
	"context"

	"github.com/launchpad-ai/launchpad/internal/bus"
)

// Agent es cualquier proceso interno colgado del bus: un inbox propio y un
// bucle Start que muere con el contexto.
type Agent interface {
	Start(ctx context.Context) error
	Inbox() chan bus.Message
}
