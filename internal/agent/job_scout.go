package agent

import (
	"context"
	"fmt"

	"github.com/launchpad-ai/launchpad/internal/bus"
	"github.com/launchpad-ai/launchpad/internal/config"
	"github.com/launchpad-ai/launchpad/internal/guard"
	"github.com/launchpad-ai/launchpad/internal/jobs"
	"github.com/launchpad-ai/launchpad/internal/llm"
	"github.com/launchpad-ai/launchpad/internal/logx"
	"github.com/launchpad-ai/launchpad/internal/ui"
)

// JobScout busca ofertas en el catálogo, las puntúa con el LLM y también
// responde peticiones de tips de aplicación.
type JobScout struct {
	bus     *bus.Bus
	cfg     *config.Config
	client  llm.LLMClient
	uiStore *ui.UIStore
	inbox   chan bus.Message
}

func NewJobScout(b *bus.Bus, cfg *config.Config, client llm.LLMClient, uiStore *ui.UIStore) *JobScout {
	return &JobScout{
		bus:     b,
		cfg:     cfg,
		client:  client,
		uiStore: uiStore,
		inbox:   make(chan bus.Message, 16),
	}
}

func (j *JobScout) Inbox() chan bus.Message {
	return j.inbox
}

func (j *JobScout) Start(ctx context.Context) error {
	defer func() {
		if r := recover(); r != nil {
			logx.Error("Jobs", "panic recovered in Start: %v", r)
		}
	}()
	for {
		select {
		case msg := <-j.inbox:
			func() {
				defer func() {
					if r := recover(); r != nil {
						logx.Error("Jobs", "panic recovered in dispatch: %v", r)
					}
				}()
				j.dispatch(ctx, msg)
			}()

		case <-ctx.Done():
			return nil
		}
	}
}

func (j *JobScout) dispatch(ctx context.Context, msg bus.Message) {
	switch msg.Type {
	case "search":
		j.handleSearch(ctx, msg)
	case "tips":
		j.handleTips(ctx, msg)
	default:
		logx.Warn("Jobs", "unknown message: %#v", msg)
	}
}

func (j *JobScout) handleSearch(ctx context.Context, msg bus.Message) {
	id, _ := msg.Payload["id"].(string)
	params := paramsFromPayload(msg.Payload["params"])

	role := params["role"]
	location := params["location"]
	tctx := taskContext(id, ctx)

	timer := logx.Start(id, "Jobs", "SearchPipeline")
	report, found := jobs.Search(tctx, j.client, j.cfg, role, location, params["experience_level"])
	timer.End()

	j.uiStore.AddEvent(id, "Jobs", "search", fmt.Sprintf("%d matches for %s", len(found), role), "")

	finish(id, guard.OpJobs, Result{
		Status: "ok",
		Data: map[string]any{
			"report": report,
			"jobs":   compactJobs(found),
		},
	})
}

func (j *JobScout) handleTips(ctx context.Context, msg bus.Message) {
	id, _ := msg.Payload["id"].(string)
	params := paramsFromPayload(msg.Payload["params"])

	role := params["role"]
	tctx := taskContext(id, ctx)

	timer := logx.Start(id, "Jobs", "Tips")
	tips := jobs.Tips(tctx, j.client, role)
	timer.End()

	j.uiStore.AddEvent(id, "Jobs", "tips", role, "")

	finish(id, guard.OpJobTips, Result{
		Status: "ok",
		Data: map[string]any{
			"role": role,
			"tips": tips,
		},
	})
}

// compactJobs reduce cada oferta a los campos que el cliente necesita para
// listar resultados, el informe completo ya lleva el detalle.
func compactJobs(list []jobs.Job) []map[string]any {
	out := make([]map[string]any, 0, len(list))
	for _, job := range list {
		out = append(out, map[string]any{
			"title":       job.Title,
			"company":     job.Company,
			"location":    job.Location,
			"salary":      job.Salary,
			"match_score": job.MatchScore,
		})
	}
	return out
}
