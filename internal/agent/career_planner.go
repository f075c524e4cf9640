package agent

import (
	"context"

	"github.com/google/uuid"

	"github.com/launchpad-ai/launchpad/internal/bus"
	"github.com/launchpad-ai/launchpad/internal/career"
	"github.com/launchpad-ai/launchpad/internal/config"
	"github.com/launchpad-ai/launchpad/internal/database"
	"github.com/launchpad-ai/launchpad/internal/guard"
	"github.com/launchpad-ai/launchpad/internal/llm"
	"github.com/launchpad-ai/launchpad/internal/logx"
	"github.com/launchpad-ai/launchpad/internal/store"
	"github.com/launchpad-ai/launchpad/internal/ui"
)

// CareerPlanner genera el plan de carrera completo y lo persiste como plan
// activo del usuario.
type CareerPlanner struct {
	bus     *bus.Bus
	cfg     *config.Config
	st      store.Store
	client  llm.LLMClient
	uiStore *ui.UIStore
	inbox   chan bus.Message
}

func NewCareerPlanner(b *bus.Bus, cfg *config.Config, st store.Store, client llm.LLMClient, uiStore *ui.UIStore) *CareerPlanner {
	return &CareerPlanner{
		bus:     b,
		cfg:     cfg,
		st:      st,
		client:  client,
		uiStore: uiStore,
		inbox:   make(chan bus.Message, 16),
	}
}

func (p *CareerPlanner) Inbox() chan bus.Message {
	return p.inbox
}

func (p *CareerPlanner) Start(ctx context.Context) error {
	defer func() {
		if r := recover(); r != nil {
			logx.Error("Career", "panic recovered in Start: %v", r)
		}
	}()
	for {
		select {
		case msg := <-p.inbox:
			func() {
				defer func() {
					if r := recover(); r != nil {
						logx.Error("Career", "panic recovered in dispatch: %v", r)
					}
				}()
				p.dispatch(ctx, msg)
			}()

		case <-ctx.Done():
			return nil
		}
	}
}

func (p *CareerPlanner) dispatch(ctx context.Context, msg bus.Message) {
	switch msg.Type {
	case "plan":
		p.handlePlan(ctx, msg)
	default:
		logx.Warn("Career", "unknown message: %#v", msg)
	}
}

func (p *CareerPlanner) handlePlan(ctx context.Context, msg bus.Message) {
	id, _ := msg.Payload["id"].(string)
	params := paramsFromPayload(msg.Payload["params"])

	userID := params["user_id"]
	tctx := taskContext(id, ctx)

	timer := logx.Start(id, "Career", "PlanPipeline")
	report, suggestions := career.Plan(tctx, p.client, p.cfg, params["skills"], params["interests"], params["experience"])
	timer.End()

	title := "Career Plan"
	if len(suggestions) > 0 && suggestions[0].Title != "" && suggestions[0].Title != "Error" {
		title = suggestions[0].Title
	}

	planID := ""
	plan := database.CareerPlan{
		ID:      uuid.New(),
		UserID:  userID,
		Title:   title,
		Content: report,
		Status:  "active",
	}
	if err := p.st.SavePlan(tctx, plan); err != nil {
		logx.Warn("Career", "saving plan failed user=%s: %v", userID, err)
	} else {
		planID = plan.ID.String()
	}

	p.uiStore.AddEvent(id, "Career", "plan", title, "")

	finish(id, guard.OpCareer, Result{
		Status: "ok",
		Data: map[string]any{
			"plan_id":     planID,
			"report":      report,
			"suggestions": suggestions,
		},
	})
}
