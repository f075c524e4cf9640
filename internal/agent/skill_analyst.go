package agent

import (
	"context"
	"errors"

	"github.com/launchpad-ai/launchpad/internal/bus"
	"github.com/launchpad-ai/launchpad/internal/config"
	"github.com/launchpad-ai/launchpad/internal/guard"
	"github.com/launchpad-ai/launchpad/internal/llm"
	"github.com/launchpad-ai/launchpad/internal/logx"
	"github.com/launchpad-ai/launchpad/internal/skills"
	"github.com/launchpad-ai/launchpad/internal/store"
	"github.com/launchpad-ai/launchpad/internal/ui"
)

// SkillAnalyst ejecuta el análisis de skills y actualiza el perfil del
// usuario con lo extraído.
type SkillAnalyst struct {
	bus     *bus.Bus
	cfg     *config.Config
	st      store.Store
	client  llm.LLMClient
	uiStore *ui.UIStore
	inbox   chan bus.Message
}

func NewSkillAnalyst(b *bus.Bus, cfg *config.Config, st store.Store, client llm.LLMClient, uiStore *ui.UIStore) *SkillAnalyst {
	return &SkillAnalyst{
		bus:     b,
		cfg:     cfg,
		st:      st,
		client:  client,
		uiStore: uiStore,
		inbox:   make(chan bus.Message, 16),
	}
}

func (s *SkillAnalyst) Inbox() chan bus.Message {
	return s.inbox
}

func (s *SkillAnalyst) Start(ctx context.Context) error {
	defer func() {
		if r := recover(); r != nil {
			logx.Error("Skills", "panic recovered in Start: %v", r)
		}
	}()
	for {
		select {
		case msg := <-s.inbox:
			func() {
				defer func() {
					if r := recover(); r != nil {
						logx.Error("Skills", "panic recovered in dispatch: %v", r)
					}
				}()
				s.dispatch(ctx, msg)
			}()

		case <-ctx.Done():
			return nil
		}
	}
}

func (s *SkillAnalyst) dispatch(ctx context.Context, msg bus.Message) {
	switch msg.Type {
	case "analyze":
		s.handleAnalyze(ctx, msg)
	default:
		logx.Warn("Skills", "unknown message: %#v", msg)
	}
}

func (s *SkillAnalyst) handleAnalyze(ctx context.Context, msg bus.Message) {
	id, _ := msg.Payload["id"].(string)
	params := paramsFromPayload(msg.Payload["params"])

	userID := params["user_id"]
	tctx := taskContext(id, ctx)

	timer := logx.Start(id, "Skills", "AnalyzePipeline")
	report, extracted := skills.Analyze(tctx, s.client, s.cfg, params["input"], params["resume_text"])
	timer.End()

	// el perfil guarda la lista plana para que otras operaciones la reusen
	profile, err := s.st.GetProfile(tctx, userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		logx.Warn("Skills", "profile lookup failed user=%s: %v", userID, err)
	}
	profile.UserID = userID
	profile.Skills = skills.Summary(s.cfg, extracted)
	if err := s.st.UpsertProfile(tctx, profile); err != nil {
		logx.Warn("Skills", "profile update failed user=%s: %v", userID, err)
	}

	s.uiStore.AddEvent(id, "Skills", "analysis", "skill report ready", "")

	finish(id, guard.OpSkills, Result{
		Status: "ok",
		Data: map[string]any{
			"report": report,
			"skills": extracted,
		},
	})
}
