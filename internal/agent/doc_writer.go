package agent

import (
	"context"
	"errors"
	"time"

	"github.com/launchpad-ai/launchpad/internal/bus"
	"github.com/launchpad-ai/launchpad/internal/docs"
	"github.com/launchpad-ai/launchpad/internal/guard"
	"github.com/launchpad-ai/launchpad/internal/llm"
	"github.com/launchpad-ai/launchpad/internal/logx"
	"github.com/launchpad-ai/launchpad/internal/storage"
	"github.com/launchpad-ai/launchpad/internal/store"
	"github.com/launchpad-ai/launchpad/internal/ui"
)

// DocWriter genera resumes, cover letters y summaries de LinkedIn. Si hay un
// DocStore configurado el documento se archiva en S3, si no solo se devuelve.
type DocWriter struct {
	bus      *bus.Bus
	st       store.Store
	docStore *storage.DocStore // opcional, nil si no hay S3
	client   llm.LLMClient
	uiStore  *ui.UIStore
	inbox    chan bus.Message
}

func NewDocWriter(b *bus.Bus, st store.Store, docStore *storage.DocStore, client llm.LLMClient, uiStore *ui.UIStore) *DocWriter {
	return &DocWriter{
		bus:      b,
		st:       st,
		docStore: docStore,
		client:   client,
		uiStore:  uiStore,
		inbox:    make(chan bus.Message, 16),
	}
}

func (d *DocWriter) Inbox() chan bus.Message {
	return d.inbox
}

func (d *DocWriter) Start(ctx context.Context) error {
	defer func() {
		if r := recover(); r != nil {
			logx.Error("Docs", "panic recovered in Start: %v", r)
		}
	}()
	for {
		select {
		case msg := <-d.inbox:
			func() {
				defer func() {
					if r := recover(); r != nil {
						logx.Error("Docs", "panic recovered in dispatch: %v", r)
					}
				}()
				d.dispatch(ctx, msg)
			}()

		case <-ctx.Done():
			return nil
		}
	}
}

func (d *DocWriter) dispatch(ctx context.Context, msg bus.Message) {
	switch msg.Type {
	case "generate":
		d.handleGenerate(ctx, msg)
	default:
		logx.Warn("Docs", "unknown message: %#v", msg)
	}
}

func (d *DocWriter) handleGenerate(ctx context.Context, msg bus.Message) {
	id, _ := msg.Payload["id"].(string)
	params := paramsFromPayload(msg.Payload["params"])

	userID := params["user_id"]
	docType := params["type"]
	tctx := taskContext(id, ctx)

	// El perfil guardado rellena los campos que la petición dejó en blanco.
	profile, err := d.st.GetProfile(tctx, userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		logx.Warn("Docs", "loading profile failed user=%s: %v", userID, err)
	}
	if params["skills"] == "" {
		params["skills"] = profile.Skills
	}
	if params["experience"] == "" {
		params["experience"] = profile.Experience
	}
	if params["goals"] == "" {
		params["goals"] = profile.Goals
	}

	timer := logx.Start(id, "Docs", "Generate")
	var document string
	switch docType {
	case docs.TypeResume:
		document = docs.Resume(tctx, d.client, params["personal_info"], params["experience"], params["skills"])
	case docs.TypeCoverLetter:
		document = docs.CoverLetter(tctx, d.client, params["job_description"], docs.ProfileInfo{
			Skills:       params["skills"],
			Experience:   params["experience"],
			Achievements: params["achievements"],
		})
	case docs.TypeLinkedInSummary:
		document = docs.LinkedInSummary(tctx, d.client, docs.ProfileInfo{
			Skills:     params["skills"],
			Experience: params["experience"],
			Goals:      params["goals"],
			Industry:   params["industry"],
		})
	}
	timer.End()

	data := map[string]any{
		"document": document,
		"type":     docType,
	}
	if d.docStore != nil {
		key := storage.DocKey(userID, docType, time.Now())
		uri, err := d.docStore.Save(tctx, key, document)
		if err != nil {
			logx.Warn("Docs", "archiving document failed key=%s: %v", key, err)
		} else {
			data["uri"] = uri
			data["key"] = key
			logx.L(id, "Docs", "archived %s", uri)
		}
	}

	d.uiStore.AddEvent(id, "Docs", "generated", docType, "")

	finish(id, guard.OpDocs, Result{Status: "ok", Data: data})
}
