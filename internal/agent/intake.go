package agent

import (
	"context"

	"github.com/launchpad-ai/launchpad/internal/bus"
	"github.com/launchpad-ai/launchpad/internal/guard"
	"github.com/launchpad-ai/launchpad/internal/logx"
	"github.com/launchpad-ai/launchpad/internal/textx"
	"github.com/launchpad-ai/launchpad/internal/ui"
)

// Intake es la puerta de entrada de tareas: valida contra guard, sanea el
// texto libre, normaliza el nivel de experiencia y enruta al especialista.
type Intake struct {
	bus     *bus.Bus
	inbox   chan bus.Message
	uiStore *ui.UIStore
}

func NewIntake(b *bus.Bus, uiStore *ui.UIStore) *Intake {
	return &Intake{
		bus:     b,
		inbox:   make(chan bus.Message, 16),
		uiStore: uiStore,
	}
}

// operación → agente destino y tipo de mensaje
var routes = map[string]struct{ target, msgType string }{
	guard.OpChat:    {"copilot", "chat"},
	guard.OpSkills:  {"skills", "analyze"},
	guard.OpCareer:  {"career", "plan"},
	guard.OpDocs:    {"docs", "generate"},
	guard.OpJobs:    {"jobs", "search"},
	guard.OpJobTips: {"jobs", "tips"},
}

// campos cuya estructura de líneas importa aguas abajo (extracción de
// nombre/contacto, contexto del modelo); solo se acotan, no se colapsan
var keepVerbatim = map[string]bool{
	"personal_info": true,
	"resume_text":   true,
}

func (i *Intake) Inbox() chan bus.Message {
	return i.inbox
}

func (i *Intake) Start(ctx context.Context) error {
	defer func() {
		if r := recover(); r != nil {
			logx.Error("Intake", "panic recovered in Start: %v", r)
		}
	}()
	for {
		select {
		case msg := <-i.inbox:
			func() {
				defer func() {
					if r := recover(); r != nil {
						logx.Error("Intake", "panic recovered in dispatch: %v", r)
					}
				}()
				i.dispatch(msg)
			}()

		case <-ctx.Done():
			return nil
		}
	}
}

func (i *Intake) dispatch(msg bus.Message) {
	switch msg.Type {
	case "new_task":
		i.handleNewTask(msg)
	default:
		logx.Warn("Intake", "unknown message: %#v", msg)
	}
}

func (i *Intake) handleNewTask(msg bus.Message) {
	id, _ := msg.Payload["id"].(string)
	operation, _ := msg.Payload["operation"].(string)
	params := paramsFromPayload(msg.Payload["params"])

	logx.Info("Intake", "new task id=%s operation=%s", id, operation)

	if err := guard.ValidateAll(operation, params); err != nil {
		logx.L(id, "Guard", "validation failed: %v", err)
		i.uiStore.AddEvent(id, "Intake", "rejected", err.Error(), "")
		finish(id, operation, Result{Status: "error", Err: err.Error()})
		return
	}

	for k, v := range params {
		if keepVerbatim[k] {
			continue
		}
		params[k] = textx.Sanitize(v)
	}
	if lvl, ok := params["experience_level"]; ok && lvl != "" {
		params["experience_level"] = textx.ExperienceLevel(lvl)
	}

	route, ok := routes[operation]
	if !ok {
		// guard ya valida la operación; esto solo puede pasar si las tablas divergen
		finish(id, operation, Result{Status: "error", Err: "operación sin ruta"})
		return
	}

	i.uiStore.AddEvent(id, "Intake", "routed", operation, "")

	i.bus.Send(route.target, bus.Message{
		Type: route.msgType,
		Payload: map[string]any{
			"id":     id,
			"params": params,
		},
	})
}

// paramsFromPayload tolera tanto map[string]string como map[string]any,
// según cómo haya viajado el payload por el bus.
func paramsFromPayload(raw any) map[string]string {
	params := make(map[string]string)
	switch mp := raw.(type) {
	case map[string]string:
		for k, v := range mp {
			params[k] = v
		}
	case map[string]any:
		for k, v := range mp {
			if sv, ok := v.(string); ok {
				params[k] = sv
			}
		}
	}
	return params
}

// preview recorta textos largos para la línea de tiempo de la UI.
func preview(s string) string {
	const max = 80
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
