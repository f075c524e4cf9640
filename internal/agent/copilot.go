package agent

import (
	"context"
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/launchpad-ai/launchpad/internal/bus"
	"github.com/launchpad-ai/launchpad/internal/config"
	"github.com/launchpad-ai/launchpad/internal/database"
	"github.com/launchpad-ai/launchpad/internal/guard"
	"github.com/launchpad-ai/launchpad/internal/llm"
	"github.com/launchpad-ai/launchpad/internal/logx"
	"github.com/launchpad-ai/launchpad/internal/store"
	"github.com/launchpad-ai/launchpad/internal/ui"
)

const copilotSystemPrompt = `You are LaunchPad.AI, an expert AI career copilot. Your role is to help users navigate their career journey from dream to job offer.

Core capabilities:
- Analyze skills and identify gaps
- Suggest personalized career paths
- Recommend learning resources
- Generate resumes and cover letters
- Find job opportunities
- Provide interview preparation

Always be:
- Encouraging and supportive
- Data-driven and practical
- Personalized to user's situation
- Action-oriented with clear next steps

Use reasoning to understand user goals, assess their current situation, and provide tailored guidance.`

const copilotApology = "I apologize, but I'm experiencing technical difficulties. Please try again in a moment."

// historyDepth son los intercambios previos que entran en el prompt.
const historyDepth = 3

// Copilot lleva la conversación de carrera: memoria por (usuario, sesión),
// prompt de sistema fijo y formateo de la respuesta.
type Copilot struct {
	bus     *bus.Bus
	env     *config.EnvVars
	st      store.Store
	client  llm.LLMClient
	uiStore *ui.UIStore
	inbox   chan bus.Message
}

func NewCopilot(b *bus.Bus, env *config.EnvVars, st store.Store, client llm.LLMClient, uiStore *ui.UIStore) *Copilot {
	return &Copilot{
		bus:     b,
		env:     env,
		st:      st,
		client:  client,
		uiStore: uiStore,
		inbox:   make(chan bus.Message, 16),
	}
}

func (c *Copilot) Inbox() chan bus.Message {
	return c.inbox
}

func (c *Copilot) Start(ctx context.Context) error {
	defer func() {
		if r := recover(); r != nil {
			logx.Error("Copilot", "panic recovered in Start: %v", r)
		}
	}()
	for {
		select {
		case msg := <-c.inbox:
			func() {
				defer func() {
					if r := recover(); r != nil {
						logx.Error("Copilot", "panic recovered in dispatch: %v", r)
					}
				}()
				c.dispatch(ctx, msg)
			}()

		case <-ctx.Done():
			return nil
		}
	}
}

func (c *Copilot) dispatch(ctx context.Context, msg bus.Message) {
	switch msg.Type {
	case "chat":
		c.handleChat(ctx, msg)
	default:
		logx.Warn("Copilot", "unknown message: %#v", msg)
	}
}

func (c *Copilot) handleChat(ctx context.Context, msg bus.Message) {
	id, _ := msg.Payload["id"].(string)
	params := paramsFromPayload(msg.Payload["params"])

	userID := params["user_id"]
	sessionID := params["session_id"]
	message := params["message"]

	if sessionID == "" {
		sid, err := gonanoid.New()
		if err != nil {
			sid = randomID()
		}
		sessionID = sid
	}

	tctx := taskContext(id, ctx)

	history, err := c.st.RecentConversations(tctx, userID, sessionID, historyDepth)
	if err != nil {
		logx.Warn("Copilot", "history lookup failed user=%s session=%s: %v", userID, sessionID, err)
	}
	// RecentConversations devuelve lo más nuevo primero; el prompt lo quiere
	// en orden cronológico
	for l, r := 0, len(history)-1; l < r; l, r = l+1, r-1 {
		history[l], history[r] = history[r], history[l]
	}

	prompt := buildChatContext(message, history)

	timer := logx.Start(id, "Copilot", "ChatLLM")
	out, err := c.client.Chat(tctx, llm.Request{
		Prompt:      prompt,
		MaxTokens:   c.env.LLMMaxTokens,
		Temperature: c.env.LLMTemperature,
	})
	timer.End()

	reply := copilotApology
	if err != nil {
		logx.Error("Copilot", "chat failed id=%s: %v", id, err)
	} else {
		reply = FormatReply(out)
	}

	if err := c.st.SaveConversation(tctx, database.Conversation{
		UserID:           userID,
		SessionID:        sessionID,
		UserMessage:      message,
		AssistantMessage: reply,
	}); err != nil {
		logx.Warn("Copilot", "saving conversation failed: %v", err)
	}

	c.uiStore.AddEvent(id, "Copilot", "reply", preview(reply), "")

	finish(id, guard.OpChat, Result{
		Status: "ok",
		Data: map[string]any{
			"reply":      reply,
			"session_id": sessionID,
		},
	})
}

func buildChatContext(message string, history []database.Conversation) string {
	var b strings.Builder
	b.WriteString(copilotSystemPrompt)
	b.WriteString("\n\n")

	if len(history) > 0 {
		b.WriteString("Previous conversation:\n")
		for _, h := range history {
			fmt.Fprintf(&b, "User: %s\n", h.UserMessage)
			fmt.Fprintf(&b, "Assistant: %s\n\n", h.AssistantMessage)
		}
	}

	fmt.Fprintf(&b, "Current user message: %s\n\n", message)
	b.WriteString("Provide a helpful, personalized response as LaunchPad.AI:")
	return b.String()
}

// FormatReply separa las listas numeradas en líneas propias cuando la
// respuesta habla de pasos o recomendaciones.
func FormatReply(response string) string {
	formatted := strings.TrimSpace(response)

	lower := strings.ToLower(formatted)
	if strings.Contains(lower, "steps") || strings.Contains(lower, "recommendations") {
		formatted = strings.ReplaceAll(formatted, "1.", "\n1.")
		formatted = strings.ReplaceAll(formatted, "2.", "\n2.")
		formatted = strings.ReplaceAll(formatted, "3.", "\n3.")
	}
	return formatted
}
