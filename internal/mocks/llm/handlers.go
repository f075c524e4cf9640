package llm

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
)

// RegisterHandlers publica un proveedor falso con las dos superficies que los
// clientes reales hablan: la OpenAI-compatible y la de Ollama. Las respuestas
// se eligen por el contenido del prompt para que los pipelines completos
// funcionen en local sin ningún modelo de verdad.
func RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/v1/models", listModels)
	mux.HandleFunc("/v1/chat/completions", chatCompletions)
	mux.HandleFunc("/api/tags", listTags)
	mux.HandleFunc("/api/chat", ollamaChat)
}

func listModels(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"object": "list",
		"data": []map[string]any{
			{"id": "mock-llm", "object": "model"},
		},
	}
	json.NewEncoder(w).Encode(resp)
}

func listTags(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"models": []map[string]any{
			{"name": "mock-llm"},
		},
	}
	json.NewEncoder(w).Encode(resp)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func chatCompletions(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Model    string        `json:"model"`
		Messages []chatMessage `json:"messages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	reply := replyFor(body.Messages)
	log.Println("[MOCK LLM] openai chat,", len(reply), "chars")

	resp := map[string]any{
		"id":     "chatcmpl-mock",
		"object": "chat.completion",
		"model":  body.Model,
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": reply},
				"finish_reason": "stop",
			},
		},
	}
	json.NewEncoder(w).Encode(resp)
}

// ollamaChat responde en streaming NDJSON, troceando la respuesta igual que
// haría el servidor real.
func ollamaChat(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Model    string        `json:"model"`
		Messages []chatMessage `json:"messages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	reply := replyFor(body.Messages)
	log.Println("[MOCK LLM] ollama chat,", len(reply), "chars")

	w.Header().Set("Content-Type", "application/x-ndjson")
	enc := json.NewEncoder(w)

	for _, chunk := range splitChunks(reply, 80) {
		enc.Encode(map[string]any{
			"message": map[string]any{"role": "assistant", "content": chunk},
			"done":    false,
		})
	}
	enc.Encode(map[string]any{"done": true})
}

// splitChunks corta por runas para no partir caracteres multibyte.
func splitChunks(s string, size int) []string {
	runes := []rune(s)
	var out []string
	for len(runes) > 0 {
		n := size
		if n > len(runes) {
			n = len(runes)
		}
		out = append(out, string(runes[:n]))
		runes = runes[n:]
	}
	return out
}

// replyFor elige la respuesta enlatada según el prompt recibido.
func replyFor(messages []chatMessage) string {
	var b strings.Builder
	for _, m := range messages {
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	prompt := b.String()

	switch {
	case strings.Contains(prompt, "extract skills in these categories"):
		return skillsJSON
	case strings.Contains(prompt, "identify skill gaps"):
		return gapAnalysis
	case strings.Contains(prompt, "learning recommendations"):
		return learningRecs
	case strings.Contains(prompt, "Analyze this job opportunity"):
		return jobAnalysis
	case strings.Contains(prompt, "application tips"):
		return applicationTips
	case strings.Contains(prompt, "Evaluate this resume against"):
		return resumeMatchJSON
	case strings.Contains(prompt, "Analyze this user profile for career planning"):
		return profileAnalysis
	case strings.Contains(prompt, "suggest 3-5 specific career paths"):
		return careerSuggestions
	case strings.Contains(prompt, "career roadmap"):
		return careerRoadmap
	case strings.Contains(prompt, "Create a professional resume"):
		return resumeContent
	// "compelling" y no solo "cover letter": el prompt de sistema del copilot
	// menciona cover letters y no queremos robarle el turno de chat.
	case strings.Contains(prompt, "compelling cover letter"):
		return coverLetter
	case strings.Contains(prompt, "LinkedIn summary"):
		return linkedInSummary
	default:
		return mentorReply
	}
}
