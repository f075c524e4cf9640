package main

import (
    "log"
    "net/http"

    mockLLM "github.com/launchpad-ai/launchpad/internal/mocks/llm"
)

var listenAndServe = http.ListenAndServe

func buildMux() *http.ServeMux {
    mux := http.NewServeMux()
    // superficie OpenAI (/v1/...) y Ollama (/api/...) en el mismo puerto
    mockLLM.RegisterHandlers(mux)
    return mux
}

func main() {
    mux := buildMux()
    log.Println("[MOCK LLM] listening on :9091")
    listenAndServe(":9091", mux)
}
