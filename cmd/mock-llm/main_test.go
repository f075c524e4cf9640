package main

import (
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
)

func TestBuildMux_ServesOpenAISurface(t *testing.T) {
    mux := buildMux()
    server := httptest.NewServer(mux)
    defer server.Close()

    resp, err := http.Get(server.URL + "/v1/models")
    if err != nil { t.Fatalf("GET failed: %v", err) }
    defer resp.Body.Close()

    if resp.StatusCode != http.StatusOK {
        t.Fatalf("unexpected status: %d", resp.StatusCode)
    }

    var out map[string]any
    if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
        t.Fatalf("decode: %v", err)
    }
    if out["object"] != "list" {
        t.Fatalf("expected model list, got %v", out)
    }
}

func TestBuildMux_ChatCompletionsAnswers(t *testing.T) {
    mux := buildMux()
    server := httptest.NewServer(mux)
    defer server.Close()

    body := `{"model":"mock-llm","messages":[{"role":"user","content":"Analyze the following text and extract skills in these categories: ..."}]}`
    resp, err := http.Post(server.URL+"/v1/chat/completions", "application/json", strings.NewReader(body))
    if err != nil { t.Fatalf("POST failed: %v", err) }
    defer resp.Body.Close()

    var out struct {
        Choices []struct {
            Message struct {
                Content string `json:"content"`
            } `json:"message"`
        } `json:"choices"`
    }
    if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
        t.Fatalf("decode: %v", err)
    }
    if len(out.Choices) == 0 || !strings.Contains(out.Choices[0].Message.Content, "Technical Skills") {
        t.Fatalf("expected skills json reply, got %+v", out)
    }
}
