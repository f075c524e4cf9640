package llm

import (
    "encoding/json"
    "testing"
)

func TestBuildModelBody_Nova(t *testing.T) {
    body, err := buildModelBody("nova", Request{System: "copilot", Prompt: "hello", MaxTokens: 500, Temperature: 0.3})
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }

    var got map[string]any
    if err := json.Unmarshal(body, &got); err != nil {
        t.Fatalf("body is not JSON: %v", err)
    }

    msgs := got["messages"].([]any)
    first := msgs[0].(map[string]any)
    if first["role"] != "user" {
        t.Fatalf("unexpected role: %v", first["role"])
    }
    content := first["content"].([]any)[0].(map[string]any)
    if content["text"] != "hello" {
        t.Fatalf("prompt not in body: %v", content)
    }

    inf := got["inferenceConfig"].(map[string]any)
    if inf["maxTokens"].(float64) != 500 || inf["temperature"].(float64) != 0.3 {
        t.Fatalf("inference config wrong: %v", inf)
    }

    sys := got["system"].([]any)[0].(map[string]any)
    if sys["text"] != "copilot" {
        t.Fatalf("system not in body: %v", sys)
    }
}

func TestBuildModelBody_Anthropic(t *testing.T) {
    body, err := buildModelBody("anthropic", Request{Prompt: "hello"})
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }

    var got map[string]any
    if err := json.Unmarshal(body, &got); err != nil {
        t.Fatalf("body is not JSON: %v", err)
    }
    if got["anthropic_version"] != "bedrock-2023-05-31" {
        t.Fatalf("missing anthropic_version: %v", got)
    }
    if got["max_tokens"].(float64) != 1000 {
        t.Fatalf("zero max_tokens should default to 1000, got %v", got["max_tokens"])
    }
    content := got["messages"].([]any)[0].(map[string]any)["content"].([]any)[0].(map[string]any)
    if content["type"] != "text" || content["text"] != "hello" {
        t.Fatalf("unexpected content: %v", content)
    }
}

func TestBuildModelBody_UnknownFormat(t *testing.T) {
    if _, err := buildModelBody("titan", Request{Prompt: "x"}); err == nil {
        t.Fatalf("expected error for unknown format")
    }
}

func TestParseModelOutput_Nova(t *testing.T) {
    raw := []byte(`{"output":{"message":{"content":[{"text":"ok nova"}]}}}`)
    out, err := parseModelOutput("nova", raw)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if out != "ok nova" {
        t.Fatalf("unexpected output: %q", out)
    }
}

func TestParseModelOutput_Anthropic(t *testing.T) {
    raw := []byte(`{"content":[{"type":"text","text":"ok claude"}]}`)
    out, err := parseModelOutput("anthropic", raw)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if out != "ok claude" {
        t.Fatalf("unexpected output: %q", out)
    }
}

func TestParseModelOutput_Empty(t *testing.T) {
    if _, err := parseModelOutput("nova", []byte(`{"output":{"message":{"content":[]}}}`)); err == nil {
        t.Fatalf("expected error on empty nova content")
    }
    if _, err := parseModelOutput("anthropic", []byte(`{"content":[]}`)); err == nil {
        t.Fatalf("expected error on empty anthropic content")
    }
}

func TestModelConfigs_KnownAliases(t *testing.T) {
    for _, alias := range []string{"nova-micro", "nova-lite", "claude-haiku", "claude-sonnet"} {
        mc, ok := modelConfigs[alias]
        if !ok {
            t.Fatalf("alias %s missing", alias)
        }
        if mc.ID == "" || (mc.Format != "nova" && mc.Format != "anthropic") {
            t.Fatalf("bad config for %s: %+v", alias, mc)
        }
    }
}

func TestResolveModel_OverridesWin(t *testing.T) {
    c := &BedrockClient{overrides: map[string]ModelSpec{
        "nova-micro": {ID: "us.amazon.nova-micro-v2:0", Format: "nova"},
        "mistral":    {ID: "mistral.mistral-large-2402-v1:0", Format: "nova"},
    }}

    // la tabla pisa el alias compilado
    mc, ok := c.resolveModel("nova-micro")
    if !ok || mc.ID != "us.amazon.nova-micro-v2:0" {
        t.Fatalf("override not applied: %+v ok=%v", mc, ok)
    }

    // alias nuevo que solo existe en la tabla
    if mc, ok := c.resolveModel("mistral"); !ok || mc.ID != "mistral.mistral-large-2402-v1:0" {
        t.Fatalf("table-only alias not resolved: %+v ok=%v", mc, ok)
    }

    // los compilados siguen resolviendo cuando la tabla no los menciona
    if mc, ok := c.resolveModel("claude-haiku"); !ok || mc.Format != "anthropic" {
        t.Fatalf("builtin alias lost: %+v ok=%v", mc, ok)
    }

    if _, ok := c.resolveModel("gpt-5"); ok {
        t.Fatalf("unknown alias should not resolve")
    }
}

func TestResolveModel_NoOverrides(t *testing.T) {
    c := &BedrockClient{}
    if mc, ok := c.resolveModel("nova-lite"); !ok || mc.ID != "amazon.nova-lite-v1:0" {
        t.Fatalf("builtin resolution broken: %+v ok=%v", mc, ok)
    }
}
