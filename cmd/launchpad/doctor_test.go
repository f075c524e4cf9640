package main

import (
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
)

// fakeOllama answers the tags probe so the provider chain reports healthy.
func fakeOllama(t *testing.T) *httptest.Server {
    t.Helper()
    return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if r.URL.Path != "/api/tags" {
            http.NotFound(w, r)
            return
        }
        w.WriteHeader(http.StatusOK)
        w.Write([]byte(`{"models":[{"name":"mock"}]}`))
    }))
}

func TestDoctor_AllChecksPass(t *testing.T) {
    ts := fakeOllama(t)
    defer ts.Close()

    t.Setenv("LLM_PROVIDERS", "ollama")
    t.Setenv("OLLAMA_BASE_URL", ts.URL)
    t.Setenv("DB_URL", "")
    t.Setenv("S3_BUCKET", "")
    t.Setenv("AMQP_URL", "")

    var out strings.Builder
    if code := doctor(&out); code != 0 {
        t.Fatalf("expected exit 0, got %d\n%s", code, out.String())
    }
    report := out.String()
    if !strings.Contains(report, "all checks passed") {
        t.Fatalf("missing success line:\n%s", report)
    }
    // las piezas opcionales sin configurar avisan, no fallan
    if !strings.Contains(report, "DB_URL not set") || !strings.Contains(report, "S3_BUCKET not set") {
        t.Fatalf("missing optional warnings:\n%s", report)
    }
}

func TestDoctor_FailsWhenNoProviderAnswers(t *testing.T) {
    ts := fakeOllama(t)
    url := ts.URL
    ts.Close() // puerto muerto: el ping debe fallar

    t.Setenv("LLM_PROVIDERS", "ollama")
    t.Setenv("OLLAMA_BASE_URL", url)
    t.Setenv("DB_URL", "")
    t.Setenv("S3_BUCKET", "")
    t.Setenv("AMQP_URL", "")

    var out strings.Builder
    if code := doctor(&out); code != 1 {
        t.Fatalf("expected exit 1, got %d\n%s", code, out.String())
    }
    if !strings.Contains(out.String(), "some checks failed") {
        t.Fatalf("missing failure line:\n%s", out.String())
    }
}
