package app

import (
    "context"
    "io"
    "net/http"
    "net/http/httptest"
    "os"
    "path/filepath"
    "runtime"
    "strings"
    "testing"
    "time"

    "github.com/launchpad-ai/launchpad/internal/agent"
    "github.com/launchpad-ai/launchpad/internal/bus"
)

// fakeAgent implements agent.Agent for testing App.Run lifecycle.
type fakeAgent struct{
    started bool
    ch chan bus.Message
}

func (f *fakeAgent) Start(ctx context.Context) error {
    f.started = true
    <-ctx.Done()
    return nil
}

func (f *fakeAgent) Inbox() chan bus.Message {
    if f.ch == nil {
        f.ch = make(chan bus.Message, 1)
    }
    return f.ch
}

var _ agent.Agent = (*fakeAgent)(nil)

// chdirToRepoRoot ensures relative paths like "definitions/..." resolve during tests.
func chdirToRepoRoot(t *testing.T) {
    t.Helper()
    _, file, _, _ := runtime.Caller(0)
    root := filepath.Clean(filepath.Join(filepath.Dir(file), "../.."))
    if err := os.Chdir(root); err != nil {
        t.Fatalf("chdir to repo root: %v", err)
    }
}

// newTestApp construye la app completa sin depender de servicios externos:
// ollama como proveedor (el cliente no toca la red al construirse) y store
// en memoria.
func newTestApp(t *testing.T) *App {
    t.Helper()
    chdirToRepoRoot(t)
    t.Setenv("LLM_PROVIDERS", "ollama")
    t.Setenv("DB_URL", "")
    t.Setenv("S3_BUCKET", "")
    t.Setenv("AMQP_URL", "")

    a, err := New()
    if err != nil {
        t.Fatalf("New() returned error: %v", err)
    }
    return a
}

func TestNew_ConstructsApp(t *testing.T) {
    a := newTestApp(t)

    if a.cfg == nil || a.env == nil || a.bus == nil || a.ui == nil || a.llm == nil || a.st == nil || a.http == nil {
        t.Fatalf("expected non-nil components: cfg=%v env=%v bus=%v ui=%v llm=%v st=%v http=%v",
            a.cfg, a.env, a.bus, a.ui, a.llm, a.st, a.http)
    }
    if len(a.agents) != 7 {
        t.Fatalf("expected 7 agents, got %d", len(a.agents))
    }
    if a.pub != nil {
        t.Fatalf("expected no queue publisher without AMQP_URL")
    }
}

func TestHTTPServer_Routes_LiveOK(t *testing.T) {
    a := newTestApp(t)

    // Wrap the app's HTTP handler into a test server to avoid binding real ports.
    ts := httptest.NewServer(a.Handler())
    defer ts.Close()

    resp, err := http.Get(ts.URL + "/health/live")
    if err != nil { t.Fatalf("GET /health/live failed: %v", err) }
    defer resp.Body.Close()
    if resp.StatusCode != http.StatusOK {
        t.Fatalf("expected 200, got %d", resp.StatusCode)
    }
}

func TestHTTPServer_MetricsEndpoint(t *testing.T) {
    a := newTestApp(t)

    ts := httptest.NewServer(a.Handler())
    defer ts.Close()

    // La primera petición genera al menos un contador HTTP.
    if _, err := http.Get(ts.URL + "/health/live"); err != nil {
        t.Fatalf("GET /health/live failed: %v", err)
    }

    resp, err := http.Get(ts.URL + "/metrics")
    if err != nil { t.Fatalf("GET /metrics failed: %v", err) }
    defer resp.Body.Close()
    if resp.StatusCode != http.StatusOK {
        t.Fatalf("expected 200, got %d", resp.StatusCode)
    }
    body, _ := io.ReadAll(resp.Body)
    if !strings.Contains(string(body), "launchpad_http_requests_total") {
        t.Fatalf("expected http request counter in metrics output, got:\n%s", body)
    }
}

func TestAppRun_StartsAgentsAndHTTP_AndStopsOnContextCancel(t *testing.T) {
    // Construct a minimal App that uses fake agents and an HTTP server that listens on a random port.
    f1, f2 := &fakeAgent{}, &fakeAgent{}

    mux := http.NewServeMux()
    mux.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

    a := &App{
        agents: []agent.Agent{f1, f2},
        http: &HTTPServer{srv: &http.Server{Addr: "127.0.0.1:0", Handler: mux}},
    }

    ctx, cancel := context.WithCancel(context.Background())
    done := make(chan error, 1)
    go func() { done <- a.Run(ctx) }()

    // Give some time for goroutines to start.
    time.Sleep(50 * time.Millisecond)
    if !f1.started || !f2.started {
        t.Fatalf("expected both fake agents to have started, got f1=%v f2=%v", f1.started, f2.started)
    }

    // Cancel the context and expect Run to return cleanly.
    cancel()

    select {
    case err := <-done:
        if err != nil {
            t.Fatalf("Run returned error after cancel: %v", err)
        }
    case <-time.After(2 * time.Second):
        t.Fatal("timeout waiting for Run to return after cancel")
    }
}

func TestMetricPath_CollapsesIDs(t *testing.T) {
    cases := map[string]string{
        "/v1/chat":                    "/v1/chat",
        "/v1/profiles/alice":          "/v1/profiles/:id",
        "/v1/applications/123e4567":   "/v1/applications/:id",
        "/v1/resumes/123e4567":        "/v1/resumes/:id",
        "/v1/documents/generate":      "/v1/documents/generate",
        "/v1/profiles/":               "/v1/profiles/",
    }
    for in, want := range cases {
        if got := metricPath(in); got != want {
            t.Fatalf("metricPath(%q) = %q, want %q", in, got, want)
        }
    }
}
