package app

import (
    "context"
    "net/http"
    "strconv"
    "strings"

    "time"

    "github.com/launchpad-ai/launchpad/internal/agent"
    "github.com/launchpad-ai/launchpad/internal/config"
    "github.com/launchpad-ai/launchpad/internal/health"
    "github.com/launchpad-ai/launchpad/internal/logx"
    "github.com/launchpad-ai/launchpad/internal/metrics"
    "github.com/launchpad-ai/launchpad/internal/runtime"
    "github.com/launchpad-ai/launchpad/internal/ui"
)

type HTTPServer struct {
    srv *http.Server
}

// httpPort holds an explicit port override. Empty means use PORT from the env.
var httpPort = ""

// SetHTTPPort allows overriding the configured HTTP port before starting the app.
func SetHTTPPort(p string) {
    if p == "" {
        return
    }
    httpPort = p
}

func NewHTTPServer(env *config.EnvVars, apiAgent *agent.APIAgent, uiStore *ui.UIStore, rt *runtime.Runtime) *HTTPServer {
    mux := http.NewServeMux()

    apiAgent.RegisterHTTP(mux)
    mux.HandleFunc("/ui", uiStore.HandleIndex)
    mux.HandleFunc("/ui/task", uiStore.HandleTask)
    mux.HandleFunc("/metrics", metrics.ServeHTTP)
    mux.HandleFunc("/health/live", health.LiveHandler)
    mux.HandleFunc("/health/ready", health.ReadyHandler(rt))

    // Wrap with metrics, then security middleware
    hardened := secureMiddleware(metricsMiddleware(mux))

    port := httpPort
    if port == "" {
        port = strconv.Itoa(env.Port)
    }

    return &HTTPServer{
        srv: &http.Server{
            Addr:              ":" + port,
            Handler:           hardened,
            ReadHeaderTimeout: 5 * time.Second,
            ReadTimeout:       env.ReadTimeout,
            WriteTimeout:      env.WriteTimeout,
            IdleTimeout:       60 * time.Second,
            MaxHeaderBytes:    1 << 20, // 1MB
        },
    }
}

func (h *HTTPServer) Start(ctx context.Context) error {
    errCh := make(chan error, 1)

    go func() {
        logx.Info("HTTP", "listening on %s", h.srv.Addr)
        errCh <- h.srv.ListenAndServe()
    }()

    select {
    case err := <-errCh:
        return err
    case <-ctx.Done():
        logx.Info("HTTP", "shutting down server...")
        shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        return h.srv.Shutdown(shutCtx)
    }
}

// secureMiddleware adds basic hardening to HTTP server:
// - Common security headers
// - Body size limit
// - Block TRACE method
func secureMiddleware(next http.Handler) http.Handler {
    const maxBody = 1 << 20 // 1MB
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        // Block TRACE to avoid request smuggling tricks
        if r.Method == http.MethodTrace {
            w.WriteHeader(http.StatusMethodNotAllowed)
            return
        }

        // Limit body size early
        if r.Body != nil {
            r.Body = http.MaxBytesReader(w, r.Body, maxBody)
        }

        // Security headers
        w.Header().Set("X-Content-Type-Options", "nosniff")
        w.Header().Set("X-Frame-Options", "DENY")
        w.Header().Set("Referrer-Policy", "no-referrer")
        // Modern browsers ignore X-XSS-Protection; set to 0 to disable legacy filter quirks
        w.Header().Set("X-XSS-Protection", "0")
        // A conservative CSP that should not break our minimal UI
        w.Header().Set("Content-Security-Policy", "default-src 'self'; img-src 'self' data:; style-src 'self' 'unsafe-inline'; script-src 'self' 'unsafe-inline'")
        // HSTS only when TLS is enabled
        if r.TLS != nil {
            w.Header().Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains; preload")
        }

        next.ServeHTTP(w, r)
    })
}

// metricsMiddleware cuenta cada petición y su duración, por método, ruta y status.
func metricsMiddleware(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        start := time.Now()
        sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

        next.ServeHTTP(sw, r)

        lbls := map[string]string{
            "method": r.Method,
            "path":   metricPath(r.URL.Path),
            "status": strconv.Itoa(sw.status),
        }
        metrics.HTTPRequests.Inc(lbls)
        metrics.HTTPDuration.Observe(lbls, time.Since(start).Seconds())
    })
}

type statusWriter struct {
    http.ResponseWriter
    status int
}

func (w *statusWriter) WriteHeader(code int) {
    w.status = code
    w.ResponseWriter.WriteHeader(code)
}

// metricPath colapsa los identificadores de la ruta para no disparar la
// cardinalidad de las etiquetas.
func metricPath(p string) string {
    for _, prefix := range []string{"/v1/profiles/", "/v1/applications/", "/v1/resumes/"} {
        if strings.HasPrefix(p, prefix) && len(p) > len(prefix) {
            return prefix + ":id"
        }
    }
    return p
}
