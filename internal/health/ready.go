package health

import (
	"net/http"

	"github.com/launchpad-ai/launchpad/internal/runtime"
)

// ReadyHandler solo devuelve 200 cuando las definiciones están cargadas,
// el LLM responde y la base de datos (si hay) hace ping.
func ReadyHandler(rt *runtime.Runtime) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		if !rt.SpecsLoaded {
			http.Error(w, "definitions not loaded", 503)
			return
		}

		if err := rt.LLMClient.Ping(r.Context()); err != nil {
			http.Error(w, "llm unreachable", 503)
			return
		}

		if rt.DB != nil {
			if err := rt.DB.Ping(r.Context()); err != nil {
				http.Error(w, "database unreachable", 503)
				return
			}
		}

		w.WriteHeader(200)
		w.Write([]byte(`{"status":"ready"}`))
	}
}
