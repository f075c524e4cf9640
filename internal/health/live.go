package health

import "net/http"

// LiveHandler contesta siempre 200: el proceso está vivo.
func LiveHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(200)
	w.Write([]byte(`{"status": "ok"}`))
}
