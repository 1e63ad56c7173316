package handlers

import (
	"net/http"

	applog "platecheck/internal/log"
	"platecheck/internal/views/pages"
)

// Home renders the scan page with the session's current result set.
func Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ws, err := currentWorkspace(r)
	if err != nil {
		applog.Error(r.Context(), "workspace unavailable", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	renderResults(w, r, ws.Snapshot(), pages.Message{})
}
