package handlers

import (
	"net/http"

	applog "platecheck/internal/log"
)

// Reset clears the session's result set and rotates the session token.
func Reset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if ws, ok := existingWorkspace(r); ok {
		ws.Reset()
		applog.Info(r.Context(), "result set cleared", "workspace", ws.ID())
	}
	if sessionManager != nil {
		if err := sessionManager.RenewToken(r.Context()); err != nil {
			applog.Error(r.Context(), "failed to renew session token", "error", err)
		}
	}

	redirectHome(w, r)
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", "/")
		w.WriteHeader(http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
