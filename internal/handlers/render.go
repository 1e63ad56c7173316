package handlers

import (
	"net/http"

	templpkg "github.com/a-h/templ"

	applog "platecheck/internal/log"
	"platecheck/internal/views/pages"
	"platecheck/internal/views/theme"
	"platecheck/internal/workspace"
)

func renderComponent(w http.ResponseWriter, r *http.Request, component templpkg.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render fragment", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func pageData(r *http.Request, snapshot workspace.Snapshot, message pages.Message) pages.PageData {
	return pages.PageData{
		Snapshot:      snapshot,
		Palette:       theme.Resolve(sessionTheme(r)),
		UploadField:   scanner.field(),
		UploadEnabled: scanner.enabled(),
		Message:       message,
	}
}

// renderResults answers htmx requests with the results region and plain
// requests with the full page.
func renderResults(w http.ResponseWriter, r *http.Request, snapshot workspace.Snapshot, message pages.Message) {
	data := pageData(r, snapshot, message)
	if isHTMX(r) {
		renderComponent(w, r, pages.Results(data))
		return
	}
	renderComponent(w, r, pages.Home(data))
}
