package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	applog "platecheck/internal/log"
	"platecheck/internal/nutrition"
	"platecheck/internal/views/pages"
	"platecheck/internal/views/theme"
	"platecheck/internal/workspace"
)

// ItemQuantity handles quantity edits. A non-zero "delta" steps the quantity;
// a zero or missing delta sets it to the "quantity" field.
func ItemQuantity(w http.ResponseWriter, r *http.Request) {
	handleItemEdit(w, r, func(ws *workspace.Workspace, itemID string) (workspace.Change, bool) {
		delta := parseFormInt(r, "delta", 0)
		entered := 0
		if delta == 0 {
			value, err := strconv.Atoi(strings.TrimSpace(r.FormValue("quantity")))
			if err != nil {
				applog.Debug(r.Context(), "ignoring non-numeric quantity", "value", r.FormValue("quantity"))
				return workspace.Change{}, false
			}
			entered = value
		}
		return ws.SetQuantity(itemID, delta, entered), true
	})
}

// ItemServing handles serving-size selection.
func ItemServing(w http.ResponseWriter, r *http.Request) {
	handleItemEdit(w, r, func(ws *workspace.Workspace, itemID string) (workspace.Change, bool) {
		return ws.SetServingSize(itemID, r.FormValue("serving")), true
	})
}

// ItemIncluded handles the include/exclude toggle.
func ItemIncluded(w http.ResponseWriter, r *http.Request) {
	handleItemEdit(w, r, func(ws *workspace.Workspace, itemID string) (workspace.Change, bool) {
		return ws.SetIncluded(itemID, parseFormBool(r.FormValue("included"))), true
	})
}

func handleItemEdit(w http.ResponseWriter, r *http.Request, apply func(*workspace.Workspace, string) (workspace.Change, bool)) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		applog.Error(r.Context(), "failed to parse item form", "error", err)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	itemID := strings.TrimSpace(r.PathValue("id"))
	ws, ok := existingWorkspace(r)
	if !ok || itemID == "" {
		applog.Debug(r.Context(), "edit for unknown workspace or item", "item", itemID)
		respondNoChange(w, r)
		return
	}

	change, ok := apply(ws, itemID)
	if !ok {
		if item, found := ws.Item(itemID); found {
			change = workspace.Change{Item: item, Totals: ws.Snapshot().Totals}
		}
	}
	if change.Item.ID == "" {
		applog.Debug(r.Context(), "edit for unknown item", "workspace", ws.ID(), "item", itemID)
		respondNoChange(w, r)
		return
	}

	if !isHTMX(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	renderComponent(w, r, pages.ItemUpdate(change.Item, change.Totals, theme.Resolve(sessionTheme(r))))
}

// respondNoChange tells htmx to leave the page alone; plain form posts go
// back to the page.
func respondNoChange(w http.ResponseWriter, r *http.Request) {
	if isHTMX(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type itemsResponse struct {
	Workspace string               `json:"workspace"`
	Upload    uint64               `json:"upload"`
	Items     []nutrition.FoodItem `json:"items"`
	Totals    nutrition.Totals     `json:"totals"`
	Skipped   []string             `json:"skipped"`
}

// ItemsJSON returns the session's result set as JSON.
func ItemsJSON(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	resp := itemsResponse{Items: []nutrition.FoodItem{}, Skipped: []string{}}
	if ws, ok := existingWorkspace(r); ok {
		snapshot := ws.Snapshot()
		resp.Workspace = snapshot.ID
		resp.Upload = snapshot.Upload
		resp.Items = append(resp.Items, snapshot.Items...)
		resp.Totals = snapshot.Totals
		for _, skipped := range snapshot.Skipped {
			resp.Skipped = append(resp.Skipped, skipped.Name)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		applog.Error(r.Context(), "failed to encode items response", "error", err)
	}
}

func parseFormInt(r *http.Request, key string, def int) int {
	return parseIntValue(r.FormValue(key), def)
}

func parseQueryInt(r *http.Request, key string, def int) int {
	return parseIntValue(r.URL.Query().Get(key), def)
}

func parseIntValue(value string, def int) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func parseFormBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}
