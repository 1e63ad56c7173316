package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"
	"gorm.io/gorm"

	"platecheck/internal/archive"
	"platecheck/internal/scans"
	"platecheck/internal/workspace"
)

const (
	sessionWorkspaceKey = "workspace:id"
	sessionThemeKey     = "prefs:theme"
)

var errSessionUnavailable = errors.New("session manager not configured")

var (
	sessionManager *scs.SessionManager
	scanLog        *scans.Log
	workspaces     = workspace.NewRegistry(workspace.Options{})
	archiver       archive.Archiver = archive.Disabled{}
)

// Configure installs the shared dependencies used by the HTTP handlers. A nil
// database disables the scan log.
func Configure(sm *scs.SessionManager, db *gorm.DB) {
	sessionManager = sm
	scanLog = scans.NewLog(db)
}

// ConfigureWorkspaces installs the registry that owns per-session result sets.
func ConfigureWorkspaces(registry *workspace.Registry) {
	if registry == nil {
		registry = workspace.NewRegistry(workspace.Options{})
	}
	workspaces = registry
}

// ConfigureArchive installs the uploaded photo archive. Nil disables archiving.
func ConfigureArchive(a archive.Archiver) {
	if a == nil {
		a = archive.Disabled{}
	}
	archiver = a
}

// currentWorkspace returns the workspace bound to the request's session,
// creating and binding a fresh one when none is live.
func currentWorkspace(r *http.Request) (*workspace.Workspace, error) {
	if sessionManager == nil {
		return nil, errSessionUnavailable
	}
	id := sessionManager.GetString(r.Context(), sessionWorkspaceKey)
	ws, created := workspaces.Resolve(id)
	if created {
		sessionManager.Put(r.Context(), sessionWorkspaceKey, ws.ID())
	}
	return ws, nil
}

// existingWorkspace returns the bound workspace without creating one.
func existingWorkspace(r *http.Request) (*workspace.Workspace, bool) {
	if sessionManager == nil {
		return nil, false
	}
	id := strings.TrimSpace(sessionManager.GetString(r.Context(), sessionWorkspaceKey))
	return workspaces.Get(id)
}

func sessionTheme(r *http.Request) string {
	if sessionManager == nil {
		return ""
	}
	return sessionManager.GetString(r.Context(), sessionThemeKey)
}

func setSessionTheme(r *http.Request, key string) {
	if sessionManager == nil {
		return
	}
	sessionManager.Put(r.Context(), sessionThemeKey, key)
}
