package workspace

import (
	"strings"
	"sync"
	"time"

	"github.com/segmentio/ksuid"
	"golang.org/x/time/rate"
)

const defaultIdleTimeout = 12 * time.Hour

// Options configure a Registry.
type Options struct {
	// IdleTimeout evicts workspaces not touched for this long.
	IdleTimeout time.Duration
	// UploadsPerMinute limits uploads per workspace; zero or less disables the limit.
	UploadsPerMinute float64
	UploadBurst      int
	Now              func() time.Time
}

// Registry holds the live workspaces keyed by id.
type Registry struct {
	mu         sync.Mutex
	workspaces map[string]*Workspace
	idle       time.Duration
	limit      rate.Limit
	burst      int
	now        func() time.Time
	lastSweep  time.Time
}

// NewRegistry builds an empty registry.
func NewRegistry(opts Options) *Registry {
	idle := opts.IdleTimeout
	if idle <= 0 {
		idle = defaultIdleTimeout
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	limit := rate.Inf
	if opts.UploadsPerMinute > 0 {
		limit = rate.Limit(opts.UploadsPerMinute / 60)
	}
	burst := opts.UploadBurst
	if burst <= 0 {
		burst = 1
	}
	return &Registry{
		workspaces: make(map[string]*Workspace),
		idle:       idle,
		limit:      limit,
		burst:      burst,
		now:        now,
		lastSweep:  now(),
	}
}

// Get returns the workspace for id if it is still live.
func (r *Registry) Get(id string) (*Workspace, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, false
	}
	r.mu.Lock()
	ws, ok := r.workspaces[id]
	r.mu.Unlock()
	if ok {
		ws.touch(r.now())
	}
	return ws, ok
}

// Create registers a fresh workspace with a new id.
func (r *Registry) Create() *Workspace {
	now := r.now()
	ws := newWorkspace(ksuid.New().String(), rate.NewLimiter(r.limit, r.burst), now)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.workspaces[ws.id] = ws
	if now.Sub(r.lastSweep) >= r.idle/4 {
		r.sweepLocked(now)
	}
	return ws
}

// Resolve returns the workspace for id, creating a new one when id is unknown
// or expired. The boolean reports whether a workspace was created.
func (r *Registry) Resolve(id string) (*Workspace, bool) {
	if ws, ok := r.Get(id); ok {
		return ws, false
	}
	return r.Create(), true
}

// Sweep evicts idle workspaces and returns how many were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sweepLocked(r.now())
}

// Len returns the number of live workspaces.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.workspaces)
}

func (r *Registry) sweepLocked(now time.Time) int {
	removed := 0
	for id, ws := range r.workspaces {
		if now.Sub(ws.idleSince()) > r.idle {
			delete(r.workspaces, id)
			removed++
		}
	}
	r.lastSweep = now
	return removed
}
