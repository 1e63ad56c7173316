package workspace

import (
	"errors"
	"testing"
	"time"

	"platecheck/internal/nutrition"
)

func sampleResult(name string, calories float64) nutrition.Result {
	return nutrition.NormalizeAt(nutrition.RawResponse{{
		Name: name,
		Payload: nutrition.RawFoodPayload{
			Secondary: []nutrition.RawServing{
				{"serving_description": "1 cup", "calories": calories},
				{"serving_description": "1 tbsp", "calories": 15.0},
			},
			Quantity: 3.0,
		},
	}}, time.UnixMilli(1000))
}

func newTestRegistry(now *time.Time) *Registry {
	return NewRegistry(Options{
		IdleTimeout: time.Hour,
		Now:         func() time.Time { return *now },
	})
}

func TestCommitReplacesResultSet(t *testing.T) {
	t.Parallel()

	now := time.Unix(100, 0)
	ws := newTestRegistry(&now).Create()

	ticket, err := ws.BeginUpload()
	if err != nil {
		t.Fatalf("BeginUpload() error = %v", err)
	}
	snapshot, err := ws.Commit(ticket, sampleResult("Rice", 200), now)
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if len(snapshot.Items) != 1 || snapshot.Totals.Calories != 600 {
		t.Fatalf("unexpected snapshot: %+v", snapshot)
	}
	if snapshot.Upload != ticket.Seq {
		t.Fatalf("Upload = %d, want %d", snapshot.Upload, ticket.Seq)
	}
}

func TestStaleUploadDoesNotOverwriteNewerResult(t *testing.T) {
	t.Parallel()

	now := time.Unix(100, 0)
	ws := newTestRegistry(&now).Create()

	older, _ := ws.BeginUpload()
	newer, _ := ws.BeginUpload()

	if _, err := ws.Commit(newer, sampleResult("Pasta", 300), now); err != nil {
		t.Fatalf("Commit(newer) error = %v", err)
	}
	snapshot, err := ws.Commit(older, sampleResult("Rice", 200), now)
	if !errors.Is(err, ErrStaleUpload) {
		t.Fatalf("Commit(older) error = %v, want ErrStaleUpload", err)
	}
	if snapshot.Items[0].Name != "Pasta" {
		t.Fatalf("expected newer result to survive, got %q", snapshot.Items[0].Name)
	}
}

func TestStaleUploadBeforeNewerCommitIsDiscarded(t *testing.T) {
	t.Parallel()

	now := time.Unix(100, 0)
	ws := newTestRegistry(&now).Create()

	older, _ := ws.BeginUpload()
	_, _ = ws.BeginUpload()

	if _, err := ws.Commit(older, sampleResult("Rice", 200), now); !errors.Is(err, ErrStaleUpload) {
		t.Fatalf("Commit(older) error = %v, want ErrStaleUpload", err)
	}
	if !ws.Snapshot().Empty() {
		t.Fatal("expected workspace to remain empty")
	}
}

func TestEditsRecomputeTotals(t *testing.T) {
	t.Parallel()

	now := time.Unix(100, 0)
	ws := newTestRegistry(&now).Create()
	ticket, _ := ws.BeginUpload()
	snapshot, _ := ws.Commit(ticket, sampleResult("Rice", 200), now)
	id := snapshot.Items[0].ID

	change := ws.SetServingSize(id, "1 tbsp")
	if !change.Applied || change.Item.Calories != 45 || change.Totals.Calories != 45 {
		t.Fatalf("SetServingSize() = %+v", change)
	}

	change = ws.SetQuantity(id, -100, 0)
	if change.Item.Quantity != 1 || change.Totals.Calories != 15 {
		t.Fatalf("SetQuantity() = %+v", change)
	}

	change = ws.SetIncluded(id, false)
	if change.Totals.Calories != 0 || change.Item.Included {
		t.Fatalf("SetIncluded() = %+v", change)
	}

	change = ws.SetServingSize(id, "1 gallon")
	if change.Applied {
		t.Fatal("expected unknown serving to be ignored")
	}
	if change.Item.SelectedServing != "1 tbsp" {
		t.Fatalf("expected current item to be reported, got %+v", change.Item)
	}

	if change := ws.SetQuantity("missing", 1, 0); change.Applied || change.Item.ID != "" {
		t.Fatalf("expected unknown id to be ignored, got %+v", change)
	}
}

func TestBeginUploadRateLimited(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(Options{UploadsPerMinute: 0.001, UploadBurst: 2})
	ws := registry.Create()

	for i := 0; i < 2; i++ {
		if _, err := ws.BeginUpload(); err != nil {
			t.Fatalf("BeginUpload() #%d error = %v", i+1, err)
		}
	}
	if _, err := ws.BeginUpload(); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestResetClearsResultSet(t *testing.T) {
	t.Parallel()

	now := time.Unix(100, 0)
	ws := newTestRegistry(&now).Create()
	ticket, _ := ws.BeginUpload()
	_, _ = ws.Commit(ticket, sampleResult("Rice", 200), now)

	ws.Reset()
	if !ws.Snapshot().Empty() {
		t.Fatal("expected reset workspace to be empty")
	}
}

func TestResetDiscardsInFlightUpload(t *testing.T) {
	t.Parallel()

	now := time.Unix(100, 0)
	ws := newTestRegistry(&now).Create()
	first, _ := ws.BeginUpload()
	_, _ = ws.Commit(first, sampleResult("Rice", 200), now)

	inFlight, _ := ws.BeginUpload()
	ws.Reset()

	if _, err := ws.Commit(inFlight, sampleResult("Soup", 90), now); !errors.Is(err, ErrStaleUpload) {
		t.Fatalf("expected ErrStaleUpload, got %v", err)
	}
	snapshot := ws.Snapshot()
	if !snapshot.Empty() || snapshot.Upload != 0 {
		t.Fatalf("expected reset workspace to stay empty, got %+v", snapshot)
	}

	next, _ := ws.BeginUpload()
	if _, err := ws.Commit(next, sampleResult("Soup", 90), now); err != nil {
		t.Fatalf("Commit() after reset error = %v", err)
	}
}

func TestRegistryResolveAndSweep(t *testing.T) {
	t.Parallel()

	now := time.Unix(100, 0)
	registry := newTestRegistry(&now)

	ws, created := registry.Resolve("")
	if !created || ws.ID() == "" {
		t.Fatal("expected a new workspace for an empty id")
	}
	again, created := registry.Resolve(ws.ID())
	if created || again != ws {
		t.Fatal("expected existing workspace to be returned")
	}
	if _, ok := registry.Get("unknown"); ok {
		t.Fatal("expected unknown id to miss")
	}

	now = now.Add(2 * time.Hour)
	if removed := registry.Sweep(); removed != 1 {
		t.Fatalf("Sweep() removed %d, want 1", removed)
	}
	if registry.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", registry.Len())
	}
	if _, created := registry.Resolve(ws.ID()); !created {
		t.Fatal("expected evicted workspace to be recreated")
	}
}
