package pages

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"platecheck/internal/nutrition"
	"platecheck/internal/views/theme"
	"platecheck/internal/workspace"
)

func sampleSnapshot() workspace.Snapshot {
	result := nutrition.NormalizeAt(nutrition.RawResponse{
		{Name: "Banana", Payload: nutrition.RawFoodPayload{
			Primary:  nutrition.RawServing{"serving_description": "1 medium", "calories": "105"},
			Quantity: 2.0,
		}},
	}, time.UnixMilli(5))
	return workspace.Snapshot{
		Items:   result.Items,
		Totals:  nutrition.Summarize(result.Items),
		Skipped: []nutrition.SkippedItem{{Name: "Mystery"}},
		Upload:  1,
	}
}

func TestHomeRendersEmptyState(t *testing.T) {
	var buf bytes.Buffer
	data := PageData{Palette: theme.Resolve(""), UploadField: "image", UploadEnabled: true}
	if err := Home(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render home: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `id="upload-form"`) {
		t.Fatalf("expected upload form: %s", out)
	}
	if !strings.Contains(out, "Upload a photo of your meal") {
		t.Fatalf("expected empty state: %s", out)
	}
}

func TestResultsRendersCardsAndTotal(t *testing.T) {
	var buf bytes.Buffer
	data := PageData{Snapshot: sampleSnapshot(), Palette: theme.Resolve(""), Message: Message{Kind: "info", Text: "Found 1 food."}}
	if err := Results(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render results: %v", err)
	}
	out := buf.String()
	for _, token := range []string{"Found 1 food.", "Mystery", `<span data-field="total-calories">210</span>`, `id="item-Banana-5-1"`} {
		if !strings.Contains(out, token) {
			t.Fatalf("expected output to contain %q: %s", token, out)
		}
	}
	if strings.Contains(out, `hx-swap-oob`) {
		t.Fatalf("expected in-band total on full results: %s", out)
	}
}

func TestResultsAfterEmptyScan(t *testing.T) {
	var buf bytes.Buffer
	data := PageData{Snapshot: workspace.Snapshot{Upload: 3}, Palette: theme.Resolve("")}
	if err := Results(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render results: %v", err)
	}
	if !strings.Contains(buf.String(), "No foods with nutrition data") {
		t.Fatalf("expected empty-scan message: %s", buf.String())
	}
}

func TestItemUpdateIncludesOutOfBandTotal(t *testing.T) {
	snapshot := sampleSnapshot()
	var buf bytes.Buffer
	if err := ItemUpdate(snapshot.Items[0], snapshot.Totals, theme.Resolve("")).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render item update: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `id="item-Banana-5-1"`) || !strings.Contains(out, `hx-swap-oob="true"`) {
		t.Fatalf("expected card and oob total: %s", out)
	}
}
