package layout

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"platecheck/internal/views/theme"
)

func TestLayoutRendersProvidedContent(t *testing.T) {
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := w.Write([]byte("<section>cards</section>"))
		return err
	})

	var buf bytes.Buffer
	err := Layout("Plate <Check>", theme.Resolve("night"), content).Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("render layout: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<title>Plate &lt;Check&gt;</title>") {
		t.Fatalf("expected escaped document title to be rendered: %s", out)
	}
	if !strings.Contains(out, "<section>cards</section>") {
		t.Fatalf("expected content in output: %s", out)
	}
	if !strings.Contains(out, `data-theme="night"`) {
		t.Fatalf("expected theme key on body: %s", out)
	}
}
