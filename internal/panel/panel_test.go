package panel

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"termslens/internal/pipeline"
	"termslens/internal/risk"
)

func TestRegistryEnsureIsIdempotent(t *testing.T) {
	reg := NewRegistry()
	first, created := reg.Ensure("tab-1")
	if !created {
		t.Fatalf("expected first Ensure to create the panel")
	}
	second, created := reg.Ensure("tab-1")
	if created || second != first {
		t.Fatalf("expected second Ensure to reuse the panel")
	}
	if !reg.Exists("tab-1") || reg.Exists("tab-2") {
		t.Fatalf("unexpected Exists results")
	}
	if !reg.Remove("tab-1") || reg.Remove("tab-1") {
		t.Fatalf("expected Remove to succeed once")
	}
	if _, ok := reg.Get("tab-1"); ok {
		t.Fatalf("expected panel to be gone")
	}
}

func TestRegistryConcurrentEnsure(t *testing.T) {
	reg := NewRegistry()
	var wg sync.WaitGroup
	var mu sync.Mutex
	createdCount := 0
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, created := reg.Ensure("shared"); created {
				mu.Lock()
				createdCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if createdCount != 1 {
		t.Fatalf("expected exactly one creation, got %d", createdCount)
	}
	if diff := cmp.Diff([]string{"shared"}, reg.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestPanelRender(t *testing.T) {
	p, _ := NewRegistry().Ensure("tab-9")
	var buf bytes.Buffer
	if err := p.Render(&buf); !errors.Is(err, ErrEmptyPanel) {
		t.Fatalf("expected ErrEmptyPanel, got %v", err)
	}

	p.Show(pipeline.Result{
		Summary:     "Fees <apply>.",
		Explanation: "this means you pay",
		Language:    "en",
		Classification: risk.Result{
			Overall: risk.SeverityDanger,
			Items: []risk.Finding{
				{Category: risk.CategoryWaiver, Severity: risk.SeverityDanger, Explanation: "You may be giving up important legal rights."},
			},
		},
		SummarySource: pipeline.SourceLocal,
	})
	if _, ok := p.Result(); !ok {
		t.Fatalf("expected stored result")
	}
	buf.Reset()
	if err := p.Render(&buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`data-panel="tab-9"`, "Risk: danger", "Fees &lt;apply&gt;.", `class="sev-danger"`, "waiver", "source: local"} {
		if !strings.Contains(out, want) {
			t.Fatalf("render missing %q:\n%s", want, out)
		}
	}
}

func TestPanelRenderSafe(t *testing.T) {
	p, _ := NewRegistry().Ensure("tab-safe")
	p.Show(pipeline.Result{Classification: risk.Result{Overall: risk.SeveritySafe, Items: []risk.Finding{}}})
	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No risky clauses found.") {
		t.Fatalf("expected safe message:\n%s", buf.String())
	}
}
