package panel

import (
	"errors"
	"html/template"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"

	"termslens/internal/pipeline"
	"termslens/internal/risk"
)

var ErrEmptyPanel = errors.New("panel has no result")

// Registry tracks open panels by id. Ensure is the only way to create one, so
// a second request for the same id reuses the existing panel.
type Registry struct {
	mu     sync.Mutex
	panels map[string]*Panel
	now    func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{panels: make(map[string]*Panel), now: time.Now}
}

// Ensure returns the panel for id, creating it if needed. created reports
// whether this call made it.
func (r *Registry) Ensure(id string) (*Panel, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.panels[id]; ok {
		return p, false
	}
	p := &Panel{id: id, createdAt: r.now(), now: r.now}
	r.panels[id] = p
	return p, true
}

func (r *Registry) Exists(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.panels[id]
	return ok
}

func (r *Registry) Get(id string) (*Panel, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.panels[id]
	return p, ok
}

func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.panels[id]; !ok {
		return false
	}
	delete(r.panels, id)
	return true
}

func (r *Registry) IDs() []string {
	r.mu.Lock()
	ids := lo.Keys(r.panels)
	r.mu.Unlock()
	sort.Strings(ids)
	return ids
}

type Panel struct {
	id        string
	createdAt time.Time
	now       func() time.Time

	mu        sync.RWMutex
	result    *pipeline.Result
	updatedAt time.Time
}

func (p *Panel) ID() string { return p.id }

// Show replaces the displayed result.
func (p *Panel) Show(result pipeline.Result) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.result = &result
	p.updatedAt = p.now()
}

func (p *Panel) Result() (pipeline.Result, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.result == nil {
		return pipeline.Result{}, false
	}
	return *p.result, true
}

type findingRow struct {
	Class       string
	Category    string
	Severity    string
	Explanation string
}

type view struct {
	ID        string
	Overall   string
	Summary   string
	Explain   string
	Language  string
	Source    string
	Findings  []findingRow
	UpdatedAt string
}

// Render writes the panel as a standalone HTML page.
func (p *Panel) Render(w io.Writer) error {
	p.mu.RLock()
	result, updatedAt := p.result, p.updatedAt
	p.mu.RUnlock()
	if result == nil {
		return ErrEmptyPanel
	}
	v := view{
		ID:        p.id,
		Overall:   string(result.Classification.Overall),
		Summary:   result.Summary,
		Explain:   result.Explanation,
		Language:  result.Language,
		Source:    result.SummarySource,
		UpdatedAt: updatedAt.UTC().Format(time.RFC3339),
		Findings: lo.Map(result.Classification.Items, func(f risk.Finding, _ int) findingRow {
			return findingRow{
				Class:       "sev-" + string(f.Severity),
				Category:    string(f.Category),
				Severity:    string(f.Severity),
				Explanation: f.Explanation,
			}
		}),
	}
	return pageTemplate.Execute(w, v)
}

var pageTemplate = template.Must(template.New("panel").Parse(`<!doctype html>
<html lang="{{.Language}}">
<head>
<meta charset="utf-8">
<title>termslens</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 40rem; margin: 1rem auto; }
.sev-safe { color: #1b7f3b; }
.sev-warning { color: #a86b00; }
.sev-danger { color: #b3261e; }
.summary, .explanation { white-space: pre-wrap; }
</style>
</head>
<body data-panel="{{.ID}}">
<h1 class="sev-{{.Overall}}">Risk: {{.Overall}}</h1>
<h2>Summary</h2>
<p class="summary">{{.Summary}}</p>
<h2>What this means</h2>
<p class="explanation">{{.Explain}}</p>
{{if .Findings}}<h2>Findings</h2>
<ul>
{{range .Findings}}<li class="{{.Class}}"><strong>{{.Category}}</strong> ({{.Severity}}): {{.Explanation}}</li>
{{end}}</ul>
{{else}}<p class="sev-safe">No risky clauses found.</p>
{{end}}<footer><small>source: {{.Source}}, updated {{.UpdatedAt}}</small></footer>
</body>
</html>
`))
