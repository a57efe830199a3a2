// Package render turns a synthesized migration plan into a script.
package render

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"

	"docdrift/internal/domain"
	"docdrift/internal/ports"
)

// BuiltinPrefix marks a template reference that names an embedded template
const BuiltinPrefix = "builtin:"

//go:embed templates/*.tmpl
var builtins embed.FS

// Builtins lists the names accepted after BuiltinPrefix
func Builtins() []string {
	entries, err := builtins.ReadDir("templates")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".tmpl"))
	}
	return names
}

// ActionView is one action as templates see it
type ActionView struct {
	CollectionName string
	Data           map[string]any
}

// TemplateData is the root object passed to migration templates.
// Actions is keyed by action kind ("create_collection", ...).
type TemplateData struct {
	RunID       string
	GeneratedAt time.Time
	Actions     map[string][]ActionView
	// Rollback is always empty; down migrations are not generated
	Rollback map[string][]ActionView
}

// Template renders the action plan through a text/template
type Template struct {
	ref   string
	now   func() time.Time
	runID func() string
}

var _ ports.Renderer = (*Template)(nil)

// NewTemplate creates a renderer for a template file path or a builtin:<name> reference
func NewTemplate(ref string) *Template {
	return &Template{
		ref:   ref,
		now:   time.Now,
		runID: func() string { return uuid.New().String() },
	}
}

// Render executes the template with the grouped actions of in.Plan
func (t *Template) Render(w io.Writer, in ports.RenderInput) error {
	tmpl, err := t.load()
	if err != nil {
		return err
	}
	if in.Plan == nil {
		return fmt.Errorf("no migration plan to render")
	}

	data := TemplateData{
		RunID:       t.runID(),
		GeneratedAt: t.now().UTC(),
		Actions:     make(map[string][]ActionView),
		Rollback:    map[string][]ActionView{},
	}
	for _, g := range in.Plan.Grouped() {
		views := make([]ActionView, 0, len(g.Actions))
		for _, a := range g.Actions {
			views = append(views, view(a))
		}
		data.Actions[g.Kind.String()] = views
	}

	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("template exec error: %w", err)
	}
	return nil
}

func (t *Template) load() (*template.Template, error) {
	var (
		name string
		text []byte
		err  error
	)
	if builtin, ok := strings.CutPrefix(t.ref, BuiltinPrefix); ok {
		name = builtin
		text, err = builtins.ReadFile("templates/" + builtin + ".tmpl")
		if err != nil {
			return nil, fmt.Errorf("unknown builtin template %q (available: %s)", builtin, strings.Join(Builtins(), ", "))
		}
	} else {
		name = filepath.Base(t.ref)
		text, err = os.ReadFile(t.ref)
		if err != nil {
			return nil, fmt.Errorf("failed to read template: %w", err)
		}
	}

	tmpl, err := template.New(name).Funcs(funcMap()).Option("missingkey=zero").Parse(string(text))
	if err != nil {
		return nil, fmt.Errorf("template parse error: %w", err)
	}
	return tmpl, nil
}

// view flattens an action into the loosely typed payload templates consume
func view(a domain.Action) ActionView {
	v := ActionView{CollectionName: a.CollectionName()}
	switch act := a.(type) {
	case domain.CreateCollectionAction:
		v.Data = map[string]any{"value": collectionValue(act.Collection)}
	case domain.DeleteCollectionAction:
		v.Data = map[string]any{"value": collectionValue(act.Collection)}
	case domain.CreateDocumentAction:
		v.Data = map[string]any{"value": act.Document}
	case domain.DeleteDocumentAction:
		v.Data = map[string]any{"value": act.Document}
	case domain.UpdateDocumentAction:
		v.Data = map[string]any{
			"id":       act.DocumentID,
			"ref":      act.DocumentRef,
			"value":    act.Patch(),
			"path":     act.DottedPath(),
			"newValue": act.Value,
			"unset":    act.Unset,
		}
	}
	return v
}

func collectionValue(c domain.Collection) map[string]any {
	return map[string]any{"name": c.Name, "type": c.Type.String(), "id": c.ID}
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		// json encodes any value as compact JSON
		"json": func(v any) (string, error) {
			b, err := json.Marshal(v)
			if err != nil {
				return "", err
			}
			return string(b), nil
		},
		// documentKey returns the key part of a "collection/key" id, given
		// either the id or a document carrying one
		"documentKey": documentKey,
		"now": func() string {
			return time.Now().UTC().Format(time.RFC3339)
		},
	}
}

func documentKey(v any) string {
	var id string
	switch val := v.(type) {
	case string:
		id = val
	case map[string]any:
		id, _ = val[domain.FieldID].(string)
	default:
		id = fmt.Sprint(v)
	}
	if i := strings.LastIndex(id, "/"); i >= 0 {
		return id[i+1:]
	}
	return id
}
