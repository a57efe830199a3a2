package filesystem

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"docdrift/internal/domain"
	"docdrift/internal/ports"
)

// ManifestFile indexes the collection files of a dump directory
const ManifestFile = "manifest.json"

// Manifest describes a dump directory
type Manifest struct {
	GeneratedAt time.Time       `json:"generatedAt"`
	Source      string          `json:"source,omitempty"`
	Collections []ManifestEntry `json:"collections"`
}

// ManifestEntry is one dumped collection
type ManifestEntry struct {
	File      string                `json:"file"`
	Name      string                `json:"name"`
	Type      domain.CollectionType `json:"type"`
	ID        int64                 `json:"id,omitempty"`
	Documents int                   `json:"documents"`
}

// Writer implements ports.DumpWriter, one JSON file per collection
type Writer struct {
	dir      string
	source   string
	counter  int
	manifest Manifest
	now      func() time.Time
}

var _ ports.DumpWriter = (*Writer)(nil)

// NewWriter creates a dump writer for dir. source is recorded in the manifest.
func NewWriter(dir, source string) (*Writer, error) {
	dir = expandHome(dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create dump directory: %w", err)
	}
	return &Writer{dir: dir, source: source, counter: 1, now: time.Now}, nil
}

// WriteCollection writes the raw documents of one collection as a JSON array
func (w *Writer) WriteCollection(c domain.Collection, docs []domain.Document) error {
	name := fileName(w.counter, c.Name)
	data, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.Name, err)
	}
	if err := os.WriteFile(filepath.Join(w.dir, name), data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	w.manifest.Collections = append(w.manifest.Collections, ManifestEntry{
		File:      name,
		Name:      c.Name,
		Type:      c.Type,
		ID:        c.ID,
		Documents: len(docs),
	})
	w.counter++
	return nil
}

// Finish writes manifest.json
func (w *Writer) Finish() error {
	w.manifest.GeneratedAt = w.now().UTC()
	w.manifest.Source = w.source
	data, err := json.MarshalIndent(w.manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(w.dir, ManifestFile), data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

func fileName(counter int, collection string) string {
	return fmt.Sprintf("%016d_%s.json", counter, collection)
}
