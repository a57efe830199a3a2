// Package filesystem reads and writes database dumps: a directory holding
// one JSON array per collection plus a manifest.
package filesystem

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"docdrift/internal/domain"
	"docdrift/internal/ports"
)

var dumpFileRegex = regexp.MustCompile(`^([0-9]{16})_(.+)\.json$`)

// Repository implements ports.Database on top of a dump directory
type Repository struct {
	dir string
}

var _ ports.Database = (*Repository)(nil)

// NewRepository creates a repository for a dump directory
func NewRepository(dir string) *Repository {
	return &Repository{dir: expandHome(dir)}
}

// ListCollections returns the dumped collections in dump order. Directories
// without a manifest are scanned for collection files.
func (r *Repository) ListCollections(ctx context.Context) ([]domain.Collection, error) {
	entries, err := r.entries()
	if err != nil {
		return nil, err
	}

	collections := make([]domain.Collection, 0, len(entries))
	for _, e := range entries {
		collections = append(collections, domain.Collection{Name: e.Name, Type: e.Type, ID: e.ID})
	}
	return collections, nil
}

// Checksum hashes the canonical JSON of the sorted documents
func (r *Repository) Checksum(ctx context.Context, collection string, opts ports.ChecksumOptions) (string, error) {
	docs, err := r.Documents(ctx, collection)
	if err != nil {
		return "", err
	}

	h := sha256.New()
	enc := json.NewEncoder(h)
	for _, d := range docs {
		var v any = d.ID
		switch {
		case opts.WithData && opts.WithRevisions:
			v = d.Raw()
		case opts.WithData:
			v = d.Body()
		case opts.WithRevisions:
			v = []string{d.ID, d.Revision}
		}
		if err := enc.Encode(v); err != nil {
			return "", fmt.Errorf("failed to hash %s: %w", collection, err)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Documents reads a collection file, sorted by id
func (r *Repository) Documents(ctx context.Context, collection string) ([]domain.Document, error) {
	entries, err := r.entries()
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		if e.Name != collection {
			continue
		}
		data, err := os.ReadFile(filepath.Join(r.dir, e.File))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", e.File, err)
		}
		var docs []domain.Document
		if err := json.Unmarshal(data, &docs); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", e.File, err)
		}
		domain.SortDocuments(docs)
		return docs, nil
	}
	return nil, fmt.Errorf("collection %s not in dump %s: %w", collection, r.dir, os.ErrNotExist)
}

// Version identifies the dump format
func (r *Repository) Version(ctx context.Context) (string, error) {
	if _, err := os.Stat(r.dir); err != nil {
		return "", fmt.Errorf("failed to open dump: %w", err)
	}
	return "dump", nil
}

func (r *Repository) Close(ctx context.Context) error {
	return nil
}

func (r *Repository) entries() ([]ManifestEntry, error) {
	data, err := os.ReadFile(filepath.Join(r.dir, ManifestFile))
	if err == nil {
		var m Manifest
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to decode manifest: %w", err)
		}
		return m.Collections, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return r.scan()
}

func (r *Repository) scan() ([]ManifestEntry, error) {
	files, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read dump: %w", err)
	}

	var entries []ManifestEntry
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		matches := dumpFileRegex.FindStringSubmatch(f.Name())
		if matches == nil {
			continue
		}
		counter, _ := strconv.ParseInt(matches[1], 10, 64)
		entries = append(entries, ManifestEntry{
			File: f.Name(),
			Name: matches[2],
			Type: domain.CollectionTypeDocument,
			ID:   counter,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID < entries[j].ID
	})
	return entries, nil
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[1:])
	}
	return path
}
