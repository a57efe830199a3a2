package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"docdrift/internal/application"
	"docdrift/internal/domain"
	"docdrift/internal/ports"
)

type fakeDB struct {
	collections  []domain.Collection
	checksums    map[string]string
	checksumErrs map[string]error
	docs         map[string][]domain.Document
	listErr      error
	version      string

	checksumCalls int
	documentCalls map[string]int
	closed        bool
}

func newFakeDB(collections ...domain.Collection) *fakeDB {
	return &fakeDB{
		collections:   collections,
		checksums:     map[string]string{},
		checksumErrs:  map[string]error{},
		docs:          map[string][]domain.Document{},
		documentCalls: map[string]int{},
		version:       "3.11.0",
	}
}

func (f *fakeDB) ListCollections(ctx context.Context) ([]domain.Collection, error) {
	return f.collections, f.listErr
}

func (f *fakeDB) Checksum(ctx context.Context, name string, opts ports.ChecksumOptions) (string, error) {
	f.checksumCalls++
	if err := f.checksumErrs[name]; err != nil {
		return "", err
	}
	return f.checksums[name], nil
}

func (f *fakeDB) Documents(ctx context.Context, name string) ([]domain.Document, error) {
	f.documentCalls[name]++
	docs := append([]domain.Document(nil), f.docs[name]...)
	domain.SortDocuments(docs)
	return docs, nil
}

func (f *fakeDB) Version(ctx context.Context) (string, error) {
	return f.version, nil
}

func (f *fakeDB) Close(ctx context.Context) error {
	f.closed = true
	return nil
}

type fakeProgress struct {
	stages []string
	steps  []string
	open   int
}

func (p *fakeProgress) Start(stage string, total int) {
	p.stages = append(p.stages, fmt.Sprintf("%s:%d", stage, total))
	p.open++
}

func (p *fakeProgress) Step(label string) { p.steps = append(p.steps, label) }

func (p *fakeProgress) Finish() { p.open-- }

type fakeRenderer struct {
	got ports.RenderInput
}

func (r *fakeRenderer) Render(w io.Writer, in ports.RenderInput) error {
	r.got = in
	_, err := fmt.Fprintf(w, "actions=%d\n", in.Plan.Len())
	return err
}

type fakeRegistry struct {
	conns map[string]domain.Connection
}

func newFakeRegistry(conns ...domain.Connection) *fakeRegistry {
	r := &fakeRegistry{conns: map[string]domain.Connection{}}
	for _, c := range conns {
		r.conns[c.Name] = c
	}
	return r
}

func (r *fakeRegistry) Create(conn domain.Connection) error {
	if _, ok := r.conns[conn.Name]; ok {
		return &application.ConnectionExistsError{Name: conn.Name}
	}
	r.conns[conn.Name] = conn
	return nil
}

func (r *fakeRegistry) Get(name string) (domain.Connection, error) {
	c, ok := r.conns[name]
	if !ok {
		return domain.Connection{}, &application.ConnectionNotFoundError{Name: name}
	}
	return c, nil
}

func (r *fakeRegistry) List() ([]domain.Connection, error) {
	out := make([]domain.Connection, 0, len(r.conns))
	for _, c := range r.conns {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeRegistry) Remove(name string) error {
	delete(r.conns, name)
	return nil
}

func (r *fakeRegistry) Close() error { return nil }

type fakeConnector struct {
	dbs map[string]*fakeDB
}

func (c *fakeConnector) Open(ctx context.Context, conn domain.Connection) (ports.Database, error) {
	db, ok := c.dbs[conn.URL]
	if !ok {
		return nil, errors.New("dial tcp: connection refused")
	}
	return db, nil
}

func col(name string) domain.Collection {
	return domain.Collection{Name: name, Type: domain.CollectionTypeDocument}
}

func docs(raws ...map[string]any) []domain.Document {
	out := make([]domain.Document, len(raws))
	for i, r := range raws {
		out[i] = domain.NewDocument(r)
	}
	return out
}
