package ports

import (
	"context"

	"docdrift/internal/domain"
)

// ChecksumOptions selects what a collection checksum covers
type ChecksumOptions struct {
	WithData      bool
	WithRevisions bool
}

// ContentChecksum is what the comparator asks for: document data, no revisions
var ContentChecksum = ChecksumOptions{WithData: true}

// Database is one side of a comparison
type Database interface {
	// ListCollections returns every collection, system ones included, ordered by ID
	ListCollections(ctx context.Context) ([]domain.Collection, error)

	// Checksum returns an opaque content checksum for a collection
	Checksum(ctx context.Context, collection string, opts ChecksumOptions) (string, error)

	// Documents returns every document of a collection sorted by ID ascending
	Documents(ctx context.Context, collection string) ([]domain.Document, error)

	// Version returns the server version, used to test a connection
	Version(ctx context.Context) (string, error)

	Close(ctx context.Context) error
}

// Connector opens a Database for a connection profile
type Connector interface {
	Open(ctx context.Context, conn domain.Connection) (Database, error)
}

// DocumentDiffer computes the records that turn "from" into "to"
type DocumentDiffer interface {
	Diff(from, to []domain.Document) ([]domain.Record, error)
}
