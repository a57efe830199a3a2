// Package connect opens the database adapter matching a connection URL.
package connect

import (
	"context"
	"net/url"
	"path/filepath"

	"docdrift/internal/adapters/arango"
	"docdrift/internal/adapters/filesystem"
	"docdrift/internal/adapters/mongo"
	"docdrift/internal/application"
	"docdrift/internal/domain"
	"docdrift/internal/ports"
)

// Kind names a database adapter
type Kind string

const (
	KindArango Kind = "arangodb"
	KindMongo  Kind = "mongodb"
	KindDump   Kind = "dump"
)

// Connector implements ports.Connector by URL scheme
type Connector struct{}

var _ ports.Connector = Connector{}

// KindOf returns the adapter kind for a connection URL
func KindOf(conn domain.Connection) (Kind, error) {
	switch conn.Scheme() {
	case "http", "https", "tcp", "ssl", "http+tcp", "http+ssl":
		return KindArango, nil
	case "mongodb", "mongodb+srv":
		return KindMongo, nil
	case "file":
		return KindDump, nil
	default:
		return "", &application.UnsupportedDatabaseError{URL: conn.URL}
	}
}

// Open opens the database for conn
func (Connector) Open(ctx context.Context, conn domain.Connection) (ports.Database, error) {
	kind, err := KindOf(conn)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindMongo:
		db, err := mongo.Open(ctx, conn)
		if err != nil {
			return nil, err
		}
		return db, nil
	case KindDump:
		dir, err := DumpDir(conn.URL)
		if err != nil {
			return nil, err
		}
		return filesystem.NewRepository(dir), nil
	default:
		db, err := arango.Open(ctx, conn)
		if err != nil {
			return nil, err
		}
		return db, nil
	}
}

// DumpDir extracts the directory of a file:// URL. file://relative/dir and
// file:relative/dir are read as relative paths.
func DumpDir(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", &application.ValidationError{Field: "url", Message: err.Error()}
	}
	return filepath.FromSlash(u.Host + u.Path + u.Opaque), nil
}
