// Package arango implements ports.Database for ArangoDB.
package arango

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	driver "github.com/arangodb/go-driver"
	"github.com/arangodb/go-driver/http"

	"docdrift/internal/domain"
	"docdrift/internal/ports"
)

const allDocumentsQuery = "FOR d IN @@collection RETURN d"

// Database reads one ArangoDB database
type Database struct {
	client driver.Client
	db     driver.Database
}

var _ ports.Database = (*Database)(nil)

// Open connects to the database named by conn. Credentials are only sent
// when both username and password are set.
func Open(ctx context.Context, conn domain.Connection) (*Database, error) {
	httpConn, err := http.NewConnection(http.ConnectionConfig{
		Endpoints: []string{conn.URL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create connection: %w", err)
	}

	cfg := driver.ClientConfig{Connection: httpConn}
	if conn.NeedsAuth() {
		cfg.Authentication = driver.BasicAuthentication(conn.Username, conn.Password)
	}
	client, err := driver.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	db, err := client.Database(ctx, conn.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", conn.Database, err)
	}
	return &Database{client: client, db: db}, nil
}

// ListCollections returns every collection ordered by numeric id
func (d *Database) ListCollections(ctx context.Context) ([]domain.Collection, error) {
	cols, err := d.db.Collections(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Collection, 0, len(cols))
	for _, c := range cols {
		props, err := c.Properties(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read properties of %s: %w", c.Name(), err)
		}
		out = append(out, toCollection(props.CollectionInfo))
	}
	sortByID(out)
	return out, nil
}

// Checksum asks the server for the collection checksum
func (d *Database) Checksum(ctx context.Context, collection string, opts ports.ChecksumOptions) (string, error) {
	col, err := d.db.Collection(ctx, collection)
	if err != nil {
		return "", err
	}
	sum, err := col.Checksum(ctx, opts.WithRevisions, opts.WithData)
	if err != nil {
		return "", err
	}
	return sum.Checksum, nil
}

// Documents drains an AQL cursor over the whole collection
func (d *Database) Documents(ctx context.Context, collection string) ([]domain.Document, error) {
	cursor, err := d.db.Query(ctx, allDocumentsQuery, map[string]interface{}{"@collection": collection})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var docs []domain.Document
	for cursor.HasMore() {
		var raw map[string]any
		if _, err := cursor.ReadDocument(ctx, &raw); err != nil {
			return nil, fmt.Errorf("failed to read document: %w", err)
		}
		docs = append(docs, domain.NewDocument(raw))
	}
	domain.SortDocuments(docs)
	return docs, nil
}

// Version returns the server version
func (d *Database) Version(ctx context.Context) (string, error) {
	info, err := d.client.Version(ctx)
	if err != nil {
		return "", err
	}
	return string(info.Version), nil
}

// Close is a no-op; the HTTP connection holds no session
func (d *Database) Close(ctx context.Context) error {
	return nil
}

func toCollection(info driver.CollectionInfo) domain.Collection {
	id, _ := strconv.ParseInt(info.ID, 10, 64)
	return domain.Collection{
		Name: info.Name,
		Type: toCollectionType(info.Type),
		ID:   id,
	}
}

func toCollectionType(t driver.CollectionType) domain.CollectionType {
	switch t {
	case driver.CollectionTypeDocument:
		return domain.CollectionTypeDocument
	case driver.CollectionTypeEdge:
		return domain.CollectionTypeEdge
	default:
		return domain.CollectionTypeUnknown
	}
}

func sortByID(cols []domain.Collection) {
	sort.SliceStable(cols, func(i, j int) bool {
		return cols[i].ID < cols[j].ID
	})
}
