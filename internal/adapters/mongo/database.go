// Package mongo implements ports.Database for MongoDB.
package mongo

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"docdrift/internal/domain"
	"docdrift/internal/ports"
)

// Database reads one MongoDB database
type Database struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ ports.Database = (*Database)(nil)

// Open connects to the database named by conn
func Open(ctx context.Context, conn domain.Connection) (*Database, error) {
	opts := options.Client().ApplyURI(conn.URL)
	if conn.NeedsAuth() {
		opts.SetAuth(options.Credential{Username: conn.Username, Password: conn.Password})
	}
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	return &Database{client: client, db: client.Database(conn.Database)}, nil
}

// ListCollections returns the collections (views excluded) ordered by name.
// MongoDB has no numeric collection ids; ID is the position in that order.
func (d *Database) ListCollections(ctx context.Context) ([]domain.Collection, error) {
	names, err := d.db.ListCollectionNames(ctx, bson.D{{Key: "type", Value: "collection"}})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	out := make([]domain.Collection, len(names))
	for i, name := range names {
		out[i] = domain.Collection{Name: name, Type: domain.CollectionTypeDocument, ID: int64(i + 1)}
	}
	return out, nil
}

type dbHashResult struct {
	Collections map[string]string `bson:"collections"`
}

// Checksum runs dbHash for a single collection. dbHash always covers the
// data and MongoDB keeps no revisions, so the options do not change it.
func (d *Database) Checksum(ctx context.Context, collection string, opts ports.ChecksumOptions) (string, error) {
	var res dbHashResult
	cmd := bson.D{{Key: "dbHash", Value: 1}, {Key: "collections", Value: bson.A{collection}}}
	if err := d.db.RunCommand(ctx, cmd).Decode(&res); err != nil {
		return "", err
	}
	sum, ok := res.Collections[collection]
	if !ok {
		return "", fmt.Errorf("dbHash returned no hash for %s", collection)
	}
	return sum, nil
}

// Documents reads the whole collection as relaxed Extended JSON
func (d *Database) Documents(ctx context.Context, collection string) ([]domain.Document, error) {
	cursor, err := d.db.Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []domain.Document
	for cursor.Next(ctx) {
		doc, err := decode(cursor.Current)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	domain.SortDocuments(docs)
	return docs, nil
}

type buildInfo struct {
	Version string `bson:"version"`
}

// Version returns the server version from buildInfo
func (d *Database) Version(ctx context.Context) (string, error) {
	var info buildInfo
	if err := d.db.RunCommand(ctx, bson.D{{Key: "buildInfo", Value: 1}}).Decode(&info); err != nil {
		return "", err
	}
	return info.Version, nil
}

func (d *Database) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// decode converts a BSON document to a domain document through relaxed
// Extended JSON, so values compare the same way as on other stores.
// _id keeps its Extended JSON form so migrations address the stored value.
func decode(raw bson.Raw) (domain.Document, error) {
	ext, err := bson.MarshalExtJSON(raw, false, false)
	if err != nil {
		return domain.Document{}, fmt.Errorf("failed to encode document: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(ext, &fields); err != nil {
		return domain.Document{}, fmt.Errorf("failed to decode document: %w", err)
	}
	return domain.NewDocument(fields), nil
}
