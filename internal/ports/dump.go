package ports

import "docdrift/internal/domain"

// DumpWriter persists collections and their documents
type DumpWriter interface {
	WriteCollection(c domain.Collection, docs []domain.Document) error
	// Finish writes whatever index the dump needs once every collection is written
	Finish() error
}
