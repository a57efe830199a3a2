package commands

import (
	"context"
	"fmt"

	"docdrift/internal/application"
	"docdrift/internal/domain"
	"docdrift/internal/ports"
)

// DumpResult contains the result of dumping a database
type DumpResult struct {
	Collections int
	Documents   int
	Message     string
}

// DumpCommand writes every user collection of a database with its documents
type DumpCommand struct {
	db       ports.Database
	writer   ports.DumpWriter
	progress ports.ProgressReporter
}

// NewDumpCommand creates a new DumpCommand
func NewDumpCommand(db ports.Database, writer ports.DumpWriter, progress ports.ProgressReporter) *DumpCommand {
	if progress == nil {
		progress = ports.NopProgress{}
	}
	return &DumpCommand{db: db, writer: writer, progress: progress}
}

// Execute runs the dump
func (c *DumpCommand) Execute(ctx context.Context) (*DumpResult, error) {
	all, err := c.db.ListCollections(ctx)
	if err != nil {
		return nil, &application.TransportError{Op: "list collections", Err: err}
	}
	collections := domain.FilterUserCollections(all)

	c.progress.Start("dump", len(collections))
	defer c.progress.Finish()

	result := &DumpResult{}
	for _, col := range collections {
		docs, err := c.db.Documents(ctx, col.Name)
		if err != nil {
			return nil, &application.TransportError{Op: "fetch documents", Collection: col.Name, Err: err}
		}
		if err := c.writer.WriteCollection(col, docs); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", col.Name, err)
		}
		result.Collections++
		result.Documents += len(docs)
		c.progress.Step(col.Name)
	}

	if err := c.writer.Finish(); err != nil {
		return nil, fmt.Errorf("failed to finish dump: %w", err)
	}
	result.Message = fmt.Sprintf("Dumped %d collections (%d documents)", result.Collections, result.Documents)
	return result, nil
}
