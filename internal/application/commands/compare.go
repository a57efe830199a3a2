package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"docdrift/internal/application"
	"docdrift/internal/domain"
	"docdrift/internal/ports"
)

// Progress stage names
const (
	StageChecksum = "checksum"
	StageDiff     = "diff"
)

// CompareResult is the outcome of one comparison run
type CompareResult struct {
	Delta domain.CollectionDelta `json:"delta" yaml:"delta"`
	// Diffs holds one entry per content mismatch followed by one per
	// collection to create. Empty in checksum-only mode.
	Diffs []domain.CollectionDiff `json:"diffs,omitempty" yaml:"diffs,omitempty"`
}

// Equal reports whether the two environments hold the same user collections
// with the same content
func (r *CompareResult) Equal() bool {
	return r.Delta.Empty()
}

// CompareCommand compares a reference environment with a compared one.
// The records it produces move the compared environment toward the reference.
type CompareCommand struct {
	reference ports.Database
	compared  ports.Database
	differ    ports.DocumentDiffer
	progress  ports.ProgressReporter
	logger    *zap.Logger

	// ChecksumOnly stops after the checksum stage
	ChecksumOnly bool
}

// NewCompareCommand creates a new CompareCommand
func NewCompareCommand(reference, compared ports.Database, differ ports.DocumentDiffer, progress ports.ProgressReporter, logger *zap.Logger) *CompareCommand {
	if progress == nil {
		progress = ports.NopProgress{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CompareCommand{
		reference: reference,
		compared:  compared,
		differ:    differ,
		progress:  progress,
		logger:    logger,
	}
}

// Execute runs the comparison pipeline
func (c *CompareCommand) Execute(ctx context.Context) (*CompareResult, error) {
	refCollections, err := c.reference.ListCollections(ctx)
	if err != nil {
		return nil, &application.TransportError{Op: "list reference collections", Err: err}
	}
	cmpCollections, err := c.compared.ListCollections(ctx)
	if err != nil {
		return nil, &application.TransportError{Op: "list compared collections", Err: err}
	}

	partition := domain.PartitionCollections(
		domain.FilterUserCollections(refCollections),
		domain.FilterUserCollections(cmpCollections),
	)
	c.logger.Debug("partitioned collections",
		zap.Int("toCreate", len(partition.ToCreate)),
		zap.Int("toDelete", len(partition.ToDelete)),
		zap.Int("common", len(partition.Common)))

	mismatches, err := c.checksums(ctx, partition.Common)
	if err != nil {
		return nil, err
	}

	result := &CompareResult{
		Delta: domain.CollectionDelta{
			ToCreate:          partition.ToCreate,
			ToDelete:          partition.ToDelete,
			ContentMismatches: mismatches,
		},
	}
	if c.ChecksumOnly {
		return result, nil
	}

	diffs, err := c.deepDiff(ctx, result.Delta)
	if err != nil {
		return nil, err
	}
	result.Diffs = diffs
	return result, nil
}

// checksums returns the common collections whose content checksums differ.
// Progress advances once per collection, also when a checksum call fails.
func (c *CompareCommand) checksums(ctx context.Context, common []domain.CommonCollection) ([]domain.Collection, error) {
	c.progress.Start(StageChecksum, len(common))
	defer c.progress.Finish()

	var mismatches []domain.Collection
	for _, cc := range common {
		name := cc.Left.Name
		refSum, refErr := c.reference.Checksum(ctx, name, ports.ContentChecksum)
		var cmpSum string
		var cmpErr error
		if refErr == nil {
			cmpSum, cmpErr = c.compared.Checksum(ctx, name, ports.ContentChecksum)
		}
		c.progress.Step(name)

		if refErr != nil {
			return nil, &application.TransportError{Op: "checksum reference", Collection: name, Err: refErr}
		}
		if cmpErr != nil {
			return nil, &application.TransportError{Op: "checksum compared", Collection: name, Err: cmpErr}
		}
		if refSum != cmpSum {
			c.logger.Debug("checksum mismatch",
				zap.String("collection", name),
				zap.String("reference", refSum),
				zap.String("compared", cmpSum))
			mismatches = append(mismatches, cc.Left)
		}
	}
	return mismatches, nil
}

func (c *CompareCommand) deepDiff(ctx context.Context, delta domain.CollectionDelta) ([]domain.CollectionDiff, error) {
	c.progress.Start(StageDiff, len(delta.ContentMismatches)+len(delta.ToCreate))
	defer c.progress.Finish()

	diffs := make([]domain.CollectionDiff, 0, len(delta.ContentMismatches)+len(delta.ToCreate))
	for _, col := range delta.ContentMismatches {
		refDocs, err := c.reference.Documents(ctx, col.Name)
		if err != nil {
			return nil, &application.TransportError{Op: "fetch reference documents", Collection: col.Name, Err: err}
		}
		cmpDocs, err := c.compared.Documents(ctx, col.Name)
		if err != nil {
			return nil, &application.TransportError{Op: "fetch compared documents", Collection: col.Name, Err: err}
		}

		records, err := c.differ.Diff(cmpDocs, refDocs)
		if err != nil {
			return nil, fmt.Errorf("failed to diff %s: %w", col.Name, err)
		}
		c.logger.Info("collection content differs", zap.String("collection", col.Name), zap.Int("records", len(records)))
		diffs = append(diffs, domain.CollectionDiff{Collection: col, Records: records})
		c.progress.Step(col.Name)
	}

	for _, col := range delta.ToCreate {
		refDocs, err := c.reference.Documents(ctx, col.Name)
		if err != nil {
			return nil, &application.TransportError{Op: "fetch reference documents", Collection: col.Name, Err: err}
		}
		records, err := c.differ.Diff(nil, refDocs)
		if err != nil {
			return nil, fmt.Errorf("failed to diff %s: %w", col.Name, err)
		}
		diffs = append(diffs, domain.CollectionDiff{Collection: col, Records: records})
		c.progress.Step(col.Name)
	}
	return diffs, nil
}
