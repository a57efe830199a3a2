package ports

import (
	"io"

	"docdrift/internal/domain"
	"docdrift/internal/migration"
)

// RenderInput is everything a migration renderer may draw on
type RenderInput struct {
	Delta domain.CollectionDelta
	// Diffs holds the records per mismatching or newly created collection
	Diffs []domain.CollectionDiff
	Plan  *migration.Plan
}

// Renderer writes a migration artifact
type Renderer interface {
	Render(w io.Writer, in RenderInput) error
}
