package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docdrift/internal/domain"
)

type memoryDump struct {
	written  map[string]int
	order    []string
	finished bool
}

func (m *memoryDump) WriteCollection(c domain.Collection, docs []domain.Document) error {
	if m.written == nil {
		m.written = map[string]int{}
	}
	m.written[c.Name] = len(docs)
	m.order = append(m.order, c.Name)
	return nil
}

func (m *memoryDump) Finish() error {
	m.finished = true
	return nil
}

func TestDumpCommand_WritesUserCollections(t *testing.T) {
	db := newFakeDB(col("users"), col("_apps"), col("migrations"), col("orders"))
	db.docs["users"] = docs(map[string]any{"_id": "users/1"}, map[string]any{"_id": "users/2"})
	db.docs["orders"] = docs(map[string]any{"_id": "orders/1"})
	writer := &memoryDump{}
	progress := &fakeProgress{}

	result, err := NewDumpCommand(db, writer, progress).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Collections)
	assert.Equal(t, 3, result.Documents)
	assert.Equal(t, []string{"users", "orders"}, writer.order)
	assert.True(t, writer.finished)
	assert.Equal(t, []string{"dump:2"}, progress.stages)
}
