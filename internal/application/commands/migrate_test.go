package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docdrift/internal/domain"
)

func TestMakeMigrationCommand_WritesRenderedPlan(t *testing.T) {
	ref := newFakeDB(col("users"), col("audit"))
	cmp := newFakeDB(col("users"), col("legacy"))
	ref.checksums["users"], cmp.checksums["users"] = "a", "b"
	ref.docs["users"] = docs(map[string]any{"_id": "users/1", "name": "Bob"})
	cmp.docs["users"] = docs(map[string]any{"_id": "users/1", "name": "Alice"})
	ref.docs["audit"] = docs(map[string]any{"_id": "audit/1", "event": "login"})

	out := filepath.Join(t.TempDir(), "nested", "dir", "001_sync.js")
	renderer := &fakeRenderer{}
	c := NewMakeMigrationCommand(newCompare(ref, cmp, &fakeProgress{}), renderer, out)

	result, err := c.Execute(context.Background())
	require.NoError(t, err)

	// create audit, delete legacy, recreate users/1, create audit/1
	assert.Equal(t, 4, result.Plan.Len())
	assert.Equal(t, out, result.Path)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "actions=4\n", string(data))

	assert.Same(t, result.Plan, renderer.got.Plan)
	assert.Len(t, renderer.got.Diffs, 2)
	assert.Equal(t, []domain.Collection{col("legacy")}, renderer.got.Delta.ToDelete)
}

func TestMakeMigrationCommand_EqualEnvironmentsWriteNothing(t *testing.T) {
	ref := newFakeDB(col("users"))
	cmp := newFakeDB(col("users"))

	out := filepath.Join(t.TempDir(), "001.js")
	c := NewMakeMigrationCommand(newCompare(ref, cmp, &fakeProgress{}), &fakeRenderer{}, out)

	result, err := c.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Collections are equal", result.Message)
	assert.Nil(t, result.Plan)

	_, err = os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestMakeMigrationCommand_Validate(t *testing.T) {
	c := NewMakeMigrationCommand(nil, &fakeRenderer{}, " ")
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output path is required")
}

func TestBuildPlan_PlansAreIndependent(t *testing.T) {
	cmp := &CompareResult{Delta: domain.CollectionDelta{ToCreate: []domain.Collection{col("users")}}}

	first, err := BuildPlan(cmp)
	require.NoError(t, err)
	second, err := BuildPlan(cmp)
	require.NoError(t, err)

	assert.Equal(t, 1, first.Len())
	assert.Equal(t, 1, second.Len())
}

func TestBuildPlan_UnsupportedRecordAborts(t *testing.T) {
	cmp := &CompareResult{Diffs: []domain.CollectionDiff{{
		Collection: col("users"),
		Records:    []domain.Record{{Kind: domain.RecordKind(42), Path: domain.Path{"users/1"}}},
	}}}

	_, err := BuildPlan(cmp)
	assert.ErrorIs(t, err, domain.ErrUnsupportedDiffAction)
}
