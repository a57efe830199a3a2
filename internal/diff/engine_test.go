package diff

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wI2L/jsondiff"

	"docdrift/internal/domain"
)

func doc(raw map[string]any) domain.Document {
	return domain.NewDocument(raw)
}

func TestEngine_IdenticalSetsProduceNoRecords(t *testing.T) {
	docs := []domain.Document{
		doc(map[string]any{"_id": "users/1", "name": "Bob", "tags": []any{"a", "b"}}),
		doc(map[string]any{"_id": "users/2", "name": "Eve", "address": map[string]any{"city": "Oslo"}}),
	}

	records, err := NewEngine(Options{}).Diff(docs, docs)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestEngine_IgnoresRevisionChurn(t *testing.T) {
	from := []domain.Document{doc(map[string]any{"_id": "users/1", "_key": "1", "_rev": "_a1", "name": "Bob"})}
	to := []domain.Document{doc(map[string]any{"_id": "users/1", "_key": "one", "_rev": "_b7", "name": "Bob"})}

	records, err := NewEngine(Options{Verbose: true}).Diff(from, to)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestEngine_IgnoresNestedRevisionChurn(t *testing.T) {
	from := []domain.Document{doc(map[string]any{"_id": "u/1", "meta": map[string]any{"_rev": "x", "_key": "k1"}})}
	to := []domain.Document{doc(map[string]any{"_id": "u/1", "meta": map[string]any{"_rev": "y", "_key": "k2"}})}

	records, err := NewEngine(Options{}).Diff(from, to)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestEngine_NumericIDsKeepStoredValue(t *testing.T) {
	from := []domain.Document{doc(map[string]any{"_id": 7.0, "name": "Alice"})}
	to := []domain.Document{doc(map[string]any{"_id": 7.0, "name": "Bob"})}

	records, err := NewEngine(Options{}).Diff(from, to)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, domain.Path{"7", "name"}, records[0].Path)
	assert.Equal(t, 7.0, records[0].Target["_id"])
}

func TestEngine_Classification(t *testing.T) {
	tests := []struct {
		name     string
		from     []domain.Document
		to       []domain.Document
		wantKind domain.RecordKind
		wantPath domain.Path
		wantOld  any
		wantNew  any
	}{
		{
			name:     "document only on the right is added",
			from:     nil,
			to:       []domain.Document{doc(map[string]any{"_id": "users/1", "_rev": "x", "name": "Bob"})},
			wantKind: domain.RecordAdded,
			wantPath: domain.Path{"users/1"},
			wantNew:  map[string]any{"_id": "users/1", "name": "Bob"},
		},
		{
			name:     "document only on the left is removed",
			from:     []domain.Document{doc(map[string]any{"_id": "users/2", "name": "Eve"})},
			to:       nil,
			wantKind: domain.RecordRemoved,
			wantPath: domain.Path{"users/2"},
			wantOld:  map[string]any{"_id": "users/2", "name": "Eve"},
		},
		{
			name:     "primitive type change",
			from:     []domain.Document{doc(map[string]any{"_id": "users/1", "age": "42"})},
			to:       []domain.Document{doc(map[string]any{"_id": "users/1", "age": 42.0})},
			wantKind: domain.RecordTypeChanged,
			wantPath: domain.Path{"users/1", "age"},
			wantOld:  "42",
			wantNew:  42.0,
		},
		{
			name:     "scalar value change",
			from:     []domain.Document{doc(map[string]any{"_id": "users/1", "name": "Alice"})},
			to:       []domain.Document{doc(map[string]any{"_id": "users/1", "name": "Bob"})},
			wantKind: domain.RecordValueChanged,
			wantPath: domain.Path{"users/1", "name"},
			wantOld:  "Alice",
			wantNew:  "Bob",
		},
		{
			name:     "nested field added",
			from:     []domain.Document{doc(map[string]any{"_id": "users/1"})},
			to:       []domain.Document{doc(map[string]any{"_id": "users/1", "email": "bob@example.com"})},
			wantKind: domain.RecordAdded,
			wantPath: domain.Path{"users/1", "email"},
			wantNew:  "bob@example.com",
		},
		{
			name:     "nested field removed",
			from:     []domain.Document{doc(map[string]any{"_id": "users/1", "nick": "b"})},
			to:       []domain.Document{doc(map[string]any{"_id": "users/1"})},
			wantKind: domain.RecordRemoved,
			wantPath: domain.Path{"users/1", "nick"},
			wantOld:  "b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := NewEngine(Options{}).Diff(tt.from, tt.to)
			require.NoError(t, err)
			require.Len(t, records, 1)

			rec := records[0]
			assert.Equal(t, tt.wantKind, rec.Kind)
			assert.Equal(t, tt.wantPath, rec.Path)
			assert.Equal(t, tt.wantOld, rec.Old)
			assert.Equal(t, tt.wantNew, rec.New)
		})
	}
}

func TestEngine_ChangedRecordsCarryTarget(t *testing.T) {
	from := []domain.Document{doc(map[string]any{"_id": "users/1", "name": "Alice"})}
	to := []domain.Document{doc(map[string]any{"_id": "users/1", "_rev": "r", "name": "Bob"})}

	records, err := NewEngine(Options{}).Diff(from, to)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, map[string]any{"_id": "users/1", "name": "Bob"}, records[0].Target)
	assert.Nil(t, records[0].Source)
}

func TestEngine_VerbosityDoesNotChangeRecordSet(t *testing.T) {
	from := []domain.Document{
		doc(map[string]any{"_id": "a/1", "n": 1.0, "s": "x"}),
		doc(map[string]any{"_id": "a/2", "n": 2.0}),
	}
	to := []domain.Document{
		doc(map[string]any{"_id": "a/1", "n": "1", "s": "y"}),
		doc(map[string]any{"_id": "a/3", "n": 3.0}),
	}

	quiet, err := NewEngine(Options{}).Diff(from, to)
	require.NoError(t, err)
	verbose, err := NewEngine(Options{Verbose: true}).Diff(from, to)
	require.NoError(t, err)

	require.Len(t, verbose, len(quiet))
	for i := range quiet {
		assert.Equal(t, quiet[i].Kind, verbose[i].Kind)
		assert.Equal(t, quiet[i].Path, verbose[i].Path)
	}

	var withSource int
	for _, r := range verbose {
		if r.Source != nil {
			withSource++
		}
	}
	assert.Equal(t, 2, withSource, "both field changes on a/1 carry the source body")
}

func TestEngine_IDsWithSlashes(t *testing.T) {
	from := []domain.Document{doc(map[string]any{"_id": "users/1", "a~b": 1.0})}
	to := []domain.Document{doc(map[string]any{"_id": "users/1", "a~b": 2.0})}

	records, err := NewEngine(Options{}).Diff(from, to)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.Path{"users/1", "a~b"}, records[0].Path)
}

func TestEngine_UnsupportedOperation(t *testing.T) {
	e := NewEngine(Options{})
	ops := []jsondiff.Operation{
		{Type: jsondiff.OperationMove, From: "/a", Path: "/b"},
		{Type: jsondiff.OperationCopy, From: "/a", Path: "/b"},
		{Type: "frobnicate", Path: "/a"},
	}

	for _, op := range ops {
		_, err := e.translate(op, map[string]any{}, map[string]any{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrUnsupportedDiffAction), "op %s", op.Type)
	}
}

func TestParsePointer(t *testing.T) {
	p, err := parsePointer("/users~11/a~0b/0")
	require.NoError(t, err)
	assert.Equal(t, domain.Path{"users/1", "a~b", "0"}, p)

	_, err = parsePointer("users")
	assert.Error(t, err)
}
