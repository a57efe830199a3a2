// Package diff computes structural differences between two document sets.
//
// Documents are keyed by id and compared with their volatile attributes
// (_rev, _key) removed. The JSON Patch produced by jsondiff is translated
// into domain records; any patch operation outside add/remove/replace is
// rejected rather than guessed at.
package diff

import (
	"fmt"
	"strings"

	"github.com/wI2L/jsondiff"

	"docdrift/internal/domain"
)

// Options controls how much context records carry
type Options struct {
	// Verbose attaches the complete "from" body to records on documents
	// present on both sides. It never changes which records are produced.
	Verbose bool
}

// Engine implements ports.DocumentDiffer
type Engine struct {
	opts Options
}

// NewEngine creates a diff engine
func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts}
}

// Diff returns the records that turn the "from" set into the "to" set:
// documents only in "to" are Added, documents only in "from" are Removed.
func (e *Engine) Diff(from, to []domain.Document) ([]domain.Record, error) {
	fromBodies := keyed(from)
	toBodies := keyed(to)

	patch, err := jsondiff.Compare(fromBodies, toBodies)
	if err != nil {
		return nil, fmt.Errorf("failed to compare documents: %w", err)
	}

	records := make([]domain.Record, 0, len(patch))
	for _, op := range patch {
		rec, err := e.translate(op, fromBodies, toBodies)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (e *Engine) translate(op jsondiff.Operation, from, to map[string]any) (domain.Record, error) {
	path, err := parsePointer(string(op.Path))
	if err != nil {
		return domain.Record{}, err
	}
	if len(path) == 0 {
		return domain.Record{}, &domain.UnsupportedDiffActionError{Action: op.Type, Path: "/"}
	}

	rec := domain.Record{Path: path}
	docID := path.DocumentID()

	switch op.Type {
	case jsondiff.OperationAdd:
		rec.Kind = domain.RecordAdded
		rec.New = op.Value
		if v, ok := lookup(to, path); ok {
			rec.New = v
		}
	case jsondiff.OperationRemove:
		rec.Kind = domain.RecordRemoved
		rec.Old, _ = lookup(from, path)
	case jsondiff.OperationReplace:
		rec.Old, _ = lookup(from, path)
		rec.New = op.Value
		if v, ok := lookup(to, path); ok {
			rec.New = v
		}
		if kindOf(rec.Old) != kindOf(rec.New) {
			rec.Kind = domain.RecordTypeChanged
		} else {
			rec.Kind = domain.RecordValueChanged
		}
	default:
		return domain.Record{}, &domain.UnsupportedDiffActionError{Action: op.Type, Path: path.String()}
	}

	if path.IsDocument() {
		return rec, nil
	}
	if body, ok := to[docID].(map[string]any); ok {
		rec.Target = body
	}
	if e.opts.Verbose {
		if body, ok := from[docID].(map[string]any); ok {
			rec.Source = body
		}
	}
	return rec, nil
}

func keyed(docs []domain.Document) map[string]any {
	out := make(map[string]any, len(docs))
	for _, d := range docs {
		out[d.ID] = d.Body()
	}
	return out
}

// parsePointer splits an RFC 6901 JSON pointer into unescaped tokens
func parsePointer(ptr string) (domain.Path, error) {
	if ptr == "" {
		return nil, nil
	}
	if !strings.HasPrefix(ptr, "/") {
		return nil, fmt.Errorf("invalid JSON pointer: %q", ptr)
	}
	tokens := strings.Split(ptr[1:], "/")
	path := make(domain.Path, len(tokens))
	for i, tok := range tokens {
		tok = strings.ReplaceAll(tok, "~1", "/")
		path[i] = strings.ReplaceAll(tok, "~0", "~")
	}
	return path, nil
}
