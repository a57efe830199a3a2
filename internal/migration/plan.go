// Package migration turns collection deltas and diff records into an
// ordered list of typed migration actions.
package migration

import (
	"sync"

	"docdrift/internal/diff"
	"docdrift/internal/domain"
)

// Plan accumulates the actions of one run. Create one per run; plans never
// share state, so repeated runs in one process stay isolated.
type Plan struct {
	mu      sync.Mutex
	actions []domain.Action
}

// NewPlan creates an empty plan
func NewPlan() *Plan {
	return &Plan{}
}

// Group is the actions of one kind, in discovery order
type Group struct {
	Kind    domain.ActionKind
	Actions []domain.Action
}

// AddDelta appends collection create/delete actions
func (p *Plan) AddDelta(delta domain.CollectionDelta) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, c := range delta.ToCreate {
		p.actions = append(p.actions, domain.CreateCollectionAction{Collection: c})
	}
	for _, c := range delta.ToDelete {
		p.actions = append(p.actions, domain.DeleteCollectionAction{Collection: c})
	}
}

// AddDiff translates the records of one collection into document actions.
// An unknown record kind aborts without touching the plan.
func (p *Plan) AddDiff(collection string, records []domain.Record) error {
	actions, err := Synthesize(collection, records)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.actions = append(p.actions, actions...)
	return nil
}

// Actions returns a copy of the actions in the order they were added
func (p *Plan) Actions() []domain.Action {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]domain.Action, len(p.actions))
	copy(out, p.actions)
	return out
}

// Len returns the number of actions in the plan
func (p *Plan) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.actions)
}

// Grouped returns the non-empty action groups in domain.ActionKinds order
func (p *Plan) Grouped() []Group {
	byKind := make(map[domain.ActionKind][]domain.Action)
	for _, a := range p.Actions() {
		byKind[a.Kind()] = append(byKind[a.Kind()], a)
	}

	var groups []Group
	for _, k := range domain.ActionKinds {
		if actions := byKind[k]; len(actions) > 0 {
			groups = append(groups, Group{Kind: k, Actions: actions})
		}
	}
	return groups
}

// Synthesize maps the records of one collection to actions.
//
//	Added document        -> CreateDocument
//	Added field           -> UpdateDocument(field = new value)
//	Removed document      -> DeleteDocument
//	Removed field         -> UpdateDocument(unset field)
//	TypeChanged           -> UpdateDocument(field = new value)
//	ValueChanged          -> CreateDocument(target document), once per document
func Synthesize(collection string, records []domain.Record) ([]domain.Action, error) {
	var actions []domain.Action
	recreated := make(map[string]bool)

	for _, rec := range records {
		switch rec.Kind {
		case domain.RecordAdded:
			if rec.Path.IsDocument() {
				actions = append(actions, domain.CreateDocumentAction{
					Collection: collection,
					Document:   asBody(rec.New, rec.Path.DocumentID()),
				})
				continue
			}
			actions = append(actions, fieldUpdate(collection, rec))

		case domain.RecordRemoved:
			if rec.Path.IsDocument() {
				actions = append(actions, domain.DeleteDocumentAction{
					Collection: collection,
					Document:   asBody(rec.Old, rec.Path.DocumentID()),
				})
				continue
			}
			actions = append(actions, fieldUpdate(collection, rec))

		case domain.RecordTypeChanged:
			actions = append(actions, fieldUpdate(collection, rec))

		case domain.RecordValueChanged:
			id := rec.Path.DocumentID()
			if recreated[id] {
				continue
			}
			recreated[id] = true
			actions = append(actions, domain.CreateDocumentAction{
				Collection: collection,
				Document:   targetBody(rec),
			})

		default:
			return nil, &domain.UnsupportedDiffActionError{Action: rec.Kind.String(), Path: rec.Path.String()}
		}
	}
	return actions, nil
}

// fieldUpdate builds the update for a nested record. The field path is cut
// at the first array index so arrays are always written whole, and the value
// is read from the target document at that path.
func fieldUpdate(collection string, rec domain.Record) domain.UpdateDocumentAction {
	field := rec.Path.Field()
	action := domain.UpdateDocumentAction{
		Collection: collection,
		DocumentID: rec.Path.DocumentID(),
		FieldPath:  field,
		Value:      rec.New,
		Unset:      rec.Kind == domain.RecordRemoved,
	}
	if rec.Target == nil {
		return action
	}

	action.DocumentRef = rec.Target[domain.FieldID]
	action.FieldPath = objectPrefix(rec.Target, field)
	if v, ok := diff.Lookup(rec.Target, action.FieldPath); ok {
		action.Value = v
		action.Unset = false
	} else {
		action.Value = nil
		action.Unset = true
	}
	return action
}

// objectPrefix returns the longest prefix of field that only descends
// through objects in body (the first array encountered ends the prefix).
func objectPrefix(body map[string]any, field []string) []string {
	var cur any = body
	for i, tok := range field {
		obj, ok := cur.(map[string]any)
		if !ok {
			return field[:i]
		}
		v, ok := obj[tok]
		if !ok {
			return field[:i+1]
		}
		if _, isArray := v.([]any); isArray {
			return field[:i+1]
		}
		cur = v
	}
	return field
}

func targetBody(rec domain.Record) map[string]any {
	if rec.Target != nil {
		return rec.Target
	}
	return asBody(rec.New, rec.Path.DocumentID())
}

func asBody(v any, id string) map[string]any {
	if body, ok := v.(map[string]any); ok {
		return body
	}
	return map[string]any{domain.FieldID: id}
}
