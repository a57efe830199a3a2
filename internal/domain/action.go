package domain

import "strings"

// ActionKind is the closed set of migration instructions
type ActionKind int

const (
	ActionCreateCollection ActionKind = iota + 1
	ActionDeleteCollection
	ActionCreateDocument
	ActionUpdateDocument
	ActionDeleteDocument
)

// ActionKinds lists every kind in rendering order
var ActionKinds = []ActionKind{
	ActionCreateCollection,
	ActionDeleteCollection,
	ActionCreateDocument,
	ActionUpdateDocument,
	ActionDeleteDocument,
}

func (k ActionKind) String() string {
	switch k {
	case ActionCreateCollection:
		return "create_collection"
	case ActionDeleteCollection:
		return "delete_collection"
	case ActionCreateDocument:
		return "create_document"
	case ActionUpdateDocument:
		return "update_document"
	case ActionDeleteDocument:
		return "delete_document"
	default:
		return "unknown"
	}
}

// Action is one typed migration instruction. The set of implementations is
// closed; renderers switch over the concrete types.
type Action interface {
	Kind() ActionKind
	CollectionName() string
	isAction()
}

// CreateCollectionAction creates a collection missing from the compared side
type CreateCollectionAction struct {
	Collection Collection
}

// DeleteCollectionAction drops a collection unknown to the reference side
type DeleteCollectionAction struct {
	Collection Collection
}

// CreateDocumentAction inserts (or re-creates) a whole document
type CreateDocumentAction struct {
	Collection string
	Document   map[string]any
}

// UpdateDocumentAction sets or removes one field of an existing document.
// DocumentRef is the document's raw _id value as the database stores it.
type UpdateDocumentAction struct {
	Collection  string
	DocumentID  string
	DocumentRef any
	FieldPath   []string
	Value       any
	Unset       bool
}

// DeleteDocumentAction removes a whole document
type DeleteDocumentAction struct {
	Collection string
	Document   map[string]any
}

func (CreateCollectionAction) Kind() ActionKind { return ActionCreateCollection }
func (DeleteCollectionAction) Kind() ActionKind { return ActionDeleteCollection }
func (CreateDocumentAction) Kind() ActionKind   { return ActionCreateDocument }
func (UpdateDocumentAction) Kind() ActionKind   { return ActionUpdateDocument }
func (DeleteDocumentAction) Kind() ActionKind   { return ActionDeleteDocument }

func (a CreateCollectionAction) CollectionName() string { return a.Collection.Name }
func (a DeleteCollectionAction) CollectionName() string { return a.Collection.Name }
func (a CreateDocumentAction) CollectionName() string   { return a.Collection }
func (a UpdateDocumentAction) CollectionName() string   { return a.Collection }
func (a DeleteDocumentAction) CollectionName() string   { return a.Collection }

func (CreateCollectionAction) isAction() {}
func (DeleteCollectionAction) isAction() {}
func (CreateDocumentAction) isAction()   {}
func (UpdateDocumentAction) isAction()   {}
func (DeleteDocumentAction) isAction()   {}

// DottedPath joins the field path with dots, as document stores address nested fields
func (a UpdateDocumentAction) DottedPath() string {
	return strings.Join(a.FieldPath, ".")
}

// Patch returns the update as a nested object, e.g. {"a": {"b": value}}.
// An unset field maps to nil.
func (a UpdateDocumentAction) Patch() map[string]any {
	var value any
	if !a.Unset {
		value = a.Value
	}
	if len(a.FieldPath) == 0 {
		return map[string]any{}
	}
	for i := len(a.FieldPath) - 1; i > 0; i-- {
		value = map[string]any{a.FieldPath[i]: value}
	}
	return map[string]any{a.FieldPath[0]: value}
}
