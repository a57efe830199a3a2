package domain

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Reserved document attributes
const (
	FieldID       = "_id"
	FieldKey      = "_key"
	FieldRevision = "_rev"
)

// VolatileFields change on every write and never take part in comparisons
var VolatileFields = []string{FieldRevision, FieldKey}

// Document is a read-only snapshot of one record fetched during a run
type Document struct {
	// ID is the string form of _id used for keying and ordering
	ID string
	// RawID is _id as the store returned it when it is not a string,
	// e.g. a number or an Extended JSON {"$oid": ...} wrapper
	RawID    any
	Revision string
	Fields   map[string]any // every attribute except _id and _rev
}

// NewDocument splits a raw attribute map into a Document
func NewDocument(raw map[string]any) Document {
	doc := Document{Fields: make(map[string]any, len(raw))}
	for k, v := range raw {
		switch k {
		case FieldID:
			doc.ID = idKey(v)
			if _, ok := v.(string); !ok {
				doc.RawID = v
			}
		case FieldRevision:
			if s, ok := v.(string); ok {
				doc.Revision = s
			}
		default:
			doc.Fields[k] = v
		}
	}
	return doc
}

// IDValue returns _id as stored
func (d Document) IDValue() any {
	if d.RawID != nil {
		return d.RawID
	}
	return d.ID
}

// Body returns the comparable form of the document: all fields plus _id,
// with volatile fields removed at every depth. Nested objects and arrays
// holding volatile fields are copied, everything else is shared.
func (d Document) Body() map[string]any {
	body := make(map[string]any, len(d.Fields)+1)
	for k, v := range d.Fields {
		if isVolatile(k) {
			continue
		}
		body[k] = stripVolatile(v)
	}
	body[FieldID] = d.IDValue()
	return body
}

// Raw returns every attribute including volatile ones, as fetched
func (d Document) Raw() map[string]any {
	raw := make(map[string]any, len(d.Fields)+2)
	for k, v := range d.Fields {
		raw[k] = v
	}
	raw[FieldID] = d.IDValue()
	if d.Revision != "" {
		raw[FieldRevision] = d.Revision
	}
	return raw
}

func (d Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Raw())
}

func (d *Document) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*d = NewDocument(raw)
	return nil
}

// SortDocuments orders documents ascending by id (byte-wise string order)
func SortDocuments(docs []Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].ID < docs[j].ID
	})
}

func stripVolatile(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			if isVolatile(k) {
				continue
			}
			out[k] = stripVolatile(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = stripVolatile(item)
		}
		return out
	default:
		return v
	}
}

// idKey renders an _id as a plain string: Extended JSON ObjectIDs as hex,
// other objects as their JSON text
func idKey(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case map[string]any:
		if oid, ok := id["$oid"].(string); ok && len(id) == 1 {
			return oid
		}
		b, err := json.Marshal(id)
		if err != nil {
			return fmt.Sprint(id)
		}
		return string(b)
	case nil:
		return ""
	default:
		return fmt.Sprint(id)
	}
}

func isVolatile(field string) bool {
	for _, f := range VolatileFields {
		if f == field {
			return true
		}
	}
	return false
}
