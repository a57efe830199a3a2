package domain

import "strings"

// RecordKind is the closed set of structural differences the diff engine reports
type RecordKind int

const (
	RecordAdded RecordKind = iota + 1
	RecordRemoved
	RecordTypeChanged
	RecordValueChanged
)

func (k RecordKind) String() string {
	switch k {
	case RecordAdded:
		return "added"
	case RecordRemoved:
		return "removed"
	case RecordTypeChanged:
		return "type_changed"
	case RecordValueChanged:
		return "value_changed"
	default:
		return "unknown"
	}
}

func (k RecordKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Path addresses a document by id and optionally a nested field inside it
type Path []string

// DocumentID returns the first path element
func (p Path) DocumentID() string {
	if len(p) == 0 {
		return ""
	}
	return p[0]
}

// Field returns the field path below the document, empty for whole-document records
func (p Path) Field() []string {
	if len(p) < 2 {
		return nil
	}
	return p[1:]
}

// IsDocument reports whether the path addresses a whole document
func (p Path) IsDocument() bool {
	return len(p) == 1
}

func (p Path) String() string {
	if len(p) == 0 {
		return ""
	}
	if len(p) == 1 {
		return p[0]
	}
	return p[0] + ":" + strings.Join(p[1:], ".")
}

// Record is one unit of detected difference between a "from" document set
// and a "to" document set.
//
// Added carries the new value in New, Removed the old value in Old, the two
// change kinds carry both. Target is the complete "to" body of the document
// for every record on a document present on both sides; Source, the complete
// "from" body, is only attached in verbose mode.
type Record struct {
	Kind   RecordKind     `json:"kind" yaml:"kind"`
	Path   Path           `json:"path" yaml:"path"`
	Old    any            `json:"old,omitempty" yaml:"old,omitempty"`
	New    any            `json:"new,omitempty" yaml:"new,omitempty"`
	Target map[string]any `json:"-" yaml:"-"`
	Source map[string]any `json:"-" yaml:"-"`
}

// CollectionDiff holds the records found for one collection
type CollectionDiff struct {
	Collection Collection `json:"collection" yaml:"collection"`
	Records    []Record   `json:"records" yaml:"records"`
}
