package domain

import (
	"fmt"
	"strings"
)

// CollectionType distinguishes plain document collections from edge collections.
// The numeric values match the ArangoDB collection type codes.
type CollectionType int

const (
	CollectionTypeUnknown  CollectionType = 0
	CollectionTypeDocument CollectionType = 2
	CollectionTypeEdge     CollectionType = 3
)

func (t CollectionType) String() string {
	switch t {
	case CollectionTypeDocument:
		return "document"
	case CollectionTypeEdge:
		return "edge"
	default:
		return "unknown"
	}
}

// ParseCollectionType parses "document" or "edge" (case-insensitive)
func ParseCollectionType(s string) (CollectionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "document", "2":
		return CollectionTypeDocument, nil
	case "edge", "3":
		return CollectionTypeEdge, nil
	default:
		return CollectionTypeUnknown, fmt.Errorf("unknown collection type: %q", s)
	}
}

// MarshalText encodes the type by name so JSON, YAML and templates see "document"/"edge".
func (t CollectionType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *CollectionType) UnmarshalText(b []byte) error {
	parsed, err := ParseCollectionType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Collection describes one collection as seen in one environment at one point in time
type Collection struct {
	Name string         `json:"name" yaml:"name"`
	Type CollectionType `json:"type" yaml:"type"`
	ID   int64          `json:"id" yaml:"id"` // ordinal assigned by the server
}

// CollectionKey is the identity of a collection across environments
type CollectionKey struct {
	Name string
	Type CollectionType
}

// Key returns the (name, type) identity of the collection
func (c Collection) Key() CollectionKey {
	return CollectionKey{Name: c.Name, Type: c.Type}
}

func (c Collection) String() string {
	return fmt.Sprintf("%s - %s", c.Name, c.Type)
}

// CollectionDelta is the collection-level outcome of one comparison run
type CollectionDelta struct {
	ToCreate          []Collection `json:"toCreate" yaml:"toCreate"`
	ToDelete          []Collection `json:"toDelete" yaml:"toDelete"`
	ContentMismatches []Collection `json:"contentMismatches" yaml:"contentMismatches"`
}

// Empty reports whether both environments hold the same collections with the same content
func (d CollectionDelta) Empty() bool {
	return len(d.ToCreate) == 0 && len(d.ToDelete) == 0 && len(d.ContentMismatches) == 0
}

// MismatchNames returns the names of collections whose content differs
func (d CollectionDelta) MismatchNames() []string {
	names := make([]string, 0, len(d.ContentMismatches))
	for _, c := range d.ContentMismatches {
		names = append(names, c.Name)
	}
	return names
}
