package domain

import "strings"

const (
	// SystemCollectionPrefix marks server-internal collections
	SystemCollectionPrefix = "_"

	// MigrationsCollection is the bookkeeping collection migration runners write to
	MigrationsCollection = "migrations"
)

// IsUserCollection reports whether a collection takes part in comparisons
func IsUserCollection(c Collection) bool {
	if strings.HasPrefix(c.Name, SystemCollectionPrefix) {
		return false
	}
	return c.Name != MigrationsCollection
}

// FilterUserCollections drops system and bookkeeping collections, keeping order
func FilterUserCollections(collections []Collection) []Collection {
	out := make([]Collection, 0, len(collections))
	for _, c := range collections {
		if IsUserCollection(c) {
			out = append(out, c)
		}
	}
	return out
}

// CommonCollection pairs the descriptors of a collection present on both sides
type CommonCollection struct {
	Left  Collection
	Right Collection
}

// Partition is the result of reconciling two collection catalogs
type Partition struct {
	ToCreate []Collection // in left, absent from right
	ToDelete []Collection // in right, absent from left
	Common   []CommonCollection
}

// PartitionCollections splits the left (reference) and right (compared)
// catalogs by (name, type) identity. A name present on both sides with a
// different type is two distinct identities: it is both created and deleted.
// Order follows the input order of each side.
func PartitionCollections(left, right []Collection) Partition {
	leftKeys := make(map[CollectionKey]struct{}, len(left))
	for _, c := range left {
		leftKeys[c.Key()] = struct{}{}
	}
	rightByKey := make(map[CollectionKey]Collection, len(right))
	for _, c := range right {
		rightByKey[c.Key()] = c
	}

	var p Partition
	for _, c := range left {
		if r, ok := rightByKey[c.Key()]; ok {
			p.Common = append(p.Common, CommonCollection{Left: c, Right: r})
			continue
		}
		p.ToCreate = append(p.ToCreate, c)
	}
	for _, c := range right {
		if _, ok := leftKeys[c.Key()]; !ok {
			p.ToDelete = append(p.ToDelete, c)
		}
	}
	return p
}
