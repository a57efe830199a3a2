package arango

import (
	"testing"

	driver "github.com/arangodb/go-driver"

	"docdrift/internal/domain"
)

func TestToCollection(t *testing.T) {
	tests := []struct {
		name string
		info driver.CollectionInfo
		want domain.Collection
	}{
		{
			name: "document collection",
			info: driver.CollectionInfo{ID: "10021", Name: "users", Type: driver.CollectionTypeDocument},
			want: domain.Collection{Name: "users", Type: domain.CollectionTypeDocument, ID: 10021},
		},
		{
			name: "edge collection",
			info: driver.CollectionInfo{ID: "7", Name: "follows", Type: driver.CollectionTypeEdge},
			want: domain.Collection{Name: "follows", Type: domain.CollectionTypeEdge, ID: 7},
		},
		{
			name: "non-numeric id",
			info: driver.CollectionInfo{ID: "abc", Name: "odd", Type: driver.CollectionTypeDocument},
			want: domain.Collection{Name: "odd", Type: domain.CollectionTypeDocument},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toCollection(tt.info); got != tt.want {
				t.Errorf("toCollection() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSortByID(t *testing.T) {
	cols := []domain.Collection{{Name: "c", ID: 30}, {Name: "a", ID: 2}, {Name: "b", ID: 11}}
	sortByID(cols)

	for i, want := range []string{"a", "b", "c"} {
		if cols[i].Name != want {
			t.Errorf("position %d: expected %s, got %s", i, want, cols[i].Name)
		}
	}
}
