package domain

import (
	"sort"
	"time"
)

// Search is a case-insensitive substring match OR-combined across fields.
type Search struct {
	Term   string
	Fields []string
}

// Filter is the store predicate produced by the filter builder. Every set
// member is AND-combined.
type Filter struct {
	ID        *int64
	Status    *bool
	CreatedBy *int64
	// Equals holds exact matches on domain fields (foreign key scoping).
	Equals map[string]any
	Search *Search
}

// ByID returns a filter matching exactly one entity id.
func ByID(id int64) Filter {
	return Filter{ID: &id}
}

// EqualKeys returns the Equals keys in a stable order.
func (f Filter) EqualKeys() []string {
	keys := make([]string, 0, len(f.Equals))
	for k := range f.Equals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Bookkeeping sort keys understood by every store.
const (
	SortCreatedAt = "createdAt"
	SortUpdatedAt = "updatedAt"
	SortID        = "id"
)

type Sort struct {
	Field string
	Desc  bool
}

// DefaultSort is newest-created first.
var DefaultSort = Sort{Field: SortCreatedAt, Desc: true}

// Patch is a partial merge applied by UpdateOne.
type Patch struct {
	Fields    Fields
	Status    *bool
	UpdatedBy *int64
	UpdatedAt time.Time
}
