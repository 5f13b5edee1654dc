package ports

import (
	"context"

	"github.com/eventhub/eventhub/internal/domain"
)

// ResourceStore defines the interface for record persistence. Every call is
// scoped to exactly one resource type.
type ResourceStore interface {
	// Create assigns the next entity id of the resource and persists the record
	Create(ctx context.Context, res domain.Resource, rec *domain.Record) error

	// FindMany retrieves matching records in sort order, skipping skip rows
	FindMany(ctx context.Context, res domain.Resource, filter domain.Filter, sort domain.Sort, skip, limit int) ([]*domain.Record, error)

	// Count returns the number of records matching the filter, ignoring pagination
	Count(ctx context.Context, res domain.Resource, filter domain.Filter) (int, error)

	// FindOne retrieves a single record or domain.ErrRecordNotFound
	FindOne(ctx context.Context, res domain.Resource, filter domain.Filter) (*domain.Record, error)

	// UpdateOne merges the patch into the first matching record and returns it
	UpdateOne(ctx context.Context, res domain.Resource, filter domain.Filter, patch domain.Patch) (*domain.Record, error)

	// DeleteOne physically removes the first matching record and returns it
	DeleteOne(ctx context.Context, res domain.Resource, filter domain.Filter) (*domain.Record, error)

	// Increment adds delta to a numeric field, never going below zero
	Increment(ctx context.Context, res domain.Resource, filter domain.Filter, field string, delta int64) (*domain.Record, error)

	// WithinTx runs fn against a transactional view of the store. Any error
	// returned by fn rolls back every write made through that view.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx ResourceStore) error) error
}
