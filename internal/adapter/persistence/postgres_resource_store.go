package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/lib/pq"

	"github.com/eventhub/eventhub/internal/domain"
	"github.com/eventhub/eventhub/internal/ports"
)

// uniqueViolation is the Postgres SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// PostgresResourceStore implements ResourceStore on a single JSONB table
type PostgresResourceStore struct {
	db   *sql.DB
	q    querier
	inTx bool
}

// NewPostgresResourceStore creates a new PostgreSQL resource store
func NewPostgresResourceStore(db *sql.DB) *PostgresResourceStore {
	return &PostgresResourceStore{db: db, q: db}
}

var _ ports.ResourceStore = (*PostgresResourceStore)(nil)

// Create assigns the next id from resource_sequences and inserts the record.
// Unique fields are checked under a per-resource advisory lock.
func (s *PostgresResourceStore) Create(ctx context.Context, res domain.Resource, rec *domain.Record) error {
	return s.atomic(ctx, func(ctx context.Context, tx *PostgresResourceStore) error {
		if err := tx.checkUnique(ctx, res, rec.Fields, nil); err != nil {
			return err
		}

		var id int64
		err := tx.q.QueryRowContext(ctx, `
			INSERT INTO resource_sequences (resource, last_id) VALUES ($1, 1)
			ON CONFLICT (resource) DO UPDATE SET last_id = resource_sequences.last_id + 1
			RETURNING last_id
		`, res.Name).Scan(&id)
		if err != nil {
			return errors.Wrapf(err, "failed to allocate %s id", res.Name)
		}

		fieldsJSON, err := json.Marshal(rec.Fields)
		if err != nil {
			return errors.Wrap(err, "failed to marshal fields")
		}

		_, err = tx.q.ExecContext(ctx, `
			INSERT INTO resource_records (resource, entity_id, fields, status, created_by, updated_by, created_at, updated_at)
			VALUES ($1, $2, $3::jsonb, $4, $5, $6, $7, $8)
		`,
			res.Name,
			id,
			string(fieldsJSON),
			rec.Status,
			rec.CreatedBy,
			rec.UpdatedBy,
			rec.CreatedAt,
			rec.UpdatedAt,
		)
		if err != nil {
			return mapWriteError(err, "failed to create "+res.Name)
		}

		rec.ID = id
		rec.IDField = res.IDField
		return nil
	})
}

// FindMany retrieves a page of records
func (s *PostgresResourceStore) FindMany(ctx context.Context, res domain.Resource, filter domain.Filter, sort domain.Sort, skip, limit int) ([]*domain.Record, error) {
	query, args := buildFindMany(res.Name, filter, sort, skip, limit)

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query %s", res.Name)
	}
	defer rows.Close()

	records := []*domain.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows, res)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "error iterating %s", res.Name)
	}

	return records, nil
}

// Count returns the number of matching records
func (s *PostgresResourceStore) Count(ctx context.Context, res domain.Resource, filter domain.Filter) (int, error) {
	query, args := buildCount(res.Name, filter)

	var count int
	if err := s.q.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, errors.Wrapf(err, "failed to count %s", res.Name)
	}
	return count, nil
}

// FindOne retrieves the lowest id record matching the filter
func (s *PostgresResourceStore) FindOne(ctx context.Context, res domain.Resource, filter domain.Filter) (*domain.Record, error) {
	query, args := buildFindMany(res.Name, filter, domain.Sort{Field: domain.SortID}, 0, 1)
	return s.queryOne(ctx, res, "find", query, args)
}

// UpdateOne merges the patch into the matching record
func (s *PostgresResourceStore) UpdateOne(ctx context.Context, res domain.Resource, filter domain.Filter, patch domain.Patch) (*domain.Record, error) {
	if patch.UpdatedAt.IsZero() {
		patch.UpdatedAt = time.Now().UTC()
	}
	fields := patch.Fields
	if fields == nil {
		fields = domain.Fields{}
	}
	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal patch")
	}

	var updated *domain.Record
	err = s.atomic(ctx, func(ctx context.Context, tx *PostgresResourceStore) error {
		if err := tx.checkUnique(ctx, res, fields, filter.ID); err != nil {
			return err
		}
		query, args := buildUpdate(res.Name, filter, fieldsJSON, patch)
		rec, err := tx.queryOne(ctx, res, "update", query, args)
		updated = rec
		return err
	})
	return updated, err
}

// DeleteOne physically removes the matching record
func (s *PostgresResourceStore) DeleteOne(ctx context.Context, res domain.Resource, filter domain.Filter) (*domain.Record, error) {
	query, args := buildDelete(res.Name, filter)
	return s.queryOne(ctx, res, "delete", query, args)
}

// Increment adjusts a numeric field in place, clamped at zero
func (s *PostgresResourceStore) Increment(ctx context.Context, res domain.Resource, filter domain.Filter, field string, delta int64) (*domain.Record, error) {
	query, args := buildIncrement(res.Name, filter, field, delta, domain.Patch{UpdatedAt: time.Now().UTC()})
	return s.queryOne(ctx, res, "increment", query, args)
}

// WithinTx runs fn inside a database transaction. Nested calls reuse the
// outer transaction.
func (s *PostgresResourceStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx ports.ResourceStore) error) error {
	return s.atomic(ctx, func(ctx context.Context, tx *PostgresResourceStore) error {
		return fn(ctx, tx)
	})
}

func (s *PostgresResourceStore) atomic(ctx context.Context, fn func(ctx context.Context, tx *PostgresResourceStore) error) error {
	if s.inTx {
		return fn(ctx, s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}

	if err := fn(ctx, &PostgresResourceStore{db: s.db, q: tx, inTx: true}); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	return nil
}

// checkUnique must run inside a transaction; the advisory lock is released
// on commit or rollback.
func (s *PostgresResourceStore) checkUnique(ctx context.Context, res domain.Resource, fields domain.Fields, excludeID *int64) error {
	var pending []string
	for _, field := range res.UniqueFields {
		if _, ok := fields[field]; ok {
			pending = append(pending, field)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	if _, err := s.q.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", res.Name); err != nil {
		return errors.Wrap(err, "failed to lock resource")
	}

	for _, field := range pending {
		query, args := buildUniqueCheck(res.Name, field, fields[field], excludeID)
		var exists bool
		if err := s.q.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
			return errors.Wrapf(err, "failed to check unique %s", field)
		}
		if exists {
			return errors.Mark(errors.Newf("%s %s already taken", res.Name, field), domain.ErrDuplicateRecord)
		}
	}
	return nil
}

func (s *PostgresResourceStore) queryOne(ctx context.Context, res domain.Resource, op, query string, args []interface{}) (*domain.Record, error) {
	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapWriteError(err, "failed to "+op+" "+res.Name)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, mapWriteError(err, "failed to "+op+" "+res.Name)
		}
		return nil, domain.ErrRecordNotFound
	}

	return scanRecord(rows, res)
}

func scanRecord(rows *sql.Rows, res domain.Resource) (*domain.Record, error) {
	var (
		rec        domain.Record
		fieldsJSON []byte
		createdBy  sql.NullInt64
		updatedBy  sql.NullInt64
	)

	err := rows.Scan(
		&rec.ID,
		&fieldsJSON,
		&rec.Status,
		&createdBy,
		&updatedBy,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan %s", res.Name)
	}

	fields, err := domain.DecodeFields(fieldsJSON)
	if err != nil {
		return nil, err
	}

	rec.IDField = res.IDField
	rec.Fields = fields
	if createdBy.Valid {
		rec.CreatedBy = &createdBy.Int64
	}
	if updatedBy.Valid {
		rec.UpdatedBy = &updatedBy.Int64
	}
	return &rec, nil
}

func mapWriteError(err error, msg string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return errors.Mark(errors.Wrap(err, msg), domain.ErrDuplicateRecord)
	}
	return errors.Wrap(err, msg)
}
