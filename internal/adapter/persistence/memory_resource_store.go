package persistence

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/eventhub/eventhub/internal/domain"
	"github.com/eventhub/eventhub/internal/ports"
)

// MemoryResourceStore keeps records in process. It backs tests and the
// memory store driver.
type MemoryResourceStore struct {
	mu    sync.RWMutex
	state *memoryState
}

func NewMemoryResourceStore() *MemoryResourceStore {
	return &MemoryResourceStore{state: newMemoryState()}
}

var _ ports.ResourceStore = (*MemoryResourceStore)(nil)

func (s *MemoryResourceStore) Create(ctx context.Context, res domain.Resource, rec *domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.create(res, rec)
}

func (s *MemoryResourceStore) FindMany(ctx context.Context, res domain.Resource, filter domain.Filter, sort domain.Sort, skip, limit int) ([]*domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.findMany(res, filter, sort, skip, limit), nil
}

func (s *MemoryResourceStore) Count(ctx context.Context, res domain.Resource, filter domain.Filter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.match(res, filter)), nil
}

func (s *MemoryResourceStore) FindOne(ctx context.Context, res domain.Resource, filter domain.Filter) (*domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.findOne(res, filter)
}

func (s *MemoryResourceStore) UpdateOne(ctx context.Context, res domain.Resource, filter domain.Filter, patch domain.Patch) (*domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.updateOne(res, filter, patch)
}

func (s *MemoryResourceStore) DeleteOne(ctx context.Context, res domain.Resource, filter domain.Filter) (*domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.deleteOne(res, filter)
}

func (s *MemoryResourceStore) Increment(ctx context.Context, res domain.Resource, filter domain.Filter, field string, delta int64) (*domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.increment(res, filter, field, delta)
}

// WithinTx holds the write lock for the whole of fn and restores a snapshot
// if fn fails.
func (s *MemoryResourceStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx ports.ResourceStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	if err := fn(ctx, &memoryTx{state: s.state}); err != nil {
		s.state = snapshot
		return err
	}
	return nil
}

// memoryTx operates on the state while the owning store's lock is held.
type memoryTx struct {
	state *memoryState
}

func (t *memoryTx) Create(ctx context.Context, res domain.Resource, rec *domain.Record) error {
	return t.state.create(res, rec)
}

func (t *memoryTx) FindMany(ctx context.Context, res domain.Resource, filter domain.Filter, sort domain.Sort, skip, limit int) ([]*domain.Record, error) {
	return t.state.findMany(res, filter, sort, skip, limit), nil
}

func (t *memoryTx) Count(ctx context.Context, res domain.Resource, filter domain.Filter) (int, error) {
	return len(t.state.match(res, filter)), nil
}

func (t *memoryTx) FindOne(ctx context.Context, res domain.Resource, filter domain.Filter) (*domain.Record, error) {
	return t.state.findOne(res, filter)
}

func (t *memoryTx) UpdateOne(ctx context.Context, res domain.Resource, filter domain.Filter, patch domain.Patch) (*domain.Record, error) {
	return t.state.updateOne(res, filter, patch)
}

func (t *memoryTx) DeleteOne(ctx context.Context, res domain.Resource, filter domain.Filter) (*domain.Record, error) {
	return t.state.deleteOne(res, filter)
}

func (t *memoryTx) Increment(ctx context.Context, res domain.Resource, filter domain.Filter, field string, delta int64) (*domain.Record, error) {
	return t.state.increment(res, filter, field, delta)
}

func (t *memoryTx) WithinTx(ctx context.Context, fn func(ctx context.Context, tx ports.ResourceStore) error) error {
	return fn(ctx, t)
}

type memoryTable struct {
	lastID int64
	rows   map[int64]*domain.Record
}

type memoryState struct {
	tables map[string]*memoryTable
}

func newMemoryState() *memoryState {
	return &memoryState{tables: make(map[string]*memoryTable)}
}

func (m *memoryState) table(name string) *memoryTable {
	t, ok := m.tables[name]
	if !ok {
		t = &memoryTable{rows: make(map[int64]*domain.Record)}
		m.tables[name] = t
	}
	return t
}

func (m *memoryState) clone() *memoryState {
	out := newMemoryState()
	for name, t := range m.tables {
		ct := &memoryTable{lastID: t.lastID, rows: make(map[int64]*domain.Record, len(t.rows))}
		for id, rec := range t.rows {
			ct.rows[id] = rec.Clone()
		}
		out.tables[name] = ct
	}
	return out
}

func (m *memoryState) create(res domain.Resource, rec *domain.Record) error {
	t := m.table(res.Name)
	if err := m.checkUnique(res, rec.Fields, 0); err != nil {
		return err
	}

	t.lastID++
	rec.ID = t.lastID
	rec.IDField = res.IDField
	if rec.Fields == nil {
		rec.Fields = domain.Fields{}
	}
	t.rows[rec.ID] = rec.Clone()
	return nil
}

func (m *memoryState) checkUnique(res domain.Resource, fields domain.Fields, excludeID int64) error {
	t := m.table(res.Name)
	for _, field := range res.UniqueFields {
		value, ok := fields[field]
		if !ok {
			continue
		}
		want := strings.ToLower(domain.ScalarString(value))
		for id, row := range t.rows {
			if id == excludeID {
				continue
			}
			if strings.ToLower(domain.ScalarString(row.Fields[field])) == want {
				return errors.Mark(errors.Newf("%s %s already taken", res.Name, field), domain.ErrDuplicateRecord)
			}
		}
	}
	return nil
}

// match returns the matching rows ordered by id.
func (m *memoryState) match(res domain.Resource, filter domain.Filter) []*domain.Record {
	t := m.table(res.Name)
	var out []*domain.Record
	for _, rec := range t.rows {
		if matches(rec, filter) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memoryState) findMany(res domain.Resource, filter domain.Filter, by domain.Sort, skip, limit int) []*domain.Record {
	rows := m.match(res, filter)
	sort.SliceStable(rows, func(i, j int) bool {
		c := compareRecords(rows[i], rows[j], by.Field)
		if c == 0 {
			c = compareInt(rows[i].ID, rows[j].ID)
		}
		if by.Desc {
			return c > 0
		}
		return c < 0
	})

	if skip < 0 || skip >= len(rows) {
		return []*domain.Record{}
	}
	rows = rows[skip:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}

	out := make([]*domain.Record, len(rows))
	for i, rec := range rows {
		out[i] = rec.Clone()
	}
	return out
}

func (m *memoryState) first(res domain.Resource, filter domain.Filter) (*domain.Record, error) {
	rows := m.match(res, filter)
	if len(rows) == 0 {
		return nil, domain.ErrRecordNotFound
	}
	return rows[0], nil
}

func (m *memoryState) findOne(res domain.Resource, filter domain.Filter) (*domain.Record, error) {
	rec, err := m.first(res, filter)
	if err != nil {
		return nil, err
	}
	return rec.Clone(), nil
}

func (m *memoryState) updateOne(res domain.Resource, filter domain.Filter, patch domain.Patch) (*domain.Record, error) {
	rec, err := m.first(res, filter)
	if err != nil {
		return nil, err
	}
	if err := m.checkUnique(res, patch.Fields, rec.ID); err != nil {
		return nil, err
	}

	for k, v := range patch.Fields.Clone() {
		rec.Fields[k] = v
	}
	if patch.Status != nil {
		rec.Status = *patch.Status
	}
	if patch.UpdatedBy != nil {
		by := *patch.UpdatedBy
		rec.UpdatedBy = &by
	}
	rec.UpdatedAt = stamp(patch.UpdatedAt)
	return rec.Clone(), nil
}

func (m *memoryState) deleteOne(res domain.Resource, filter domain.Filter) (*domain.Record, error) {
	rec, err := m.first(res, filter)
	if err != nil {
		return nil, err
	}
	delete(m.table(res.Name).rows, rec.ID)
	return rec, nil
}

func (m *memoryState) increment(res domain.Resource, filter domain.Filter, field string, delta int64) (*domain.Record, error) {
	rec, err := m.first(res, filter)
	if err != nil {
		return nil, err
	}
	current, _ := rec.Fields.Int64(field)
	next := current + delta
	if next < 0 {
		next = 0
	}
	rec.Fields[field] = json.Number(strconv.FormatInt(next, 10))
	rec.UpdatedAt = stamp(time.Time{})
	return rec.Clone(), nil
}

func stamp(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}

func matches(rec *domain.Record, filter domain.Filter) bool {
	if filter.ID != nil && rec.ID != *filter.ID {
		return false
	}
	if filter.Status != nil && rec.Status != *filter.Status {
		return false
	}
	if filter.CreatedBy != nil && (rec.CreatedBy == nil || *rec.CreatedBy != *filter.CreatedBy) {
		return false
	}
	for k, v := range filter.Equals {
		got, ok := rec.Fields[k]
		if !ok || domain.ScalarString(got) != domain.ScalarString(v) {
			return false
		}
	}
	if filter.Search != nil && len(filter.Search.Fields) > 0 {
		term := strings.ToLower(filter.Search.Term)
		found := false
		for _, field := range filter.Search.Fields {
			v, ok := rec.Fields[field]
			if ok && strings.Contains(strings.ToLower(domain.ScalarString(v)), term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func compareRecords(a, b *domain.Record, field string) int {
	switch field {
	case domain.SortCreatedAt, "":
		return a.CreatedAt.Compare(b.CreatedAt)
	case domain.SortUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	case domain.SortID:
		return compareInt(a.ID, b.ID)
	}

	av, bv := a.Fields[field], b.Fields[field]
	an, aok := number(av)
	bn, bok := number(bv)
	if aok && bok {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		}
		return 0
	}
	return strings.Compare(domain.ScalarString(av), domain.ScalarString(bv))
}

func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
