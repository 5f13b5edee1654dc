package persistence

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhub/eventhub/internal/domain"
	"github.com/eventhub/eventhub/internal/ports"
)

func seed(t *testing.T, store *MemoryResourceStore, res domain.Resource, rows ...domain.Fields) []*domain.Record {
	t.Helper()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	var out []*domain.Record
	for i, fields := range rows {
		rec := &domain.Record{
			Fields:    fields,
			Status:    true,
			CreatedBy: lo.ToPtr(int64(1)),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, store.Create(context.Background(), res, rec))
		out = append(out, rec)
	}
	return out
}

func TestMemoryStore_CreateAssignsSequentialIDsPerResource(t *testing.T) {
	store := NewMemoryResourceStore()

	items := seed(t, store, domain.Items, domain.Fields{"item_name": "a"}, domain.Fields{"item_name": "b"})
	cats := seed(t, store, domain.ItemCategories, domain.Fields{"categorytxt": "x"})

	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, int64(2), items[1].ID)
	assert.Equal(t, int64(1), cats[0].ID)
	assert.Equal(t, "item_id", items[0].IDField)
}

func TestMemoryStore_IDsNeverReused(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryResourceStore()
	seed(t, store, domain.Items, domain.Fields{"item_name": "a"}, domain.Fields{"item_name": "b"})

	_, err := store.DeleteOne(ctx, domain.Items, domain.ByID(2))
	require.NoError(t, err)

	next := seed(t, store, domain.Items, domain.Fields{"item_name": "c"})
	assert.Equal(t, int64(3), next[0].ID)
}

func TestMemoryStore_UniqueFields(t *testing.T) {
	store := NewMemoryResourceStore()
	seed(t, store, domain.Countries, domain.Fields{"country_name": "Nigeria", "iso_code": "NG"})

	err := store.Create(context.Background(), domain.Countries, &domain.Record{Fields: domain.Fields{"iso_code": "ng"}})
	assert.True(t, errors.Is(err, domain.ErrDuplicateRecord))
}

func TestMemoryStore_FindManyFilterSortPage(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryResourceStore()
	seed(t, store, domain.Items,
		domain.Fields{"item_name": "Oak table", "item_category_id": json.Number("1"), "price": json.Number("120")},
		domain.Fields{"item_name": "Pine table", "item_category_id": json.Number("1"), "price": json.Number("80")},
		domain.Fields{"item_name": "Chair", "item_category_id": json.Number("1"), "price": json.Number("40")},
		domain.Fields{"item_name": "Table lamp", "item_category_id": json.Number("2"), "price": json.Number("25")},
	)

	filter := domain.Filter{
		Equals: map[string]any{"item_category_id": int64(1)},
		Search: &domain.Search{Term: "TABLE", Fields: []string{"item_name"}},
	}

	all, err := store.FindMany(ctx, domain.Items, filter, domain.Sort{Field: "price"}, 0, 10)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Pine table", all[0].Fields["item_name"])
	assert.Equal(t, "Oak table", all[1].Fields["item_name"])

	count, err := store.Count(ctx, domain.Items, filter)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	newest, err := store.FindMany(ctx, domain.Items, domain.Filter{}, domain.DefaultSort, 1, 2)
	require.NoError(t, err)
	require.Len(t, newest, 2)
	assert.Equal(t, int64(3), newest[0].ID)
	assert.Equal(t, int64(2), newest[1].ID)

	past, err := store.FindMany(ctx, domain.Items, domain.Filter{}, domain.DefaultSort, 40, 10)
	require.NoError(t, err)
	assert.Empty(t, past)

	negative, err := store.FindMany(ctx, domain.Items, domain.Filter{}, domain.DefaultSort, -10, 10)
	require.NoError(t, err)
	assert.Empty(t, negative)
}

func TestMemoryStore_UpdateOneMergesAndStamps(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryResourceStore()
	seed(t, store, domain.Venues, domain.Fields{"venue_name": "Hall", "capacity": json.Number("100")})

	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	updated, err := store.UpdateOne(ctx, domain.Venues, domain.ByID(1), domain.Patch{
		Fields:    domain.Fields{"capacity": json.Number("150")},
		UpdatedBy: lo.ToPtr(int64(3)),
		UpdatedAt: at,
	})
	require.NoError(t, err)

	assert.Equal(t, "Hall", updated.Fields["venue_name"])
	assert.Equal(t, json.Number("150"), updated.Fields["capacity"])
	assert.Equal(t, int64(3), *updated.UpdatedBy)
	assert.Equal(t, at, updated.UpdatedAt)
	assert.True(t, updated.Status)

	_, err = store.UpdateOne(ctx, domain.Venues, domain.ByID(99), domain.Patch{})
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestMemoryStore_IncrementNeverBelowZero(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryResourceStore()
	seed(t, store, domain.CommunityDesigns, domain.Fields{"title": "Stage", "likes": json.Number("1")})

	rec, err := store.Increment(ctx, domain.CommunityDesigns, domain.ByID(1), "likes", -1)
	require.NoError(t, err)
	assert.Equal(t, json.Number("0"), rec.Fields["likes"])

	rec, err = store.Increment(ctx, domain.CommunityDesigns, domain.ByID(1), "likes", -1)
	require.NoError(t, err)
	assert.Equal(t, json.Number("0"), rec.Fields["likes"])
}

func TestMemoryStore_WithinTxRollsBack(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryResourceStore()
	seed(t, store, domain.CommunityDesigns, domain.Fields{"title": "Stage", "likes": json.Number("0")})

	boom := errors.New("boom")
	err := store.WithinTx(ctx, func(ctx context.Context, tx ports.ResourceStore) error {
		if _, err := tx.Increment(ctx, domain.CommunityDesigns, domain.ByID(1), "likes", 1); err != nil {
			return err
		}
		if err := tx.Create(ctx, domain.CommunityDesignLikes, &domain.Record{Fields: domain.Fields{}}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	design, err := store.FindOne(ctx, domain.CommunityDesigns, domain.ByID(1))
	require.NoError(t, err)
	assert.Equal(t, json.Number("0"), design.Fields["likes"])

	count, err := store.Count(ctx, domain.CommunityDesignLikes, domain.Filter{})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryResourceStore()
	seed(t, store, domain.FAQs, domain.Fields{"question": "Where?"})

	rec, err := store.FindOne(ctx, domain.FAQs, domain.ByID(1))
	require.NoError(t, err)
	rec.Fields["question"] = "changed"

	again, err := store.FindOne(ctx, domain.FAQs, domain.ByID(1))
	require.NoError(t, err)
	assert.Equal(t, "Where?", again.Fields["question"])
}
