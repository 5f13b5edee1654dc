package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhub/eventhub/infrastructure/service/logger"
	"github.com/eventhub/eventhub/internal/adapter/persistence"
	"github.com/eventhub/eventhub/internal/domain"
	apperr "github.com/eventhub/eventhub/pkg/error"
)

func newLikeFixture(t *testing.T) (*DesignLikeUseCase, *ResourceUseCase, *persistence.MemoryResourceStore) {
	t.Helper()
	store := persistence.NewMemoryResourceStore()
	log := logger.NewNopLogger()
	return NewDesignLikeUseCase(store, log), NewResourceUseCase(store, domain.DefaultRegistry(), log), store
}

func designLikes(t *testing.T, store *persistence.MemoryResourceStore, id int64) json.Number {
	t.Helper()
	design, err := store.FindOne(context.Background(), domain.CommunityDesigns, domain.ByID(id))
	require.NoError(t, err)
	return design.Fields[domain.LikesField].(json.Number)
}

func TestDesignLikeUseCase_LikeMissingDesign(t *testing.T) {
	likes, _, store := newLikeFixture(t)
	ctx := context.Background()

	_, err := likes.Like(ctx, 42, 7)
	require.Error(t, err)
	mapped := apperr.MapError(err)
	assert.Equal(t, 404, mapped.Status)
	assert.Equal(t, "Community design not found", mapped.Message)

	count, err := store.Count(ctx, domain.CommunityDesignLikes, domain.Filter{})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDesignLikeUseCase_LikeAndUnlike(t *testing.T) {
	likes, resources, store := newLikeFixture(t)
	ctx := context.Background()

	design, err := resources.Create(ctx, domain.CommunityDesigns, domain.Fields{"title": "Stage"}, lo.ToPtr(int64(1)))
	require.NoError(t, err)

	like, err := likes.Like(ctx, design.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), *like.CreatedBy)
	assert.Equal(t, json.Number("1"), designLikes(t, store, design.ID))

	_, err = likes.Like(ctx, design.ID, 7)
	require.Error(t, err)
	assert.Equal(t, 409, apperr.MapError(err).Status)
	assert.Equal(t, json.Number("1"), designLikes(t, store, design.ID))

	_, err = likes.Unlike(ctx, like.ID, 8)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	_, err = likes.Unlike(ctx, like.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, json.Number("0"), designLikes(t, store, design.ID))

	_, err = likes.Unlike(ctx, like.ID, 7)
	require.Error(t, err)
	assert.Equal(t, "Community design like not found", apperr.MapError(err).Message)
}

func TestDesignLikeUseCase_SoftDeletedDesign(t *testing.T) {
	likes, resources, _ := newLikeFixture(t)
	ctx := context.Background()

	design, err := resources.Create(ctx, domain.CommunityDesigns, domain.Fields{"title": "Stage"}, lo.ToPtr(int64(1)))
	require.NoError(t, err)
	_, err = resources.Delete(ctx, domain.CommunityDesigns, design.ID, lo.ToPtr(int64(1)))
	require.NoError(t, err)

	_, err = likes.Like(ctx, design.ID, 7)
	assert.True(t, apperr.IsNotFound(err))
}

func TestDesignLikeUseCase_ConcurrentLikesCountEachUserOnce(t *testing.T) {
	likes, resources, store := newLikeFixture(t)
	ctx := context.Background()

	design, err := resources.Create(ctx, domain.CommunityDesigns, domain.Fields{"title": "Stage"}, lo.ToPtr(int64(1)))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for user := int64(1); user <= 10; user++ {
		for attempt := 0; attempt < 3; attempt++ {
			wg.Add(1)
			go func(user int64) {
				defer wg.Done()
				_, _ = likes.Like(ctx, design.ID, user)
			}(user)
		}
	}
	wg.Wait()

	assert.Equal(t, json.Number("10"), designLikes(t, store, design.ID))
	count, err := store.Count(ctx, domain.CommunityDesignLikes, domain.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 10, count)
}
