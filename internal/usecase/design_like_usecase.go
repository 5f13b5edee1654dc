package usecase

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"github.com/eventhub/eventhub/infrastructure/service/logger"
	"github.com/eventhub/eventhub/internal/domain"
	"github.com/eventhub/eventhub/internal/ports"
	apperr "github.com/eventhub/eventhub/pkg/error"
)

const designRefField = "community_designs_id"

// DesignLikeUseCase keeps like records and the design like counter in step.
type DesignLikeUseCase struct {
	store  ports.ResourceStore
	logger logger.Logger
	now    func() time.Time
}

func NewDesignLikeUseCase(store ports.ResourceStore, log logger.Logger) *DesignLikeUseCase {
	return &DesignLikeUseCase{store: store, logger: log, now: time.Now}
}

// Like records that requester likes the design and bumps its counter. Both
// writes commit together or not at all.
func (uc *DesignLikeUseCase) Like(ctx context.Context, designID, requester int64) (*domain.Record, error) {
	designs, likes := domain.CommunityDesigns, domain.CommunityDesignLikes
	var like *domain.Record

	err := uc.store.WithinTx(ctx, func(ctx context.Context, tx ports.ResourceStore) error {
		design := domain.Filter{ID: &designID, Status: lo.ToPtr(true)}
		if _, err := tx.FindOne(ctx, designs, design); err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return apperr.NewNotFound(designs.NotFoundMessage())
			}
			return errors.Wrap(err, "find design")
		}

		// Locks the design row so concurrent likes by the same user serialize.
		if _, err := tx.Increment(ctx, designs, design, domain.LikesField, 1); err != nil {
			return errors.Wrap(err, "increment likes")
		}

		existing, err := tx.Count(ctx, likes, domain.Filter{
			CreatedBy: &requester,
			Equals:    map[string]any{designRefField: designID},
		})
		if err != nil {
			return errors.Wrap(err, "count likes")
		}
		if existing > 0 {
			return apperr.NewConflict("Community design already liked")
		}

		now := uc.now().UTC()
		like = &domain.Record{
			IDField:   likes.IDField,
			Fields:    domain.Fields{designRefField: designID},
			Status:    true,
			CreatedBy: &requester,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return errors.Wrap(tx.Create(ctx, likes, like), "create like")
	})
	if err != nil {
		return nil, err
	}

	logger.LogMutation(ctx, uc.logger, "like", likes.Name, like.ID, &requester, map[string]interface{}{
		"design_id": designID,
	})
	return like, nil
}

// Unlike removes the requester's like and decrements the counter, which
// never drops below zero.
func (uc *DesignLikeUseCase) Unlike(ctx context.Context, likeID, requester int64) (*domain.Record, error) {
	designs, likes := domain.CommunityDesigns, domain.CommunityDesignLikes
	var removed *domain.Record

	err := uc.store.WithinTx(ctx, func(ctx context.Context, tx ports.ResourceStore) error {
		owned := domain.Filter{ID: &likeID, CreatedBy: &requester}
		rec, err := tx.DeleteOne(ctx, likes, owned)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return apperr.NewNotFound(likes.NotFoundMessage())
			}
			return errors.Wrap(err, "delete like")
		}
		removed = rec

		designID, ok := rec.Fields.Int64(designRefField)
		if !ok {
			return nil
		}
		_, err = tx.Increment(ctx, designs, domain.ByID(designID), domain.LikesField, -1)
		if err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
			return errors.Wrap(err, "decrement likes")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.LogMutation(ctx, uc.logger, "unlike", likes.Name, removed.ID, &requester, nil)
	return removed, nil
}
