package usecase

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/pool"

	"github.com/eventhub/eventhub/infrastructure/service/logger"
	"github.com/eventhub/eventhub/internal/domain"
	"github.com/eventhub/eventhub/internal/ports"
	apperr "github.com/eventhub/eventhub/pkg/error"
)

// ListResult is one page of records plus its paging metadata.
type ListResult struct {
	Records    []*domain.Record
	Pagination Pagination
}

// ResourceUseCase implements create/list/get/update/delete for any resource
// described by a domain.Resource.
type ResourceUseCase struct {
	store    ports.ResourceStore
	registry *domain.Registry
	filters  *FilterBuilder
	logger   logger.Logger
	now      func() time.Time
}

// NewResourceUseCase creates a new resource use case
func NewResourceUseCase(store ports.ResourceStore, registry *domain.Registry, log logger.Logger) *ResourceUseCase {
	return &ResourceUseCase{
		store:    store,
		registry: registry,
		filters:  NewFilterBuilder(),
		logger:   log,
		now:      time.Now,
	}
}

// Create stamps ownership, applies descriptor defaults, verifies parent
// references and persists the record.
func (uc *ResourceUseCase) Create(ctx context.Context, res domain.Resource, fields domain.Fields, requester *int64) (*domain.Record, error) {
	creator := requester
	if creator == nil {
		if !res.PublicCreate {
			return nil, apperr.NewUnauthorized("Authentication required")
		}
		id := res.DefaultCreatorID
		creator = &id
	}

	merged := res.Defaults.Clone()
	for k, v := range fields {
		merged[k] = v
	}

	if err := uc.checkParents(ctx, res, merged); err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	rec := &domain.Record{
		IDField:   res.IDField,
		Fields:    merged,
		Status:    true,
		CreatedBy: creator,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.store.Create(ctx, res, rec); err != nil {
		return nil, uc.storeError(res, err, "create")
	}

	logger.LogMutation(ctx, uc.logger, "create", res.Name, rec.ID, creator, nil)
	return rec, nil
}

// List returns one page of records matching the query parameters.
func (uc *ResourceUseCase) List(ctx context.Context, res domain.Resource, params url.Values) (*ListResult, error) {
	filter, err := uc.filters.Build(res, params)
	if err != nil {
		return nil, err
	}
	return uc.list(ctx, res, filter, params)
}

// ListByOwner is List restricted to records created by requester.
func (uc *ResourceUseCase) ListByOwner(ctx context.Context, res domain.Resource, params url.Values, requester int64) (*ListResult, error) {
	filter, err := uc.filters.BuildOwner(res, params, requester)
	if err != nil {
		return nil, err
	}
	return uc.list(ctx, res, filter, params)
}

func (uc *ResourceUseCase) list(ctx context.Context, res domain.Resource, filter domain.Filter, params url.Values) (*ListResult, error) {
	start := uc.now()
	page := ParsePage(params)
	sort := uc.filters.Sort(res, params)

	var (
		records []*domain.Record
		total   int
	)

	// findMany and count have no ordering dependency.
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		found, err := uc.store.FindMany(ctx, res, filter, sort, page.Skip(), page.Limit)
		if err != nil {
			return errors.Wrapf(err, "find %s", res.Name)
		}
		records = found
		return nil
	})
	p.Go(func(ctx context.Context) error {
		n, err := uc.store.Count(ctx, res, filter)
		if err != nil {
			return errors.Wrapf(err, "count %s", res.Name)
		}
		total = n
		return nil
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	if records == nil {
		records = []*domain.Record{}
	}

	logger.LogPerformance(ctx, uc.logger, "list "+res.Name, uc.now().Sub(start), map[string]interface{}{
		"page":  page.Page,
		"limit": page.Limit,
		"total": total,
	})

	return &ListResult{Records: records, Pagination: Paginate(page, total)}, nil
}

// Get returns a record by id whatever its status.
func (uc *ResourceUseCase) Get(ctx context.Context, res domain.Resource, id int64) (*domain.Record, error) {
	rec, err := uc.store.FindOne(ctx, res, domain.ByID(id))
	if err != nil {
		return nil, uc.storeError(res, err, "get")
	}
	return rec, nil
}

// Update merges fields into the record. A nil status leaves it unchanged.
func (uc *ResourceUseCase) Update(ctx context.Context, res domain.Resource, id int64, fields domain.Fields, status *bool, requester *int64) (*domain.Record, error) {
	if err := uc.checkParents(ctx, res, fields); err != nil {
		return nil, err
	}

	patch := domain.Patch{
		Fields:    fields,
		Status:    status,
		UpdatedBy: requester,
		UpdatedAt: uc.now().UTC(),
	}

	rec, err := uc.store.UpdateOne(ctx, res, domain.ByID(id), patch)
	if err != nil {
		return nil, uc.storeError(res, err, "update")
	}

	logger.LogMutation(ctx, uc.logger, "update", res.Name, rec.ID, requester, nil)
	return rec, nil
}

// Delete soft deletes by flipping status, or physically removes the record
// for hard-delete resources.
func (uc *ResourceUseCase) Delete(ctx context.Context, res domain.Resource, id int64, requester *int64) (*domain.Record, error) {
	var (
		rec    *domain.Record
		err    error
		action = "soft_delete"
	)

	if res.Delete == domain.DeleteHard {
		action = "delete"
		rec, err = uc.store.DeleteOne(ctx, res, domain.ByID(id))
	} else {
		inactive := false
		rec, err = uc.store.UpdateOne(ctx, res, domain.ByID(id), domain.Patch{
			Status:    &inactive,
			UpdatedBy: requester,
			UpdatedAt: uc.now().UTC(),
		})
	}
	if err != nil {
		return nil, uc.storeError(res, err, action)
	}

	logger.LogMutation(ctx, uc.logger, action, res.Name, rec.ID, requester, nil)
	return rec, nil
}

// checkParents resolves every referenced parent present in fields.
func (uc *ResourceUseCase) checkParents(ctx context.Context, res domain.Resource, fields domain.Fields) error {
	for _, ref := range res.Parents {
		id, ok := fields.Int64(ref.Field)
		if !ok {
			continue
		}
		parent, found := uc.registry.Lookup(ref.Resource)
		if !found {
			return errors.Newf("unknown parent resource %q for %s", ref.Resource, res.Name)
		}
		if _, err := uc.store.FindOne(ctx, parent, domain.ByID(id)); err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return apperr.NewNotFound(ref.Label + " not found")
			}
			return errors.Wrapf(err, "lookup %s %d", parent.Name, id)
		}
	}
	return nil
}

func (uc *ResourceUseCase) storeError(res domain.Resource, err error, op string) error {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		return apperr.NewNotFound(res.NotFoundMessage())
	case errors.Is(err, domain.ErrDuplicateRecord):
		return apperr.NewValidation(fmt.Sprintf("%s already exists", res.Label)).Wrap(err)
	default:
		return errors.Wrapf(err, "%s %s", op, res.Name)
	}
}
