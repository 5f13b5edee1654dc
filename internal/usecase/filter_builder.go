package usecase

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/eventhub/eventhub/internal/domain"
	apperr "github.com/eventhub/eventhub/pkg/error"
)

// Recognized list query parameters.
const (
	ParamSearch    = "search"
	ParamStatus    = "status"
	ParamSortBy    = "sortBy"
	ParamSortOrder = "sortOrder"
	ParamPage      = "page"
	ParamLimit     = "limit"
)

// FilterBuilder translates list query parameters into a store predicate.
type FilterBuilder struct{}

func NewFilterBuilder() *FilterBuilder {
	return &FilterBuilder{}
}

// Build produces the filter for a plain listing. params is never modified.
func (b *FilterBuilder) Build(res domain.Resource, params url.Values) (domain.Filter, error) {
	var filter domain.Filter

	status, err := b.status(res, params)
	if err != nil {
		return domain.Filter{}, err
	}
	filter.Status = status

	if term := strings.TrimSpace(params.Get(ParamSearch)); term != "" && len(res.SearchFields) > 0 {
		filter.Search = &domain.Search{
			Term:   term,
			Fields: append([]string(nil), res.SearchFields...),
		}
	}

	for _, scope := range res.Scopes {
		raw := strings.TrimSpace(params.Get(scope.Query))
		if raw == "" {
			continue
		}
		if filter.Equals == nil {
			filter.Equals = make(map[string]any, len(res.Scopes))
		}
		if scope.Text {
			filter.Equals[scope.Field] = raw
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return domain.Filter{}, apperr.NewValidation(fmt.Sprintf("%s must be an integer", scope.Query))
		}
		filter.Equals[scope.Field] = id
	}

	return filter, nil
}

// BuildOwner is Build restricted to records created by requester.
func (b *FilterBuilder) BuildOwner(res domain.Resource, params url.Values, requester int64) (domain.Filter, error) {
	filter, err := b.Build(res, params)
	if err != nil {
		return domain.Filter{}, err
	}
	filter.CreatedBy = lo.ToPtr(requester)
	return filter, nil
}

func (b *FilterBuilder) status(res domain.Resource, params url.Values) (*bool, error) {
	raw, present := params[ParamStatus]
	value := ""
	if present && len(raw) > 0 {
		value = strings.TrimSpace(raw[0])
	}
	present = present && value != ""

	switch res.StatusFilter {
	case domain.StatusLiteralTrue:
		if !present {
			return nil, nil
		}
		// Any value selects active records.
		return lo.ToPtr(true), nil
	case domain.StatusWhenPresent:
		if !present {
			return nil, nil
		}
		return parseStatus(value)
	default:
		if !present {
			return lo.ToPtr(true), nil
		}
		return parseStatus(value)
	}
}

func parseStatus(value string) (*bool, error) {
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil, apperr.NewValidation("status must be true or false")
	}
	return &parsed, nil
}

// Sort resolves sortBy/sortOrder. Unknown sort fields fall back to creation time.
func (b *FilterBuilder) Sort(res domain.Resource, params url.Values) domain.Sort {
	sort := domain.DefaultSort
	if key, ok := res.SortKey(strings.TrimSpace(params.Get(ParamSortBy))); ok {
		sort.Field = key
	}
	switch strings.ToLower(strings.TrimSpace(params.Get(ParamSortOrder))) {
	case "asc":
		sort.Desc = false
	case "desc":
		sort.Desc = true
	}
	return sort
}
