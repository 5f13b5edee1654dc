package usecase

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageRequest is the store window for one list call.
type PageRequest struct {
	Page  int
	Limit int
}

// Skip is the number of rows before the window. It saturates at math.MaxInt
// so a huge page lands past the end instead of wrapping.
func (p PageRequest) Skip() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// Pagination is the derived paging metadata, independent of key naming.
type Pagination struct {
	Page       int
	Limit      int
	Total      int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

// ParsePage reads page and limit. Missing or unparsable values use the
// defaults; a limit above MaxLimit is clamped.
func ParsePage(params url.Values) PageRequest {
	page := parsePositive(params.Get(ParamPage), DefaultPage)
	limit := parsePositive(params.Get(ParamLimit), DefaultLimit)
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return PageRequest{Page: page, Limit: limit}
}

func parsePositive(raw string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

// Paginate computes metadata for total matching rows. A page past the end
// simply has no next page.
func Paginate(req PageRequest, total int) Pagination {
	totalPages := 0
	if total > 0 && req.Limit > 0 {
		totalPages = (total + req.Limit - 1) / req.Limit
	}
	return Pagination{
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    req.Page < totalPages,
		HasPrev:    req.Page > 1,
	}
}
