package domain

import "github.com/samber/lo"

// StatusFilterMode describes how a resource treats the `status` query parameter.
type StatusFilterMode int

const (
	// StatusDefaultActive lists active records unless `status` is given, in
	// which case the parsed boolean is used.
	StatusDefaultActive StatusFilterMode = iota
	// StatusWhenPresent filters only when `status` is given.
	StatusWhenPresent
	// StatusLiteralTrue filters on status=true whenever `status` is given,
	// whatever its value. A request for status=false still returns active rows.
	StatusLiteralTrue
)

// PaginationStyle selects the pagination metadata key set.
type PaginationStyle int

const (
	// PaginationLong: currentPage, totalPages, totalItems, itemsPerPage.
	PaginationLong PaginationStyle = iota
	// PaginationShort: current, pages, total, limit.
	PaginationShort
)

type DeleteMode int

const (
	DeleteSoft DeleteMode = iota
	DeleteHard
)

// RouteStyle selects the list/get route names.
type RouteStyle int

const (
	// RoutesGetAll: /getAll and /getById/{id}.
	RoutesGetAll RouteStyle = iota
	// RoutesAll: /all and /get/{id}.
	RoutesAll
)

type Operation string

const (
	OpCreate      Operation = "create"
	OpList        Operation = "list"
	OpGet         Operation = "get"
	OpUpdate      Operation = "update"
	OpDelete      Operation = "delete"
	OpListByOwner Operation = "listByOwner"
)

// ScopeParam maps a query parameter onto an exact-match field filter.
type ScopeParam struct {
	Query string
	Field string
	// Text scopes compare strings; otherwise the value must parse as an integer.
	Text bool
}

// ParentRef is a reference that must resolve before a record is created.
type ParentRef struct {
	Field    string
	Resource string
	Label    string
}

// Resource describes one entity type to the generic CRUD machinery.
type Resource struct {
	Name         string
	Path         string
	Label        string
	IDField      string
	SearchFields []string
	Scopes       []ScopeParam
	StatusFilter StatusFilterMode
	Pagination   PaginationStyle
	Delete       DeleteMode
	Routes       RouteStyle
	// OwnerRoute is the path segment of the "my resources" listing; empty disables it.
	OwnerRoute string
	// PublicCreate allows unauthenticated creation stamped with DefaultCreatorID.
	PublicCreate     bool
	DefaultCreatorID int64
	UpdateIDInPath   bool
	UniqueFields     []string
	SortFields       []string
	Defaults         Fields
	Parents          []ParentRef
	// Skip lists operations served by a dedicated handler instead.
	Skip []Operation
}

// NotFoundMessage is the message used for every 404 of this resource.
func (r Resource) NotFoundMessage() string {
	return r.Label + " not found"
}

func (r Resource) Serves(op Operation) bool {
	if op == OpListByOwner && r.OwnerRoute == "" {
		return false
	}
	return !lo.Contains(r.Skip, op)
}

// SortKey resolves a requested sortBy value. Bookkeeping keys are accepted in
// both camelCase and snake_case; domain fields must be whitelisted.
func (r Resource) SortKey(requested string) (string, bool) {
	switch requested {
	case "":
		return "", false
	case SortCreatedAt, "created_at":
		return SortCreatedAt, true
	case SortUpdatedAt, "updated_at":
		return SortUpdatedAt, true
	case SortID, r.IDField:
		return SortID, true
	}
	if lo.Contains(r.SortFields, requested) {
		return requested, true
	}
	return "", false
}

