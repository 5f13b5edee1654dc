package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/eventhub/eventhub/infrastructure/http/middleware"
	"github.com/eventhub/eventhub/infrastructure/http/response"
	"github.com/eventhub/eventhub/infrastructure/http/validator"
	"github.com/eventhub/eventhub/infrastructure/service/logger"
	"github.com/eventhub/eventhub/internal/domain"
	"github.com/eventhub/eventhub/internal/usecase"
	apperr "github.com/eventhub/eventhub/pkg/error"
)

// maxRequestBytes bounds a request body.
const maxRequestBytes = 1 << 20

// ResourceService defines the behavior the resource handlers depend on.
// Using an interface here makes the handlers easily testable with mocks.
type ResourceService interface {
	Create(ctx context.Context, res domain.Resource, fields domain.Fields, requester *int64) (*domain.Record, error)
	List(ctx context.Context, res domain.Resource, params url.Values) (*usecase.ListResult, error)
	ListByOwner(ctx context.Context, res domain.Resource, params url.Values, requester int64) (*usecase.ListResult, error)
	Get(ctx context.Context, res domain.Resource, id int64) (*domain.Record, error)
	Update(ctx context.Context, res domain.Resource, id int64, fields domain.Fields, status *bool, requester *int64) (*domain.Record, error)
	Delete(ctx context.Context, res domain.Resource, id int64, requester *int64) (*domain.Record, error)
}

// ResourceHandler serves the CRUD routes of one resource. C and U are the
// create and update payloads validated before the service is called.
type ResourceHandler[C, U any] struct {
	res     domain.Resource
	service ResourceService
	auth    *middleware.AuthMiddleware
	errorReporter
}

func NewResourceHandler[C, U any](res domain.Resource, service ResourceService, auth *middleware.AuthMiddleware, log logger.Logger) *ResourceHandler[C, U] {
	return &ResourceHandler[C, U]{res: res, service: service, auth: auth, errorReporter: errorReporter{logger: log}}
}

// RegisterRoutes registers the resource routes on router.
func (h *ResourceHandler[C, U]) RegisterRoutes(router *mux.Router) {
	base := "/" + h.res.Path
	listPath, getPath := "/getAll", "/getById/{id}"
	if h.res.Routes == domain.RoutesAll {
		listPath, getPath = "/all", "/get/{id}"
	}

	if h.res.Serves(domain.OpCreate) {
		create := h.auth.RequireAuth(h.Create)
		if h.res.PublicCreate {
			create = h.auth.OptionalAuth(h.Create)
		}
		router.HandleFunc(base+"/create", create).Methods(http.MethodPost)
	}
	if h.res.Serves(domain.OpList) {
		router.HandleFunc(base+listPath, h.List).Methods(http.MethodGet)
	}
	if h.res.Serves(domain.OpListByOwner) {
		router.HandleFunc(base+"/"+h.res.OwnerRoute, h.auth.RequireAuth(h.ListByOwner)).Methods(http.MethodGet)
	}
	if h.res.Serves(domain.OpGet) {
		router.HandleFunc(base+getPath, h.Get).Methods(http.MethodGet)
	}
	if h.res.Serves(domain.OpUpdate) {
		updatePath := base + "/update"
		if h.res.UpdateIDInPath {
			updatePath += "/{id}"
		}
		router.HandleFunc(updatePath, h.auth.RequireAuth(h.Update)).Methods(http.MethodPut, http.MethodPatch)
	}
	if h.res.Serves(domain.OpDelete) {
		router.HandleFunc(base+"/delete/{id}", h.auth.RequireAuth(h.Delete)).Methods(http.MethodDelete)
	}
}

// Create handles record creation
func (h *ResourceHandler[C, U]) Create(w http.ResponseWriter, r *http.Request) {
	raw, err := readBody(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var req C
	if err := decodePayload(raw, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	fields, err := domain.FieldsFrom(req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	rec, err := h.service.Create(r.Context(), h.res, fields, middleware.RequesterID(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Created(w, h.res.Label+" created successfully", rec)
}

// List handles paginated listing
func (h *ResourceHandler[C, U]) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context(), h.res, r.URL.Query())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writePage(w, result)
}

// ListByOwner lists the records created by the requester.
func (h *ResourceHandler[C, U]) ListByOwner(w http.ResponseWriter, r *http.Request) {
	requester := middleware.RequesterID(r.Context())
	if requester == nil {
		h.fail(w, r, apperr.NewUnauthorized("Authentication required"))
		return
	}

	result, err := h.service.ListByOwner(r.Context(), h.res, r.URL.Query(), *requester)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writePage(w, result)
}

// Get handles retrieving a single record
func (h *ResourceHandler[C, U]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	rec, err := h.service.Get(r.Context(), h.res, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.OK(w, h.res.Label+" retrieved successfully", rec)
}

// Update merges the body into an existing record. The id comes from the body
// unless the resource takes it from the path.
func (h *ResourceHandler[C, U]) Update(w http.ResponseWriter, r *http.Request) {
	raw, err := readBody(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var req U
	if err := decodePayload(raw, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	body, err := domain.DecodeFields(raw)
	if err != nil {
		h.fail(w, r, apperr.NewValidation("Invalid request body"))
		return
	}

	var id int64
	if h.res.UpdateIDInPath {
		id, err = pathID(r)
	} else {
		id, err = bodyID(body, h.res.IDField)
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	status, err := bodyStatus(body)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	fields, err := domain.FieldsFrom(req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	rec, err := h.service.Update(r.Context(), h.res, id, fields, status, middleware.RequesterID(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.OK(w, h.res.Label+" updated successfully", rec)
}

// Delete handles soft or hard deletion
func (h *ResourceHandler[C, U]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	rec, err := h.service.Delete(r.Context(), h.res, id, middleware.RequesterID(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.OK(w, h.res.Label+" deleted successfully", rec)
}

func (h *ResourceHandler[C, U]) writePage(w http.ResponseWriter, result *usecase.ListResult) {
	p := result.Pagination
	response.Paginated(w, h.res.Label+" list retrieved successfully", result.Records, h.res.Pagination, response.PageMeta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      p.Total,
		TotalPages: p.TotalPages,
		HasNext:    p.HasNext,
		HasPrev:    p.HasPrev,
	})
}

func readBody(r *http.Request) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes+1))
	if err != nil {
		return nil, apperr.NewValidation("Invalid request body")
	}
	if len(raw) > maxRequestBytes {
		return nil, apperr.NewValidation("Request body too large")
	}
	return raw, nil
}

// decodePayload decodes and validates a JSON object into dst.
func decodePayload(raw []byte, dst any) error {
	if len(raw) == 0 {
		return apperr.NewValidation("Request body is required")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return apperr.NewValidation("Invalid request body")
	}
	return validator.ValidateRequest(dst)
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.NewValidation("id must be a positive integer")
	}
	return id, nil
}

func bodyID(body domain.Fields, idField string) (int64, error) {
	if _, present := body[idField]; !present {
		return 0, apperr.NewValidation(fmt.Sprintf("%s is required", idField))
	}
	id, ok := body.Int64(idField)
	if !ok || id <= 0 {
		return 0, apperr.NewValidation(fmt.Sprintf("%s must be a positive integer", idField))
	}
	return id, nil
}

func bodyStatus(body domain.Fields) (*bool, error) {
	v, present := body["status"]
	if !present || v == nil {
		return nil, nil
	}
	status, ok := v.(bool)
	if !ok {
		return nil, apperr.NewValidation("status must be a boolean")
	}
	return &status, nil
}
