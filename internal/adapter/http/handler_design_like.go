package http

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/eventhub/eventhub/infrastructure/http/middleware"
	"github.com/eventhub/eventhub/infrastructure/http/response"
	"github.com/eventhub/eventhub/infrastructure/service/logger"
	"github.com/eventhub/eventhub/internal/domain"
	apperr "github.com/eventhub/eventhub/pkg/error"
)

// DesignLikeService defines the like operations the handler depends on.
type DesignLikeService interface {
	Like(ctx context.Context, designID, requester int64) (*domain.Record, error)
	Unlike(ctx context.Context, likeID, requester int64) (*domain.Record, error)
}

// DesignLikeHandler serves the like/unlike routes of community designs.
// Listing likes goes through the generic resource handler.
type DesignLikeHandler struct {
	service DesignLikeService
	auth    *middleware.AuthMiddleware
	errorReporter
}

func NewDesignLikeHandler(service DesignLikeService, auth *middleware.AuthMiddleware, log logger.Logger) *DesignLikeHandler {
	return &DesignLikeHandler{service: service, auth: auth, errorReporter: errorReporter{logger: log}}
}

func (h *DesignLikeHandler) RegisterRoutes(router *mux.Router) {
	base := "/" + domain.CommunityDesignLikes.Path
	router.HandleFunc(base+"/create", h.auth.RequireAuth(h.Like)).Methods(http.MethodPost)
	router.HandleFunc(base+"/delete/{id}", h.auth.RequireAuth(h.Unlike)).Methods(http.MethodDelete)
}

// Like handles POST /community-design-likes/create
func (h *DesignLikeHandler) Like(w http.ResponseWriter, r *http.Request) {
	requester := middleware.RequesterID(r.Context())
	if requester == nil {
		h.fail(w, r, apperr.NewUnauthorized("Authentication required"))
		return
	}

	raw, err := readBody(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var req domain.CreateCommunityDesignLikeRequest
	if err := decodePayload(raw, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	like, err := h.service.Like(r.Context(), req.CommunityDesignsID, *requester)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Created(w, "Community design liked successfully", like)
}

// Unlike handles DELETE /community-design-likes/delete/{id}
func (h *DesignLikeHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	requester := middleware.RequesterID(r.Context())
	if requester == nil {
		h.fail(w, r, apperr.NewUnauthorized("Authentication required"))
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	like, err := h.service.Unlike(r.Context(), id, *requester)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.OK(w, "Community design unliked successfully", like)
}
