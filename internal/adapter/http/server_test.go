package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhub/eventhub/infrastructure/http/middleware"
	"github.com/eventhub/eventhub/infrastructure/service/jwt"
	"github.com/eventhub/eventhub/infrastructure/service/logger"
	"github.com/eventhub/eventhub/internal/adapter/persistence"
	"github.com/eventhub/eventhub/internal/domain"
	"github.com/eventhub/eventhub/internal/usecase"
)

type testAPI struct {
	handler http.Handler
	store   *persistence.MemoryResourceStore
	tokens  *jwt.JWTService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	tokens, err := jwt.NewJWTService(jwt.Config{Secret: "test-secret", AccessTokenTTL: time.Hour})
	require.NoError(t, err)

	log := logger.NewNopLogger()
	store := persistence.NewMemoryResourceStore()
	auth := middleware.NewAuthMiddleware(tokens, log)

	routes := ResourceRoutes(usecase.NewResourceUseCase(store, domain.DefaultRegistry(), log), auth, log)
	routes = append(routes, NewDesignLikeHandler(usecase.NewDesignLikeUseCase(store, log), auth, log))

	handler := NewHandler(ServerConfig{APIPrefix: "/api"}, Dependencies{
		Routes:  routes,
		Metrics: middleware.NewHTTPMetrics("eventhub_test"),
		Logger:  log,
	})
	return &testAPI{handler: handler, store: store, tokens: tokens}
}

func (a *testAPI) do(t *testing.T, method, path string, user int64, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if user > 0 {
		token, err := a.tokens.GenerateAccessToken(user)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)

	var out map[string]any
	if rr.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	}
	return rr, out
}

func TestAPI_CreateItemCategory(t *testing.T) {
	api := newTestAPI(t)

	rr, body := api.do(t, http.MethodPost, "/api/item-categories/create", 7, map[string]any{"categorytxt": "Furniture"})

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.EqualValues(t, http.StatusCreated, body["status"])
	data := body["data"].(map[string]any)
	assert.EqualValues(t, 1, data["item_category_id"])
	assert.EqualValues(t, 7, data["createdBy"])
	assert.Equal(t, true, data["status"])
	assert.Equal(t, "Furniture", data["categorytxt"])
	assert.Nil(t, data["updatedBy"])
}

func TestAPI_ListItemsShortPagination(t *testing.T) {
	api := newTestAPI(t)

	rr, _ := api.do(t, http.MethodPost, "/api/item-categories/create", 7, map[string]any{"categorytxt": "Furniture"})
	require.Equal(t, http.StatusCreated, rr.Code)
	for i := 1; i <= 5; i++ {
		rr, _ := api.do(t, http.MethodPost, "/api/items/create", 7, map[string]any{
			"item_name":        fmt.Sprintf("Chair %d", i),
			"item_category_id": 1,
			"price":            "12.50",
			"quantity":         i,
		})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	}

	rr, body := api.do(t, http.MethodGet, "/api/items/getAll?limit=2", 0, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Len(t, body["data"], 2)
	pagination := body["pagination"].(map[string]any)
	assert.EqualValues(t, 3, pagination["pages"])
	assert.EqualValues(t, 5, pagination["total"])
	assert.EqualValues(t, 1, pagination["current"])
	assert.EqualValues(t, 2, pagination["limit"])
	assert.Equal(t, true, pagination["hasNextPage"])
	assert.Equal(t, false, pagination["hasPrevPage"])

	rr, body = api.do(t, http.MethodGet, "/api/items/getAll?limit=2&page=3", 0, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, body["data"], 1)
	assert.Equal(t, false, body["pagination"].(map[string]any)["hasNextPage"])
}

func TestAPI_HugePageIsEmpty(t *testing.T) {
	api := newTestAPI(t)

	for _, name := range []string{"Furniture", "Lighting", "Audio"} {
		rr, _ := api.do(t, http.MethodPost, "/api/item-categories/create", 7, map[string]any{"categorytxt": name})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	}

	rr, body := api.do(t, http.MethodGet, "/api/item-categories/getAll?page=922337203685477582&limit=10", 0, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Empty(t, body["data"])

	pagination := body["pagination"].(map[string]any)
	assert.EqualValues(t, 3, pagination["total"])
	assert.EqualValues(t, 1, pagination["pages"])
	assert.Equal(t, false, pagination["hasNextPage"])
}

func TestAPI_DeleteMissingEventEntryTicket(t *testing.T) {
	api := newTestAPI(t)

	rr, body := api.do(t, http.MethodDelete, "/api/event-entry-tickets/delete/3", 7, nil)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Event entry ticket not found", body["message"])
	assert.Equal(t, map[string]any{}, body["data"])
}

func TestAPI_LikeMissingDesign(t *testing.T) {
	api := newTestAPI(t)

	rr, _ := api.do(t, http.MethodPost, "/api/community-designs/create", 5, map[string]any{
		"title":     "Neon stage",
		"image_url": "https://cdn.example.com/neon.png",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr, body := api.do(t, http.MethodPost, "/api/community-design-likes/create", 7, map[string]any{"community_designs_id": 42})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Community design not found", body["message"])

	rr, body = api.do(t, http.MethodGet, "/api/community-design-likes/getAll", 0, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, body["data"])

	rr, body = api.do(t, http.MethodGet, "/api/community-designs/getById/1", 0, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.EqualValues(t, 0, body["data"].(map[string]any)["likes"])
}

func TestAPI_LikeAndUnlike(t *testing.T) {
	api := newTestAPI(t)

	rr, _ := api.do(t, http.MethodPost, "/api/community-designs/create", 5, map[string]any{
		"title":     "Neon stage",
		"image_url": "https://cdn.example.com/neon.png",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr, body := api.do(t, http.MethodPost, "/api/community-design-likes/create", 7, map[string]any{"community_designs_id": 1})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	likeID := body["data"].(map[string]any)["community_design_likes_id"]

	rr, _ = api.do(t, http.MethodPost, "/api/community-design-likes/create", 7, map[string]any{"community_designs_id": 1})
	assert.Equal(t, http.StatusConflict, rr.Code)

	_, body = api.do(t, http.MethodGet, "/api/community-designs/getById/1", 0, nil)
	assert.EqualValues(t, 1, body["data"].(map[string]any)["likes"])

	rr, _ = api.do(t, http.MethodDelete, fmt.Sprintf("/api/community-design-likes/delete/%v", likeID), 8, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr, _ = api.do(t, http.MethodDelete, fmt.Sprintf("/api/community-design-likes/delete/%v", likeID), 7, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	_, body = api.do(t, http.MethodGet, "/api/community-designs/getById/1", 0, nil)
	assert.EqualValues(t, 0, body["data"].(map[string]any)["likes"])
}

func TestAPI_AuthAndValidation(t *testing.T) {
	api := newTestAPI(t)

	rr, body := api.do(t, http.MethodPost, "/api/categories/create", 0, map[string]any{"category_name": "Music"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.EqualValues(t, http.StatusUnauthorized, body["status"])

	rr, body = api.do(t, http.MethodPost, "/api/categories/create", 7, map[string]any{"category_name": "M"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, body["errors"], "category_name")

	rr, _ = api.do(t, http.MethodPost, "/api/categories/create", 7, `{"category_name":`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr, _ = api.do(t, http.MethodGet, "/api/categories/getById/abc", 0, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Enquiries may be sent anonymously and are stamped with the default creator.
	rr, body = api.do(t, http.MethodPost, "/api/contact-enquiries/create", 0, map[string]any{
		"name":    "Ada",
		"email":   "ada@example.com",
		"subject": "Group booking",
		"message": "Do you offer discounts for groups of twenty?",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.EqualValues(t, 1, body["data"].(map[string]any)["createdBy"])
}

func TestAPI_UpdateAndSoftDelete(t *testing.T) {
	api := newTestAPI(t)

	rr, _ := api.do(t, http.MethodPost, "/api/categories/create", 7, map[string]any{"category_name": "Music"})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr, _ = api.do(t, http.MethodPut, "/api/categories/update", 7, map[string]any{"category_name": "Live music"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr, _ = api.do(t, http.MethodPut, "/api/categories/update", 8, map[string]any{"category_id": 99, "category_name": "Live music"})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr, body := api.do(t, http.MethodPut, "/api/categories/update", 8, map[string]any{"category_id": 1, "category_name": "Live music"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	data := body["data"].(map[string]any)
	assert.Equal(t, "Live music", data["category_name"])
	assert.EqualValues(t, 8, data["updatedBy"])

	rr, _ = api.do(t, http.MethodDelete, "/api/categories/delete/1", 8, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	// Soft deleted rows leave the default listing but stay reachable by id.
	_, body = api.do(t, http.MethodGet, "/api/categories/getAll", 0, nil)
	assert.Empty(t, body["data"])
	assert.EqualValues(t, 0, body["pagination"].(map[string]any)["totalItems"])

	_, body = api.do(t, http.MethodGet, "/api/categories/getAll?status=false", 0, nil)
	assert.Len(t, body["data"], 1)

	rr, body = api.do(t, http.MethodGet, "/api/categories/getById/1", 0, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, false, body["data"].(map[string]any)["status"])
}

func TestAPI_OwnerRouteAndHealth(t *testing.T) {
	api := newTestAPI(t)

	for _, user := range []int64{5, 7, 7} {
		rr, _ := api.do(t, http.MethodPost, "/api/community-designs/create", user, map[string]any{
			"title":     "Design",
			"image_url": "https://cdn.example.com/d.png",
		})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	}

	rr, body := api.do(t, http.MethodGet, "/api/community-designs/my-designs", 7, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, body["data"], 2)

	rr, _ = api.do(t, http.MethodGet, "/api/community-designs/my-designs", 0, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr, body = api.do(t, http.MethodGet, "/health", 0, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "healthy", body["status"])

	rr, body = api.do(t, http.MethodGet, "/api/nope", 0, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Route not found", body["message"])
}
