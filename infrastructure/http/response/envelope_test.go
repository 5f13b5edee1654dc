package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eventhub/eventhub/internal/domain"
	apperr "github.com/eventhub/eventhub/pkg/error"
)

func TestPaginated_KeySets(t *testing.T) {
	meta := PageMeta{Page: 1, Limit: 2, Total: 5, TotalPages: 3, HasNext: true}

	long := httptest.NewRecorder()
	Paginated(long, "ok", []int{1, 2}, domain.PaginationLong, meta)
	assert.JSONEq(t, `{
		"status": 200, "message": "ok", "data": [1, 2],
		"pagination": {"currentPage": 1, "totalPages": 3, "totalItems": 5, "itemsPerPage": 2, "hasNextPage": true, "hasPrevPage": false}
	}`, long.Body.String())

	short := httptest.NewRecorder()
	Paginated(short, "ok", []int{1, 2}, domain.PaginationShort, meta)
	assert.JSONEq(t, `{
		"status": 200, "message": "ok", "data": [1, 2],
		"pagination": {"current": 1, "pages": 3, "total": 5, "limit": 2, "hasNextPage": true, "hasPrevPage": false}
	}`, short.Body.String())
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "not found",
			err:        apperr.NewNotFound("Item not found"),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"status":404,"message":"Item not found","data":{}}`,
		},
		{
			name:       "validation with details",
			err:        apperr.NewValidation("categorytxt is required").WithDetails(map[string]any{"categorytxt": "categorytxt is required"}),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"status":400,"message":"categorytxt is required","data":null,"errors":{"categorytxt":"categorytxt is required"}}`,
		},
		{
			name:       "upstream json detail",
			err:        apperr.NewUpstream(422, "Amount must be positive", []byte(`{"message":"Amount must be positive"}`)),
			wantStatus: 422,
			wantBody:   `{"status":422,"message":"Amount must be positive","data":null,"detail":{"message":"Amount must be positive"}}`,
		},
		{
			name:       "upstream text detail",
			err:        apperr.NewUpstream(502, "", []byte("bad gateway")),
			wantStatus: 502,
			wantBody:   `{"status":502,"message":"Bad Gateway","data":null,"detail":"bad gateway"}`,
		},
		{
			name:       "internal",
			err:        errors.New("pq: relation does not exist"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"status":500,"message":"Internal server error","data":null}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			FromError(rec, tt.err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
