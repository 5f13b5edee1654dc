package response

import (
	"encoding/json"
	"net/http"

	"github.com/eventhub/eventhub/internal/domain"
	apperr "github.com/eventhub/eventhub/pkg/error"
)

// Envelope is the body of every JSON response. Status repeats the HTTP code.
type Envelope struct {
	Status     int             `json:"status"`
	Message    string          `json:"message"`
	Data       interface{}     `json:"data"`
	Pagination interface{}     `json:"pagination,omitempty"`
	Errors     map[string]any  `json:"errors,omitempty"`
	Detail     json.RawMessage `json:"detail,omitempty"`
}

// PageMeta is paging metadata before key naming is applied.
type PageMeta struct {
	Page       int
	Limit      int
	Total      int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

type longPagination struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalItems   int  `json:"totalItems"`
	ItemsPerPage int  `json:"itemsPerPage"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
}

type shortPagination struct {
	Current     int  `json:"current"`
	Pages       int  `json:"pages"`
	Total       int  `json:"total"`
	Limit       int  `json:"limit"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, envelope Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	envelope.Status = statusCode
	_ = json.NewEncoder(w).Encode(envelope)
}

func Success(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	WriteJSON(w, statusCode, Envelope{Message: message, Data: data})
}

func OK(w http.ResponseWriter, message string, data interface{}) {
	Success(w, http.StatusOK, message, data)
}

func Created(w http.ResponseWriter, message string, data interface{}) {
	Success(w, http.StatusCreated, message, data)
}

// Paginated writes a list page using the resource's pagination key set.
func Paginated(w http.ResponseWriter, message string, data interface{}, style domain.PaginationStyle, meta PageMeta) {
	var pagination interface{}
	if style == domain.PaginationShort {
		pagination = shortPagination{
			Current:     meta.Page,
			Pages:       meta.TotalPages,
			Total:       meta.Total,
			Limit:       meta.Limit,
			HasNextPage: meta.HasNext,
			HasPrevPage: meta.HasPrev,
		}
	} else {
		pagination = longPagination{
			CurrentPage:  meta.Page,
			TotalPages:   meta.TotalPages,
			TotalItems:   meta.Total,
			ItemsPerPage: meta.Limit,
			HasNextPage:  meta.HasNext,
			HasPrevPage:  meta.HasPrev,
		}
	}
	WriteJSON(w, http.StatusOK, Envelope{Message: message, Data: data, Pagination: pagination})
}

func Error(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, Envelope{Message: message})
}

// NotFound always carries an empty object as data.
func NotFound(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusNotFound, Envelope{Message: message, Data: struct{}{}})
}

func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, message)
}

func TooManyRequests(w http.ResponseWriter, message string) {
	Error(w, http.StatusTooManyRequests, message)
}

func InternalServerError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, apperr.GenericInternalMessage)
}

// FromError writes the envelope for any error. Unclassified errors become
// the generic 500.
func FromError(w http.ResponseWriter, err error) {
	appErr := apperr.MapError(err)

	switch appErr.Code {
	case apperr.CodeNotFound:
		NotFound(w, appErr.Message)
	case apperr.CodeUpstream:
		env := Envelope{Message: appErr.Message}
		if len(appErr.Detail) > 0 {
			if json.Valid(appErr.Detail) {
				env.Detail = appErr.Detail
			} else {
				raw, _ := json.Marshal(string(appErr.Detail))
				env.Detail = raw
			}
		}
		WriteJSON(w, appErr.Status, env)
	default:
		WriteJSON(w, appErr.Status, Envelope{Message: appErr.Message, Errors: appErr.Details})
	}
}
