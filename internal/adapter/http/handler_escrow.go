package http

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/eventhub/eventhub/infrastructure/http/middleware"
	"github.com/eventhub/eventhub/infrastructure/service/logger"
	"github.com/eventhub/eventhub/internal/ports"
	apperr "github.com/eventhub/eventhub/pkg/error"
)

const idempotencyHeader = "Idempotency-Key"

// EscrowHandler relays /escrow/* calls to the escrow provider.
type EscrowHandler struct {
	gateway ports.EscrowGateway
	auth    *middleware.AuthMiddleware
	errorReporter
}

func NewEscrowHandler(gateway ports.EscrowGateway, auth *middleware.AuthMiddleware, log logger.Logger) *EscrowHandler {
	return &EscrowHandler{gateway: gateway, auth: auth, errorReporter: errorReporter{logger: log}}
}

func (h *EscrowHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/escrow/{path:.*}", h.auth.RequireAuth(h.Forward))
}

// Forward relays any method. A successful upstream reply is written back
// unchanged; failures surface through the error envelope.
func (h *EscrowHandler) Forward(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes+1))
	if err != nil {
		h.fail(w, r, apperr.NewValidation("Invalid request body"))
		return
	}
	if len(body) > maxRequestBytes {
		h.fail(w, r, apperr.NewValidation("Request body too large"))
		return
	}

	resp, err := h.gateway.Forward(r.Context(), ports.EscrowRequest{
		Method:         r.Method,
		Path:           mux.Vars(r)["path"],
		Query:          r.URL.Query(),
		Body:           body,
		IdempotencyKey: r.Header.Get(idempotencyHeader),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(resp.Status)
	_, _ = w.Write(resp.Body)
}
