package ports

import (
	"context"
	"net/http"
	"net/url"
)

// EscrowRequest is an inbound call to relay to the escrow provider.
type EscrowRequest struct {
	Method         string
	Path           string
	Query          url.Values
	Body           []byte
	IdempotencyKey string
}

// EscrowResponse is a successful upstream reply, relayed unchanged.
type EscrowResponse struct {
	Status int
	Header http.Header
	Body   []byte
}

// EscrowGateway defines the interface for the escrow payment passthrough
type EscrowGateway interface {
	// Forward relays the request. Upstream failures come back as
	// *apperr.AppError with code UPSTREAM_ERROR.
	Forward(ctx context.Context, req EscrowRequest) (*EscrowResponse, error)
}
