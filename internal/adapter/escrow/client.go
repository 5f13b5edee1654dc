package escrow

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/eventhub/eventhub/infrastructure/service/logger"
	"github.com/eventhub/eventhub/internal/ports"
	apperr "github.com/eventhub/eventhub/pkg/error"
)

// IdempotencyHeader is forwarded verbatim when the caller sets it.
const IdempotencyHeader = "Idempotency-Key"

// maxBodyBytes bounds how much of an upstream reply is buffered.
const maxBodyBytes = 10 << 20

// Config holds the escrow provider endpoint and credentials.
type Config struct {
	BaseURL string
	Email   string
	APIKey  string
	Timeout time.Duration
}

// Client relays requests to the escrow provider with basic auth
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     logger.Logger
}

var _ ports.EscrowGateway = (*Client)(nil)

// NewClient membuat escrow client baru
func NewClient(cfg Config, log logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg:    cfg,
		logger: log,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Forward sends one request upstream. There are no retries.
func (c *Client) Forward(ctx context.Context, in ports.EscrowRequest) (*ports.EscrowResponse, error) {
	target := c.cfg.BaseURL + "/" + strings.TrimLeft(in.Path, "/")
	if len(in.Query) > 0 {
		target += "?" + in.Query.Encode()
	}

	var body io.Reader
	if len(in.Body) > 0 {
		body = bytes.NewReader(in.Body)
	}

	req, err := http.NewRequestWithContext(ctx, in.Method, target, body)
	if err != nil {
		return nil, apperr.NewUpstream(http.StatusInternalServerError, "", nil).Wrap(errors.Wrap(err, "build escrow request"))
	}

	req.SetBasicAuth(c.cfg.Email, c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if in.IdempotencyKey != "" {
		req.Header.Set(IdempotencyHeader, in.IdempotencyKey)
	}

	fields := map[string]interface{}{
		"method":          in.Method,
		"path":            in.Path,
		"idempotency_key": in.IdempotencyKey != "",
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error(ctx, "escrow request failed", err, fields)
		return nil, apperr.NewUpstream(http.StatusInternalServerError, "", nil).Wrap(errors.Wrap(err, "escrow transport"))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.logger.Error(ctx, "failed to read escrow response", err, fields)
		return nil, apperr.NewUpstream(http.StatusInternalServerError, "", nil).Wrap(errors.Wrap(err, "read escrow response"))
	}

	fields["status"] = resp.StatusCode
	fields["duration_ms"] = time.Since(start).Milliseconds()

	if resp.StatusCode >= http.StatusBadRequest {
		c.logger.Warn(ctx, "escrow returned an error", fields)
		return nil, apperr.NewUpstream(resp.StatusCode, upstreamMessage(raw), raw)
	}

	c.logger.Info(ctx, "escrow request forwarded", fields)
	return &ports.EscrowResponse{
		Status: resp.StatusCode,
		Header: resp.Header.Clone(),
		Body:   raw,
	}, nil
}

// upstreamMessage picks the provider's own message when the body carries one.
func upstreamMessage(raw []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   any    `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	if s, ok := payload.Error.(string); ok {
		return s
	}
	return ""
}
