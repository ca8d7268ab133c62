package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"freight-settlement/internal/core/ports"
	"freight-settlement/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

const (
	defaultTimeout      = 10 * time.Second
	bearerTokenLifetime = 2 * time.Minute
)

// Client implements ports.GatewayClient over the gateway's REST API. Each
// request carries a short-lived HS256 bearer token minted from the shared
// secret; tokens are not cached, a fresh one is signed per request.
type Client struct {
	baseURL string
	secret  []byte
	issuer  string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient creates a gateway client.
func NewClient(baseURL, secret, issuer string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		secret:  []byte(secret),
		issuer:  issuer,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

type createPaymentRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Method   string            `json:"method"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// remotePayment tolerates the gateway's historical timestamp field names.
// Deployments have shipped all four over time; the first one present wins.
type remotePayment struct {
	ID               string `json:"id"`
	Status           string `json:"status"`
	Provider         string `json:"provider"`
	StatusUpdatedAt  string `json:"status_updated_at"`
	StatusUpdatedAt2 string `json:"statusUpdatedAt"`
	UpdatedAt        string `json:"updated_at"`
	LastStatusChange string `json:"last_status_change"`
}

func (p *remotePayment) toPort() *ports.RemotePayment {
	out := &ports.RemotePayment{
		ID:       p.ID,
		Status:   p.Status,
		Provider: p.Provider,
	}
	// First variant that parses wins; a malformed value falls through to
	// the next variant instead of discarding the rest.
	for _, raw := range []string{p.StatusUpdatedAt, p.StatusUpdatedAt2, p.UpdatedAt, p.LastStatusChange} {
		if raw == "" {
			continue
		}
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			continue
		}
		out.StatusUpdatedAt = &ts
		break
	}
	return out
}

// CreatePayment mirrors a local payment to the gateway.
func (c *Client) CreatePayment(ctx context.Context, req ports.CreateRemotePaymentRequest) (*ports.RemotePayment, error) {
	body := createPaymentRequest{
		Amount:   req.Amount,
		Currency: req.Currency,
		Method:   string(req.Method),
		Metadata: req.Metadata,
	}
	var out remotePayment
	if err := c.do(ctx, http.MethodPost, "/v1/payments", body, &out); err != nil {
		return nil, err
	}
	return out.toPort(), nil
}

// GetPaymentByID fetches the gateway's view of a payment. A 404 returns
// nil, nil: the gateway may simply not have persisted the record yet.
func (c *Client) GetPaymentByID(ctx context.Context, remoteID string) (*ports.RemotePayment, error) {
	var out remotePayment
	err := c.do(ctx, http.MethodGet, "/v1/payments/"+remoteID, nil, &out)
	if err != nil {
		if appErr, ok := err.(*apperror.AppError); ok && appErr.HTTPStatus == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return out.toPort(), nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode gateway request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build gateway request: %w", err)
	}
	token, err := c.mintToken()
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return apperror.ErrGatewayUnreachable(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperror.ErrGatewayUnreachable(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn().
			Int("status", resp.StatusCode).
			Str("path", path).
			Msg("gateway returned non-2xx")
		return apperror.ErrGatewayResponse(resp.StatusCode, string(raw))
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode gateway response: %w", err)
		}
	}
	return nil
}

func (c *Client) mintToken() (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": "settlement-core",
		"iat": now.Unix(),
		"exp": now.Add(bearerTokenLifetime).Unix(),
		"iss": c.issuer,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("signing gateway token: %w", err)
	}
	return signed, nil
}
