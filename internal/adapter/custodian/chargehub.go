package custodian

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"freight-settlement/internal/core/domain"
	"freight-settlement/internal/core/ports"
	"freight-settlement/pkg/apperror"

	"github.com/rs/zerolog"
)

// ChargeHub is the hosted-charge provider. Deposits are modeled as charges:
// the hub allocates the address and tracks payment progress in a timeline of
// status entries, of which the newest entry is authoritative. Auth is a
// static API key header.
type ChargeHub struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     zerolog.Logger
}

// NewChargeHub creates a ChargeHub provider.
func NewChargeHub(baseURL, apiKey string, timeout time.Duration, log zerolog.Logger) *ChargeHub {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ChargeHub{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Name returns the provider identifier.
func (c *ChargeHub) Name() ports.CustodianName {
	return ports.CustodianChargeHub
}

type chargeHubCharge struct {
	ID        string            `json:"id"`
	Addresses map[string]string `json:"addresses"`
	Network   string            `json:"network"`
	Timeline  []struct {
		Status string `json:"status"`
		Time   string `json:"time"`
	} `json:"timeline"`
	Confirmations         int `json:"confirmations"`
	RequiredConfirmations int `json:"required_confirmations"`
}

func (ch *chargeHubCharge) latestStatus() domain.OnChainStatus {
	if len(ch.Timeline) == 0 {
		return domain.OnChainStatusAwaitingFunds
	}
	return domain.NormalizeOnChainStatus(ch.Timeline[len(ch.Timeline)-1].Status)
}

// CreateDepositAddress opens a hosted charge and returns its deposit
// address for the requested asset.
func (c *ChargeHub) CreateDepositAddress(ctx context.Context, req ports.DepositRequest) (*ports.DepositAddress, error) {
	body := map[string]any{
		"pricing_type": "fixed_price",
		"local_price": map[string]string{
			"amount":   strconv.FormatInt(req.Amount, 10),
			"currency": req.Currency,
		},
		"asset":        req.Asset,
		"customer_ref": req.CustomerRef,
	}
	raw, err := c.do(ctx, http.MethodPost, "/charges", body)
	if err != nil {
		return nil, err
	}

	var out chargeHubCharge
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode chargehub charge: %w", err)
	}
	return &ports.DepositAddress{
		Address:               out.Addresses[req.Asset],
		Network:               out.Network,
		RequiredConfirmations: out.RequiredConfirmations,
		Raw:                   string(raw),
	}, nil
}

type chargeHubPayout struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// InitiateWithdrawal submits a payout.
func (c *ChargeHub) InitiateWithdrawal(ctx context.Context, req ports.WithdrawalRequest) (*ports.WithdrawalReceipt, error) {
	body := map[string]any{
		"asset":           req.Asset,
		"amount":          req.Amount,
		"to_address":      req.ToAddress,
		"idempotency_key": req.IdempotencyKey,
	}
	raw, err := c.do(ctx, http.MethodPost, "/payouts", body)
	if err != nil {
		return nil, err
	}

	var out chargeHubPayout
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode chargehub payout: %w", err)
	}
	return &ports.WithdrawalReceipt{
		TransactionID: out.ID,
		Status:        domain.NormalizeOnChainStatus(out.Status),
		Raw:           string(raw),
	}, nil
}

// GetTransactionStatus fetches a charge and reads the newest timeline entry.
func (c *ChargeHub) GetTransactionStatus(ctx context.Context, txID string) (*ports.TransactionStatus, error) {
	raw, err := c.do(ctx, http.MethodGet, "/charges/"+txID, nil)
	if err != nil {
		return nil, err
	}

	var out chargeHubCharge
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode chargehub charge: %w", err)
	}
	return &ports.TransactionStatus{
		Status:                out.latestStatus(),
		Confirmations:         out.Confirmations,
		RequiredConfirmations: out.RequiredConfirmations,
		Raw:                   string(raw),
	}, nil
}

func (c *ChargeHub) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode chargehub request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build chargehub request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-CC-Api-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperror.ErrCustodianUnreachable("chargehub", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.ErrCustodianUnreachable("chargehub", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn().
			Int("status", resp.StatusCode).
			Str("path", path).
			Msg("chargehub returned non-2xx")
		return nil, apperror.ErrCustodianResponse("chargehub", resp.StatusCode, string(raw))
	}
	return raw, nil
}
