package custodian

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"freight-settlement/internal/core/domain"
	"freight-settlement/internal/core/ports"
	"freight-settlement/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Vaultis is the direct-custody provider. Every request is signed with
// HMAC-SHA256 over a canonical string of METHOD|PATH|TIMESTAMP|NONCE|BODY;
// the custodian rejects stale timestamps and replayed nonces on its side.
type Vaultis struct {
	baseURL string
	apiKey  string
	secret  []byte
	http    *http.Client
	log     zerolog.Logger
}

// NewVaultis creates a Vaultis provider.
func NewVaultis(baseURL, apiKey, secret string, timeout time.Duration, log zerolog.Logger) *Vaultis {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Vaultis{
		baseURL: baseURL,
		apiKey:  apiKey,
		secret:  []byte(secret),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Name returns the provider identifier.
func (v *Vaultis) Name() ports.CustodianName {
	return ports.CustodianVaultis
}

type vaultisAddressResponse struct {
	Address               string `json:"address"`
	Network               string `json:"network"`
	Tag                   string `json:"tag"`
	RequiredConfirmations int    `json:"required_confirmations"`
}

// CreateDepositAddress requests a fresh deposit address. The expected
// on-chain amount is forwarded when known so the custodian can flag
// short-paid deposits.
func (v *Vaultis) CreateDepositAddress(ctx context.Context, req ports.DepositRequest) (*ports.DepositAddress, error) {
	body := map[string]any{
		"asset":        req.Asset,
		"network":      req.Network,
		"customer_ref": req.CustomerRef,
	}
	if req.CryptoAmount != nil {
		body["expected_amount"] = *req.CryptoAmount
	}
	raw, err := v.do(ctx, http.MethodPost, "/v1/addresses", body)
	if err != nil {
		return nil, err
	}

	var out vaultisAddressResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode vaultis address: %w", err)
	}
	return &ports.DepositAddress{
		Address:               out.Address,
		Network:               out.Network,
		Tag:                   out.Tag,
		RequiredConfirmations: out.RequiredConfirmations,
		Raw:                   string(raw),
	}, nil
}

type vaultisWithdrawalResponse struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
}

// InitiateWithdrawal submits an on-chain withdrawal.
func (v *Vaultis) InitiateWithdrawal(ctx context.Context, req ports.WithdrawalRequest) (*ports.WithdrawalReceipt, error) {
	body := map[string]any{
		"asset":           req.Asset,
		"amount":          req.Amount,
		"to_address":      req.ToAddress,
		"idempotency_key": req.IdempotencyKey,
		"customer_ref":    req.CustomerRef,
	}
	raw, err := v.do(ctx, http.MethodPost, "/v1/withdrawals", body)
	if err != nil {
		return nil, err
	}

	var out vaultisWithdrawalResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode vaultis withdrawal: %w", err)
	}
	return &ports.WithdrawalReceipt{
		TransactionID: out.TransactionID,
		Status:        domain.NormalizeOnChainStatus(out.Status),
		Raw:           string(raw),
	}, nil
}

type vaultisTransactionResponse struct {
	Status                string `json:"status"`
	Confirmations         int    `json:"confirmations"`
	RequiredConfirmations int    `json:"required_confirmations"`
}

// GetTransactionStatus polls the custodian for one transaction.
func (v *Vaultis) GetTransactionStatus(ctx context.Context, txID string) (*ports.TransactionStatus, error) {
	raw, err := v.do(ctx, http.MethodGet, "/v1/transactions/"+txID, nil)
	if err != nil {
		return nil, err
	}

	var out vaultisTransactionResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode vaultis transaction: %w", err)
	}
	return &ports.TransactionStatus{
		Status:                domain.NormalizeOnChainStatus(out.Status),
		Confirmations:         out.Confirmations,
		RequiredConfirmations: out.RequiredConfirmations,
		Raw:                   string(raw),
	}, nil
}

func (v *Vaultis) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode vaultis request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, v.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build vaultis request: %w", err)
	}

	timestamp := time.Now().Unix()
	nonce := uuid.NewString()
	canonical := fmt.Sprintf("%s|%s|%d|%s|%s", method, path, timestamp, nonce, string(payload))
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(canonical))

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", v.apiKey)
	req.Header.Set("X-Timestamp", fmt.Sprintf("%d", timestamp))
	req.Header.Set("X-Nonce", nonce)
	req.Header.Set("X-Signature", hex.EncodeToString(mac.Sum(nil)))

	resp, err := v.http.Do(req)
	if err != nil {
		return nil, apperror.ErrCustodianUnreachable("vaultis", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.ErrCustodianUnreachable("vaultis", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		v.log.Warn().
			Int("status", resp.StatusCode).
			Str("path", path).
			Msg("vaultis returned non-2xx")
		return nil, apperror.ErrCustodianResponse("vaultis", resp.StatusCode, string(raw))
	}
	return raw, nil
}
