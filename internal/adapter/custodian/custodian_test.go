package custodian

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"freight-settlement/config"
	"freight-settlement/internal/core/domain"
	"freight-settlement/internal/core/ports"
	"freight-settlement/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==================== Vaultis Tests ====================

func TestVaultis_CreateDepositAddress_SignsRequest(t *testing.T) {
	const secret = "vaultis-secret"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		assert.Equal(t, "key-1", r.Header.Get("X-Api-Key"))
		require.NotEmpty(t, r.Header.Get("X-Timestamp"))
		require.NotEmpty(t, r.Header.Get("X-Nonce"))

		canonical := fmt.Sprintf("%s|%s|%s|%s|%s",
			r.Method, r.URL.Path, r.Header.Get("X-Timestamp"), r.Header.Get("X-Nonce"), string(body))
		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write([]byte(canonical))
		assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), r.Header.Get("X-Signature"))

		var fields map[string]any
		require.NoError(t, json.Unmarshal(body, &fields))
		assert.Equal(t, float64(1500000), fields["expected_amount"])

		json.NewEncoder(w).Encode(map[string]any{
			"address":                "bc1qdeposit",
			"network":                "bitcoin",
			"required_confirmations": 3,
		})
	}))
	defer srv.Close()

	v := NewVaultis(srv.URL, "key-1", secret, time.Second, zerolog.Nop())
	cryptoAmount := int64(1500000)
	addr, err := v.CreateDepositAddress(context.Background(), ports.DepositRequest{
		Asset:        "BTC",
		Network:      "bitcoin",
		CryptoAmount: &cryptoAmount,
		CustomerRef:  "cust-42",
	})
	require.NoError(t, err)
	assert.Equal(t, "bc1qdeposit", addr.Address)
	assert.Equal(t, 3, addr.RequiredConfirmations)
	assert.NotEmpty(t, addr.Raw)
}

func TestVaultis_GetTransactionStatus_NormalizesVocabulary(t *testing.T) {
	tests := []struct {
		remote string
		want   domain.OnChainStatus
	}{
		{"COMPLETED", domain.OnChainStatusConfirmed},
		{"WAITING_FOR_NETWORK", domain.OnChainStatusPending},
		{"EXPIRED", domain.OnChainStatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.remote, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v1/transactions/tx_1", r.URL.Path)
				json.NewEncoder(w).Encode(map[string]any{
					"status":        tt.remote,
					"confirmations": 2,
				})
			}))
			defer srv.Close()

			v := NewVaultis(srv.URL, "key-1", "secret", time.Second, zerolog.Nop())
			status, err := v.GetTransactionStatus(context.Background(), "tx_1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, status.Status)
			assert.Equal(t, 2, status.Confirmations)
		})
	}
}

func TestVaultis_NonSuccessKeepsRawPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"asset not supported"}`))
	}))
	defer srv.Close()

	v := NewVaultis(srv.URL, "key-1", "secret", time.Second, zerolog.Nop())
	_, err := v.CreateDepositAddress(context.Background(), ports.DepositRequest{Asset: "DOGE"})
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, "CST_002", appErr.Code)
	assert.Contains(t, appErr.Payload, "asset not supported")
	assert.False(t, appErr.Retryable())
}

func TestVaultis_InitiateWithdrawal_ForwardsIdempotencyKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "idem-key-1", body["idempotency_key"])
		json.NewEncoder(w).Encode(map[string]any{"transaction_id": "wtx_1", "status": "SUBMITTED"})
	}))
	defer srv.Close()

	v := NewVaultis(srv.URL, "key-1", "secret", time.Second, zerolog.Nop())
	receipt, err := v.InitiateWithdrawal(context.Background(), ports.WithdrawalRequest{
		Asset:          "BTC",
		Amount:         100000,
		ToAddress:      "bc1qpayout",
		IdempotencyKey: "idem-key-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "wtx_1", receipt.TransactionID)
	assert.Equal(t, domain.OnChainStatusPending, receipt.Status)
}

// ==================== ChargeHub Tests ====================

func TestChargeHub_CreateDepositAddress_OpensCharge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/charges", r.URL.Path)
		assert.Equal(t, "hub-key", r.Header.Get("X-CC-Api-Key"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		price := body["local_price"].(map[string]any)
		assert.Equal(t, "250000", price["amount"])
		assert.Equal(t, "USD", price["currency"])

		json.NewEncoder(w).Encode(map[string]any{
			"id":                     "charge_1",
			"addresses":              map[string]string{"ETH": "0xdeposit"},
			"network":                "ethereum",
			"required_confirmations": 12,
		})
	}))
	defer srv.Close()

	c := NewChargeHub(srv.URL, "hub-key", time.Second, zerolog.Nop())
	addr, err := c.CreateDepositAddress(context.Background(), ports.DepositRequest{
		Asset:    "ETH",
		Amount:   250000,
		Currency: "USD",
	})
	require.NoError(t, err)
	assert.Equal(t, "0xdeposit", addr.Address)
	assert.Equal(t, "ethereum", addr.Network)
	assert.Equal(t, 12, addr.RequiredConfirmations)
}

func TestChargeHub_GetTransactionStatus_LastTimelineEntryWins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id": "charge_1",
			"timeline": []map[string]string{
				{"status": "NEW", "time": "2026-04-01T09:00:00Z"},
				{"status": "PENDING", "time": "2026-04-01T09:05:00Z"},
				{"status": "COMPLETED", "time": "2026-04-01T09:40:00Z"},
			},
			"confirmations":          6,
			"required_confirmations": 6,
		})
	}))
	defer srv.Close()

	c := NewChargeHub(srv.URL, "hub-key", time.Second, zerolog.Nop())
	status, err := c.GetTransactionStatus(context.Background(), "charge_1")
	require.NoError(t, err)
	assert.Equal(t, domain.OnChainStatusConfirmed, status.Status)
	assert.Equal(t, 6, status.Confirmations)
}

func TestChargeHub_EmptyTimelineIsAwaitingFunds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": "charge_1", "timeline": []any{}})
	}))
	defer srv.Close()

	c := NewChargeHub(srv.URL, "hub-key", time.Second, zerolog.Nop())
	status, err := c.GetTransactionStatus(context.Background(), "charge_1")
	require.NoError(t, err)
	assert.Equal(t, domain.OnChainStatusAwaitingFunds, status.Status)
}

// ==================== Registry Tests ====================

func registryConfig() config.CustodiansConfig {
	return config.CustodiansConfig{
		Vaultis:   config.CustodianConfig{BaseURL: "http://vaultis.local", APIKey: "k", APISecret: "s"},
		ChargeHub: config.CustodianConfig{BaseURL: "http://chargehub.local", APIKey: "k"},
	}
}

func TestRegistry_Provider_TypedDispatch(t *testing.T) {
	r := NewRegistry(registryConfig(), zerolog.Nop())

	v, err := r.Provider(ports.CustodianVaultis)
	require.NoError(t, err)
	assert.Equal(t, ports.CustodianVaultis, v.Name())

	h, err := r.Provider(ports.CustodianChargeHub)
	require.NoError(t, err)
	assert.Equal(t, ports.CustodianChargeHub, h.Name())
}

func TestRegistry_Provider_CachesPerName(t *testing.T) {
	r := NewRegistry(registryConfig(), zerolog.Nop())

	first, err := r.Provider(ports.CustodianVaultis)
	require.NoError(t, err)
	second, err := r.Provider(ports.CustodianVaultis)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestRegistry_ProviderWithConfig_BypassesCache(t *testing.T) {
	r := NewRegistry(registryConfig(), zerolog.Nop())

	cached, err := r.Provider(ports.CustodianVaultis)
	require.NoError(t, err)

	override, err := r.ProviderWithConfig(ports.CustodianVaultis, config.CustodianConfig{
		BaseURL: "http://vaultis-sandbox.local", APIKey: "sandbox-k", APISecret: "sandbox-s",
	})
	require.NoError(t, err)
	assert.Equal(t, ports.CustodianVaultis, override.Name())
	assert.NotSame(t, cached, override)

	// The override must not have displaced the default-config singleton.
	again, err := r.Provider(ports.CustodianVaultis)
	require.NoError(t, err)
	assert.Same(t, cached, again)
}

func TestRegistry_ProviderWithConfig_UnknownName(t *testing.T) {
	r := NewRegistry(registryConfig(), zerolog.Nop())

	_, err := r.ProviderWithConfig(ports.CustodianName("ledgerless"), config.CustodianConfig{})
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, "CST_001", appErr.Code)
}

func TestRegistry_Provider_UnknownName(t *testing.T) {
	r := NewRegistry(registryConfig(), zerolog.Nop())

	_, err := r.Provider(ports.CustodianName("ledgerless"))
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, "CST_001", appErr.Code)
}
