package handler

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"freight-settlement/internal/adapter/http/dto"
	"freight-settlement/internal/adapter/http/middleware"
	"freight-settlement/internal/core/domain"
	"freight-settlement/internal/core/ports"
	"freight-settlement/internal/core/ports/mocks"
	"freight-settlement/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testPayment() *domain.Payment {
	return &domain.Payment{
		ID:             uuid.New(),
		QuoteID:        uuid.New(),
		UserID:         uuid.New(),
		Amount:         250000,
		Currency:       "USD",
		Method:         domain.PaymentMethodCard,
		Provider:       "gateway",
		Status:         domain.PaymentStatusProcessing,
		StatusSyncedAt: time.Now().UTC(),
		CreatedAt:      time.Now().UTC(),
	}
}

func postJSON(t *testing.T, handler gin.HandlerFunc, path string, body interface{}, params gin.Params) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params

	handler(c)
	return w
}

// --- Payment Handler Tests ---

func TestCreatePayment_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRec := mocks.NewMockReconciler(ctrl)
	h := NewPaymentHandler(mockRec, mocks.NewMockPaymentRepository(ctrl))

	payment := testPayment()
	mockRec.EXPECT().CreatePayment(gomock.Any(), ports.CreatePaymentInput{
		QuoteID:  payment.QuoteID,
		UserID:   payment.UserID,
		Amount:   250000,
		Currency: "USD",
		Method:   domain.PaymentMethodCard,
		Provider: "gateway",
	}).Return(payment, nil)

	w := postJSON(t, h.CreatePayment, "/api/v1/payments", dto.CreatePaymentRequest{
		QuoteID:  payment.QuoteID.String(),
		UserID:   payment.UserID.String(),
		Amount:   250000,
		Currency: "USD",
		Method:   "card",
		Provider: "gateway",
	}, nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, payment.ID.String(), data["id"])
	assert.Equal(t, "processing", data["status"])
}

func TestCreatePayment_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewPaymentHandler(mocks.NewMockReconciler(ctrl), mocks.NewMockPaymentRepository(ctrl))

	// Empty body => binding error
	w := postJSON(t, h.CreatePayment, "/api/v1/payments", map[string]interface{}{}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePayment_GatewayDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRec := mocks.NewMockReconciler(ctrl)
	h := NewPaymentHandler(mockRec, mocks.NewMockPaymentRepository(ctrl))

	mockRec.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).
		Return(nil, apperror.ErrGatewayUnreachable(errors.New("dial tcp: timeout")))

	w := postJSON(t, h.CreatePayment, "/api/v1/payments", dto.CreatePaymentRequest{
		QuoteID:  uuid.NewString(),
		UserID:   uuid.NewString(),
		Amount:   100,
		Currency: "USD",
		Method:   "card",
	}, nil)

	assert.Equal(t, http.StatusRequestTimeout, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "GW_002", resp["error_code"])
}

func TestGetPayment_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPaymentRepository(ctrl)
	h := NewPaymentHandler(mocks.NewMockReconciler(ctrl), mockRepo)

	id := uuid.New()
	mockRepo.EXPECT().GetByID(gomock.Any(), id).Return(nil, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/payments/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.GetPayment(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetPayment_IncludesCustodyAndCompliance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPaymentRepository(ctrl)
	h := NewPaymentHandler(mocks.NewMockReconciler(ctrl), mockRepo)

	payment := testPayment()
	payment.Method = domain.PaymentMethodCrypto
	payment.Custody = &domain.CustodyInfo{
		Custodian:             "vaultis",
		Address:               "bc1qexample",
		OnChainStatus:         domain.OnChainStatusConfirmed,
		Confirmations:         6,
		RequiredConfirmations: 3,
	}
	payment.Compliance = domain.ComplianceResult{
		Status:   domain.ComplianceStatusApproved,
		AMLScore: 30,
	}
	mockRepo.EXPECT().GetByID(gomock.Any(), payment.ID).Return(payment, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/payments/"+payment.ID.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: payment.ID.String()}}

	h.GetPayment(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	custody := data["custody"].(map[string]interface{})
	assert.Equal(t, "bc1qexample", custody["address"])
	compliance := data["compliance"].(map[string]interface{})
	assert.Equal(t, "approved", compliance["status"])
	assert.Equal(t, float64(30), compliance["aml_score"])
}

// --- Custody Handler Tests ---

func TestSetupDeposit_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCustody := mocks.NewMockCustodyService(ctrl)
	h := NewCustodyHandler(mockCustody)

	paymentID := uuid.New()
	cryptoAmount := int64(1500000)
	mockCustody.EXPECT().SetupDeposit(gomock.Any(), ports.SetupDepositInput{
		PaymentID:    paymentID,
		Custodian:    ports.CustodianVaultis,
		Asset:        "BTC",
		Network:      "bitcoin",
		CryptoAmount: &cryptoAmount,
		CustomerRef:  "cust-42",
		Jurisdiction: "DE",
	}).Return(&ports.DepositInfo{
		Address:               "bc1qdeposit",
		Network:               "bitcoin",
		RequiredConfirmations: 3,
	}, nil)

	w := postJSON(t, h.SetupDeposit, "/api/v1/payments/"+paymentID.String()+"/deposit",
		dto.SetupDepositRequest{
			Custodian:    "vaultis",
			Asset:        "BTC",
			Network:      "bitcoin",
			CryptoAmount: &cryptoAmount,
			CustomerRef:  "cust-42",
			Jurisdiction: "DE",
		},
		gin.Params{{Key: "id", Value: paymentID.String()}})

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "bc1qdeposit", data["address"])
	assert.Equal(t, float64(3), data["required_confirmations"])
}

func TestSetupDeposit_UnknownCustodian(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewCustodyHandler(mocks.NewMockCustodyService(ctrl))

	w := postJSON(t, h.SetupDeposit, "/deposit",
		dto.SetupDepositRequest{Custodian: "acme", Asset: "BTC"},
		gin.Params{{Key: "id", Value: uuid.NewString()}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "CST_001", resp["error_code"])
}

func TestSyncOnChain_Scheduled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCustody := mocks.NewMockCustodyService(ctrl)
	h := NewCustodyHandler(mockCustody)

	paymentID := uuid.New()
	mockCustody.EXPECT().EnqueueSync(paymentID, ports.CustodianVaultis, "tx-abc").Return(nil)

	w := postJSON(t, h.SyncOnChain, "/sync",
		dto.SyncRequest{Custodian: "vaultis", TxID: "tx-abc"},
		gin.Params{{Key: "id", Value: paymentID.String()}})

	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestSyncOnChain_QueueFull(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCustody := mocks.NewMockCustodyService(ctrl)
	h := NewCustodyHandler(mockCustody)

	paymentID := uuid.New()
	mockCustody.EXPECT().EnqueueSync(paymentID, ports.CustodianChargeHub, "tx-1").
		Return(apperror.ErrQueueFull())

	w := postJSON(t, h.SyncOnChain, "/sync",
		dto.SyncRequest{Custodian: "chargehub", TxID: "tx-1"},
		gin.Params{{Key: "id", Value: paymentID.String()}})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "QUE_001", resp["error_code"])
}

func TestResolveHold_NotOnHold(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCustody := mocks.NewMockCustodyService(ctrl)
	h := NewCustodyHandler(mockCustody)

	paymentID := uuid.New()
	mockCustody.EXPECT().ResolveHold(gomock.Any(), paymentID, true, "ops@example.com").
		Return(nil, apperror.ErrNotOnHold())

	w := postJSON(t, h.ResolveHold, "/resolve",
		dto.ResolveHoldRequest{Approve: true, Reviewer: "ops@example.com"},
		gin.Params{{Key: "id", Value: paymentID.String()}})

	assert.Equal(t, http.StatusConflict, w.Code)
}

// --- Webhook Handler Tests ---

func webhookEvent(eventType, remoteID, status string) dto.WebhookEvent {
	var e dto.WebhookEvent
	e.ID = uuid.NewString()
	e.Type = eventType
	e.Data.PaymentID = remoteID
	e.Data.Status = status
	return e
}

func TestWebhook_SucceededEventConfirms(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRec := mocks.NewMockReconciler(ctrl)
	mockDedup := mocks.NewMockWebhookDedupStore(ctrl)
	h := NewWebhookHandler(mockRec, mockDedup, zerolog.Nop())

	event := webhookEvent(EventPaymentSucceeded, "rem_123", "")
	event.Data.ProviderRef = "ch_456"

	mockDedup.EXPECT().MarkProcessed(gomock.Any(), event.ID).Return(true, nil)
	payment := testPayment()
	payment.Status = domain.PaymentStatusSucceeded
	mockRec.EXPECT().ConfirmByRemoteID(gomock.Any(), "rem_123", "ch_456").Return(payment, nil)

	w := postJSON(t, h.HandleGatewayEvent, "/webhooks/gateway", event, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "processed", data["result"])
	assert.Equal(t, "succeeded", data["status"])
}

func TestWebhook_ReplayAcknowledgedWithoutReprocessing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRec := mocks.NewMockReconciler(ctrl)
	mockDedup := mocks.NewMockWebhookDedupStore(ctrl)
	h := NewWebhookHandler(mockRec, mockDedup, zerolog.Nop())

	event := webhookEvent(EventPaymentSucceeded, "rem_123", "")
	mockDedup.EXPECT().MarkProcessed(gomock.Any(), event.ID).Return(false, nil)
	// No reconciler expectations: a replay must not touch the reconciler.

	w := postJSON(t, h.HandleGatewayEvent, "/webhooks/gateway", event, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "duplicate", data["result"])
}

func TestWebhook_DedupStoreDownStillProcesses(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRec := mocks.NewMockReconciler(ctrl)
	mockDedup := mocks.NewMockWebhookDedupStore(ctrl)
	h := NewWebhookHandler(mockRec, mockDedup, zerolog.Nop())

	event := webhookEvent(EventPaymentSucceeded, "rem_123", "")
	mockDedup.EXPECT().MarkProcessed(gomock.Any(), event.ID).Return(false, errors.New("redis down"))
	payment := testPayment()
	payment.Status = domain.PaymentStatusSucceeded
	mockRec.EXPECT().ConfirmByRemoteID(gomock.Any(), "rem_123", "").Return(payment, nil)

	w := postJSON(t, h.HandleGatewayEvent, "/webhooks/gateway", event, nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWebhook_UnknownStatusAcknowledged(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRec := mocks.NewMockReconciler(ctrl)
	mockDedup := mocks.NewMockWebhookDedupStore(ctrl)
	h := NewWebhookHandler(mockRec, mockDedup, zerolog.Nop())

	event := webhookEvent(EventPaymentUpdated, "rem_123", "partially_captured")
	mockDedup.EXPECT().MarkProcessed(gomock.Any(), event.ID).Return(true, nil)
	// Unknown vocabulary never reaches the reconciler.

	w := postJSON(t, h.HandleGatewayEvent, "/webhooks/gateway", event, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "ignored", data["result"])
}

func TestWebhook_FallbackLocalIDResolvesBoth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRec := mocks.NewMockReconciler(ctrl)
	mockDedup := mocks.NewMockWebhookDedupStore(ctrl)
	h := NewWebhookHandler(mockRec, mockDedup, zerolog.Nop())

	localID := uuid.New()
	event := webhookEvent(EventPaymentSucceeded, "rem_123", "")
	event.Data.FallbackPaymentID = localID.String()

	mockDedup.EXPECT().MarkProcessed(gomock.Any(), event.ID).Return(true, nil)
	payment := testPayment()
	payment.Status = domain.PaymentStatusSucceeded
	mockRec.EXPECT().Reconcile(gomock.Any(),
		ports.Selector{LocalID: &localID, RemoteID: "rem_123"},
		domain.PaymentStatusSucceeded, "", "").
		Return(payment, nil)

	w := postJSON(t, h.HandleGatewayEvent, "/webhooks/gateway", event, nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWebhook_LegacyFallbackSpelling(t *testing.T) {
	var e dto.WebhookEvent
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": "evt_1",
		"type": "payment.succeeded",
		"data": {"payment_id": "rem_1", "fallbackPaymentId": "abc"}
	}`), &e))
	assert.Equal(t, "abc", e.FallbackLocalID())
}

func TestWebhook_FailureWithoutReasonGetsDefault(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRec := mocks.NewMockReconciler(ctrl)
	mockDedup := mocks.NewMockWebhookDedupStore(ctrl)
	h := NewWebhookHandler(mockRec, mockDedup, zerolog.Nop())

	event := webhookEvent(EventPaymentFailed, "rem_123", "")
	mockDedup.EXPECT().MarkProcessed(gomock.Any(), event.ID).Return(true, nil)
	payment := testPayment()
	payment.Status = domain.PaymentStatusFailed
	mockRec.EXPECT().FailByRemoteID(gomock.Any(), "rem_123", "", "gateway_reported_failure").
		Return(payment, nil)

	w := postJSON(t, h.HandleGatewayEvent, "/webhooks/gateway", event, nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWebhook_UnmatchedPaymentAcknowledged(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRec := mocks.NewMockReconciler(ctrl)
	mockDedup := mocks.NewMockWebhookDedupStore(ctrl)
	h := NewWebhookHandler(mockRec, mockDedup, zerolog.Nop())

	event := webhookEvent(EventPaymentSucceeded, "rem_unknown", "")
	mockDedup.EXPECT().MarkProcessed(gomock.Any(), event.ID).Return(true, nil)
	mockRec.EXPECT().ConfirmByRemoteID(gomock.Any(), "rem_unknown", "").Return(nil, nil)

	w := postJSON(t, h.HandleGatewayEvent, "/webhooks/gateway", event, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "ignored", data["result"])
}

// --- Router / Middleware Integration ---

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestRouter_WebhookSignatureEnforced(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRec := mocks.NewMockReconciler(ctrl)
	mockDedup := mocks.NewMockWebhookDedupStore(ctrl)

	const secret = "webhook-secret"
	router := SetupRouter(RouterDeps{
		Reconciler:    mockRec,
		Payments:      mocks.NewMockPaymentRepository(ctrl),
		Custody:       mocks.NewMockCustodyService(ctrl),
		DedupStore:    mockDedup,
		WebhookSecret: secret,
		Logger:        zerolog.Nop(),
	})

	event := webhookEvent(EventPaymentSucceeded, "rem_123", "")
	body, err := json.Marshal(event)
	require.NoError(t, err)

	// Missing signature
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/gateway", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "GW_003")

	// Wrong signature
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/gateway", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.HeaderWebhookSignature, signBody("other-secret", body))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "GW_003")

	// Valid signature reaches the handler
	mockDedup.EXPECT().MarkProcessed(gomock.Any(), event.ID).Return(true, nil)
	payment := testPayment()
	payment.Status = domain.PaymentStatusSucceeded
	mockRec.EXPECT().ConfirmByRemoteID(gomock.Any(), "rem_123", "").Return(payment, nil)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/gateway", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.HeaderWebhookSignature, signBody(secret, body))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthCheck(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck()(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}
