package handler

import (
	"freight-settlement/internal/adapter/http/dto"
	"freight-settlement/internal/core/domain"
	"freight-settlement/internal/core/ports"
	"freight-settlement/pkg/apperror"
	"freight-settlement/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Gateway webhook event types.
const (
	EventPaymentSucceeded = "payment.succeeded"
	EventPaymentFailed    = "payment.failed"
	EventPaymentUpdated   = "payment.updated"
)

// WebhookHandler ingests status notifications from the payment gateway.
// Deliveries are at-least-once: every accepted event is acknowledged with
// 200 so the gateway stops retrying, including replays and events this core
// cannot act on.
type WebhookHandler struct {
	reconciler ports.Reconciler
	dedup      ports.WebhookDedupStore
	log        zerolog.Logger
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(reconciler ports.Reconciler, dedup ports.WebhookDedupStore, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{reconciler: reconciler, dedup: dedup, log: log}
}

// HandleGatewayEvent handles POST /api/v1/webhooks/gateway. Signature
// verification happens in middleware before the body reaches this handler.
func (h *WebhookHandler) HandleGatewayEvent(c *gin.Context) {
	var event dto.WebhookEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	fresh, err := h.dedup.MarkProcessed(c.Request.Context(), event.ID)
	if err != nil {
		// Dedup store down: process anyway and rely on the audit-trail
		// dedup to absorb any duplicate apply.
		h.log.Warn().Err(err).Str("event_id", event.ID).Msg("webhook dedup store unavailable")
		fresh = true
	}
	if !fresh {
		response.OK(c, gin.H{"event_id": event.ID, "result": "duplicate"})
		return
	}

	payment, err := h.apply(c, &event)
	if err != nil {
		response.Error(c, err)
		return
	}
	if payment == nil {
		// No local payment matched, or the vocabulary is unknown to this
		// core. Acknowledge so the gateway does not retry forever.
		h.log.Warn().
			Str("event_id", event.ID).
			Str("type", event.Type).
			Str("remote_payment_id", event.Data.PaymentID).
			Msg("webhook event acknowledged without effect")
		response.OK(c, gin.H{"event_id": event.ID, "result": "ignored"})
		return
	}

	response.OK(c, gin.H{
		"event_id": event.ID,
		"result":   "processed",
		"status":   string(payment.Status),
	})
}

// apply dispatches one fresh event to the reconciler. A nil, nil return
// means the event was understood but matched nothing actionable.
func (h *WebhookHandler) apply(c *gin.Context, event *dto.WebhookEvent) (*domain.Payment, error) {
	ctx := c.Request.Context()

	// Deliveries racing the gateway's own persistence carry the local
	// payment id; resolve with both identifiers when present.
	if fallback := event.FallbackLocalID(); fallback != "" {
		localID, err := uuid.Parse(fallback)
		if err != nil {
			return nil, apperror.Validation("fallback payment id must be a UUID")
		}
		status, ok := statusForEvent(event)
		if !ok {
			return nil, nil
		}
		sel := ports.Selector{LocalID: &localID, RemoteID: event.Data.PaymentID}
		return h.reconciler.Reconcile(ctx, sel, status, event.Data.ProviderRef, failureReason(event))
	}

	switch event.Type {
	case EventPaymentSucceeded:
		return h.reconciler.ConfirmByRemoteID(ctx, event.Data.PaymentID, event.Data.ProviderRef)
	case EventPaymentFailed:
		return h.reconciler.FailByRemoteID(ctx, event.Data.PaymentID, event.Data.ProviderRef, failureReason(event))
	case EventPaymentUpdated:
		status, ok := domain.ParsePaymentStatus(event.Data.Status)
		if !ok {
			return nil, nil
		}
		return h.reconciler.SyncByRemoteID(ctx, event.Data.PaymentID, status, event.Data.ProviderRef)
	}
	return nil, nil
}

// statusForEvent maps an event to the status the reconciler should apply.
func statusForEvent(event *dto.WebhookEvent) (domain.PaymentStatus, bool) {
	switch event.Type {
	case EventPaymentSucceeded:
		return domain.PaymentStatusSucceeded, true
	case EventPaymentFailed:
		return domain.PaymentStatusFailed, true
	case EventPaymentUpdated:
		return domain.ParsePaymentStatus(event.Data.Status)
	}
	return "", false
}

// failureReason never returns empty for a failure event: the reconciler
// rejects failure transitions without a reason.
func failureReason(event *dto.WebhookEvent) string {
	if event.Data.Reason != "" {
		return event.Data.Reason
	}
	if event.Type == EventPaymentFailed {
		return "gateway_reported_failure"
	}
	return ""
}
