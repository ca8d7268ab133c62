package domain

import (
	"time"

	"github.com/google/uuid"
)

// QuotePaymentStatus is the payment-derived field pushed onto a quote.
type QuotePaymentStatus string

const (
	QuotePaymentPending   QuotePaymentStatus = "pending"
	QuotePaymentConfirmed QuotePaymentStatus = "confirmed"
	QuotePaymentFailed    QuotePaymentStatus = "failed"
)

// QuoteStatus mirrors the business workflow state of a quote.
type QuoteStatus string

const (
	QuoteStatusPending   QuoteStatus = "pending"
	QuoteStatusConfirmed QuoteStatus = "confirmed"
	QuoteStatusRejected  QuoteStatus = "rejected"
)

// QuotePatch is the derived update this core emits toward the quote
// collaborator. PaymentDate is set only on success and cleared otherwise.
type QuotePatch struct {
	QuoteID       uuid.UUID          `json:"quote_id"`
	PaymentStatus QuotePaymentStatus `json:"payment_status"`
	Status        QuoteStatus        `json:"status"`
	PaymentDate   *time.Time         `json:"payment_date,omitempty"`
}

// QuotePatchFor derives the quote update from a payment status. The mapping
// is total over the payment status enum: on_hold stays pending until a human
// resolves the hold.
func QuotePatchFor(quoteID uuid.UUID, status PaymentStatus, syncedAt time.Time) QuotePatch {
	switch status {
	case PaymentStatusSucceeded:
		date := syncedAt
		return QuotePatch{
			QuoteID:       quoteID,
			PaymentStatus: QuotePaymentConfirmed,
			Status:        QuoteStatusConfirmed,
			PaymentDate:   &date,
		}
	case PaymentStatusFailed:
		return QuotePatch{
			QuoteID:       quoteID,
			PaymentStatus: QuotePaymentFailed,
			Status:        QuoteStatusRejected,
		}
	default: // pending, processing, on_hold
		return QuotePatch{
			QuoteID:       quoteID,
			PaymentStatus: QuotePaymentPending,
			Status:        QuoteStatusPending,
		}
	}
}
