package handler

import (
	"freight-settlement/internal/adapter/http/middleware"
	"freight-settlement/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Reconciler     ports.Reconciler
	Payments       ports.PaymentRepository
	Custody        ports.CustodyService
	DedupStore     ports.WebhookDedupStore
	WebhookSecret  string
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep, verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	v1 := r.Group("/api/v1")

	paymentHandler := NewPaymentHandler(deps.Reconciler, deps.Payments)
	custodyHandler := NewCustodyHandler(deps.Custody)
	payments := v1.Group("/payments")
	{
		payments.POST("", paymentHandler.CreatePayment)
		payments.GET("/:id", paymentHandler.GetPayment)
		payments.POST("/:id/deposit", custodyHandler.SetupDeposit)
		payments.POST("/:id/withdrawal", custodyHandler.InitiateWithdrawal)
		payments.POST("/:id/sync", custodyHandler.SyncOnChain)
		payments.POST("/:id/resolve", custodyHandler.ResolveHold)
	}

	// Webhook ingestion is HMAC-verified before any parsing.
	webhookHandler := NewWebhookHandler(deps.Reconciler, deps.DedupStore, deps.Logger)
	webhooks := v1.Group("/webhooks", middleware.WebhookSignature(deps.WebhookSecret, deps.Logger))
	{
		webhooks.POST("/gateway", webhookHandler.HandleGatewayEvent)
	}

	return r
}
