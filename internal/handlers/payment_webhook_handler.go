package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Pedrolamon/hairdayy-sub000/internal/httpresp"
	"github.com/Pedrolamon/hairdayy-sub000/internal/logging"
	"github.com/Pedrolamon/hairdayy-sub000/internal/payments"
)

type PaymentWebhookHandler struct {
	processor *payments.Processor
}

func NewPaymentWebhookHandler(processor *payments.Processor) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{processor: processor}
}

// Webhook handles Mercado Pago notifications. It always answers 200 for
// well-formed payloads so the gateway does not retry events we already
// decided to skip; processing failures are logged and retried by the
// gateway via its own schedule.
func (h *PaymentWebhookHandler) Webhook(c *gin.Context) {
	var ev payments.WebhookEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(400, gin.H{"error": "invalid_payload"})
		return
	}

	if err := h.processor.Handle(c.Request.Context(), ev); err != nil {
		logging.L().Error("payment webhook failed",
			zap.String("type", ev.Type),
			zap.String("payment_id", ev.Data.ID),
			zap.Error(err),
		)
		c.JSON(500, gin.H{"error": "processing_failure"})
		return
	}

	httpresp.OK(c, gin.H{"status": "ok"})
}
