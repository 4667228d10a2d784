package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Pedrolamon/hairdayy-sub000/internal/httperr"
	"github.com/Pedrolamon/hairdayy-sub000/internal/httpresp"
	"github.com/Pedrolamon/hairdayy-sub000/internal/middleware"
	"github.com/Pedrolamon/hairdayy-sub000/internal/models"
	"github.com/Pedrolamon/hairdayy-sub000/internal/timezone"
	usecase "github.com/Pedrolamon/hairdayy-sub000/internal/usecase/referral"
)

type ReferralHandler struct {
	db         *gorm.DB
	getSummary *usecase.GetSummary
	process    *usecase.ProcessPayment
	cancel     *usecase.CancelPayment
}

func NewReferralHandler(
	db *gorm.DB,
	getSummary *usecase.GetSummary,
	process *usecase.ProcessPayment,
	cancel *usecase.CancelPayment,
) *ReferralHandler {
	return &ReferralHandler{
		db:         db,
		getSummary: getSummary,
		process:    process,
		cancel:     cancel,
	}
}

type ReferralPaymentRequest struct {
	RefereeID uint   `json:"referee_id" binding:"required"`
	PaidAt    string `json:"paid_at"`
}

// Summary returns the caller's current discount tier, payout tier and
// pending payout balance.
func (h *ReferralHandler) Summary(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)

	summary, err := h.getSummary.Execute(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_load_summary", "Erro ao buscar resumo de indicações.")
		return
	}

	httpresp.OK(c, summary)
}

// ListPayouts lists the caller's payout history, newest first.
func (h *ReferralHandler) ListPayouts(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)

	var payouts []models.ReferralPayout
	if err := h.db.Where("referrer_id = ?", userID).
		Order("period DESC, id DESC").
		Find(&payouts).Error; err != nil {
		httperr.Internal(c, "failed_to_list_payouts", "Erro ao buscar repasses.")
		return
	}

	httpresp.List(c, payouts)
}

// ProcessPayment is the manual accrual trigger, restricted to admins. The
// normal path is the subscription webhook.
func (h *ReferralHandler) ProcessPayment(c *gin.Context) {
	var req ReferralPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	paidAt := timezone.Now()
	if req.PaidAt != "" {
		parsed, err := timezone.ParseDate(req.PaidAt)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		paidAt = parsed
	}

	if err := h.process.Execute(c.Request.Context(), req.RefereeID, paidAt); err != nil {
		httperr.Internal(c, "failed_to_process_payment", "Erro ao processar pagamento.")
		return
	}

	httpresp.OK(c, gin.H{"status": "processed"})
}

// CancelPayment deactivates the referee's referrals and cancels pending
// payouts, restricted to admins.
func (h *ReferralHandler) CancelPayment(c *gin.Context) {
	var req ReferralPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if err := h.cancel.Execute(c.Request.Context(), req.RefereeID); err != nil {
		httperr.Internal(c, "failed_to_cancel_payment", "Erro ao cancelar pagamento.")
		return
	}

	httpresp.OK(c, gin.H{"status": "cancelled"})
}
