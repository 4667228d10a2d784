package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Pedrolamon/hairdayy-sub000/internal/httperr"
	"github.com/Pedrolamon/hairdayy-sub000/internal/httpresp"
	"github.com/Pedrolamon/hairdayy-sub000/internal/models"
	"github.com/Pedrolamon/hairdayy-sub000/internal/timezone"
)

type FinancialHandler struct {
	db *gorm.DB
}

func NewFinancialHandler(db *gorm.DB) *FinancialHandler {
	return &FinancialHandler{db: db}
}

type FinancialRecordRequest struct {
	Type        string  `json:"type" binding:"required,oneof=income expense bonus"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date" binding:"required"`
}

type FinancialSummary struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Bonus   float64 `json:"bonus"`
	Payouts float64 `json:"payouts"`
	Balance float64 `json:"balance"`
}

func (h *FinancialHandler) List(c *gin.Context) {
	barber, ok := barberForUser(c, h.db)
	if !ok {
		return
	}

	query := h.db.Where("barber_id = ?", barber.ID)
	if from := c.Query("from"); from != "" {
		date, err := timezone.ParseDate(from)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		query = query.Where("date >= ?", date.Format("2006-01-02"))
	}
	if to := c.Query("to"); to != "" {
		date, err := timezone.ParseDate(to)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		query = query.Where("date <= ?", date.Format("2006-01-02"))
	}
	if t := c.Query("type"); t != "" {
		query = query.Where("type = ?", t)
	}

	var records []models.FinancialRecord
	if err := query.Order("date DESC, id DESC").Find(&records).Error; err != nil {
		httperr.Internal(c, "failed_to_list_records", "Erro ao buscar lançamentos.")
		return
	}

	httpresp.List(c, records)
}

func (h *FinancialHandler) Create(c *gin.Context) {
	barber, ok := barberForUser(c, h.db)
	if !ok {
		return
	}

	var req FinancialRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	date, err := timezone.ParseDate(req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	record := models.FinancialRecord{
		BarberID:    barber.ID,
		Type:        req.Type,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
	}

	if err := h.db.Create(&record).Error; err != nil {
		httperr.Internal(c, "failed_to_create_record", "Erro ao criar lançamento.")
		return
	}

	httpresp.Created(c, record)
}

func (h *FinancialHandler) Update(c *gin.Context) {
	barber, ok := barberForUser(c, h.db)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var record models.FinancialRecord
	if err := h.db.Where("id = ? AND barber_id = ?", id, barber.ID).First(&record).Error; err != nil {
		httperr.NotFound(c, "record_not_found", "Lançamento não encontrado.")
		return
	}

	// Appointment and payout records are produced by the system and stay
	// consistent with their source rows.
	if record.AppointmentID != nil || record.Type == models.RecordReferralPayout {
		httperr.BadRequest(c, "record_not_editable", "Lançamentos automáticos não podem ser editados.")
		return
	}

	var req FinancialRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	date, err := timezone.ParseDate(req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	record.Type = req.Type
	record.Amount = req.Amount
	record.Category = req.Category
	record.Description = req.Description
	record.Date = date

	if err := h.db.Save(&record).Error; err != nil {
		httperr.Internal(c, "failed_to_update_record", "Erro ao atualizar lançamento.")
		return
	}

	httpresp.OK(c, record)
}

func (h *FinancialHandler) Delete(c *gin.Context) {
	barber, ok := barberForUser(c, h.db)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var record models.FinancialRecord
	if err := h.db.Where("id = ? AND barber_id = ?", id, barber.ID).First(&record).Error; err != nil {
		httperr.NotFound(c, "record_not_found", "Lançamento não encontrado.")
		return
	}
	if record.AppointmentID != nil || record.Type == models.RecordReferralPayout {
		httperr.BadRequest(c, "record_not_editable", "Lançamentos automáticos não podem ser removidos.")
		return
	}

	if err := h.db.Delete(&record).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_record", "Erro ao remover lançamento.")
		return
	}

	c.Status(204)
}

func (h *FinancialHandler) Summary(c *gin.Context) {
	barber, ok := barberForUser(c, h.db)
	if !ok {
		return
	}

	query := h.db.Model(&models.FinancialRecord{}).Where("barber_id = ?", barber.ID)
	if from := c.Query("from"); from != "" {
		date, err := timezone.ParseDate(from)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		query = query.Where("date >= ?", date.Format("2006-01-02"))
	}
	if to := c.Query("to"); to != "" {
		date, err := timezone.ParseDate(to)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		query = query.Where("date <= ?", date.Format("2006-01-02"))
	}

	type row struct {
		Type  string
		Total float64
	}
	var rows []row
	if err := query.Select("type, COALESCE(SUM(amount), 0) AS total").Group("type").Scan(&rows).Error; err != nil {
		httperr.Internal(c, "failed_to_summarize", "Erro ao calcular resumo.")
		return
	}

	var summary FinancialSummary
	for _, r := range rows {
		switch r.Type {
		case models.RecordIncome:
			summary.Income = r.Total
		case models.RecordExpense:
			summary.Expense = r.Total
		case models.RecordBonus:
			summary.Bonus = r.Total
		case models.RecordReferralPayout:
			summary.Payouts = r.Total
		}
	}
	summary.Balance = summary.Income + summary.Bonus - summary.Expense - summary.Payouts

	httpresp.OK(c, summary)
}
