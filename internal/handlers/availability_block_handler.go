package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Pedrolamon/hairdayy-sub000/internal/domain/schedule"
	"github.com/Pedrolamon/hairdayy-sub000/internal/httperr"
	"github.com/Pedrolamon/hairdayy-sub000/internal/httpresp"
	"github.com/Pedrolamon/hairdayy-sub000/internal/models"
	"github.com/Pedrolamon/hairdayy-sub000/internal/timezone"
)

type AvailabilityBlockHandler struct {
	db *gorm.DB
}

func NewAvailabilityBlockHandler(db *gorm.DB) *AvailabilityBlockHandler {
	return &AvailabilityBlockHandler{db: db}
}

type CreateBlockRequest struct {
	Date string `json:"date" binding:"required"`

	// No "required" on the minutes: 00:00 is a legal start and binds to
	// the zero value. The start<end check below rejects bad windows.
	StartTime schedule.Minutes `json:"start_time"`
	EndTime   schedule.Minutes `json:"end_time"`
	Reason    string           `json:"reason"`
}

func (h *AvailabilityBlockHandler) List(c *gin.Context) {
	barber, ok := barberForUser(c, h.db)
	if !ok {
		return
	}

	query := h.db.Where("barber_id = ?", barber.ID)
	if dateStr := c.Query("date"); dateStr != "" {
		date, err := timezone.ParseDate(dateStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		query = query.Where("date = ?", date.Format("2006-01-02"))
	}

	var blocks []models.AvailabilityBlock
	if err := query.Order("date ASC, start_minutes ASC").Find(&blocks).Error; err != nil {
		httperr.Internal(c, "failed_to_list_blocks", "Erro ao buscar bloqueios.")
		return
	}

	httpresp.List(c, blocks)
}

func (h *AvailabilityBlockHandler) Create(c *gin.Context) {
	barber, ok := barberForUser(c, h.db)
	if !ok {
		return
	}

	var req CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.StartTime >= req.EndTime {
		httperr.BadRequest(c, "invalid_window", "Início deve ser antes do fim.")
		return
	}

	date, err := timezone.ParseDate(req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	block := models.AvailabilityBlock{
		BarberID:     barber.ID,
		Date:         date,
		StartMinutes: req.StartTime,
		EndMinutes:   req.EndTime,
		Reason:       req.Reason,
	}

	if err := h.db.Create(&block).Error; err != nil {
		httperr.Internal(c, "failed_to_create_block", "Erro ao criar bloqueio.")
		return
	}

	httpresp.Created(c, block)
}

func (h *AvailabilityBlockHandler) Delete(c *gin.Context) {
	barber, ok := barberForUser(c, h.db)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	res := h.db.Where("id = ? AND barber_id = ?", id, barber.ID).Delete(&models.AvailabilityBlock{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_block", "Erro ao remover bloqueio.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "block_not_found", "Bloqueio não encontrado.")
		return
	}

	c.Status(204)
}
