package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Pedrolamon/hairdayy-sub000/internal/httperr"
	"github.com/Pedrolamon/hairdayy-sub000/internal/httpresp"
	"github.com/Pedrolamon/hairdayy-sub000/internal/middleware"
	"github.com/Pedrolamon/hairdayy-sub000/internal/models"
	"github.com/Pedrolamon/hairdayy-sub000/internal/validators"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

type UpdateMeRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

type DeviceTokenRequest struct {
	DeviceToken string `json:"device_token" binding:"required"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	httpresp.OK(c, user)
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	phone := validators.NormalizePhone(req.Phone)
	if req.Phone != "" && !validators.IsPhoneValid(phone) {
		httperr.BadRequest(c, "invalid_phone", "Telefone inválido.")
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	user.Name = req.Name
	user.Phone = phone

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_user", "Erro ao atualizar usuário.")
		return
	}

	httpresp.OK(c, user)
}

// RegisterDeviceToken stores the push token reminders are delivered to.
func (h *MeHandler) RegisterDeviceToken(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)

	var req DeviceTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	res := h.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("device_token", req.DeviceToken)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_register_token", "Erro ao registrar dispositivo.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	httpresp.OK(c, gin.H{"status": "registered"})
}
