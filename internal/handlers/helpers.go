package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Pedrolamon/hairdayy-sub000/internal/httperr"
	"github.com/Pedrolamon/hairdayy-sub000/internal/middleware"
	"github.com/Pedrolamon/hairdayy-sub000/internal/models"
)

// barberForUser resolves the acting barber profile from the authenticated
// user. Responds as not-found when the user has no barber record, so the
// caller learns nothing about other tenants.
func barberForUser(c *gin.Context, db *gorm.DB) (*models.Barber, bool) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var barber models.Barber
	if err := db.Where("user_id = ?", userID).First(&barber).Error; err != nil {
		httperr.Forbidden(c)
		return nil, false
	}
	return &barber, true
}
