package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Pedrolamon/hairdayy-sub000/internal/httperr"
	"github.com/Pedrolamon/hairdayy-sub000/internal/httpresp"
	"github.com/Pedrolamon/hairdayy-sub000/internal/logging"
	"github.com/Pedrolamon/hairdayy-sub000/internal/middleware"
	"github.com/Pedrolamon/hairdayy-sub000/internal/models"
	"github.com/Pedrolamon/hairdayy-sub000/internal/timezone"
	ucAppointment "github.com/Pedrolamon/hairdayy-sub000/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db           *gorm.DB
	availability *ucAppointment.GetAvailability
	create       *ucAppointment.CreateAppointment
	updateStatus *ucAppointment.UpdateStatus
	delete       *ucAppointment.DeleteAppointment
	listByDate   *ucAppointment.ListAppointmentsByDate
}

func NewAppointmentHandler(
	db *gorm.DB,
	availability *ucAppointment.GetAvailability,
	create *ucAppointment.CreateAppointment,
	updateStatus *ucAppointment.UpdateStatus,
	deleteUC *ucAppointment.DeleteAppointment,
	listByDate *ucAppointment.ListAppointmentsByDate,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:           db,
		availability: availability,
		create:       create,
		updateStatus: updateStatus,
		delete:       deleteUC,
		listByDate:   listByDate,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	BarberID   uint   `json:"barber_id" binding:"required"`
	Date       string `json:"date" binding:"required"`
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`
	ServiceIDs []uint `json:"service_ids" binding:"required"`

	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	Notes       string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// ERROR MAPPING
// ======================================================

// writeBusinessError maps the domain taxonomy onto HTTP: validation 400,
// not-found 404, conflict 409, everything else a logged 500 with a generic
// message.
func writeBusinessError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "time_conflict"):
		httperr.Conflict(c, "time_conflict", "Conflito de horário. Escolha outro horário.")
	case httperr.IsBusiness(err, "barber_not_found"):
		httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
	case httperr.IsBusiness(err, "service_not_found"):
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
	case httperr.IsBusiness(err, "appointment_not_found"):
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
	case httperr.IsBusiness(err, "services_not_found"):
		httperr.BadRequest(c, "services_not_found", err.Error())
	case httperr.IsBusiness(err, "missing_services"):
		httperr.BadRequest(c, "missing_services", "Informe ao menos um serviço.")
	case httperr.IsBusiness(err, "missing_client"):
		httperr.BadRequest(c, "missing_client", "Informe nome e telefone do cliente.")
	case httperr.IsBusiness(err, "invalid_date_or_time"):
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
	case httperr.IsBusiness(err, "outside_working_hours"):
		httperr.BadRequest(c, "outside_working_hours", "Fora do horário de atendimento.")
	case httperr.IsBusiness(err, "invalid_status"):
		httperr.BadRequest(c, "invalid_status", "Status inválido.")
	case httperr.IsBusiness(err, "invalid_state"):
		httperr.BadRequest(c, "invalid_state", "Transição de status não permitida.")
	default:
		logging.L().Error("appointment operation failed", zap.Error(err))
		httperr.Internal(c, "internal_error", "Erro interno.")
	}
}

// ======================================================
// AVAILABLE SLOTS
// ======================================================

func (h *AppointmentHandler) AvailableSlots(c *gin.Context) {
	barberID, err1 := strconv.ParseUint(c.Query("barberId"), 10, 32)
	serviceID, err2 := strconv.ParseUint(c.Query("serviceId"), 10, 32)
	dateStr := c.Query("date")

	if err1 != nil || err2 != nil || dateStr == "" {
		httperr.BadRequest(c, "invalid_request", "barberId, serviceId e date são obrigatórios.")
		return
	}

	date, err := timezone.ParseDate(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), ucAppointment.AvailabilityInput{
		BarberID:  uint(barberID),
		ServiceID: uint(serviceID),
		Date:      date,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.List(c, slots)
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	in := ucAppointment.CreateAppointmentInput{
		BarberID:   req.BarberID,
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		ServiceIDs: req.ServiceIDs,
		Notes:      req.Notes,
	}

	if role == models.RoleClient {
		in.UserID = &userID
	} else {
		// Barbeiro agendando manualmente para um cliente sem conta.
		in.ClientName = req.ClientName
		in.ClientPhone = req.ClientPhone
	}

	ap, err := h.create.Execute(c.Request.Context(), in)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	barber, ok := barberForUser(c, h.db)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.updateStatus.Execute(c.Request.Context(), barber.ID, uint(id), req.Status)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	barber, ok := barberForUser(c, h.db)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	if err := h.delete.Execute(c.Request.Context(), barber.ID, uint(id)); err != nil {
		writeBusinessError(c, err)
		return
	}

	c.Status(204)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	barber, ok := barberForUser(c, h.db)
	if !ok {
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	date, err := timezone.ParseDate(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	out, err := h.listByDate.Execute(c.Request.Context(), barber.ID, date)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.List(c, out)
}
