package appointment

import (
	"context"
	"time"

	"github.com/Pedrolamon/hairdayy-sub000/internal/models"
)

type Repository interface {
	// -------- Barber --------
	GetBarberByID(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	GetWorkingHours(
		ctx context.Context,
		barberID uint,
		weekday int,
	) (*models.WorkingHours, error)

	// -------- Services --------
	GetServices(
		ctx context.Context,
		barberID uint,
		serviceIDs []uint,
	) ([]models.Service, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		barberID uint,
		name string,
		phone string,
	) (*models.Client, error)

	// -------- Appointment (create / conflict) --------

	// CreateAppointment persists the appointment and its service links in
	// one transaction. A write-time overlap surfaces as the conflict
	// business error, never as a partial row.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
		services []models.Service,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentForBarber(
		ctx context.Context,
		appointmentID uint,
		barberID uint,
	) (*models.Appointment, error)

	GetAppointmentByID(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	// SaveStatusChange updates the appointment and applies its financial
	// side effect in the same transaction: income creates a record,
	// incomeReversal deletes any income rows for the appointment.
	SaveStatusChange(
		ctx context.Context,
		ap *models.Appointment,
		income *models.FinancialRecord,
		incomeReversal bool,
	) error

	DeleteAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Availability --------
	ListAppointmentsForDay(
		ctx context.Context,
		barberID uint,
		day time.Time,
	) ([]models.Appointment, error)

	ListBlocksForDay(
		ctx context.Context,
		barberID uint,
		day time.Time,
	) ([]models.AvailabilityBlock, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		barberID uint,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)
}
