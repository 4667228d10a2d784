package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/Pedrolamon/hairdayy-sub000/internal/domain/appointment"
	"github.com/Pedrolamon/hairdayy-sub000/internal/httperr"
	"github.com/Pedrolamon/hairdayy-sub000/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Barber
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBarberByID(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&barber, id).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *AppointmentGormRepository) GetWorkingHours(
	ctx context.Context,
	barberID uint,
	weekday int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND weekday = ?", barberID, weekday).
		First(&wh).Error; err != nil {
		return nil, err
	}
	return &wh, nil
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *AppointmentGormRepository) GetServices(
	ctx context.Context,
	barberID uint,
	serviceIDs []uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("id IN ? AND barber_id = ? AND active = true", serviceIDs, barberID).
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// ListActiveServices feeds the chatbot service menu.
func (r *AppointmentGormRepository) ListActiveServices(
	ctx context.Context,
	barberID uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND active = true", barberID).
		Order("name ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	barberID uint,
	name string,
	phone string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("barber_id = ? AND phone = ?", barberID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	client = models.Client{
		BarberID: barberID,
		Name:     name,
		Phone:    phone,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	services []models.Service,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// Pre-check under lock keeps the common case friendly; the
		// exclusion constraint is the authority under concurrency.
		taken, err := lockOverlapping(tx, ap)
		if err != nil {
			return err
		}
		if taken {
			return httperr.ErrBusiness("time_conflict")
		}

		ap.Services = services
		return tx.Create(ap).Error
	})

	if err != nil && httperr.IsExclusionConflict(err) {
		return httperr.ErrBusiness("time_conflict")
	}
	return err
}

// overlapLockQuery selects the scheduled appointments crossing ap's window
// under FOR UPDATE. Postgres refuses row locks combined with aggregates, so
// callers must pull ids and check emptiness instead of counting.
func overlapLockQuery(tx *gorm.DB, ap *models.Appointment) *gorm.DB {
	return tx.
		Model(&models.Appointment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"barber_id = ? AND date = ? AND status = 'scheduled' AND start_minutes < ? AND end_minutes > ?",
			ap.BarberID,
			ap.Date.Format("2006-01-02"),
			int(ap.EndMinutes),
			int(ap.StartMinutes),
		).
		Limit(1)
}

func lockOverlapping(tx *gorm.DB, ap *models.Appointment) (bool, error) {
	var ids []uint
	if err := overlapLockQuery(tx, ap).Pluck("id", &ids).Error; err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

// --------------------------------------------------
// Appointment (state change / delete)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentForBarber(
	ctx context.Context,
	appointmentID uint,
	barberID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Preload("Client").
		Where("id = ? AND barber_id = ?", appointmentID, barberID).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentByID(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Preload("Client").
		First(&ap, appointmentID).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) SaveStatusChange(
	ctx context.Context,
	ap *models.Appointment,
	income *models.FinancialRecord,
	incomeReversal bool,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.Omit("Services").Save(ap).Error; err != nil {
			return err
		}

		if income != nil {
			if err := tx.Create(income).Error; err != nil {
				return err
			}
		}

		if incomeReversal {
			if err := tx.
				Where("appointment_id = ? AND type = ?", ap.ID, models.RecordIncome).
				Delete(&models.FinancialRecord{}).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(ap).Association("Services").Clear(); err != nil {
			return err
		}
		if err := tx.
			Where("appointment_id = ? AND type = ?", ap.ID, models.RecordIncome).
			Delete(&models.FinancialRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(ap).Error
	})
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	barberID uint,
	day time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "barber_id", "date", "start_minutes", "end_minutes", "status").
		Where(
			"barber_id = ? AND date = ? AND status = 'scheduled'",
			barberID, day.Format("2006-01-02"),
		).
		Order("start_minutes ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListBlocksForDay(
	ctx context.Context,
	barberID uint,
	day time.Time,
) ([]models.AvailabilityBlock, error) {

	var blocks []models.AvailabilityBlock
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND date = ?", barberID, day.Format("2006-01-02")).
		Order("start_minutes ASC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("User").
		Preload("Services").
		Where(
			"barber_id = ? AND date >= ? AND date < ?",
			barberID, from.Format("2006-01-02"), to.Format("2006-01-02"),
		).
		Order("date ASC, start_minutes ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
