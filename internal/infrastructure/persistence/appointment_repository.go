package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/legallink/backend/internal/domain/engagement"
	"github.com/legallink/backend/internal/domain/shared"
	"github.com/legallink/backend/internal/infrastructure/persistence/models"
)

// GormAppointmentRepository implements engagement.AppointmentRepository
// using GORM
type GormAppointmentRepository struct {
	db *gorm.DB
}

// NewGormAppointmentRepository creates a new GormAppointmentRepository
func NewGormAppointmentRepository(db *gorm.DB) *GormAppointmentRepository {
	return &GormAppointmentRepository{db: db}
}

// Create inserts a new appointment
func (r *GormAppointmentRepository) Create(ctx context.Context, appointment *engagement.Appointment) error {
	model := models.AppointmentModelFromDomain(appointment)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves an appointment with optimistic locking on the version column
func (r *GormAppointmentRepository) Update(ctx context.Context, appointment *engagement.Appointment) error {
	model := models.AppointmentModelFromDomain(appointment)
	result := r.db.WithContext(ctx).
		Model(&models.AppointmentModel{}).
		Where("id = ? AND version = ?", appointment.ID, appointment.Version-1).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// FindByID finds an appointment by ID
func (r *GormAppointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*engagement.Appointment, error) {
	var model models.AppointmentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, domainErr(err)
	}
	return model.ToDomain(), nil
}

// FindAll finds appointments matching the filter with total count
func (r *GormAppointmentRepository) FindAll(ctx context.Context, filter engagement.AppointmentFilter) ([]*engagement.Appointment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.AppointmentModel{})
	query = r.applyFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := ValidateSortField(filter.OrderBy, AppointmentSortFields, "start_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var appointmentModels []models.AppointmentModel
	if err := query.Find(&appointmentModels).Error; err != nil {
		return nil, 0, err
	}

	appointments := make([]*engagement.Appointment, len(appointmentModels))
	for i := range appointmentModels {
		appointments[i] = appointmentModels[i].ToDomain()
	}
	return appointments, total, nil
}

// FindConfirmedOverlapping returns confirmed appointments for the
// advocate that intersect [startAt, endAt), excluding excludeID
func (r *GormAppointmentRepository) FindConfirmedOverlapping(ctx context.Context, advocateID uuid.UUID, startAt, endAt time.Time, excludeID uuid.UUID) ([]*engagement.Appointment, error) {
	query := r.db.WithContext(ctx).Model(&models.AppointmentModel{}).
		Where("advocate_id = ?", advocateID).
		Where("status = ?", engagement.StatusConfirmed).
		Where("start_at < ? AND ? < end_at", endAt.UTC(), startAt.UTC())

	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	var appointmentModels []models.AppointmentModel
	if err := query.Order("start_at ASC").Find(&appointmentModels).Error; err != nil {
		return nil, err
	}

	appointments := make([]*engagement.Appointment, len(appointmentModels))
	for i := range appointmentModels {
		appointments[i] = appointmentModels[i].ToDomain()
	}
	return appointments, nil
}

// FindStartingBetween returns confirmed appointments starting inside the
// window, oldest first
func (r *GormAppointmentRepository) FindStartingBetween(ctx context.Context, from, to time.Time) ([]*engagement.Appointment, error) {
	var appointmentModels []models.AppointmentModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", engagement.StatusConfirmed).
		Where("start_at >= ? AND start_at < ?", from.UTC(), to.UTC()).
		Order("start_at ASC").
		Find(&appointmentModels).Error; err != nil {
		return nil, err
	}

	appointments := make([]*engagement.Appointment, len(appointmentModels))
	for i := range appointmentModels {
		appointments[i] = appointmentModels[i].ToDomain()
	}
	return appointments, nil
}

// FindPendingCalendarSync returns confirmed appointments whose calendar
// push has not succeeded yet, oldest first
func (r *GormAppointmentRepository) FindPendingCalendarSync(ctx context.Context, limit int) ([]*engagement.Appointment, error) {
	query := r.db.WithContext(ctx).
		Where("status = ?", engagement.StatusConfirmed).
		Where("calendar_sync = ?", engagement.CalendarSyncPending).
		Order("confirmed_at ASC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	var appointmentModels []models.AppointmentModel
	if err := query.Find(&appointmentModels).Error; err != nil {
		return nil, err
	}

	appointments := make([]*engagement.Appointment, len(appointmentModels))
	for i := range appointmentModels {
		appointments[i] = appointmentModels[i].ToDomain()
	}
	return appointments, nil
}

// Count counts all appointments
func (r *GormAppointmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.AppointmentModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormAppointmentRepository) applyFilter(query *gorm.DB, filter engagement.AppointmentFilter) *gorm.DB {
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.AdvocateID != nil {
		query = query.Where("advocate_id = ?", *filter.AdvocateID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.From != nil {
		query = query.Where("start_at >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		query = query.Where("start_at < ?", filter.To.UTC())
	}
	if filter.Upcoming {
		query = query.
			Where("start_at >= ?", time.Now().UTC()).
			Where("status IN ?", []engagement.AppointmentStatus{engagement.StatusRequested, engagement.StatusConfirmed})
	}
	return query
}

// Ensure GormAppointmentRepository implements AppointmentRepository
var _ engagement.AppointmentRepository = (*GormAppointmentRepository)(nil)
