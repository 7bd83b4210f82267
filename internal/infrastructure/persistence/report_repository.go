package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/legallink/backend/internal/domain/moderation"
	"github.com/legallink/backend/internal/domain/shared"
	"github.com/legallink/backend/internal/infrastructure/persistence/models"
)

// GormReportRepository implements moderation.ReportRepository using GORM
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// Create inserts a new report
func (r *GormReportRepository) Create(ctx context.Context, report *moderation.Report) error {
	model := models.ReportModelFromDomain(report)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves a report with optimistic locking on the version column
func (r *GormReportRepository) Update(ctx context.Context, report *moderation.Report) error {
	model := models.ReportModelFromDomain(report)
	result := r.db.WithContext(ctx).
		Model(&models.ReportModel{}).
		Where("id = ? AND version = ?", report.ID, report.Version-1).
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

// FindByID finds a report by ID
func (r *GormReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*moderation.Report, error) {
	var model models.ReportModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, domainErr(err)
	}
	return model.ToDomain(), nil
}

// FindAll finds reports matching the filter with total count
func (r *GormReportRepository) FindAll(ctx context.Context, filter moderation.ReportFilter) ([]*moderation.Report, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ReportModel{})
	query = r.applyFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := ValidateSortField(filter.OrderBy, ReportSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var reportModels []models.ReportModel
	if err := query.Find(&reportModels).Error; err != nil {
		return nil, 0, err
	}

	reports := make([]*moderation.Report, len(reportModels))
	for i := range reportModels {
		reports[i] = reportModels[i].ToDomain()
	}
	return reports, total, nil
}

// CountOpenByAdvocate counts unresolved reports against an advocate
func (r *GormReportRepository) CountOpenByAdvocate(ctx context.Context, advocateID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ReportModel{}).
		Where("advocate_id = ?", advocateID).
		Where("status IN ?", []moderation.ReportStatus{moderation.ReportStatusOpen, moderation.ReportStatusUnderReview}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormReportRepository) applyFilter(query *gorm.DB, filter moderation.ReportFilter) *gorm.DB {
	if filter.ReporterID != nil {
		query = query.Where("reporter_id = ?", *filter.ReporterID)
	}
	if filter.AdvocateID != nil {
		query = query.Where("advocate_id = ?", *filter.AdvocateID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Reason != nil {
		query = query.Where("reason = ?", *filter.Reason)
	}
	return query
}

// Ensure GormReportRepository implements ReportRepository
var _ moderation.ReportRepository = (*GormReportRepository)(nil)
