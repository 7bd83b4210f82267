package persistence

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/legallink/backend/internal/domain/directory"
	"github.com/legallink/backend/internal/domain/shared"
	"github.com/legallink/backend/internal/infrastructure/persistence/models"
)

// GormAdvocateRepository implements directory.AdvocateRepository using GORM
type GormAdvocateRepository struct {
	db *gorm.DB
}

// NewGormAdvocateRepository creates a new GormAdvocateRepository
func NewGormAdvocateRepository(db *gorm.DB) *GormAdvocateRepository {
	return &GormAdvocateRepository{db: db}
}

// Create inserts a new advocate profile
func (r *GormAdvocateRepository) Create(ctx context.Context, advocate *directory.Advocate) error {
	model := models.AdvocateModelFromDomain(advocate)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return domainErr(err)
	}
	return nil
}

// Update saves an advocate with optimistic locking on the version column
func (r *GormAdvocateRepository) Update(ctx context.Context, advocate *directory.Advocate) error {
	model := models.AdvocateModelFromDomain(advocate)
	result := r.db.WithContext(ctx).
		Model(&models.AdvocateModel{}).
		Where("id = ? AND version = ?", advocate.ID, advocate.Version-1).
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

// Delete removes an advocate profile
func (r *GormAdvocateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AdvocateModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds an advocate by profile ID
func (r *GormAdvocateRepository) FindByID(ctx context.Context, id uuid.UUID) (*directory.Advocate, error) {
	var model models.AdvocateModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, domainErr(err)
	}
	return model.ToDomain(), nil
}

// FindByUserID finds the advocate profile owned by a user
func (r *GormAdvocateRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*directory.Advocate, error) {
	var model models.AdvocateModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&model).Error; err != nil {
		return nil, domainErr(err)
	}
	return model.ToDomain(), nil
}

// FindByRegistrationNumber finds an advocate by bar registration number
func (r *GormAdvocateRepository) FindByRegistrationNumber(ctx context.Context, number string) (*directory.Advocate, error) {
	var model models.AdvocateModel
	if err := r.db.WithContext(ctx).
		Where("registration_number = ?", strings.ToUpper(strings.TrimSpace(number))).
		First(&model).Error; err != nil {
		return nil, domainErr(err)
	}
	return model.ToDomain(), nil
}

// Search finds advocates matching the directory filter with total count
func (r *GormAdvocateRepository) Search(ctx context.Context, filter directory.SearchFilter) ([]*directory.Advocate, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.AdvocateModel{})
	query = r.applySearchFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := ValidateSortField(filter.OrderBy, AdvocateSortFields, "average_rating")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order("advocates." + orderBy + " " + orderDir)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var advocateModels []models.AdvocateModel
	if err := query.Find(&advocateModels).Error; err != nil {
		return nil, 0, err
	}

	advocates := make([]*directory.Advocate, len(advocateModels))
	for i := range advocateModels {
		advocates[i] = advocateModels[i].ToDomain()
	}
	return advocates, total, nil
}

// FindCandidates loads verified, active advocates eligible for matching.
// Specialization narrows via jsonb containment; the domain ranker does
// the rest.
func (r *GormAdvocateRepository) FindCandidates(ctx context.Context, req directory.MatchRequest) ([]*directory.Advocate, error) {
	query := r.db.WithContext(ctx).Model(&models.AdvocateModel{}).
		Where("verification = ?", directory.VerificationVerified).
		Where("status = ?", directory.AdvocateStatusActive).
		Where("specializations @> ?", specializationJSON(req.Specialization))

	if req.State != "" {
		query = query.Where("LOWER(state) = LOWER(?)", strings.TrimSpace(req.State))
	}

	var advocateModels []models.AdvocateModel
	if err := query.Find(&advocateModels).Error; err != nil {
		return nil, err
	}

	advocates := make([]*directory.Advocate, len(advocateModels))
	for i := range advocateModels {
		advocates[i] = advocateModels[i].ToDomain()
	}
	return advocates, nil
}

// ExistsByUserID checks whether the user already owns a profile
func (r *GormAdvocateRepository) ExistsByUserID(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.AdvocateModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByRegistrationNumber checks whether the registration number is taken
func (r *GormAdvocateRepository) ExistsByRegistrationNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.AdvocateModel{}).
		Where("registration_number = ?", strings.ToUpper(strings.TrimSpace(number))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count counts all advocate profiles
func (r *GormAdvocateRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.AdvocateModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormAdvocateRepository) applySearchFilter(query *gorm.DB, filter directory.SearchFilter) *gorm.DB {
	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.
			Joins("JOIN users ON users.id = advocates.user_id").
			Where("users.display_name ILIKE ? OR advocates.registration_number ILIKE ? OR advocates.bio ILIKE ?",
				pattern, pattern, pattern)
	}
	if filter.Specialization != nil {
		query = query.Where("specializations @> ?", specializationJSON(*filter.Specialization))
	}
	if filter.City != "" {
		query = query.Where("LOWER(city) = LOWER(?)", strings.TrimSpace(filter.City))
	}
	if filter.State != "" {
		query = query.Where("LOWER(state) = LOWER(?)", strings.TrimSpace(filter.State))
	}
	if filter.Language != "" {
		query = query.Where(
			"EXISTS (SELECT 1 FROM jsonb_array_elements_text(languages) lang WHERE LOWER(lang) = LOWER(?))",
			strings.TrimSpace(filter.Language))
	}
	if filter.FeeCeiling.IsPositive() {
		query = query.Where("consultation_fee <= ?", filter.FeeCeiling)
	}
	if filter.VerifiedOnly {
		query = query.Where("verification = ?", directory.VerificationVerified)
	}
	if filter.AvailableOnly {
		query = query.Where("available = ?", true)
	}
	if filter.Verification != nil {
		query = query.Where("verification = ?", *filter.Verification)
	}
	if filter.Status != nil {
		query = query.Where("advocates.status = ?", *filter.Status)
	}
	return query
}

// specializationJSON renders a single tag as a jsonb array literal for
// containment queries
func specializationJSON(s directory.Specialization) string {
	b, _ := json.Marshal([]directory.Specialization{s})
	return string(b)
}

// Ensure GormAdvocateRepository implements AdvocateRepository
var _ directory.AdvocateRepository = (*GormAdvocateRepository)(nil)
