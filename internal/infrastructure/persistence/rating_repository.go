package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/legallink/backend/internal/domain/moderation"
	"github.com/legallink/backend/internal/domain/shared"
	"github.com/legallink/backend/internal/infrastructure/persistence/models"
)

// GormRatingRepository implements moderation.RatingRepository using GORM
type GormRatingRepository struct {
	db *gorm.DB
}

// NewGormRatingRepository creates a new GormRatingRepository
func NewGormRatingRepository(db *gorm.DB) *GormRatingRepository {
	return &GormRatingRepository{db: db}
}

// Create inserts a new rating
func (r *GormRatingRepository) Create(ctx context.Context, rating *moderation.Rating) error {
	model := models.RatingModelFromDomain(rating)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return domainErr(err)
	}
	return nil
}

// Update saves a rating with optimistic locking on the version column
func (r *GormRatingRepository) Update(ctx context.Context, rating *moderation.Rating) error {
	model := models.RatingModelFromDomain(rating)
	result := r.db.WithContext(ctx).
		Model(&models.RatingModel{}).
		Where("id = ? AND version = ?", rating.ID, rating.Version-1).
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

// Delete removes a rating
func (r *GormRatingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.RatingModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a rating by ID
func (r *GormRatingRepository) FindByID(ctx context.Context, id uuid.UUID) (*moderation.Rating, error) {
	var model models.RatingModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, domainErr(err)
	}
	return model.ToDomain(), nil
}

// FindByPair finds the one rating a client holds on an advocate
func (r *GormRatingRepository) FindByPair(ctx context.Context, clientID, advocateID uuid.UUID) (*moderation.Rating, error) {
	var model models.RatingModel
	if err := r.db.WithContext(ctx).
		Where("client_id = ? AND advocate_id = ?", clientID, advocateID).
		First(&model).Error; err != nil {
		return nil, domainErr(err)
	}
	return model.ToDomain(), nil
}

// FindByAdvocate finds ratings for an advocate with total count
func (r *GormRatingRepository) FindByAdvocate(ctx context.Context, advocateID uuid.UUID, filter shared.Filter) ([]*moderation.Rating, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.RatingModel{}).
		Where("advocate_id = ?", advocateID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := ValidateSortField(filter.OrderBy, RatingSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var ratingModels []models.RatingModel
	if err := query.Find(&ratingModels).Error; err != nil {
		return nil, 0, err
	}

	ratings := make([]*moderation.Rating, len(ratingModels))
	for i := range ratingModels {
		ratings[i] = ratingModels[i].ToDomain()
	}
	return ratings, total, nil
}

// Summarize recomputes the average and count over all ratings for the
// advocate. No rows yields a zero summary.
func (r *GormRatingRepository) Summarize(ctx context.Context, advocateID uuid.UUID) (moderation.RatingSummary, error) {
	var row struct {
		Average decimal.NullDecimal
		Count   int64
	}

	if err := r.db.WithContext(ctx).
		Model(&models.RatingModel{}).
		Select("AVG(score) AS average, COUNT(*) AS count").
		Where("advocate_id = ?", advocateID).
		Scan(&row).Error; err != nil {
		return moderation.RatingSummary{}, err
	}

	summary := moderation.RatingSummary{
		Average: decimal.Zero,
		Count:   int(row.Count),
	}
	if row.Average.Valid {
		summary.Average = row.Average.Decimal.Round(2)
	}
	return summary, nil
}

// Ensure GormRatingRepository implements RatingRepository
var _ moderation.RatingRepository = (*GormRatingRepository)(nil)
