package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/legallink/backend/internal/domain/shared"
	"github.com/legallink/backend/internal/domain/social"
	"github.com/legallink/backend/internal/infrastructure/persistence/models"
)

// GormPostRepository implements social.PostRepository using GORM
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GormPostRepository
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// Create inserts a new post
func (r *GormPostRepository) Create(ctx context.Context, post *social.Post) error {
	model := models.PostModelFromDomain(post)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves a post with optimistic locking on the version column
func (r *GormPostRepository) Update(ctx context.Context, post *social.Post) error {
	model := models.PostModelFromDomain(post)
	result := r.db.WithContext(ctx).
		Model(&models.PostModel{}).
		Where("id = ? AND version = ?", post.ID, post.Version-1).
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

// FindByID finds a post by ID, deleted or not. Visibility and deletion
// policy is the caller's concern.
func (r *GormPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*social.Post, error) {
	var model models.PostModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, domainErr(err)
	}
	return model.ToDomain(), nil
}

// Feed returns non-deleted posts newest first with total count
func (r *GormPostRepository) Feed(ctx context.Context, filter social.FeedFilter) ([]*social.Post, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PostModel{}).
		Where("deleted = ?", false)
	query = r.applyFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := ValidateSortField(filter.OrderBy, PostSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var postModels []models.PostModel
	if err := query.Find(&postModels).Error; err != nil {
		return nil, 0, err
	}

	posts := make([]*social.Post, len(postModels))
	for i := range postModels {
		posts[i] = postModels[i].ToDomain()
	}
	return posts, total, nil
}

// Counters returns the comment count and per-kind reaction counts for a
// post
func (r *GormPostRepository) Counters(ctx context.Context, postID uuid.UUID) (social.PostCounters, error) {
	counters := social.PostCounters{
		Reactions: make(map[social.ReactionKind]int64),
	}

	if err := r.db.WithContext(ctx).
		Model(&models.CommentModel{}).
		Where("post_id = ? AND deleted = ?", postID, false).
		Count(&counters.Comments).Error; err != nil {
		return social.PostCounters{}, err
	}

	var rows []struct {
		Kind  social.ReactionKind
		Count int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.ReactionModel{}).
		Select("kind, COUNT(*) AS count").
		Where("post_id = ?", postID).
		Group("kind").
		Scan(&rows).Error; err != nil {
		return social.PostCounters{}, err
	}
	for _, row := range rows {
		counters.Reactions[row.Kind] = row.Count
	}

	return counters, nil
}

func (r *GormPostRepository) applyFilter(query *gorm.DB, filter social.FeedFilter) *gorm.DB {
	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
	}
	if filter.Visibility != nil {
		if filter.IncludePublic {
			query = query.Where("visibility IN ?", []social.PostVisibility{*filter.Visibility, social.VisibilityPublic})
		} else {
			query = query.Where("visibility = ?", *filter.Visibility)
		}
	}
	return query
}

// Ensure GormPostRepository implements PostRepository
var _ social.PostRepository = (*GormPostRepository)(nil)

// GormCommentRepository implements social.CommentRepository using GORM
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// Create inserts a new comment
func (r *GormCommentRepository) Create(ctx context.Context, comment *social.Comment) error {
	model := models.CommentModelFromDomain(comment)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves a comment
func (r *GormCommentRepository) Update(ctx context.Context, comment *social.Comment) error {
	model := models.CommentModelFromDomain(comment)
	result := r.db.WithContext(ctx).
		Model(&models.CommentModel{}).
		Where("id = ?", comment.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a comment by ID
func (r *GormCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*social.Comment, error) {
	var model models.CommentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, domainErr(err)
	}
	return model.ToDomain(), nil
}

// FindByPost returns non-deleted comments for a post oldest first with
// total count
func (r *GormCommentRepository) FindByPost(ctx context.Context, postID uuid.UUID, filter shared.Filter) ([]*social.Comment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.CommentModel{}).
		Where("post_id = ? AND deleted = ?", postID, false)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at ASC")
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var commentModels []models.CommentModel
	if err := query.Find(&commentModels).Error; err != nil {
		return nil, 0, err
	}

	comments := make([]*social.Comment, len(commentModels))
	for i := range commentModels {
		comments[i] = commentModels[i].ToDomain()
	}
	return comments, total, nil
}

// Ensure GormCommentRepository implements CommentRepository
var _ social.CommentRepository = (*GormCommentRepository)(nil)

// GormReactionRepository implements social.ReactionRepository using GORM
type GormReactionRepository struct {
	db *gorm.DB
}

// NewGormReactionRepository creates a new GormReactionRepository
func NewGormReactionRepository(db *gorm.DB) *GormReactionRepository {
	return &GormReactionRepository{db: db}
}

// Save creates or updates a reaction
func (r *GormReactionRepository) Save(ctx context.Context, reaction *social.Reaction) error {
	model := models.ReactionModelFromDomain(reaction)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a reaction
func (r *GormReactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ReactionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByPostAndUser finds the one reaction a user holds on a post
func (r *GormReactionRepository) FindByPostAndUser(ctx context.Context, postID, userID uuid.UUID) (*social.Reaction, error) {
	var model models.ReactionModel
	if err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		First(&model).Error; err != nil {
		return nil, domainErr(err)
	}
	return model.ToDomain(), nil
}

// CountByPost returns per-kind reaction counts for a post
func (r *GormReactionRepository) CountByPost(ctx context.Context, postID uuid.UUID) (map[social.ReactionKind]int64, error) {
	var rows []struct {
		Kind  social.ReactionKind
		Count int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.ReactionModel{}).
		Select("kind, COUNT(*) AS count").
		Where("post_id = ?", postID).
		Group("kind").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[social.ReactionKind]int64, len(rows))
	for _, row := range rows {
		counts[row.Kind] = row.Count
	}
	return counts, nil
}

// Ensure GormReactionRepository implements ReactionRepository
var _ social.ReactionRepository = (*GormReactionRepository)(nil)
