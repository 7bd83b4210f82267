package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/legallink/backend/internal/domain/assistant"
	"github.com/legallink/backend/internal/domain/shared"
	"github.com/legallink/backend/internal/infrastructure/persistence/models"
)

// GormMessageRepository implements assistant.MessageRepository using GORM
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new GormMessageRepository
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

// Create inserts a new chat message
func (r *GormMessageRepository) Create(ctx context.Context, message *assistant.ChatMessage) error {
	model := models.ChatMessageModelFromDomain(message)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindBySession returns a session's transcript oldest first with total
// count
func (r *GormMessageRepository) FindBySession(ctx context.Context, sessionID uuid.UUID, filter shared.Filter) ([]*assistant.ChatMessage, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ChatMessageModel{}).
		Where("session_id = ?", sessionID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at ASC")
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var messageModels []models.ChatMessageModel
	if err := query.Find(&messageModels).Error; err != nil {
		return nil, 0, err
	}

	messages := make([]*assistant.ChatMessage, len(messageModels))
	for i := range messageModels {
		messages[i] = messageModels[i].ToDomain()
	}
	return messages, total, nil
}

// FindRecentBySession returns the newest messages for a session,
// reordered oldest first, bounded by limit
func (r *GormMessageRepository) FindRecentBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]*assistant.ChatMessage, error) {
	query := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	var messageModels []models.ChatMessageModel
	if err := query.Find(&messageModels).Error; err != nil {
		return nil, err
	}

	// Newest-first from the query; callers want chronological order.
	messages := make([]*assistant.ChatMessage, len(messageModels))
	for i := range messageModels {
		messages[len(messageModels)-1-i] = messageModels[i].ToDomain()
	}
	return messages, nil
}

// FindSessionIDsByUser returns the user's session IDs, most recent
// activity first
func (r *GormMessageRepository) FindSessionIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var sessionIDs []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.ChatMessageModel{}).
		Select("session_id").
		Where("user_id = ?", userID).
		Group("session_id").
		Order("MAX(created_at) DESC").
		Pluck("session_id", &sessionIDs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []uuid.UUID{}, nil
		}
		return nil, err
	}
	return sessionIDs, nil
}

// Ensure GormMessageRepository implements MessageRepository
var _ assistant.MessageRepository = (*GormMessageRepository)(nil)
