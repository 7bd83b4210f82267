package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/legallink/backend/internal/domain/social"
)

// PostModel is the persistence model for the Post domain entity.
// Deletion is soft; feed queries filter on deleted.
type PostModel struct {
	AggregateModel
	AuthorID      uuid.UUID             `gorm:"type:uuid;not null;index:idx_posts_author"`
	Body          string                `gorm:"type:text;not null"`
	AttachmentURL string                `gorm:"type:varchar(500)"`
	Visibility    social.PostVisibility `gorm:"type:varchar(20);not null;default:'public';index"`
	Deleted       bool                  `gorm:"not null;default:false;index"`
	DeletedAt     *time.Time
}

// TableName returns the table name for GORM
func (PostModel) TableName() string {
	return "posts"
}

// ToDomain converts the persistence model to a domain Post entity.
func (m *PostModel) ToDomain() *social.Post {
	return &social.Post{
		BaseAggregateRoot: m.ToAggregateRoot(),
		AuthorID:          m.AuthorID,
		Body:              m.Body,
		AttachmentURL:     m.AttachmentURL,
		Visibility:        m.Visibility,
		Deleted:           m.Deleted,
		DeletedAt:         m.DeletedAt,
	}
}

// FromDomain populates the persistence model from a domain Post entity.
func (m *PostModel) FromDomain(p *social.Post) {
	m.FromAggregateRoot(p.BaseAggregateRoot)
	m.AuthorID = p.AuthorID
	m.Body = p.Body
	m.AttachmentURL = p.AttachmentURL
	m.Visibility = p.Visibility
	m.Deleted = p.Deleted
	m.DeletedAt = p.DeletedAt
}

// PostModelFromDomain creates a new persistence model from a domain Post entity.
func PostModelFromDomain(p *social.Post) *PostModel {
	m := &PostModel{}
	m.FromDomain(p)
	return m
}

// CommentModel is the persistence model for the Comment domain entity.
type CommentModel struct {
	BaseModel
	PostID    uuid.UUID `gorm:"type:uuid;not null;index:idx_comments_post"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null;index:idx_comments_author"`
	Body      string    `gorm:"type:varchar(4000);not null"`
	Deleted   bool      `gorm:"not null;default:false"`
	DeletedAt *time.Time
}

// TableName returns the table name for GORM
func (CommentModel) TableName() string {
	return "comments"
}

// ToDomain converts the persistence model to a domain Comment entity.
func (m *CommentModel) ToDomain() *social.Comment {
	return &social.Comment{
		BaseEntity: m.ToBaseEntity(),
		PostID:     m.PostID,
		AuthorID:   m.AuthorID,
		Body:       m.Body,
		Deleted:    m.Deleted,
		DeletedAt:  m.DeletedAt,
	}
}

// FromDomain populates the persistence model from a domain Comment entity.
func (m *CommentModel) FromDomain(c *social.Comment) {
	m.FromBaseEntity(c.BaseEntity)
	m.PostID = c.PostID
	m.AuthorID = c.AuthorID
	m.Body = c.Body
	m.Deleted = c.Deleted
	m.DeletedAt = c.DeletedAt
}

// CommentModelFromDomain creates a new persistence model from a domain Comment entity.
func CommentModelFromDomain(c *social.Comment) *CommentModel {
	m := &CommentModel{}
	m.FromDomain(c)
	return m
}

// ReactionModel is the persistence model for the Reaction domain entity.
// The unique pair index enforces one reaction per user per post.
type ReactionModel struct {
	BaseModel
	PostID uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_reactions_pair,priority:1"`
	UserID uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_reactions_pair,priority:2"`
	Kind   social.ReactionKind `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (ReactionModel) TableName() string {
	return "reactions"
}

// ToDomain converts the persistence model to a domain Reaction entity.
func (m *ReactionModel) ToDomain() *social.Reaction {
	return &social.Reaction{
		BaseEntity: m.ToBaseEntity(),
		PostID:     m.PostID,
		UserID:     m.UserID,
		Kind:       m.Kind,
	}
}

// FromDomain populates the persistence model from a domain Reaction entity.
func (m *ReactionModel) FromDomain(r *social.Reaction) {
	m.FromBaseEntity(r.BaseEntity)
	m.PostID = r.PostID
	m.UserID = r.UserID
	m.Kind = r.Kind
}

// ReactionModelFromDomain creates a new persistence model from a domain Reaction entity.
func ReactionModelFromDomain(r *social.Reaction) *ReactionModel {
	m := &ReactionModel{}
	m.FromDomain(r)
	return m
}
