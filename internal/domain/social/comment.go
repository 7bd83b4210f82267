package social

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/legallink/backend/internal/domain/shared"
)

// Comment is a reply on a post. Soft-deleted like its parent.
type Comment struct {
	shared.BaseEntity
	PostID    uuid.UUID
	AuthorID  uuid.UUID
	Body      string
	Deleted   bool
	DeletedAt *time.Time
}

// NewComment creates a comment on a post
func NewComment(postID, authorID uuid.UUID, body string) (*Comment, error) {
	if postID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_POST", "Post is required")
	}
	if authorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_AUTHOR", "Author is required")
	}
	if err := validateCommentBody(body); err != nil {
		return nil, err
	}

	return &Comment{
		BaseEntity: shared.NewBaseEntity(),
		PostID:     postID,
		AuthorID:   authorID,
		Body:       strings.TrimSpace(body),
	}, nil
}

// Edit replaces the comment body
func (c *Comment) Edit(authorID uuid.UUID, body string) error {
	if c.Deleted {
		return shared.ErrInvalidState
	}
	if c.AuthorID != authorID {
		return shared.ErrForbidden
	}
	if err := validateCommentBody(body); err != nil {
		return err
	}

	c.Body = strings.TrimSpace(body)
	c.Touch()

	return nil
}

// SoftDelete hides the comment. Admins pass isAdmin to override
// ownership.
func (c *Comment) SoftDelete(actorID uuid.UUID, isAdmin bool) error {
	if c.Deleted {
		return shared.ErrInvalidState
	}
	if c.AuthorID != actorID && !isAdmin {
		return shared.ErrForbidden
	}

	now := time.Now()
	c.Deleted = true
	c.DeletedAt = &now
	c.UpdatedAt = now

	return nil
}

func validateCommentBody(body string) error {
	body = strings.TrimSpace(body)
	if body == "" {
		return shared.NewDomainError("INVALID_BODY", "Body cannot be empty")
	}
	if len(body) > 4000 {
		return shared.NewDomainError("INVALID_BODY", "Body cannot exceed 4000 characters")
	}
	return nil
}
