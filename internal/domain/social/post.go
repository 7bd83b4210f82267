package social

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/legallink/backend/internal/domain/shared"
)

// PostVisibility controls who can see a post
type PostVisibility string

const (
	VisibilityPublic  PostVisibility = "public"
	VisibilityClients PostVisibility = "clients" // Signed-in users only
)

// Post is a community feed entry. Deletion is soft; deleted posts stay
// in storage but never surface in the feed.
type Post struct {
	shared.BaseAggregateRoot
	AuthorID      uuid.UUID
	Body          string
	AttachmentURL string
	Visibility    PostVisibility
	Deleted       bool
	DeletedAt     *time.Time
}

// NewPost creates a post
func NewPost(authorID uuid.UUID, body, attachmentURL string, visibility PostVisibility) (*Post, error) {
	if authorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_AUTHOR", "Author is required")
	}
	if err := validateBody(body); err != nil {
		return nil, err
	}
	if err := validateAttachmentURL(attachmentURL); err != nil {
		return nil, err
	}
	if err := validateVisibility(visibility); err != nil {
		return nil, err
	}

	return &Post{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		AuthorID:          authorID,
		Body:              strings.TrimSpace(body),
		AttachmentURL:     attachmentURL,
		Visibility:        visibility,
	}, nil
}

// Edit replaces the post body
func (p *Post) Edit(authorID uuid.UUID, body string) error {
	if p.Deleted {
		return shared.ErrInvalidState
	}
	if p.AuthorID != authorID {
		return shared.ErrForbidden
	}
	if err := validateBody(body); err != nil {
		return err
	}

	p.Body = strings.TrimSpace(body)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SoftDelete hides the post. Admins pass isAdmin to override ownership.
func (p *Post) SoftDelete(actorID uuid.UUID, isAdmin bool) error {
	if p.Deleted {
		return shared.ErrInvalidState
	}
	if p.AuthorID != actorID && !isAdmin {
		return shared.ErrForbidden
	}

	now := time.Now()
	p.Deleted = true
	p.DeletedAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()

	return nil
}

func validateBody(body string) error {
	body = strings.TrimSpace(body)
	if body == "" {
		return shared.NewDomainError("INVALID_BODY", "Body cannot be empty")
	}
	if len(body) > 10000 {
		return shared.NewDomainError("INVALID_BODY", "Body cannot exceed 10000 characters")
	}
	return nil
}

func validateAttachmentURL(url string) error {
	if url != "" && len(url) > 500 {
		return shared.NewDomainError("INVALID_ATTACHMENT", "Attachment URL cannot exceed 500 characters")
	}
	return nil
}

func validateVisibility(v PostVisibility) error {
	switch v {
	case VisibilityPublic, VisibilityClients:
		return nil
	default:
		return shared.NewDomainError("INVALID_VISIBILITY", "Visibility must be 'public' or 'clients'")
	}
}
