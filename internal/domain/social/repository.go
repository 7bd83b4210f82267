package social

import (
	"context"

	"github.com/google/uuid"

	"github.com/legallink/backend/internal/domain/shared"
)

// PostCounters holds read-time counts for a post
type PostCounters struct {
	Comments  int64
	Reactions map[ReactionKind]int64
}

// PostRepository defines the persistence operations for the feed
type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	Update(ctx context.Context, post *Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*Post, error)
	// Feed returns non-deleted posts newest first.
	Feed(ctx context.Context, filter FeedFilter) ([]*Post, int64, error)
	Counters(ctx context.Context, postID uuid.UUID) (PostCounters, error)
}

// FeedFilter narrows feed listings
type FeedFilter struct {
	shared.Filter
	AuthorID      *uuid.UUID
	Visibility    *PostVisibility
	IncludePublic bool // With Visibility set, also include public posts
}

// CommentRepository defines the persistence operations for comments
type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	Update(ctx context.Context, comment *Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*Comment, error)
	// FindByPost returns non-deleted comments oldest first.
	FindByPost(ctx context.Context, postID uuid.UUID, filter shared.Filter) ([]*Comment, int64, error)
}

// ReactionRepository defines the persistence operations for reactions
type ReactionRepository interface {
	Save(ctx context.Context, reaction *Reaction) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByPostAndUser(ctx context.Context, postID, userID uuid.UUID) (*Reaction, error)
	CountByPost(ctx context.Context, postID uuid.UUID) (map[ReactionKind]int64, error)
}
