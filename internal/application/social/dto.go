package social

import (
	"time"

	"github.com/google/uuid"

	"github.com/legallink/backend/internal/domain/social"
)

// CreatePostRequest publishes a feed post
type CreatePostRequest struct {
	Body          string `json:"body" binding:"required,min=1,max=5000"`
	AttachmentURL string `json:"attachment_url" binding:"omitempty,url,max=500"`
	Visibility    string `json:"visibility" binding:"required,oneof=public clients"`
}

// EditPostRequest replaces a post body
type EditPostRequest struct {
	Body string `json:"body" binding:"required,min=1,max=5000"`
}

// CreateCommentRequest adds a comment to a post
type CreateCommentRequest struct {
	Body string `json:"body" binding:"required,min=1,max=2000"`
}

// EditCommentRequest replaces a comment body
type EditCommentRequest struct {
	Body string `json:"body" binding:"required,min=1,max=2000"`
}

// ReactRequest sets the caller's reaction on a post
type ReactRequest struct {
	Kind string `json:"kind" binding:"required,oneof=like support insightful"`
}

// FeedRequest pages through the feed
type FeedRequest struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	AuthorID string `form:"author_id" binding:"omitempty,uuid"`
}

// PostResponse represents a post in API responses
type PostResponse struct {
	ID            uuid.UUID        `json:"id"`
	AuthorID      uuid.UUID        `json:"author_id"`
	Body          string           `json:"body"`
	AttachmentURL string           `json:"attachment_url,omitempty"`
	Visibility    string           `json:"visibility"`
	CommentCount  int64            `json:"comment_count"`
	Reactions     map[string]int64 `json:"reactions"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// CommentResponse represents a comment in API responses
type CommentResponse struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReactionResponse represents the caller's reaction on a post
type ReactionResponse struct {
	ID     uuid.UUID `json:"id"`
	PostID uuid.UUID `json:"post_id"`
	UserID uuid.UUID `json:"user_id"`
	Kind   string    `json:"kind"`
}

// ToPostResponse converts a domain post plus its counters to a DTO
func ToPostResponse(post *social.Post, counters social.PostCounters) PostResponse {
	reactions := make(map[string]int64, len(counters.Reactions))
	for kind, count := range counters.Reactions {
		reactions[string(kind)] = count
	}
	return PostResponse{
		ID:            post.ID,
		AuthorID:      post.AuthorID,
		Body:          post.Body,
		AttachmentURL: post.AttachmentURL,
		Visibility:    string(post.Visibility),
		CommentCount:  counters.Comments,
		Reactions:     reactions,
		CreatedAt:     post.CreatedAt,
		UpdatedAt:     post.UpdatedAt,
	}
}

// ToCommentResponse converts a domain comment to a DTO
func ToCommentResponse(comment *social.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		PostID:    comment.PostID,
		AuthorID:  comment.AuthorID,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

// ToReactionResponse converts a domain reaction to a DTO
func ToReactionResponse(reaction *social.Reaction) ReactionResponse {
	return ReactionResponse{
		ID:     reaction.ID,
		PostID: reaction.PostID,
		UserID: reaction.UserID,
		Kind:   string(reaction.Kind),
	}
}

// UploadResponse carries the stored attachment's key and public URL
type UploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
