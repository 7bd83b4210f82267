package social

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/legallink/backend/internal/domain/shared"
	"github.com/legallink/backend/internal/domain/social"
)

// PostService handles the community feed: posts, comments and reactions
type PostService struct {
	postRepo     social.PostRepository
	commentRepo  social.CommentRepository
	reactionRepo social.ReactionRepository
	logger       *zap.Logger
}

// NewPostService creates a new post service
func NewPostService(
	postRepo social.PostRepository,
	commentRepo social.CommentRepository,
	reactionRepo social.ReactionRepository,
	logger *zap.Logger,
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		reactionRepo: reactionRepo,
		logger:       logger,
	}
}

// Create publishes a post
func (s *PostService) Create(ctx context.Context, authorID uuid.UUID, req CreatePostRequest) (*PostResponse, error) {
	post, err := social.NewPost(authorID, req.Body, req.AttachmentURL, social.PostVisibility(req.Visibility))
	if err != nil {
		return nil, err
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("Post created",
		zap.String("post_id", post.ID.String()),
		zap.String("author_id", authorID.String()))

	response := ToPostResponse(post, social.PostCounters{})
	return &response, nil
}

// GetByID returns a post with its counters. Deleted posts are not found;
// client-only posts require a signed-in viewer.
func (s *PostService) GetByID(ctx context.Context, viewerID uuid.UUID, id uuid.UUID) (*PostResponse, error) {
	post, err := s.loadVisible(ctx, viewerID, id)
	if err != nil {
		return nil, err
	}
	counters, err := s.postRepo.Counters(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	response := ToPostResponse(post, counters)
	return &response, nil
}

// Feed pages through visible posts, newest first. Anonymous viewers see
// public posts only.
func (s *PostService) Feed(ctx context.Context, viewerID uuid.UUID, req FeedRequest) (*shared.Paginated[PostResponse], error) {
	filter := social.FeedFilter{Filter: shared.DefaultFilter()}
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 && req.PageSize <= 100 {
		filter.PageSize = req.PageSize
	}
	if req.AuthorID != "" {
		authorID, err := uuid.Parse(req.AuthorID)
		if err != nil {
			return nil, shared.ErrInvalidInput
		}
		filter.AuthorID = &authorID
	}
	if viewerID == uuid.Nil {
		visibility := social.VisibilityPublic
		filter.Visibility = &visibility
	}

	posts, total, err := s.postRepo.Feed(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]PostResponse, len(posts))
	for i, post := range posts {
		counters, err := s.postRepo.Counters(ctx, post.ID)
		if err != nil {
			return nil, err
		}
		items[i] = ToPostResponse(post, counters)
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Edit replaces the body of the caller's post
func (s *PostService) Edit(ctx context.Context, authorID uuid.UUID, id uuid.UUID, req EditPostRequest) (*PostResponse, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if err := post.Edit(authorID, req.Body); err != nil {
		return nil, err
	}
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	counters, err := s.postRepo.Counters(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	response := ToPostResponse(post, counters)
	return &response, nil
}

// Delete soft-deletes a post. Authors delete their own; admins any.
func (s *PostService) Delete(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return shared.ErrNotFound
	}
	if err := post.SoftDelete(actorID, isAdmin); err != nil {
		return err
	}
	if err := s.postRepo.Update(ctx, post); err != nil {
		return err
	}

	s.logger.Info("Post deleted",
		zap.String("post_id", id.String()),
		zap.Bool("by_admin", isAdmin))
	return nil
}

// Comment adds a comment to a visible post
func (s *PostService) Comment(ctx context.Context, authorID uuid.UUID, postID uuid.UUID, req CreateCommentRequest) (*CommentResponse, error) {
	if _, err := s.loadVisible(ctx, authorID, postID); err != nil {
		return nil, err
	}

	comment, err := social.NewComment(postID, authorID, req.Body)
	if err != nil {
		return nil, err
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	response := ToCommentResponse(comment)
	return &response, nil
}

// ListComments pages through a post's comments, oldest first
func (s *PostService) ListComments(ctx context.Context, viewerID uuid.UUID, postID uuid.UUID, req FeedRequest) (*shared.Paginated[CommentResponse], error) {
	if _, err := s.loadVisible(ctx, viewerID, postID); err != nil {
		return nil, err
	}

	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 && req.PageSize <= 100 {
		filter.PageSize = req.PageSize
	}

	comments, total, err := s.commentRepo.FindByPost(ctx, postID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]CommentResponse, len(comments))
	for i, comment := range comments {
		items[i] = ToCommentResponse(comment)
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// EditComment replaces a comment's body. Only the author may edit.
func (s *PostService) EditComment(ctx context.Context, authorID uuid.UUID, commentID uuid.UUID, req EditCommentRequest) (*CommentResponse, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if err := comment.Edit(authorID, req.Body); err != nil {
		return nil, err
	}
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	response := ToCommentResponse(comment)
	return &response, nil
}

// DeleteComment soft-deletes a comment. Authors delete their own;
// admins any.
func (s *PostService) DeleteComment(ctx context.Context, actorID uuid.UUID, isAdmin bool, commentID uuid.UUID) error {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return shared.ErrNotFound
	}
	if err := comment.SoftDelete(actorID, isAdmin); err != nil {
		return err
	}
	return s.commentRepo.Update(ctx, comment)
}

// React sets the caller's reaction on a post. A repeated reaction of the
// same kind removes it; a different kind switches it.
func (s *PostService) React(ctx context.Context, userID uuid.UUID, postID uuid.UUID, req ReactRequest) (*ReactionResponse, error) {
	if _, err := s.loadVisible(ctx, userID, postID); err != nil {
		return nil, err
	}

	kind := social.ReactionKind(req.Kind)
	existing, err := s.reactionRepo.FindByPostAndUser(ctx, postID, userID)
	if err == nil && existing != nil {
		if existing.Kind == kind {
			// Toggling the same kind removes the reaction
			if err := s.reactionRepo.Delete(ctx, existing.ID); err != nil {
				return nil, err
			}
			return nil, nil
		}
		if err := existing.Switch(kind); err != nil {
			return nil, err
		}
		if err := s.reactionRepo.Save(ctx, existing); err != nil {
			return nil, err
		}
		response := ToReactionResponse(existing)
		return &response, nil
	}

	reaction, err := social.NewReaction(postID, userID, kind)
	if err != nil {
		return nil, err
	}
	if err := s.reactionRepo.Save(ctx, reaction); err != nil {
		return nil, err
	}
	response := ToReactionResponse(reaction)
	return &response, nil
}

// loadVisible loads a post and enforces visibility for the viewer
func (s *PostService) loadVisible(ctx context.Context, viewerID uuid.UUID, id uuid.UUID) (*social.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if post.Deleted {
		return nil, shared.ErrNotFound
	}
	if post.Visibility == social.VisibilityClients && viewerID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}
	return post, nil
}
