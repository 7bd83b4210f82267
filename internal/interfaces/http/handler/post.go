package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/legallink/backend/internal/application/social"
)

// PostHandler handles social feed HTTP requests
type PostHandler struct {
	BaseHandler
	postService *social.PostService
}

// NewPostHandler creates a new post handler
func NewPostHandler(postService *social.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
	}
}

// Create godoc
// @Summary      Publish a post
// @Description  Advocates publish to the feed, optionally attaching an uploaded file
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        request body social.CreatePostRequest true "Post body"
// @Success      201 {object} dto.Response{data=social.PostResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	authorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req social.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	post, err := h.postService.Create(c.Request.Context(), authorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, post)
}

// GetByID godoc
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        id path string true "Post ID"
// @Success      200 {object} dto.Response{data=social.PostResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /posts/{id} [get]
func (h *PostHandler) GetByID(c *gin.Context) {
	viewerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid post ID")
		return
	}

	post, err := h.postService.GetByID(c.Request.Context(), viewerID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, post)
}

// Feed godoc
// @Summary      Browse the feed
// @Description  Page through posts visible to the caller, newest first
// @Tags         posts
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        author_id query string false "Filter by author"
// @Success      200 {object} dto.Response{data=[]social.PostResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /posts [get]
func (h *PostHandler) Feed(c *gin.Context) {
	viewerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req social.FeedRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.postService.Feed(c.Request.Context(), viewerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Edit godoc
// @Summary      Edit own post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id path string true "Post ID"
// @Param        request body social.EditPostRequest true "New body"
// @Success      200 {object} dto.Response{data=social.PostResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /posts/{id} [put]
func (h *PostHandler) Edit(c *gin.Context) {
	authorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid post ID")
		return
	}

	var req social.EditPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	post, err := h.postService.Edit(c.Request.Context(), authorID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, post)
}

// Delete godoc
// @Summary      Delete a post
// @Description  Authors delete their own posts; admins delete any post
// @Tags         posts
// @Produce      json
// @Param        id path string true "Post ID"
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid post ID")
		return
	}

	if err := h.postService.Delete(c.Request.Context(), actorID, isAdmin(c), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Comment godoc
// @Summary      Comment on a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id path string true "Post ID"
// @Param        request body social.CreateCommentRequest true "Comment body"
// @Success      201 {object} dto.Response{data=social.CommentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /posts/{id}/comments [post]
func (h *PostHandler) Comment(c *gin.Context) {
	authorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	postID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid post ID")
		return
	}

	var req social.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.postService.Comment(c.Request.Context(), authorID, postID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, comment)
}

// ListComments godoc
// @Summary      List comments on a post
// @Tags         posts
// @Produce      json
// @Param        id path string true "Post ID"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]social.CommentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /posts/{id}/comments [get]
func (h *PostHandler) ListComments(c *gin.Context) {
	viewerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	postID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid post ID")
		return
	}

	var req social.FeedRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.postService.ListComments(c.Request.Context(), viewerID, postID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// EditComment godoc
// @Summary      Edit a comment
// @Description  Replaces the comment body. Only the author may edit.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id path string true "Comment ID"
// @Param        request body social.EditCommentRequest true "New comment body"
// @Success      200 {object} dto.Response{data=social.CommentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /comments/{id} [put]
func (h *PostHandler) EditComment(c *gin.Context) {
	authorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	commentID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid comment ID")
		return
	}

	var req social.EditCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.postService.EditComment(c.Request.Context(), authorID, commentID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Description  Authors delete their own comments; admins delete any comment
// @Tags         posts
// @Produce      json
// @Param        id path string true "Comment ID"
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /comments/{id} [delete]
func (h *PostHandler) DeleteComment(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	commentID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid comment ID")
		return
	}

	if err := h.postService.DeleteComment(c.Request.Context(), actorID, isAdmin(c), commentID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// React godoc
// @Summary      React to a post
// @Description  Set or switch the caller's reaction; repeating the same kind removes it
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id path string true "Post ID"
// @Param        request body social.ReactRequest true "Reaction kind"
// @Success      200 {object} dto.Response{data=social.ReactionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /posts/{id}/reactions [post]
func (h *PostHandler) React(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	postID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid post ID")
		return
	}

	var req social.ReactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	reaction, err := h.postService.React(c.Request.Context(), userID, postID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, reaction)
}
