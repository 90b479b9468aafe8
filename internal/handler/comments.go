package handler

import (
	"net/http"

	"github.com/BloggingApp/blog-client/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) commentsGet(c *gin.Context) {
	post, err := h.services.Post.FindBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	comments, err := h.services.Comment.FindByPost(c.Request.Context(), post.ID)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

func (h *Handler) commentsCreate(c *gin.Context) {
	identity := h.getIdentityFromRequest(c)

	var input dto.CommentForm
	if !h.bind(c, &input) {
		return
	}

	post, err := h.services.Post.FindBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	comment, err := h.services.Comment.Create(c.Request.Context(), identity, post.ID, input)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewLocationResponse(postLocation(post.Slug), comment))
}
