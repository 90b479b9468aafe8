package handler

import (
	"net/http"

	"github.com/BloggingApp/blog-client/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) profileGet(c *gin.Context) {
	identity := h.getIdentityFromRequest(c)

	posts, err := h.services.Post.FindByUser(c.Request.Context(), identity.ID)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProfileResponse{Identity: identity, Posts: posts})
}

func (h *Handler) profileUpdate(c *gin.Context) {
	var input dto.ProfileForm
	if !h.bind(c, &input) {
		return
	}

	identity, err := h.services.Auth.UpdateName(c.Request.Context(), input)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewLocationResponse("/profile", identity))
}
