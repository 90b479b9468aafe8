package handler

import (
	"net/http"

	"github.com/BloggingApp/blog-client/internal/dto"
	"github.com/BloggingApp/blog-client/internal/model"
	"github.com/gin-gonic/gin"
)

func (h *Handler) authMiddleware(c *gin.Context) {
	st := h.state.State()
	if !st.Status || st.Identity == nil {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	c.Set(identityKey, *st.Identity)

	c.Next()
}

// adminMiddleware must run after authMiddleware.
func (h *Handler) adminMiddleware(c *gin.Context) {
	identity := h.getIdentityFromRequest(c)
	if identity == nil || identity.Role != model.RoleAdmin {
		c.JSON(http.StatusForbidden, dto.NewBasicResponse(false, errNoAccess.Error()))
		c.Abort()
		return
	}

	c.Next()
}
