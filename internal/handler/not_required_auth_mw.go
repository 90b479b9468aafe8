package handler

import (
	"github.com/gin-gonic/gin"
)

func (h *Handler) notRequiredAuthMiddleware(c *gin.Context) {
	st := h.state.State()
	if !st.Status || st.Identity == nil {
		c.Next()
		return
	}

	c.Set(identityKey, *st.Identity)

	c.Next()
}
