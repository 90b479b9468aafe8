package handler

import (
	"net/http"

	"github.com/BloggingApp/blog-client/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) authSignup(c *gin.Context) {
	var input dto.SignupForm
	if !h.bind(c, &input) {
		return
	}

	if _, err := h.services.Auth.CreateAccount(c.Request.Context(), input); err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewLocationResponse("/", h.state.State()))
}

func (h *Handler) authLogin(c *gin.Context) {
	var input dto.LoginForm
	if !h.bind(c, &input) {
		return
	}

	if _, err := h.services.Auth.Login(c.Request.Context(), input); err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewLocationResponse("/", h.state.State()))
}

func (h *Handler) authLogout(c *gin.Context) {
	if err := h.services.Auth.Logout(c.Request.Context()); err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewLocationResponse("/login", nil))
}

func (h *Handler) authMe(c *gin.Context) {
	c.JSON(http.StatusOK, h.state.State())
}
