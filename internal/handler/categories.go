package handler

import (
	"net/http"

	"github.com/BloggingApp/blog-client/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) categoriesGet(c *gin.Context) {
	categories, err := h.services.Category.FindAll(c.Request.Context())
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *Handler) categoriesGetBySlug(c *gin.Context) {
	view, err := h.services.LoadCategory(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *Handler) categoriesCreate(c *gin.Context) {
	var input dto.CreateCategoryForm
	if !h.bind(c, &input) {
		return
	}

	category, err := h.services.Category.Create(c.Request.Context(), input)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewLocationResponse("/category/"+category.Slug, category))
}

func (h *Handler) categoriesSeed(c *gin.Context) {
	created, err := h.services.Category.SeedDefaults(c.Request.Context())
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	if len(created) == 0 {
		c.JSON(http.StatusOK, dto.NewBasicResponse(true, "all predefined categories already exist"))
		return
	}

	c.JSON(http.StatusCreated, dto.NewLocationResponse("/categories", created))
}
