package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/BloggingApp/blog-client/internal/baas"
	"github.com/BloggingApp/blog-client/internal/dto"
	"github.com/BloggingApp/blog-client/internal/model"
	"github.com/gin-gonic/gin"
)

const maxImageSize = 10 << 20

func postLocation(slug string) string {
	return "/post/" + slug
}

func (h *Handler) home(c *gin.Context) {
	home, err := h.services.LoadHome(c.Request.Context())
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, home)
}

func (h *Handler) postsGet(c *gin.Context) {
	posts, err := h.services.Post.Find(c.Request.Context(),
		baas.Equal("status", string(model.PostStatusActive)),
		baas.OrderDesc("$createdAt"),
	)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *Handler) postsSearch(c *gin.Context) {
	var input dto.SearchPostsRequest
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}
	input.Query = strings.TrimSpace(input.Query)
	if err := h.validator.Validate(input); err != nil {
		h.abortWithError(c, err)
		return
	}

	posts, err := h.services.Post.Search(c.Request.Context(), input.Query)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *Handler) postsGetBySlug(c *gin.Context) {
	slug := c.Param("slug")

	post, err := h.services.Post.FindBySlug(c.Request.Context(), slug)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	identity := h.getIdentityFromRequest(c)
	c.JSON(http.StatusOK, dto.PostResponse{
		Post:       post,
		PreviewURL: h.previewURL(post.FeaturedImage),
		IsAuthor:   identity != nil && identity.ID == post.UserID,
	})
}

func (h *Handler) postsCreate(c *gin.Context) {
	identity := h.getIdentityFromRequest(c)

	var input dto.CreatePostForm
	image, ok := h.bindPostForm(c, &input)
	if !ok {
		return
	}

	post, err := h.services.Post.Publish(c.Request.Context(), identity, input, image)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewLocationResponse(postLocation(post.Slug), post))
}

func (h *Handler) postsEdit(c *gin.Context) {
	identity := h.getIdentityFromRequest(c)

	var input dto.EditPostForm
	image, ok := h.bindPostForm(c, &input)
	if !ok {
		return
	}

	post, err := h.services.Post.Edit(c.Request.Context(), identity, c.Param("slug"), input, image)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewLocationResponse(postLocation(post.Slug), post))
}

func (h *Handler) postsDelete(c *gin.Context) {
	identity := h.getIdentityFromRequest(c)

	if err := h.services.Post.Remove(c.Request.Context(), identity, c.Param("slug")); err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewLocationResponse("/", nil))
}

func (h *Handler) postsGetForEdit(c *gin.Context) {
	identity := h.getIdentityFromRequest(c)
	slug := c.Param("slug")

	view, err := h.services.Post.LoadForEdit(c.Request.Context(), slug)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	if view.Post.UserID != identity.ID {
		c.JSON(http.StatusForbidden, dto.NewBasicResponse(false, errNoAccess.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.PostEditResponse{
		PostEditView: *view,
		PreviewURL:   h.previewURL(view.Post.FeaturedImage),
	})
}

func (h *Handler) previewURL(fileID *string) string {
	if fileID == nil {
		return ""
	}
	return h.services.File.PreviewURL(*fileID)
}

// bindPostForm accepts either a JSON body or a multipart body whose "post"
// field holds the JSON form and whose optional "image" part is the
// featured image.
func (h *Handler) bindPostForm(c *gin.Context, form any) (*baas.InputFile, bool) {
	if c.ContentType() != gin.MIMEMultipartPOSTForm {
		return nil, h.bind(c, form)
	}

	if err := json.Unmarshal([]byte(c.PostForm("post")), form); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return nil, false
	}
	if err := h.validator.Validate(form); err != nil {
		h.abortWithError(c, err)
		return nil, false
	}

	fileHeader, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, true
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return nil, false
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errFileMustBeImage.Error()))
		return nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Sugar().Errorf("failed to open file: %s", err.Error())
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return nil, false
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxImageSize+1))
	if err != nil {
		h.logger.Sugar().Errorf("failed to read file: %s", err.Error())
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return nil, false
	}
	if len(content) > maxImageSize {
		c.JSON(http.StatusRequestEntityTooLarge, dto.NewBasicResponse(false, "image exceeds 10MB"))
		return nil, false
	}

	return &baas.InputFile{
		Name:     fileHeader.Filename,
		MimeType: mimeType,
		Reader:   bytes.NewReader(content),
	}, true
}
