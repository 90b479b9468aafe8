package handler

import (
	"net/http"

	"github.com/BloggingApp/blog-client/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) filesPreview(c *gin.Context) {
	c.Redirect(http.StatusFound, h.services.File.PreviewURL(c.Param("fileID")))
}

// filesView serves file bytes for drivers that store files themselves, at
// the same path their preview URLs point to.
func (h *Handler) filesView(c *gin.Context) {
	if h.files == nil {
		c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, errPreviewDisabled.Error()))
		return
	}

	file, content, err := h.files.GetFileView(c.Request.Context(), c.Param("bucketID"), c.Param("fileID"))
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	defer content.Close()

	c.DataFromReader(http.StatusOK, file.SizeOriginal, file.MimeType, content, map[string]string{
		"Cache-Control": "private, max-age=3600",
	})
}
