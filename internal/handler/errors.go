package handler

import (
	"errors"
	"net/http"

	"github.com/BloggingApp/blog-client/internal/baas"
	"github.com/BloggingApp/blog-client/internal/dto"
	"github.com/BloggingApp/blog-client/internal/service"
	"github.com/gin-gonic/gin"
)

var (
	errNotAuthorized   = errors.New("user is not authorized")
	errNoAccess        = errors.New("no access")
	errTooManyRequests = errors.New("too many attempts, try again later")
	errFileMustBeImage = errors.New("file must be an image")
	errPreviewDisabled = errors.New("file previews are served by the backend")
)

// statusOf maps a service error to the response status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, dto.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound), baas.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, service.ErrDuplicateSlug):
		return http.StatusConflict
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrAuthentication), baas.IsUnauthorized(err):
		return http.StatusUnauthorized
	}

	var berr *baas.Error
	if errors.As(err, &berr) && berr.Code >= http.StatusBadRequest && berr.Code < http.StatusInternalServerError {
		return berr.Code
	}

	return http.StatusBadGateway
}

func (h *Handler) abortWithError(c *gin.Context, err error) {
	var verr *dto.ValidationError
	if errors.As(err, &verr) {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewValidationResponse(verr))
		return
	}

	status := statusOf(err)
	// The backend no longer accepts the session the state still holds.
	var berr *baas.Error
	if errors.As(err, &berr) && berr.Type == baas.TypeUserUnauthorized && h.state.State().Status {
		h.services.Auth.Forget()
	}
	if status >= http.StatusInternalServerError {
		h.logger.Sugar().Errorf("%s %s: %s", c.Request.Method, c.FullPath(), err.Error())
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(err))
}
