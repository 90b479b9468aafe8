package handler

import (
	"net/http"

	"github.com/BloggingApp/blog-client/internal/baas"
	"github.com/BloggingApp/blog-client/internal/dto"
	"github.com/BloggingApp/blog-client/internal/model"
	"github.com/BloggingApp/blog-client/internal/service"
	"github.com/BloggingApp/blog-client/internal/store"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const identityKey = "identity"

type Handler struct {
	logger       *zap.Logger
	services     *service.Service
	state        *store.Store
	validator    *dto.Validator
	files        baas.FileReader
	clientOrigin string
	authLimiter  *keyedLimiter
}

// New builds the handler. files may be nil when the backend serves file
// previews itself.
func New(logger *zap.Logger, services *service.Service, state *store.Store, files baas.FileReader, clientOrigin string) *Handler {
	return &Handler{
		logger:       logger,
		services:     services,
		state:        state,
		validator:    dto.NewValidator(),
		files:        files,
		clientOrigin: clientOrigin,
		authLimiter:  newKeyedLimiter(authAttemptsPerSecond, authAttemptsBurst),
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{h.clientOrigin},
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", h.rateLimitMiddleware, h.authSignup)
			auth.POST("/login", h.rateLimitMiddleware, h.authLogin)
			auth.POST("/logout", h.authMiddleware, h.authLogout)
			auth.GET("/me", h.authMe)
		}

		v1.GET("/home", h.home)

		posts := v1.Group("/posts")
		{
			posts.GET("", h.postsGet)
			posts.POST("", h.authMiddleware, h.postsCreate)
			posts.GET("/search", h.postsSearch)

			post := posts.Group("/:slug")
			{
				post.GET("", h.notRequiredAuthMiddleware, h.postsGetBySlug)
				post.PATCH("", h.authMiddleware, h.postsEdit)
				post.DELETE("", h.authMiddleware, h.postsDelete)
				post.GET("/edit", h.authMiddleware, h.postsGetForEdit)
				post.GET("/comments", h.commentsGet)
				post.POST("/comments", h.authMiddleware, h.commentsCreate)
			}
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", h.categoriesGet)
			categories.POST("", h.authMiddleware, h.adminMiddleware, h.categoriesCreate)
			categories.POST("/seed", h.authMiddleware, h.adminMiddleware, h.categoriesSeed)
			categories.GET("/:slug", h.categoriesGetBySlug)
		}

		profile := v1.Group("/profile", h.authMiddleware)
		{
			profile.GET("", h.profileGet)
			profile.PATCH("", h.profileUpdate)
		}

		v1.GET("/files/:fileID/preview", h.filesPreview)
	}

	if h.files != nil {
		r.GET("/v1/storage/buckets/:bucketID/files/:fileID/preview", h.filesView)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, "route not found"))
	})

	return r
}

func (h *Handler) getIdentityFromRequest(c *gin.Context) *model.Identity {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil
	}

	identity, ok := value.(model.Identity)
	if !ok {
		return nil
	}

	return &identity
}

// bind decodes the JSON body into form and validates it.
func (h *Handler) bind(c *gin.Context, form any) bool {
	if err := c.ShouldBindJSON(form); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return false
	}
	if err := h.validator.Validate(form); err != nil {
		h.abortWithError(c, err)
		return false
	}
	return true
}
