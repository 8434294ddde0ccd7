// Package httpapi exposes the application services over a JSON REST API.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/slidesmith/slidesmith/internal/service"
)

// Deps collects everything the HTTP server needs.
type Deps struct {
	Log       *zap.Logger
	SignKey   []byte
	UploadDir string

	Auth          service.AuthService
	Users         service.UserService
	Presentations service.PresentationService
	Slides        service.SlideService
	Elements      service.ElementService
	Templates     service.TemplateService
	Assets        service.AssetService
	AI            service.AIService
}

// Server wires services to routes.
type Server struct {
	log       *zap.Logger
	signKey   []byte
	uploadDir string

	auth          service.AuthService
	users         service.UserService
	presentations service.PresentationService
	slides        service.SlideService
	elements      service.ElementService
	templates     service.TemplateService
	assets        service.AssetService
	ai            service.AIService
}

// New constructs the HTTP server.
func New(d Deps) *Server {
	return &Server{
		log:           d.Log,
		signKey:       d.SignKey,
		uploadDir:     d.UploadDir,
		auth:          d.Auth,
		users:         d.Users,
		presentations: d.Presentations,
		slides:        d.Slides,
		elements:      d.Elements,
		templates:     d.Templates,
		assets:        d.Assets,
		ai:            d.AI,
	}
}

// Router builds the Gin engine with all routes and middleware.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(s.recovery(), s.requestLogger())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	r.Static("/uploads", s.uploadDir)

	auth := r.Group("/auth")
	{
		auth.POST("/register", s.handleRegister)
		auth.POST("/login", s.handleLogin)
		auth.POST("/reset-password", s.handleResetPassword)
		me := auth.Group("", s.authRequired())
		me.GET("/me", s.handleMe)
		me.PUT("/me", s.handleUpdateMe)
	}

	presentations := r.Group("/presentations", s.authRequired())
	{
		presentations.GET("", s.handleListPresentations)
		presentations.POST("", s.handleCreatePresentation)
		presentations.GET("/:id", s.handleGetPresentation)
		presentations.PUT("/:id", s.handleRenamePresentation)
		presentations.DELETE("/:id", s.handleDeletePresentation)
	}

	slides := r.Group("/slides", s.authRequired())
	{
		slides.GET("", s.handleListSlides)
		slides.POST("", s.handleCreateSlide)
		slides.GET("/:id", s.handleGetSlide)
		slides.PUT("/:id", s.handleUpdateSlide)
		slides.DELETE("/:id", s.handleDeleteSlide)
		slides.GET("/:id/export", s.handleExportSlide)
		slides.GET("/:id/elements", s.handleListElements)
		slides.POST("/:id/elements", s.handleCreateElement)
		slides.PUT("/:id/elements", s.handleSaveElements)
		slides.PUT("/:id/elements/:elementID", s.handleUpdateElement)
		slides.DELETE("/:id/elements/:elementID", s.handleDeleteElement)
	}

	templates := r.Group("/templates")
	{
		templates.GET("", s.handleListTemplates)
		templates.GET("/:id", s.handleGetTemplate)
		templates.POST("/:id/use", s.authRequired(), s.handleUseTemplate)
	}

	assets := r.Group("/assets", s.authRequired())
	{
		assets.POST("/upload", s.handleUploadAsset)
		assets.GET("", s.handleListAssets)
		assets.DELETE("/:id", s.handleDeleteAsset)
	}

	ai := r.Group("/ai")
	{
		ai.GET("/health", s.handleAIHealth)
		authed := ai.Group("", s.authRequired())
		authed.POST("/generate", s.handleAIGenerateLegacy)
		authed.POST("/generate-slides", s.handleAIGenerateSlides)
		authed.POST("/pull-model", s.handleAIPullModel)
	}

	users := r.Group("/users", s.authRequired(), s.adminOnly())
	{
		users.GET("", s.handleListUsers)
		users.GET("/:id", s.handleGetUser)
		users.PUT("/:id", s.handleSetUserRole)
		users.DELETE("/:id", s.handleDeleteUser)
	}

	return r
}
