package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/slidesmith/slidesmith/internal/service"
)

func (s *Server) handleAIGenerateSlides(c *gin.Context) {
	var req service.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Topic == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing topic"})
		return
	}
	res, err := s.ai.GenerateSlides(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// handleAIGenerateLegacy serves the old stub generator; it never touches the
// model runner or the database.
func (s *Server) handleAIGenerateLegacy(c *gin.Context) {
	var req struct {
		Prompt     string `json:"prompt"`
		SlideCount int    `json:"slideCount"`
		Tone       string `json:"tone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing prompt"})
		return
	}
	drafts := s.ai.GenerateLegacy(req.Prompt, req.SlideCount, req.Tone)
	c.JSON(http.StatusOK, gin.H{"slides": drafts})
}

func (s *Server) handleAIHealth(c *gin.Context) {
	status := s.ai.Health(c.Request.Context())
	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}

func (s *Server) handleAIPullModel(c *gin.Context) {
	var req struct {
		ModelName string `json:"modelName"`
	}
	// Empty body is fine: the service falls back to the configured model.
	_ = c.ShouldBindJSON(&req)
	if err := s.ai.PullModel(c.Request.Context(), req.ModelName); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Model pulled"})
}
