package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/slidesmith/slidesmith/internal/export"
	"github.com/slidesmith/slidesmith/internal/service"
)

type createSlideRequest struct {
	PresentationID int64           `json:"presentationId"`
	Title          string          `json:"title"`
	Content        json.RawMessage `json:"content"`
	OrderIndex     *int            `json:"orderIndex"`
}

type updateSlideRequest struct {
	Title      *string         `json:"title"`
	Content    json.RawMessage `json:"content"`
	OrderIndex *int            `json:"orderIndex"`
}

func (s *Server) handleListSlides(c *gin.Context) {
	list, err := s.slides.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) handleCreateSlide(c *gin.Context) {
	var req createSlideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	slide, err := s.slides.Create(c.Request.Context(), currentUserID(c), service.SlideCreate{
		PresentationID: req.PresentationID,
		Title:          req.Title,
		Content:        req.Content,
		OrderIndex:     req.OrderIndex,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, slide)
}

func (s *Server) handleGetSlide(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	slide, err := s.slides.Get(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, slide)
}

func (s *Server) handleUpdateSlide(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateSlideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	slide, err := s.slides.Update(c.Request.Context(), id, currentUserID(c), service.SlideUpdate{
		Title:      req.Title,
		Content:    req.Content,
		OrderIndex: req.OrderIndex,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, slide)
}

func (s *Server) handleDeleteSlide(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.slides.Delete(c.Request.Context(), id, currentUserID(c)); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Slide deleted"})
}

func (s *Server) handleExportSlide(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	format := c.DefaultQuery("format", export.FormatPDF)
	file, err := s.slides.Export(c.Request.Context(), id, currentUserID(c), format)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Body)
}
