package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type presentationRequest struct {
	Title string `json:"title"`
}

func (s *Server) handleListPresentations(c *gin.Context) {
	list, err := s.presentations.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) handleCreatePresentation(c *gin.Context) {
	var req presentationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing title"})
		return
	}
	p, err := s.presentations.Create(c.Request.Context(), currentUserID(c), req.Title)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (s *Server) handleGetPresentation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := s.presentations.Get(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) handleRenamePresentation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req presentationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing title"})
		return
	}
	p, err := s.presentations.Rename(c.Request.Context(), id, currentUserID(c), req.Title)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) handleDeletePresentation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.presentations.Delete(c.Request.Context(), id, currentUserID(c)); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Presentation deleted"})
}
