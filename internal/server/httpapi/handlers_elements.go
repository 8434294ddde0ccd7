package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/slidesmith/slidesmith/internal/model"
	"github.com/slidesmith/slidesmith/internal/service"
)

type elementRequest struct {
	Type     *string         `json:"type"`
	X        *float64        `json:"x"`
	Y        *float64        `json:"y"`
	Width    *float64        `json:"width"`
	Height   *float64        `json:"height"`
	ZIndex   *int            `json:"zIndex"`
	Rotation *float64        `json:"rotation"`
	Data     json.RawMessage `json:"data"`
}

func (r elementRequest) input() service.ElementInput {
	return service.ElementInput{
		Type:     r.Type,
		X:        r.X,
		Y:        r.Y,
		Width:    r.Width,
		Height:   r.Height,
		ZIndex:   r.ZIndex,
		Rotation: r.Rotation,
		Data:     r.Data,
	}
}

type saveElementsRequest struct {
	Elements []saveElementEntry `json:"elements"`
}

type saveElementEntry struct {
	ID       *int64          `json:"id"`
	Type     string          `json:"type"`
	X        float64         `json:"x"`
	Y        float64         `json:"y"`
	Width    float64         `json:"width"`
	Height   float64         `json:"height"`
	ZIndex   int             `json:"zIndex"`
	Rotation float64         `json:"rotation"`
	Data     json.RawMessage `json:"data"`
}

func (s *Server) handleListElements(c *gin.Context) {
	slideID, ok := pathID(c, "id")
	if !ok {
		return
	}
	list, err := s.elements.List(c.Request.Context(), currentUserID(c), slideID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) handleCreateElement(c *gin.Context) {
	slideID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req elementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	el, err := s.elements.Create(c.Request.Context(), currentUserID(c), slideID, req.input())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, el)
}

func (s *Server) handleUpdateElement(c *gin.Context) {
	slideID, ok := pathID(c, "id")
	if !ok {
		return
	}
	elementID, ok := pathID(c, "elementID")
	if !ok {
		return
	}
	var req elementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	el, err := s.elements.Update(c.Request.Context(), currentUserID(c), slideID, elementID, req.input())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, el)
}

func (s *Server) handleDeleteElement(c *gin.Context) {
	slideID, ok := pathID(c, "id")
	if !ok {
		return
	}
	elementID, ok := pathID(c, "elementID")
	if !ok {
		return
	}
	if err := s.elements.Delete(c.Request.Context(), currentUserID(c), slideID, elementID); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Element deleted"})
}

// handleSaveElements replaces the slide's element set with the submitted
// list in one transaction.
func (s *Server) handleSaveElements(c *gin.Context) {
	slideID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req saveElementsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Elements must be an array"})
		return
	}
	desired := make([]model.ElementSave, 0, len(req.Elements))
	for _, e := range req.Elements {
		// Omitted data stays empty here; the service defaults it to "{}".
		var data string
		if len(e.Data) > 0 {
			var err error
			data, err = service.NormalizeElementData(e.Data)
			if err != nil {
				s.fail(c, err)
				return
			}
		}
		desired = append(desired, model.ElementSave{
			ID:       e.ID,
			Type:     e.Type,
			X:        e.X,
			Y:        e.Y,
			Width:    e.Width,
			Height:   e.Height,
			ZIndex:   e.ZIndex,
			Rotation: e.Rotation,
			Data:     data,
		})
	}
	list, err := s.elements.Save(c.Request.Context(), currentUserID(c), slideID, desired)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"elements": list})
}
