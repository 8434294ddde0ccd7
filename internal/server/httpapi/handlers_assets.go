package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleUploadAsset(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No file uploaded"})
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		s.fail(c, err)
		return
	}
	defer src.Close()

	asset, err := s.assets.Upload(c.Request.Context(), currentUserID(c), fileHeader.Filename, src)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, asset)
}

func (s *Server) handleListAssets(c *gin.Context) {
	list, err := s.assets.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) handleDeleteAsset(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.assets.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Asset deleted"})
}
