package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/internal/checksum"
	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/pkg/flashbooth"
)

type captionRequest struct {
	NumPhotos int `json:"numPhotos" binding:"required"`
}

type captionResponse struct {
	Caption string `json:"caption"`
}

type vibeRequest struct {
	Photo string `json:"photo" binding:"required"`
}

type vibeResponse struct {
	Vibe string `json:"vibe"`
}

type imageRequest struct {
	Prompt      string `json:"prompt" binding:"required"`
	AspectRatio string `json:"aspectRatio"`
}

// imageResponse carries a data URL, or null when the model returned no image.
type imageResponse struct {
	Image *string `json:"image"`
}

type saveSessionRequest struct {
	Photos  []flashbooth.Photo `json:"photos"`
	Caption string             `json:"caption"`
}

// bindJSON decodes the body into req, reporting failures as input errors.
func (s *Server) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		s.abortWithError(c, fmt.Errorf("%w: %v", flashbooth.ErrInvalidInput, err))
		return false
	}
	return true
}

func (s *Server) handleCaption(c *gin.Context) {
	var req captionRequest
	if !s.bindJSON(c, &req) {
		return
	}

	caption, err := s.enhancer.GenerateCaption(c.Request.Context(), req.NumPhotos)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, captionResponse{Caption: caption})
}

func (s *Server) handleVibe(c *gin.Context) {
	var req vibeRequest
	if !s.bindJSON(c, &req) {
		return
	}

	vibe, err := s.enhancer.AnalyzeVibe(c.Request.Context(), req.Photo)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, vibeResponse{Vibe: vibe})
}

func (s *Server) handleImage(c *gin.Context) {
	var req imageRequest
	if !s.bindJSON(c, &req) {
		return
	}

	ratio := flashbooth.AspectSquare
	if req.AspectRatio != "" {
		parsed, err := flashbooth.ParseAspectRatio(req.AspectRatio)
		if err != nil {
			s.abortWithError(c, err)
			return
		}
		ratio = parsed
	}

	img, err := s.enhancer.GenerateImage(c.Request.Context(), req.Prompt, ratio)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	var resp imageResponse
	if img != nil {
		dataURL := img.DataURL()
		resp.Image = &dataURL
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleSaveSession(c *gin.Context) {
	var req saveSessionRequest
	if !s.bindJSON(c, &req) {
		return
	}

	if err := assignPhotoIDs(req.Photos); err != nil {
		s.abortWithError(c, err)
		return
	}

	sess, err := s.store.Save(c.Request.Context(), req.Photos, req.Caption)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

// assignPhotoIDs gives photos without an ID a content-derived one.
func assignPhotoIDs(photos []flashbooth.Photo) error {
	for i := range photos {
		if photos[i].ID != "" {
			continue
		}
		id, err := checksum.PhotoID(photos[i].DataURL)
		if err != nil {
			return fmt.Errorf("photo %d: %w", i, err)
		}
		photos[i].ID = id
	}
	return nil
}

func (s *Server) handleLoadSession(c *gin.Context) {
	sess, err := s.store.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	if err := s.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
