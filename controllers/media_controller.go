// File: /controllers/media_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"motorestore-api/models"
	"motorestore-api/services"
	"motorestore-api/utils"
)

type MediaController struct {
	db     *gorm.DB
	ledger *services.LedgerService
	media  *services.MediaService
}

func NewMediaController(db *gorm.DB, ledger *services.LedgerService, media *services.MediaService) *MediaController {
	return &MediaController{db: db, ledger: ledger, media: media}
}

type RemoveMediaRequest struct {
	URL string `json:"url" binding:"required"`
}

type SetPrimaryImageRequest struct {
	Index *int `json:"index" binding:"required"`
}

// UploadMedia streams the multipart file to the media host and attaches the
// returned URL to the motor. The motor record is only touched after the
// host confirmed the upload, so a failed upload leaves it unchanged.
func (mc *MediaController) UploadMedia(c *gin.Context) {
	motorID := c.Param("id")

	var motor models.Motor
	if err := mc.db.First(&motor, "id = ?", motorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Motor not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load motor"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	result, err := mc.media.Upload(c.Request.Context(), motorID, fileHeader.Filename, contentType, file, fileHeader.Size)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Upload failed"})
		return
	}

	if err := mc.ledger.AttachMedia(motorID, result.URL, result.Kind); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach media"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":  result.URL,
		"kind": result.Kind,
	})
}

func (mc *MediaController) RemoveImage(c *gin.Context) {
	motorID := c.Param("id")

	var req RemoveMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := mc.ledger.RemoveImage(motorID, req.URL); err != nil {
		if services.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Motor not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image removed"})
}

func (mc *MediaController) RemoveVideo(c *gin.Context) {
	motorID := c.Param("id")

	var req RemoveMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := mc.ledger.RemoveVideo(motorID, req.URL); err != nil {
		if services.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Motor not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove video"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Video removed"})
}

func (mc *MediaController) SetPrimaryImage(c *gin.Context) {
	motorID := c.Param("id")

	var req SetPrimaryImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := mc.ledger.SetPrimaryImage(motorID, *req.Index); err != nil {
		if services.IsValidation(err) {
			utils.SendValidationError(c, err.Error())
			return
		}
		if services.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Motor not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set primary image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Primary image updated"})
}
