package handlers

import (
	"github.com/eventpulse/api/internal/helpers"
	"github.com/eventpulse/api/internal/models"
	"github.com/eventpulse/api/internal/services"
	"github.com/gin-gonic/gin"
)

func UploadPhoto(ps *services.PhotoService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _, ok := currentUser(c)
		if !ok {
			return
		}

		var reqBody struct {
			EventID   string   `json:"event_id" binding:"required"`
			ImageData string   `json:"image_data" binding:"required"`
			Caption   string   `json:"caption"`
			Hashtags  []string `json:"hashtags"`
		}
		if err := c.ShouldBindJSON(&reqBody); err != nil {
			c.JSON(400, gin.H{"error": "Invalid request body", "details": err.Error()})
			return
		}

		photo := &models.Photo{
			EventID:  reqBody.EventID,
			Caption:  reqBody.Caption,
			Hashtags: reqBody.Hashtags,
		}
		created, err := ps.UploadPhoto(c.Request.Context(), photo, userId, reqBody.ImageData)
		if err != nil {
			c.JSON(400, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(201, models.SuccessResponse(created, "Photo uploaded"))
	}
}

func ListPhotosByEvent(ps *services.PhotoService) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId := helpers.StringTrim(c.Param("id"))

		photos, err := ps.ListPhotosByEvent(c.Request.Context(), eventId, models.DefaultPageLimit)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(200, models.SuccessResponse(photos, ""))
	}
}

// BatchDeletePhotos removes photo documents only; the hosted binaries are
// untouched unless delete_assets is set.
func BatchDeletePhotos(ps *services.PhotoService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, claims, ok := currentUser(c)
		if !ok {
			return
		}
		if !claims.IsPromoter && !claims.IsAdmin() {
			c.JSON(403, models.ErrorResponse("only promoters can delete photos"))
			return
		}

		var reqBody struct {
			IDs          []string `json:"ids" binding:"required"`
			PublicIDs    []string `json:"public_ids"`
			DeleteAssets bool     `json:"delete_assets"`
		}
		if err := c.ShouldBindJSON(&reqBody); err != nil {
			c.JSON(400, gin.H{"error": "Invalid request body", "details": err.Error()})
			return
		}

		result, err := ps.DeletePhotosBatch(c.Request.Context(), reqBody.IDs)
		if err != nil {
			c.JSON(400, models.ErrorResponse(err.Error()))
			return
		}

		if reqBody.DeleteAssets && len(reqBody.PublicIDs) > 0 {
			if err := ps.DeletePhotoAssets(c.Request.Context(), reqBody.PublicIDs); err != nil {
				c.JSON(200, models.SuccessResponse(gin.H{
					"batch":       result,
					"asset_error": err.Error(),
				}, ""))
				return
			}
		}
		c.JSON(200, models.SuccessResponse(result, ""))
	}
}
