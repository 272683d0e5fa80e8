package handlers

import (
	"strconv"

	"github.com/eventpulse/api/internal/models"
	"github.com/eventpulse/api/internal/services"
	"github.com/gin-gonic/gin"
)

func ListTrendingHashtags(hs *services.HashtagService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

		hashtags, err := hs.ListTrendingHashtags(c.Request.Context(), limit)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(200, models.SuccessResponse(hashtags, ""))
	}
}
