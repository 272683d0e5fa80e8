package handlers

import (
	"github.com/eventpulse/api/internal/helpers"
	"github.com/eventpulse/api/internal/models"
	"github.com/eventpulse/api/internal/services"
	"github.com/gin-gonic/gin"
)

func ToggleFavorite(f *services.FavoriteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _, ok := currentUser(c)
		if !ok {
			return
		}
		eventId := helpers.StringTrim(c.Param("id"))

		event, err := f.ToggleFavorite(c.Request.Context(), userId, eventId)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(200, models.SuccessResponse(gin.H{
			"event":     event,
			"favorited": event.IsFavoritedBy(userId.String()),
		}, ""))
	}
}

func GetUserFavorites(f *services.FavoriteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _, ok := currentUser(c)
		if !ok {
			return
		}

		events, err := f.GetFavoriteEvents(c.Request.Context(), userId)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(200, models.SuccessResponse(events, ""))
	}
}
