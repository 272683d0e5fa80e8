package handlers

import (
	"github.com/eventpulse/api/internal/helpers"
	"github.com/eventpulse/api/internal/models"
	"github.com/eventpulse/api/internal/services"
	"github.com/gin-gonic/gin"
)

func ListEvents(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		opts, err := parseQueryOptions(c)
		if err != nil {
			c.JSON(400, models.ErrorResponse(err.Error()))
			return
		}

		page, err := es.ListEvents(c.Request.Context(), opts)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(200, models.PaginatedResponse(page))
	}
}

func SearchEvents(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		term := helpers.StringTrim(c.Query("q"))
		if term == "" {
			c.JSON(400, models.ErrorResponse("query parameter 'q' is required"))
			return
		}
		opts, err := parseQueryOptions(c)
		if err != nil {
			c.JSON(400, models.ErrorResponse(err.Error()))
			return
		}

		events, err := es.SearchEvents(c.Request.Context(), term, opts)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(200, models.SuccessResponse(events, ""))
	}
}

func GetEventByID(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := helpers.StringTrim(c.Param("id"))
		event, err := es.GetEventByID(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(200, models.SuccessResponse(event, ""))
	}
}

func CreateEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, claims, ok := currentUser(c)
		if !ok {
			return
		}
		if !claims.IsPromoter && !claims.IsAdmin() {
			c.JSON(403, models.ErrorResponse("only promoters can create events"))
			return
		}

		var event models.Event
		if err := c.ShouldBindJSON(&event); err != nil {
			c.JSON(400, gin.H{"error": "Invalid request body", "details": err.Error()})
			return
		}

		created, err := es.CreateEvent(c.Request.Context(), &event, userId)
		if err != nil {
			c.JSON(400, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(201, models.SuccessResponse(created, "Event created"))
	}
}

func UpdateEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _, ok := currentUser(c)
		if !ok {
			return
		}
		id := helpers.StringTrim(c.Param("id"))

		var fields map[string]interface{}
		if err := c.ShouldBindJSON(&fields); err != nil {
			c.JSON(400, gin.H{"error": "Invalid request body", "details": err.Error()})
			return
		}

		updated, err := es.UpdateEvent(c.Request.Context(), id, userId, fields)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(200, models.SuccessResponse(updated, "Event updated"))
	}
}

func DeleteEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _, ok := currentUser(c)
		if !ok {
			return
		}
		id := helpers.StringTrim(c.Param("id"))

		if err := es.DeleteEvent(c.Request.Context(), id, userId); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(200, models.SuccessResponse(nil, "Event deleted"))
	}
}

// BatchDeleteEvents always answers 200 with per-chunk outcomes; partial
// failures are data, not an error status.
func BatchDeleteEvents(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, claims, ok := currentUser(c)
		if !ok {
			return
		}
		if !claims.IsAdmin() {
			c.JSON(403, models.ErrorResponse("only admins can batch delete events"))
			return
		}

		var reqBody struct {
			IDs []string `json:"ids" binding:"required"`
		}
		if err := c.ShouldBindJSON(&reqBody); err != nil {
			c.JSON(400, gin.H{"error": "Invalid request body", "details": err.Error()})
			return
		}

		result, err := es.DeleteEventsBatch(c.Request.Context(), reqBody.IDs)
		if err != nil {
			c.JSON(400, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(200, models.SuccessResponse(result, ""))
	}
}
