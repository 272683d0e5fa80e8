package handlers

import (
	"strconv"

	"github.com/eventpulse/api/internal/helpers"
	"github.com/eventpulse/api/internal/models"
	"github.com/eventpulse/api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func ListPromoters(ps *services.PromoterService) gin.HandlerFunc {
	return func(c *gin.Context) {
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

		promoters, err := ps.ListPromoters(c.Request.Context(), offset, limit)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(200, models.SuccessResponse(promoters, ""))
	}
}

func GetPromoter(ps *services.PromoterService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(400, models.ErrorResponse("invalid promoter ID"))
			return
		}

		promoter, err := ps.GetPromoter(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(200, models.SuccessResponse(promoter, ""))
	}
}

func ListPromoterEvents(ps *services.PromoterService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(400, models.ErrorResponse("invalid promoter ID"))
			return
		}
		opts, err := parseQueryOptions(c)
		if err != nil {
			c.JSON(400, models.ErrorResponse(err.Error()))
			return
		}

		page, err := ps.ListPromoterEvents(c.Request.Context(), id, opts)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(200, models.PaginatedResponse(page))
	}
}

func UpsertProfile(ps *services.PromoterService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, claims, ok := currentUser(c)
		if !ok {
			return
		}

		var user models.User
		if err := c.ShouldBindJSON(&user); err != nil {
			c.JSON(400, gin.H{"error": "Invalid request body", "details": err.Error()})
			return
		}
		user.ID = userId.String()
		if user.Username == "" {
			user.Username = claims.Username
		}

		updated, err := ps.UpsertProfile(c.Request.Context(), &user)
		if err != nil {
			c.JSON(400, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(200, models.SuccessResponse(updated, "Profile saved"))
	}
}

// TrackEventView records a view for an event page. Anonymous sessions are
// identified by the session id header.
func TrackEventView(ps *services.PromoterService) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId := helpers.StringTrim(c.Param("id"))

		var reqBody struct {
			PromoterID string `json:"promoter_id" binding:"required"`
			SessionID  string `json:"session_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&reqBody); err != nil {
			c.JSON(400, gin.H{"error": "Invalid request body", "details": err.Error()})
			return
		}

		view := &models.EventView{
			EventID:    eventId,
			PromoterID: reqBody.PromoterID,
			SessionID:  reqBody.SessionID,
		}
		if claims, exists := c.Get("user"); exists {
			if userClaims, ok := claims.(*helpers.EnhancedClaims); ok {
				view.UserID = &userClaims.UserID
			}
		}

		if err := ps.TrackEventView(c.Request.Context(), view); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(200, models.SuccessResponse(nil, "View tracked"))
	}
}

func GetEventViewStats(ps *services.PromoterService) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId := helpers.StringTrim(c.Param("id"))

		stats, err := ps.GetEventViewStats(c.Request.Context(), eventId)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(200, models.SuccessResponse(stats, ""))
	}
}
