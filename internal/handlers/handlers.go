package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/eventpulse/api/internal/helpers"
	"github.com/eventpulse/api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentUser pulls the enhanced claims set by the auth middleware and
// parses the user id. The bool result is false when the response has
// already been written.
func currentUser(c *gin.Context) (uuid.UUID, *helpers.EnhancedClaims, bool) {
	claims, exists := c.Get("user")
	if !exists {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return uuid.Nil, nil, false
	}
	userClaims, ok := claims.(*helpers.EnhancedClaims)
	if !ok {
		c.JSON(500, gin.H{"error": "Invalid user claims"})
		return uuid.Nil, nil, false
	}
	parsedUserId, err := uuid.Parse(userClaims.UserID)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return uuid.Nil, nil, false
	}
	return parsedUserId, userClaims, true
}

// respondErr maps the error taxonomy onto status codes: not-found to 404,
// missing-index to 500 with the index guidance, everything else to 500 with
// the original message.
func respondErr(c *gin.Context, err error) {
	var idxErr *models.MissingIndexError
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(404, models.ErrorResponse(err.Error()))
	case errors.As(err, &idxErr):
		c.JSON(500, gin.H{
			"error":        "query requires a composite index",
			"collection":   idxErr.Collection,
			"index_fields": idxErr.Fields,
		})
	default:
		c.JSON(500, models.ErrorResponse(err.Error()))
	}
}

// parseQueryOptions reads the browse filters from the query string. Dates
// accept RFC3339 or plain YYYY-MM-DD; date bounds are inclusive.
func parseQueryOptions(c *gin.Context) (models.EventQueryOptions, error) {
	opts := models.EventQueryOptions{
		Category:   models.EventCategory(c.Query("category")),
		Hashtag:    c.Query("hashtag"),
		PromoterID: c.Query("promoter_id"),
		SortBy:     models.SortBy(c.Query("sort_by")),
		SortOrder:  models.SortOrder(c.Query("sort_order")),
		Cursor:     c.Query("cursor"),
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return opts, errors.New("limit must be a positive integer")
		}
		opts.Limit = limit
	}
	if raw := c.Query("start_date"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return opts, err
		}
		opts.StartDate = &t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return opts, err
		}
		opts.EndDate = &t
	}
	if raw := c.Query("min_price"); raw != "" {
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return opts, errors.New("min_price must be a number")
		}
		opts.MinPrice = &p
	}
	if raw := c.Query("max_price"); raw != "" {
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return opts, errors.New("max_price must be a number")
		}
		opts.MaxPrice = &p
	}
	return opts, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, errors.New("dates must be RFC3339 or YYYY-MM-DD")
	}
	return t, nil
}
