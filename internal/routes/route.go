package routes

import (
	"github.com/eventpulse/api/internal/container"
	"github.com/eventpulse/api/internal/handlers"
	"github.com/eventpulse/api/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	// Set Gin mode for production
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	// API version 1
	v1 := r.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "eventpulse-api",
			})
		})

		// public browse surfaces
		v1.GET("/events", handlers.ListEvents(container.EventService))
		v1.GET("/events/search", handlers.SearchEvents(container.EventService))
		v1.GET("/events/:id", handlers.GetEventByID(container.EventService))
		v1.GET("/events/:id/photos", handlers.ListPhotosByEvent(container.PhotoService))
		v1.POST("/events/:id/views", handlers.TrackEventView(container.PromoterService))
		v1.GET("/hashtags/trending", handlers.ListTrendingHashtags(container.HashtagService))
		v1.GET("/promoters", handlers.ListPromoters(container.PromoterService))
		v1.GET("/promoters/:id", handlers.GetPromoter(container.PromoterService))
		v1.GET("/promoters/:id/events", handlers.ListPromoterEvents(container.PromoterService))
	}

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(container.PromoterService, container.Logger))

	eventRoutes := protected.Group("/events")
	{
		eventRoutes.POST("/", handlers.CreateEvent(container.EventService))
		eventRoutes.PATCH("/:id", handlers.UpdateEvent(container.EventService))
		eventRoutes.DELETE("/:id", handlers.DeleteEvent(container.EventService))
		eventRoutes.POST("/batch-delete", handlers.BatchDeleteEvents(container.EventService))
		eventRoutes.POST("/:id/favorite", handlers.ToggleFavorite(container.FavoriteService))
		eventRoutes.GET("/:id/views/stats", handlers.GetEventViewStats(container.PromoterService))
	}

	userRoutes := protected.Group("/users")
	{
		userRoutes.GET("/me/favorites", handlers.GetUserFavorites(container.FavoriteService))
		userRoutes.PUT("/me/profile", handlers.UpsertProfile(container.PromoterService))
	}

	photoRoutes := protected.Group("/photos")
	{
		photoRoutes.POST("/", handlers.UploadPhoto(container.PhotoService))
		photoRoutes.POST("/batch-delete", handlers.BatchDeletePhotos(container.PhotoService))
	}

	return r
}
