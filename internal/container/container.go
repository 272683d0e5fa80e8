package container

import (
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/eventpulse/api/internal/models"
	"github.com/eventpulse/api/internal/services"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Logger     *slog.Logger
	Cloudinary *cloudinary.Cloudinary
	// Database client
	MongoDBClient   *mongo.Client
	EventService    *services.EventService
	FavoriteService *services.FavoriteService
	HashtagService  *services.HashtagService
	PromoterService *services.PromoterService
	PhotoService    *services.PhotoService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	logger *slog.Logger,
	cloudinary *cloudinary.Cloudinary,
	mongoDBClient *mongo.Client,
) *Container {
	// Initialize repository
	repo := models.MongodbNewRepo(mongoDBClient)
	eventService := services.NewEventService(repo, repo, repo)
	favoriteService := services.NewFavoriteService(repo)
	hashtagService := services.NewHashtagService(repo)
	promoterService := services.NewPromoterService(repo, repo, repo)
	photoService := services.NewPhotoService(repo, repo)

	return &Container{
		Logger:          logger,
		Cloudinary:      cloudinary,
		MongoDBClient:   mongoDBClient,
		EventService:    eventService,
		FavoriteService: favoriteService,
		HashtagService:  hashtagService,
		PromoterService: promoterService,
		PhotoService:    photoService,
	}
}
