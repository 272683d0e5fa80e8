package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/eventpulse/api/internal/models"
	"github.com/google/uuid"
)

type FavoriteService struct {
	userRepo models.UserRepo
}

func NewFavoriteService(userRepo models.UserRepo) *FavoriteService {
	return &FavoriteService{
		userRepo: userRepo,
	}
}

func (fs *FavoriteService) ToggleFavorite(ctx context.Context, userId uuid.UUID, eventId string) (*models.Event, error) {
	if userId == uuid.Nil {
		return nil, fmt.Errorf("invalid user ID")
	}
	if strings.TrimSpace(eventId) == "" {
		return nil, fmt.Errorf("event ID cannot be empty")
	}
	return fs.userRepo.ToggleFavorite(ctx, userId, eventId)
}

func (fs *FavoriteService) GetFavoriteEvents(ctx context.Context, userId uuid.UUID) ([]*models.Event, error) {
	if userId == uuid.Nil {
		return nil, fmt.Errorf("invalid user ID")
	}
	return fs.userRepo.GetFavoriteEvents(ctx, userId)
}

func (fs *FavoriteService) WatchUserFavorites(ctx context.Context, userId uuid.UUID, onSnapshot func([]*models.Event), onError func(error)) (func(), error) {
	if userId == uuid.Nil {
		return nil, fmt.Errorf("invalid user ID")
	}
	if onSnapshot == nil || onError == nil {
		return nil, fmt.Errorf("snapshot and error callbacks are required")
	}
	return fs.userRepo.WatchUserFavorites(ctx, userId, onSnapshot, onError)
}
