package services

import (
	"context"
	"fmt"

	"github.com/eventpulse/api/internal/models"
	"github.com/google/uuid"
)

type PromoterService struct {
	userRepo  models.UserRepo
	eventRepo models.EventRepo
	viewsRepo models.EventViewsRepo
}

func NewPromoterService(userRepo models.UserRepo, eventRepo models.EventRepo, viewsRepo models.EventViewsRepo) *PromoterService {
	return &PromoterService{
		userRepo:  userRepo,
		eventRepo: eventRepo,
		viewsRepo: viewsRepo,
	}
}

func (ps *PromoterService) UpsertProfile(ctx context.Context, user *models.User) (*models.User, error) {
	if err := models.Validate.Struct(user); err != nil {
		return nil, fmt.Errorf("invalid profile data provided: %v", err)
	}
	return ps.userRepo.UpsertUser(ctx, user)
}

func (ps *PromoterService) GetPromoter(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid promoter ID")
	}
	return ps.userRepo.GetUserByID(ctx, id)
}

func (ps *PromoterService) ListPromoters(ctx context.Context, offset, limit int) ([]*models.User, error) {
	if offset < 0 || limit <= 0 {
		return nil, fmt.Errorf("invalid offset or limit")
	}
	return ps.userRepo.ListPromoters(ctx, offset, limit)
}

// ListPromoterEvents delegates to the query builder with the promoter
// equality constraint; all other filters combine as usual.
func (ps *PromoterService) ListPromoterEvents(ctx context.Context, promoterId uuid.UUID, opts models.EventQueryOptions) (*models.EventPage, error) {
	if promoterId == uuid.Nil {
		return nil, fmt.Errorf("invalid promoter ID")
	}
	opts.PromoterID = promoterId.String()
	return ps.eventRepo.ListEvents(ctx, opts)
}

func (ps *PromoterService) TrackEventView(ctx context.Context, view *models.EventView) error {
	if err := models.Validate.Struct(view); err != nil {
		return fmt.Errorf("invalid view data provided: %v", err)
	}
	return ps.viewsRepo.TrackEventView(ctx, view)
}

func (ps *PromoterService) GetEventViewStats(ctx context.Context, eventId string) (*models.EventViewStats, error) {
	if eventId == "" {
		return nil, fmt.Errorf("event ID cannot be empty")
	}
	return ps.viewsRepo.GetEventViewStats(ctx, eventId)
}
