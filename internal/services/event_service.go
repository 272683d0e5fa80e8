package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/eventpulse/api/internal/models"
	"github.com/google/uuid"
)

type EventService struct {
	eventRepo   models.EventRepo
	hashtagRepo models.HashtagRepo
	photoRepo   models.PhotoRepo
}

func NewEventService(eventRepo models.EventRepo, hashtagRepo models.HashtagRepo, photoRepo models.PhotoRepo) *EventService {
	return &EventService{
		eventRepo:   eventRepo,
		hashtagRepo: hashtagRepo,
		photoRepo:   photoRepo,
	}
}

func (es *EventService) CreateEvent(ctx context.Context, event *models.Event, promoterId uuid.UUID) (*models.Event, error) {
	if promoterId == uuid.Nil {
		return nil, fmt.Errorf("invalid promoter ID")
	}
	event.PromoterID = promoterId.String()

	if err := models.Validate.Struct(event); err != nil {
		return nil, fmt.Errorf("invalid event data provided: %v", err)
	}
	if !event.Category.IsValid() {
		return nil, fmt.Errorf("unsupported category: %s", event.Category)
	}
	if event.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative")
	}

	created, err := es.eventRepo.CreateEvent(ctx, event)
	if err != nil {
		return nil, err
	}

	// Hashtag usage bookkeeping is best-effort; a failed touch must not
	// undo the created event.
	if err := es.hashtagRepo.TouchHashtags(ctx, created.Hashtags); err != nil {
		return created, nil
	}
	return created, nil
}

func (es *EventService) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("event ID cannot be empty")
	}
	return es.eventRepo.GetEventByID(ctx, id)
}

func (es *EventService) ListEvents(ctx context.Context, opts models.EventQueryOptions) (*models.EventPage, error) {
	if opts.Limit < 0 {
		return nil, fmt.Errorf("invalid limit")
	}
	if opts.MinPrice != nil && *opts.MinPrice < 0 {
		return nil, fmt.Errorf("min price cannot be negative")
	}
	if opts.MinPrice != nil && opts.MaxPrice != nil && *opts.MinPrice > *opts.MaxPrice {
		return nil, fmt.Errorf("min price cannot exceed max price")
	}
	if opts.StartDate != nil && opts.EndDate != nil && opts.StartDate.After(*opts.EndDate) {
		return nil, fmt.Errorf("start date cannot be after end date")
	}
	if opts.Category != "" && !opts.Category.IsValid() {
		return nil, fmt.Errorf("unsupported category: %s", opts.Category)
	}
	return es.eventRepo.ListEvents(ctx, opts)
}

func (es *EventService) SearchEvents(ctx context.Context, term string, opts models.EventQueryOptions) ([]*models.Event, error) {
	if strings.TrimSpace(term) == "" {
		return nil, fmt.Errorf("search term cannot be empty")
	}
	return es.eventRepo.SearchEvents(ctx, term, opts)
}

func (es *EventService) UpdateEvent(ctx context.Context, id string, promoterId uuid.UUID, fields map[string]interface{}) (*models.Event, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("event ID cannot be empty")
	}
	if promoterId == uuid.Nil {
		return nil, fmt.Errorf("invalid promoter ID")
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	// Owner-only fields; membership changes go through ToggleFavorite.
	for _, blocked := range []string{"_id", "promoter_id", "favorited_by", "favorites_count", "created_at"} {
		delete(fields, blocked)
	}
	if tags, ok := fields["hashtags"].([]interface{}); ok {
		normalized := make([]string, 0, len(tags))
		for _, t := range tags {
			if s, ok := t.(string); ok {
				normalized = append(normalized, models.NormalizeHashtag(s))
			}
		}
		fields["hashtags"] = normalized
		_ = es.hashtagRepo.TouchHashtags(ctx, normalized)
	}

	fields["updated_at"] = time.Now()
	return es.eventRepo.UpdateEvent(ctx, id, promoterId.String(), fields)
}

// DeleteEvent removes the event and its photo documents. Photo binaries are
// not touched here; the photo service owns blob cleanup.
func (es *EventService) DeleteEvent(ctx context.Context, id string, promoterId uuid.UUID) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("event ID cannot be empty")
	}
	if promoterId == uuid.Nil {
		return fmt.Errorf("invalid promoter ID")
	}

	if err := es.eventRepo.DeleteEvent(ctx, id, promoterId.String()); err != nil {
		return err
	}

	photos, err := es.photoRepo.ListPhotosByEvent(ctx, id, models.MaxBatchSize)
	if err != nil || len(photos) == 0 {
		return nil
	}
	photoIds := make([]string, len(photos))
	for i, p := range photos {
		photoIds[i] = p.ID.Hex()
	}
	_, _ = es.photoRepo.DeletePhotosBatch(ctx, photoIds)
	return nil
}

func (es *EventService) DeleteEventsBatch(ctx context.Context, ids []string) (*models.BatchResult, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("ids list cannot be empty")
	}
	return es.eventRepo.DeleteEventsBatch(ctx, ids)
}

func (es *EventService) WatchEvents(ctx context.Context, opts models.EventQueryOptions, onSnapshot func([]*models.Event), onError func(error)) (func(), error) {
	if onSnapshot == nil || onError == nil {
		return nil, fmt.Errorf("snapshot and error callbacks are required")
	}
	return es.eventRepo.WatchEvents(ctx, opts, onSnapshot, onError)
}
