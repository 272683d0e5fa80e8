package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/eventpulse/api/internal/connect"
	"github.com/eventpulse/api/internal/helpers"
	"github.com/eventpulse/api/internal/models"
	"github.com/google/uuid"
)

type PhotoService struct {
	photoRepo   models.PhotoRepo
	hashtagRepo models.HashtagRepo
}

func NewPhotoService(photoRepo models.PhotoRepo, hashtagRepo models.HashtagRepo) *PhotoService {
	return &PhotoService{
		photoRepo:   photoRepo,
		hashtagRepo: hashtagRepo,
	}
}

// UploadPhoto pushes the image to the hosting service first, then inserts
// the photo document pointing at the hosted URL.
func (ps *PhotoService) UploadPhoto(ctx context.Context, photo *models.Photo, promoterId uuid.UUID, imageData string) (*models.Photo, error) {
	if promoterId == uuid.Nil {
		return nil, fmt.Errorf("invalid promoter ID")
	}
	if strings.TrimSpace(photo.EventID) == "" {
		return nil, fmt.Errorf("event ID cannot be empty")
	}
	if strings.TrimSpace(imageData) == "" {
		return nil, fmt.Errorf("image data cannot be empty")
	}
	photo.PromoterID = promoterId.String()

	type uploadResult struct {
		url      string
		publicID string
	}
	uploadChan := make(chan uploadResult, 1)
	errorChan := make(chan error, 1)

	go func() {
		url, publicID, uploadErr := helpers.UploadImage(ctx, connect.Cld, imageData, helpers.EventsFolder)
		if uploadErr != nil {
			errorChan <- uploadErr
			return
		}
		uploadChan <- uploadResult{url, publicID}
	}()

	select {
	case result := <-uploadChan:
		photo.URL = result.url
		photo.PublicID = result.publicID
	case uploadErr := <-errorChan:
		return nil, fmt.Errorf("failed to upload image: %v", uploadErr)
	case <-time.After(30 * time.Second):
		return nil, fmt.Errorf("image upload timeout")
	}

	created, err := ps.photoRepo.CreatePhoto(ctx, photo)
	if err != nil {
		helpers.DeleteImages(ctx, connect.Cld, []string{photo.PublicID})
		return nil, err
	}

	_ = ps.hashtagRepo.TouchHashtags(ctx, created.Hashtags)
	return created, nil
}

func (ps *PhotoService) ListPhotosByEvent(ctx context.Context, eventId string, limit int) ([]*models.Photo, error) {
	if strings.TrimSpace(eventId) == "" {
		return nil, fmt.Errorf("event ID cannot be empty")
	}
	if limit <= 0 {
		limit = models.DefaultPageLimit
	}
	return ps.photoRepo.ListPhotosByEvent(ctx, eventId, limit)
}

// DeletePhotosBatch removes photo documents only. Hosted binaries stay
// behind; call DeletePhotoAssets separately when blob cleanup is wanted.
func (ps *PhotoService) DeletePhotosBatch(ctx context.Context, ids []string) (*models.BatchResult, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("ids list cannot be empty")
	}
	return ps.photoRepo.DeletePhotosBatch(ctx, ids)
}

// DeletePhotoAssets removes hosted binaries by public id.
func (ps *PhotoService) DeletePhotoAssets(ctx context.Context, publicIds []string) error {
	if len(publicIds) == 0 {
		return fmt.Errorf("public ids list cannot be empty")
	}
	return helpers.DeleteImages(ctx, connect.Cld, publicIds)
}
