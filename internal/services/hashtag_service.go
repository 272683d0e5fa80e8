package services

import (
	"context"
	"fmt"

	"github.com/eventpulse/api/internal/models"
)

const defaultTrendingLimit = 10

type HashtagService struct {
	hashtagRepo models.HashtagRepo
}

func NewHashtagService(hashtagRepo models.HashtagRepo) *HashtagService {
	return &HashtagService{
		hashtagRepo: hashtagRepo,
	}
}

func (hs *HashtagService) ListTrendingHashtags(ctx context.Context, limit int) ([]*models.Hashtag, error) {
	if limit <= 0 {
		limit = defaultTrendingLimit
	}
	return hs.hashtagRepo.ListTrendingHashtags(ctx, limit)
}

func (hs *HashtagService) TouchHashtags(ctx context.Context, tags []string) error {
	if len(tags) == 0 {
		return fmt.Errorf("tags list cannot be empty")
	}
	return hs.hashtagRepo.TouchHashtags(ctx, tags)
}
