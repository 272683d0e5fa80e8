package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/eventpulse/api/internal/models"
	"github.com/google/uuid"
)

// fakeEventRepo records calls and plays back canned results, standing in
// for the document store.
type fakeEventRepo struct {
	lastOpts    models.EventQueryOptions
	listPage    *models.EventPage
	created     *models.Event
	deletedIDs  []string
	batchResult *models.BatchResult
}

func (f *fakeEventRepo) CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	f.created = event
	return event, nil
}

func (f *fakeEventRepo) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	return &models.Event{Title: "stub"}, nil
}

func (f *fakeEventRepo) ListEvents(ctx context.Context, opts models.EventQueryOptions) (*models.EventPage, error) {
	f.lastOpts = opts
	if f.listPage != nil {
		return f.listPage, nil
	}
	return &models.EventPage{Events: []*models.Event{}}, nil
}

func (f *fakeEventRepo) SearchEvents(ctx context.Context, term string, opts models.EventQueryOptions) ([]*models.Event, error) {
	return nil, nil
}

func (f *fakeEventRepo) UpdateEvent(ctx context.Context, id string, promoterID string, fields map[string]interface{}) (*models.Event, error) {
	return &models.Event{Title: "updated"}, nil
}

func (f *fakeEventRepo) DeleteEvent(ctx context.Context, id string, promoterID string) error {
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

func (f *fakeEventRepo) DeleteEventsBatch(ctx context.Context, ids []string) (*models.BatchResult, error) {
	f.batchResult = &models.BatchResult{SuccessCount: len(ids), TotalAttempted: len(ids), Success: true}
	return f.batchResult, nil
}

func (f *fakeEventRepo) WatchEvents(ctx context.Context, opts models.EventQueryOptions, onSnapshot func([]*models.Event), onError func(error)) (func(), error) {
	onSnapshot([]*models.Event{})
	return func() {}, nil
}

type fakeHashtagRepo struct {
	touched [][]string
}

func (f *fakeHashtagRepo) TouchHashtags(ctx context.Context, tags []string) error {
	f.touched = append(f.touched, tags)
	return nil
}

func (f *fakeHashtagRepo) ListTrendingHashtags(ctx context.Context, limit int) ([]*models.Hashtag, error) {
	return nil, nil
}

type fakePhotoRepo struct{}

func (f *fakePhotoRepo) CreatePhoto(ctx context.Context, photo *models.Photo) (*models.Photo, error) {
	return photo, nil
}

func (f *fakePhotoRepo) ListPhotosByEvent(ctx context.Context, eventID string, limit int) ([]*models.Photo, error) {
	return nil, nil
}

func (f *fakePhotoRepo) DeletePhotosBatch(ctx context.Context, ids []string) (*models.BatchResult, error) {
	return &models.BatchResult{Success: true}, nil
}

func newTestEventService() (*EventService, *fakeEventRepo, *fakeHashtagRepo) {
	events := &fakeEventRepo{}
	hashtags := &fakeHashtagRepo{}
	return NewEventService(events, hashtags, &fakePhotoRepo{}), events, hashtags
}

func TestCreateEventValidation(t *testing.T) {
	es, _, _ := newTestEventService()
	promoter := uuid.New()
	ctx := context.Background()

	valid := models.Event{
		Title:    "Sunday Brunch",
		Category: models.CategoryFoodDrink,
		Date:     time.Now().AddDate(0, 1, 0),
	}

	if _, err := es.CreateEvent(ctx, &valid, uuid.Nil); err == nil {
		t.Error("expected error for nil promoter ID")
	}

	missingTitle := valid
	missingTitle.Title = ""
	if _, err := es.CreateEvent(ctx, &missingTitle, promoter); err == nil {
		t.Error("expected error for missing title")
	}

	badCategory := valid
	badCategory.Category = "karaoke"
	if _, err := es.CreateEvent(ctx, &badCategory, promoter); err == nil {
		t.Error("expected error for unsupported category")
	}

	ok := valid
	created, err := es.CreateEvent(ctx, &ok, promoter)
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	if created.PromoterID != promoter.String() {
		t.Errorf("promoter id = %q, want %q", created.PromoterID, promoter.String())
	}
}

func TestCreateEventTouchesHashtags(t *testing.T) {
	es, _, hashtags := newTestEventService()

	event := models.Event{
		Title:    "Jazz Night",
		Category: models.CategoryMusic,
		Date:     time.Now().AddDate(0, 0, 7),
		Hashtags: []string{"#Jazz", "LiveMusic"},
	}
	if _, err := es.CreateEvent(context.Background(), &event, uuid.New()); err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	if len(hashtags.touched) != 1 {
		t.Fatalf("hashtags touched %d times, want 1", len(hashtags.touched))
	}
	got := hashtags.touched[0]
	if len(got) != 2 || got[0] != "jazz" || got[1] != "livemusic" {
		t.Errorf("touched tags = %v, want normalized [jazz livemusic]", got)
	}
}

func TestListEventsRejectsInvalidRanges(t *testing.T) {
	es, _, _ := newTestEventService()
	ctx := context.Background()

	min, max := 50.0, 10.0
	if _, err := es.ListEvents(ctx, models.EventQueryOptions{MinPrice: &min, MaxPrice: &max}); err == nil {
		t.Error("expected error when min price exceeds max price")
	}

	neg := -1.0
	if _, err := es.ListEvents(ctx, models.EventQueryOptions{MinPrice: &neg}); err == nil {
		t.Error("expected error for negative min price")
	}

	start := time.Now().AddDate(0, 1, 0)
	end := time.Now()
	if _, err := es.ListEvents(ctx, models.EventQueryOptions{StartDate: &start, EndDate: &end}); err == nil {
		t.Error("expected error when start date follows end date")
	}

	if _, err := es.ListEvents(ctx, models.EventQueryOptions{Category: "karaoke"}); err == nil {
		t.Error("expected error for unsupported category")
	}
}

func TestSearchEventsRejectsBlankTerm(t *testing.T) {
	es, _, _ := newTestEventService()
	if _, err := es.SearchEvents(context.Background(), "   ", models.EventQueryOptions{}); err == nil {
		t.Error("expected error for blank search term")
	}
}

func TestUpdateEventStripsProtectedFields(t *testing.T) {
	es, _, _ := newTestEventService()

	fields := map[string]interface{}{
		"title":           "New title",
		"favorites_count": 9999,
		"favorited_by":    []string{"intruder"},
		"promoter_id":     "someone-else",
	}
	if _, err := es.UpdateEvent(context.Background(), "abc", uuid.New(), fields); err != nil {
		t.Fatalf("UpdateEvent failed: %v", err)
	}
	for _, blocked := range []string{"favorites_count", "favorited_by", "promoter_id", "_id"} {
		if _, ok := fields[blocked]; ok {
			t.Errorf("protected field %q reached the store", blocked)
		}
	}
	if fields["title"] != "New title" {
		t.Error("writable field was dropped")
	}
}

func TestDeleteEventsBatchRejectsEmpty(t *testing.T) {
	es, _, _ := newTestEventService()
	_, err := es.DeleteEventsBatch(context.Background(), nil)
	if err == nil || !strings.Contains(err.Error(), "empty") {
		t.Errorf("expected empty-list error, got %v", err)
	}
}
