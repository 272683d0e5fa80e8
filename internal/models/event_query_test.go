package models

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func floatPtr(f float64) *float64 { return &f }

func timePtr(t time.Time) *time.Time { return &t }

func inequalityFields(filter bson.M) []string {
	var fields []string
	for key, value := range filter {
		if m, ok := value.(bson.M); ok {
			for op := range m {
				if op == "$gte" || op == "$lte" || op == "$gt" || op == "$lt" {
					fields = append(fields, key)
					break
				}
			}
		}
	}
	return fields
}

func TestBuildFilterConstraintLimits(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	combos := []EventQueryOptions{
		{Category: CategoryMusic, Hashtag: "brunch", StartDate: timePtr(start), EndDate: timePtr(end)},
		{Category: CategoryArts, Hashtag: "jazz", MinPrice: floatPtr(10), MaxPrice: floatPtr(50)},
		{PromoterID: "p1", Hashtag: "free", StartDate: timePtr(start), MinPrice: floatPtr(0)},
		{Category: CategoryNightlife, PromoterID: "p2", EndDate: timePtr(end), MaxPrice: floatPtr(20)},
	}

	for i, opts := range combos {
		filter := buildFilter(opts)

		ineq := inequalityFields(filter)
		if len(ineq) > 1 {
			t.Errorf("combo %d: filter has %d inequality fields %v, want at most 1", i, len(ineq), ineq)
		}
		if len(ineq) == 1 && ineq[0] != "date" {
			t.Errorf("combo %d: inequality on %q, only the date field may carry one", i, ineq[0])
		}

		// Price ranges must never reach the store.
		if _, ok := filter["price"]; ok {
			t.Errorf("combo %d: price filter pushed to the store, must be applied in memory", i)
		}
	}
}

func TestBuildFilterHashtagNormalized(t *testing.T) {
	filter := buildFilter(EventQueryOptions{Hashtag: "#Brunch"})
	if filter["hashtags"] != "brunch" {
		t.Errorf("hashtag clause = %v, want %q", filter["hashtags"], "brunch")
	}
}

func TestSortSpecModes(t *testing.T) {
	tests := []struct {
		name  string
		opts  EventQueryOptions
		first string
		dir   int
	}{
		{"default date asc", EventQueryOptions{}, "date", 1},
		{"date desc", EventQueryOptions{SortBy: SortByDate, SortOrder: SortDesc}, "date", -1},
		{"popularity", EventQueryOptions{SortBy: SortByPopularity}, "favorites_count", -1},
		{"trending", EventQueryOptions{SortBy: SortByTrending}, "favorites_count", -1},
	}

	for _, tc := range tests {
		spec := sortSpec(tc.opts)
		if spec[0].Key != tc.first || spec[0].Value != tc.dir {
			t.Errorf("%s: primary key = %s/%v, want %s/%d", tc.name, spec[0].Key, spec[0].Value, tc.first, tc.dir)
		}
	}
}

// Trending tie-breaks on creation time, never on the event date.
func TestTrendingSortIgnoresDate(t *testing.T) {
	spec := sortSpec(EventQueryOptions{SortBy: SortByTrending, SortOrder: SortAsc})
	for _, key := range spec {
		if key.Key == "date" {
			t.Errorf("trending sort includes the date field: %v", spec)
		}
	}
	if spec[1].Key != "created_at" || spec[1].Value != -1 {
		t.Errorf("trending secondary key = %s/%v, want created_at/-1", spec[1].Key, spec[1].Value)
	}
}

func TestPopularitySortSecondaryFollowsRequestedOrder(t *testing.T) {
	spec := sortSpec(EventQueryOptions{SortBy: SortByPopularity, SortOrder: SortDesc})
	if spec[1].Key != "date" || spec[1].Value != -1 {
		t.Errorf("popularity secondary key = %s/%v, want date/-1", spec[1].Key, spec[1].Value)
	}
}

func TestCursorRoundTrip(t *testing.T) {
	opts := EventQueryOptions{SortBy: SortByPopularity, SortOrder: SortDesc}
	last := &Event{
		ID:             primitive.NewObjectID(),
		Date:           time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC),
		FavoritesCount: 42,
		CreatedAt:      time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	token := encodeCursor(last, opts)
	if token == "" {
		t.Fatal("encodeCursor returned empty token")
	}

	decoded, err := decodeCursor(token, opts)
	if err != nil {
		t.Fatalf("decodeCursor failed: %v", err)
	}
	if decoded.ID != last.ID {
		t.Errorf("decoded id = %s, want %s", decoded.ID.Hex(), last.ID.Hex())
	}
	if decoded.FavoritesCount != 42 {
		t.Errorf("decoded favorites count = %d, want 42", decoded.FavoritesCount)
	}
	if !decoded.Date.Equal(last.Date) {
		t.Errorf("decoded date = %v, want %v", decoded.Date, last.Date)
	}
}

func TestCursorRejectsMismatchedSort(t *testing.T) {
	minted := EventQueryOptions{SortBy: SortByDate, SortOrder: SortAsc}
	token := encodeCursor(&Event{ID: primitive.NewObjectID()}, minted)

	if _, err := decodeCursor(token, EventQueryOptions{SortBy: SortByTrending}); err == nil {
		t.Error("expected error resuming a date cursor under trending sort")
	}
	if _, err := decodeCursor(token, EventQueryOptions{SortBy: SortByDate, SortOrder: SortDesc}); err == nil {
		t.Error("expected error resuming an asc cursor under desc order")
	}
	if _, err := decodeCursor("not-a-cursor", minted); err == nil {
		t.Error("expected error decoding garbage token")
	}
}

func TestFilterEventsByPrice(t *testing.T) {
	events := []*Event{
		{Title: "free", Price: 0},
		{Title: "cheap", Price: 10},
		{Title: "mid", Price: 25},
		{Title: "steep", Price: 80},
	}

	got := FilterEventsByPrice(events, floatPtr(5), floatPtr(30))
	if len(got) != 2 || got[0].Title != "cheap" || got[1].Title != "mid" {
		t.Fatalf("filtered = %v, want [cheap mid]", titles(got))
	}

	// Idempotent and order-preserving: filtering again changes nothing.
	again := FilterEventsByPrice(got, floatPtr(5), floatPtr(30))
	if len(again) != len(got) {
		t.Fatalf("second filter changed length: %d != %d", len(again), len(got))
	}
	for i := range got {
		if again[i] != got[i] {
			t.Errorf("second filter reordered index %d", i)
		}
	}

	// No bounds means no work.
	all := FilterEventsByPrice(events, nil, nil)
	if len(all) != len(events) {
		t.Errorf("nil bounds filtered %d of %d events", len(events)-len(all), len(events))
	}

	// Bounds are inclusive on both ends.
	exact := FilterEventsByPrice(events, floatPtr(10), floatPtr(10))
	if len(exact) != 1 || exact[0].Title != "cheap" {
		t.Errorf("inclusive bounds: got %v, want [cheap]", titles(exact))
	}
}

func titles(events []*Event) []string {
	out := make([]string, len(events))
	for i, ev := range events {
		out[i] = ev.Title
	}
	return out
}

func TestQueryOptionDefaults(t *testing.T) {
	var opts EventQueryOptions
	if opts.limit() != DefaultPageLimit {
		t.Errorf("default limit = %d, want %d", opts.limit(), DefaultPageLimit)
	}
	if opts.sortBy() != SortByDate {
		t.Errorf("default sort = %s, want %s", opts.sortBy(), SortByDate)
	}
	if opts.sortOrder() != SortAsc {
		t.Errorf("default order = %s, want %s", opts.sortOrder(), SortAsc)
	}
	if opts.HasPriceFilter() {
		t.Error("zero options report an active price filter")
	}
}
