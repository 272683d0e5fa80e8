package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func makeEvents(n int) []*Event {
	events := make([]*Event, n)
	for i := range events {
		events[i] = &Event{ID: primitive.NewObjectID(), Price: float64(i * 10)}
	}
	return events
}

// HasMore is count == limit, nothing more: a page exactly filling the limit
// reads as true even if nothing follows.
func TestEventPageHasMore(t *testing.T) {
	opts := EventQueryOptions{Limit: 6}

	full := newEventPage(makeEvents(6), opts)
	if !full.HasMore {
		t.Error("a full page of 6/6 must report hasMore")
	}
	short := newEventPage(makeEvents(4), opts)
	if short.HasMore {
		t.Error("a short page of 4/6 must not report hasMore")
	}
	empty := newEventPage(nil, opts)
	if empty.HasMore || empty.Cursor != "" || empty.Count != 0 {
		t.Errorf("empty page = %+v, want no cursor, no more, zero count", empty)
	}
}

// With an active price filter the page can come back shorter than the limit
// while HasMore stays true; the cursor still points at the raw last row so
// pagination continues past the filtered-out rows.
func TestEventPagePriceFilterKeepsPaginationAlive(t *testing.T) {
	opts := EventQueryOptions{Limit: 5, MaxPrice: floatPtr(15)}
	raw := makeEvents(5) // prices 0, 10, 20, 30, 40

	page := newEventPage(raw, opts)
	if page.Count != 2 {
		t.Errorf("count = %d, want 2 after price filter", page.Count)
	}
	if !page.HasMore {
		t.Error("hasMore must come from the raw page, not the filtered one")
	}
	if page.Cursor == "" {
		t.Fatal("cursor missing on a non-empty raw page")
	}

	decoded, err := decodeCursor(page.Cursor, opts)
	if err != nil {
		t.Fatalf("decodeCursor failed: %v", err)
	}
	if decoded.ID != raw[len(raw)-1].ID {
		t.Error("cursor must reference the last raw row, not the last filtered row")
	}
}
