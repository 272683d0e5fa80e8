package models

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultPageLimit = 20

type SortBy string

const (
	SortByDate       SortBy = "date"
	SortByPopularity SortBy = "popularity"
	// SortByTrending is a recency-weighted popularity view: favorites count
	// first, then creation time descending. The event date is deliberately
	// not part of the tie-break.
	SortByTrending SortBy = "trending"
	// SortByRelevance carries no store-side ordering; ranking happens in
	// SearchEvents only.
	SortByRelevance SortBy = "relevance"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// EventQueryOptions is the loose criteria bag the browse surfaces produce.
// Every field is optional; zero values mean "no constraint".
type EventQueryOptions struct {
	Category   EventCategory `json:"category,omitempty"`
	Hashtag    string        `json:"hashtag,omitempty"`
	PromoterID string        `json:"promoter_id,omitempty"`
	StartDate  *time.Time    `json:"start_date,omitempty"` // inclusive lower bound on event date
	EndDate    *time.Time    `json:"end_date,omitempty"`   // inclusive upper bound on event date
	MinPrice   *float64      `json:"min_price,omitempty"`
	MaxPrice   *float64      `json:"max_price,omitempty"`
	SortBy     SortBy        `json:"sort_by,omitempty"`
	SortOrder  SortOrder     `json:"sort_order,omitempty"`
	Limit      int           `json:"limit,omitempty"`
	Cursor     string        `json:"cursor,omitempty"`
}

func (o EventQueryOptions) limit() int {
	if o.Limit <= 0 {
		return DefaultPageLimit
	}
	return o.Limit
}

func (o EventQueryOptions) sortBy() SortBy {
	if o.SortBy == "" {
		return SortByDate
	}
	return o.SortBy
}

func (o EventQueryOptions) sortOrder() SortOrder {
	if o.SortOrder != SortDesc {
		return SortAsc
	}
	return SortDesc
}

// HasPriceFilter reports whether results are narrowed in memory after the
// fetch. When true, a page shorter than the requested limit does not mean
// the result set is exhausted.
func (o EventQueryOptions) HasPriceFilter() bool {
	return o.MinPrice != nil || o.MaxPrice != nil
}

// buildFilter translates the options into store predicates, honoring the
// store's limits: equality constraints combine freely, the hashtag match is
// the single array-membership clause, and the date range is the single
// inequality-bearing field. The price range never reaches the store; it is
// applied in memory by FilterEventsByPrice.
func buildFilter(opts EventQueryOptions) bson.M {
	filter := bson.M{}
	if opts.Category != "" {
		filter["category"] = opts.Category
	}
	if opts.PromoterID != "" {
		filter["promoter_id"] = opts.PromoterID
	}
	if opts.Hashtag != "" {
		filter["hashtags"] = NormalizeHashtag(opts.Hashtag)
	}
	if opts.StartDate != nil || opts.EndDate != nil {
		dateRange := bson.M{}
		if opts.StartDate != nil {
			dateRange["$gte"] = *opts.StartDate
		}
		if opts.EndDate != nil {
			dateRange["$lte"] = *opts.EndDate
		}
		filter["date"] = dateRange
	}
	return filter
}

// sortSpec returns the ordered sort keys for the requested mode. The
// document id is always the final tie-break so cursors resume
// deterministically.
func sortSpec(opts EventQueryOptions) bson.D {
	dir := 1
	if opts.sortOrder() == SortDesc {
		dir = -1
	}
	switch opts.sortBy() {
	case SortByPopularity:
		return bson.D{
			{Key: "favorites_count", Value: -1},
			{Key: "date", Value: dir},
			{Key: "_id", Value: dir},
		}
	case SortByTrending:
		return bson.D{
			{Key: "favorites_count", Value: -1},
			{Key: "created_at", Value: -1},
			{Key: "_id", Value: -1},
		}
	default:
		// date and relevance both read in date order; relevance re-ranks
		// in memory afterwards.
		return bson.D{
			{Key: "date", Value: dir},
			{Key: "_id", Value: dir},
		}
	}
}

// indexFields lists the fields a composite index would need to cover this
// query, for missing-index error guidance.
func indexFields(opts EventQueryOptions) []string {
	var fields []string
	if opts.Category != "" {
		fields = append(fields, "category")
	}
	if opts.PromoterID != "" {
		fields = append(fields, "promoter_id")
	}
	if opts.Hashtag != "" {
		fields = append(fields, "hashtags")
	}
	for _, k := range sortSpec(opts) {
		if k.Key == "_id" {
			continue
		}
		fields = append(fields, k.Key)
	}
	return fields
}

// pageCursor is the decoded form of the opaque pagination token. It pins
// the sort mode and order it was minted under together with the last row's
// sort-key values; resuming under any other mode is a caller error and is
// rejected at decode time.
type pageCursor struct {
	SortBy         SortBy             `json:"s"`
	SortOrder      SortOrder          `json:"o"`
	ID             primitive.ObjectID `json:"id"`
	Date           time.Time          `json:"d"`
	FavoritesCount int                `json:"f"`
	CreatedAt      time.Time          `json:"c"`
}

func encodeCursor(last *Event, opts EventQueryOptions) string {
	c := pageCursor{
		SortBy:         opts.sortBy(),
		SortOrder:      opts.sortOrder(),
		ID:             last.ID,
		Date:           last.Date,
		FavoritesCount: last.FavoritesCount,
		CreatedAt:      last.CreatedAt,
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(raw)
}

func decodeCursor(token string, opts EventQueryOptions) (*pageCursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor: %v", err)
	}
	var c pageCursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("invalid cursor: %v", err)
	}
	if c.SortBy != opts.sortBy() || c.SortOrder != opts.sortOrder() {
		return nil, fmt.Errorf("cursor was issued under sort %s/%s, cannot resume under %s/%s",
			c.SortBy, c.SortOrder, opts.sortBy(), opts.sortOrder())
	}
	return &c, nil
}

// cursorFilter builds the resume clause positioning the query strictly after
// the cursor row under the identical sort order. It is kept separate from
// buildFilter and combined with $and by the executor, so the base constraint
// set itself never carries a second inequality field.
func cursorFilter(c *pageCursor, opts EventQueryOptions) bson.M {
	after := "$gt"
	if opts.sortOrder() == SortDesc {
		after = "$lt"
	}
	switch opts.sortBy() {
	case SortByPopularity:
		return bson.M{"$or": bson.A{
			bson.M{"favorites_count": bson.M{"$lt": c.FavoritesCount}},
			bson.M{"favorites_count": c.FavoritesCount, "date": bson.M{after: c.Date}},
			bson.M{"favorites_count": c.FavoritesCount, "date": c.Date, "_id": bson.M{after: c.ID}},
		}}
	case SortByTrending:
		return bson.M{"$or": bson.A{
			bson.M{"favorites_count": bson.M{"$lt": c.FavoritesCount}},
			bson.M{"favorites_count": c.FavoritesCount, "created_at": bson.M{"$lt": c.CreatedAt}},
			bson.M{"favorites_count": c.FavoritesCount, "created_at": c.CreatedAt, "_id": bson.M{"$lt": c.ID}},
		}}
	default:
		return bson.M{"$or": bson.A{
			bson.M{"date": bson.M{after: c.Date}},
			bson.M{"date": c.Date, "_id": bson.M{after: c.ID}},
		}}
	}
}

// FilterEventsByPrice applies the in-memory price range. It preserves input
// order and is idempotent: filtering an already-filtered page again changes
// nothing.
func FilterEventsByPrice(events []*Event, minPrice, maxPrice *float64) []*Event {
	if minPrice == nil && maxPrice == nil {
		return events
	}
	filtered := make([]*Event, 0, len(events))
	for _, ev := range events {
		if minPrice != nil && ev.Price < *minPrice {
			continue
		}
		if maxPrice != nil && ev.Price > *maxPrice {
			continue
		}
		filtered = append(filtered, ev)
	}
	return filtered
}
