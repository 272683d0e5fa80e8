package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EventPage is the pagination envelope browse surfaces consume.
type EventPage struct {
	Events []*Event `json:"events"`
	// NextCursor resumes strictly after the last row of this page, under the
	// same sort and filters that produced it. Empty when the page was empty.
	Cursor string `json:"cursor,omitempty"`
	// HasMore is count == limit, measured before the in-memory price filter.
	// A page that exactly fills the limit with nothing behind it reads as
	// true; the next fetch resolves it by returning zero rows.
	HasMore bool `json:"has_more"`
	Count   int  `json:"count"`
}

type EventRepo interface {
	CreateEvent(ctx context.Context, event *Event) (*Event, error)
	GetEventByID(ctx context.Context, id string) (*Event, error)
	ListEvents(ctx context.Context, opts EventQueryOptions) (*EventPage, error)
	SearchEvents(ctx context.Context, term string, opts EventQueryOptions) ([]*Event, error)
	UpdateEvent(ctx context.Context, id string, promoterID string, fields map[string]interface{}) (*Event, error)
	DeleteEvent(ctx context.Context, id string, promoterID string) error
	DeleteEventsBatch(ctx context.Context, ids []string) (*BatchResult, error)
	WatchEvents(ctx context.Context, opts EventQueryOptions, onSnapshot func([]*Event), onError func(error)) (func(), error)
}

func (mdb *MongodbRepo) CreateEvent(ctx context.Context, event *Event) (*Event, error) {
	col, err := mdb.GetCollection(ctx, EventsDbName, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	if err := event.BeforeCreate(); err != nil {
		return nil, err
	}
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now

	if _, err := col.InsertOne(ctx, event); err != nil {
		return nil, fmt.Errorf("error inserting event: %v", err)
	}
	return event, nil
}

func (mdb *MongodbRepo) GetEventByID(ctx context.Context, id string) (*Event, error) {
	col, err := mdb.GetCollection(ctx, EventsDbName, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID %q: %v", id, err)
	}

	var event Event
	err = col.FindOne(ctx, bson.M{"_id": oid}).Decode(&event)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("event %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("error finding event %s: %v", id, err)
	}
	return &event, nil
}

// ListEvents executes one page of the composed query. The price range, when
// present, is applied in memory after the fetch; HasMore and the cursor are
// derived from the raw page so a short post-filter page doesn't end
// pagination early.
func (mdb *MongodbRepo) ListEvents(ctx context.Context, opts EventQueryOptions) (*EventPage, error) {
	col, err := mdb.GetCollection(ctx, EventsDbName, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	filter := buildFilter(opts)
	if opts.Cursor != "" {
		cur, err := decodeCursor(opts.Cursor, opts)
		if err != nil {
			return nil, err
		}
		filter = bson.M{"$and": bson.A{filter, cursorFilter(cur, opts)}}
	}

	limit := opts.limit()
	findOpts := options.Find().
		SetSort(sortSpec(opts)).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, wrapQueryErr(err, EventsColName, indexFields(opts))
	}
	defer cursor.Close(ctx)

	var events []*Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, wrapQueryErr(err, EventsColName, indexFields(opts))
	}

	return newEventPage(events, opts), nil
}

// newEventPage assembles the envelope from a raw fetched page. HasMore and
// the cursor come from the raw page; the price filter narrows afterwards.
func newEventPage(raw []*Event, opts EventQueryOptions) *EventPage {
	page := &EventPage{
		HasMore: len(raw) == opts.limit(),
	}
	if len(raw) > 0 {
		page.Cursor = encodeCursor(raw[len(raw)-1], opts)
	}
	page.Events = FilterEventsByPrice(raw, opts.MinPrice, opts.MaxPrice)
	page.Count = len(page.Events)
	return page
}

// SearchEvents over-fetches a bounded candidate set (3x the requested limit,
// to absorb post-scoring attrition), scores each candidate against the
// tokenized term, drops zero-score candidates and truncates to the limit.
// Matches beyond the over-sampled window are missed; that is the documented
// precision/recall trade-off of scoring client-side.
func (mdb *MongodbRepo) SearchEvents(ctx context.Context, term string, opts EventQueryOptions) ([]*Event, error) {
	if len(tokenizeQuery(term)) == 0 {
		return nil, fmt.Errorf("search term cannot be empty")
	}

	col, err := mdb.GetCollection(ctx, EventsDbName, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	limit := opts.limit()
	sample := opts
	sample.Hashtag = ""
	sample.PromoterID = ""
	findOpts := options.Find().
		SetSort(sortSpec(sample)).
		SetLimit(int64(limit * searchOversampleFactor))

	cursor, err := col.Find(ctx, buildFilter(sample), findOpts)
	if err != nil {
		return nil, wrapQueryErr(err, EventsColName, indexFields(sample))
	}
	defer cursor.Close(ctx)

	var candidates []*Event
	if err := cursor.All(ctx, &candidates); err != nil {
		return nil, wrapQueryErr(err, EventsColName, indexFields(sample))
	}

	ranked := RankEvents(candidates, term, opts.sortBy() == SortByRelevance)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

func (mdb *MongodbRepo) UpdateEvent(ctx context.Context, id string, promoterID string, fields map[string]interface{}) (*Event, error) {
	col, err := mdb.GetCollection(ctx, EventsDbName, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID %q: %v", id, err)
	}

	fields["updated_at"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Event
	err = col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "promoter_id": promoterID},
		bson.M{"$set": fields},
		opts,
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("event %s owned by %s: %w", id, promoterID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("error updating event %s: %v", id, err)
	}
	return &updated, nil
}

func (mdb *MongodbRepo) DeleteEvent(ctx context.Context, id string, promoterID string) error {
	col, err := mdb.GetCollection(ctx, EventsDbName, EventsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid event ID %q: %v", id, err)
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": oid, "promoter_id": promoterID})
	if err != nil {
		return fmt.Errorf("error deleting event %s: %v", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("event %s owned by %s: %w", id, promoterID, ErrNotFound)
	}
	return nil
}

func (mdb *MongodbRepo) DeleteEventsBatch(ctx context.Context, ids []string) (*BatchResult, error) {
	col, err := mdb.GetCollection(ctx, EventsDbName, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}
	return DeleteByIDs(ctx, col, ids)
}
