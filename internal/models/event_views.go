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

const (
	EventViewsDbName  = DbName
	EventViewsColName = "event_views"
)

type EventView struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID    string             `bson:"event_id" json:"event_id" validate:"required"`
	PromoterID string             `bson:"promoter_id" json:"promoter_id" validate:"required"`
	UserID     *string            `bson:"user_id,omitempty" json:"user_id,omitempty"` // optional, for authenticated users
	SessionID  string             `bson:"session_id" json:"session_id" validate:"required"`
	ViewedAt   time.Time          `bson:"viewed_at" json:"viewed_at"`
	ExpiresAt  time.Time          `bson:"expires_at" json:"expires_at"` // TTL index field
}

type EventViewStats struct {
	EventID       string `json:"event_id"`
	TotalViews    int64  `json:"total_views"`
	UniqueViews   int64  `json:"unique_views"`
	ViewsToday    int64  `json:"views_today"`
	ViewsThisWeek int64  `json:"views_this_week"`
}

type EventViewsRepo interface {
	TrackEventView(ctx context.Context, view *EventView) error
	GetEventViewStats(ctx context.Context, eventId string) (*EventViewStats, error)
	EnsureIndexes(ctx context.Context) error
}

// EnsureIndexes creates necessary indexes including TTL
func (mdb *MongodbRepo) EnsureIndexes(ctx context.Context) error {
	col, err := mdb.GetCollection(ctx, EventViewsDbName, EventViewsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	indexes := []mongo.IndexModel{
		// TTL index - views expire at the time specified in expires_at
		{
			Keys: bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().
				SetExpireAfterSeconds(0).
				SetName("expires_at_ttl"),
		},
		// Compound index for unique session views
		{
			Keys: bson.D{
				{Key: "event_id", Value: 1},
				{Key: "session_id", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("event_session_unique"),
		},
		// Index for date range queries
		{
			Keys: bson.D{
				{Key: "event_id", Value: 1},
				{Key: "viewed_at", Value: -1},
			},
			Options: options.Index().SetName("event_viewed_at_idx"),
		},
	}

	eventsCol, err := mdb.GetCollection(ctx, EventsDbName, EventsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}
	eventIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "category", Value: 1},
				{Key: "date", Value: 1},
			},
			Options: options.Index().SetName("category_date_idx"),
		},
		{
			Keys: bson.D{
				{Key: "hashtags", Value: 1},
				{Key: "date", Value: 1},
			},
			Options: options.Index().SetName("hashtags_date_idx"),
		},
		{
			Keys: bson.D{
				{Key: "favorites_count", Value: -1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("trending_idx"),
		},
	}

	if _, err := col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("error creating indexes: %v", err)
	}
	if _, err := eventsCol.Indexes().CreateMany(ctx, eventIndexes); err != nil {
		return fmt.Errorf("error creating indexes: %v", err)
	}

	return nil
}

// TrackEventView records an event page view with TTL and rate limiting
func (mdb *MongodbRepo) TrackEventView(ctx context.Context, view *EventView) error {
	col, err := mdb.GetCollection(ctx, EventViewsDbName, EventViewsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	// Check if this session has viewed this event recently (within last hour)
	oneHourAgo := time.Now().Add(-1 * time.Hour)
	var recentView EventView
	err = col.FindOne(ctx, bson.M{
		"event_id":   view.EventID,
		"session_id": view.SessionID,
		"viewed_at":  bson.M{"$gte": oneHourAgo},
	}).Decode(&recentView)

	if err == nil {
		// Already viewed within the last hour, don't track again
		return nil
	}

	now := time.Now()
	view.ViewedAt = now
	view.ExpiresAt = now.Add(30 * 24 * time.Hour) // Expire after 30 days

	if view.ID.IsZero() {
		view.ID = primitive.NewObjectID()
	}

	_, err = col.InsertOne(ctx, view)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil // Silently ignore duplicate views from same session
		}
		return fmt.Errorf("error inserting event view: %v", err)
	}

	return nil
}

// GetEventViewStats returns aggregated view statistics
func (mdb *MongodbRepo) GetEventViewStats(ctx context.Context, eventId string) (*EventViewStats, error) {
	col, err := mdb.GetCollection(ctx, EventViewsDbName, EventViewsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	stats := &EventViewStats{
		EventID: eventId,
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfWeek := startOfDay.AddDate(0, 0, -int(now.Weekday()))

	totalCount, err := col.CountDocuments(ctx, bson.M{"event_id": eventId})
	if err != nil {
		return nil, fmt.Errorf("error counting total views: %v", err)
	}
	stats.TotalViews = totalCount

	// Unique views by session_id
	uniquePipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"event_id": eventId}}},
		{{Key: "$group", Value: bson.M{
			"_id": "$session_id",
		}}},
		{{Key: "$count", Value: "unique_sessions"}},
	}
	uniqueCursor, err := col.Aggregate(ctx, uniquePipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating unique views: %v", err)
	}
	defer uniqueCursor.Close(ctx)

	var uniqueResult []bson.M
	if err := uniqueCursor.All(ctx, &uniqueResult); err != nil {
		return nil, fmt.Errorf("error decoding unique views: %v", err)
	}
	if len(uniqueResult) > 0 {
		if count, ok := uniqueResult[0]["unique_sessions"].(int32); ok {
			stats.UniqueViews = int64(count)
		}
	}

	todayCount, err := col.CountDocuments(ctx, bson.M{
		"event_id":  eventId,
		"viewed_at": bson.M{"$gte": startOfDay},
	})
	if err != nil {
		return nil, fmt.Errorf("error counting today's views: %v", err)
	}
	stats.ViewsToday = todayCount

	weekCount, err := col.CountDocuments(ctx, bson.M{
		"event_id":  eventId,
		"viewed_at": bson.M{"$gte": startOfWeek},
	})
	if err != nil {
		return nil, fmt.Errorf("error counting this week's views: %v", err)
	}
	stats.ViewsThisWeek = weekCount

	return stats, nil
}
