package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	EventsDbName  = DbName
	EventsColName = "events"
)

type EventCategory string

const (
	CategoryMusic     EventCategory = "music"
	CategoryNightlife EventCategory = "nightlife"
	CategoryFoodDrink EventCategory = "food_drink"
	CategoryArts      EventCategory = "arts"
	CategorySports    EventCategory = "sports"
	CategoryCommunity EventCategory = "community"
	CategoryBusiness  EventCategory = "business"
	CategoryOther     EventCategory = "other"
)

var validCategories = map[EventCategory]bool{
	CategoryMusic:     true,
	CategoryNightlife: true,
	CategoryFoodDrink: true,
	CategoryArts:      true,
	CategorySports:    true,
	CategoryCommunity: true,
	CategoryBusiness:  true,
	CategoryOther:     true,
}

func (c EventCategory) IsValid() bool {
	return validCategories[c]
}

type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PromoterID  string             `bson:"promoter_id" json:"promoter_id" validate:"required"`
	Title       string             `bson:"title" json:"title" validate:"required"`
	Description string             `bson:"description" json:"description"`
	Category    EventCategory      `bson:"category" json:"category" validate:"required"`
	Date        time.Time          `bson:"date" json:"date" validate:"required"`
	StartTime   string             `bson:"start_time" json:"start_time"` // "HH:MM" (24h)
	EndTime     string             `bson:"end_time" json:"end_time"`     // "HH:MM" (24h)
	Location    string             `bson:"location" json:"location"`
	VenueName   string             `bson:"venue_name" json:"venue_name"`
	Price       float64            `bson:"price" json:"price" validate:"gte=0"` // 0 = free
	TicketLink  string             `bson:"ticket_link" json:"ticket_link,omitempty"`
	Hashtags    []string           `bson:"hashtags" json:"hashtags"` // lowercase, no leading '#'
	FavoritedBy []string           `bson:"favorited_by" json:"favorited_by"`
	// Mirrors len(favorited_by). Maintained by paired updates only, never
	// transactionally, so it can drift if a toggle half-fails.
	FavoritesCount int       `bson:"favorites_count" json:"favorites_count"`
	ImageURL       string    `bson:"image_url" json:"image_url,omitempty"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

func (e *Event) BeforeCreate() error {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	if e.FavoritedBy == nil {
		e.FavoritedBy = []string{}
	}
	e.FavoritesCount = len(e.FavoritedBy)
	for i, tag := range e.Hashtags {
		e.Hashtags[i] = NormalizeHashtag(tag)
	}
	return nil
}

func (e *Event) IsFavoritedBy(userID string) bool {
	for _, id := range e.FavoritedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// NormalizeHashtag lowercases a tag and strips any leading '#'.
func NormalizeHashtag(tag string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(tag), "#"))
}
