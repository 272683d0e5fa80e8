package models

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxMembershipLookup is the store's ceiling on ids per membership query.
const MaxMembershipLookup = 10

// eventFavoriteUpdate builds the event-side half of a favorite toggle:
// membership in favorited_by plus the paired favorites_count adjustment.
func eventFavoriteUpdate(userID string, favorited bool) bson.M {
	if favorited {
		return bson.M{
			"$pull": bson.M{"favorited_by": userID},
			"$inc":  bson.M{"favorites_count": -1},
		}
	}
	return bson.M{
		"$addToSet": bson.M{"favorited_by": userID},
		"$inc":      bson.M{"favorites_count": 1},
	}
}

// userFavoriteUpdate builds the user-side half of a favorite toggle.
func userFavoriteUpdate(eventID string, favorited bool) bson.M {
	if favorited {
		return bson.M{"$pull": bson.M{"favorites": eventID}}
	}
	return bson.M{"$addToSet": bson.M{"favorites": eventID}}
}

// ToggleFavorite flips the (user, event) favorite state with two paired
// writes: Event.favorited_by (with favorites_count) first, then
// User.favorites. The writes are independent and unsynchronized; a failure
// between them leaves the denormalized invariant violated with no automatic
// repair. Returns the event as seen after the event-side write.
func (mdb *MongodbRepo) ToggleFavorite(ctx context.Context, userID uuid.UUID, eventID string) (*Event, error) {
	event, err := mdb.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	favorited := event.IsFavoritedBy(userID.String())

	eventsCol, err := mdb.GetCollection(ctx, EventsDbName, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}
	if _, err := eventsCol.UpdateOne(ctx,
		bson.M{"_id": event.ID},
		eventFavoriteUpdate(userID.String(), favorited),
	); err != nil {
		return nil, fmt.Errorf("error updating event favorites: %v", err)
	}

	usersCol, err := mdb.GetCollection(ctx, UsersDbName, UsersColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}
	if _, err := usersCol.UpdateOne(ctx,
		bson.M{"_id": userID.String()},
		userFavoriteUpdate(eventID, favorited),
	); err != nil {
		return nil, fmt.Errorf("error updating user favorites: %v", err)
	}

	return mdb.GetEventByID(ctx, eventID)
}

// GetFavoriteEvents resolves a user's favorites list back to event
// documents, chunking lookups to the store's membership-query limit and
// re-sorting the merged set by date ascending. A user with no favorites, or
// no user document at all, yields an empty list rather than an error.
func (mdb *MongodbRepo) GetFavoriteEvents(ctx context.Context, userID uuid.UUID) ([]*Event, error) {
	user, err := mdb.GetUserByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return []*Event{}, nil
		}
		return nil, err
	}
	return mdb.resolveEventsByIDs(ctx, user.Favorites)
}

func (mdb *MongodbRepo) resolveEventsByIDs(ctx context.Context, ids []string) ([]*Event, error) {
	if len(ids) == 0 {
		return []*Event{}, nil
	}

	col, err := mdb.GetCollection(ctx, EventsDbName, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	merged := make([]*Event, 0, len(ids))
	for _, chunk := range chunkStrings(ids, MaxMembershipLookup) {
		oids := make([]primitive.ObjectID, 0, len(chunk))
		for _, id := range chunk {
			oid, err := primitive.ObjectIDFromHex(id)
			if err != nil {
				// Skip ids that never were valid documents; since-deleted
				// events fall out of the $in result naturally.
				continue
			}
			oids = append(oids, oid)
		}
		if len(oids) == 0 {
			continue
		}

		cursor, err := col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
		if err != nil {
			return nil, fmt.Errorf("error resolving favorite events: %v", err)
		}
		var events []*Event
		if err := cursor.All(ctx, &events); err != nil {
			return nil, fmt.Errorf("error decoding favorite events: %v", err)
		}
		merged = append(merged, events...)
	}

	SortEventsByDateAsc(merged)
	return merged, nil
}

// SortEventsByDateAsc orders events by date ascending, id as tie-break.
func SortEventsByDateAsc(events []*Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Date.Equal(events[j].Date) {
			return events[i].ID.Hex() < events[j].ID.Hex()
		}
		return events[i].Date.Before(events[j].Date)
	})
}
