package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	HashtagsDbName  = DbName
	HashtagsColName = "hashtags"
)

// Hashtag tracks tag usage across events and photos. Tags are created
// implicitly the first time something references them and are never deleted
// in normal operation.
type Hashtag struct {
	Name       string    `bson:"_id" json:"name"` // lowercase, no leading '#'
	UsageCount int       `bson:"usage_count" json:"usage_count"`
	LastUsedAt time.Time `bson:"last_used_at" json:"last_used_at"`
	Trending   bool      `bson:"trending,omitempty" json:"trending,omitempty"`
}

type HashtagRepo interface {
	TouchHashtags(ctx context.Context, tags []string) error
	ListTrendingHashtags(ctx context.Context, limit int) ([]*Hashtag, error)
}

// TouchHashtags upserts each tag, bumping its usage count and last-used
// timestamp. Tags are normalized before writing.
func (mdb *MongodbRepo) TouchHashtags(ctx context.Context, tags []string) error {
	if len(tags) == 0 {
		return nil
	}

	col, err := mdb.GetCollection(ctx, HashtagsDbName, HashtagsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	now := time.Now()
	opts := options.Update().SetUpsert(true)
	for _, tag := range tags {
		name := NormalizeHashtag(tag)
		if name == "" {
			continue
		}
		update := bson.M{
			"$inc": bson.M{"usage_count": 1},
			"$set": bson.M{"last_used_at": now},
		}
		if _, err := col.UpdateOne(ctx, bson.M{"_id": name}, update, opts); err != nil {
			return fmt.Errorf("error touching hashtag %q: %v", name, err)
		}
	}
	return nil
}

func (mdb *MongodbRepo) ListTrendingHashtags(ctx context.Context, limit int) ([]*Hashtag, error) {
	col, err := mdb.GetCollection(ctx, HashtagsDbName, HashtagsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.Find().
		SetSort(bson.D{
			{Key: "usage_count", Value: -1},
			{Key: "last_used_at", Value: -1},
		}).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding hashtags: %v", err)
	}
	defer cursor.Close(ctx)

	var hashtags []*Hashtag
	if err := cursor.All(ctx, &hashtags); err != nil {
		return nil, fmt.Errorf("error decoding hashtags: %v", err)
	}
	return hashtags, nil
}
