package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	PhotosDbName  = DbName
	PhotosColName = "photos"
)

type Photo struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID    string             `bson:"event_id" json:"event_id" validate:"required"`
	PromoterID string             `bson:"promoter_id" json:"promoter_id" validate:"required"`
	URL        string             `bson:"url" json:"url" validate:"required"`
	// PublicID addresses the hosted binary. Deleting the photo document
	// does not delete the binary; callers make that call separately.
	PublicID   string    `bson:"public_id" json:"public_id"`
	Caption    string    `bson:"caption" json:"caption,omitempty"`
	Hashtags   []string  `bson:"hashtags" json:"hashtags"`
	UploadedAt time.Time `bson:"uploaded_at" json:"uploaded_at"`
}

type PhotoRepo interface {
	CreatePhoto(ctx context.Context, photo *Photo) (*Photo, error)
	ListPhotosByEvent(ctx context.Context, eventID string, limit int) ([]*Photo, error)
	DeletePhotosBatch(ctx context.Context, ids []string) (*BatchResult, error)
}

func (mdb *MongodbRepo) CreatePhoto(ctx context.Context, photo *Photo) (*Photo, error) {
	col, err := mdb.GetCollection(ctx, PhotosDbName, PhotosColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	if photo.ID.IsZero() {
		photo.ID = primitive.NewObjectID()
	}
	for i, tag := range photo.Hashtags {
		photo.Hashtags[i] = NormalizeHashtag(tag)
	}
	photo.UploadedAt = time.Now()

	if _, err := col.InsertOne(ctx, photo); err != nil {
		return nil, fmt.Errorf("error inserting photo: %v", err)
	}
	return photo, nil
}

func (mdb *MongodbRepo) ListPhotosByEvent(ctx context.Context, eventID string, limit int) ([]*Photo, error) {
	col, err := mdb.GetCollection(ctx, PhotosDbName, PhotosColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "uploaded_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, bson.M{"event_id": eventID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding photos: %v", err)
	}
	defer cursor.Close(ctx)

	var photos []*Photo
	if err := cursor.All(ctx, &photos); err != nil {
		return nil, fmt.Errorf("error decoding photos: %v", err)
	}
	return photos, nil
}

// DeletePhotosBatch removes photo documents only. Hosted binaries are left
// untouched; blob cleanup is the caller's separate concern.
func (mdb *MongodbRepo) DeletePhotosBatch(ctx context.Context, ids []string) (*BatchResult, error) {
	col, err := mdb.GetCollection(ctx, PhotosDbName, PhotosColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}
	return DeleteByIDs(ctx, col, ids)
}
