package models

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	UsersDbName  = DbName
	UsersColName = "users"
)

type User struct {
	ID          string `bson:"_id" json:"id"` // uuid from the identity provider
	Username    string `bson:"username" json:"username" validate:"required"`
	DisplayName string `bson:"display_name" json:"display_name"`
	Bio         string `bson:"bio" json:"bio,omitempty"`
	AvatarURL   string `bson:"avatar_url" json:"avatar_url,omitempty"`
	IsPromoter  bool   `bson:"is_promoter" json:"is_promoter"`
	// Favorites mirrors Event.favorited_by from the other side; the two are
	// kept aligned by paired, unsynchronized writes (see ToggleFavorite).
	Favorites []string  `bson:"favorites" json:"favorites"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type UserRepo interface {
	UpsertUser(ctx context.Context, user *User) (*User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	ListPromoters(ctx context.Context, offset, limit int) ([]*User, error)
	GetFavoriteEvents(ctx context.Context, userID uuid.UUID) ([]*Event, error)
	ToggleFavorite(ctx context.Context, userID uuid.UUID, eventID string) (*Event, error)
	WatchUserFavorites(ctx context.Context, userID uuid.UUID, onSnapshot func([]*Event), onError func(error)) (func(), error)
}

func (mdb *MongodbRepo) UpsertUser(ctx context.Context, user *User) (*User, error) {
	col, err := mdb.GetCollection(ctx, UsersDbName, UsersColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"username":     user.Username,
			"display_name": user.DisplayName,
			"bio":          user.Bio,
			"avatar_url":   user.AvatarURL,
			"is_promoter":  user.IsPromoter,
			"updated_at":   now,
		},
		"$setOnInsert": bson.M{
			"favorites":  []string{},
			"created_at": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var result User
	if err := col.FindOneAndUpdate(ctx, bson.M{"_id": user.ID}, update, opts).Decode(&result); err != nil {
		return nil, fmt.Errorf("error upserting user: %v", err)
	}
	return &result, nil
}

func (mdb *MongodbRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	col, err := mdb.GetCollection(ctx, UsersDbName, UsersColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var user User
	err = col.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("error finding user %s: %v", id, err)
	}
	return &user, nil
}

func (mdb *MongodbRepo) ListPromoters(ctx context.Context, offset, limit int) ([]*User, error) {
	col, err := mdb.GetCollection(ctx, UsersDbName, UsersColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "username", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, bson.M{"is_promoter": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding promoters: %v", err)
	}
	defer cursor.Close(ctx)

	var promoters []*User
	if err := cursor.All(ctx, &promoters); err != nil {
		return nil, fmt.Errorf("error decoding promoters: %v", err)
	}
	return promoters, nil
}
