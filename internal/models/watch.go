package models

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// snapshotGuard serializes callback delivery and makes cancellation final:
// once closed, no callback fires again even if a change was in flight.
type snapshotGuard struct {
	mu     sync.Mutex
	closed bool
}

func (g *snapshotGuard) deliver(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}
	fn()
}

func (g *snapshotGuard) close() {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()
}

// WatchEvents registers a long-lived listener over the composed query. The
// callback fires synchronously with the initial snapshot before WatchEvents
// returns, then again with the full current result set (never a diff) on
// every change to the events collection. The in-memory price filter is
// reapplied on every snapshot. Post-registration failures go to onError;
// nothing is thrown past registration. The returned cancel func stops the
// stream and guarantees no further callback invocations.
func (mdb *MongodbRepo) WatchEvents(ctx context.Context, opts EventQueryOptions, onSnapshot func([]*Event), onError func(error)) (func(), error) {
	col, err := mdb.GetCollection(ctx, EventsDbName, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	// Each change re-runs the full query; cursors don't resume mid-watch.
	opts.Cursor = ""

	stream, err := col.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, fmt.Errorf("error opening change stream: %v", err)
	}

	streamCtx, cancelStream := context.WithCancel(ctx)
	guard := &snapshotGuard{}

	runQuery := func() {
		page, err := mdb.ListEvents(streamCtx, opts)
		if err != nil {
			guard.deliver(func() { onError(err) })
			return
		}
		guard.deliver(func() { onSnapshot(page.Events) })
	}

	// Initial snapshot is delivered synchronously.
	runQuery()

	go func() {
		defer stream.Close(context.Background())
		for stream.Next(streamCtx) {
			runQuery()
		}
		if err := stream.Err(); err != nil && streamCtx.Err() == nil {
			guard.deliver(func() { onError(fmt.Errorf("change stream error: %v", err)) })
		}
	}()

	cancel := func() {
		guard.close()
		cancelStream()
	}
	return cancel, nil
}

// WatchUserFavorites watches a single user's favorites list. On the initial
// snapshot and on every change it re-resolves the full favorited event set
// by id (chunked to the store's membership-query limit, merged, date
// ascending) and delivers it. A user with zero favorites, or no user
// document at all, gets an empty list rather than an error.
func (mdb *MongodbRepo) WatchUserFavorites(ctx context.Context, userID uuid.UUID, onSnapshot func([]*Event), onError func(error)) (func(), error) {
	col, err := mdb.GetCollection(ctx, UsersDbName, UsersColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"documentKey._id": userID.String()}}},
	}
	stream, err := col.Watch(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error opening change stream: %v", err)
	}

	streamCtx, cancelStream := context.WithCancel(ctx)
	guard := &snapshotGuard{}

	resolve := func() {
		events, err := mdb.GetFavoriteEvents(streamCtx, userID)
		if err != nil {
			guard.deliver(func() { onError(err) })
			return
		}
		guard.deliver(func() { onSnapshot(events) })
	}

	resolve()

	go func() {
		defer stream.Close(context.Background())
		for stream.Next(streamCtx) {
			resolve()
		}
		if err := stream.Err(); err != nil && streamCtx.Err() == nil {
			guard.deliver(func() { onError(fmt.Errorf("change stream error: %v", err)) })
		}
	}()

	cancel := func() {
		guard.close()
		cancelStream()
	}
	return cancel, nil
}
