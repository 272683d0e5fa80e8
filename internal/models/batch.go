package models

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MaxBatchSize is the store's atomic multi-delete ceiling.
const MaxBatchSize = 500

type BatchError struct {
	ChunkStart int    `json:"chunk_start"`
	ChunkEnd   int    `json:"chunk_end"` // exclusive
	Message    string `json:"message"`
}

// BatchResult reports per-chunk outcomes. Chunk failures are returned as
// data, never as an error, so callers decide remediation.
type BatchResult struct {
	SuccessCount   int          `json:"success_count"`
	TotalAttempted int          `json:"total_attempted"`
	Errors         []BatchError `json:"errors"`
	Success        bool         `json:"success"`
}

// chunkStrings partitions ids into slices of at most size elements,
// preserving order.
func chunkStrings(ids []string, size int) [][]string {
	var chunks [][]string
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}

// DeleteByIDs removes the documents with the given ids, one atomic
// multi-delete per chunk of at most MaxBatchSize. A failed chunk is recorded
// with its index range and does not abort the remaining chunks. Ids that
// don't parse as ObjectIDs fail their whole chunk up front, consistent with
// the all-or-nothing semantics of a chunk.
func DeleteByIDs(ctx context.Context, col *mongo.Collection, ids []string) (*BatchResult, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("ids list cannot be empty")
	}

	result := &BatchResult{TotalAttempted: len(ids)}
	for i, chunk := range chunkStrings(ids, MaxBatchSize) {
		start := i * MaxBatchSize
		end := start + len(chunk)

		oids := make([]primitive.ObjectID, 0, len(chunk))
		var parseErr error
		for _, id := range chunk {
			oid, err := primitive.ObjectIDFromHex(id)
			if err != nil {
				parseErr = fmt.Errorf("invalid ID %q: %v", id, err)
				break
			}
			oids = append(oids, oid)
		}
		if parseErr != nil {
			result.Errors = append(result.Errors, BatchError{
				ChunkStart: start,
				ChunkEnd:   end,
				Message:    parseErr.Error(),
			})
			continue
		}

		if _, err := col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": oids}}); err != nil {
			result.Errors = append(result.Errors, BatchError{
				ChunkStart: start,
				ChunkEnd:   end,
				Message:    err.Error(),
			})
			continue
		}
		result.SuccessCount += len(chunk)
	}

	result.Success = len(result.Errors) == 0
	return result, nil
}
