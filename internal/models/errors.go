package models

import (
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when a single-document lookup misses. Callers get
// it wrapped with document context; there is no retry.
var ErrNotFound = errors.New("document not found")

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// MissingIndexError is raised when the store refuses a filter+sort
// combination that needs a composite index it doesn't have. It names the
// fields so the operator knows what to create instead of getting a generic
// failure.
type MissingIndexError struct {
	Collection string
	Fields     []string
	Err        error
}

func (e *MissingIndexError) Error() string {
	return fmt.Sprintf("query on %q requires a composite index on (%s): %v",
		e.Collection, strings.Join(e.Fields, ", "), e.Err)
}

func (e *MissingIndexError) Unwrap() error {
	return e.Err
}

// Server codes seen when a filter+sort combination can't run without an
// index: 291 NoQueryExecutionPlans, 292 sort exceeded memory and no index
// could back it.
func isMissingIndexErr(err error) bool {
	if err == nil {
		return false
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		if cmdErr.Code == 291 || cmdErr.Code == 292 {
			return true
		}
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "no query solutions") || strings.Contains(msg, "add an index")
}

// wrapQueryErr maps a fetch failure to the error taxonomy: missing-index
// errors get actionable guidance, everything else passes through once with
// the original message preserved.
func wrapQueryErr(err error, collection string, indexFields []string) error {
	if isMissingIndexErr(err) {
		return &MissingIndexError{Collection: collection, Fields: indexFields, Err: err}
	}
	return fmt.Errorf("error querying %s: %v", collection, err)
}
