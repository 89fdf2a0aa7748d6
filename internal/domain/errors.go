package domain

import (
	"errors"
	"fmt"
)

// Validation errors for bucket and activity mutations. They are surfaced
// to the user as rejection messages; none of them leaves a partial
// mutation behind.
var (
	// ErrBucketRange is returned when a duration is outside [1, 999] minutes.
	ErrBucketRange = errors.New("duration must be between 1 and 999 minutes")

	// ErrBucketExists is returned when adding a duration that is already present.
	ErrBucketExists = errors.New("a bucket with this duration already exists")

	// ErrBucketNotFound is returned when the named duration has no bucket.
	ErrBucketNotFound = errors.New("no bucket for this duration")

	// ErrLastBucket is returned when deleting the only remaining bucket.
	ErrLastBucket = errors.New("cannot delete the last bucket")

	// ErrLastActivity is returned when deleting the only activity in a bucket.
	ErrLastActivity = errors.New("cannot delete the last activity in a bucket")

	// ErrActivityIndex is returned when an activity index is out of range.
	ErrActivityIndex = errors.New("activity index out of range")

	// ErrEmptyBucket is returned when picking from a bucket with no activities.
	ErrEmptyBucket = errors.New("bucket has no activities")

	// ErrPickNotFound is returned when a pick record does not exist.
	ErrPickNotFound = errors.New("pick not found")
)

// FormatError reports import text that could not be parsed at all.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("import text is not valid JSON: %v", e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// SchemaError reports import text that parsed but does not have the
// expected bucket shape.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("import data has the wrong shape: %s", e.Reason)
}
