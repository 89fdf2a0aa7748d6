// Package domain holds the core types of Spur: the activity bucket
// mapping, the countdown timer state machine, and pick records.
package domain

import (
	"sort"
)

const (
	// MinDuration is the smallest bucket duration accepted interactively.
	MinDuration = 1

	// MaxDuration is the largest bucket duration accepted interactively.
	MaxDuration = 999

	// PlaceholderLabel is the label given to freshly created activities.
	PlaceholderLabel = "New activity"
)

// Buckets maps a duration in minutes to an ordered list of activity
// labels. Slice order is meaningful: it is the row order of the edit
// view. The mapping always holds at least one bucket, and every bucket
// always holds at least one activity.
type Buckets map[int][]string

// DefaultBuckets returns the built-in activity set. Its keys are also
// the required keys for import validation.
func DefaultBuckets() Buckets {
	return Buckets{
		1:  {"Stretch", "Take five deep breaths", "Look out the window"},
		5:  {"Make a coffee", "Doodle something", "Tidy your desk"},
		10: {"Take a short walk", "Write in your journal", "Call a friend"},
		20: {"Read a chapter", "Do a quick workout", "Cook a snack"},
		40: {"Go for a run", "Watch a documentary", "Work on a hobby project"},
	}
}

// RequiredKeys are the bucket durations that must be present in any
// imported data set. They match the built-in defaults.
func RequiredKeys() []int {
	return []int{1, 5, 10, 20, 40}
}

// Keys returns the bucket durations sorted ascending numerically. This
// is the display order of the duration-selection list.
func (b Buckets) Keys() []int {
	keys := make([]int, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Clone returns a deep copy of the mapping.
func (b Buckets) Clone() Buckets {
	out := make(Buckets, len(b))
	for k, v := range b {
		labels := make([]string, len(v))
		copy(labels, v)
		out[k] = labels
	}
	return out
}

// AddBucket inserts a new bucket holding one placeholder activity.
// The duration must be in [MinDuration, MaxDuration] and not already
// present.
func (b Buckets) AddBucket(minutes int) error {
	if minutes < MinDuration || minutes > MaxDuration {
		return ErrBucketRange
	}
	if _, ok := b[minutes]; ok {
		return ErrBucketExists
	}
	b[minutes] = []string{PlaceholderLabel}
	return nil
}

// DeleteBucket removes a bucket and all its activities. The last
// remaining bucket cannot be deleted. Callers are responsible for
// confirming the deletion with the user first.
func (b Buckets) DeleteBucket(minutes int) error {
	if _, ok := b[minutes]; !ok {
		return ErrBucketNotFound
	}
	if len(b) == 1 {
		return ErrLastBucket
	}
	delete(b, minutes)
	return nil
}

// AddActivity appends a placeholder activity to the named bucket.
func (b Buckets) AddActivity(minutes int) error {
	return b.AddActivityLabel(minutes, PlaceholderLabel)
}

// AddActivityLabel appends an activity with the given label to the
// named bucket.
func (b Buckets) AddActivityLabel(minutes int, label string) error {
	if _, ok := b[minutes]; !ok {
		return ErrBucketNotFound
	}
	b[minutes] = append(b[minutes], label)
	return nil
}

// UpdateActivity replaces the label at index. An out-of-range index is
// ignored rather than rejected.
func (b Buckets) UpdateActivity(minutes, index int, label string) {
	activities, ok := b[minutes]
	if !ok || index < 0 || index >= len(activities) {
		return
	}
	activities[index] = label
}

// DeleteActivity removes the activity at index. The last activity in a
// bucket cannot be deleted.
func (b Buckets) DeleteActivity(minutes, index int) error {
	activities, ok := b[minutes]
	if !ok {
		return ErrBucketNotFound
	}
	if index < 0 || index >= len(activities) {
		return ErrActivityIndex
	}
	if len(activities) == 1 {
		return ErrLastActivity
	}
	b[minutes] = append(activities[:index], activities[index+1:]...)
	return nil
}

// Equal reports whether two mappings hold the same buckets with the
// same activities in the same order.
func (b Buckets) Equal(other Buckets) bool {
	if len(b) != len(other) {
		return false
	}
	for k, v := range b {
		ov, ok := other[k]
		if !ok || len(v) != len(ov) {
			return false
		}
		for i := range v {
			if v[i] != ov[i] {
				return false
			}
		}
	}
	return true
}
