package domain

import (
	"time"

	"github.com/google/uuid"
)

// Pick records one random activity selection. Picks are kept as
// history; the Completed flag is set when the countdown for the pick
// runs to the end.
type Pick struct {
	ID        string
	Minutes   int
	Activity  string
	PickedAt  time.Time
	Completed bool
}

// NewPick creates a pick record for the given bucket and activity.
func NewPick(minutes int, activity string) *Pick {
	return &Pick{
		ID:       uuid.NewString(),
		Minutes:  minutes,
		Activity: activity,
		PickedAt: time.Now(),
	}
}
