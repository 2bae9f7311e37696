package entity

import (
	"time"

	"github.com/google/uuid"
)

// TimeSlot is one discrete, bookable interval belonging to a schedule.
// The slot set of a schedule is written once at creation and never edited.
type TimeSlot struct {
	ID         uuid.UUID `db:"id" json:"id"`
	ScheduleID uuid.UUID `db:"schedule_id" json:"schedule_id"`
	StartTime  time.Time `db:"start_time" json:"start_time"`
	EndTime    time.Time `db:"end_time" json:"end_time"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// TimeRange is a plain interval, used as slot generator input and output.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// RankedSlot is a TimeSlot annotated with its current availability tally.
// Derived on read, never persisted.
type RankedSlot struct {
	Slot         TimeSlot `json:"slot"`
	VoteCount    int      `json:"vote_count"`
	Voters       []string `json:"voters"`
	PerfectMatch bool     `json:"perfect_match"`
}
