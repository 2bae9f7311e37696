package entity

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleStatus represents the lifecycle state of a scheduling attempt.
type ScheduleStatus string

const (
	// ScheduleStatusCollecting means participant availability is still
	// being gathered.
	ScheduleStatusCollecting ScheduleStatus = "collecting"
	// ScheduleStatusScheduled is terminal; a slot has been confirmed.
	ScheduleStatusScheduled ScheduleStatus = "scheduled"
)

// InterviewSchedule is one interview-scheduling attempt for a given
// application and job. Confirmed start/end are set together, only by slot
// confirmation, and always coincide with one of the schedule's own slots.
type InterviewSchedule struct {
	ID              uuid.UUID      `db:"id" json:"id"`
	ApplicationID   uuid.UUID      `db:"application_id" json:"application_id"`
	JobID           uuid.UUID      `db:"job_id" json:"job_id"`
	JobTitle        string         `db:"job_title" json:"job_title"`
	CreatorID       uuid.UUID      `db:"creator_id" json:"creator_id"`
	DurationMinutes int            `db:"duration_minutes" json:"duration_minutes"`
	Timezone        string         `db:"timezone" json:"timezone"`
	Status          ScheduleStatus `db:"status" json:"status"`
	ConfirmedStart  *time.Time     `db:"confirmed_start" json:"confirmed_start,omitempty"`
	ConfirmedEnd    *time.Time     `db:"confirmed_end" json:"confirmed_end,omitempty"`
	ConfirmedBy     *uuid.UUID     `db:"confirmed_by" json:"confirmed_by,omitempty"`
	ConfirmedAt     *time.Time     `db:"confirmed_at" json:"confirmed_at,omitempty"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`
}
