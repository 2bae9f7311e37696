package entity

import (
	"time"

	"github.com/google/uuid"
)

// Participant is a person whose availability is solicited for one schedule.
// Participants are identified by email and name, not by a user account; the
// vote token is their only credential.
type Participant struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	ScheduleID   uuid.UUID  `db:"schedule_id" json:"schedule_id"`
	Name         string     `db:"name" json:"name"`
	Email        string     `db:"email" json:"email"`
	Timezone     string     `db:"timezone" json:"timezone"`
	VoteToken    string     `db:"vote_token" json:"-"`
	HasResponded bool       `db:"has_responded" json:"has_responded"`
	RespondedAt  *time.Time `db:"responded_at" json:"responded_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// ParticipantWithVotes pairs a participant with their current vote set.
type ParticipantWithVotes struct {
	Participant
	Votes []AvailabilityVote
}
