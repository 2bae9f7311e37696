package entity

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityVote records that a participant is free during a slot.
// At most one vote exists per (participant, slot) pair; a participant's
// whole vote set is replaced atomically on every submission.
type AvailabilityVote struct {
	ID            uuid.UUID `db:"id" json:"id"`
	ParticipantID uuid.UUID `db:"participant_id" json:"participant_id"`
	SlotID        uuid.UUID `db:"slot_id" json:"slot_id"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
