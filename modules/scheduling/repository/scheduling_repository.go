package repository

import (
	"context"
	"database/sql"

	"hireflow-api/core/database"
	"hireflow-api/core/logger"
	"hireflow-api/modules/scheduling/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// SchedulingRepository handles scheduling database operations.
type SchedulingRepository struct {
	DB database.Database
}

func NewSchedulingRepository(db database.Database) *SchedulingRepository {
	return &SchedulingRepository{DB: db}
}

// SchedulingRepositoryInterface defines the repository contract.
type SchedulingRepositoryInterface interface {
	// CreateSchedule inserts the schedule, its slots and its participants
	// in one transaction; either everything is written or nothing is.
	CreateSchedule(ctx context.Context, schedule *entity.InterviewSchedule, slots []entity.TimeSlot, participants []entity.Participant) error
	GetScheduleByID(ctx context.Context, id uuid.UUID) (*entity.InterviewSchedule, error)
	GetSchedulesByCreatorID(ctx context.Context, creatorID uuid.UUID) ([]entity.InterviewSchedule, error)
	GetSlotsByScheduleID(ctx context.Context, scheduleID uuid.UUID) ([]entity.TimeSlot, error)
	GetParticipantsByScheduleID(ctx context.Context, scheduleID uuid.UUID) ([]entity.Participant, error)
	GetVotesByScheduleID(ctx context.Context, scheduleID uuid.UUID) ([]entity.AvailabilityVote, error)
	GetParticipantByToken(ctx context.Context, token string) (*entity.Participant, error)
	GetVotesByParticipantID(ctx context.Context, participantID uuid.UUID) ([]entity.AvailabilityVote, error)
	// ReplaceParticipantVotes atomically swaps the participant's vote set
	// and marks the participant as having responded.
	ReplaceParticipantVotes(ctx context.Context, participantID uuid.UUID, slotIDs []uuid.UUID) error
	// ConfirmSchedule performs a compare-and-set on status. It returns
	// false when the schedule was no longer collecting.
	ConfirmSchedule(ctx context.Context, scheduleID uuid.UUID, slot *entity.TimeSlot, actorID uuid.UUID) (bool, error)
}

// ===================== Schedules =====================

func (r *SchedulingRepository) CreateSchedule(ctx context.Context, schedule *entity.InterviewSchedule, slots []entity.TimeSlot, participants []entity.Participant) error {
	err := r.DB.WithinTx(ctx, func(tx *sqlx.Tx) error {
		const scheduleQuery = `
			INSERT INTO interview_schedules (application_id, job_id, job_title, creator_id, duration_minutes, timezone, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, updated_at
		`
		if err := tx.QueryRowxContext(ctx, scheduleQuery,
			schedule.ApplicationID, schedule.JobID, schedule.JobTitle, schedule.CreatorID,
			schedule.DurationMinutes, schedule.Timezone, schedule.Status,
		).Scan(&schedule.ID, &schedule.CreatedAt, &schedule.UpdatedAt); err != nil {
			return err
		}

		const slotQuery = `
			INSERT INTO interview_slots (schedule_id, start_time, end_time)
			VALUES ($1, $2, $3)
			RETURNING id, created_at
		`
		for i := range slots {
			slots[i].ScheduleID = schedule.ID
			if err := tx.QueryRowxContext(ctx, slotQuery,
				slots[i].ScheduleID, slots[i].StartTime, slots[i].EndTime,
			).Scan(&slots[i].ID, &slots[i].CreatedAt); err != nil {
				return err
			}
		}

		const participantQuery = `
			INSERT INTO schedule_participants (schedule_id, name, email, timezone, vote_token)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at
		`
		for i := range participants {
			participants[i].ScheduleID = schedule.ID
			if err := tx.QueryRowxContext(ctx, participantQuery,
				participants[i].ScheduleID, participants[i].Name, participants[i].Email,
				participants[i].Timezone, participants[i].VoteToken,
			).Scan(&participants[i].ID, &participants[i].CreatedAt); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		logger.Error("SchedulingRepository:CreateSchedule", err)
		return err
	}
	return nil
}

func (r *SchedulingRepository) GetScheduleByID(ctx context.Context, id uuid.UUID) (*entity.InterviewSchedule, error) {
	const query = `
		SELECT id, application_id, job_id, job_title, creator_id, duration_minutes, timezone, status,
		       confirmed_start, confirmed_end, confirmed_by, confirmed_at, created_at, updated_at
		FROM interview_schedules WHERE id = $1
	`
	var schedule entity.InterviewSchedule
	err := r.DB.GetContext(ctx, &schedule, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("SchedulingRepository:GetScheduleByID", err)
		return nil, err
	}
	return &schedule, nil
}

func (r *SchedulingRepository) GetSchedulesByCreatorID(ctx context.Context, creatorID uuid.UUID) ([]entity.InterviewSchedule, error) {
	const query = `
		SELECT id, application_id, job_id, job_title, creator_id, duration_minutes, timezone, status,
		       confirmed_start, confirmed_end, confirmed_by, confirmed_at, created_at, updated_at
		FROM interview_schedules
		WHERE creator_id = $1
		ORDER BY created_at DESC
	`
	var schedules []entity.InterviewSchedule
	err := r.DB.SelectContext(ctx, &schedules, query, creatorID)
	if err != nil {
		logger.Error("SchedulingRepository:GetSchedulesByCreatorID", err)
		return nil, err
	}
	return schedules, nil
}

// ===================== Slots =====================

func (r *SchedulingRepository) GetSlotsByScheduleID(ctx context.Context, scheduleID uuid.UUID) ([]entity.TimeSlot, error) {
	const query = `
		SELECT id, schedule_id, start_time, end_time, created_at
		FROM interview_slots
		WHERE schedule_id = $1
		ORDER BY created_at, start_time
	`
	var slots []entity.TimeSlot
	err := r.DB.SelectContext(ctx, &slots, query, scheduleID)
	if err != nil {
		logger.Error("SchedulingRepository:GetSlotsByScheduleID", err)
		return nil, err
	}
	return slots, nil
}

// ===================== Participants =====================

func (r *SchedulingRepository) GetParticipantsByScheduleID(ctx context.Context, scheduleID uuid.UUID) ([]entity.Participant, error) {
	const query = `
		SELECT id, schedule_id, name, email, timezone, vote_token, has_responded, responded_at, created_at
		FROM schedule_participants
		WHERE schedule_id = $1
		ORDER BY created_at, id
	`
	var participants []entity.Participant
	err := r.DB.SelectContext(ctx, &participants, query, scheduleID)
	if err != nil {
		logger.Error("SchedulingRepository:GetParticipantsByScheduleID", err)
		return nil, err
	}
	return participants, nil
}

func (r *SchedulingRepository) GetParticipantByToken(ctx context.Context, token string) (*entity.Participant, error) {
	const query = `
		SELECT id, schedule_id, name, email, timezone, vote_token, has_responded, responded_at, created_at
		FROM schedule_participants
		WHERE vote_token = $1
	`
	var participant entity.Participant
	err := r.DB.GetContext(ctx, &participant, query, token)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("SchedulingRepository:GetParticipantByToken", err)
		return nil, err
	}
	return &participant, nil
}

// ===================== Votes =====================

func (r *SchedulingRepository) GetVotesByScheduleID(ctx context.Context, scheduleID uuid.UUID) ([]entity.AvailabilityVote, error) {
	const query = `
		SELECT v.id, v.participant_id, v.slot_id, v.created_at
		FROM availability_votes v
		JOIN schedule_participants p ON p.id = v.participant_id
		WHERE p.schedule_id = $1
	`
	var votes []entity.AvailabilityVote
	err := r.DB.SelectContext(ctx, &votes, query, scheduleID)
	if err != nil {
		logger.Error("SchedulingRepository:GetVotesByScheduleID", err)
		return nil, err
	}
	return votes, nil
}

func (r *SchedulingRepository) GetVotesByParticipantID(ctx context.Context, participantID uuid.UUID) ([]entity.AvailabilityVote, error) {
	const query = `
		SELECT id, participant_id, slot_id, created_at
		FROM availability_votes
		WHERE participant_id = $1
	`
	var votes []entity.AvailabilityVote
	err := r.DB.SelectContext(ctx, &votes, query, participantID)
	if err != nil {
		logger.Error("SchedulingRepository:GetVotesByParticipantID", err)
		return nil, err
	}
	return votes, nil
}

func (r *SchedulingRepository) ReplaceParticipantVotes(ctx context.Context, participantID uuid.UUID, slotIDs []uuid.UUID) error {
	err := r.DB.WithinTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM availability_votes WHERE participant_id = $1`, participantID); err != nil {
			return err
		}

		const insertQuery = `INSERT INTO availability_votes (participant_id, slot_id) VALUES ($1, $2)`
		for _, slotID := range slotIDs {
			if _, err := tx.ExecContext(ctx, insertQuery, participantID, slotID); err != nil {
				return err
			}
		}

		_, err := tx.ExecContext(ctx,
			`UPDATE schedule_participants SET has_responded = TRUE, responded_at = NOW() WHERE id = $1`,
			participantID)
		return err
	})
	if err != nil {
		logger.Error("SchedulingRepository:ReplaceParticipantVotes", err)
		return err
	}
	return nil
}

// ===================== Confirmation =====================

func (r *SchedulingRepository) ConfirmSchedule(ctx context.Context, scheduleID uuid.UUID, slot *entity.TimeSlot, actorID uuid.UUID) (bool, error) {
	const query = `
		UPDATE interview_schedules
		SET status = $2, confirmed_start = $3, confirmed_end = $4, confirmed_by = $5,
		    confirmed_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = $6
		RETURNING id
	`
	var confirmed uuid.UUID
	err := r.DB.QueryRowContext(ctx, query,
		scheduleID, entity.ScheduleStatusScheduled, slot.StartTime, slot.EndTime, actorID,
		entity.ScheduleStatusCollecting,
	).Scan(&confirmed)
	if err != nil {
		if err == sql.ErrNoRows {
			// Lost the race: some other confirm got there first.
			return false, nil
		}
		logger.Error("SchedulingRepository:ConfirmSchedule", err)
		return false, err
	}
	return true, nil
}
