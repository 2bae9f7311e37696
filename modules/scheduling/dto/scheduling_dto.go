package dto

import (
	"time"

	"hireflow-api/modules/scheduling/entity"
)

// ===================== Request DTOs =====================

// TimeRangeDTO is a recruiter-supplied candidate time range.
type TimeRangeDTO struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ParticipantInput describes one interviewer to invite.
type ParticipantInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Timezone string `json:"timezone"`
}

// CreateScheduleRequest creates a new scheduling attempt.
type CreateScheduleRequest struct {
	ApplicationID   string             `json:"application_id" validate:"required"`
	JobID           string             `json:"job_id" validate:"required"`
	JobTitle        string             `json:"job_title" validate:"required"`
	DurationMinutes int                `json:"duration_minutes" validate:"required,min=1"`
	Timezone        string             `json:"timezone"`
	Ranges          []TimeRangeDTO     `json:"ranges" validate:"required,min=1"`
	Participants    []ParticipantInput `json:"participants" validate:"required,min=1"`
}

// SubmitAvailabilityRequest replaces a participant's vote set with the
// given slots.
type SubmitAvailabilityRequest struct {
	SlotIDs []string `json:"slot_ids"`
}

// ConfirmSlotRequest locks the schedule to one slot.
type ConfirmSlotRequest struct {
	SlotID string `json:"slot_id" validate:"required"`
}

// ===================== Response DTOs =====================

type ScheduleResponse struct {
	ID              string     `json:"id"`
	ApplicationID   string     `json:"application_id"`
	JobID           string     `json:"job_id"`
	JobTitle        string     `json:"job_title"`
	CreatorID       string     `json:"creator_id"`
	DurationMinutes int        `json:"duration_minutes"`
	Timezone        string     `json:"timezone"`
	Status          string     `json:"status"`
	ConfirmedStart  *time.Time `json:"confirmed_start,omitempty"`
	ConfirmedEnd    *time.Time `json:"confirmed_end,omitempty"`
	ConfirmedBy     string     `json:"confirmed_by,omitempty"`
	ConfirmedAt     *time.Time `json:"confirmed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type SlotResponse struct {
	ID        string    `json:"id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type RankedSlotResponse struct {
	SlotResponse
	VoteCount    int      `json:"vote_count"`
	Voters       []string `json:"voters"`
	PerfectMatch bool     `json:"perfect_match"`
}

type ParticipantResponse struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Timezone     string     `json:"timezone"`
	HasResponded bool       `json:"has_responded"`
	RespondedAt  *time.Time `json:"responded_at,omitempty"`
}

// ResponseSummary aggregates the current tally for a schedule.
type ResponseSummary struct {
	TotalParticipants int                 `json:"total_participants"`
	RespondedCount    int                 `json:"responded_count"`
	PerfectMatchCount int                 `json:"perfect_match_count"`
	BestMatch         *RankedSlotResponse `json:"best_match,omitempty"`
}

// ScheduleDetailResponse is the recruiter-facing read view: schedule,
// ranked slots, and participants, tallied from current votes.
type ScheduleDetailResponse struct {
	Schedule     ScheduleResponse      `json:"schedule"`
	Slots        []RankedSlotResponse  `json:"slots"`
	Participants []ParticipantResponse `json:"participants"`
	Summary      ResponseSummary       `json:"summary"`
}

// ScheduleListItem is one row of the recruiter's schedule list.
type ScheduleListItem struct {
	ScheduleResponse
	TotalParticipants int `json:"total_participants"`
	RespondedCount    int `json:"responded_count"`
}

// VotingPageResponse is the public payload returned for a vote token.
type VotingPageResponse struct {
	ParticipantName string         `json:"participant_name"`
	HasResponded    bool           `json:"has_responded"`
	JobTitle        string         `json:"job_title"`
	DurationMinutes int            `json:"duration_minutes"`
	Timezone        string         `json:"timezone"`
	Status          string         `json:"status"`
	Slots           []SlotResponse `json:"slots"`
	SelectedSlotIDs []string       `json:"selected_slot_ids"`
}

// ===================== Mapper Functions =====================

func ToScheduleResponse(s *entity.InterviewSchedule) ScheduleResponse {
	resp := ScheduleResponse{
		ID:              s.ID.String(),
		ApplicationID:   s.ApplicationID.String(),
		JobID:           s.JobID.String(),
		JobTitle:        s.JobTitle,
		CreatorID:       s.CreatorID.String(),
		DurationMinutes: s.DurationMinutes,
		Timezone:        s.Timezone,
		Status:          string(s.Status),
		ConfirmedStart:  s.ConfirmedStart,
		ConfirmedEnd:    s.ConfirmedEnd,
		ConfirmedAt:     s.ConfirmedAt,
		CreatedAt:       s.CreatedAt,
	}
	if s.ConfirmedBy != nil {
		resp.ConfirmedBy = s.ConfirmedBy.String()
	}
	return resp
}

func ToSlotResponse(s *entity.TimeSlot) SlotResponse {
	return SlotResponse{
		ID:        s.ID.String(),
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
	}
}

func ToRankedSlotResponse(rs *entity.RankedSlot) RankedSlotResponse {
	voters := rs.Voters
	if voters == nil {
		voters = []string{}
	}
	return RankedSlotResponse{
		SlotResponse: ToSlotResponse(&rs.Slot),
		VoteCount:    rs.VoteCount,
		Voters:       voters,
		PerfectMatch: rs.PerfectMatch,
	}
}

func ToParticipantResponse(p *entity.Participant) ParticipantResponse {
	return ParticipantResponse{
		ID:           p.ID.String(),
		Name:         p.Name,
		Email:        p.Email,
		Timezone:     p.Timezone,
		HasResponded: p.HasResponded,
		RespondedAt:  p.RespondedAt,
	}
}
