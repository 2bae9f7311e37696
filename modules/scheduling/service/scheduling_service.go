package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hireflow-api/core/cache"
	"hireflow-api/core/config"
	"hireflow-api/core/constants"
	"hireflow-api/core/errors"
	"hireflow-api/core/logger"
	"hireflow-api/core/utils"
	"hireflow-api/modules/mailer"
	notifdto "hireflow-api/modules/notification/dto"
	"hireflow-api/modules/scheduling/dto"
	"hireflow-api/modules/scheduling/entity"
	"hireflow-api/modules/scheduling/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// Notifier creates in-app notifications for recruiters.
type Notifier interface {
	Create(ctx context.Context, req *notifdto.CreateNotificationRequest) error
}

// SchedulingService orchestrates the scheduling lifecycle: create a request,
// collect availability votes, and confirm one slot.
type SchedulingService struct {
	repo      repository.SchedulingRepositoryInterface
	generator *SlotGenerator
	enqueuer  mailer.Enqueuer
	notifier  Notifier
	cache     cache.Cache
}

// SchedulingServiceInterface defines the service contract.
type SchedulingServiceInterface interface {
	CreateSchedule(ctx context.Context, creatorID uuid.UUID, req *dto.CreateScheduleRequest) (*dto.ScheduleDetailResponse, *errors.AppError)
	GetMySchedules(ctx context.Context, creatorID uuid.UUID) ([]dto.ScheduleListItem, *errors.AppError)
	GetScheduleDetail(ctx context.Context, scheduleID uuid.UUID, requesterID uuid.UUID) (*dto.ScheduleDetailResponse, *errors.AppError)
	ConfirmSlot(ctx context.Context, scheduleID uuid.UUID, actorID uuid.UUID, req *dto.ConfirmSlotRequest) (*dto.ScheduleDetailResponse, *errors.AppError)
	GetVotingPage(ctx context.Context, token string) (*dto.VotingPageResponse, *errors.AppError)
	SubmitAvailability(ctx context.Context, token string, req *dto.SubmitAvailabilityRequest) (*dto.VotingPageResponse, *errors.AppError)
}

func NewSchedulingService(repo repository.SchedulingRepositoryInterface, enqueuer mailer.Enqueuer, notifier Notifier, c cache.Cache) SchedulingServiceInterface {
	return &SchedulingService{
		repo:      repo,
		generator: NewSlotGenerator(),
		enqueuer:  enqueuer,
		notifier:  notifier,
		cache:     c,
	}
}

// ===================== Create =====================

// CreateSchedule validates the request, generates slots over the supplied
// ranges, persists schedule, slots and participants in one transaction, and
// then sends each participant a voting invite. Invite delivery is
// best-effort and never fails the creation.
func (s *SchedulingService) CreateSchedule(ctx context.Context, creatorID uuid.UUID, req *dto.CreateScheduleRequest) (*dto.ScheduleDetailResponse, *errors.AppError) {
	applicationID, jobID, appErr := s.validateCreateRequest(req)
	if appErr != nil {
		return nil, appErr
	}

	ranges := make([]entity.TimeRange, 0, len(req.Ranges))
	for _, r := range req.Ranges {
		ranges = append(ranges, entity.TimeRange{Start: r.Start, End: r.End})
	}

	generated := s.generator.Generate(ranges, req.DurationMinutes)
	if len(generated) == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Supplied time ranges fit no slot of the requested duration", nil)
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	schedule := &entity.InterviewSchedule{
		ApplicationID:   applicationID,
		JobID:           jobID,
		JobTitle:        req.JobTitle,
		CreatorID:       creatorID,
		DurationMinutes: req.DurationMinutes,
		Timezone:        timezone,
		Status:          entity.ScheduleStatusCollecting,
	}

	slots := make([]entity.TimeSlot, 0, len(generated))
	for _, g := range generated {
		slots = append(slots, entity.TimeSlot{StartTime: g.Start, EndTime: g.End})
	}

	participants := make([]entity.Participant, 0, len(req.Participants))
	for _, p := range req.Participants {
		token, err := utils.GenerateVoteToken()
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to generate vote token", err)
		}
		tz := p.Timezone
		if tz == "" {
			tz = timezone
		}
		participants = append(participants, entity.Participant{
			Name:      p.Name,
			Email:     p.Email,
			Timezone:  tz,
			VoteToken: token,
		})
	}

	if err := s.repo.CreateSchedule(ctx, schedule, slots, participants); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create schedule", err)
	}

	s.enqueueInvites(ctx, schedule, participants)

	withVotes := make([]entity.ParticipantWithVotes, 0, len(participants))
	for _, p := range participants {
		withVotes = append(withVotes, entity.ParticipantWithVotes{Participant: p})
	}

	resp := s.buildDetailResponse(schedule, slots, withVotes)
	return resp, nil
}

func (s *SchedulingService) validateCreateRequest(req *dto.CreateScheduleRequest) (uuid.UUID, uuid.UUID, *errors.AppError) {
	if req.DurationMinutes <= 0 {
		return uuid.Nil, uuid.Nil, errors.NewAppError(errors.ErrInvalidInput, "Duration must be a positive number of minutes", nil)
	}
	if len(req.Ranges) == 0 {
		return uuid.Nil, uuid.Nil, errors.NewAppError(errors.ErrInvalidInput, "At least one time range is required", nil)
	}
	if len(req.Participants) == 0 {
		return uuid.Nil, uuid.Nil, errors.NewAppError(errors.ErrInvalidInput, "At least one participant is required", nil)
	}
	if req.JobTitle == "" {
		return uuid.Nil, uuid.Nil, errors.NewAppError(errors.ErrInvalidInput, "Job title is required", nil)
	}
	for _, p := range req.Participants {
		if p.Name == "" || p.Email == "" {
			return uuid.Nil, uuid.Nil, errors.NewAppError(errors.ErrInvalidInput, "Each participant needs a name and an email", nil)
		}
	}

	applicationID, err := uuid.Parse(req.ApplicationID)
	if err != nil {
		return uuid.Nil, uuid.Nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid application ID", err)
	}
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return uuid.Nil, uuid.Nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid job ID", err)
	}
	return applicationID, jobID, nil
}

// enqueueInvites schedules one invite mail task per participant. Enqueues
// are staggered to throttle the mail provider; a failed enqueue is logged
// and the rest proceed.
func (s *SchedulingService) enqueueInvites(ctx context.Context, schedule *entity.InterviewSchedule, participants []entity.Participant) {
	for i, p := range participants {
		payload := mailer.ParticipantInvitePayload{
			ParticipantName:  p.Name,
			ParticipantEmail: p.Email,
			JobTitle:         schedule.JobTitle,
			DurationMinutes:  schedule.DurationMinutes,
			Timezone:         p.Timezone,
			VotingLink:       s.votingLink(schedule.JobTitle, p.VoteToken),
		}
		delay := time.Duration(i) * constants.MailEnqueueStagger
		if err := s.enqueuer.EnqueueParticipantInvite(ctx, payload, delay); err != nil {
			logger.Error("SchedulingService:CreateSchedule:EnqueueInvite",
				"error", err, "schedule_id", schedule.ID.String(), "participant", p.Email)
		}
	}
}

func (s *SchedulingService) votingLink(jobTitle, token string) string {
	base := "http://localhost:3000"
	if cfg, ok := config.GetSafe(); ok {
		base = cfg.Server.PublicBaseURL
	}
	return fmt.Sprintf("%s/vote/%s/%s", base, slug.Make(jobTitle), token)
}

// ===================== Recruiter reads =====================

func (s *SchedulingService) GetMySchedules(ctx context.Context, creatorID uuid.UUID) ([]dto.ScheduleListItem, *errors.AppError) {
	schedules, err := s.repo.GetSchedulesByCreatorID(ctx, creatorID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list schedules", err)
	}

	items := make([]dto.ScheduleListItem, 0, len(schedules))
	for i := range schedules {
		participants, err := s.repo.GetParticipantsByScheduleID(ctx, schedules[i].ID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list schedules", err)
		}
		responded := 0
		for _, p := range participants {
			if p.HasResponded {
				responded++
			}
		}
		items = append(items, dto.ScheduleListItem{
			ScheduleResponse:  dto.ToScheduleResponse(&schedules[i]),
			TotalParticipants: len(participants),
			RespondedCount:    responded,
		})
	}
	return items, nil
}

func (s *SchedulingService) GetScheduleDetail(ctx context.Context, scheduleID uuid.UUID, requesterID uuid.UUID) (*dto.ScheduleDetailResponse, *errors.AppError) {
	schedule, appErr := s.getOwnedSchedule(ctx, scheduleID, requesterID)
	if appErr != nil {
		return nil, appErr
	}

	slots, participants, appErr := s.loadScheduleState(ctx, scheduleID)
	if appErr != nil {
		return nil, appErr
	}

	return s.buildDetailResponse(schedule, slots, participants), nil
}

func (s *SchedulingService) getOwnedSchedule(ctx context.Context, scheduleID uuid.UUID, requesterID uuid.UUID) (*entity.InterviewSchedule, *errors.AppError) {
	schedule, err := s.repo.GetScheduleByID(ctx, scheduleID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get schedule", err)
	}
	if schedule == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Schedule not found", nil)
	}
	if schedule.CreatorID != requesterID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Not the owner of this schedule", nil)
	}
	return schedule, nil
}

// loadScheduleState fetches slots, participants and votes and groups the
// votes per participant in participant-list order.
func (s *SchedulingService) loadScheduleState(ctx context.Context, scheduleID uuid.UUID) ([]entity.TimeSlot, []entity.ParticipantWithVotes, *errors.AppError) {
	slots, err := s.repo.GetSlotsByScheduleID(ctx, scheduleID)
	if err != nil {
		return nil, nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get slots", err)
	}

	participants, err := s.repo.GetParticipantsByScheduleID(ctx, scheduleID)
	if err != nil {
		return nil, nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get participants", err)
	}

	votes, err := s.repo.GetVotesByScheduleID(ctx, scheduleID)
	if err != nil {
		return nil, nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get votes", err)
	}

	byParticipant := make(map[uuid.UUID][]entity.AvailabilityVote, len(participants))
	for _, v := range votes {
		byParticipant[v.ParticipantID] = append(byParticipant[v.ParticipantID], v)
	}

	withVotes := make([]entity.ParticipantWithVotes, 0, len(participants))
	for _, p := range participants {
		withVotes = append(withVotes, entity.ParticipantWithVotes{
			Participant: p,
			Votes:       byParticipant[p.ID],
		})
	}

	return slots, withVotes, nil
}

func (s *SchedulingService) buildDetailResponse(schedule *entity.InterviewSchedule, slots []entity.TimeSlot, participants []entity.ParticipantWithVotes) *dto.ScheduleDetailResponse {
	ranked := RankSlots(slots, participants)

	rankedDTOs := make([]dto.RankedSlotResponse, 0, len(ranked))
	for i := range ranked {
		rankedDTOs = append(rankedDTOs, dto.ToRankedSlotResponse(&ranked[i]))
	}

	participantDTOs := make([]dto.ParticipantResponse, 0, len(participants))
	responded := 0
	for i := range participants {
		participantDTOs = append(participantDTOs, dto.ToParticipantResponse(&participants[i].Participant))
		if participants[i].HasResponded {
			responded++
		}
	}

	summary := dto.ResponseSummary{
		TotalParticipants: len(participants),
		RespondedCount:    responded,
		PerfectMatchCount: len(PerfectMatches(ranked)),
	}
	if best := BestMatch(ranked); best != nil {
		bestDTO := dto.ToRankedSlotResponse(best)
		summary.BestMatch = &bestDTO
	}

	return &dto.ScheduleDetailResponse{
		Schedule:     dto.ToScheduleResponse(schedule),
		Slots:        rankedDTOs,
		Participants: participantDTOs,
		Summary:      summary,
	}
}

// ===================== Confirm =====================

// ConfirmSlot is the one-way gate out of the collecting state. The ranking
// is advisory: any generated slot may be confirmed regardless of its vote
// count. A schedule that has already been confirmed yields a conflict and
// keeps its original confirmation.
func (s *SchedulingService) ConfirmSlot(ctx context.Context, scheduleID uuid.UUID, actorID uuid.UUID, req *dto.ConfirmSlotRequest) (*dto.ScheduleDetailResponse, *errors.AppError) {
	slotID, err := uuid.Parse(req.SlotID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid slot ID", err)
	}

	schedule, appErr := s.getOwnedSchedule(ctx, scheduleID, actorID)
	if appErr != nil {
		return nil, appErr
	}
	if schedule.Status != entity.ScheduleStatusCollecting {
		return nil, errors.NewAppError(errors.ErrConflict, "Schedule is already scheduled", nil)
	}

	slots, err := s.repo.GetSlotsByScheduleID(ctx, scheduleID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get slots", err)
	}

	var chosen *entity.TimeSlot
	for i := range slots {
		if slots[i].ID == slotID {
			chosen = &slots[i]
			break
		}
	}
	if chosen == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Slot does not belong to this schedule", nil)
	}

	confirmed, err := s.repo.ConfirmSchedule(ctx, scheduleID, chosen, actorID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to confirm slot", err)
	}
	if !confirmed {
		return nil, errors.NewAppError(errors.ErrConflict, "Schedule is already scheduled", nil)
	}

	if s.cache != nil {
		if cacheErr := s.cache.Delete(ctx, "voting_page:"+scheduleID.String()); cacheErr != nil {
			logger.Warn("SchedulingService:ConfirmSlot:CacheDelete", "error", cacheErr)
		}
	}

	participants, err := s.repo.GetParticipantsByScheduleID(ctx, scheduleID)
	if err != nil {
		logger.Error("SchedulingService:ConfirmSlot:GetParticipants", err)
		participants = nil
	}
	s.enqueueConfirmations(ctx, schedule, chosen, participants)

	if s.notifier != nil {
		notifErr := s.notifier.Create(ctx, &notifdto.CreateNotificationRequest{
			UserID:  schedule.CreatorID,
			Title:   "Interview scheduled",
			Message: fmt.Sprintf("Interview for %s confirmed at %s", schedule.JobTitle, chosen.StartTime.Format(time.RFC3339)),
			Type:    "schedule_confirmed",
			Data: map[string]any{
				"schedule_id": scheduleID.String(),
				"slot_id":     chosen.ID.String(),
			},
		})
		if notifErr != nil {
			logger.Error("SchedulingService:ConfirmSlot:Notify", notifErr)
		}
	}

	return s.GetScheduleDetail(ctx, scheduleID, actorID)
}

func (s *SchedulingService) enqueueConfirmations(ctx context.Context, schedule *entity.InterviewSchedule, slot *entity.TimeSlot, participants []entity.Participant) {
	for i, p := range participants {
		payload := mailer.ScheduleConfirmedPayload{
			ParticipantName:  p.Name,
			ParticipantEmail: p.Email,
			JobTitle:         schedule.JobTitle,
			StartTime:        slot.StartTime,
			EndTime:          slot.EndTime,
			Timezone:         p.Timezone,
		}
		delay := time.Duration(i) * constants.MailEnqueueStagger
		if err := s.enqueuer.EnqueueScheduleConfirmed(ctx, payload, delay); err != nil {
			logger.Error("SchedulingService:ConfirmSlot:EnqueueConfirmation",
				"error", err, "schedule_id", schedule.ID.String(), "participant", p.Email)
		}
	}
}

// ===================== Public voting =====================

// votingPageMeta is the immutable part of the public payload, cacheable
// because a schedule's slot set never changes after creation.
type votingPageMeta struct {
	JobTitle        string             `json:"job_title"`
	DurationMinutes int                `json:"duration_minutes"`
	Timezone        string             `json:"timezone"`
	Status          string             `json:"status"`
	Slots           []dto.SlotResponse `json:"slots"`
}

func (s *SchedulingService) GetVotingPage(ctx context.Context, token string) (*dto.VotingPageResponse, *errors.AppError) {
	participant, appErr := s.participantByToken(ctx, token)
	if appErr != nil {
		return nil, appErr
	}
	return s.buildVotingPage(ctx, participant)
}

func (s *SchedulingService) participantByToken(ctx context.Context, token string) (*entity.Participant, *errors.AppError) {
	if token == "" {
		return nil, errors.NewAppError(errors.ErrNotFound, "Invalid or expired link", nil)
	}
	participant, err := s.repo.GetParticipantByToken(ctx, token)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to look up participant", err)
	}
	if participant == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Invalid or expired link", nil)
	}
	return participant, nil
}

func (s *SchedulingService) buildVotingPage(ctx context.Context, participant *entity.Participant) (*dto.VotingPageResponse, *errors.AppError) {
	meta, appErr := s.votingMeta(ctx, participant.ScheduleID)
	if appErr != nil {
		return nil, appErr
	}

	votes, err := s.repo.GetVotesByParticipantID(ctx, participant.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get votes", err)
	}
	selected := make([]string, 0, len(votes))
	for _, v := range votes {
		selected = append(selected, v.SlotID.String())
	}

	return &dto.VotingPageResponse{
		ParticipantName: participant.Name,
		HasResponded:    participant.HasResponded,
		JobTitle:        meta.JobTitle,
		DurationMinutes: meta.DurationMinutes,
		Timezone:        meta.Timezone,
		Status:          meta.Status,
		Slots:           meta.Slots,
		SelectedSlotIDs: selected,
	}, nil
}

// votingMeta loads the schedule meta and slot list for the public page,
// cached per schedule. Only immutable fields plus the status flag live in
// the cache; the cache entry is dropped on confirmation.
func (s *SchedulingService) votingMeta(ctx context.Context, scheduleID uuid.UUID) (*votingPageMeta, *errors.AppError) {
	key := "voting_page:" + scheduleID.String()

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key); err == nil {
			var meta votingPageMeta
			if jsonErr := json.Unmarshal([]byte(raw), &meta); jsonErr == nil {
				return &meta, nil
			}
		}
	}

	schedule, err := s.repo.GetScheduleByID(ctx, scheduleID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get schedule", err)
	}
	if schedule == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Schedule not found", nil)
	}

	slots, err := s.repo.GetSlotsByScheduleID(ctx, scheduleID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get slots", err)
	}

	slotDTOs := make([]dto.SlotResponse, 0, len(slots))
	for i := range slots {
		slotDTOs = append(slotDTOs, dto.ToSlotResponse(&slots[i]))
	}

	meta := &votingPageMeta{
		JobTitle:        schedule.JobTitle,
		DurationMinutes: schedule.DurationMinutes,
		Timezone:        schedule.Timezone,
		Status:          string(schedule.Status),
		Slots:           slotDTOs,
	}

	if s.cache != nil && schedule.Status == entity.ScheduleStatusCollecting {
		if raw, jsonErr := json.Marshal(meta); jsonErr == nil {
			if cacheErr := s.cache.Set(ctx, key, string(raw), constants.VotingPageCacheTTL); cacheErr != nil {
				logger.Warn("SchedulingService:votingMeta:CacheSet", "error", cacheErr)
			}
		}
	}

	return meta, nil
}

// SubmitAvailability replaces the participant's vote set with the chosen
// slots. Every slot must belong to the participant's schedule, and votes
// are rejected once the schedule has been confirmed. The replace is
// all-or-nothing: on failure the prior vote set is untouched.
func (s *SchedulingService) SubmitAvailability(ctx context.Context, token string, req *dto.SubmitAvailabilityRequest) (*dto.VotingPageResponse, *errors.AppError) {
	participant, appErr := s.participantByToken(ctx, token)
	if appErr != nil {
		return nil, appErr
	}

	schedule, err := s.repo.GetScheduleByID(ctx, participant.ScheduleID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get schedule", err)
	}
	if schedule == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Schedule not found", nil)
	}
	if schedule.Status != entity.ScheduleStatusCollecting {
		return nil, errors.NewAppError(errors.ErrConflict, "Schedule is already scheduled", nil)
	}

	slots, err := s.repo.GetSlotsByScheduleID(ctx, participant.ScheduleID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get slots", err)
	}
	valid := make(map[uuid.UUID]bool, len(slots))
	for _, slot := range slots {
		valid[slot.ID] = true
	}

	seen := make(map[uuid.UUID]bool, len(req.SlotIDs))
	slotIDs := make([]uuid.UUID, 0, len(req.SlotIDs))
	for _, raw := range req.SlotIDs {
		slotID, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid slot ID", parseErr)
		}
		if !valid[slotID] {
			return nil, errors.NewAppError(errors.ErrNotFound, "Slot does not belong to this schedule", nil)
		}
		if seen[slotID] {
			continue
		}
		seen[slotID] = true
		slotIDs = append(slotIDs, slotID)
	}

	firstResponse := !participant.HasResponded

	if err := s.repo.ReplaceParticipantVotes(ctx, participant.ID, slotIDs); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to save availability", err)
	}
	participant.HasResponded = true

	if firstResponse && s.notifier != nil {
		notifErr := s.notifier.Create(ctx, &notifdto.CreateNotificationRequest{
			UserID:  schedule.CreatorID,
			Title:   "Availability received",
			Message: fmt.Sprintf("%s responded to the interview schedule for %s", participant.Name, schedule.JobTitle),
			Type:    "participant_response",
			Data: map[string]any{
				"schedule_id":    schedule.ID.String(),
				"participant_id": participant.ID.String(),
			},
		})
		if notifErr != nil {
			logger.Error("SchedulingService:SubmitAvailability:Notify", notifErr)
		}
	}

	return s.buildVotingPage(ctx, participant)
}
