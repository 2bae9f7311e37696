package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"hireflow-api/core/errors"
	"hireflow-api/modules/mailer"
	notifdto "hireflow-api/modules/notification/dto"
	"hireflow-api/modules/scheduling/dto"
	"hireflow-api/modules/scheduling/entity"

	"github.com/google/uuid"
)

// fakeRepo is an in-memory SchedulingRepositoryInterface.
type fakeRepo struct {
	schedules    map[uuid.UUID]*entity.InterviewSchedule
	slots        map[uuid.UUID][]entity.TimeSlot
	participants map[uuid.UUID][]entity.Participant
	votes        map[uuid.UUID][]entity.AvailabilityVote

	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		schedules:    make(map[uuid.UUID]*entity.InterviewSchedule),
		slots:        make(map[uuid.UUID][]entity.TimeSlot),
		participants: make(map[uuid.UUID][]entity.Participant),
		votes:        make(map[uuid.UUID][]entity.AvailabilityVote),
	}
}

func (r *fakeRepo) CreateSchedule(_ context.Context, schedule *entity.InterviewSchedule, slots []entity.TimeSlot, participants []entity.Participant) error {
	if r.createErr != nil {
		return r.createErr
	}
	schedule.ID = uuid.New()
	schedule.CreatedAt = time.Now()
	for i := range slots {
		slots[i].ID = uuid.New()
		slots[i].ScheduleID = schedule.ID
	}
	for i := range participants {
		participants[i].ID = uuid.New()
		participants[i].ScheduleID = schedule.ID
	}
	r.schedules[schedule.ID] = schedule
	r.slots[schedule.ID] = slots
	r.participants[schedule.ID] = participants
	return nil
}

func (r *fakeRepo) GetScheduleByID(_ context.Context, id uuid.UUID) (*entity.InterviewSchedule, error) {
	s, ok := r.schedules[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeRepo) GetSchedulesByCreatorID(_ context.Context, creatorID uuid.UUID) ([]entity.InterviewSchedule, error) {
	var out []entity.InterviewSchedule
	for _, s := range r.schedules {
		if s.CreatorID == creatorID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetSlotsByScheduleID(_ context.Context, scheduleID uuid.UUID) ([]entity.TimeSlot, error) {
	return r.slots[scheduleID], nil
}

func (r *fakeRepo) GetParticipantsByScheduleID(_ context.Context, scheduleID uuid.UUID) ([]entity.Participant, error) {
	return r.participants[scheduleID], nil
}

func (r *fakeRepo) GetVotesByScheduleID(_ context.Context, scheduleID uuid.UUID) ([]entity.AvailabilityVote, error) {
	var out []entity.AvailabilityVote
	for _, p := range r.participants[scheduleID] {
		out = append(out, r.votes[p.ID]...)
	}
	return out, nil
}

func (r *fakeRepo) GetParticipantByToken(_ context.Context, token string) (*entity.Participant, error) {
	for sid := range r.participants {
		for i := range r.participants[sid] {
			if r.participants[sid][i].VoteToken == token {
				cp := r.participants[sid][i]
				return &cp, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeRepo) GetVotesByParticipantID(_ context.Context, participantID uuid.UUID) ([]entity.AvailabilityVote, error) {
	return r.votes[participantID], nil
}

func (r *fakeRepo) ReplaceParticipantVotes(_ context.Context, participantID uuid.UUID, slotIDs []uuid.UUID) error {
	votes := make([]entity.AvailabilityVote, 0, len(slotIDs))
	for _, slotID := range slotIDs {
		votes = append(votes, entity.AvailabilityVote{
			ID:            uuid.New(),
			ParticipantID: participantID,
			SlotID:        slotID,
			CreatedAt:     time.Now(),
		})
	}
	r.votes[participantID] = votes

	now := time.Now()
	for sid := range r.participants {
		for i := range r.participants[sid] {
			if r.participants[sid][i].ID == participantID {
				r.participants[sid][i].HasResponded = true
				r.participants[sid][i].RespondedAt = &now
			}
		}
	}
	return nil
}

func (r *fakeRepo) ConfirmSchedule(_ context.Context, scheduleID uuid.UUID, slot *entity.TimeSlot, actorID uuid.UUID) (bool, error) {
	s, ok := r.schedules[scheduleID]
	if !ok || s.Status != entity.ScheduleStatusCollecting {
		return false, nil
	}
	now := time.Now()
	s.Status = entity.ScheduleStatusScheduled
	s.ConfirmedStart = &slot.StartTime
	s.ConfirmedEnd = &slot.EndTime
	s.ConfirmedBy = &actorID
	s.ConfirmedAt = &now
	return true, nil
}

// fakeEnqueuer records enqueued mail payloads.
type fakeEnqueuer struct {
	invites       []mailer.ParticipantInvitePayload
	confirmations []mailer.ScheduleConfirmedPayload
	failEnqueue   bool
}

func (e *fakeEnqueuer) EnqueueParticipantInvite(_ context.Context, p mailer.ParticipantInvitePayload, _ time.Duration) error {
	if e.failEnqueue {
		return fmt.Errorf("redis down")
	}
	e.invites = append(e.invites, p)
	return nil
}

func (e *fakeEnqueuer) EnqueueScheduleConfirmed(_ context.Context, p mailer.ScheduleConfirmedPayload, _ time.Duration) error {
	if e.failEnqueue {
		return fmt.Errorf("redis down")
	}
	e.confirmations = append(e.confirmations, p)
	return nil
}

// fakeNotifier records in-app notifications.
type fakeNotifier struct {
	created []*notifdto.CreateNotificationRequest
	fail    bool
}

func (n *fakeNotifier) Create(_ context.Context, req *notifdto.CreateNotificationRequest) error {
	if n.fail {
		return fmt.Errorf("notification store unavailable")
	}
	n.created = append(n.created, req)
	return nil
}

func newTestService(repo *fakeRepo, enq *fakeEnqueuer, notif *fakeNotifier) SchedulingServiceInterface {
	return NewSchedulingService(repo, enq, notif, nil)
}

func validCreateRequest() *dto.CreateScheduleRequest {
	start := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	return &dto.CreateScheduleRequest{
		ApplicationID:   uuid.NewString(),
		JobID:           uuid.NewString(),
		JobTitle:        "Backend Engineer",
		DurationMinutes: 30,
		Timezone:        "Europe/Berlin",
		Ranges: []dto.TimeRangeDTO{
			{Start: start, End: start.Add(2 * time.Hour)},
		},
		Participants: []dto.ParticipantInput{
			{Name: "Alice", Email: "alice@example.com"},
			{Name: "Bob", Email: "bob@example.com", Timezone: "America/New_York"},
		},
	}
}

func createSchedule(t *testing.T, svc SchedulingServiceInterface, creatorID uuid.UUID) *dto.ScheduleDetailResponse {
	t.Helper()
	resp, appErr := svc.CreateSchedule(context.Background(), creatorID, validCreateRequest())
	if appErr != nil {
		t.Fatalf("CreateSchedule() error: %v", appErr)
	}
	return resp
}

// ===================== Create =====================

func TestCreateSchedule_Success(t *testing.T) {
	repo := newFakeRepo()
	enq := &fakeEnqueuer{}
	svc := newTestService(repo, enq, &fakeNotifier{})
	creatorID := uuid.New()

	resp := createSchedule(t, svc, creatorID)

	if resp.Schedule.Status != string(entity.ScheduleStatusCollecting) {
		t.Errorf("new schedule status = %q, want collecting", resp.Schedule.Status)
	}
	// 2h range with 30min slots.
	if len(resp.Slots) != 4 {
		t.Errorf("created %d slots, want 4", len(resp.Slots))
	}
	if len(resp.Participants) != 2 {
		t.Errorf("created %d participants, want 2", len(resp.Participants))
	}
	if len(enq.invites) != 2 {
		t.Errorf("enqueued %d invites, want 2", len(enq.invites))
	}
	if enq.invites[0].VotingLink == "" {
		t.Error("invite is missing its voting link")
	}
	// Bob keeps his own timezone, Alice inherits the schedule's.
	if enq.invites[1].Timezone != "America/New_York" {
		t.Errorf("participant timezone = %q, want America/New_York", enq.invites[1].Timezone)
	}
	if enq.invites[0].Timezone != "Europe/Berlin" {
		t.Errorf("participant timezone = %q, want schedule default", enq.invites[0].Timezone)
	}

	for scheduleID := range repo.schedules {
		for _, p := range repo.participants[scheduleID] {
			if p.VoteToken == "" {
				t.Errorf("participant %s has no vote token", p.Email)
			}
		}
	}
}

func TestCreateSchedule_Validation(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeEnqueuer{}, &fakeNotifier{})

	tests := []struct {
		name   string
		mutate func(*dto.CreateScheduleRequest)
	}{
		{"zero duration", func(r *dto.CreateScheduleRequest) { r.DurationMinutes = 0 }},
		{"negative duration", func(r *dto.CreateScheduleRequest) { r.DurationMinutes = -15 }},
		{"no ranges", func(r *dto.CreateScheduleRequest) { r.Ranges = nil }},
		{"no participants", func(r *dto.CreateScheduleRequest) { r.Participants = nil }},
		{"missing job title", func(r *dto.CreateScheduleRequest) { r.JobTitle = "" }},
		{"participant without email", func(r *dto.CreateScheduleRequest) { r.Participants[0].Email = "" }},
		{"bad application id", func(r *dto.CreateScheduleRequest) { r.ApplicationID = "not-a-uuid" }},
		{"bad job id", func(r *dto.CreateScheduleRequest) { r.JobID = "nope" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(req)

			_, appErr := svc.CreateSchedule(context.Background(), uuid.New(), req)
			if appErr == nil {
				t.Fatal("CreateSchedule() succeeded, want validation error")
			}
			if appErr.Code != errors.ErrInvalidInput {
				t.Errorf("error code = %q, want %q", appErr.Code, errors.ErrInvalidInput)
			}
		})
	}
}

func TestCreateSchedule_RangesFitNoSlot(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeEnqueuer{}, &fakeNotifier{})

	req := validCreateRequest()
	req.DurationMinutes = 60
	start := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	req.Ranges = []dto.TimeRangeDTO{{Start: start, End: start.Add(45 * time.Minute)}}

	_, appErr := svc.CreateSchedule(context.Background(), uuid.New(), req)
	if appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Fatalf("CreateSchedule() = %v, want invalid-input error for zero generated slots", appErr)
	}
}

func TestCreateSchedule_EnqueueFailureDoesNotFailCreation(t *testing.T) {
	repo := newFakeRepo()
	enq := &fakeEnqueuer{failEnqueue: true}
	svc := newTestService(repo, enq, &fakeNotifier{})

	resp, appErr := svc.CreateSchedule(context.Background(), uuid.New(), validCreateRequest())
	if appErr != nil {
		t.Fatalf("CreateSchedule() failed on enqueue error: %v", appErr)
	}
	if len(repo.schedules) != 1 {
		t.Error("schedule was not persisted")
	}
	if resp == nil {
		t.Error("no response despite successful persistence")
	}
}

// ===================== Voting =====================

func TestSubmitAvailability_ReplacesVotes(t *testing.T) {
	repo := newFakeRepo()
	notif := &fakeNotifier{}
	svc := newTestService(repo, &fakeEnqueuer{}, notif)

	createSchedule(t, svc, uuid.New())

	var scheduleID uuid.UUID
	for id := range repo.schedules {
		scheduleID = id
	}
	token := repo.participants[scheduleID][0].VoteToken
	slots := repo.slots[scheduleID]

	first, appErr := svc.SubmitAvailability(context.Background(), token,
		&dto.SubmitAvailabilityRequest{SlotIDs: []string{slots[0].ID.String(), slots[1].ID.String()}})
	if appErr != nil {
		t.Fatalf("SubmitAvailability() error: %v", appErr)
	}
	if !first.HasResponded {
		t.Error("participant not marked responded after first submission")
	}
	if len(first.SelectedSlotIDs) != 2 {
		t.Errorf("voting page shows %d selected slots, want 2", len(first.SelectedSlotIDs))
	}

	// Resubmission replaces, never accumulates.
	second, appErr := svc.SubmitAvailability(context.Background(), token,
		&dto.SubmitAvailabilityRequest{SlotIDs: []string{slots[2].ID.String()}})
	if appErr != nil {
		t.Fatalf("resubmission error: %v", appErr)
	}
	if len(second.SelectedSlotIDs) != 1 || second.SelectedSlotIDs[0] != slots[2].ID.String() {
		t.Errorf("after resubmission selected = %v, want only %s", second.SelectedSlotIDs, slots[2].ID)
	}

	// Only the first response notifies the recruiter.
	if len(notif.created) != 1 {
		t.Errorf("recruiter notified %d times, want 1", len(notif.created))
	}

	// Submitting the identical set again leaves exactly one vote per slot.
	same := &dto.SubmitAvailabilityRequest{SlotIDs: []string{slots[2].ID.String()}}
	if _, appErr := svc.SubmitAvailability(context.Background(), token, same); appErr != nil {
		t.Fatalf("identical resubmission error: %v", appErr)
	}
	participantID := repo.participants[scheduleID][0].ID
	if got := len(repo.votes[participantID]); got != 1 {
		t.Errorf("stored %d votes after identical resubmission, want 1", got)
	}
}

func TestSubmitAvailability_EmptySetClearsVotes(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeEnqueuer{}, &fakeNotifier{})

	createSchedule(t, svc, uuid.New())

	var scheduleID uuid.UUID
	for id := range repo.schedules {
		scheduleID = id
	}
	token := repo.participants[scheduleID][0].VoteToken
	slots := repo.slots[scheduleID]

	if _, appErr := svc.SubmitAvailability(context.Background(), token,
		&dto.SubmitAvailabilityRequest{SlotIDs: []string{slots[0].ID.String()}}); appErr != nil {
		t.Fatalf("SubmitAvailability() error: %v", appErr)
	}

	// "None of these work for me" is a valid, recorded response.
	resp, appErr := svc.SubmitAvailability(context.Background(), token,
		&dto.SubmitAvailabilityRequest{SlotIDs: nil})
	if appErr != nil {
		t.Fatalf("empty submission error: %v", appErr)
	}
	if len(resp.SelectedSlotIDs) != 0 {
		t.Errorf("selected = %v, want none", resp.SelectedSlotIDs)
	}
	if !resp.HasResponded {
		t.Error("participant no longer marked responded after clearing votes")
	}
}

func TestSubmitAvailability_Errors(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeEnqueuer{}, &fakeNotifier{})

	createSchedule(t, svc, uuid.New())

	var scheduleID uuid.UUID
	for id := range repo.schedules {
		scheduleID = id
	}
	token := repo.participants[scheduleID][0].VoteToken

	t.Run("unknown token", func(t *testing.T) {
		_, appErr := svc.SubmitAvailability(context.Background(), "bogus-token",
			&dto.SubmitAvailabilityRequest{})
		if appErr == nil || appErr.Code != errors.ErrNotFound {
			t.Errorf("got %v, want not-found", appErr)
		}
	})

	t.Run("empty token", func(t *testing.T) {
		_, appErr := svc.SubmitAvailability(context.Background(), "", &dto.SubmitAvailabilityRequest{})
		if appErr == nil || appErr.Code != errors.ErrNotFound {
			t.Errorf("got %v, want not-found", appErr)
		}
	})

	t.Run("malformed slot id", func(t *testing.T) {
		_, appErr := svc.SubmitAvailability(context.Background(), token,
			&dto.SubmitAvailabilityRequest{SlotIDs: []string{"not-a-uuid"}})
		if appErr == nil || appErr.Code != errors.ErrInvalidInput {
			t.Errorf("got %v, want invalid-input", appErr)
		}
	})

	t.Run("foreign slot id", func(t *testing.T) {
		_, appErr := svc.SubmitAvailability(context.Background(), token,
			&dto.SubmitAvailabilityRequest{SlotIDs: []string{uuid.NewString()}})
		if appErr == nil || appErr.Code != errors.ErrNotFound {
			t.Errorf("got %v, want not-found", appErr)
		}
	})
}

// ===================== Confirm =====================

func TestConfirmSlot_Lifecycle(t *testing.T) {
	repo := newFakeRepo()
	enq := &fakeEnqueuer{}
	notif := &fakeNotifier{}
	svc := newTestService(repo, enq, notif)
	creatorID := uuid.New()

	createSchedule(t, svc, creatorID)

	var scheduleID uuid.UUID
	for id := range repo.schedules {
		scheduleID = id
	}
	slots := repo.slots[scheduleID]
	token := repo.participants[scheduleID][0].VoteToken

	// Confirming a slot with zero votes is allowed; the ranking is advisory.
	resp, appErr := svc.ConfirmSlot(context.Background(), scheduleID, creatorID,
		&dto.ConfirmSlotRequest{SlotID: slots[1].ID.String()})
	if appErr != nil {
		t.Fatalf("ConfirmSlot() error: %v", appErr)
	}
	if resp.Schedule.Status != string(entity.ScheduleStatusScheduled) {
		t.Errorf("status = %q, want scheduled", resp.Schedule.Status)
	}
	if resp.Schedule.ConfirmedStart == nil || !resp.Schedule.ConfirmedStart.Equal(slots[1].StartTime) {
		t.Errorf("confirmed start = %v, want %v", resp.Schedule.ConfirmedStart, slots[1].StartTime)
	}
	if len(enq.confirmations) != 2 {
		t.Errorf("enqueued %d confirmation mails, want 2", len(enq.confirmations))
	}
	if len(notif.created) != 1 || notif.created[0].Type != "schedule_confirmed" {
		t.Errorf("recruiter notifications = %v, want one schedule_confirmed", notif.created)
	}

	// Second confirmation conflicts and leaves the original untouched.
	_, appErr = svc.ConfirmSlot(context.Background(), scheduleID, creatorID,
		&dto.ConfirmSlotRequest{SlotID: slots[0].ID.String()})
	if appErr == nil || appErr.Code != errors.ErrConflict {
		t.Fatalf("second ConfirmSlot() = %v, want conflict", appErr)
	}
	if !repo.schedules[scheduleID].ConfirmedStart.Equal(slots[1].StartTime) {
		t.Error("second confirmation overwrote the original")
	}

	// Votes after confirmation are rejected.
	_, appErr = svc.SubmitAvailability(context.Background(), token,
		&dto.SubmitAvailabilityRequest{SlotIDs: []string{slots[0].ID.String()}})
	if appErr == nil || appErr.Code != errors.ErrConflict {
		t.Errorf("vote after confirmation = %v, want conflict", appErr)
	}
}

func TestConfirmSlot_Errors(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeEnqueuer{}, &fakeNotifier{})
	creatorID := uuid.New()

	createSchedule(t, svc, creatorID)

	var scheduleID uuid.UUID
	for id := range repo.schedules {
		scheduleID = id
	}
	slots := repo.slots[scheduleID]

	t.Run("unknown schedule", func(t *testing.T) {
		_, appErr := svc.ConfirmSlot(context.Background(), uuid.New(), creatorID,
			&dto.ConfirmSlotRequest{SlotID: slots[0].ID.String()})
		if appErr == nil || appErr.Code != errors.ErrNotFound {
			t.Errorf("got %v, want not-found", appErr)
		}
	})

	t.Run("not the owner", func(t *testing.T) {
		_, appErr := svc.ConfirmSlot(context.Background(), scheduleID, uuid.New(),
			&dto.ConfirmSlotRequest{SlotID: slots[0].ID.String()})
		if appErr == nil || appErr.Code != errors.ErrForbidden {
			t.Errorf("got %v, want forbidden", appErr)
		}
	})

	t.Run("slot from another schedule", func(t *testing.T) {
		_, appErr := svc.ConfirmSlot(context.Background(), scheduleID, creatorID,
			&dto.ConfirmSlotRequest{SlotID: uuid.NewString()})
		if appErr == nil || appErr.Code != errors.ErrNotFound {
			t.Errorf("got %v, want not-found", appErr)
		}
	})

	t.Run("malformed slot id", func(t *testing.T) {
		_, appErr := svc.ConfirmSlot(context.Background(), scheduleID, creatorID,
			&dto.ConfirmSlotRequest{SlotID: "nope"})
		if appErr == nil || appErr.Code != errors.ErrInvalidInput {
			t.Errorf("got %v, want invalid-input", appErr)
		}
	})
}

func TestConfirmSlot_NotifierFailureDoesNotFailConfirm(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeEnqueuer{}, &fakeNotifier{fail: true})
	creatorID := uuid.New()

	createSchedule(t, svc, creatorID)

	var scheduleID uuid.UUID
	for id := range repo.schedules {
		scheduleID = id
	}
	slots := repo.slots[scheduleID]

	resp, appErr := svc.ConfirmSlot(context.Background(), scheduleID, creatorID,
		&dto.ConfirmSlotRequest{SlotID: slots[0].ID.String()})
	if appErr != nil {
		t.Fatalf("ConfirmSlot() failed on notifier error: %v", appErr)
	}
	if resp.Schedule.Status != string(entity.ScheduleStatusScheduled) {
		t.Errorf("status = %q, want scheduled", resp.Schedule.Status)
	}
}

// ===================== Recruiter reads =====================

func TestGetScheduleDetail_RankingAndSummary(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeEnqueuer{}, &fakeNotifier{})
	creatorID := uuid.New()

	createSchedule(t, svc, creatorID)

	var scheduleID uuid.UUID
	for id := range repo.schedules {
		scheduleID = id
	}
	slots := repo.slots[scheduleID]
	participants := repo.participants[scheduleID]

	// Both participants pick slot 0, the first also picks slot 1.
	submit := func(token string, ids ...string) {
		t.Helper()
		if _, appErr := svc.SubmitAvailability(context.Background(), token,
			&dto.SubmitAvailabilityRequest{SlotIDs: ids}); appErr != nil {
			t.Fatalf("SubmitAvailability() error: %v", appErr)
		}
	}
	submit(participants[0].VoteToken, slots[0].ID.String(), slots[1].ID.String())
	submit(participants[1].VoteToken, slots[0].ID.String())

	detail, appErr := svc.GetScheduleDetail(context.Background(), scheduleID, creatorID)
	if appErr != nil {
		t.Fatalf("GetScheduleDetail() error: %v", appErr)
	}

	if detail.Slots[0].ID != slots[0].ID.String() {
		t.Errorf("top-ranked slot = %s, want %s", detail.Slots[0].ID, slots[0].ID)
	}
	if !detail.Slots[0].PerfectMatch {
		t.Error("slot voted by everyone not flagged perfect")
	}
	if detail.Summary.RespondedCount != 2 || detail.Summary.TotalParticipants != 2 {
		t.Errorf("summary = %+v, want 2/2 responded", detail.Summary)
	}
	if detail.Summary.PerfectMatchCount != 1 {
		t.Errorf("perfect match count = %d, want 1", detail.Summary.PerfectMatchCount)
	}
	if detail.Summary.BestMatch == nil || detail.Summary.BestMatch.ID != slots[0].ID.String() {
		t.Errorf("best match = %v, want slot 0", detail.Summary.BestMatch)
	}

	_, appErr = svc.GetScheduleDetail(context.Background(), scheduleID, uuid.New())
	if appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Errorf("foreign reader got %v, want forbidden", appErr)
	}
}

func TestGetMySchedules_CountsResponses(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeEnqueuer{}, &fakeNotifier{})
	creatorID := uuid.New()

	createSchedule(t, svc, creatorID)

	var scheduleID uuid.UUID
	for id := range repo.schedules {
		scheduleID = id
	}
	token := repo.participants[scheduleID][0].VoteToken
	slots := repo.slots[scheduleID]
	if _, appErr := svc.SubmitAvailability(context.Background(), token,
		&dto.SubmitAvailabilityRequest{SlotIDs: []string{slots[0].ID.String()}}); appErr != nil {
		t.Fatalf("SubmitAvailability() error: %v", appErr)
	}

	items, appErr := svc.GetMySchedules(context.Background(), creatorID)
	if appErr != nil {
		t.Fatalf("GetMySchedules() error: %v", appErr)
	}
	if len(items) != 1 {
		t.Fatalf("got %d schedules, want 1", len(items))
	}
	if items[0].TotalParticipants != 2 || items[0].RespondedCount != 1 {
		t.Errorf("counts = %d/%d, want 1 of 2 responded", items[0].RespondedCount, items[0].TotalParticipants)
	}

	other, appErr := svc.GetMySchedules(context.Background(), uuid.New())
	if appErr != nil {
		t.Fatalf("GetMySchedules() error: %v", appErr)
	}
	if len(other) != 0 {
		t.Errorf("stranger sees %d schedules, want 0", len(other))
	}
}

func TestGetVotingPage(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeEnqueuer{}, &fakeNotifier{})

	createSchedule(t, svc, uuid.New())

	var scheduleID uuid.UUID
	for id := range repo.schedules {
		scheduleID = id
	}
	token := repo.participants[scheduleID][0].VoteToken

	page, appErr := svc.GetVotingPage(context.Background(), token)
	if appErr != nil {
		t.Fatalf("GetVotingPage() error: %v", appErr)
	}
	if page.ParticipantName != "Alice" {
		t.Errorf("participant name = %q, want Alice", page.ParticipantName)
	}
	if page.JobTitle != "Backend Engineer" {
		t.Errorf("job title = %q", page.JobTitle)
	}
	if len(page.Slots) != 4 {
		t.Errorf("voting page lists %d slots, want 4", len(page.Slots))
	}
	if page.HasResponded {
		t.Error("fresh participant marked as responded")
	}
	if len(page.SelectedSlotIDs) != 0 {
		t.Errorf("fresh participant has %d selections", len(page.SelectedSlotIDs))
	}

	_, appErr = svc.GetVotingPage(context.Background(), "unknown")
	if appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Errorf("unknown token got %v, want not-found", appErr)
	}
}
