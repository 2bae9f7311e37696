package mailer

import (
	"context"
	"encoding/json"
	"time"

	"hireflow-api/core/constants"

	"github.com/hibiken/asynq"
)

// Task types processed by the mailer worker.
const (
	TypeParticipantInvite = "mailer:participant_invite"
	TypeScheduleConfirmed = "mailer:schedule_confirmed"
)

// ParticipantInvitePayload asks one participant for their availability.
type ParticipantInvitePayload struct {
	ParticipantName  string `json:"participant_name"`
	ParticipantEmail string `json:"participant_email"`
	JobTitle         string `json:"job_title"`
	DurationMinutes  int    `json:"duration_minutes"`
	Timezone         string `json:"timezone"`
	VotingLink       string `json:"voting_link"`
}

// ScheduleConfirmedPayload tells one participant the interview is booked.
type ScheduleConfirmedPayload struct {
	ParticipantName  string    `json:"participant_name"`
	ParticipantEmail string    `json:"participant_email"`
	JobTitle         string    `json:"job_title"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	Timezone         string    `json:"timezone"`
}

// Enqueuer schedules mail tasks for background delivery. Each task is
// independent: a failed enqueue or delivery for one participant never
// affects the others.
type Enqueuer interface {
	EnqueueParticipantInvite(ctx context.Context, payload ParticipantInvitePayload, delay time.Duration) error
	EnqueueScheduleConfirmed(ctx context.Context, payload ScheduleConfirmedPayload, delay time.Duration) error
}

type taskEnqueuer struct {
	client *asynq.Client
}

func NewEnqueuer(client *asynq.Client) Enqueuer {
	return &taskEnqueuer{client: client}
}

func (e *taskEnqueuer) enqueue(ctx context.Context, taskType string, payload any, delay time.Duration) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(taskType, data)
	_, err = e.client.EnqueueContext(ctx, task,
		asynq.Queue(constants.QueueMailer),
		asynq.MaxRetry(constants.MailMaxRetry),
		asynq.ProcessIn(delay),
	)
	return err
}

func (e *taskEnqueuer) EnqueueParticipantInvite(ctx context.Context, payload ParticipantInvitePayload, delay time.Duration) error {
	return e.enqueue(ctx, TypeParticipantInvite, payload, delay)
}

func (e *taskEnqueuer) EnqueueScheduleConfirmed(ctx context.Context, payload ScheduleConfirmedPayload, delay time.Duration) error {
	return e.enqueue(ctx, TypeScheduleConfirmed, payload, delay)
}
