package mailer

import (
	"context"
	"encoding/json"
	"fmt"

	"hireflow-api/core/logger"

	"github.com/hibiken/asynq"
)

// Handler processes queued mail tasks.
type Handler struct {
	mailer Mailer
}

func NewHandler(m Mailer) *Handler {
	return &Handler{mailer: m}
}

// Register wires the handler into the worker mux.
func (h *Handler) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeParticipantInvite, h.HandleParticipantInvite)
	mux.HandleFunc(TypeScheduleConfirmed, h.HandleScheduleConfirmed)
}

func (h *Handler) HandleParticipantInvite(ctx context.Context, t *asynq.Task) error {
	var p ParticipantInvitePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// Malformed payloads cannot succeed on retry.
		return fmt.Errorf("unmarshal invite payload: %w: %v", asynq.SkipRetry, err)
	}

	msg := Message{
		To:       p.ParticipantEmail,
		ToName:   p.ParticipantName,
		Subject:  InviteSubject(p.JobTitle),
		TextBody: InviteBody(p),
	}
	if err := h.mailer.Send(ctx, msg); err != nil {
		logger.Error("MailerHandler:ParticipantInvite", "error", err, "to", p.ParticipantEmail)
		return err
	}
	return nil
}

func (h *Handler) HandleScheduleConfirmed(ctx context.Context, t *asynq.Task) error {
	var p ScheduleConfirmedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("unmarshal confirmation payload: %w: %v", asynq.SkipRetry, err)
	}

	msg := Message{
		To:       p.ParticipantEmail,
		ToName:   p.ParticipantName,
		Subject:  ConfirmationSubject(p.JobTitle),
		TextBody: ConfirmationBody(p),
	}
	if err := h.mailer.Send(ctx, msg); err != nil {
		logger.Error("MailerHandler:ScheduleConfirmed", "error", err, "to", p.ParticipantEmail)
		return err
	}
	return nil
}

// InviteSubject and friends build the mail content. Kept exported so the
// templates can be previewed and tested without a running worker.

func InviteSubject(jobTitle string) string {
	return fmt.Sprintf("Interview availability needed: %s", jobTitle)
}

func InviteBody(p ParticipantInvitePayload) string {
	return fmt.Sprintf(
		"Hi %s,\n\n"+
			"You have been asked to share your availability for an interview for the %s position.\n"+
			"The interview will take %d minutes. Times are shown in %s.\n\n"+
			"Pick the slots that work for you here:\n%s\n\n"+
			"You can update your answer any time until the interview is booked.\n",
		p.ParticipantName, p.JobTitle, p.DurationMinutes, p.Timezone, p.VotingLink)
}

func ConfirmationSubject(jobTitle string) string {
	return fmt.Sprintf("Interview scheduled: %s", jobTitle)
}

func ConfirmationBody(p ScheduleConfirmedPayload) string {
	return fmt.Sprintf(
		"Hi %s,\n\n"+
			"The interview for the %s position has been scheduled:\n\n"+
			"  Start: %s\n"+
			"  End:   %s\n\n"+
			"Times are shown in %s.\n",
		p.ParticipantName, p.JobTitle,
		p.StartTime.Format("Mon, 02 Jan 2006 15:04 MST"),
		p.EndTime.Format("Mon, 02 Jan 2006 15:04 MST"),
		p.Timezone)
}
