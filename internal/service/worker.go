// internal/service/worker.go
package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/unclebandit/event-outreach/internal/model"
	"github.com/unclebandit/event-outreach/internal/sender"
)

// Worker drives the per-entry send state machine:
// pending -> attempt -> sent | pending(attempt_count+1) | failed.
// It makes exactly one attempt per Process call; the caller decides when
// to re-enqueue a still-pending entry.
type Worker struct {
	Sender sender.Sender
}

func NewWorker(s sender.Sender) *Worker {
	return &Worker{Sender: s}
}

// Process attempts a single delivery. It returns the send error when the
// entry stays retryable, nil once the entry reaches a terminal state.
func (w *Worker) Process(ctx context.Context, entry *model.QueueEntry) error {
	if entry.Terminal() {
		return nil
	}

	err := w.Sender.Send(ctx, entry)
	if err == nil {
		entry.Status = model.StatusSent
		entry.LastError = ""
		log.Info().Str("id", entry.ID).Str("to", entry.RecipientEmail).Msg("✅ sent")
		return nil
	}

	entry.AttemptCount++
	entry.LastError = err.Error()
	log.Warn().Err(err).Str("id", entry.ID).
		Int("attempt", entry.AttemptCount).Int("max", entry.MaxAttempts).
		Msg("⚠️ send failed")

	if entry.AttemptCount >= entry.MaxAttempts {
		entry.Status = model.StatusFailed
		log.Error().Str("id", entry.ID).Str("to", entry.RecipientEmail).
			Msg("❌ permanently failed")
		return nil
	}
	return err
}
