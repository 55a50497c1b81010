// internal/service/automation_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/unclebandit/event-outreach/internal/model"
	"github.com/unclebandit/event-outreach/internal/sender"
)

var defaultTags = []string{"event_followup", "automated"}

// RunReport is the user-visible summary of an automation run.
type RunReport struct {
	Total    int  `json:"total"`
	High     int  `json:"high_priority"`
	Normal   int  `json:"normal_priority"`
	Sent     int  `json:"sent"`
	Failed   int  `json:"failed"`
	Attempts int  `json:"attempts"`
	DryRun   bool `json:"dry_run"`
}

// AutomationService builds the priority send queue and drains it in
// rate-limited batches. Everything time-related goes through the
// injected clock and delay strategy.
type AutomationService struct {
	Sender        sender.Sender
	Clock         clockwork.Clock
	Delay         DelayStrategy
	BatchSize     int
	MaxAttempts   int
	FollowupDelay time.Duration
	DryRun        bool
	BotName       string
}

// BuildQueue orders all high-priority messages (attendees) ahead of the
// normal ones and stamps the scheduling metadata: attendees send now,
// everyone else after the follow-up delay.
func (s *AutomationService) BuildQueue(msgs []model.Message) *model.QueueDocument {
	now := s.Clock.Now().UTC()

	var high, normal []*model.QueueEntry
	for _, m := range msgs {
		entry := &model.QueueEntry{
			RecipientEmail: m.Email,
			MessageText:    m.Content,
			Priority:       m.Priority,
			Status:         model.StatusPending,
			MaxAttempts:    s.MaxAttempts,
			SendAfter:      now,
			Tags:           defaultTags,
		}
		if m.Priority == model.PriorityHigh {
			high = append(high, entry)
		} else {
			entry.SendAfter = now.Add(s.FollowupDelay)
			normal = append(normal, entry)
		}
	}

	entries := append(high, normal...)
	for i, e := range entries {
		e.ID = fmt.Sprintf("msg_%03d", i+1)
	}

	return &model.QueueDocument{
		RunID:          uuid.NewString(),
		BotName:        s.BotName,
		CreatedAt:      now,
		TotalMessages:  len(entries),
		HighPriority:   len(high),
		NormalPriority: len(normal),
		Entries:        entries,
	}
}

// Run drains the queue in fixed-size batches with the delay strategy
// between batches. Failed entries are re-enqueued at the back of their
// batch until they reach a terminal state. In dry-run mode no external
// system is contacted and every entry is marked sent as-is.
func (s *AutomationService) Run(ctx context.Context, doc *model.QueueDocument) (*RunReport, error) {
	report := &RunReport{
		Total:  len(doc.Entries),
		High:   doc.HighPriority,
		Normal: doc.NormalPriority,
		DryRun: s.DryRun,
	}

	batchSize := s.BatchSize
	if batchSize < 1 {
		batchSize = 1
	}

	worker := NewWorker(s.Sender)

	for start := 0; start < len(doc.Entries); start += batchSize {
		end := start + batchSize
		if end > len(doc.Entries) {
			end = len(doc.Entries)
		}
		batch := doc.Entries[start:end]
		log.Info().Int("from", start+1).Int("to", end).Int("total", len(doc.Entries)).
			Msg("📤 processing batch")

		if s.DryRun {
			for _, entry := range batch {
				entry.Status = model.StatusSent
				report.Sent++
				log.Info().Str("id", entry.ID).Str("to", entry.RecipientEmail).
					Msg("🧪 dry run, would send")
			}
		} else {
			if err := s.drainBatch(ctx, worker, batch, report); err != nil {
				return report, err
			}
		}

		if end < len(doc.Entries) {
			log.Info().Msg("💤 pausing between batches")
			s.Delay.Wait()
		}
	}

	return report, nil
}

// drainBatch attempts each entry once, re-enqueueing retryable failures
// behind the rest of the batch, until every entry is terminal.
func (s *AutomationService) drainBatch(ctx context.Context, worker *Worker, batch []*model.QueueEntry, report *RunReport) error {
	pending := make([]*model.QueueEntry, len(batch))
	copy(pending, batch)

	for i := 0; i < len(pending); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		entry := pending[i]
		report.Attempts++
		if err := worker.Process(ctx, entry); err != nil {
			// Still pending: back of the line for another attempt.
			pending = append(pending, entry)
			continue
		}

		switch entry.Status {
		case model.StatusSent:
			report.Sent++
		case model.StatusFailed:
			report.Failed++
		}
	}
	return nil
}
