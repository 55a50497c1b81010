package service

import (
	"context"
	"errors"
	"testing"

	"github.com/unclebandit/event-outreach/internal/model"
	"github.com/unclebandit/event-outreach/internal/sender"
)

func pendingEntry() *model.QueueEntry {
	return &model.QueueEntry{
		ID:             "msg_001",
		RecipientEmail: "a@x.com",
		MessageText:    "hi",
		Status:         model.StatusPending,
		MaxAttempts:    3,
	}
}

func TestWorkerMarksSent(t *testing.T) {
	w := NewWorker(sender.Func(func(ctx context.Context, e *model.QueueEntry) error {
		return nil
	}))

	entry := pendingEntry()
	if err := w.Process(context.Background(), entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Status != model.StatusSent {
		t.Errorf("expected sent, got %s", entry.Status)
	}
	if entry.AttemptCount != 0 {
		t.Errorf("expected no attempts recorded on success, got %d", entry.AttemptCount)
	}
}

func TestWorkerRetryableFailure(t *testing.T) {
	w := NewWorker(sender.Func(func(ctx context.Context, e *model.QueueEntry) error {
		return errors.New("boom")
	}))

	entry := pendingEntry()
	err := w.Process(context.Background(), entry)
	if err == nil {
		t.Fatalf("expected retryable error")
	}
	if entry.Status != model.StatusPending {
		t.Errorf("expected still pending, got %s", entry.Status)
	}
	if entry.AttemptCount != 1 {
		t.Errorf("expected attempt_count=1, got %d", entry.AttemptCount)
	}
}

func TestWorkerExhaustionIsTerminal(t *testing.T) {
	w := NewWorker(sender.Func(func(ctx context.Context, e *model.QueueEntry) error {
		return errors.New("boom")
	}))

	entry := pendingEntry()
	entry.AttemptCount = 2
	if err := w.Process(context.Background(), entry); err != nil {
		t.Fatalf("exhaustion should not be retryable, got %v", err)
	}
	if entry.Status != model.StatusFailed {
		t.Errorf("expected failed, got %s", entry.Status)
	}
	if entry.AttemptCount != 3 {
		t.Errorf("expected attempt_count=3, got %d", entry.AttemptCount)
	}
}

func TestWorkerSkipsTerminalEntries(t *testing.T) {
	calls := 0
	w := NewWorker(sender.Func(func(ctx context.Context, e *model.QueueEntry) error {
		calls++
		return nil
	}))

	entry := pendingEntry()
	entry.Status = model.StatusFailed
	if err := w.Process(context.Background(), entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 0 {
		t.Errorf("terminal entry must never be attempted, got %d calls", calls)
	}
}
