// internal/model/queue_entry.go
package model

import "time"

type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
)

// QueueEntry is one scheduled, retryable outbound message. It is created
// at enqueue time and mutated only by the batch-send loop; sent and failed
// are terminal.
type QueueEntry struct {
	ID             string    `json:"id"`
	RecipientEmail string    `json:"recipient_email"`
	MessageText    string    `json:"message_text"`
	Priority       Priority  `json:"priority"`
	Status         Status    `json:"status"`
	AttemptCount   int       `json:"attempt_count"`
	MaxAttempts    int       `json:"max_attempts"`
	SendAfter      time.Time `json:"send_after"`
	LastError      string    `json:"last_error,omitempty"`
	Tags           []string  `json:"tags"`
}

// Terminal reports whether the entry can never be attempted again.
func (e *QueueEntry) Terminal() bool {
	return e.Status == StatusSent || e.Status == StatusFailed
}

// QueueDocument is the chat-bot-ready queue file written at the end of an
// automation run, terminal statuses included.
type QueueDocument struct {
	RunID          string        `json:"run_id"`
	BotName        string        `json:"bot_name"`
	CreatedAt      time.Time     `json:"created_at"`
	TotalMessages  int           `json:"total_messages"`
	HighPriority   int           `json:"high_priority"`
	NormalPriority int           `json:"normal_priority"`
	Entries        []*QueueEntry `json:"messages"`
}
