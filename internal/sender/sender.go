// internal/sender/sender.go
package sender

import (
	"context"

	"github.com/unclebandit/event-outreach/internal/model"
)

// Sender delivers one queue entry to an external channel. The automation
// loop owns retries; a Sender makes exactly one attempt per call.
type Sender interface {
	Send(ctx context.Context, entry *model.QueueEntry) error
}

// Func adapts a plain function into a Sender, mostly for tests.
type Func func(ctx context.Context, entry *model.QueueEntry) error

func (f Func) Send(ctx context.Context, entry *model.QueueEntry) error {
	return f(ctx, entry)
}
