// internal/service/delay.go
package service

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// DelayStrategy is the injectable pause between send batches. Tests swap
// in NoDelay or a fake clock instead of sleeping.
type DelayStrategy interface {
	Wait()
}

// FixedDelay sleeps a constant interval on the given clock.
type FixedDelay struct {
	Clock    clockwork.Clock
	Interval time.Duration
}

func (d FixedDelay) Wait() {
	d.Clock.Sleep(d.Interval)
}

// NoDelay skips rate limiting entirely.
type NoDelay struct{}

func (NoDelay) Wait() {}
