package config

import (
	"errors"
	"strings"
	"testing"
	"time"

	appErrors "github.com/unclebandit/event-outreach/internal/errors"
)

func baseConfig() *Config {
	return &Config{
		Pipeline: Pipeline{
			BatchSize:            10,
			BatchDelaySeconds:    2,
			FollowupDelayMinutes: 30,
			DryRun:               true,
			MaxRetryAttempts:     3,
			Channel:              "email",
		},
	}
}

func TestDryRunNeedsNoCredentials(t *testing.T) {
	cfg := baseConfig()
	if err := cfg.ValidateCredentials(); err != nil {
		t.Errorf("dry run must not require credentials, got %v", err)
	}
}

func TestLiveEmailRequiresCredentials(t *testing.T) {
	cfg := baseConfig()
	cfg.Pipeline.DryRun = false

	err := cfg.ValidateCredentials()
	var missing *appErrors.ErrMissingCredentials
	if !errors.As(err, &missing) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
	if len(missing.Vars) != 2 {
		t.Errorf("expected both SMTP variables reported, got %v", missing.Vars)
	}

	cfg.SMTP.SenderEmail = "sender@example.com"
	cfg.SMTP.Password = "app-password"
	if err := cfg.ValidateCredentials(); err != nil {
		t.Errorf("expected valid credentials, got %v", err)
	}
}

func TestLiveTelegramRequiresToken(t *testing.T) {
	cfg := baseConfig()
	cfg.Pipeline.DryRun = false
	cfg.Pipeline.Channel = "telegram"

	if err := cfg.ValidateCredentials(); err == nil {
		t.Fatalf("expected missing token error")
	}

	cfg.Telegram.BotToken = "123:abc"
	if err := cfg.ValidateCredentials(); err != nil {
		t.Errorf("expected valid credentials, got %v", err)
	}
}

func TestDelayHelpers(t *testing.T) {
	cfg := baseConfig()
	if cfg.BatchDelay() != 2*time.Second {
		t.Errorf("unexpected batch delay: %s", cfg.BatchDelay())
	}
	if cfg.FollowupDelay() != 30*time.Minute {
		t.Errorf("unexpected follow-up delay: %s", cfg.FollowupDelay())
	}
}

func TestDumpOmitsSecrets(t *testing.T) {
	cfg := baseConfig()
	cfg.SMTP.Password = "super-secret"
	cfg.Telegram.BotToken = "123:abc"

	dump, err := cfg.Dump()
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	for _, secret := range []string{"super-secret", "123:abc"} {
		if strings.Contains(dump, secret) {
			t.Errorf("secret %q leaked into config dump", secret)
		}
	}
}
