// cmd/automation/main.go
package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/unclebandit/event-outreach/internal/config"
	"github.com/unclebandit/event-outreach/internal/model"
	"github.com/unclebandit/event-outreach/internal/queue"
	"github.com/unclebandit/event-outreach/internal/repository"
	"github.com/unclebandit/event-outreach/internal/sender"
	"github.com/unclebandit/event-outreach/internal/service"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("⚠️ no .env file found, relying on OS environment variables")
	}
	cfg := config.MustLoad()

	// Credential errors abort before any send attempt.
	if err := cfg.ValidateCredentials(); err != nil {
		log.Fatal().Err(err).Msg("❌ configuration error")
	}

	ctx := context.Background()
	clock := clockwork.NewRealClock()

	messageRepo := repository.NewMessageRepository(cfg.Files.MessageDir, clock)
	msgs, err := messageRepo.LoadCSV()
	if err != nil {
		log.Fatal().Err(err).
			Msg("failed to load generated messages, run cmd/messenger first")
	}

	// The CSV sink only carries (email, message); attendance comes from
	// the cleaned table.
	participantRepo := &repository.ParticipantRepository{CleanedPath: cfg.Files.CleanedCSV}
	participants, err := participantRepo.LoadCleaned()
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Files.CleanedCSV).
			Msg("failed to read cleaned participants, run cmd/cleaner first")
	}
	joined := make(map[string]bool, len(participants))
	for _, p := range participants {
		joined[p.Email] = p.HasJoinedEvent
	}
	for i := range msgs {
		msgs[i].HasJoinedEvent = joined[msgs[i].Email]
		msgs[i].Priority = model.PriorityFor(msgs[i].HasJoinedEvent)
	}

	automation := &service.AutomationService{
		Sender:        buildSender(ctx, cfg),
		Clock:         clock,
		Delay:         service.FixedDelay{Clock: clock, Interval: cfg.BatchDelay()},
		BatchSize:     cfg.Pipeline.BatchSize,
		MaxAttempts:   cfg.Pipeline.MaxRetryAttempts,
		FollowupDelay: cfg.FollowupDelay(),
		DryRun:        cfg.Pipeline.DryRun,
		BotName:       cfg.Telegram.BotName,
	}

	doc := automation.BuildQueue(msgs)
	log.Info().
		Int("total", doc.TotalMessages).
		Int("high", doc.HighPriority).
		Int("normal", doc.NormalPriority).
		Msg("📱 queue built")

	// Hand pending entries to the chat-bot broker before the local run;
	// dry runs never dial out.
	publisher := buildPublisher(cfg)
	defer publisher.Close()
	for _, entry := range doc.Entries {
		if err := publisher.Publish(entry); err != nil {
			log.Warn().Err(err).Str("id", entry.ID).Msg("⚠️ failed to publish entry to broker")
		}
	}

	report, err := automation.Run(ctx, doc)
	if err != nil {
		log.Fatal().Err(err).Msg("automation run aborted")
	}

	queueRepo := &repository.QueueRepository{Path: cfg.Files.QueueJSON}
	if err := queueRepo.Save(doc); err != nil {
		log.Fatal().Err(err).Str("path", cfg.Files.QueueJSON).Msg("failed to persist queue")
	}

	log.Info().
		Int("total", report.Total).
		Int("sent", report.Sent).
		Int("failed", report.Failed).
		Int("attempts", report.Attempts).
		Bool("dry_run", report.DryRun).
		Str("queue", cfg.Files.QueueJSON).
		Msg("✨ automation run complete")
}

func buildSender(ctx context.Context, cfg *config.Config) sender.Sender {
	if cfg.Pipeline.Channel == "telegram" {
		t := sender.NewTelegramSender(cfg.Telegram)
		if !cfg.Pipeline.DryRun {
			if err := t.ValidateToken(ctx); err != nil {
				log.Fatal().Err(err).Msg("❌ telegram bot token validation failed")
			}
		}
		return t
	}
	return sender.NewSMTPSender(cfg.SMTP)
}

func buildPublisher(cfg *config.Config) queue.Publisher {
	if cfg.Pipeline.DryRun || cfg.Broker.URL == "" {
		return queue.LogPublisher{}
	}
	p, err := queue.NewAMQPPublisher(cfg.Broker.URL, cfg.Broker.QueueName)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to broker")
	}
	log.Info().Str("queue", cfg.Broker.QueueName).Msg("✅ connected to broker")
	return p
}
