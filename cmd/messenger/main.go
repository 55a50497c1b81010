// cmd/messenger/main.go
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/unclebandit/event-outreach/internal/config"
	"github.com/unclebandit/event-outreach/internal/repository"
	"github.com/unclebandit/event-outreach/internal/service"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("⚠️ no .env file found, relying on OS environment variables")
	}
	cfg := config.MustLoad()

	participantRepo := &repository.ParticipantRepository{CleanedPath: cfg.Files.CleanedCSV}
	participants, err := participantRepo.LoadCleaned()
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Files.CleanedCSV).
			Msg("failed to read cleaned participants, run cmd/cleaner first")
	}

	messenger := &service.MessageService{}
	msgs, report := messenger.GenerateAll(participants)

	messageRepo := repository.NewMessageRepository(cfg.Files.MessageDir, nil)

	csvPath, err := messageRepo.SaveCSV(msgs)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to write CSV sink")
	}
	jsonPath, err := messageRepo.SaveJSON(msgs)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to write JSON sink")
	}
	txtPath, err := messageRepo.SaveTXT(msgs)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to write TXT sink")
	}

	log.Info().
		Int("generated", report.Generated).
		Int("skipped", report.Skipped).
		Str("csv", csvPath).
		Str("json", jsonPath).
		Str("txt", txtPath).
		Msg("✅ message generation complete")

	// Show a couple of rendered samples, handy when eyeballing a run.
	for i, m := range msgs {
		if i == 2 {
			break
		}
		log.Info().Str("to", m.Email).Str("message", m.Content).Msg("📋 sample")
	}
}
