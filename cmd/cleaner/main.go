// cmd/cleaner/main.go
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

	repo := &repository.ParticipantRepository{
		RawPath:     cfg.Files.RawCSV,
		CleanedPath: cfg.Files.CleanedCSV,
	}

	raws, err := repo.LoadRaw()
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Files.RawCSV).Msg("failed to read raw participants")
	}

	cleaner := &service.CleanerService{}
	participants, report := cleaner.Clean(raws)

	if err := repo.SaveCleaned(participants); err != nil {
		log.Fatal().Err(err).Str("path", cfg.Files.CleanedCSV).Msg("failed to write cleaned participants")
	}

	log.Info().
		Int("total", report.TotalRows).
		Int("kept", report.Kept).
		Int("duplicates", report.Duplicates).
		Int("missing_email", report.MissingEmail).
		Int("flagged_links", report.FlaggedLinks).
		Str("output", cfg.Files.CleanedCSV).
		Msg("✅ cleaning complete")
}
