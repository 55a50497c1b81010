// cmd/server/main.go
package main

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/unclebandit/event-outreach/internal/config"
	"github.com/unclebandit/event-outreach/internal/controller"
	"github.com/unclebandit/event-outreach/internal/repository"
	"github.com/unclebandit/event-outreach/internal/service"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("⚠️ no .env file found, relying on OS environment variables")
	}
	cfg := config.MustLoad()

	if dump, err := cfg.Dump(); err == nil {
		log.Info().Msg("configuration:\n" + dump)
	}

	statusController := &controller.StatusController{
		Messages:  repository.NewMessageRepository(cfg.Files.MessageDir, nil),
		Queue:     &repository.QueueRepository{Path: cfg.Files.QueueJSON},
		Messenger: &service.MessageService{},
	}

	r := chi.NewRouter()

	r.Get("/healthz", statusController.Health)
	r.Get("/messages", statusController.ListMessages)
	r.Get("/queue", statusController.GetQueue)
	r.Get("/queue/stats", statusController.QueueStats)
	r.Post("/messages/preview", statusController.Preview)

	log.Info().Str("addr", cfg.Server.Addr).Msg("🚀 status server running")
	log.Fatal().Err(http.ListenAndServe(cfg.Server.Addr, r)).Msg("server stopped")
}
