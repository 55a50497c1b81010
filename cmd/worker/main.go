// cmd/worker/main.go
package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/streadway/amqp"

	"github.com/unclebandit/event-outreach/internal/config"
	"github.com/unclebandit/event-outreach/internal/model"
	"github.com/unclebandit/event-outreach/internal/sender"
	"github.com/unclebandit/event-outreach/internal/service"
)

// The worker is the chat-bot side of the queue: it drains the broker the
// automation stage publishes to and posts each entry to Telegram,
// requeueing retryable failures.
func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("⚠️ no .env file found, relying on OS environment variables")
	}
	cfg := config.MustLoad()

	if cfg.Broker.URL == "" {
		log.Fatal().Msg("❌ AMQP_URL is required for the worker")
	}
	if cfg.Telegram.BotToken == "" {
		log.Fatal().Msg("❌ TELEGRAM_BOT_TOKEN is required for the worker")
	}

	ctx := context.Background()
	tg := sender.NewTelegramSender(cfg.Telegram)
	if err := tg.ValidateToken(ctx); err != nil {
		log.Fatal().Err(err).Msg("❌ telegram bot token validation failed")
	}
	worker := service.NewWorker(tg)

	conn, err := amqp.Dial(cfg.Broker.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to broker")
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open a channel")
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		cfg.Broker.QueueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to declare queue")
	}

	msgs, err := ch.Consume(
		q.Name,
		"",
		false, // autoAck off, acks follow the send outcome
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register consumer")
	}

	log.Info().Str("queue", q.Name).Msg("🤖 worker running, waiting for messages")

	for d := range msgs {
		var entry model.QueueEntry
		if err := json.Unmarshal(d.Body, &entry); err != nil {
			log.Warn().Err(err).Msg("⚠️ invalid entry payload, dropping")
			d.Ack(false)
			continue
		}

		if err := worker.Process(ctx, &entry); err != nil {
			// Still retryable: republish the entry with its bumped
			// attempt count. A plain Nack would redeliver the stale body
			// and retry forever.
			body, _ := json.Marshal(&entry)
			if err := ch.Publish("", q.Name, false, false, amqp.Publishing{
				ContentType: "application/json",
				Body:        body,
			}); err != nil {
				log.Warn().Err(err).Str("id", entry.ID).Msg("⚠️ failed to requeue entry")
			}
		}
		d.Ack(false)
	}
}
