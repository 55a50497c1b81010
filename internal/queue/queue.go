package queue

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
	"github.com/streadway/amqp"

	"github.com/unclebandit/event-outreach/internal/model"
)

// Publisher hands pending queue entries to the chat-bot broker. The
// persisted queue JSON and the broker carry the same entries; the broker
// is the live handoff, the file the durable record.
type Publisher interface {
	Publish(entry *model.QueueEntry) error
	Close() error
}

// AMQPPublisher publishes entries onto a durable RabbitMQ queue that the
// chat-bot worker consumes.
type AMQPPublisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue amqp.Queue
}

func NewAMQPPublisher(url, queueName string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	q, err := ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &AMQPPublisher{conn: conn, ch: ch, queue: q}, nil
}

func (p *AMQPPublisher) Publish(entry *model.QueueEntry) error {
	body, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return p.ch.Publish(
		"",
		p.queue.Name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

func (p *AMQPPublisher) Close() error {
	if err := p.ch.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}

// LogPublisher stands in when no broker is configured; entries only go to
// the queue file.
type LogPublisher struct{}

func (LogPublisher) Publish(entry *model.QueueEntry) error {
	log.Debug().Str("id", entry.ID).Msg("no broker configured, entry kept in queue file only")
	return nil
}

func (LogPublisher) Close() error { return nil }
