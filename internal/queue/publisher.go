package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// dialTimeout bounds the TCP connect and AMQP handshake of one publish.
const dialTimeout = 5 * time.Second

// Publisher sends seatmap events to RabbitMQ.  It dials per message: charts
// are generated rarely and a short-lived connection needs no supervision.
type Publisher struct {
	URL    string
	Logger *zap.Logger
}

func NewPublisher(url string, logger *zap.Logger) *Publisher {
	return &Publisher{URL: url, Logger: logger}
}

// PublishSeatmapGenerated publishes event as a persistent JSON message.
// Errors are logged and returned; callers are free to ignore them.
func (p *Publisher) PublishSeatmapGenerated(ctx context.Context, event SeatmapGeneratedEvent) error {
	timeout := dialTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(deadline))
	}
	conn, err := amqp.DialConfig(p.URL, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(timeout),
	})
	if err != nil {
		p.Logger.Warn("rabbitmq: dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.Logger.Warn("rabbitmq: channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := declare(ch); err != nil {
		p.Logger.Warn("rabbitmq: queue declare failed", zap.Error(err))
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		MessageId:    event.ExportID,
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", SeatmapGeneratedQueue, false, false, pub); err != nil {
		p.Logger.Warn("rabbitmq: publish failed", zap.Error(err))
		return err
	}
	return nil
}

// declare makes sure the durable queue exists.  Both sides call it so the
// order in which publisher and consumer start does not matter.
func declare(ch *amqp.Channel) (amqp.Queue, error) {
	return ch.QueueDeclare(
		SeatmapGeneratedQueue, // name
		true,                  // durable
		false,                 // autoDelete
		false,                 // exclusive
		false,                 // noWait
		nil,                   // args
	)
}
