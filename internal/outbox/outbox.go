// Package outbox delivers messages queued by other services through the bot.
//
// Producers publish JSON of the form {"chat_id":123,"text":"..."} to a
// RabbitMQ queue; the consumer sends each one as a plain text message.
package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rabbitmq/amqp091-go"
)

const DefaultQueue = "bot_outbox"

type Message struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

// Sender is the part of the bot the outbox needs.
type Sender interface {
	SendText(chatID int64, text string) error
}

var (
	ErrNoChat = errors.New("missing chat_id")
	ErrNoText = errors.New("missing text")
)

// Decode parses and validates one outbox body.
func Decode(body []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(body, &msg); err != nil {
		return Message{}, fmt.Errorf("decode outbox message: %w", err)
	}
	if msg.ChatID == 0 {
		return Message{}, ErrNoChat
	}
	if strings.TrimSpace(msg.Text) == "" {
		return Message{}, ErrNoText
	}
	return msg, nil
}

type Client struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	logger  *slog.Logger
}

func Dial(url string, logger *slog.Logger) (*Client, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	return &Client{conn: conn, channel: ch, logger: logger}, nil
}

func (c *Client) Close() error {
	if err := c.channel.Close(); err != nil && !errors.Is(err, amqp091.ErrClosed) {
		c.conn.Close()
		return err
	}
	return c.conn.Close()
}

func (c *Client) declare(queue string) error {
	if _, err := c.channel.QueueDeclare(queue, false, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", queue, err)
	}
	return nil
}

// Publish enqueues msg on queue.
func (c *Client) Publish(ctx context.Context, queue string, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if err := c.declare(queue); err != nil {
		return err
	}
	return c.channel.PublishWithContext(ctx, "", queue, false, false,
		amqp091.Publishing{
			ContentType: "application/json",
			Body:        body,
		})
}

// Consume delivers messages from queue through s until ctx is cancelled or
// the broker closes the channel.
func (c *Client) Consume(ctx context.Context, queue string, s Sender) error {
	if err := c.declare(queue); err != nil {
		return err
	}
	deliveries, err := c.channel.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", queue, err)
	}
	c.logger.Info("outbox listening", "queue", queue)
	return consume(ctx, deliveries, s, c.logger)
}

func consume(ctx context.Context, deliveries <-chan amqp091.Delivery, s Sender, logger *slog.Logger) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("outbox channel closed by broker")
			}
			deliver(d, s, logger)
		}
	}
}

// deliver acks on success and drops the message otherwise. Nothing is
// requeued, so a poison message cannot loop.
func deliver(d amqp091.Delivery, s Sender, logger *slog.Logger) {
	msg, err := Decode(d.Body)
	if err != nil {
		logger.Warn("outbox message skipped", "error", err)
		_ = d.Nack(false, false)
		return
	}

	if err := s.SendText(msg.ChatID, msg.Text); err != nil {
		logger.Error("outbox send failed", "chat_id", msg.ChatID, "error", err)
		_ = d.Nack(false, false)
		return
	}

	logger.Info("outbox delivered", "chat_id", msg.ChatID)
	_ = d.Ack(false)
}
