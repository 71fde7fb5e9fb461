package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/mbrandeis/taskloom/internal/domain"
)

const inviteRoutingKey = "invitation.sent"

// inviteEvent is the message published for the mailer to consume.
type inviteEvent struct {
	Email       string    `json:"email"`
	ProjectID   string    `json:"projectId"`
	ProjectName string    `json:"projectName"`
	Role        string    `json:"role"`
	InvitedBy   string    `json:"invitedBy"`
	SentAt      time.Time `json:"sentAt"`
}

// AMQPNotifier publishes invitation events to a RabbitMQ topic exchange. The
// actual email delivery happens in a separate consumer.
type AMQPNotifier struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	log      *slog.Logger
}

// NewAMQPNotifier connects to the broker and declares the exchange.
func NewAMQPNotifier(url, exchange string, log *slog.Logger) (*AMQPNotifier, error) {
	if log == nil {
		log = slog.Default()
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dialing rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("opening channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declaring exchange %s: %w", exchange, err)
	}
	return &AMQPNotifier{conn: conn, ch: ch, exchange: exchange, log: log}, nil
}

func (n *AMQPNotifier) InviteSent(ctx context.Context, inv *domain.Invitation) {
	event := inviteEvent{
		Email:       inv.Email,
		ProjectID:   inv.ProjectID,
		ProjectName: inv.ProjectName,
		Role:        string(inv.Role),
		InvitedBy:   inv.InvitedBy,
		SentAt:      time.Now().UTC(),
	}
	body, err := json.Marshal(event)
	if err != nil {
		n.log.ErrorContext(ctx, "encoding invite event", "error", err)
		return
	}
	err = n.ch.PublishWithContext(ctx, n.exchange, inviteRoutingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		n.log.ErrorContext(ctx, "publishing invite event",
			"email", inv.Email, "project", inv.ProjectID, "error", err)
	}
}

func (n *AMQPNotifier) Close() error {
	if n.ch != nil {
		_ = n.ch.Close()
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}
