// Package mailer publishes lifecycle email events to RabbitMQ. Publishing
// is fire and forget from the caller's perspective: errors are logged and
// returned, and every caller is expected to ignore them so an email outage
// never fails registration or an admin decision.
package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"loadboard/internal/model"
	"loadboard/internal/queue"
)

const emailQueueName = "email.outbound"

// Publisher publishes email events for one broker URL. BaseURL is the
// externally reachable address of this API, used to build verify links.
type Publisher struct {
	URL     string
	BaseURL string
}

func NewPublisher(amqpURL, baseURL string) *Publisher {
	return &Publisher{URL: amqpURL, BaseURL: baseURL}
}

// Publish puts one event on the email.outbound queue, marked persistent.
func (p *Publisher) Publish(ctx context.Context, ev queue.EmailEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		log.Warn().Err(err).Msg("mailer: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Warn().Err(err).Msg("mailer: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(emailQueueName, true, false, false, false, nil); err != nil {
		log.Warn().Err(err).Msg("mailer: queue declare failed")
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", emailQueueName, false, false, pub); err != nil {
		log.Warn().Err(err).Msg("mailer: publish failed")
		return err
	}
	return nil
}

// SendVerification queues the verification email containing the token
// link. Errors are logged inside Publish and swallowed here.
func (p *Publisher) SendVerification(ctx context.Context, u model.User, token string) {
	link := fmt.Sprintf("%s/api/verify?token=%s", p.BaseURL, token)
	_ = p.Publish(ctx, queue.EmailEvent{
		Kind:    queue.EmailVerification,
		UserID:  u.ID,
		To:      u.Email,
		Subject: "Verify your email address",
		Body: fmt.Sprintf("Hi %s,\n\nPlease verify your email address by opening the link below within 24 hours:\n\n%s\n",
			u.FullName(), link),
		QueuedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// SendApproval queues the approval notice with the fresh verification
// link the user must open before logging in.
func (p *Publisher) SendApproval(ctx context.Context, u model.User, token string) {
	link := fmt.Sprintf("%s/api/verify?token=%s", p.BaseURL, token)
	_ = p.Publish(ctx, queue.EmailEvent{
		Kind:    queue.EmailApproval,
		UserID:  u.ID,
		To:      u.Email,
		Subject: "Your account has been approved",
		Body: fmt.Sprintf("Hi %s,\n\nYour account was approved. Confirm your email once more to activate login:\n\n%s\n",
			u.FullName(), link),
		QueuedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// SendRejection queues the rejection notice with the optional reason.
func (p *Publisher) SendRejection(ctx context.Context, u model.User, reason string) {
	body := fmt.Sprintf("Hi %s,\n\nUnfortunately your registration was not approved.\n", u.FullName())
	if reason != "" {
		body += "\nReason: " + reason + "\n"
	}
	_ = p.Publish(ctx, queue.EmailEvent{
		Kind:     queue.EmailRejection,
		UserID:   u.ID,
		To:       u.Email,
		Subject:  "Your registration was not approved",
		Body:     body,
		QueuedAt: time.Now().UTC().Format(time.RFC3339),
	})
}
