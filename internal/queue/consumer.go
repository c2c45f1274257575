package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/smtp"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"loadboard/internal/config"
)

const emailQueueName = "email.outbound"

// StartEmailConsumer connects to RabbitMQ, declares the email.outbound
// queue (durable) and delivers queued notices over SMTP. When no SMTP host
// is configured, messages are logged instead of sent, which keeps local
// development working without a mail server. The function runs a
// reconnect loop with exponential backoff and never returns under normal
// operation; failed messages are rejected without requeue so a poison
// message cannot wedge the queue.
func StartEmailConsumer(cfg config.Config) {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(cfg.AMQPURL)
		if err != nil {
			log.Warn().Err(err).Dur("retry_in", backoff).Msg("email-consumer: dial broker failed")
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn, cfg); err != nil {
			log.Warn().Err(err).Msg("email-consumer: consume loop ended, reconnecting")
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection, cfg config.Config) error {
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(20, 0, false); err != nil {
		log.Warn().Err(err).Msg("email-consumer: set QoS failed")
	}

	if _, err := ch.QueueDeclare(emailQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(emailQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := deliver(d.Body, cfg); err != nil {
			log.Error().Err(err).Msg("email-consumer: delivery failed")
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func deliver(body []byte, cfg config.Config) error {
	var ev EmailEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if cfg.SMTPHost == "" {
		log.Info().
			Str("kind", string(ev.Kind)).
			Uint64("user_id", ev.UserID).
			Str("to", ev.To).
			Str("subject", ev.Subject).
			Msg("email-consumer: no SMTP host configured, logging instead of sending")
		return nil
	}
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		cfg.SMTPFrom, ev.To, ev.Subject, ev.Body)
	addr := cfg.SMTPHost + ":" + cfg.SMTPPort
	if err := smtp.SendMail(addr, nil, cfg.SMTPFrom, []string{ev.To}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	log.Info().Str("kind", string(ev.Kind)).Uint64("user_id", ev.UserID).Msg("email delivered")
	return nil
}
