package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/oksasatya/go-auth-api/config"
	"github.com/oksasatya/go-auth-api/pkg/helpers"
	"github.com/oksasatya/go-auth-api/pkg/mailer"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; email worker disabled")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}

	mg, err := mailer.NewMailgun(mailer.MailgunConfig{
		Domain: cfg.MailgunDomain,
		APIKey: cfg.MailgunAPIKey,
		Sender: cfg.MailgunSender,
	})
	if err != nil {
		logger.Fatalf("mailgun: %v", err)
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(16, 0, false); err != nil {
		logger.Fatalf("qos: %v", err)
	}
	if _, err := ch.QueueDeclare(cfg.RabbitMQEmailQueue, true, false, false, false, nil); err != nil {
		logger.Fatalf("queue declare: %v", err)
	}
	msgs, err := ch.Consume(cfg.RabbitMQEmailQueue, "", false, false, false, false, nil)
	if err != nil {
		logger.Fatalf("consume: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker := mailer.NewWorker(mg, logger, 15*time.Second)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range msgs {
			var ackErr error
			switch worker.Handle(ctx, msg.Body) {
			case mailer.Ack:
				ackErr = msg.Ack(false)
			case mailer.Drop:
				ackErr = msg.Nack(false, false)
			case mailer.Requeue:
				ackErr = msg.Nack(false, true)
			}
			if ackErr != nil {
				logger.WithError(ackErr).Warn("ack failed")
			}
		}
	}()

	logger.Infof("email worker listening on queue=%s", cfg.RabbitMQEmailQueue)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down...")
	cancel()
	_ = ch.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
