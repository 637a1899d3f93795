// Package container builds the shared infrastructure once at startup and
// hands it to the router. Nothing in here is global.
package container

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-auth-api/config"
	repo "github.com/oksasatya/go-auth-api/internal/domain/repository"
	"github.com/oksasatya/go-auth-api/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-auth-api/internal/infrastructure/postgres"
	"github.com/oksasatya/go-auth-api/pkg/helpers"
	"github.com/oksasatya/go-auth-api/pkg/mailer"
)

type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	PGPool    *pgxpool.Pool            // nil with the memory store
	Redis     *redis.Client            // nil when REDIS_ADDR is empty
	RabbitPub *helpers.RabbitPublisher // nil unless MAIL_TRANSPORT=queue

	JWT      *helpers.JWTManager
	Notifier mailer.Notifier
	Accounts repo.AccountRepository
	Audit    repo.AuditRepository // nil when auditing is off
}

// New wires every dependency described by cfg. Call Close on shutdown.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	c.JWT = helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL,
		helpers.WithActionSecret(cfg.JWTActionSecret))

	if err := c.initStore(ctx); err != nil {
		c.Close()
		return nil, err
	}

	if cfg.RedisAddr != "" {
		c.Redis = helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := c.Redis.Ping(ctx).Err(); err != nil {
			logger.WithError(err).Warn("redis unavailable; profile cache will miss until it recovers")
		}
	}

	if err := c.initNotifier(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Container) initStore(ctx context.Context) error {
	cfg := c.Config
	switch cfg.StoreDriver {
	case "memory":
		c.Logger.Warn("using in-memory account store; data is lost on restart")
		c.Accounts = memory.NewAccountRepository()
		return nil
	case "postgres":
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{
			MaxConns:        cfg.DBMaxConns,
			MinConns:        cfg.DBMinConns,
			MaxConnLifetime: cfg.DBMaxConnLife,
		})
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		c.PGPool = pool
		c.Accounts = pginfra.NewAccountRepository(pool)
		if cfg.AuditEnabled {
			c.Audit = pginfra.NewAuditRepository(pool)
		}
		return nil
	default:
		return fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func (c *Container) initNotifier() error {
	cfg := c.Config
	if !cfg.MailSendEnabled {
		c.Logger.Info("MAIL_SEND_ENABLED=false; emails are logged, not sent")
		c.Notifier = mailer.NewLogNotifier(c.Logger)
		return nil
	}
	switch cfg.MailTransport {
	case "mailgun":
		mg, err := mailer.NewMailgun(mailer.MailgunConfig{
			Domain: cfg.MailgunDomain,
			APIKey: cfg.MailgunAPIKey,
			Sender: cfg.MailgunSender,
		})
		if err != nil {
			return err
		}
		c.Notifier = mg
	case "queue":
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			return fmt.Errorf("connect rabbitmq: %w", err)
		}
		c.RabbitPub = pub
		c.Notifier = mailer.NewQueueNotifier(pub)
	case "log":
		c.Notifier = mailer.NewLogNotifier(c.Logger)
	default:
		return fmt.Errorf("unknown mail transport %q", cfg.MailTransport)
	}
	return nil
}

func (c *Container) Close() {
	if c.RabbitPub != nil {
		c.RabbitPub.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.PGPool != nil {
		c.PGPool.Close()
	}
}
