package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-auth-api/config"
	pginfra "github.com/oksasatya/go-auth-api/internal/infrastructure/postgres"
	"github.com/oksasatya/go-auth-api/pkg/helpers"
)

// Seeds a verified demo account. Override with SEED_EMAIL, SEED_NAME and SEED_PASSWORD.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{MaxConns: 1})
	if err != nil {
		logger.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	email := envOr("SEED_EMAIL", "demo.user@gmail.com")
	name := envOr("SEED_NAME", "Demo User")
	password := envOr("SEED_PASSWORD", "DemoPass1!")

	acc, err := seedAccount(ctx, pool, name, email, password)
	if err != nil {
		logger.Fatalf("failed to seed account: %v", err)
	}
	logger.WithField("account_id", acc.ID).WithField("email", acc.Email).Info("seeded verified account")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
