package db

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"campsite-booking/internal/domain/user"
	"campsite-booking/internal/pkg/config"
	"campsite-booking/internal/pkg/password"
)

//go:embed schema.sql
var schemaSQL string

// Connect opens the pool, applies the idempotent schema and seeds the
// bootstrap admin account when configured.
func Connect(ctx context.Context, cfg config.Config) (*pgxpool.Pool, func(), error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DB.BuildDSN())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	poolCfg.MaxConns = 20
	poolCfg.MaxConnIdleTime = 10 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, err
	}

	if err := seedAdmin(ctx, pool, cfg.Admin); err != nil {
		pool.Close()
		return nil, nil, err
	}

	return pool, pool.Close, nil
}

// Migrate applies the schema. Every statement is CREATE ... IF NOT EXISTS,
// so running it against an up-to-date database is a no-op.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func seedAdmin(ctx context.Context, pool *pgxpool.Pool, admin config.AdminConfig) error {
	if admin.Email == "" || admin.Password == "" {
		return nil
	}
	hash, err := password.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	account, err := user.NewUser(admin.Email, hash, user.RoleAdmin)
	if err != nil {
		return fmt.Errorf("invalid admin account config: %w", err)
	}
	_, err = pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO NOTHING`,
		account.ID(), account.Email(), account.PasswordHash(), account.Role().String())
	if err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	return nil
}
