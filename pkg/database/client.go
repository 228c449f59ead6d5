package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/jackc/pgx/v5/pgxpool"
)

type logger interface {
	Warn(context.Context, string, ...slog.Attr)
}

//go:generate go run github.com/kazhuravlev/options-gen/cmd/options-gen@v0.55.3 -out-filename=client_options.gen.go -from-struct=Options
type Options struct {
	dsn string `option:"mandatory" validate:"required"`

	retry         bool          `default:"true"`
	retryAttempts uint          `default:"1" validate:"min=1,max=10"`
	retryDelay    time.Duration `default:"300ms"`

	logger logger

	maxConns int32 `default:"5" validate:"min=1,max=100"`
}

// NewPGX opens a pool for opts.dsn and pings it until it answers or the
// retry budget runs out.
func NewPGX(ctx context.Context, opts Options) (*pgxpool.Pool, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validate options for pgx: %v", err)
	}

	if opts.logger == nil {
		opts.logger = noopLogger{}
	}

	cfg, err := pgxpool.ParseConfig(opts.dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %v", err)
	}
	cfg.MaxConns = opts.maxConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open new pgx pool: %v", err)
	}

	if !opts.retry {
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ping to database: %v", err)
		}
		return pool, nil
	}

	if err := retry.Do(
		func() error { return pool.Ping(ctx) },
		retry.Context(ctx),
		retry.Delay(opts.retryDelay),
		retry.Attempts(opts.retryAttempts),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			opts.logger.Warn(
				ctx,
				"failed ping to database",
				slog.Any("err", err),
				slog.Uint64("attempt", uint64(attempt)),
			)
		}),
	); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping to database: %v", err)
	}

	return pool, nil
}

type noopLogger struct{}

func (n noopLogger) Warn(context.Context, string, ...slog.Attr) {}
