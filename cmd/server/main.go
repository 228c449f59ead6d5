package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/evgeniy-krivenko/video-notes/internal/api"
	"github.com/evgeniy-krivenko/video-notes/internal/api/health"
	notesapi "github.com/evgeniy-krivenko/video-notes/internal/api/notes"
	"github.com/evgeniy-krivenko/video-notes/internal/config"
	"github.com/evgeniy-krivenko/video-notes/internal/repository"
	"github.com/evgeniy-krivenko/video-notes/internal/repository/migrations"
	"github.com/evgeniy-krivenko/video-notes/internal/usecase/notes"
	"github.com/evgeniy-krivenko/video-notes/pkg/database"
	"github.com/evgeniy-krivenko/video-notes/pkg/grpcx"
	"github.com/evgeniy-krivenko/video-notes/pkg/gwserver"
	"github.com/evgeniy-krivenko/video-notes/pkg/logger/slogx"
)

const healthCheckInterval = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("run app: %v", err)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Parse()
	if err != nil {
		return fmt.Errorf("parse cfg: %v", err)
	}

	if err := slogx.InitGlobal(
		os.Stdout,
		cfg.App.LogLevel,
		cfg.App.Pretty,
		slogx.ContextHandler,
	); err != nil {
		return fmt.Errorf("init logger: %v", err)
	}

	pool, err := database.NewPGX(ctx, database.NewOptions(
		cfg.DatabaseURL,
		database.WithRetryAttempts(cfg.Database.RetryAttempts),
		database.WithMaxConns(cfg.Database.MaxConns),
		database.WithLogger(slogx.Default()),
	))
	if err != nil {
		return fmt.Errorf("init database: %v", err)
	}
	defer pool.Close()

	if err := migrations.Up(ctx, pool); err != nil {
		return fmt.Errorf("init schema: %v", err)
	}

	db := database.NewDatabase(pool)

	notesUC, err := notes.New(notes.NewOptions(repository.New(db)))
	if err != nil {
		return fmt.Errorf("init notes usecase: %v", err)
	}

	healthSvc := health.New(db)

	router := api.NewRouter(
		cfg.HTTP.GinMode,
		healthSvc,
		notesapi.New(notesUC),
	)

	httpSrv, err := gwserver.New(gwserver.NewOptions(
		cfg.HTTP.Addr,
		router,
		gwserver.WithMiddlewares(
			slogx.HTTPMiddleware,
			gwserver.RequestID,
			gwserver.CORS(cfg.HTTP.AllowedOrigins),
		),
		gwserver.WithLogger(slogx.Default()),
	))
	if err != nil {
		return fmt.Errorf("init http server: %v", err)
	}

	grpcSrv, err := grpcx.New(grpcx.NewOptions(
		cfg.GRPC.Addr,
		grpcx.WithServices(healthSvc),
		grpcx.WithLogger(slogx.Default()),
		grpcx.WithUnaryInterceptors(slogx.LoggingInterceptor),
		grpcx.WithTime(cfg.GRPC.KeepaliveTime),
		grpcx.WithTimeout(cfg.GRPC.KeepaliveTimeout),
		grpcx.WithMaxConcurrentStreams(cfg.GRPC.MaxConcurrentStreams),
	))
	if err != nil {
		return fmt.Errorf("init grpc server: %v", err)
	}

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error { return healthSvc.Run(ctx, healthCheckInterval) })
	eg.Go(func() error { return httpSrv.Run(ctx) })
	eg.Go(func() error { return grpcSrv.Run(ctx) })

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("wait app stop: %v", err)
	}

	slogx.Info(context.Background(), "app stopped")
	return nil
}
