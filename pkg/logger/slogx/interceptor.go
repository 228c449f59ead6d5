package slogx

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
)

func LoggingInterceptor(
	ctx context.Context,
	req any,
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (resp any, err error) {
	start := time.Now()
	logger := Default()

	method := slog.String("method", info.FullMethod)
	logger.Debug(ctx, "start handling grpc method", method)

	resp, err = handler(ctx, req)

	durAttr := slog.Duration("duration", time.Since(start))
	if err != nil {
		logger.Error(ctx, "finish grpc method with error", method, durAttr, Err(err))
	} else {
		logger.Debug(ctx, "finish grpc method", method, durAttr)
	}

	return
}
