package grpcx

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
)

type logger interface {
	Info(ctx context.Context, msg string, attrs ...slog.Attr)
	Error(ctx context.Context, msg string, attrs ...slog.Attr)
}

type Service interface {
	RegisterService(grpc.ServiceRegistrar)
}

//go:generate options-gen -out-filename=server_options.gen.go -from-struct=Options -all-variadic true
type Options struct {
	addr     string    `option:"mandatory" validate:"required,hostname_port"`
	services []Service `validate:"required,min=1"`

	logger logger

	unaryInterceptors []grpc.UnaryServerInterceptor
	grpcOptions       []grpc.ServerOption

	maxConnIdle          time.Duration `default:"5m"`
	time                 time.Duration `default:"2h"`
	timeout              time.Duration `default:"20s"`
	maxConcurrentStreams uint32        `default:"100"`
}

type Server struct {
	opts Options
	srv  *grpc.Server
}

func New(opts Options) (*Server, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("grpc server validate: %v", err)
	}

	if opts.logger == nil {
		opts.logger = &noopLogger{}
	}

	lg := opts.logger
	recoveryHandler := recovery.WithRecoveryHandlerContext(func(ctx context.Context, p any) error {
		lg.Error(ctx, "recovered from panic in grpc handler", slog.Any("panic", p))
		return status.Error(codes.Internal, "internal error")
	})

	// Recovery runs innermost so the caller's interceptors still observe
	// the Internal status it produces.
	interceptors := append(
		opts.unaryInterceptors,
		recovery.UnaryServerInterceptor(recoveryHandler),
	)

	opts.grpcOptions = append(opts.grpcOptions,
		grpc.KeepaliveParams(keepalive.ServerParameters{
			MaxConnectionIdle: opts.maxConnIdle,
			Time:              opts.time,
			Timeout:           opts.timeout,
		}),
		grpc.MaxConcurrentStreams(opts.maxConcurrentStreams),
		grpc.ChainUnaryInterceptor(interceptors...),
	)

	srv := grpc.NewServer(
		opts.grpcOptions...,
	)

	for _, svc := range opts.services {
		svc.RegisterService(srv)
	}

	reflection.Register(srv)

	return &Server{opts: opts, srv: srv}, nil
}

func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.opts.addr)
	if err != nil {
		return fmt.Errorf("run grpc: %v", err)
	}

	return s.Serve(ctx, listener)
}

// Serve runs on an existing listener until ctx is done.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	go func() {
		<-ctx.Done()
		s.srv.GracefulStop()
	}()

	s.opts.logger.Info(
		ctx,
		"run grpc server",
		slog.String("addr", listener.Addr().String()),
	)

	if err := s.srv.Serve(listener); err != nil && err != grpc.ErrServerStopped {
		return fmt.Errorf("listen and server: %v", err)
	}

	return nil
}

type noopLogger struct{}

func (n *noopLogger) Info(context.Context, string, ...slog.Attr) {}

func (n *noopLogger) Error(context.Context, string, ...slog.Attr) {}
