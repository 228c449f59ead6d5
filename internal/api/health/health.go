package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	v1 "github.com/evgeniy-krivenko/video-notes/pkg/api/notes/v1"
	"github.com/evgeniy-krivenko/video-notes/pkg/grpcx"
	"github.com/evgeniy-krivenko/video-notes/pkg/logger/slogx"
)

// NotesService is the service name reported alongside the overall ("")
// status.
const NotesService = "notes.v1.NoteAPI"

const rootMessage = "YouTube Notes API is running"

var _ grpcx.Service = (*Service)(nil)

type pinger interface {
	Ping(ctx context.Context) error
}

// Service serves GET / over HTTP and grpc.health.v1.Health over gRPC. The
// gRPC status follows the database: NOT_SERVING while pings fail.
type Service struct {
	srv *grpchealth.Server
	db  pinger
}

func New(db pinger) *Service {
	srv := grpchealth.NewServer()
	srv.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	srv.SetServingStatus(NotesService, healthpb.HealthCheckResponse_NOT_SERVING)

	return &Service{srv: srv, db: db}
}

// RegisterService implements grpcx.Service.
func (s *Service) RegisterService(r grpc.ServiceRegistrar) {
	healthpb.RegisterHealthServer(r, s.srv)
}

func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/", s.Root)
}

func (s *Service) Root(c *gin.Context) {
	c.JSON(http.StatusOK, v1.Health{Status: "ok", Message: rootMessage})
}

func (s *Service) setStatus(st healthpb.HealthCheckResponse_ServingStatus) {
	s.srv.SetServingStatus("", st)
	s.srv.SetServingStatus(NotesService, st)
}

// Check pings the database once and publishes the result.
func (s *Service) Check(ctx context.Context) {
	if err := s.db.Ping(ctx); err != nil {
		slogx.Warn(ctx, "database ping failed", slogx.Err(err))
		s.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
		return
	}

	s.setStatus(healthpb.HealthCheckResponse_SERVING)
}

// Run checks every interval until ctx is done, then marks everything
// NOT_SERVING so watchers see the shutdown.
func (s *Service) Run(ctx context.Context, interval time.Duration) error {
	s.Check(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.srv.Shutdown()
			slogx.Info(context.Background(), "health service stopped", slog.String("reason", ctx.Err().Error()))
			return nil
		case <-ticker.C:
			s.Check(ctx)
		}
	}
}
