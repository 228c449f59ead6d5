package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type fakePinger struct {
	err error
}

func (p *fakePinger) Ping(context.Context) error { return p.err }

func status(t *testing.T, s *Service, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()

	resp, err := s.srv.Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)

	return resp.GetStatus()
}

func TestRoot(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(&fakePinger{}).RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","message":"YouTube Notes API is running"}`, rec.Body.String())
}

func TestCheck_FollowsDatabase(t *testing.T) {
	db := &fakePinger{}
	s := New(db)

	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, s, ""))

	s.Check(context.Background())
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, s, ""))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, s, NotesService))

	db.err = errors.New("connection refused")
	s.Check(context.Background())
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, s, NotesService))
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	s := New(&fakePinger{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, time.Hour) }()

	require.Eventually(t, func() bool {
		return status(t, s, "") == healthpb.HealthCheckResponse_SERVING
	}, time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, s, ""))
}
