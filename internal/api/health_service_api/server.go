package health_service_api

import (
	"context"

	"github.com/Domenick1991/airadmin/internal/domain"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// ServiceName is the name clients may pass in HealthCheckRequest.Service.
const ServiceName = "airadmin"

type Checker interface {
	Check(ctx context.Context) domain.HealthReport
}

// Server implements grpc.health.v1.Health on top of the store probe.
type Server struct {
	checker Checker
	healthpb.UnimplementedHealthServer
}

func NewServer(checker Checker) *Server {
	return &Server{checker: checker}
}

func (s *Server) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	if svc := req.GetService(); svc != "" && svc != ServiceName {
		return nil, status.Errorf(codes.NotFound, "unknown service %q", svc)
	}

	report := s.checker.Check(ctx)
	resp := &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}
	if report.Status != domain.HealthOK {
		resp.Status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	return resp, nil
}

func (s *Server) List(ctx context.Context, _ *healthpb.HealthListRequest) (*healthpb.HealthListResponse, error) {
	resp, err := s.Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		return nil, err
	}
	return &healthpb.HealthListResponse{
		Statuses: map[string]*healthpb.HealthCheckResponse{ServiceName: resp},
	}, nil
}
