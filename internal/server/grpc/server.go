// Package grpc serves the standard health service over gRPC. Every call goes
// through the same token gate as the REST API unless its full method name is
// listed as public.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/goldmanager/internal/logging"
	"github.com/dmitrijs2005/goldmanager/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type TokenValidator interface {
	Validate(ctx context.Context, rawToken string) (*auth.Principal, error)
}

type GRPCServer struct {
	address       string
	validator     TokenValidator
	publicMethods map[string]struct{}
	logger        logging.Logger
	health        *health.Server
}

func NewGRPCServer(a string, l logging.Logger, v TokenValidator, publicMethods []string) *GRPCServer {
	s := &GRPCServer{
		address:       a,
		validator:     v,
		publicMethods: make(map[string]struct{}, len(publicMethods)),
		logger:        l.With("module", "grpc_server"),
		health:        health.NewServer(),
	}
	for _, m := range publicMethods {
		s.publicMethods[m] = struct{}{}
	}
	return s
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {

	// creates gRPC-server
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(s.accessTokenInterceptor),
		grpc.ChainStreamInterceptor(s.accessTokenStreamInterceptor),
	)

	// registers service
	healthpb.RegisterHealthServer(srv, s.health)
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
