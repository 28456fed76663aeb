// Package rest exposes the login, session and user-management endpoints over
// HTTP. Every route except the configured public ones passes through the
// bearer token gate.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/goldmanager/internal/logging"
	"github.com/dmitrijs2005/goldmanager/internal/server/auth"
	"github.com/dmitrijs2005/goldmanager/internal/server/models"
	"github.com/gorilla/mux"
)

const shutdownTimeout = 5 * time.Second

type Authenticator interface {
	Authenticate(ctx context.Context, userName, password string) (*auth.IssuedToken, error)
	Logout(ctx context.Context, userName string) bool
}

type TokenValidator interface {
	Validate(ctx context.Context, rawToken string) (*auth.Principal, error)
}

type UserService interface {
	Create(ctx context.Context, userName, password string) (*models.User, error)
	UpdatePassword(ctx context.Context, userName, newPassword string) error
	UpdateActivation(ctx context.Context, userName string, active bool) error
	List(ctx context.Context) ([]models.User, error)
}

type HTTPServer struct {
	address      string
	authn        Authenticator
	validator    TokenValidator
	users        UserService
	publicRoutes map[string]struct{}
	logger       logging.Logger
	handler      http.Handler
}

func NewHTTPServer(a string, l logging.Logger, authn Authenticator, v TokenValidator, us UserService, publicRoutes []string) *HTTPServer {
	s := &HTTPServer{
		address:      a,
		authn:        authn,
		validator:    v,
		users:        us,
		publicRoutes: make(map[string]struct{}, len(publicRoutes)),
		logger:       l.With("module", "http_server"),
	}
	for _, p := range publicRoutes {
		s.publicRoutes[p] = struct{}{}
	}
	// The gate wraps the whole router so unknown paths and wrong methods
	// answer 401 to unauthenticated callers too.
	s.handler = s.requestIDMiddleware(s.authMiddleware(s.newRouter()))
	return s
}

func (s *HTTPServer) newRouter() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.HandleFunc("/login", s.login).Methods(http.MethodPost)
	r.HandleFunc("/logout", s.logout).Methods(http.MethodPost)
	r.HandleFunc("/whoami", s.whoami).Methods(http.MethodGet)

	r.HandleFunc("/userService", s.listUsers).Methods(http.MethodGet)
	r.HandleFunc("/userService", s.createUser).Methods(http.MethodPost)
	r.HandleFunc("/userService/updatePassword/{username}", s.updatePassword).Methods(http.MethodPut)
	r.HandleFunc("/userService/userStatus/{username}", s.updateStatus).Methods(http.MethodPut)

	return r
}

// Handler returns the routed and gated handler, for tests and embedding.
func (s *HTTPServer) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(context.Background(), "HTTP shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
