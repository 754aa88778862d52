package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/codejudge.net/internal/config"
	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/services/problem"
	"gitlab.com/codejudge.net/internal/core/services/submission"
	"gitlab.com/codejudge.net/internal/handlers"
	"gitlab.com/codejudge.net/internal/handlers/problems"
	"gitlab.com/codejudge.net/internal/handlers/submissions"
)

type ServiceProvider struct {
	submissionService submission.ISubmissionService
	problemService    problem.IProblemService
}

func NewServiceProvider(
	submissionService submission.ISubmissionService,
	problemService problem.IProblemService,
) *ServiceProvider {
	return &ServiceProvider{
		submissionService: submissionService,
		problemService:    problemService,
	}
}

type Server struct {
	router          *mux.Router
	srv             *http.Server
	listener        net.Listener
	Port            int
	ServiceName     string
	ServiceProvider ServiceProvider
	middleware      *handlers.MiddlewareProvider
	logger          primary.Logger
}

func NewServer(cfg *config.HttpConfig, serviceProvider ServiceProvider, middleware *handlers.MiddlewareProvider, logger primary.Logger) *Server {
	return &Server{
		Port:            cfg.Port,
		ServiceName:     cfg.ServiceName,
		ServiceProvider: serviceProvider,
		middleware:      middleware,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	if s.ServiceProvider.submissionService == nil || s.ServiceProvider.problemService == nil {
		return errors.New("http server: missing services")
	}

	r := mux.NewRouter()
	r.Use(s.middleware.CORSMiddleware)
	handlers.RegisterHealth(r, s.ServiceName)
	submissions.
		NewSubmissionHandler(s.ServiceProvider.submissionService, s.logger).
		RegisterRoutes(r, s.middleware.JWTMiddleware)
	problems.NewProblemHandler(s.ServiceProvider.problemService).RegisterRoutes(r)
	s.router = r
	return nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start binds the port and serves in the background
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return errors.New("http server: Init was not called")
	}

	// requests keep ctx values but not its cancellation; Stop drains them
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.srv.Addr, err)
	}
	s.listener = ln

	go func() {
		s.logger.Info("Server listening", "addr", ln.Addr().String(), "service", s.ServiceName)
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
		}
	}()
	return nil
}

// Addr returns the bound address once the server is started
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop waits for in-flight submissions until ctx expires
func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	s.logger.Info("Shutting down http server...")
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", "error", err)
		return err
	}
	return nil
}
