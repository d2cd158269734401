package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/rileysklar/BookNook/internal/api/handlers/http/activity"
	"github.com/rileysklar/BookNook/internal/api/handlers/http/library"
	"github.com/rileysklar/BookNook/internal/api/handlers/http/system"
	"github.com/rileysklar/BookNook/internal/auth"
	"github.com/rileysklar/BookNook/internal/config"
	"github.com/rileysklar/BookNook/internal/middleware"
	"github.com/rileysklar/BookNook/internal/service"
)

type Server struct {
	logger *slog.Logger
	router *chi.Mux
	cfg    config.Config
}

func NewServer(cfg *config.Config, logger *slog.Logger, svc *service.Service, tokens *auth.TokenManager) *Server {
	libraryHandler := library.NewHandler(logger, svc.LibraryService)
	activityHandler := activity.NewHandler(logger, svc.ActivityService)
	systemHandler := system.NewHandler(logger)

	r := InitRouter(libraryHandler, activityHandler, systemHandler, tokens, logger)

	return &Server{
		logger: logger,
		router: r,
		cfg:    *cfg,
	}
}

func InitRouter(
	libraryHandler *library.Handler,
	activityHandler *activity.Handler,
	systemHandler *system.Handler,
	tokens *auth.TokenManager,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewMux()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)

	r.Route("/api", func(api chi.Router) {
		api.Route("/libraries", func(lr chi.Router) {
			// reads are public, the map renders without a login; a
			// token still identifies the caller when one is sent
			lr.With(middleware.OptionalAuth(tokens, logger)).Get("/", libraryHandler.LibraryList)

			lr.Group(func(mr chi.Router) {
				mr.Use(middleware.Auth(tokens, logger))
				mr.Use(middleware.Limit(10, 20, 5*time.Minute, logger))

				mr.Post("/", libraryHandler.LibraryCreate)
				mr.Put("/{id}", libraryHandler.LibraryUpdate)
				mr.Delete("/{id}", libraryHandler.LibraryDelete)
			})
		})

		api.Route("/activities", func(ar chi.Router) {
			ar.Use(middleware.Auth(tokens, logger))
			ar.Use(middleware.Limit(10, 20, 5*time.Minute, logger))

			ar.Get("/", activityHandler.ActivityList)
			ar.Post("/", activityHandler.ActivityRecord)
			ar.Post("/search", activityHandler.SearchRecord)
		})

		api.Get("/health", systemHandler.SystemHealth)
	})

	return r
}

func (s *Server) Run(ctx context.Context) error {
	port := s.cfg.Http.Port
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Http.ReadTimeout,
		WriteTimeout: s.cfg.Http.WriteTimeout,
		IdleTimeout:  30 * time.Second,
	}

	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("🚀 Starting HTTP server",
			slog.String("addr", srv.Addr),
			slog.Duration("read_timeout", s.cfg.Http.ReadTimeout),
			slog.Duration("write_timeout", s.cfg.Http.WriteTimeout),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("ListenAndServe error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("🛑 Shutting down HTTP server", slog.String("reason", ctx.Err().Error()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Http.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Server shutdown failed", slog.Any("error", err))
			return err
		}
		return nil

	case err := <-errChan:
		return err
	}
}
