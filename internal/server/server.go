// Package server is the composition root: it opens the store, builds the
// service and handler layers, wires routes and middleware, and runs the
// HTTP server with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/promptnexus/promptnexus/internal/auth"
	"github.com/promptnexus/promptnexus/internal/config"
	"github.com/promptnexus/promptnexus/internal/handler"
	"github.com/promptnexus/promptnexus/internal/listing"
	"github.com/promptnexus/promptnexus/internal/middleware"
	sqliteRepo "github.com/promptnexus/promptnexus/internal/repository/sqlite"
	"github.com/promptnexus/promptnexus/internal/service"
)

// Server owns the router and the store connection. The connection is closed
// during shutdown, after in-flight requests drain.
type Server struct {
	router *chi.Mux
	cfg    *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency chain: store → services → handlers →
// routes. Each layer receives only the interfaces it needs; handlers never
// see the store, services never see HTTP.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		cfg:    cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	// Same deadline the listing layer applies to its fetches.
	s.router.Use(chimiddleware.Timeout(s.cfg.FetchTimeout))
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.cfg.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()
	github := auth.NewGitHubProvider(s.cfg.GitHubClientID, s.cfg.GitHubClientSecret, s.cfg.GitHubCallbackURL)

	promptSvc := service.NewPromptService(s.db, s.logger)
	ratingSvc := service.NewRatingService(s.db, s.db, s.logger)
	interactionSvc := service.NewInteractionService(s.db, s.db, s.logger)
	analyticsSvc := service.NewAnalyticsService(s.db, s.db, s.db, s.db, s.logger)
	authSvc := service.NewAuthService(s.db, tokens, passwords, s.logger)
	profileSvc := service.NewProfileService(s.db, s.logger)

	// Cookies are marked Secure when the site is served over HTTPS; the
	// OAuth callback URL is the one place the deployment scheme shows up.
	secureCookies := strings.HasPrefix(s.cfg.GitHubCallbackURL, "https://")

	listingOpts := listing.Options{
		PageSize:       s.cfg.PageSize,
		GuestLimit:     s.cfg.GuestLimit,
		SearchDebounce: s.cfg.SearchDebounce,
		FetchTimeout:   s.cfg.FetchTimeout,
	}

	promptHandler := handler.NewPromptHandler(promptSvc, interactionSvc, listingOpts, s.logger)
	ratingHandler := handler.NewRatingHandler(ratingSvc, s.logger)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsSvc, s.logger)
	profileHandler := handler.NewProfileHandler(profileSvc, s.logger)
	authHandler := handler.NewAuthHandler(authSvc, github, secureCookies, s.logger)

	requireAuth := auth.RequireAuth(tokens)
	optionalAuth := auth.OptionalAuth(tokens)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.HandleSignUp)
			r.Post("/signin", authHandler.HandleSignIn)
			r.Post("/logout", authHandler.HandleLogout)
			r.Get("/github", authHandler.HandleGitHubLogin)
			r.Get("/github/callback", authHandler.HandleGitHubCallback)
		})

		r.Route("/prompts", func(r chi.Router) {
			// Reads are public but auth-aware: guests get the capped
			// preview, signed-in users the full catalogue.
			r.With(optionalAuth).Get("/", promptHandler.HandleList)
			r.With(optionalAuth).Get("/{id}", promptHandler.HandleGet)
			r.With(optionalAuth).Post("/{id}/copy", promptHandler.HandleCopy)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", promptHandler.HandleCreate)
				r.Put("/{id}", promptHandler.HandleUpdate)
				r.Delete("/{id}", promptHandler.HandleDelete)
				r.Post("/{id}/rating", ratingHandler.HandleRate)
				r.Get("/{id}/rating", ratingHandler.HandleGetUserRating)
			})
		})

		r.Route("/me", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", authHandler.HandleMe)
			r.Get("/analytics", analyticsHandler.HandleUserAnalytics)
			r.Get("/recently-rated", analyticsHandler.HandleRecentlyRated)
			r.Put("/profile", profileHandler.HandleUpdate)
		})

		r.Get("/profiles/{id}", profileHandler.HandleGet)
		r.Get("/analytics", analyticsHandler.HandleGlobalStats)
	})

	return nil
}

// DB exposes the store for seeding and tests.
func (s *Server) DB() *sqliteRepo.DB {
	return s.db
}

// Handler exposes the router so tests can drive it with httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the server until SIGINT/SIGTERM, then drains in-flight requests
// for up to 30 seconds and closes the store.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.cfg.Port),
			slog.String("database", s.cfg.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
