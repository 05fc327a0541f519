package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"github.com/ravenshold/guildhall/api/internal/config"
	"github.com/ravenshold/guildhall/api/internal/database"
	"github.com/ravenshold/guildhall/api/internal/handler"
	"github.com/ravenshold/guildhall/api/internal/middleware"
	"github.com/ravenshold/guildhall/api/internal/repository"
	"github.com/ravenshold/guildhall/api/internal/service"
	"github.com/ravenshold/guildhall/api/pkg/jwt"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logging. Development gets colorized console
	// output, production gets JSON.
	var logger *slog.Logger
	if cfg.IsDevelopment() {
		logger = slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
		}))
	} else {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}
	slog.SetDefault(logger)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Generate a signing key pair on first boot in development
	if cfg.IsDevelopment() {
		if _, err := os.Stat(cfg.JWT.PrivateKeyPath); errors.Is(err, os.ErrNotExist) {
			slog.Info("generating JWT key pair", slog.String("path", cfg.JWT.PrivateKeyPath))
			if err := jwt.GenerateKeyPair(cfg.JWT.PrivateKeyPath, cfg.JWT.PublicKeyPath); err != nil {
				slog.Error("failed to generate JWT key pair", slog.String("error", err.Error()))
				os.Exit(1)
			}
		}
	}

	// Initialize JWT service
	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: cfg.JWT.PrivateKeyPath,
		PublicKeyPath:  cfg.JWT.PublicKeyPath,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories
	memberRepo := repository.NewMemberRepository(db)
	partyRepo := repository.NewPartyRepository(db)
	eventRepo := repository.NewEventRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize change feed for real-time updates
	feed := service.NewFeed()
	defer feed.Close()

	// Initialize services
	rosterService := service.NewRosterService(memberRepo, feed)
	partyService := service.NewPartyService(partyRepo, feed)
	assignmentService := service.NewAssignmentService(memberRepo, partyService, feed)
	eventService := service.NewEventService(eventRepo, feed)
	authService := service.NewAuthService(userRepo, jwtService, cfg.Auth.AdminEmails)

	// Seed default parties and roster on first boot
	if cfg.Auth.SeedDefaults {
		seeder := service.NewSeederService(memberRepo, partyRepo, logger)
		if err := seeder.SeedDefaults(ctx); err != nil {
			slog.Error("failed to seed defaults", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	memberHandler := handler.NewMemberHandler(rosterService, assignmentService)
	partyHandler := handler.NewPartyHandler(partyService, assignmentService)
	eventHandler := handler.NewEventHandler(eventService)
	liveHandler := handler.NewLiveHandler(feed, rosterService, partyService, eventService)
	healthHandler := handler.NewHealthHandler(db)

	// Create router and register routes
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", healthHandler.Check)

	// Auth endpoints (public)
	mux.HandleFunc("POST /v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /v1/auth/login", authHandler.Login)

	authMiddleware := middleware.Auth(jwtService)
	adminMiddleware := middleware.AdminAuth(jwtService)

	// Auth endpoints (protected)
	mux.Handle("GET /v1/auth/me", authMiddleware(http.HandlerFunc(authHandler.Me)))

	// Member endpoints
	mux.Handle("GET /v1/members", authMiddleware(http.HandlerFunc(memberHandler.List)))
	mux.Handle("GET /v1/members/unassigned", authMiddleware(http.HandlerFunc(memberHandler.ListUnassigned)))
	mux.Handle("GET /v1/members/{memberId}", authMiddleware(http.HandlerFunc(memberHandler.Get)))
	mux.Handle("POST /v1/members", authMiddleware(http.HandlerFunc(memberHandler.Create)))
	mux.Handle("DELETE /v1/members/{memberId}", adminMiddleware(http.HandlerFunc(memberHandler.Delete)))
	mux.Handle("PATCH /v1/members/{memberId}/party", adminMiddleware(http.HandlerFunc(memberHandler.SetParty)))

	// Party endpoints
	mux.Handle("GET /v1/parties", authMiddleware(http.HandlerFunc(partyHandler.List)))
	mux.Handle("GET /v1/parties/{partyId}/members", authMiddleware(http.HandlerFunc(partyHandler.Members)))
	mux.Handle("POST /v1/parties", adminMiddleware(http.HandlerFunc(partyHandler.Create)))
	mux.Handle("PATCH /v1/parties/{partyId}", adminMiddleware(http.HandlerFunc(partyHandler.Rename)))
	mux.Handle("DELETE /v1/parties/{partyId}", adminMiddleware(http.HandlerFunc(partyHandler.Delete)))
	mux.Handle("POST /v1/parties/{partyId}/reorder", adminMiddleware(http.HandlerFunc(partyHandler.Reorder)))

	// Roster overview
	mux.Handle("GET /v1/roster", authMiddleware(http.HandlerFunc(partyHandler.Roster)))

	// Event endpoints
	mux.Handle("GET /v1/events", authMiddleware(http.HandlerFunc(eventHandler.List)))
	mux.Handle("GET /v1/events/{eventId}", authMiddleware(http.HandlerFunc(eventHandler.Get)))
	mux.Handle("POST /v1/events", adminMiddleware(http.HandlerFunc(eventHandler.Create)))
	mux.Handle("PATCH /v1/events/{eventId}", adminMiddleware(http.HandlerFunc(eventHandler.Update)))
	mux.Handle("DELETE /v1/events/{eventId}", adminMiddleware(http.HandlerFunc(eventHandler.Delete)))
	mux.Handle("POST /v1/events/{eventId}/participants", authMiddleware(http.HandlerFunc(eventHandler.AddParticipants)))
	mux.Handle("DELETE /v1/events/{eventId}/participants/{name}", authMiddleware(http.HandlerFunc(eventHandler.RemoveParticipant)))

	// SSE live endpoint
	mux.Handle("GET /v1/live/{collection}", authMiddleware(http.HandlerFunc(liveHandler.Stream)))

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.Compress,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
