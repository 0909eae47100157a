package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"journal/internal/app"
	"journal/internal/auth"
	"journal/internal/config"
	"journal/internal/handler"
	"journal/internal/icons"
	"journal/internal/middleware"
	serviceAuth "journal/internal/service/auth"
	serviceJournal "journal/internal/service/journal"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, closeLog := app.NewLogger(cfg, os.Stdout)
	defer closeLog()

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"document_store", cfg.DocumentStore,
		"blob_store", cfg.BlobStore,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := app.OpenStores(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open stores: %v", err)
	}
	defer stores.Close()

	// JWT verification needs the Supabase JWKS endpoint
	var jwtVerifier auth.JWTVerifier
	if cfg.SupabaseJWKSURL != "" {
		jwtVerifier, err = auth.NewJWTVerifier(ctx, cfg.SupabaseJWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create JWT verifier: %v", err)
		}
		defer jwtVerifier.Close()
	} else {
		logger.Warn("SUPABASE_URL not set: only DEV_USER_ID requests will be accepted")
	}

	iconRegistry, err := icons.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load icons: %v", err)
	}

	// Services
	entryService := serviceJournal.NewEntryService(stores.Entries, stores.Blobs, logger)
	staging := serviceJournal.NewStaging()
	registry := serviceJournal.NewRegistry(entryService, staging, logger,
		serviceJournal.WithIdleTimeout(cfg.EditorSessionTTL),
		serviceJournal.WithMaxSessions(cfg.EditorMaxSessions),
	)
	go registry.Run(ctx)

	handlers := &handler.Handlers{
		Health:  handler.NewHealthHandler(cfg.DocumentStore, cfg.BlobStore),
		Journal: handler.NewJournalHandler(entryService, logger),
		Editor:  handler.NewEditorHandler(registry, staging, logger),
		Icons:   handler.NewIconHandler(iconRegistry),
		Files:   stores.Files,
	}
	if cfg.SupabaseURL != "" && cfg.SupabaseAnonKey != "" {
		passwordClient := auth.NewPasswordClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, logger)
		handlers.Auth = handler.NewAuthHandler(serviceAuth.NewSignInService(passwordClient, logger), logger)
	}

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()
	handlers.Register(mux)

	devUserID := ""
	if cfg.AuthBypassed() {
		devUserID = cfg.DevUserID
		logger.Warn("DEV MODE: requests without a token act as DEV_USER_ID", "user_id", devUserID)
	}

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Logging → Auth → Routes
	var h http.Handler = mux
	h = middleware.AuthMiddleware(middleware.AuthConfig{
		Verifier:       jwtVerifier,
		PublicPrefixes: []string{"/health", "/api/auth/", "/api/icons/", "/files/"},
		DevUserID:      devUserID,
		Logger:         logger,
	})(h)
	h = middleware.RequestLogger(logger)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	logger.Info("server listening", "port", cfg.Port, "public_base_url", cfg.PublicBaseURL)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
	logger.Info("server stopped")
}
