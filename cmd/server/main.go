package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"shikshanam/internal/config"
	"shikshanam/internal/database"
	"shikshanam/internal/fragment"
	"shikshanam/internal/handlers"
	"shikshanam/internal/repository"
	"shikshanam/internal/scheduler"
	"shikshanam/internal/security"
	"shikshanam/internal/service"
	"shikshanam/internal/storage"
	"shikshanam/internal/view"
)

const cleanupInterval = 10 * time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Profile storage
	kv, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize %s store: %v", cfg.StoreBackend, err)
	}
	defer closeStore()

	log.Printf("Profile store ready (backend: %s)", cfg.StoreBackend)

	// Fragments and host document
	fetcher, err := newFetcher(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize fragment fetcher: %v", err)
	}

	shell, err := os.ReadFile(filepath.Join(cfg.StaticFilesPath, "index.html"))
	if err != nil {
		log.Fatalf("Failed to read host document: %v", err)
	}

	// Initialize services
	store := storage.NewProfileStore(kv)
	progressService := service.NewProgressService(store)
	quizSessions := service.NewQuizSessions(cfg.QuizSessionTTL)
	composer := view.NewComposer(fragment.NewLoader(fetcher), store, shell)

	// Initialize security
	visitorTokens := security.NewVisitorTokens(cfg.SessionSecret, cfg.VisitorCookieTTL)
	csrfGenerator := security.NewCSRFGenerator(cfg.SessionSecret)
	rateLimiter := security.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)

	// Initialize handlers
	middleware := handlers.NewMiddleware(visitorTokens, csrfGenerator, rateLimiter)
	appHandler := handlers.NewAppHandler(composer, progressService, csrfGenerator)
	quizHandler := handlers.NewQuizHandler(appHandler, progressService, quizSessions)

	handler := handlers.NewRouter(appHandler, quizHandler, middleware, http.Dir(cfg.StaticFilesPath))

	// Background cleanup of expired quiz sessions and idle rate limit entries
	cleanup := scheduler.New(cleanupInterval, map[string]scheduler.Sweeper{
		"quiz sessions": quizSessions,
		"rate limiter":  scheduler.SweeperFunc(rateLimiter.CleanupVisitors),
	})
	if err := cleanup.Start(); err != nil {
		log.Fatalf("Failed to start cleanup scheduler: %v", err)
	}
	defer cleanup.Stop()

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown failed: %v", err)
	}
}

// openStore creates the key-value backend behind the profile store
func openStore(cfg *config.Config) (storage.KV, func(), error) {
	switch cfg.StoreBackend {
	case "sql":
		db, err := database.InitializeWithConfig(cfg)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

		if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Println("Migrations completed successfully")

		return repository.NewRecordRepository(db), func() { db.Close() }, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return storage.NewRedisKV(client), func() { client.Close() }, nil

	case "memory":
		return storage.NewMemoryKV(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store backend: %s", cfg.StoreBackend)
	}
}

// newFetcher selects where fragments are read from
func newFetcher(cfg *config.Config) (fragment.Fetcher, error) {
	switch cfg.FragmentSource {
	case "fs":
		return fragment.NewFSFetcher(os.DirFS(cfg.StaticFilesPath)), nil
	case "http":
		return fragment.NewHTTPFetcher(cfg.FragmentBaseURL, cfg.FragmentTimeout)
	default:
		return nil, fmt.Errorf("unsupported fragment source: %s", cfg.FragmentSource)
	}
}
