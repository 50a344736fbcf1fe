// Package main provides the notifier server executable: webhook ingress plus
// the Telegram command front-end.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coregx/notifier"
	"github.com/coregx/notifier/adapters/relica"
	"github.com/coregx/notifier/adapters/telegram"
	"github.com/coregx/notifier/cmd/notifier-server/internal/api"
	"github.com/coregx/notifier/cmd/notifier-server/internal/bot"
	"github.com/coregx/notifier/cmd/notifier-server/internal/config"
	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// SimpleLogger implements notifier.Logger for standard logging.
type SimpleLogger struct{}

func (l *SimpleLogger) Debugf(format string, args ...interface{}) {
	log.Printf("[DEBUG] "+format, args...)
}
func (l *SimpleLogger) Infof(format string, args ...interface{}) {
	log.Printf("[INFO] "+format, args...)
}
func (l *SimpleLogger) Warnf(format string, args ...interface{}) {
	log.Printf("[WARN] "+format, args...)
}
func (l *SimpleLogger) Errorf(format string, args ...interface{}) {
	log.Printf("[ERROR] "+format, args...)
}
func (l *SimpleLogger) Info(message string) {
	log.Printf("[INFO] %s", message)
}

func main() {
	log.Println("🚀 Starting Notifier Server...")

	// Load .env if present, then configuration from environment
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("📝 Configuration loaded:")
	log.Printf("   Webhook: %s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("   Database: %s", cfg.Database.Driver)
	log.Printf("   Command bot enabled: %v", cfg.Telegram.EnableBot)

	// Connect to database
	db, err := sql.Open(cfg.Database.Driver, cfg.Database.GetDSN())
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Printf("Failed to close database: %v", closeErr)
		}
	}()

	// Test connection
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("✅ Database connection established")

	// Apply embedded migrations
	if err := notifier.ApplyMigrations(context.Background(), db); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}
	log.Println("✅ Migrations applied")

	// Create logger
	logger := &SimpleLogger{}

	// Create topic repository
	var repo *relica.TopicRepository
	if cfg.Database.Prefix != "" {
		repo = relica.NewTopicRepositoryWithPrefix(db, cfg.Database.Driver, cfg.Database.Prefix)
	} else {
		repo = relica.NewTopicRepository(db, cfg.Database.Driver)
	}
	log.Println("✅ Topic repository initialized (Relica adapter)")

	// Create registry service
	registry, err := notifier.NewRegistry(
		notifier.WithRegistryRepository(repo),
		notifier.WithRegistryLogger(logger),
	)
	if err != nil {
		log.Fatalf("Failed to create registry: %v", err)
	}
	log.Println("✅ Registry service created")

	// Create Telegram delivery client. Its timeout stays inside the
	// server's write deadline so a hung sendMessage cannot outlive the
	// webhook response.
	deliveryClient, err := telegram.NewClient(telegram.ClientConfig{
		BotToken:       cfg.Telegram.BotToken,
		RequestTimeout: cfg.Server.WriteTimeout,
	})
	if err != nil {
		log.Fatalf("Failed to create telegram client: %v", err)
	}
	log.Println("✅ Telegram client created")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start command front-end in background
	if cfg.Telegram.EnableBot {
		// Long-poll requests are held server-side; leave headroom over
		// the poll timeout.
		pollClient, err := telegram.NewClient(telegram.ClientConfig{
			BotToken:       cfg.Telegram.BotToken,
			RequestTimeout: cfg.Telegram.PollTimeout + 10*time.Second,
		})
		if err != nil {
			log.Fatalf("Failed to create telegram poll client: %v", err)
		}
		commandBot := bot.New(registry, pollClient, logger, cfg.Server.PublicURL, cfg.Telegram.PollTimeout)
		go commandBot.Run(ctx)
	}

	// Create webhook ingress
	handler := api.NewHandler(registry, deliveryClient, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", handler.HandleHealth)
	mux.HandleFunc("/", handler.HandleNotify)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      loggingMiddleware(mux, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		log.Printf("🌐 Webhook server listening on %s", addr)
		log.Println("📡 Endpoints:")
		log.Println("   POST /{token}")
		log.Println("   GET  /health")
		log.Println()
		log.Println("✅ Notifier Server is ready!")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	cancel() // Stop bot poller
	log.Println("✅ Server stopped gracefully")
}

// loggingMiddleware logs HTTP requests.
func loggingMiddleware(next http.Handler, logger notifier.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger.Infof("%s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
		logger.Debugf("%s %s - %v", r.Method, r.URL.Path, time.Since(start))
	})
}
