// Package main implements the mistake journal server: a RESTful API for
// importing games, navigating their positions, annotating mistakes, and
// asking an LLM coach for recurring patterns.
package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blunderlog/internal/http"
	"blunderlog/internal/insight"
	"blunderlog/internal/service"
	"blunderlog/internal/storage"

	"github.com/lixenwraith/auth"
)

const gracefulShutdownTimeout = time.Second * 5

func main() {
	var (
		apiHost     = flag.String("api-host", "localhost", "API server host")
		apiPort     = flag.Int("api-port", 8080, "API server port")
		dev         = flag.Bool("dev", false, "Development mode (relaxed rate limits, fixed secrets)")
		storagePath = flag.String("storage-path", "blunderlog.db", "Path to SQLite database file")
	)
	flag.Parse()

	// 1. Initialize storage
	log.Printf("Initializing storage at: %s", *storagePath)
	store, err := storage.NewStore(*storagePath, *dev)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	if err := store.InitDB(); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	// Owner passphrase (single-user journal)
	passphrase := os.Getenv("BLUNDERLOG_PASSPHRASE")
	if passphrase == "" {
		if !*dev {
			log.Fatal("BLUNDERLOG_PASSPHRASE must be set (or run with -dev)")
		}
		passphrase = "blunderlog-dev"
		log.Printf("Using fixed passphrase (dev mode)")
	}
	passphraseHash, err := auth.HashPassword(passphrase)
	if err != nil {
		log.Fatalf("Failed to hash passphrase: %v", err)
	}

	// JWT secret management
	var jwtSecret []byte
	if *dev {
		// Fixed secret in dev mode for testing consistency
		jwtSecret = []byte("dev-secret-minimum-32-characters-long")
		log.Printf("Using fixed JWT secret (dev mode)")
	} else {
		jwtSecret = make([]byte, 32)
		if _, err := rand.Read(jwtSecret); err != nil {
			log.Fatalf("Failed to generate JWT secret: %v", err)
		}
		log.Printf("JWT secret generated (sessions valid until restart)")
	}

	// 2. Insight client (optional, configured via OPENAI_* env)
	var llm insight.Client
	if os.Getenv("OPENAI_API_KEY") != "" {
		llm, err = insight.NewClient()
		if err != nil {
			log.Fatalf("Failed to initialize insight client: %v", err)
		}
		log.Printf("Insight: enabled")
	} else {
		log.Printf("Insight: disabled (set OPENAI_API_KEY to enable)")
	}

	// 3. Service and HTTP app
	svc := service.New(store, llm, jwtSecret, passphraseHash)
	app := http.NewFiberApp(svc, *dev)

	apiAddr := fmt.Sprintf("%s:%d", *apiHost, *apiPort)

	go func() {
		log.Printf("Blunderlog API Server starting...")
		log.Printf("API Listening on: http://%s", apiAddr)
		log.Printf("API Version: v1")
		if *dev {
			log.Printf("Rate Limit: 20 requests/second per IP (DEV MODE)")
		} else {
			log.Printf("Rate Limit: 10 requests/second per IP")
		}
		log.Printf("Games: http://%s/api/v1/games", apiAddr)
		log.Printf("Mistakes: http://%s/api/v1/mistakes", apiAddr)
		log.Printf("Health: http://%s/health", apiAddr)

		if err := app.Listen(apiAddr); err != nil {
			log.Printf("API server listen error: %v", err)
		}
	}()

	// 4. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Printf("Shutting down...")
	if err := app.ShutdownWithTimeout(gracefulShutdownTimeout); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if err := svc.Shutdown(); err != nil {
		log.Printf("Service shutdown error: %v", err)
	}
	log.Printf("Server stopped")
}
