// Package main runs the chess rules HTTP and websocket server
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chessrules/cmd/chessd/cli"
	"chessrules/internal/service"
	"chessrules/internal/storage"
	"chessrules/internal/transport/http"
)

const (
	gracefulShutdownTimeout = time.Second * 5
)

func main() {
	// Database maintenance commands
	if len(os.Args) > 1 && os.Args[1] == "db" {
		if err := cli.Run(os.Args[2:]); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		os.Exit(0)
	}

	var (
		apiHost     = flag.String("api-host", "localhost", "API server host")
		apiPort     = flag.Int("api-port", 8080, "API server port")
		dev         = flag.Bool("dev", false, "Development mode (relaxed rate limits, WAL journal)")
		storagePath = flag.String("storage-path", "", "Path to SQLite database file (disables persistence if empty)")
		pidPath     = flag.String("pid", "", "Optional path to write PID file")
		pidLock     = flag.Bool("pid-lock", false, "Lock PID file to allow only one instance (requires -pid)")
	)
	flag.Parse()

	if *pidLock && *pidPath == "" {
		log.Fatal("Error: -pid-lock flag requires the -pid flag to be set")
	}
	if *apiPort <= 0 || *apiPort > 65535 {
		log.Fatalf("Error: invalid -api-port %d", *apiPort)
	}

	if *pidPath != "" {
		pf, err := acquirePIDFile(*pidPath, *pidLock)
		if err != nil {
			log.Fatalf("Failed to manage PID file: %v", err)
		}
		defer pf.Release()
		log.Printf("PID file created at: %s (lock: %v)", *pidPath, *pidLock)
	}

	var store *storage.Store
	if *storagePath != "" {
		log.Printf("Initializing persistent storage at: %s", *storagePath)
		var err error
		store, err = storage.NewStore(*storagePath, *dev)
		if err != nil {
			log.Fatalf("Failed to initialize storage: %v", err)
		}
		if err := store.InitDB(); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
	} else {
		log.Printf("Persistent storage disabled (use -storage-path to enable)")
	}

	svc := service.New(store)
	app := http.NewFiberApp(svc, *dev)

	apiAddr := fmt.Sprintf("%s:%d", *apiHost, *apiPort)

	go func() {
		log.Printf("Chess API Server starting...")
		log.Printf("API Listening on: http://%s", apiAddr)
		log.Printf("Rate Limit: %d requests/second per IP", http.RateLimit(*dev))
		log.Printf("API Endpoints: http://%s/api/v1/games", apiAddr)
		log.Printf("Game stream: ws://%s/ws/games/:gameId", apiAddr)
		log.Printf("Health: http://%s/health", apiAddr)

		if err := app.Listen(apiAddr); err != nil {
			log.Printf("API server listen error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer shutdownCancel()

	// Release stream waiters first so open websockets can finish
	if err := svc.Shutdown(); err != nil {
		log.Printf("Service shutdown error: %v", err)
	}
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
