package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"notify-lab/auth"
	"notify-lab/infrastructure/http/server"
	"notify-lab/repositories"
	"notify-lab/runtime"
	"notify-lab/runtime/workers"
	"notify-lab/services"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Notifier terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
// The pattern guarantees that 'defer' statements (database and stream cleanup) execute before
// the process exits, and keeps initialization testable outside of main.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	level, err := config.SlogLevel()
	if err != nil {
		return exitConfig, fmt.Errorf("invalid LOG_LEVEL %q: %w", config.LogLevel, err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx := context.Background()

	// 2. Database (BadgerDB)
	db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		// Defer ensures the database lock is released and buffers are flushed before the function returns.
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	repository, err := repositories.NewNotificationRepository(db, logger)
	if err != nil {
		return exitRuntime, err
	}
	defer func() {
		_ = repository.Close()
	}()

	// 3. Upstream stream (NATS JetStream)
	nc, err := nats.Connect(config.NatsURL,
		nats.Name("notify-lab"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(config.ReconnectWait))
	if err != nil {
		return exitRuntime, fmt.Errorf("stream connection failed: %w", err)
	}
	defer nc.Close()

	js, err := nc.JetStream()
	if err != nil {
		return exitRuntime, fmt.Errorf("jetstream context failed: %w", err)
	}
	if err := workers.EnsureStream(js, config.StreamName, config.StreamSubject); err != nil {
		return exitRuntime, err
	}

	// 4. Registry, fan-out and supervised workers
	registry := runtime.NewRegistry()
	broadcaster := runtime.NewBroadcaster(logger, registry)
	consumer := workers.NewConsumer(logger, js, repository, broadcaster,
		config.StreamSubject, config.DurableName, config.FetchTimeout)
	heartbeat := workers.NewHeartbeatWorker(logger, registry, config.HeartbeatInterval)
	sup := workers.NewSupervisor(logger, config.RestartInterval)
	sup.Add(consumer, heartbeat)

	// 5. Context & Signals
	// NotifyContext captures OS signals and cancels the context to trigger a shutdown.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)

	go func() {
		logger.Info("Starting supervised workers")
		sup.Run(ctx)
	}()

	// 6. HTTP server (query API + websocket sessions)
	verifier := auth.NewVerifier([]byte(config.JWTSecret))
	service := services.NewNotificationService(logger, repository, registry)
	wsServer := server.NewWsServer(logger, verifier, service,
		config.ConnectionBufferSize, config.WriteTimeout)
	notificationServer := server.NewNotificationServer(logger, service)
	router := server.NewRouter(verifier, notificationServer, wsServer)

	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	httpServer := &http.Server{Addr: address, Handler: router}
	go func() {
		logger.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 7. Wait for Stop or Error
	// The execution blocks here until either a signal is received or the server crashes.
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errChan:
		return exitRuntime, err
	}

	// 8. Final Cleanup (Graceful Shutdown)
	// Active sessions get a chance to finish; the consumer always completes
	// its in-flight event before reacting to the cancellation.
	logger.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP shutdown incomplete", "error", err)
	}
	sup.Stop()
	logger.Info("Program stopped cleanly")

	return exitOK, nil
}

func buildBadgerOpts(config Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)

	if logger.Enabled(ctx, slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG)
	} else {
		options = options.WithLoggingLevel(badger.INFO)
	}

	return options
}
