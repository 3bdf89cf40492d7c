package main

import (
	"chat-relay/auth"
	"chat-relay/domain/event"
	"chat-relay/encryption"
	"chat-relay/infrastructure/grpc/server"
	"chat-relay/infrastructure/mail"
	"chat-relay/infrastructure/storage"
	"chat-relay/infrastructure/web"
	"chat-relay/internal"
	"chat-relay/moderation"
	"chat-relay/runtime"
	"chat-relay/runtime/workers"
	"chat-relay/services"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"google.golang.org/grpc"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

const shutdownTimeout = 10 * time.Second

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Relay terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires every component and owns the server lifecycle so deferred cleanups run before exit.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	charReplacement, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return exitConfig, err
	}

	logger := logs.GetLoggerFromString(config.LogLevel)

	ctx := context.Background()

	// 2. Database (BadgerDB)
	db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	if logger.Enabled(ctx, slog.LevelDebug) {
		internal.StartInspector(db, config.DebugPort, logger)
	}

	// 3. Storage
	cipher, err := encryption.NewMessageCipher(config.MessageSecret)
	if err != nil {
		return exitConfig, err
	}
	messageRepository, err := storage.NewMessageRepository(db, cipher, logger)
	if err != nil {
		return exitRuntime, fmt.Errorf("message repository: %w", err)
	}
	// Runs before db.Close, the sequence lease lives in the database
	defer func() {
		_ = messageRepository.Close()
	}()
	userRepository := storage.NewUserRepository(db)
	notificationRepository := storage.NewNotificationRepository(db)
	groupRepository := storage.NewGroupRepository(db, config.GroupName)

	// 4. Moderation
	var dictionaries *moderation.CensoredLoader
	if config.CensoredWordsDir != "" {
		dictionaries = moderation.NewCensoredLoader(os.DirFS(config.CensoredWordsDir))
	} else {
		dictionaries = moderation.NewCensoredLoader(nil)
	}
	censored, err := dictionaries.LoadAll(".", config.ExtraCensoredWords())
	if err != nil {
		return exitConfig, fmt.Errorf("censored words: %w", err)
	}
	logger.Info("Censored words loaded", "count", len(censored.Words), "languages", censored.Languages)
	moderator, err := moderation.NewModerator(censored.Words, charReplacement, logger)
	if err != nil {
		return exitConfig, err
	}

	registry := runtime.NewRegistry()
	gate := moderation.NewGate(userRepository, registry, logger)
	if err := gate.Load(); err != nil {
		return exitRuntime, fmt.Errorf("lock state: %w", err)
	}

	// 5. Realtime core
	telemetry := workers.NewTelemetry(config.BufferSize)
	counter := event.NewCounter()
	mailbox := runtime.NewMailbox(config.MailQueueSize, logger)
	notifier := runtime.NewNotifier(userRepository, notificationRepository, registry, mailbox, logger)
	reaper := runtime.NewReaper(messageRepository, userRepository, registry, logger)
	hub := runtime.NewHub(logger, registry, gate, moderator, messageRepository, userRepository,
		groupRepository, notifier, reaper).WithTelemetry(telemetry)

	mailer := mail.New(mail.SMTPSettings{
		Host:     config.SmtpHost,
		Port:     config.SmtpPort,
		Username: config.SmtpUsername,
		Password: config.SmtpPassword,
		From:     config.SmtpFrom,
		Timeout:  config.MailTimeout,
	}, logger)

	sup := workers.NewSupervisor(logger, config.RestartInterval).WithTelemetry(telemetry)
	orchestrator := runtime.NewOrchestrator(logger, sup, hub, mailbox, mailer, runtime.Settings{
		BufferSize:           config.BufferSize,
		MailWorkers:          config.MailWorkers,
		MailTimeout:          config.MailTimeout,
		MetricInterval:       config.MetricInterval,
		LowCapacityThreshold: config.LowCapacityThreshold,
	}).WithTelemetry(telemetry,
		event.NewMessageSentHandler(logger, counter),
		event.NewCensoredHandler(logger, counter),
		event.NewWorkerRestartedAfterPanicHandler(logger, counter),
		event.NewChannelCapacityHandler(logger, config.LowCapacityThreshold),
		event.NewLatencyHandler(logger, config.LatencyThreshold),
	)

	// 6. Services
	issuer := auth.NewTokenIssuer(config.JwtSecret, config.AuthTokenDuration)
	authService := services.NewAuthService(userRepository, issuer, hub, logger)
	adminService := services.NewAdminService(userRepository, notificationRepository, hub, notifier, logger)
	notificationService := services.NewNotificationService(notificationRepository)

	if err := authService.EnsureAdmin(config.AdminUsername, config.AdminEmail, config.AdminPassword); err != nil {
		return exitConfig, fmt.Errorf("admin bootstrap: %w", err)
	}

	// 7. Context & Signals
	// NotifyContext captures OS signals and cancels the context to trigger a shutdown.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 3)

	go func() {
		logger.Info("Starting orchestrator...")
		if err := orchestrator.Start(ctx); err != nil {
			errChan <- fmt.Errorf("orchestrator error: %w", err)
		}
	}()

	// 8. gRPC Server (accounts and administration)
	grpcAddress := fmt.Sprintf("%s:%d", config.Host, config.GrpcPort)
	listener, err := net.Listen("tcp", grpcAddress)
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to listen on %s: %w", grpcAddress, err)
	}
	grpcServer := server.New(logger, issuer,
		server.NewAuthServer(authService),
		server.NewAdminServer(adminService, logger))

	go func() {
		logger.Info("Starting gRPC server", "address", grpcAddress, "at", time.Now().UTC())
		for serviceName := range grpcServer.GetServiceInfo() {
			logger.Debug("gRPC exposed services", "name", serviceName)
		}
		if err := grpcServer.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	// 9. HTTP Server (realtime channel, notifications and uploads)
	attachmentService := services.NewAttachmentService(storage.NewUploadRepository(db), messageRepository, gate)
	router := web.NewRouter(issuer, web.Handlers{
		Socket:        web.NewSocketHandler(issuer, orchestrator, config.ConnectionBufferSize, config.DeliveryTimeout, logger),
		Health:        web.NewHealthHandler(registry, counter, logger),
		Notifications: web.NewNotificationHandler(notificationService, logger),
		Upload:        web.NewUploadHandler(config.UploadDir, config.MaxUploadBytes, attachmentService, logger),
		Files:         web.NewFileHandler(config.UploadDir, attachmentService, logger),
	})
	httpServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 10. Wait for Stop or Error
	code := exitOK
	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case runErr = <-errChan:
		code = exitRuntime
	}

	// 11. Graceful Shutdown
	logger.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP shutdown incomplete", "error", err)
	}
	grpcServer.GracefulStop()
	orchestrator.Stop()
	logger.Info("Program stopped cleanly")

	return code, runErr
}

func buildBadgerOpts(config internal.Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)

	if logger.Enabled(ctx, slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG).
			WithBypassLockGuard(true)
	} else {
		options = options.WithLoggingLevel(badger.INFO)
	}

	return options
}
