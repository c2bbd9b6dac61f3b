package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	rpgdice "github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"
	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/rpg-dice-tray/internal/config"
	"github.com/KirkDiggler/rpg-dice-tray/internal/engine"
	"github.com/KirkDiggler/rpg-dice-tray/internal/engine/settler"
	"github.com/KirkDiggler/rpg-dice-tray/internal/engine/throws"
	"github.com/KirkDiggler/rpg-dice-tray/internal/handlers/api/v1alpha1"
	"github.com/KirkDiggler/rpg-dice-tray/internal/orchestrators/tray"
	"github.com/KirkDiggler/rpg-dice-tray/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-dice-tray/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/rpg-dice-tray/internal/redis"
	rollhistory "github.com/KirkDiggler/rpg-dice-tray/internal/repositories/roll_history"
	rollsync "github.com/KirkDiggler/rpg-dice-tray/internal/repositories/roll_sync"
	"github.com/KirkDiggler/rpg-dice-tray/internal/rollstate"
)

var (
	grpcPort   int
	redisAddr  string
	autoSettle bool
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long: `Start the dice tray gRPC server. Settings are read from DICE_TRAY_* environment
variables; flags override them.`,
	RunE: runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 50051, "gRPC server port")
	serverCmd.Flags().StringVar(&redisAddr, "redis", "localhost:6379", "Redis address")
	serverCmd.Flags().BoolVar(&autoSettle, "auto-settle", false, "Settle dice on the server instead of waiting for a physics client")
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("port") {
		cfg.GRPCPort = grpcPort
	}
	if cmd.Flags().Changed("redis") {
		cfg.RedisAddr = redisAddr
	}
	if cmd.Flags().Changed("auto-settle") {
		cfg.AutoSettle = autoSettle
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Received shutdown signal, gracefully stopping")
		cancel()
	}()

	redisClient, err := redisclient.NewClient(cfg.RedisAddr, &redisclient.Options{
		PoolSize:   10,
		MaxRetries: 3,
	})
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer func() {
		_ = redisClient.Close() // nolint:errcheck // safe to ignore on shutdown
	}()

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
	}

	trayService, err := newTrayService(cfg, redisClient)
	if err != nil {
		return err
	}

	trayHandler, err := v1alpha1.NewDiceTrayHandler(&v1alpha1.DiceTrayHandlerConfig{
		TrayService: trayService,
	})
	if err != nil {
		return fmt.Errorf("failed to create dice tray handler: %w", err)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(interceptorLogger(logger)),
			grpc_recovery.UnaryServerInterceptor(grpc_recovery.WithRecoveryHandler(recoverPanic)),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(interceptorLogger(logger)),
			grpc_recovery.StreamServerInterceptor(grpc_recovery.WithRecoveryHandler(recoverPanic)),
		),
	)

	v1alpha1.RegisterDiceTrayServiceServer(srv, trayHandler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	errChan := make(chan error, 1)
	go func() {
		slog.Info("gRPC server starting",
			"port", cfg.GRPCPort,
			"redis", cfg.RedisAddr,
			"auto_settle", cfg.AutoSettle,
		)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down gRPC server")
		healthServer.Shutdown()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			slog.Warn("Graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			slog.Info("Server stopped gracefully")
		}

		return nil
	case err := <-errChan:
		return err
	}
}

func newTrayService(cfg *config.Config, redisClient redisclient.Client) (tray.Service, error) {
	clk := clock.New()

	syncRepo, err := rollsync.NewRedisRepository(&rollsync.Config{
		Client: redisClient,
		Clock:  clk,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create roll sync repository: %w", err)
	}

	historyRepo, err := rollhistory.NewRedisRepository(&rollhistory.Config{
		Client:     redisClient,
		Clock:      clk,
		MaxEntries: cfg.HistorySize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create roll history repository: %w", err)
	}

	// Composer and store draw from one generator so die ids never collide
	dieIDs := idgen.NewUUID("die")

	composer, err := engine.NewComposer(&engine.Config{IDGenerator: dieIDs})
	if err != nil {
		return nil, fmt.Errorf("failed to create roll composer: %w", err)
	}

	bus := events.NewBus()
	bus.SubscribeFunc(rollstate.EventRollFinished, 0, events.HandlerFunc(logRollFinished))

	trayCfg := &tray.Config{
		Composer:    composer,
		IDGenerator: dieIDs,
		Throws:      throws.New(nil),
		SyncRepo:    syncRepo,
		HistoryRepo: historyRepo,
		EventBus:    bus,
		SnapshotTTL: cfg.SnapshotTTL,

		MaxDicePerDefinition: cfg.MaxDicePerType,
		MaxDice:              cfg.MaxDice,
	}

	if cfg.AutoSettle {
		dieSettler, err := settler.New(&settler.Config{
			Roller:      rpgdice.DefaultRoller,
			MaxRollTime: cfg.MaxRollTime,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create settler: %w", err)
		}
		trayCfg.Settler = dieSettler
	}

	trayService, err := tray.NewOrchestrator(trayCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tray orchestrator: %w", err)
	}
	return trayService, nil
}

func logRollFinished(_ context.Context, e events.Event) error {
	attrs := []any{"event_type", e.Type()}
	if source := e.Source(); source != nil {
		attrs = append(attrs, "player_id", source.GetID())
	}
	slog.Info("Roll finished", attrs...)
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// interceptorLogger adapts slog to the middleware logger
func interceptorLogger(l *slog.Logger) grpc_logging.Logger {
	return grpc_logging.LoggerFunc(func(ctx context.Context, lvl grpc_logging.Level, msg string, fields ...any) {
		l.Log(ctx, slog.Level(lvl), msg, fields...)
	})
}

func recoverPanic(p any) error {
	slog.Error("Recovered from panic in gRPC handler", "panic", p)
	return status.Errorf(codes.Internal, "internal error")
}
