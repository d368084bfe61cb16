package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/rewind/internal/config"
	"github.com/aretw0/rewind/internal/logging"
	"github.com/aretw0/rewind/pkg/adapters/file"
	httpAdapter "github.com/aretw0/rewind/pkg/adapters/http"
	"github.com/aretw0/rewind/pkg/adapters/memory"
	"github.com/aretw0/rewind/pkg/adapters/redis"
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/aretw0/rewind/pkg/fsm"
	"github.com/aretw0/rewind/pkg/observability"
	"github.com/aretw0/rewind/pkg/persistence/middleware"
	"github.com/aretw0/rewind/pkg/ports"
	"github.com/aretw0/rewind/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve <definition>",
	Short: "Serve sessions of a definition over HTTP",
	Long: `Starts a JSON API exposing sessions of the given definition.
Settings come from REWIND_* environment variables (or a .env file);
flags override them.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := applyServeFlags(cmd, &cfg); err != nil {
			return err
		}

		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)

		def, err := loadDefinition(args[0])
		if err != nil {
			return err
		}

		handler, cleanup, err := buildServer(def, cfg, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		srv := &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("Starting Rewind Server", "addr", srv.Addr, "store", cfg.Store, "definition", args[0])
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(shutdown)

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("Start shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			logger.Info("Rewind Server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Address to listen on (REWIND_ADDR)")
	serveCmd.Flags().String("store", "", "Session store: memory, file or redis (REWIND_STORE)")
	serveCmd.Flags().String("redis-addr", "", "Redis address (REWIND_REDIS_ADDR)")
	serveCmd.Flags().Bool("metrics", true, "Expose Prometheus metrics at /metrics (REWIND_METRICS)")
}

// applyServeFlags lets explicitly set flags win over the environment.
func applyServeFlags(cmd *cobra.Command, cfg *config.ServerConfig) error {
	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Addr, _ = flags.GetString("addr")
	}
	if flags.Changed("store") {
		cfg.Store, _ = flags.GetString("store")
	}
	if flags.Changed("redis-addr") {
		cfg.Redis.Addr, _ = flags.GetString("redis-addr")
	}
	if flags.Changed("metrics") {
		cfg.Metrics, _ = flags.GetBool("metrics")
	}
	if flags.Changed("dir") {
		cfg.SessionDir = sessionDir(cmd)
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	return cfg.Validate()
}

// buildServer wires the configured store, locker and metrics into an HTTP handler.
// The returned cleanup releases backend connections.
func buildServer(def domain.Definition, cfg config.ServerConfig, logger *slog.Logger) (http.Handler, func(), error) {
	manager, gatherer, cleanup, err := buildManager(def, cfg, logger)
	if err != nil {
		return nil, cleanup, err
	}

	httpOpts := []httpAdapter.Option{httpAdapter.WithLogger(logger)}
	if gatherer != nil {
		httpOpts = append(httpOpts, httpAdapter.WithGatherer(gatherer))
	}
	return httpAdapter.NewHandler(manager, httpOpts...), cleanup, nil
}

// buildManager wires the configured store and locker into a session manager.
// The gatherer is nil unless metrics are enabled.
func buildManager(def domain.Definition, cfg config.ServerConfig, logger *slog.Logger) (*session.Manager, prometheus.Gatherer, func(), error) {
	cleanup := func() {}

	var store ports.SnapshotStore
	var sessionOpts []session.Option

	switch cfg.Store {
	case config.StoreMemory:
		store = memory.NewStore()
	case config.StoreFile:
		store = file.New(cfg.SessionDir)
	case config.StoreRedis:
		redisStore := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Redis.TTL),
		)
		store = redisStore
		cleanup = func() {
			if err := redisStore.Close(); err != nil {
				logger.Warn("Failed to close redis client", "err", err)
			}
		}
		sessionOpts = append(sessionOpts,
			session.WithLocker(redis.NewLocker(redisStore.Client(), cfg.Redis.Prefix+"lock:")),
			session.WithLockTTL(cfg.LockTTL),
		)
	default:
		return nil, nil, cleanup, fmt.Errorf("%w: %q", config.ErrUnknownStore, cfg.Store)
	}

	hooks := observability.LogHooks(logger)
	storeMiddlewares := []middleware.Middleware{middleware.NewValidationMiddleware()}
	var gatherer prometheus.Gatherer
	if cfg.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics, err := observability.NewMetrics(reg)
		if err != nil {
			cleanup()
			return nil, nil, func() {}, err
		}
		instrument, err := middleware.NewInstrumentationMiddleware(reg)
		if err != nil {
			cleanup()
			return nil, nil, func() {}, err
		}
		hooks = observability.Combine(hooks, metrics.Hooks())
		storeMiddlewares = append(storeMiddlewares, instrument)
		gatherer = reg
	}
	store = middleware.Chain(store, storeMiddlewares...)

	sessionOpts = append(sessionOpts,
		session.WithLogger(logger),
		session.WithMachineOptions(fsm.WithLifecycleHooks(hooks)),
	)
	return session.NewManager(def, store, sessionOpts...), gatherer, cleanup, nil
}
