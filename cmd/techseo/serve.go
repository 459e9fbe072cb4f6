package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/techseo"
	"github.com/aretw0/techseo/internal/config"
	"github.com/aretw0/techseo/internal/presentation/tui"
	httpAdapter "github.com/aretw0/techseo/pkg/adapters/http"
	"github.com/aretw0/techseo/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/techseo/pkg/adapters/redis"
	"github.com/aretw0/techseo/pkg/gsc"
	"github.com/aretw0/techseo/pkg/observability"
	"github.com/aretw0/techseo/pkg/persistence/middleware"
	"github.com/aretw0/techseo/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves structured data, cross-posting copy, llms.txt, Prometheus metrics and the
Search Console routes over HTTP. Search Console tokens are kept in Redis when
redis.addr is set and in memory otherwise.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runServe(cmd); err != nil {
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Address to listen on (overrides http.addr)")
	serveCmd.Flags().Bool("quiet", false, "Do not print the banner")
}

// gscStores holds the Search Console persistence.
type gscStores struct {
	tokens ports.TokenStore
	states ports.StateStore
	locker ports.DistributedLocker
	close  func() error
}

func openStores(ctx context.Context, cfg config.Config, logger *slog.Logger) (*gscStores, error) {
	if cfg.Redis.Addr == "" {
		logger.Warn("redis.addr not set, Search Console tokens are kept in memory")
		return &gscStores{
			tokens: memory.NewTokenStore(),
			states: memory.NewStateStore(),
			close:  func() error { return nil },
		}, nil
	}

	store := redisAdapter.New(cfg.Redis.Addr, redisAdapter.WithPrefix(cfg.Redis.Prefix))
	if err := store.Ping(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("redis %s: %w", cfg.Redis.Addr, err)
	}
	return &gscStores{
		tokens: store,
		states: store,
		locker: redisAdapter.NewLocker(store.Client(), cfg.Redis.Prefix),
		close:  store.Close,
	}, nil
}

func runServe(cmd *cobra.Command) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(reg)

	// newApp installs the configured logger as the default one.
	a, err := newApp(cmd, techseo.WithLifecycleHooks(metrics.Hooks(nil)))
	if err != nil {
		return err
	}

	if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
		tui.PrintBanner(cmd.ErrOrStderr())
	}

	stores, err := openStores(cmd.Context(), a.cfg, a.logger)
	if err != nil {
		return err
	}
	defer stores.close()

	keys, err := a.cfg.GSC.Keys()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		encrypt := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey:    keys[0],
			FallbackKeys: keys[1:],
		})
		stores.tokens = encrypt(stores.tokens)
	}

	connOpts := []gsc.ConnectorOption{gsc.WithConnectorLogger(a.logger)}
	if stores.locker != nil {
		connOpts = append(connOpts, gsc.WithLocker(stores.locker))
	}
	conn := gsc.NewConnector(a.cfg.GSC.OAuth().OAuth2(), stores.tokens, stores.states, connOpts...)
	if !conn.Configured() {
		a.logger.Info("Search Console credentials not set, /gsc/connect is disabled")
	}
	console := gsc.NewConsole(conn, stores.tokens)

	opts := []httpAdapter.Option{
		httpAdapter.WithLogger(a.logger),
		httpAdapter.WithConsole(console, a.cfg.GSC.AdminURL),
	}
	if a.cfg.HTTP.Metrics {
		opts = append(opts, httpAdapter.WithMetrics(metrics, reg))
	}

	addr := a.cfg.HTTP.Addr
	if flagAddr, _ := cmd.Flags().GetString("addr"); flagAddr != "" {
		addr = flagAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           httpAdapter.NewHandler(a.engine, opts...),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		a.logger.Info("Starting techseo server", "addr", srv.Addr, "posts", a.cfg.PostsDir)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt or terminate signals.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return err

	case sig := <-shutdown:
		a.logger.Info("Start shutdown", "signal", sig.String())

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			a.logger.Error("Graceful shutdown did not complete", "timeout", 5*time.Second, "error", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("could not stop server: %w", err)
			}
		}
		a.logger.Info("techseo server stopped gracefully")
		return nil
	}
}
