package cli

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"showroom/internal/amqp"
	"showroom/internal/cache"
	"showroom/internal/config"
	httpserver "showroom/internal/http"
	"showroom/internal/inventory"
	"showroom/internal/log"
	"showroom/internal/repository"
	"showroom/internal/services"
	"showroom/internal/storage"
	"showroom/internal/testdrive"
)

const (
	inventoryCacheSize   = 128
	cacheCleanupInterval = time.Minute
)

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the showroom HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(v, (*config.Config).Validate)
			if err != nil {
				return err
			}
			logger, err := SetupLogger(cfg.LogLevel, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			ctx, cancel := SignalContext(cmd.Context(), logger)
			defer cancel()
			return runServe(ctx, cfg, logger)
		},
	}

	flags := cmd.Flags()
	flags.String("port", "", "HTTP listen port")
	flags.String("store", "", "visitor state backend: memory, sqlite or redis")
	flags.String("sqlite-path", "", "SQLite database file")
	flags.String("redis-addr", "", "Redis address")
	flags.String("amqp-url", "", "AMQP broker URL; leads are only logged when empty")
	flags.Int("rate-limit", 0, "write requests per client per minute")
	configFlags(cmd, map[string]string{
		config.KeyPort:               "port",
		config.KeyStoreBackend:       "store",
		config.KeySQLiteDBPath:       "sqlite-path",
		config.KeyRedisAddr:          "redis-addr",
		config.KeyAMQPURL:            "amqp-url",
		config.KeyRateLimitPerMinute: "rate-limit",
	})
	return cmd
}

func runServe(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	logger.InfoContext(ctx, "Starting showroom",
		"port", cfg.Port,
		"store", cfg.StoreBackend,
		"leads_enabled", cfg.LeadsEnabled())

	store, err := storage.Open(ctx, cfg.Storage(), componentLogger(logger, log.ComponentStorage))
	if err != nil {
		return exitError("open store", err)
	}
	defer store.Close()

	checks := map[string]httpserver.CheckFunc{}
	if p, ok := store.(storage.Pinger); ok {
		checks["store"] = p.Ping
	}

	var publisher services.LeadPublisher
	if cfg.LeadsEnabled() {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			return exitError("connect to AMQP", err)
		}
		defer client.Close()
		publisher = client
		checks["amqp"] = func(context.Context) error { return client.Ping() }
		logger.InfoContext(ctx, "Publishing leads", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.WarnContext(ctx, "AMQP_URL not set, leads will only be logged")
	}

	results := cache.NewLRUCache[inventory.Result](inventoryCacheSize, cfg.InventoryCacheTTL)
	caches := cache.NewManager(componentLogger(logger, log.ComponentCache))
	caches.Register("inventory_search", results)
	caches.StartCleanup(cacheCleanupInterval)
	defer caches.Stop()

	catalog := inventory.NewService(inventory.DefaultVehicles(), results, componentLogger(logger, log.ComponentInventory))
	repos := repository.New(store)
	clock := services.Clock(time.Now)

	srv := httpserver.NewServer(net.JoinHostPort("", cfg.Port), httpserver.Options{
		Finance:            services.NewFinanceService(repos.Calculations, clock),
		Bookings:           services.NewBookingService(catalog, testdrive.Weekdays(), repos.Bookings, publisher, clock),
		Account:            services.NewAccountService(repos, catalog, publisher, clock),
		Receptionist:       services.NewReceptionistService(repos.ChatHistory, clock),
		Inventory:          catalog,
		Logger:             logger,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Checks:             checks,
		CacheStats:         results.Stats,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.ListenAndServe)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		return exitError("serve", err)
	}
	logger.Info("Showroom stopped")
	return nil
}

// componentLogger hands a plain slog.Logger to packages that take one.
func componentLogger(logger *log.Logger, component string) *slog.Logger {
	return logger.Logger.With(log.FieldComponent, component)
}
