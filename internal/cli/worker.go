package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"showroom/internal/amqp"
	"showroom/internal/cache"
	"showroom/internal/config"
	"showroom/internal/log"
	"showroom/internal/sheets"
	"showroom/internal/sheets/google"
	"showroom/internal/sheets/memory"
	"showroom/internal/worker"
)

func newWorkerCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Consume sales leads and record them in Google Sheets",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(v, (*config.Config).ValidateWorker)
			if err != nil {
				return err
			}
			logger, err := SetupLogger(cfg.LogLevel, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			ctx, cancel := SignalContext(cmd.Context(), logger)
			defer cancel()
			return runWorker(ctx, cfg, logger.WithComponent(log.ComponentWorker))
		},
	}

	flags := cmd.Flags()
	flags.String("amqp-url", "", "AMQP broker URL")
	flags.String("spreadsheet-id", "", "Google spreadsheet receiving leads; leads are kept in memory when empty")
	flags.String("leads-sheet", "", "sheet (tab) name for leads")
	configFlags(cmd, map[string]string{
		config.KeyAMQPURL:             "amqp-url",
		config.KeyGoogleSpreadsheetID: "spreadsheet-id",
		config.KeyGoogleLeadsSheet:    "leads-sheet",
	})
	return cmd
}

func runWorker(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	logger.InfoContext(ctx, "Starting lead worker", "queue", cfg.AMQPQueue, "sheets_enabled", cfg.SheetsEnabled())

	sink, err := openLeadSink(ctx, cfg, logger)
	if err != nil {
		return err
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		return exitError("connect to AMQP", err)
	}
	defer client.Close()

	w := worker.NewLeadWorker(sink)
	caches := cache.NewManager(componentLogger(logger, log.ComponentCache))
	caches.Register("seen_leads", w.Seen())
	caches.StartCleanup(cacheCleanupInterval)
	defer caches.Stop()

	err = client.ConsumeLeads(ctx, w.HandleLead)
	if err != nil && !errors.Is(err, context.Canceled) {
		return exitError("consume leads", err)
	}
	logger.Info("Lead worker stopped")
	return nil
}

// openLeadSink prefers Google Sheets and falls back to an in-process store
// that only logs.
func openLeadSink(ctx context.Context, cfg *config.Config, logger *log.Logger) (sheets.LeadWriter, error) {
	if !cfg.SheetsEnabled() {
		logger.WarnContext(ctx, "GOOGLE_SPREADSHEET_ID not set, leads will only be logged")
		return memory.New(componentLogger(logger, log.ComponentSheets)), nil
	}

	client, err := google.NewClient(ctx, google.Options{
		SpreadsheetID:   cfg.GoogleSpreadsheetID,
		LeadsSheet:      cfg.GoogleLeadsSheet,
		CredentialsJSON: cfg.GoogleServiceAccountJSON,
		CredentialsFile: cfg.GoogleServiceAccountFile,
		OAuthClientJSON: cfg.GoogleOAuthClientJSON,
		OAuthClientFile: cfg.GoogleOAuthClientFile,
		OAuthTokenJSON:  cfg.GoogleOAuthTokenJSON,
		OAuthTokenFile:  cfg.GoogleOAuthTokenFile,
	})
	if err != nil {
		return nil, exitError("init Google Sheets", err)
	}
	if err := client.EnsureHeader(ctx); err != nil {
		logger.ErrorContext(ctx, "Failed to write leads header", log.FieldError, err)
	}
	return client, nil
}
