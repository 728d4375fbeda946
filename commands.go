package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"storefront/internal/app"
	"storefront/internal/client"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/rabbitmq"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

type rootOptions struct {
	configFile string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "storefront",
		Short:        "Storefront catalog and contact API",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "path to a config file (yaml, json, toml or env)")

	cmd.AddCommand(
		newServeCommand(opts),
		newMigrateCommand(opts),
		newSeedCommand(opts),
		newWatchContactsCommand(opts),
		newCatalogCommand(opts),
	)
	return cmd
}

func loadConfig(opts *rootOptions) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, config.NewLogger(cfg.Logger), nil
}

// openStorage connects to the database and applies the schema.
func openStorage(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*gorm.DB, *repositories.GORMStorage, error) {
	db, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := repositories.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, nil, err
	}
	return db, repositories.NewGORMStorage(db, cfg.Database.QueryTimeout, logger), nil
}

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig(opts)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg, logger)
		},
	}
}

// runServe migrates, seeds, then serves until ctx is done.
func runServe(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	db, store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Error().Err(err).Msg("failed to close database")
		}
	}()

	if cfg.SeedOnStartup {
		if _, err := services.SeedCatalog(ctx, store, logger); err != nil {
			return fmt.Errorf("failed to seed catalog: %w", err)
		}
	}

	var publisher services.ContactPublisher
	if cfg.RabbitMQ.Enabled {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL, Queue: cfg.RabbitMQ.Queue}, logger)
		if err != nil {
			return err
		}
		defer mq.Close()
		publisher = mq
	}

	application := app.New(app.Deps{
		Storage:        store,
		Publisher:      publisher,
		Logger:         logger,
		MetricsEnabled: cfg.MetricsEnabled,
	})

	serveErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Server.Port).Msg("starting server")
		serveErr <- application.Listen(cfg.Server.Port)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server")
	if err := application.ShutdownWithTimeout(cfg.Server.ShutdownTimeout); err != nil {
		return fmt.Errorf("error during shutdown: %w", err)
	}
	logger.Info().Msg("server gracefully stopped")
	return nil
}

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig(opts)
			if err != nil {
				return err
			}
			db, _, err := openStorage(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer database.Close(db)

			fmt.Fprintln(cmd.OutOrStdout(), "schema migration applied")
			return nil
		},
	}
}

func newSeedCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the starter catalog into an empty database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig(opts)
			if err != nil {
				return err
			}
			db, store, err := openStorage(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer database.Close(db)

			inserted, err := services.SeedCatalog(cmd.Context(), store, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d products\n", inserted)
			return nil
		},
	}
}

func newWatchContactsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch-contacts",
		Short: "Log contact messages published to the broker",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if !cfg.RabbitMQ.Enabled {
				return errors.New("RabbitMQ is disabled, set RABBITMQ_ENABLED=true")
			}

			mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL, Queue: cfg.RabbitMQ.Queue}, logger)
			if err != nil {
				return err
			}
			defer mq.Close()

			return mq.ConsumeContactEvents(cmd.Context(), contactEventLogger(logger))
		},
	}
}

func contactEventLogger(logger zerolog.Logger) func(rabbitmq.ContactEvent) error {
	logger = logger.With().Str("component", "watch-contacts").Logger()
	return func(event rabbitmq.ContactEvent) error {
		logger.Info().
			Str("event_id", event.ID).
			Int("message_id", event.MessageID).
			Str("name", event.Name).
			Str("email", event.Email).
			Str("message", event.Message).
			Time("occurred_at", event.OccurredAt).
			Msg("contact message received")
		return nil
	}
}

type catalogOptions struct {
	category string
	query    string
}

func newCatalogCommand(opts *rootOptions) *cobra.Command {
	catalogOpts := &catalogOptions{}
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List products from a running API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig(opts)
			if err != nil {
				return err
			}
			c := client.New(cfg.Client.BaseURL, client.WithTimeout(cfg.Client.Timeout))
			products, err := c.ListProducts(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tIN STOCK")
			for _, p := range client.FilterProducts(products, catalogOpts.category, catalogOpts.query) {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\n", p.ID, p.Name, p.Category, client.FormatPrice(p.Price), p.InStock)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&catalogOpts.category, "category", client.AllCategories, "category to show")
	cmd.Flags().StringVar(&catalogOpts.query, "query", "", "case-insensitive search in name and description")
	return cmd
}
