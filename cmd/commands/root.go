package commands

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"decor_admin/config"
	"decor_admin/internal/clients"
	"decor_admin/internal/repository"
	"decor_admin/internal/usecase"
	"decor_admin/pkg/db"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	logger = setupLogger("info")
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "decor-admin",
	Short: "Catalog and admin API for the decoration studio site",
	Long: `decor-admin serves the public catalog and the password protected admin API
(categories, products, image uploads, settings, order notifications).

Configuration comes from the environment or a .env file in the working
directory. DATABASE_URL is always required.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadConfig(logger)
		if err != nil {
			return err
		}
		cfg = loaded

		logLevel, err := logrus.ParseLevel(cfg.LogLevel)
		if err != nil {
			logger.Warnf("Invalid log level '%s' in config, using default 'info'. Error: %v", cfg.LogLevel, err)
		} else {
			logger.SetLevel(logLevel)
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	decimal.MarshalJSONWithoutQuotes = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	return logger
}

// openDatabase connects the shared pool and applies the schema.
func openDatabase(ctx context.Context) (*sql.DB, error) {
	logger.Info("Connecting to database...")
	database, err := db.Shared(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Migrate(ctx, database); err != nil {
		return nil, err
	}
	logger.Info("Database connection established and schema applied.")
	return database, nil
}

func closeDatabase() {
	if err := db.Close(); err != nil {
		logger.Errorf("Error closing database connection: %v", err)
		return
	}
	logger.Info("Database connection closed.")
}

type services struct {
	categories usecase.CategoryUseCase
	products   usecase.ProductUseCase
	images     usecase.ImageUseCase
	auth       usecase.AuthUseCase
	settings   usecase.SettingsUseCase
	orders     usecase.OrderUseCase
	stats      usecase.StatsUseCase
}

func buildServices(database *sql.DB) *services {
	categoryRepo := repository.NewPostgresCategoryRepository(database, logger)
	productRepo := repository.NewPostgresProductRepository(database, logger)
	settingsRepo := repository.NewPostgresSettingsRepository(database, logger)

	imageHost := clients.NewImgBBClient(cfg.ImgBBUploadURL, cfg.ImgBBAPIKey, cfg.ImageUploadTimeout, logger)
	messenger := clients.NewTelegramClient(cfg.TelegramAPIURL, cfg.TelegramTimeout, logger)

	cleaner := usecase.NewImageCleaner(imageHost, cfg.ImageDeleteTimeout, logger)
	cascade := usecase.NewCascade(categoryRepo, productRepo, cleaner, logger)
	settings := usecase.NewSettingsUseCase(settingsRepo, logger)

	return &services{
		categories: usecase.NewCategoryUseCase(categoryRepo, cascade, logger),
		products:   usecase.NewProductUseCase(productRepo, categoryRepo, cascade, logger),
		images:     usecase.NewImageUseCase(imageHost, logger),
		auth:       usecase.NewAuthUseCase(settingsRepo, cfg.JWTSecret, cfg.SessionTTL, logger),
		settings:   settings,
		orders:     usecase.NewOrderUseCase(settings, messenger, logger),
		stats:      usecase.NewStatsUseCase(productRepo, categoryRepo, logger),
	}
}
