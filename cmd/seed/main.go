package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cardmax/pkg/config"
	"cardmax/pkg/logger"
	"cardmax/pkg/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the CardMax database and models",
	Long: `seed loads a card catalog into the database and trains the category
classifier, either from a labeled examples file or from stored transactions.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cardsCmd())
	rootCmd.AddCommand(trainCmd())
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	cancel()

	logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env is what every subcommand needs: configuration, a logger and a migrated
// database pool.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *pgxpool.Pool
}

func setup(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Format); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	appLogger := logger.Named("seed")

	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &env{cfg: cfg, logger: appLogger, db: db}, nil
}
