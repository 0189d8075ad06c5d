package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	pg "pet-translator/internal/adapters/storage/postgres"
	"pet-translator/internal/config"
	"pet-translator/internal/domain/badges"
	"pet-translator/internal/domain/profiles"
	"pet-translator/internal/domain/translations/canned"
	"pet-translator/internal/platform/logger"

	"github.com/spf13/cobra"
)

// app concentra las dependencias de los comandos; los tests reemplazan openProfiles.
type app struct {
	cfg *config.Config
	log logger.Logger
	out io.Writer

	table        *canned.Table
	openDB       func() (*sql.DB, error)
	openProfiles func() (profiles.Repository, func() error, error)
}

func newApp(cfg *config.Config, log logger.Logger, out io.Writer) *app {
	a := &app{cfg: cfg, log: log, out: out, table: canned.Default()}
	a.openDB = func() (*sql.DB, error) {
		dsn := strings.TrimSpace(cfg.Database.DSN)
		if dsn == "" {
			return nil, errors.New("DB_DSN is required")
		}
		return pg.Open(dsn)
	}
	a.openProfiles = func() (profiles.Repository, func() error, error) {
		db, err := a.openDB()
		if err != nil {
			return nil, nil, err
		}
		return pg.NewProfilesRepo(db), db.Close, nil
	}
	return a
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "petctl",
		Short: "Operator tool for the pet translator backend",
		Long: `petctl runs administrative tasks against the pet translator database.

Available commands:
  migrate - Apply the schema and seed the badge catalog
  points  - Inspect or adjust treat points
  canned  - Browse the canned phrase table`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(a.out)
	root.AddCommand(a.migrateCmd(), a.pointsCmd(), a.cannedCmd())
	return root
}

func (a *app) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema.sql and seed badges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			if err := pg.Migrate(ctx, db); err != nil {
				return err
			}
			catalog := badges.DefaultCatalog(time.Now())
			if err := pg.NewBadgesRepo(db).Seed(ctx, catalog); err != nil {
				return fmt.Errorf("seed badges: %w", err)
			}
			a.log.Info("schema applied", map[string]any{"badges": len(catalog)})
			fmt.Fprintf(a.out, "schema applied, %d badges seeded\n", len(catalog))
			return nil
		},
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(os.Getenv("LOG_LEVEL")),
		Format: logger.ParseFormat(os.Getenv("LOG_FORMAT")),
		App:    "petctl",
	})
	defer func() {
		if zl, ok := log.(*logger.ZapLogger); ok {
			_ = zl.Sync()
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(cfg, log, os.Stdout).rootCmd().ExecuteContext(ctx); err != nil {
		log.Error("command failed", map[string]any{"error": err})
		os.Exit(1)
	}
}
