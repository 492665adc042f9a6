// Command migrate applies the SQL files under migrations/ with the atlas CLI.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"hotel-reservation/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func main() {
	var (
		dir     = flag.String("dir", "file://migrations", "migration directory URL")
		bin     = flag.String("atlas", "atlas", "path to the atlas binary")
		status  = flag.Bool("status", false, "print migration status instead of applying")
		timeout = flag.Duration("timeout", 2*time.Minute, "overall timeout")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	if err := run(*dir, *bin, *status, *timeout, logger); err != nil {
		logger.Error("migration failed", "error", err.Error())
		os.Exit(1)
	}
}

func run(dir, bin string, statusOnly bool, timeout time.Duration, logger *slog.Logger) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}
	var dbCfg config.DBConfig
	if err := envconfig.Process("", &dbCfg); err != nil {
		return fmt.Errorf("failed to process env config: %w", err)
	}

	client, err := atlasexec.NewClient(".", bin)
	if err != nil {
		return fmt.Errorf("failed to create atlas client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if statusOnly {
		st, err := client.MigrateStatus(ctx, &atlasexec.MigrateStatusParams{
			URL:    dbCfg.BuildDSN(),
			DirURL: dir,
		})
		if err != nil {
			return fmt.Errorf("failed to read migration status: %w", err)
		}
		logger.Info("migration status",
			"status", st.Status,
			"current", st.Current,
			"next", st.Next,
			"pending", len(st.Pending))
		return nil
	}

	applied, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL:    dbCfg.BuildDSN(),
		DirURL: dir,
	})
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	logger.Info("migrations applied",
		"current", applied.Current,
		"target", applied.Target,
		"applied", len(applied.Applied))
	return nil
}
