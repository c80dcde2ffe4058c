package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"group-manager/internal/config"
	internaldb "group-manager/internal/db"
	"group-manager/internal/logging"
	"group-manager/internal/middleware"
)

func newRootCmd() *cobra.Command {
	var envFile string

	rootCmd := &cobra.Command{
		Use:           "group-manager",
		Short:         "Group and membership service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := config.LoadDotEnv(envFile); err != nil {
				return fmt.Errorf("load %s: %w", envFile, err)
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	serve := newServeCmd()
	rootCmd.AddCommand(serve, newMigrateCmd(), newTokenCmd())
	rootCmd.RunE = serve.RunE
	return rootCmd
}

// loadConfig reads the configuration and installs the process logger.
func loadConfig() (*config.Config, *slog.Logger, func() error, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("config: %w", err)
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.SlogLevel()
	logCfg.JSON = cfg.IsProduction()
	logCfg.File = cfg.LogFile
	logger, closeLog, err := logging.Setup(logCfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("logging: %w", err)
	}
	for _, w := range cfg.Warnings {
		logger.Warn(w)
	}
	return cfg, logger, closeLog, nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, closeLog, err := loadConfig()
			if err != nil {
				return err
			}
			defer closeLog() //nolint:errcheck
			return serve(cmd.Context(), cfg, logger)
		},
	}
}

func newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the group store schema",
	}

	withDB := func(fn func(ctx context.Context, pools *internaldb.Pools) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			cfg, _, closeLog, err := loadConfig()
			if err != nil {
				return err
			}
			defer closeLog() //nolint:errcheck

			pools, err := internaldb.OpenPools(cfg.MetaDBPath, 1)
			if err != nil {
				return err
			}
			defer pools.Close() //nolint:errcheck
			return fn(cmd.Context(), pools)
		}
	}

	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: withDB(func(ctx context.Context, pools *internaldb.Pools) error {
				if err := internaldb.RunMigrations(ctx, pools.Write); err != nil {
					return err
				}
				return printVersion(ctx, pools)
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			RunE: withDB(func(ctx context.Context, pools *internaldb.Pools) error {
				if err := internaldb.RollbackMigration(ctx, pools.Write); err != nil {
					return err
				}
				return printVersion(ctx, pools)
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied schema version",
			RunE:  withDB(printVersion),
		},
	)
	return migrateCmd
}

func printVersion(ctx context.Context, pools *internaldb.Pools) error {
	v, err := internaldb.SchemaVersion(ctx, pools.Write)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "schema version %d\n", v)
	return nil
}

func newTokenCmd() *cobra.Command {
	var (
		email string
		ttl   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Mint an HS256 bearer token for local testing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || userID <= 0 {
				return fmt.Errorf("user id must be a positive integer, got %q", args[0])
			}
			cfg, err := config.LoadFromEnv()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if cfg.Auth.OIDCEnabled() {
				return fmt.Errorf("server is configured for OIDC; tokens must come from the identity provider")
			}
			token, err := middleware.SignHS256(cfg.Auth.JWTSecret, userID, email, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	addTokenFlags(cmd.Flags(), &email, &ttl)
	return cmd
}

func addTokenFlags(fs *pflag.FlagSet, email *string, ttl *time.Duration) {
	fs.StringVar(email, "email", "", "email claim to embed")
	fs.DurationVar(ttl, "ttl", 24*time.Hour, "token lifetime")
}
