package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"tracker/cmd"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type commandContext struct {
	envFile string
	config  *cmd.Config
}

func (c *commandContext) ensureConfig() (cmd.Config, error) {
	if c.config != nil {
		return *c.config, nil
	}
	if err := godotenv.Load(c.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cmd.Config{}, err
	}
	cfg, err := cmd.LoadConfig(os.Getenv)
	if err != nil {
		return cmd.Config{}, err
	}
	c.config = &cfg
	return cfg, nil
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "tracker",
		Short:         "Component status tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&ctx.envFile, "env-file", ".env", "Environment file loaded before reading variables")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newMigrateCommand(ctx))
	rootCmd.AddCommand(newStatusesCommand())
	rootCmd.AddCommand(newTestNotifyCommand(ctx))

	return rootCmd
}
