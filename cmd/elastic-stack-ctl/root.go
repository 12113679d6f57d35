package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/auto-dns/elastic-stack-ctl/internal/app"
	"github.com/auto-dns/elastic-stack-ctl/internal/config"
	"github.com/auto-dns/elastic-stack-ctl/internal/domain"
	"github.com/auto-dns/elastic-stack-ctl/internal/health"
	"github.com/auto-dns/elastic-stack-ctl/internal/logger"
	"github.com/auto-dns/elastic-stack-ctl/internal/prompt"
	"github.com/rs/zerolog"
)

type contextKey string

const configKey = contextKey("config")

const (
	exitCodeFailure       = 1
	exitCodeInvalidAction = 2
)

// newApplication builds the real application. Tests swap it for a stub.
var newApplication = func(cfg *config.Config, logInstance zerolog.Logger) (application, error) {
	return app.New(cfg, logInstance)
}

var rootCmd = &cobra.Command{
	Use:           "elastic-stack-ctl [start|status|stop|destroy]",
	Short:         "Manage a local Elasticsearch and Kibana stack",
	Long:          "A tool to bring up, inspect, and tear down a docker compose Elasticsearch + Kibana stack.",
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.InitConfig(); err != nil {
			return err
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		ctx := context.WithValue(cmd.Context(), configKey, cfg)
		cmd.SetContext(ctx)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Load configuration.
		cfg := cmd.Context().Value(configKey).(*config.Config)

		// Set up logger.
		logInstance := logger.SetupLogger(&cfg.Logging)

		// Resolve the action: positional argument, or interactive prompt.
		action, err := resolveAction(cmd, args)
		if err != nil {
			return err
		}

		// Create the application.
		application, err := newApplication(cfg, logInstance)
		if err != nil {
			return fmt.Errorf("failed to create app: %w", err)
		}
		defer func() {
			if err := application.Close(); err != nil {
				logInstance.Warn().Err(err).Msg("Close error")
			}
		}()

		// Create a context with cancellation for graceful shutdown.
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// Listen for OS signals.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			sig := <-sigCh
			logInstance.Info().Msgf("Received signal: %v", sig)
			cancel()
		}()

		if err := application.Run(ctx, action); err != nil {
			return fmt.Errorf("app run error: %w", err)
		}
		return nil
	},
}

func resolveAction(cmd *cobra.Command, args []string) (domain.Action, error) {
	if len(args) > 0 {
		action, err := domain.ParseAction(args[0])
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), cmd.UsageString())
			return "", err
		}
		return action, nil
	}
	return prompt.NewPrompter(cmd.InOrStdin(), cmd.ErrOrStderr()).Action()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default is config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "INFO", "set log level (e.g. INFO, DEBUG, WARN)")
	viper.BindPFlag("log.log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	// Enable automatic environment variable binding.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

// Execute runs the root command and exits with the code the failure calls for.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var invalidAction *domain.InvalidActionError
	if errors.As(err, &invalidAction) {
		return exitCodeInvalidAction
	}
	var timeout *health.TimeoutError
	if errors.As(err, &timeout) {
		return exitCodeFailure
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}
	return exitCodeFailure
}
