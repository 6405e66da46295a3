package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/reqpeek/reqpeek/internal/app"
	"github.com/reqpeek/reqpeek/internal/config"
	"github.com/reqpeek/reqpeek/internal/logger"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "reqpeek [flags] {target-url}",
		Short: "Capture outgoing HTTP requests and display the most recent one.",
		Long: `Reqpeek runs a local reverse proxy in front of a target and observes every
request passing through it. The most recent request is kept in a single slot
and rendered as an HTTP/1.1 wire message:
- in a local web view that updates live over a WebSocket
- as syntax-highlighted text via the 'send' subcommand

Capture is passive: requests are forwarded to the target unmodified, and
responses are never inspected.`,
		Args:             cobra.ExactArgs(1),
		PersistentPreRun: initConfig,
		Run: func(cmd *cobra.Command, args []string) {
			if err := bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
				logger.Fatalf(cmd.Context(), "Failed to parse flags: %v", err)
			}

			appConfig.TargetURL = args[0]
			if err := config.ValidateConfig(appConfig); err != nil {
				logger.Fatalf(cmd.Context(), "Invalid configuration: %v", err)
			}

			app.ExecuteRootCommand(cmd.Context(), appConfig)
		},
	}
)

// Execute executes the root command.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	defer stop()

	go func() {
		defer stop()

		err := rootCmd.ExecuteContext(ctx)
		cobra.CheckErr(err)
	}()

	<-ctx.Done()
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	rootCmd.PersistentFlags().StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	rootCmdFlags := rootCmd.Flags()

	rootCmdFlags.StringP(
		"listen",
		"l",
		"",
		"address the capturing proxy listens on, for example: 127.0.0.1:8080.")

	rootCmdFlags.StringP(
		"viewer",
		"w",
		"",
		"address the web view listens on, for example: 127.0.0.1:4040.")

	rootCmdFlags.StringP(
		"max-body",
		"b",
		"",
		"maximum request body size to capture, for example: 64 KB, 1 MB.")
}

func initConfig(cmd *cobra.Command, _ []string) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		logger.Fatalf(cmd.Context(), "Failed to load configuration: %v", err)
	}

	logger.SetLevel(appConfig.ParsedLogLevel)
}

func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("listen"); flag != nil && flag.Changed {
		cfg.ListenAddr, _ = flags.GetString("listen")
	}

	if flag := flags.Lookup("viewer"); flag != nil && flag.Changed {
		cfg.ViewerAddr, _ = flags.GetString("viewer")
	}

	if flag := flags.Lookup("max-body"); flag != nil && flag.Changed {
		cfg.MaxBodyCapture, _ = flags.GetString("max-body")
	}

	return nil
}
