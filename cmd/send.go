package cmd

import (
	"github.com/spf13/cobra"

	"github.com/reqpeek/reqpeek/internal/app"
	"github.com/reqpeek/reqpeek/internal/config"
	"github.com/reqpeek/reqpeek/internal/logger"
)

var (
	//nolint:gochecknoglobals // Cobra command requires a global definition.
	sendCmd = &cobra.Command{
		Use:   "send [flags] {url}",
		Short: "Issue a single HTTP request and print its captured form",
		Long: `Issues one HTTP request through the capturing client and prints the
captured request as an HTTP/1.1 wire message to stdout.

The request is built the same way it is captured: method and URL first,
then one header at a time, then the body. Examples:

reqpeek send https://example.com/api
reqpeek send -X POST -H "X-Test: 1" -d "hello" https://example.com/api
reqpeek send -X POST -F user=alice -F role=admin https://example.com/form`,
		Args:             cobra.ExactArgs(1),
		PersistentPreRun: initConfig,
		Run: func(cmd *cobra.Command, args []string) {
			opts, err := sendOptionsFromFlags(cmd)
			if err != nil {
				logger.Fatalf(cmd.Context(), "Failed to parse flags: %v", err)
			}

			if err = config.ValidateConfig(appConfig); err != nil {
				logger.Fatalf(cmd.Context(), "Invalid configuration: %v", err)
			}

			opts.URL = args[0]

			app.ExecuteSendCommand(cmd.Context(), appConfig, opts)
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	sendCmdFlags := sendCmd.Flags()

	sendCmdFlags.StringP(
		"method",
		"X",
		"",
		"HTTP method to use (defaults to GET).")

	sendCmdFlags.StringArrayP(
		"header",
		"H",
		nil,
		"request header as 'Name: value', repeatable.")

	sendCmdFlags.StringP(
		"data",
		"d",
		"",
		"request body as a raw string.")

	sendCmdFlags.StringArrayP(
		"form",
		"F",
		nil,
		"form field as 'key=value', repeatable; mutually exclusive with --data.")

	sendCmdFlags.Bool(
		"no-color",
		false,
		"disable syntax highlighting of the printed request.")

	// Add send command to root command.
	rootCmd.AddCommand(sendCmd)
}

func sendOptionsFromFlags(cmd *cobra.Command) (*app.SendOptions, error) {
	flags := cmd.Flags()

	method, err := flags.GetString("method")
	if err != nil {
		return nil, err
	}

	headers, err := flags.GetStringArray("header")
	if err != nil {
		return nil, err
	}

	data, err := flags.GetString("data")
	if err != nil {
		return nil, err
	}

	form, err := flags.GetStringArray("form")
	if err != nil {
		return nil, err
	}

	noColor, err := flags.GetBool("no-color")
	if err != nil {
		return nil, err
	}

	return &app.SendOptions{
		Method:  method,
		Headers: headers,
		Data:    data,
		Form:    form,
		NoColor: noColor,
	}, nil
}
