package app

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/reqpeek/reqpeek/internal/capture"
	"github.com/reqpeek/reqpeek/internal/config"
	"github.com/reqpeek/reqpeek/internal/display"
	"github.com/reqpeek/reqpeek/internal/logger"
	transport_http "github.com/reqpeek/reqpeek/internal/transport/http"
	"github.com/reqpeek/reqpeek/internal/version"
)

// SendOptions describes one request issued by the send command.
type SendOptions struct {
	// URL is the request target.
	URL string
	// Method is the HTTP method; empty defaults to GET.
	Method string
	// Headers are raw "Name: value" pairs in command-line order.
	Headers []string
	// Data is a raw string body.
	Data string
	// Form are raw "key=value" form fields; takes precedence over Data.
	Form []string
	// NoColor disables syntax highlighting for this invocation.
	NoColor bool
}

// ExecuteSendCommand issues one request through the capturing client and
// prints the captured request to stdout.
func ExecuteSendCommand(ctx context.Context, cfg *config.Config, opts *SendOptions) {
	broker := capture.NewBroker()

	d := display.NewDisplay(cfg.Color && !opts.NoColor)
	broker.Attach(d)
	defer broker.Detach(d)

	client := &http.Client{
		Transport: transport_http.NewHeaderInjector(http.DefaultTransport, map[string]string{
			"User-Agent": version.UserAgent(),
		}),
		Timeout: cfg.ParsedRequestTimeout,
	}

	// Build the request the way it is captured: method and URL first,
	// then one header at a time, then the body on send.
	builder := capture.NewRequestBuilder(broker, client)
	builder.Open(opts.Method, opts.URL)

	for _, raw := range opts.Headers {
		name, value, ok := strings.Cut(raw, ":")
		if !ok || strings.TrimSpace(name) == "" {
			logger.Warnf(ctx, "Skipping malformed header: %q", raw)
			continue
		}

		builder.SetHeader(strings.TrimSpace(name), strings.TrimSpace(value))
	}

	response, err := builder.Send(ctx, sendBody(ctx, opts))
	if err != nil {
		// The capture still happened; show it before reporting the failure.
		_ = d.Render(os.Stdout)

		logger.Fatalf(ctx, "Request failed: %v", err)

		return
	}

	defer response.Body.Close() //nolint:errcheck // Error on close is not critical here.

	// The response itself is not displayed; drain it so the connection
	// can be reused.
	_, _ = io.Copy(io.Discard, response.Body)

	if err = d.Render(os.Stdout); err != nil {
		logger.Errorf(ctx, "Failed to render captured request: %v", err)
	}

	logger.Debugf(ctx, "Response status: %s", response.Status)
}

// sendBody converts the command-line body flags into a captured body value.
func sendBody(ctx context.Context, opts *SendOptions) any {
	if len(opts.Form) > 0 {
		form := make(capture.FormData, 0, len(opts.Form))

		for _, raw := range opts.Form {
			key, value, ok := strings.Cut(raw, "=")
			if !ok || key == "" {
				logger.Warnf(ctx, "Skipping malformed form field: %q", raw)
				continue
			}

			form = append(form, capture.FormField{Key: key, Value: value})
		}

		if len(form) > 0 {
			return form
		}

		return nil
	}

	if opts.Data != "" {
		return opts.Data
	}

	return nil
}
