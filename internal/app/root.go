package app

import (
	"context"
	"net/http"
	"time"

	"github.com/reqpeek/reqpeek/internal/capture"
	"github.com/reqpeek/reqpeek/internal/config"
	"github.com/reqpeek/reqpeek/internal/display"
	"github.com/reqpeek/reqpeek/internal/logger"
	"github.com/reqpeek/reqpeek/internal/proxy"
	transport_http "github.com/reqpeek/reqpeek/internal/transport/http"
	"github.com/reqpeek/reqpeek/internal/viewer"
)

// shutdownTimeout bounds graceful shutdown of the proxy and viewer servers.
const shutdownTimeout = 5 * time.Second

// ExecuteRootCommand is the entry point for proxy mode.
// It wires the broker, display, viewer, and capturing proxy together and
// serves until the context is canceled.
func ExecuteRootCommand(ctx context.Context, cfg *config.Config) {
	if cfg.ParsedTargetURL == nil {
		logger.Fatalf(ctx, "A target URL is required in proxy mode")
		return
	}

	broker := capture.NewBroker()

	// The display must attach before the viewer: the viewer renders the
	// display's state when a record arrives.
	d := display.NewDisplay(cfg.Color)
	broker.Attach(d)

	v := viewer.New(cfg.ViewerAddr, d)
	broker.Attach(v)

	// The proxy's outbound transport only observes; proxied traffic is
	// never mutated.
	tap := transport_http.NewTap(http.DefaultTransport, broker, cfg.ParsedMaxBodyCapture)
	p := proxy.New(cfg.ListenAddr, cfg.ParsedTargetURL, tap)

	v.Start(ctx)
	p.Start(ctx)

	logger.Infof(ctx, "Forwarding http://%s -> %s", cfg.ListenAddr, cfg.ParsedTargetURL)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	p.Stop(shutdownCtx)
	v.Stop(shutdownCtx)

	broker.Detach(v)
	broker.Detach(d)
}
