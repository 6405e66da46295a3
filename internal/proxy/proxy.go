// Package proxy implements the capturing reverse proxy: a thin
// httputil.ReverseProxy whose outbound transport observes every request
// before it leaves for the target.
package proxy

import (
	"context"
	"errors"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/reqpeek/reqpeek/internal/logger"
)

// Proxy forwards requests from a listen address to a single target.
// Capture happens inside the outbound transport, so the proxy itself
// neither inspects nor mutates traffic.
type Proxy struct {
	server       *http.Server
	reverseProxy *httputil.ReverseProxy
}

// New creates a proxy forwarding to target through the given transport.
// A nil transport falls back to http.DefaultTransport.
func New(listenAddr string, target *url.URL, transport http.RoundTripper) *Proxy {
	if transport == nil {
		transport = http.DefaultTransport
	}

	reverseProxy := httputil.NewSingleHostReverseProxy(target)
	reverseProxy.Transport = transport
	reverseProxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Errorf(r.Context(), "Proxy error: %s %s: %v", r.Method, r.URL.Path, err)
		http.Error(w, "Bad Gateway", http.StatusBadGateway)
	}

	p := &Proxy{reverseProxy: reverseProxy}
	p.server = &http.Server{
		Addr:    listenAddr,
		Handler: p.reverseProxy,
	}

	return p
}

// Handler returns the proxy's HTTP handler for serving without Start,
// mainly for tests.
func (p *Proxy) Handler() http.Handler {
	return p.reverseProxy
}

// Start begins serving in the background.
func (p *Proxy) Start(ctx context.Context) {
	logger.Infof(ctx, "Capturing proxy listening on http://%s", p.server.Addr)

	go func() {
		if err := p.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "Proxy server error: %v", err)
		}
	}()
}

// Stop shuts the server down.
func (p *Proxy) Stop(ctx context.Context) {
	if err := p.server.Shutdown(ctx); err != nil {
		logger.Warnf(ctx, "Proxy shutdown error: %v", err)
	}
}
