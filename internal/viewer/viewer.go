package viewer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/reqpeek/reqpeek/internal/capture"
	"github.com/reqpeek/reqpeek/internal/display"
	"github.com/reqpeek/reqpeek/internal/logger"
)

// clientBufferSize bounds the per-connection update queue; a client that
// cannot keep up skips intermediate renders and only ever misses stale ones.
const clientBufferSize = 8

// Viewer serves the current render of the last captured request over HTTP
// and pushes re-renders to connected WebSocket clients after every capture.
//
// Viewer implements capture.Subscriber.
type Viewer struct {
	display  *display.Display
	router   chi.Router
	server   *http.Server
	upgrader websocket.Upgrader

	clientsMu sync.RWMutex
	clients   map[chan string]struct{}
}

// New creates a viewer for the given display, listening on addr once started.
func New(addr string, d *display.Display) *Viewer {
	v := &Viewer{
		display: d,
		router:  chi.NewRouter(),
		clients: make(map[chan string]struct{}),
		upgrader: websocket.Upgrader{
			// The viewer binds to loopback; cross-origin pages may still
			// open sockets to it, which is fine for a read-only debug view.
			CheckOrigin: func(_ *http.Request) bool { return true },
		},
	}

	v.server = &http.Server{
		Addr:    addr,
		Handler: v.router,
	}

	v.routes()

	return v
}

func (v *Viewer) routes() {
	r := v.router

	r.Get("/", v.handleUI)
	r.Get("/api/last", v.handleLast)
	r.Get("/api/last.json", v.handleLastJSON)
	r.Post("/api/clear", v.handleClear)
	r.Get("/ws", v.handleWS)
}

// Handler returns the viewer's HTTP handler for serving without Start,
// mainly for tests.
func (v *Viewer) Handler() http.Handler {
	return v.router
}

// Start begins serving in the background.
func (v *Viewer) Start(ctx context.Context) {
	logger.Infof(ctx, "Web view available at http://%s", v.server.Addr)

	go func() {
		if err := v.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "Viewer server error: %v", err)
		}
	}()
}

// Stop shuts the server down and disconnects all clients.
func (v *Viewer) Stop(ctx context.Context) {
	if err := v.server.Shutdown(ctx); err != nil {
		logger.Warnf(ctx, "Viewer shutdown error: %v", err)
	}
}

// OnRequest re-renders after a capture and fans the text out to connected
// clients. The display is attached to the broker ahead of the viewer, so by
// delivery time the slot already holds this record.
func (v *Viewer) OnRequest(_ *capture.Record) {
	v.broadcast(v.display.RenderString())
}

func (v *Viewer) broadcast(rendered string) {
	v.clientsMu.RLock()
	defer v.clientsMu.RUnlock()

	for client := range v.clients {
		select {
		case client <- rendered:
		default:
			// Client too slow, skip.
		}
	}
}

// handleUI serves the web page.
func (v *Viewer) handleUI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(viewerHTML))
}

// handleLast returns the current render as plain text.
func (v *Viewer) handleLast(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(v.display.RenderString()))
}

// handleLastJSON returns the raw record as JSON.
func (v *Viewer) handleLastJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	record := v.display.Snapshot()
	if record == nil {
		w.Write([]byte(`{"captured":false}`)) //nolint:errcheck,gosec // Best-effort response write.
		return
	}

	if err := json.NewEncoder(w).Encode(record); err != nil {
		logger.Warnf(r.Context(), "Failed to encode record: %v", err)
	}
}

// handleClear resets the slot and notifies clients.
func (v *Viewer) handleClear(w http.ResponseWriter, _ *http.Request) {
	v.display.Reset()
	v.broadcast(v.display.RenderString())

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"cleared"}`)) //nolint:errcheck,gosec // Best-effort response write.
}

// handleWS streams re-rendered text to the client, starting with the
// current state.
func (v *Viewer) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := v.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warnf(r.Context(), "WebSocket upgrade failed: %v", err)
		return
	}

	defer conn.Close() //nolint:errcheck // Connection teardown, error is not critical.

	updates := make(chan string, clientBufferSize)

	v.clientsMu.Lock()
	v.clients[updates] = struct{}{}
	v.clientsMu.Unlock()

	defer func() {
		v.clientsMu.Lock()
		delete(v.clients, updates)
		v.clientsMu.Unlock()
	}()

	// Drain the socket so client-initiated close is noticed.
	done := make(chan struct{})

	go func() {
		defer close(done)

		for {
			if _, _, readErr := conn.ReadMessage(); readErr != nil {
				return
			}
		}
	}()

	if err = conn.WriteMessage(websocket.TextMessage, []byte(v.display.RenderString())); err != nil {
		return
	}

	for {
		select {
		case rendered := <-updates:
			if err = conn.WriteMessage(websocket.TextMessage, []byte(rendered)); err != nil {
				return
			}
		case <-done:
			return
		case <-r.Context().Done():
			return
		}
	}
}

const viewerHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>reqpeek</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            background: #0d1117;
            color: #c9d1d9;
            line-height: 1.5;
        }
        .header {
            background: #161b22;
            border-bottom: 1px solid #30363d;
            padding: 16px 24px;
            display: flex;
            align-items: center;
            justify-content: space-between;
        }
        .logo { font-size: 24px; font-weight: 700; color: #58a6ff; }
        .logo span { color: #8b949e; font-weight: 400; }
        .btn {
            background: #21262d;
            border: 1px solid #f85149;
            color: #f85149;
            padding: 8px 16px;
            border-radius: 6px;
            cursor: pointer;
            font-size: 14px;
        }
        .btn:hover { background: #f8514922; }
        .container { padding: 24px; }
        pre {
            background: #161b22;
            border: 1px solid #30363d;
            border-radius: 8px;
            padding: 16px;
            overflow-x: auto;
        }
        code { font-family: ui-monospace, SFMono-Regular, Menlo, monospace; font-size: 14px; }
        .live-indicator {
            display: inline-flex;
            align-items: center;
            gap: 8px;
            color: #3fb950;
            font-size: 14px;
            margin-right: 16px;
        }
        .live-dot {
            width: 8px;
            height: 8px;
            background: #3fb950;
            border-radius: 50%;
            animation: pulse 2s infinite;
        }
        @keyframes pulse {
            0%, 100% { opacity: 1; }
            50% { opacity: 0.5; }
        }
    </style>
</head>
<body>
    <div class="header">
        <div class="logo">reqpeek <span>last request</span></div>
        <div>
            <span class="live-indicator"><span class="live-dot"></span>Live</span>
            <button class="btn" onclick="clearRequest()">Clear</button>
        </div>
    </div>
    <div class="container">
        <pre><code id="message">Connecting...</code></pre>
    </div>

    <script>
        const message = document.getElementById('message');

        function show(text) {
            // Rendered as literal text, never interpreted as markup.
            message.textContent = text;
        }

        function clearRequest() {
            fetch('/api/clear', { method: 'POST' });
        }

        function connect() {
            const ws = new WebSocket('ws://' + location.host + '/ws');
            ws.onmessage = (event) => show(event.data);
            ws.onclose = () => setTimeout(connect, 1000);
        }

        fetch('/api/last').then(r => r.text()).then(show);
        connect();
    </script>
</body>
</html>`
