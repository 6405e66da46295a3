package proxy

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reqpeek/reqpeek/internal/capture"
	transport_http "github.com/reqpeek/reqpeek/internal/transport/http"
)

// slotSubscriber stores the last delivered record.
type slotSubscriber struct {
	record *capture.Record
}

func (s *slotSubscriber) OnRequest(record *capture.Record) {
	s.record = record
}

// TestProxy_ForwardsAndCaptures tests that a proxied request reaches the
// target unmodified while being captured exactly once.
func TestProxy_ForwardsAndCaptures(t *testing.T) {
	t.Parallel()

	var (
		receivedBody   []byte
		receivedHeader string
	)

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedBody, _ = io.ReadAll(r.Body)
		receivedHeader = r.Header.Get("X-Test")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("created")) //nolint:errcheck,gosec // Test response write.
	}))
	defer backend.Close()

	targetURL, err := url.Parse(backend.URL)
	require.NoError(t, err)

	broker := capture.NewBroker()
	slot := &slotSubscriber{}
	broker.Attach(slot)

	p := New("127.0.0.1:0", targetURL, transport_http.NewTap(http.DefaultTransport, broker, 0))

	front := httptest.NewServer(p.Handler())
	defer front.Close()

	req, err := http.NewRequest(http.MethodPost, front.URL+"/api/things", strings.NewReader("payload")) //nolint:noctx // Test code, context not needed.
	require.NoError(t, err)
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("X-Test", "1")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

	// The response passed through untouched.
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	responseBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "created", string(responseBody))

	// The backend received the original request.
	assert.Equal(t, "payload", string(receivedBody))
	assert.Equal(t, "1", receivedHeader)

	// The capture describes the outbound request.
	require.NotNil(t, slot.record)
	assert.Equal(t, http.MethodPost, slot.record.Method)
	assert.Contains(t, slot.record.URL, "/api/things")
	assert.Equal(t, "payload", slot.record.Body)
}

// TestProxy_UnreachableTarget tests that proxy errors surface as 502
// while the capture still happens.
func TestProxy_UnreachableTarget(t *testing.T) {
	t.Parallel()

	targetURL, err := url.Parse("http://127.0.0.1:0")
	require.NoError(t, err)

	broker := capture.NewBroker()
	slot := &slotSubscriber{}
	broker.Attach(slot)

	p := New("127.0.0.1:0", targetURL, transport_http.NewTap(http.DefaultTransport, broker, 0))

	front := httptest.NewServer(p.Handler())
	defer front.Close()

	resp, err := http.Get(front.URL + "/down") //nolint:noctx // Test code, context not needed.
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	// Capture precedes the failed forward.
	require.NotNil(t, slot.record)
	assert.Contains(t, slot.record.URL, "/down")
}
