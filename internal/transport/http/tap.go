package http

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/reqpeek/reqpeek/internal/capture"
	"github.com/reqpeek/reqpeek/internal/utils"
)

// Tap is a custom http.RoundTripper that captures every request into a
// capture.Record and publishes it before forwarding the request onward.
// The forwarded call proceeds with the original arguments, and the response
// is returned to the caller untouched and never inspected.
type Tap struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// broker receives one record per request.
	broker *capture.Broker
	// maxBodyCapture is the maximum number of body bytes copied into a record.
	maxBodyCapture int64
}

// Static error definitions for better error handling.
var (
	// ErrNilRequest indicates that the HTTP request is nil.
	ErrNilRequest = errors.New("request is nil")
)

// NewTap creates and returns a new instance of Tap.
// If maxBodyCapture is less than or equal to 0, it defaults to DefaultMaxBodyCapture.
func NewTap(next http.RoundTripper, broker *capture.Broker, maxBodyCapture int64) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	if maxBodyCapture <= 0 {
		maxBodyCapture = DefaultMaxBodyCapture
	}

	return &Tap{
		next:           next,
		broker:         broker,
		maxBodyCapture: maxBodyCapture,
	}
}

// RoundTrip executes a single HTTP transaction, publishing a captured record
// first. Capture is best effort: whatever happens during record construction,
// the request is forwarded unconditionally and unmodified.
// It implements the http.RoundTripper interface.
func (t *Tap) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	if t.broker != nil {
		t.broker.Publish(t.captureRecord(req))
	}

	return t.next.RoundTrip(req)
}

// captureRecord builds a record from the request. The body is captured only
// when it is text-like and within the capture limit; otherwise a size note
// stands in for it. The request body is left readable for the forward call.
func (t *Tap) captureRecord(req *http.Request) *capture.Record {
	record := capture.NewRecord(req.Method, req.URL.String())
	record.Headers = capture.HeadersFromHTTP(req.Header)
	record.Body = t.captureBody(req)

	return record
}

func (t *Tap) captureBody(req *http.Request) any {
	if req.Body == nil || req.Body == http.NoBody {
		return nil
	}

	contentType := req.Header.Get("Content-Type")
	if !utils.IsTextContentType(contentType) {
		return capture.OmittedBody{Size: req.ContentLength, ContentType: contentType}
	}

	// Read one byte past the limit to detect oversized bodies without
	// consuming them entirely.
	peeked, err := io.ReadAll(io.LimitReader(req.Body, t.maxBodyCapture+1))

	// Whatever was read must stay readable for the forwarded call.
	req.Body = &replayBody{
		Reader: io.MultiReader(bytes.NewReader(peeked), req.Body),
		closer: req.Body,
	}

	if err != nil {
		return capture.OmittedBody{Size: -1, ContentType: contentType}
	}

	if int64(len(peeked)) > t.maxBodyCapture {
		return capture.OmittedBody{Size: req.ContentLength, ContentType: contentType}
	}

	return string(peeked)
}

// replayBody re-joins the peeked prefix with the unread remainder of the
// original body while keeping the original closer.
type replayBody struct {
	io.Reader
	closer io.Closer
}

func (b *replayBody) Close() error {
	return b.closer.Close()
}
