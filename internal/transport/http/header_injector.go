package http

import "net/http"

// HeaderInjector is a custom http.RoundTripper that injects default headers
// into HTTP requests. It wraps another http.RoundTripper and sets each
// configured header only when the request does not already carry it.
type HeaderInjector struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// headers are the default headers to inject.
	headers map[string]string
}

// NewHeaderInjector creates and returns a new instance of HeaderInjector.
// The headers map is copied, so later mutation by the caller has no effect.
func NewHeaderInjector(next http.RoundTripper, headers map[string]string) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	copied := make(map[string]string, len(headers))
	for name, value := range headers {
		copied[name] = value
	}

	return &HeaderInjector{
		next:    next,
		headers: copied,
	}
}

// RoundTrip executes a single HTTP transaction and injects each configured
// header if it is missing. It implements the http.RoundTripper interface.
func (t *HeaderInjector) RoundTrip(req *http.Request) (*http.Response, error) {
	for name, value := range t.headers {
		if req.Header.Get(name) == "" {
			req.Header.Set(name, value)
		}
	}

	return t.next.RoundTrip(req)
}
