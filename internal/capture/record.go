package capture

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// DefaultMethod is used when a record is created without an explicit method.
const DefaultMethod = http.MethodGet

// Header is a single captured header. Records keep headers as an ordered
// slice rather than a map so the incremental capture path preserves the
// order headers were set in.
type Header struct {
	// Name is the header name as supplied by the caller.
	Name string `json:"name"`
	// Value is the header value.
	Value string `json:"value"`
}

// FormField is one entry of a form-style request body.
type FormField struct {
	// Key is the form field name.
	Key string `json:"key"`
	// Value is the form field value.
	Value string `json:"value"`
}

// FormData is an ordered form-style request body.
// Iteration order is the order fields were added in.
type FormData []FormField

// OmittedBody stands in for a request body that was present but not captured,
// either because it was not text or because it exceeded the capture limit.
type OmittedBody struct {
	// Size is the body size in bytes, or -1 when unknown.
	Size int64 `json:"size"`
	// ContentType is the declared Content-Type of the body.
	ContentType string `json:"contentType"`
}

// String renders the placeholder shown instead of the omitted body content.
func (b OmittedBody) String() string {
	contentType := b.ContentType
	if contentType == "" {
		contentType = "unknown content type"
	}

	if b.Size < 0 {
		return fmt.Sprintf("(%s body, size unknown, not captured)", contentType)
	}

	return fmt.Sprintf("(%s body, %s, not captured)", contentType, humanize.Bytes(uint64(b.Size)))
}

// Record is a normalized description of one outgoing HTTP call.
// Records are value objects: they carry no identity and are never
// compared to each other.
type Record struct {
	// Method is the HTTP method, e.g. "GET".
	Method string `json:"method"`
	// URL is the request target exactly as the caller supplied it.
	URL string `json:"url"`
	// Headers are the captured headers in stored order.
	Headers []Header `json:"headers"`
	// Body is the request payload: nil, a string, FormData, or OmittedBody.
	Body any `json:"body,omitempty"`
	// Timestamp is the point in time the call was issued,
	// captured at interception, not at network completion.
	Timestamp time.Time `json:"timestamp"`
}

// NewRecord creates a record with a fresh timestamp.
// An empty method defaults to GET.
func NewRecord(method, url string) *Record {
	if method == "" {
		method = DefaultMethod
	}

	return &Record{
		Method:    method,
		URL:       url,
		Timestamp: time.Now(),
	}
}

// SetHeader appends the header, or overwrites its value in place when a
// header with the same name (case-insensitive) was already set.
func (r *Record) SetHeader(name, value string) {
	for i := range r.Headers {
		if strings.EqualFold(r.Headers[i].Name, name) {
			r.Headers[i].Value = value
			return
		}
	}

	r.Headers = append(r.Headers, Header{Name: name, Value: value})
}

// HeaderValue returns the value of the named header (case-insensitive)
// and whether it was present.
func (r *Record) HeaderValue(name string) (string, bool) {
	for _, h := range r.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value, true
		}
	}

	return "", false
}

// HeadersFromHTTP normalizes an http.Header collection into record headers.
// Multi-valued headers are joined the way they appear on the wire.
// Map iteration order is not stable, so names are sorted for deterministic
// output. A nil collection yields no headers.
func HeadersFromHTTP(source http.Header) []Header {
	if len(source) == 0 {
		return nil
	}

	names := make([]string, 0, len(source))
	for name := range source {
		names = append(names, name)
	}

	sort.Strings(names)

	headers := make([]Header, 0, len(names))
	for _, name := range names {
		headers = append(headers, Header{
			Name:  name,
			Value: strings.Join(source[name], ", "),
		})
	}

	return headers
}

// HeadersFromMap normalizes a plain name-to-value mapping into record headers.
// Names are sorted for deterministic output. A nil map yields no headers.
func HeadersFromMap(source map[string]string) []Header {
	if len(source) == 0 {
		return nil
	}

	names := make([]string, 0, len(source))
	for name := range source {
		names = append(names, name)
	}

	sort.Strings(names)

	headers := make([]Header, 0, len(names))
	for _, name := range names {
		headers = append(headers, Header{Name: name, Value: source[name]})
	}

	return headers
}
