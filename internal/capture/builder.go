package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Static error definitions for better error handling.
var (
	// ErrNotOpened indicates that Send was called before Open.
	ErrNotOpened = errors.New("request builder was not opened")
)

// RequestBuilder captures a request that is assembled piece by piece:
// method and URL first, then headers one at a time, then the body on send.
// This mirrors callers that configure a request object incrementally
// instead of passing everything in one call.
//
// A builder is bound to one in-flight request at a time and is not safe
// for concurrent use.
type RequestBuilder struct {
	broker *Broker
	client *http.Client
	record *Record
}

// NewRequestBuilder creates a builder that publishes to the given broker
// and performs real calls with the given client.
// A nil client falls back to http.DefaultClient.
func NewRequestBuilder(broker *Broker, client *http.Client) *RequestBuilder {
	if client == nil {
		client = http.DefaultClient
	}

	return &RequestBuilder{
		broker: broker,
		client: client,
	}
}

// Open initializes a fresh record with empty headers and a fresh timestamp,
// replacing any record from a previous Open on the same builder.
// An empty method defaults to GET.
func (rb *RequestBuilder) Open(method, targetURL string) {
	rb.record = NewRecord(method, targetURL)
}

// SetHeader appends or overwrites a single header on the pending record.
// Calls before Open are silently dropped.
func (rb *RequestBuilder) SetHeader(name, value string) {
	if rb.record == nil {
		return
	}

	rb.record.SetHeader(name, value)
}

// Send sets the record's body, publishes the record, then performs the real
// HTTP call with the accumulated method, URL, headers, and body.
// Publication happens before the call and never depends on its outcome;
// the response and error are returned to the caller untouched.
func (rb *RequestBuilder) Send(ctx context.Context, body any) (*http.Response, error) {
	if rb.record == nil {
		return nil, ErrNotOpened
	}

	record := rb.record
	record.Body = body

	// No subscribers attached is a silent no-op inside Publish.
	rb.broker.Publish(record)

	request, err := rb.buildRequest(ctx, record, body)
	if err != nil {
		return nil, err
	}

	return rb.client.Do(request)
}

func (rb *RequestBuilder) buildRequest(ctx context.Context, record *Record, body any) (*http.Request, error) {
	reader, contentType := encodeBody(body)

	request, err := http.NewRequestWithContext(ctx, record.Method, record.URL, reader)
	if err != nil {
		return nil, err
	}

	for _, header := range record.Headers {
		request.Header.Set(header.Name, header.Value)
	}

	// The wire encoding needs a content type; the record keeps the body
	// exactly as the caller supplied it.
	if contentType != "" && request.Header.Get("Content-Type") == "" {
		request.Header.Set("Content-Type", contentType)
	}

	return request, nil
}

// encodeBody converts the captured body value into its wire form and an
// implied content type, if any.
func encodeBody(body any) (io.Reader, string) {
	switch value := body.(type) {
	case nil:
		return http.NoBody, ""
	case string:
		if value == "" {
			return http.NoBody, ""
		}

		return strings.NewReader(value), ""
	case FormData:
		values := url.Values{}
		for _, field := range value {
			values.Add(field.Key, field.Value)
		}

		return strings.NewReader(values.Encode()), "application/x-www-form-urlencoded"
	default:
		// Unrecognized body types degrade to their default string conversion.
		return strings.NewReader(fmt.Sprintf("%v", value)), ""
	}
}
