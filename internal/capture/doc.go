// Package capture defines the request record captured from outgoing HTTP
// traffic and the broker that fans records out to subscribers.
// Capture is passive: records describe the request as it was issued and
// never reflect the outcome of the network call.
package capture
