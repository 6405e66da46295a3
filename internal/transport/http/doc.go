// Package http provides custom HTTP transport utilities: a round tripper
// that captures every outgoing request into a record before forwarding it,
// and a decorator that injects default headers into requests.
// Both are explicit, injectable decorators; nothing process-wide is patched.
package http
