// Package display owns the "last request" slot and its rendered text form.
// It formats a captured record as an HTTP/1.1 wire message with optional
// best-effort syntax highlighting for terminals.
package display
