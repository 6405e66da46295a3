// Package app provides the main application logic for capturing and
// displaying HTTP requests. It wires the broker, display, viewer, proxy,
// and capturing client together and runs the command entry points.
package app
