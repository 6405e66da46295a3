package display

import (
	"io"
	"strings"
	"sync"

	"github.com/reqpeek/reqpeek/internal/capture"
)

const (
	// Placeholder is shown when no request has been captured yet.
	Placeholder = "No requests captured."

	// timestampFormat is the local-time layout shown beneath the message.
	timestampFormat = "2006-01-02 15:04:05 MST"
)

// Display holds the most recent captured record and renders it as HTTP
// wire text. At most one record is retained: every delivery unconditionally
// overwrites the previous one, regardless of whether the underlying network
// call has completed, succeeded, or failed.
//
// Display implements capture.Subscriber.
type Display struct {
	mu       sync.RWMutex
	record   *capture.Record
	colorize bool
}

// NewDisplay creates an empty display.
// When colorize is true, terminal rendering is syntax-highlighted on a
// best-effort basis.
func NewDisplay(colorize bool) *Display {
	return &Display{colorize: colorize}
}

// OnRequest stores the delivered record, replacing any previous one.
func (d *Display) OnRequest(record *capture.Record) {
	if record == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.record = record
}

// Reset clears the slot.
func (d *Display) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.record = nil
}

// Snapshot returns the current record, or nil when the slot is empty.
func (d *Display) Snapshot() *capture.Record {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.record
}

// RenderString renders the current state as plain text: the placeholder when
// the slot is empty, otherwise the HTTP message followed by a local-time
// capture timestamp. Rendering is idempotent for an unchanged slot.
func (d *Display) RenderString() string {
	record := d.Snapshot()
	if record == nil {
		return Placeholder
	}

	var builder strings.Builder

	builder.WriteString(FormatMessage(record))
	builder.WriteString("\n\nCaptured at ")
	builder.WriteString(record.Timestamp.Local().Format(timestampFormat))

	return builder.String()
}

// Render writes the current state to w. With colorization enabled, the HTTP
// message is syntax-highlighted; highlighting failures silently fall back to
// plain text and are never an error.
func (d *Display) Render(w io.Writer) error {
	record := d.Snapshot()
	if record == nil {
		_, err := io.WriteString(w, Placeholder+"\n")
		return err
	}

	message := FormatMessage(record)

	if !d.colorize || highlightHTTP(w, message) != nil {
		if _, err := io.WriteString(w, message); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w,
		"\n\nCaptured at "+record.Timestamp.Local().Format(timestampFormat)+"\n")

	return err
}
