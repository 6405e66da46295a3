package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reqpeek/reqpeek/internal/capture"
)

// TestDisplay_EmptyRendersPlaceholder tests rendering before any capture.
func TestDisplay_EmptyRendersPlaceholder(t *testing.T) {
	t.Parallel()

	d := NewDisplay(false)

	assert.Equal(t, Placeholder, d.RenderString())

	var buffer bytes.Buffer
	require.NoError(t, d.Render(&buffer))
	assert.Equal(t, Placeholder+"\n", buffer.String())
}

// TestDisplay_OnRequestOverwritesSlot tests that every delivery replaces
// the previous record unconditionally.
func TestDisplay_OnRequestOverwritesSlot(t *testing.T) {
	t.Parallel()

	d := NewDisplay(false)

	first := capture.NewRecord("GET", "/first")
	second := capture.NewRecord("POST", "/second")

	d.OnRequest(first)
	assert.Equal(t, first, d.Snapshot())

	d.OnRequest(second)
	assert.Equal(t, second, d.Snapshot())

	// A nil delivery never clears the slot.
	d.OnRequest(nil)
	assert.Equal(t, second, d.Snapshot())
}

// TestDisplay_Reset tests clearing the slot.
func TestDisplay_Reset(t *testing.T) {
	t.Parallel()

	d := NewDisplay(false)
	d.OnRequest(capture.NewRecord("GET", "/x"))

	d.Reset()

	assert.Nil(t, d.Snapshot())
	assert.Equal(t, Placeholder, d.RenderString())
}

// TestDisplay_RenderStringContents tests the rendered text for a captured
// record: message first, local timestamp beneath it.
func TestDisplay_RenderStringContents(t *testing.T) {
	t.Parallel()

	record := capture.NewRecord("POST", "/api")
	record.SetHeader("X-Test", "1")
	record.Body = "hello"

	d := NewDisplay(false)
	d.OnRequest(record)

	rendered := d.RenderString()

	assert.True(t, strings.HasPrefix(rendered, "POST /api HTTP/1.1\nX-Test: 1\n\nhello"))
	assert.Contains(t, rendered, "Captured at ")
	assert.Contains(t, rendered, record.Timestamp.Local().Format("2006-01-02 15:04:05"))
}

// TestDisplay_RenderIdempotent tests that rendering twice with no state
// change produces byte-identical output.
func TestDisplay_RenderIdempotent(t *testing.T) {
	t.Parallel()

	record := capture.NewRecord("GET", "/idempotent")
	record.SetHeader("A", "1")

	d := NewDisplay(false)
	d.OnRequest(record)

	first := d.RenderString()
	second := d.RenderString()
	assert.Equal(t, first, second)

	var firstBuffer, secondBuffer bytes.Buffer
	require.NoError(t, d.Render(&firstBuffer))
	require.NoError(t, d.Render(&secondBuffer))
	assert.Equal(t, firstBuffer.Bytes(), secondBuffer.Bytes())
}

// TestDisplay_RenderColorized tests that highlighting never loses the
// message content and that the timestamp stays plain.
func TestDisplay_RenderColorized(t *testing.T) {
	t.Parallel()

	record := capture.NewRecord("GET", "/colored")

	d := NewDisplay(true)
	d.OnRequest(record)

	var buffer bytes.Buffer
	require.NoError(t, d.Render(&buffer))

	assert.Contains(t, buffer.String(), "/colored")
	assert.Contains(t, buffer.String(), "Captured at ")
}
