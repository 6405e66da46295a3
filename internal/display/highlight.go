package display

import (
	"bytes"
	"io"

	"github.com/alecthomas/chroma/v2/quick"
)

const (
	// highlightLexer is the chroma lexer applied to rendered messages.
	highlightLexer = "http"
	// highlightFormatter is the chroma output formatter for terminals.
	highlightFormatter = "terminal256"
	// highlightStyle is the chroma color style.
	highlightStyle = "monokai"
)

// highlightHTTP writes an ANSI-highlighted rendition of the message to w.
// Highlighting happens into a buffer first so a failure leaves w untouched
// and the caller can fall back to plain text.
func highlightHTTP(w io.Writer, message string) error {
	var buffer bytes.Buffer

	if err := quick.Highlight(&buffer, message, highlightLexer, highlightFormatter, highlightStyle); err != nil {
		return err
	}

	_, err := io.Copy(w, &buffer)

	return err
}
