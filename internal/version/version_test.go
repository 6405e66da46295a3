package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestShort tests the Short function.
func TestShort(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Version, Short())
}

// TestFull tests the Full function.
func TestFull(t *testing.T) {
	t.Parallel()

	expected := "version: " + Version + ", commit: " + Commit + ", built at: " + BuildTime
	assert.Equal(t, expected, Full())
}

// TestUserAgent tests the UserAgent function.
func TestUserAgent(t *testing.T) {
	t.Parallel()

	userAgent := UserAgent()
	assert.True(t, strings.HasPrefix(userAgent, "reqpeek/"))
	assert.Contains(t, userAgent, Version)
}

// TestVersionVariables tests that version variables are properly initialized.
func TestVersionVariables(t *testing.T) {
	t.Parallel()

	assert.NotEmpty(t, Version)
	assert.NotEmpty(t, Commit)
	assert.NotEmpty(t, BuildTime)
}
