package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/techseo/pkg/crosspost"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.Contains(t, buf.String(), "| |_ ___  ___| |__")
	// A buffer is not a terminal, so no escape sequences are emitted.
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestNewRenderer(t *testing.T) {
	render, err := NewRenderer(60)
	require.NoError(t, err)

	out, err := render("# Deploying\n\nSome *text*.")
	require.NoError(t, err)
	assert.Contains(t, out, "Deploying")
	assert.Contains(t, out, "text")
}

func TestPreview_ShortForm(t *testing.T) {
	var buf bytes.Buffer
	render := func(string) (string, error) {
		t.Fatal("short-form content is not rendered as markdown")
		return "", nil
	}

	require.NoError(t, Preview(&buf, crosspost.X, "Hello https://e.co/", 280, render))
	assert.Equal(t, "Hello https://e.co/\n\n19/280 characters\n", buf.String())
}

func TestPreview_LongForm(t *testing.T) {
	var buf bytes.Buffer
	render := func(md string) (string, error) { return strings.ToUpper(md), nil }

	require.NoError(t, Preview(&buf, crosspost.DevTo, "# post", 0, render))
	assert.Equal(t, "# POST", buf.String())
}

func TestUsage(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, "300/300 characters", Usage(&buf, 300, 300))
	assert.Equal(t, "3/0 characters", Usage(&buf, 3, 0))
}
