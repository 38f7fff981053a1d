package tui_test

import (
	"bytes"
	"testing"

	"github.com/aretw0/acceptor/internal/presentation/tui"
	"github.com/aretw0/acceptor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf, "1.2.3")
	assert.Contains(t, buf.String(), "v1.2.3")
}

func TestNewRenderer(t *testing.T) {
	render := tui.NewRenderer()
	out, err := render("**accepted**")
	require.NoError(t, err)
	assert.Contains(t, out, "accepted")
}

func TestColorize(t *testing.T) {
	assert.Contains(t, tui.Colorize(domain.VerdictAccepted, "ACCEPTED"), "ACCEPTED")
	assert.Equal(t, "plain", tui.Colorize(domain.Verdict("other"), "plain"))
}
