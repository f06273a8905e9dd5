package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdown_Render(t *testing.T) {
	md := NewMarkdown()

	out, err := md.Render("Goes long when the close crosses **above** the SMA.\n\n- `period`\n")
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "<strong>above</strong>")
	assert.Contains(t, html, "<li><code>period</code></li>")
}

func TestMarkdown_Sanitizes(t *testing.T) {
	md := NewMarkdown()

	out, err := md.Render("hello <script>alert(1)</script> [x](javascript:alert(1))")
	require.NoError(t, err)

	html := string(out)
	assert.NotContains(t, html, "<script")
	assert.NotContains(t, html, "javascript:")
}

func TestMarkdown_Empty(t *testing.T) {
	out, err := NewMarkdown().Render("")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestHighlighter_Highlight(t *testing.T) {
	h := NewHighlighter(DefaultStyle)

	out, err := h.Highlight("# QuantHub Original Strategy: dual-ma\nimport backtrader as bt\n", "python")
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "class=")
	assert.Contains(t, html, "dual-ma")
	assert.Contains(t, html, "backtrader")
}

func TestHighlighter_EscapesSource(t *testing.T) {
	h := NewHighlighter(DefaultStyle)

	out, err := h.Highlight("# <script>alert(1)</script>\n", "python")
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<script>")
}

func TestHighlighter_UnknownLanguageAndStyle(t *testing.T) {
	h := NewHighlighter("no-such-style")

	out, err := h.Highlight("plain text", "no-such-language")
	require.NoError(t, err)
	assert.Contains(t, string(out), "plain text")
}

func TestHighlighter_CSS(t *testing.T) {
	css, err := NewHighlighter(DefaultStyle).CSS()
	require.NoError(t, err)
	assert.True(t, strings.Contains(css, ".chroma"), "expected chroma class selectors")
}
