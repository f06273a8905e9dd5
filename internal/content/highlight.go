package content

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/newthinker/quanthub/internal/core"
)

// DefaultStyle is the chroma style used for read-only source views.
const DefaultStyle = "monokai"

// Highlighter renders source code as HTML using CSS classes.
type Highlighter struct {
	style     *chroma.Style
	formatter *html.Formatter
}

// NewHighlighter creates a highlighter for the named chroma style, falling
// back to chroma's default style when the name is unknown.
func NewHighlighter(styleName string) *Highlighter {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	return &Highlighter{
		style: style,
		formatter: html.New(
			html.WithClasses(true),
			html.WithLineNumbers(true),
			html.TabWidth(4),
		),
	}
}

// Highlight renders code in the given language.
func (h *Highlighter) Highlight(code, language string) (template.HTML, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", core.WrapError(core.ErrRenderFailed, fmt.Errorf("tokenising %s: %w", language, err))
	}

	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return "", core.WrapError(core.ErrRenderFailed, err)
	}
	// chroma escapes token text, the markup is its own
	return template.HTML(buf.String()), nil
}

// CSS returns the stylesheet matching the highlighter's classes.
func (h *Highlighter) CSS() (string, error) {
	var buf bytes.Buffer
	if err := h.formatter.WriteCSS(&buf, h.style); err != nil {
		return "", fmt.Errorf("writing highlight css: %w", err)
	}
	return buf.String(), nil
}
