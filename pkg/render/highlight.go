package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/banterhq/banter/pkg/logger"
)

// Highlighter colors code for terminal display using chroma.
type Highlighter struct {
	formatter chroma.Formatter
	style     *chroma.Style
}

// NewHighlighter resolves the formatter and color style once. Unknown
// style names fall back to chroma's default.
func NewHighlighter(styleName string) *Highlighter {
	formatter := formatters.Get("terminal16m")
	if formatter == nil {
		formatter = formatters.Fallback
	}
	return &Highlighter{
		formatter: formatter,
		style:     styles.Get(styleName),
	}
}

// Highlight returns source with syntax coloring applied. The language
// tag resolves against the lexer registry, then content analysis, then
// plain text. Any tokenizer or formatter failure returns the source
// unchanged; a code block always displays.
func (h *Highlighter) Highlight(source, language string) string {
	var lexer chroma.Lexer
	if language != "" {
		lexer = lexers.Get(language)
	}
	if lexer == nil {
		lexer = lexers.Analyse(source)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		logger.Debug("Tokenise failed for language %q: %v", language, err)
		return source
	}

	var b strings.Builder
	if err := h.formatter.Format(&b, h.style, iterator); err != nil {
		logger.Debug("Highlight formatting failed: %v", err)
		return source
	}
	return b.String()
}
