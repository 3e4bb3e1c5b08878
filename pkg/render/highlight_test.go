package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHighlightGoEmitsColorAndKeepsText(t *testing.T) {
	h := NewHighlighter("monokai")
	source := "package main\n\nfunc main() {\n\tprintln(\"hi\")\n}"

	out := h.Highlight(source, "go")

	assert.Contains(t, out, "\x1b[", "highlighting should emit color sequences")
	plain := Sanitize(out)
	assert.Contains(t, plain, "package main")
	assert.Contains(t, plain, "func main()")
	assert.Contains(t, plain, `println("hi")`)
}

func TestHighlightUnknownLanguageKeepsText(t *testing.T) {
	h := NewHighlighter("monokai")
	source := "completely ordinary words"

	plain := Sanitize(h.Highlight(source, "nosuchlang"))

	assert.Contains(t, plain, "completely ordinary words")
}

func TestHighlightEmptyLanguageAnalysesContent(t *testing.T) {
	h := NewHighlighter("monokai")
	source := "def greet():\n    return 'hi'"

	plain := Sanitize(h.Highlight(source, ""))

	assert.Contains(t, plain, "def greet()")
}

func TestHighlightUnknownStyleStillWorks(t *testing.T) {
	h := NewHighlighter("no-such-style")

	plain := Sanitize(h.Highlight("x = 1", "python"))

	assert.Contains(t, plain, "x = 1")
}
