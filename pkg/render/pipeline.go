// Package render turns raw message content into styled terminal text.
//
// Content moves through fixed stages: control-sequence sanitization,
// fence segmentation, math typesetting, markdown styling for prose,
// syntax highlighting for code, and diagram layout. Stages are
// isolated; when one fails its fragment degrades to plainer text and
// the pass continues. Rendering the same content twice produces the
// same result, so callers may re-render freely as stream updates
// arrive.
package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/banterhq/banter/pkg/logger"
)

// Context carries the engines and switches every render pass reads. It
// is built once at startup and shared; all engines are safe for
// concurrent use.
type Context struct {
	Markdown  *MarkdownRenderer
	Highlight *Highlighter
	Diagrams  DiagramRenderer
	Math      *MathCache

	EnableMath     bool
	EnableDiagrams bool
}

// CodeBlock preserves a fenced block's source exactly as it appeared on
// the wire, before any display transform touched it. Index is the
// block's order of appearance within its message, counting diagrams.
type CodeBlock struct {
	Index    int
	Language string
	Source   string
}

// Result is one message rendered for display plus the copyable blocks
// found along the way.
type Result struct {
	Text   string
	Blocks []CodeBlock
}

var ansiRe = regexp.MustCompile(`\x1b(\[[0-9;?]*[a-zA-Z]|\][^\x07\x1b]*(\x07|\x1b\\))`)

// Sanitize strips ANSI escape sequences and control characters from
// model output so it cannot corrupt the terminal. Newlines and tabs
// survive.
func Sanitize(s string) string {
	if strings.IndexByte(s, '\x1b') >= 0 {
		s = ansiRe.ReplaceAllString(s, "")
	}
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}

// Render runs the full stage chain over one message's content.
func Render(ctx *Context, content string, width int) Result {
	var result Result

	content = Sanitize(content)
	if strings.TrimSpace(content) == "" {
		return result
	}

	type slot struct {
		text    string
		diagram int // position in diagrams, -1 for finished text
	}
	var slots []slot
	var diagrams []DiagramBlock

	for _, seg := range SplitSegments(content) {
		switch seg.Kind {
		case SegmentProse:
			text := seg.Text
			if strings.TrimSpace(text) == "" {
				continue
			}
			if ctx.EnableMath && ctx.Math != nil {
				text = ctx.Math.Apply(text)
			}
			slots = append(slots, slot{text: ctx.Markdown.Render(text, width), diagram: -1})

		case SegmentCode:
			index := len(result.Blocks)
			result.Blocks = append(result.Blocks, CodeBlock{
				Index:    index,
				Language: seg.Language,
				Source:   seg.Text,
			})
			lines := strings.Split(ctx.Highlight.Highlight(seg.Text, seg.Language), "\n")
			slots = append(slots, slot{
				text:    box(lines, blockLabel(seg.Language), copyHint(index), width),
				diagram: -1,
			})

		case SegmentDiagram:
			index := len(result.Blocks)
			result.Blocks = append(result.Blocks, CodeBlock{
				Index:    index,
				Language: seg.Language,
				Source:   seg.Text,
			})
			if !ctx.EnableDiagrams || ctx.Diagrams == nil {
				lines := strings.Split(seg.Text, "\n")
				slots = append(slots, slot{
					text:    box(lines, blockLabel(seg.Language), copyHint(index), width),
					diagram: -1,
				})
				continue
			}
			slots = append(slots, slot{diagram: len(diagrams)})
			diagrams = append(diagrams, DiagramBlock{
				Index:    index,
				Language: seg.Language,
				Source:   seg.Text,
			})
		}
	}

	// Diagram layout runs once per pass over every diagram collected
	// above. A failed layout shows raw sources; the boxes still appear.
	if len(diagrams) > 0 {
		laid, err := ctx.Diagrams.Layout(diagrams, width)
		if err != nil {
			logger.Debug("Diagram layout failed, falling back to source: %v", err)
		}
		for i := range slots {
			if slots[i].diagram < 0 {
				continue
			}
			block := diagrams[slots[i].diagram]
			body := block.Source
			if err == nil && slots[i].diagram < len(laid) && laid[slots[i].diagram] != "" {
				body = laid[slots[i].diagram]
			}
			slots[i] = slot{
				text:    box(strings.Split(body, "\n"), blockLabel(block.Language), copyHint(block.Index), width),
				diagram: -1,
			}
		}
	}

	parts := make([]string, 0, len(slots))
	for _, s := range slots {
		parts = append(parts, s.text)
	}
	result.Text = strings.Join(parts, "\n")
	return result
}

func blockLabel(language string) string {
	if language == "" {
		return "code"
	}
	return language
}

func copyHint(index int) string {
	if index > 8 {
		return ""
	}
	return fmt.Sprintf("copy: %d", index+1)
}
