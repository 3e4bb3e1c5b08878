package render

import "strings"

// SegmentKind discriminates scanner output.
type SegmentKind int

const (
	SegmentProse SegmentKind = iota
	SegmentCode
	SegmentDiagram
)

// Segment is one run of message content: prose between fences, or the
// body of a fenced block.
type Segment struct {
	Kind     SegmentKind
	Text     string
	Language string
}

// diagramLanguages are fence tags owned by the diagram engine. Blocks
// tagged with one of these never reach the syntax highlighter.
var diagramLanguages = map[string]bool{
	"mermaid": true,
}

func IsDiagramLanguage(lang string) bool {
	return diagramLanguages[strings.ToLower(lang)]
}

// SplitSegments scans content line by line, honoring ``` fences. An
// unterminated fence at end of content is tolerated: its body so far is
// returned as a normal block, which the next update of the same message
// extends. A fence opened but still empty yields nothing this pass.
func SplitSegments(content string) []Segment {
	var segs []Segment
	var proseLines, blockLines []string
	inBlock := false
	blockLang := ""

	flushProse := func() {
		if len(proseLines) > 0 {
			segs = append(segs, Segment{Kind: SegmentProse, Text: strings.Join(proseLines, "\n")})
			proseLines = nil
		}
	}
	blockKind := func(lang string) SegmentKind {
		if IsDiagramLanguage(lang) {
			return SegmentDiagram
		}
		return SegmentCode
	}

	for _, line := range strings.Split(content, "\n") {
		switch {
		case !inBlock && strings.HasPrefix(line, "```"):
			flushProse()
			inBlock = true
			blockLang = fenceLanguage(line)
			blockLines = nil
		case inBlock && strings.TrimSpace(line) == "```":
			segs = append(segs, Segment{
				Kind:     blockKind(blockLang),
				Text:     strings.Join(blockLines, "\n"),
				Language: blockLang,
			})
			inBlock = false
			blockLines = nil
			blockLang = ""
		case inBlock:
			blockLines = append(blockLines, line)
		default:
			proseLines = append(proseLines, line)
		}
	}

	if inBlock && len(blockLines) > 0 {
		segs = append(segs, Segment{
			Kind:     blockKind(blockLang),
			Text:     strings.Join(blockLines, "\n"),
			Language: blockLang,
		})
	} else {
		flushProse()
	}

	return segs
}

// fenceLanguage extracts the language tag from a fence opener, ignoring
// any trailing info string ("```go title=x" resolves to "go").
func fenceLanguage(line string) string {
	info := strings.TrimSpace(strings.TrimPrefix(line, "```"))
	if info == "" {
		return ""
	}
	return strings.ToLower(strings.Fields(info)[0])
}
