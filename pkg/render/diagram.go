package render

import (
	"fmt"
	"regexp"
	"strings"
)

// DiagramBlock is one fenced diagram awaiting layout, identified by its
// order of appearance in the message.
type DiagramBlock struct {
	Index    int
	Language string
	Source   string
}

// DiagramRenderer lays diagrams out as terminal text. Layout is called
// once per render pass with every diagram in the message; the returned
// slice aligns with blocks by position. An error fails the whole pass
// and every block displays its raw source instead.
type DiagramRenderer interface {
	Layout(blocks []DiagramBlock, width int) ([]string, error)
}

// EdgeListRenderer is the built-in engine. It understands mermaid
// flowcharts well enough to list their nodes and edges; anything else
// passes through as source text.
type EdgeListRenderer struct{}

var mermaidEdgeRe = regexp.MustCompile(`([\w.]+)(?:\[[^\]]*\]|\([^)]*\)|\{[^}]*\})?\s*(-->|---|==>|-\.->)\s*(?:\|[^|]*\|\s*)?([\w.]+)`)

func (EdgeListRenderer) Layout(blocks []DiagramBlock, width int) ([]string, error) {
	out := make([]string, len(blocks))
	for i, block := range blocks {
		if strings.TrimSpace(block.Source) == "" {
			return nil, fmt.Errorf("diagram %d is empty", block.Index)
		}
		out[i] = layoutFlowchart(block.Source)
	}
	return out, nil
}

// layoutFlowchart flattens "A --> B" edges into one arrow line each.
// Sources with no recognizable edges come back unchanged.
func layoutFlowchart(source string) string {
	header := ""
	var edges []string
	for _, line := range strings.Split(source, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		first := strings.ToLower(strings.Fields(line)[0])
		if first == "graph" || first == "flowchart" {
			header = line
			continue
		}
		for _, m := range mermaidEdgeRe.FindAllStringSubmatch(line, -1) {
			edges = append(edges, m[1]+" ─▶ "+m[3])
		}
	}
	if len(edges) == 0 {
		return source
	}
	if header != "" {
		edges = append([]string{header}, edges...)
	}
	return strings.Join(edges, "\n")
}
