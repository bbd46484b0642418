package diagrams

import (
	"fmt"
	"strings"
)

// Node is one symbol in a flowchart.
type Node struct {
	ID    string
	Label string
	Shape Shape
	// Icon is an optional D2 icon reference. Mermaid ignores it.
	Icon string
}

// Edge connects two nodes, optionally labelled (e.g. "Yes"/"No").
type Edge struct {
	From  string
	To    string
	Label string
}

// Flowchart is a grammar-neutral flowchart. Horizontal selects left-to-right
// layout; the default is top-to-bottom.
type Flowchart struct {
	Horizontal bool
	Nodes      []Node
	Edges      []Edge
}

// Mermaid renders f as Mermaid flowchart source. Every node is declared
// with its shape on first use; later references use the bare id.
func (f Flowchart) Mermaid() string {
	var b strings.Builder
	if f.Horizontal {
		b.WriteString("flowchart LR\n")
	} else {
		b.WriteString("flowchart TB\n")
	}

	declared := make(map[string]bool, len(f.Nodes))
	byID := make(map[string]Node, len(f.Nodes))
	for _, n := range f.Nodes {
		byID[n.ID] = n
	}
	ref := func(id string) string {
		n, ok := byID[id]
		if !ok || declared[id] {
			return sanitizeID(id)
		}
		declared[id] = true
		l, r := n.Shape.mermaidBrackets()
		return sanitizeID(n.ID) + l + escapeMermaid(n.Label) + r
	}

	for _, e := range f.Edges {
		from := ref(e.From)
		to := ref(e.To)
		if e.Label != "" {
			fmt.Fprintf(&b, "%s -->|%s| %s\n", from, escapeMermaid(e.Label), to)
		} else {
			fmt.Fprintf(&b, "%s --> %s\n", from, to)
		}
	}
	for _, n := range f.Nodes {
		if !declared[n.ID] {
			b.WriteString(ref(n.ID) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// D2 renders f as D2 source with one explicit block per node followed by
// the connections.
func (f Flowchart) D2() string {
	var b strings.Builder
	if f.Horizontal {
		b.WriteString("direction: right\n")
	} else {
		b.WriteString("direction: down\n")
	}

	for _, n := range f.Nodes {
		shape, fill := n.Shape.d2Style()
		fmt.Fprintf(&b, "%s: {\n", sanitizeID(n.ID))
		fmt.Fprintf(&b, "  shape: %s\n", shape)
		fmt.Fprintf(&b, "  style.fill: %q\n", fill)
		if n.Icon != "" {
			fmt.Fprintf(&b, "  icon: %q\n", n.Icon)
		}
		fmt.Fprintf(&b, "  label: %q\n", n.Label)
		b.WriteString("}\n")
	}
	for _, e := range f.Edges {
		if e.Label != "" {
			fmt.Fprintf(&b, "%s -> %s: %q\n", sanitizeID(e.From), sanitizeID(e.To), e.Label)
		} else {
			fmt.Fprintf(&b, "%s -> %s\n", sanitizeID(e.From), sanitizeID(e.To))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// sanitizeID converts a string into a node id safe in both grammars.
// "end" is a Mermaid keyword and is renamed.
func sanitizeID(s string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		".", "_",
		"-", "_",
		" ", "_",
		"(", "_",
		")", "_",
		"[", "_",
		"]", "_",
		"{", "_",
		"}", "_",
		":", "_",
	)
	id := replacer.Replace(s)
	if strings.EqualFold(id, "end") {
		return id + "_node"
	}
	return id
}

// escapeMermaid escapes characters that have special meaning in mermaid labels.
func escapeMermaid(s string) string {
	s = strings.ReplaceAll(s, "\"", "#quot;")
	s = strings.ReplaceAll(s, "(", "#lpar;")
	s = strings.ReplaceAll(s, ")", "#rpar;")
	s = strings.ReplaceAll(s, "[", "#lsqb;")
	s = strings.ReplaceAll(s, "]", "#rsqb;")
	s = strings.ReplaceAll(s, "{", "#lbrace;")
	s = strings.ReplaceAll(s, "}", "#rbrace;")
	s = strings.ReplaceAll(s, "|", "#124;")
	s = strings.ReplaceAll(s, "<", "#lt;")
	s = strings.ReplaceAll(s, ">", "#gt;")
	return s
}
