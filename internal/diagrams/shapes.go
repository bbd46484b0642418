// Package diagrams models flowcharts in the five-shape vocabulary shared by
// the generator prompts and renders them as Mermaid or D2 source.
package diagrams

// Shape is a flowchart symbol.
type Shape int

const (
	Terminal Shape = iota // start or end, oval
	Process               // rectangle
	Decision              // diamond
	Input                 // right-slanted parallelogram
	Output                // left-slanted parallelogram
)

func (s Shape) String() string {
	switch s {
	case Terminal:
		return "Start/End"
	case Process:
		return "Process"
	case Decision:
		return "Decision"
	case Input:
		return "Input"
	case Output:
		return "Output"
	}
	return "Unknown"
}

// mermaidBrackets returns the opening and closing delimiters for s.
func (s Shape) mermaidBrackets() (string, string) {
	switch s {
	case Terminal:
		return "([", "])"
	case Decision:
		return "{", "}"
	case Input:
		return "[/", "/]"
	case Output:
		return `[\`, `\]`
	}
	return "[", "]"
}

// d2Style returns the D2 shape keyword and fill colour for s.
func (s Shape) d2Style() (shape, fill string) {
	switch s {
	case Terminal:
		return "oval", "#f0f9ff"
	case Decision:
		return "diamond", "#fff7f0"
	case Input, Output:
		return "parallelogram", "#f8fafc"
	}
	return "rectangle", "#f8fafc"
}
