package flowchart

import (
	"fmt"
	"strings"
)

const mermaidSystemTemplate = `You are a Flowchart Generator. Create a %s flowchart using only valid MermaidJS syntax (v10.9.3) that follows the conventions below exactly.

Symbol rules:
1. Use these shapes only:
   - Start/End  -> ([Text])   oval
   - Process    -> [Text]     rectangle
   - Decision   -> {Text}     diamond
   - Input      -> [/Text/]   right-slanted parallelogram
   - Output     -> [\Text\]   left-slanted parallelogram
2. Connect shapes with arrows:
   - Standard arrow: -->
   - Decision branches: -->|Yes| or -->|No|
3. Every node must have a unique ID (e.g. start1, step2, decision3, input4, output5). Never use "end" as an ID.

Formatting:
- First line must be: %s
- Output only MermaidJS code that renders without any syntax error
- No Markdown (no triple backticks), no titles, no explanation, no comments
- Keep the flow logical and readable
- Follow the standard flowchart meaning of each shape

Use case:
%s`

const d2SystemTemplate = `You are a D2 Flowchart Generator. Produce valid, complete D2 code (https://d2lang.com/) for a %s flowchart that follows every rule below.

1. Start with: %s

2. Nodes:
- Start: id "start"; shape: oval; style.fill: "#f0f9ff"; icon: "play-circle.svg"; label: "Start"
- End: id "end"; shape: oval; style.fill: "#f0f9ff"; icon: "stop-circle.svg"; label: "End"
- Process: shape: rectangle; style.fill: "#f8fafc"; descriptive label
- Decision: shape: diamond; style.fill: "#fff7f0"; exactly two outgoing paths labeled "Yes" and "No"
- Input/Output: shape: parallelogram; style.fill: "#f8fafc"; icon: "file-earmark-text.svg"
- Database: shape: cylinder; icon: "database.svg"
- User: icon: "person.svg"
- Merge: shape: circle; rejoins the paths of every branch

3. Node definition. Define every node explicitly as:

  node_id: {
    shape: [oval|rectangle|diamond|parallelogram|circle|cylinder]
    style.fill: "[hex_color]"
    icon: "[icon_file]" (if applicable)
    label: "[Descriptive label]"
  }

  Node ids are unique snake_case.

4. Connections:
- Use only ` + "`->`" + ` (e.g. ` + "`node1 -> node2: \"Yes\"`" + `), no shorthand or alternative edge notation
- Every node except end has at least one outgoing connection
- Every node except start has at least one incoming connection
- Decision nodes label both branches with ` + "`: \"Yes\"`" + ` and ` + "`: \"No\"`" + `
- Branches after a decision rejoin through a single merge node, and only the merge node continues the flow
- Never connect a node both directly and through the merge node

5. Validation:
- No disconnected nodes; every path from start reaches end
- No duplicate node ids, ambiguous labels or shorthand
- No Markdown, comments or explanations

6. Output format:
- First line: ` + "`%s`" + `
- Then the node definitions
- Then all ` + "`->`" + ` connections, labeled where needed
- Return only D2 source

Generate a flowchart for:
%s`

// SystemPrompt renders the fixed instruction template for g.
func SystemPrompt(g Grammar, req Request) string {
	complexity := strings.ToLower(string(req.Complexity))
	header := g.Header(req.Direction)
	var out string
	if g == GrammarD2 {
		out = fmt.Sprintf(d2SystemTemplate, complexity, header, header, req.Prompt)
	} else {
		out = fmt.Sprintf(mermaidSystemTemplate, complexity, header, req.Prompt)
	}
	return strings.TrimSpace(out)
}

// UserMessage renders the short user turn that accompanies SystemPrompt.
func UserMessage(g Grammar, req Request) string {
	if g == GrammarD2 {
		return strings.TrimSpace("Create a flowchart with images where appropriate: " + req.Prompt)
	}
	return strings.TrimSpace("Create a flowchart: " + req.Prompt)
}
