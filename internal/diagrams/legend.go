package diagrams

// LegendRow is one line of the symbol guide.
type LegendRow struct {
	Symbol string `json:"symbol"`
	Shape  string `json:"shape"`
	Syntax string `json:"mermaid_syntax"`
}

// Legend returns the symbol guide shown next to the generator.
func Legend() []LegendRow {
	return []LegendRow{
		{Symbol: Terminal.String(), Shape: "Oval/Rounded", Syntax: "([Start]) or ([End])"},
		{Symbol: Process.String(), Shape: "Rectangle", Syntax: "[Process step]"},
		{Symbol: Decision.String(), Shape: "Diamond", Syntax: "{Decision question?}"},
		{Symbol: Input.String(), Shape: "Parallelogram (slant right)", Syntax: "[/Input information/]"},
		{Symbol: Output.String(), Shape: "Parallelogram (slant left)", Syntax: `[\Output result\]`},
		{Symbol: "Connection", Shape: "Arrow", Syntax: "-->"},
		{Symbol: "Connection with Label", Shape: "Arrow with text", Syntax: "-->|Yes/No|"},
	}
}

// LegendTips is Markdown with general Mermaid authoring tips.
const LegendTips = `- **Node IDs** must be unique (e.g. ` + "`id1`, `process2`" + `); avoid ` + "`end`" + `, it is a keyword
- **Direction options**: TB (top-bottom), LR (left-right), RL, BT
- **Subgraphs**: use ` + "`subgraph title ... end`" + ` to group nodes
- **Styling**: add style with ` + "`style nodeId fill:#f9f,stroke:#333`" + `
- **Classes**: define classes with ` + "`classDef className fill:#f9f,stroke:#333`" + `
- **Comments**: use ` + "`%% This is a comment`" + ` for notes
`

// SampleLoanFlow is the default chart offered in the paste editor.
func SampleLoanFlow() Flowchart {
	return Flowchart{
		Nodes: []Node{
			{ID: "start", Label: "Start", Shape: Terminal, Icon: "play-circle.svg"},
			{ID: "process1", Label: "Receive Application", Shape: Process},
			{ID: "input1", Label: "Review Documents", Shape: Input, Icon: "file-earmark-text.svg"},
			{ID: "decision1", Label: "Credit Score > 700?", Shape: Decision},
			{ID: "process2", Label: "Approve Loan", Shape: Process},
			{ID: "process3", Label: "Additional Review", Shape: Process},
			{ID: "finish", Label: "End", Shape: Terminal, Icon: "stop-circle.svg"},
		},
		Edges: []Edge{
			{From: "start", To: "process1"},
			{From: "process1", To: "input1"},
			{From: "input1", To: "decision1"},
			{From: "decision1", To: "process2", Label: "Yes"},
			{From: "decision1", To: "process3", Label: "No"},
			{From: "process2", To: "finish"},
			{From: "process3", To: "finish"},
		},
	}
}

// SampleLegendFlow uses every shape once.
func SampleLegendFlow() Flowchart {
	return Flowchart{
		Nodes: []Node{
			{ID: "start", Label: "Start", Shape: Terminal},
			{ID: "process1", Label: "Process", Shape: Process},
			{ID: "decision", Label: "Decision?", Shape: Decision},
			{ID: "input", Label: "Input", Shape: Input},
			{ID: "output", Label: "Output", Shape: Output},
			{ID: "finish", Label: "End", Shape: Terminal},
		},
		Edges: []Edge{
			{From: "start", To: "process1"},
			{From: "process1", To: "decision"},
			{From: "decision", To: "input", Label: "Yes"},
			{From: "decision", To: "output", Label: "No"},
			{From: "input", To: "finish"},
			{From: "output", To: "finish"},
		},
	}
}

// SampleInputFlow is the annotated example shown beside the legend table.
func SampleInputFlow() Flowchart {
	return Flowchart{
		Nodes: []Node{
			{ID: "start", Label: "Start", Shape: Terminal},
			{ID: "input1", Label: "Enter User Data", Shape: Input},
			{ID: "process1", Label: "Validate Data", Shape: Process},
			{ID: "decision1", Label: "Is Valid?", Shape: Decision},
			{ID: "output1", Label: "Show Success", Shape: Output},
			{ID: "finish", Label: "End", Shape: Terminal},
		},
		Edges: []Edge{
			{From: "start", To: "input1"},
			{From: "input1", To: "process1"},
			{From: "process1", To: "decision1"},
			{From: "decision1", To: "output1", Label: "Yes"},
			{From: "decision1", To: "input1", Label: "No"},
			{From: "output1", To: "finish"},
		},
	}
}
