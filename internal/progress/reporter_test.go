package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewReporterCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := NewReporter("Generating flowcharts").(*CIReporter); !ok {
		t.Error("expected CIReporter when CI is set")
	}
}

func TestNewReporterTerminal(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	r, ok := NewReporter("Generating flowcharts").(*TerminalReporter)
	if !ok {
		t.Fatal("expected TerminalReporter outside CI")
	}
	if r.Description != "Generating flowcharts" {
		t.Errorf("description = %q", r.Description)
	}
	r.Start(2)
	r.Update(1, "loan.txt (mermaid)")
	r.Update(2, "loan.txt (d2)")
	r.Finish()
}

func TestCIReporterOutput(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{Out: &buf}
	r.Start(2)
	r.Update(1, "loan.txt (mermaid)")
	r.Finish()

	out := buf.String()
	for _, want := range []string{"Generating 2 flowcharts", "[1/2] loan.txt (mermaid)", "Flowchart generation complete"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSpinnerInCI(t *testing.T) {
	t.Setenv("CI", "true")
	s := StartSpinner("Generating flowchart...")
	s.Tick()
	s.Stop()
	if s.bar != nil {
		t.Error("spinner should not draw in CI")
	}
}
