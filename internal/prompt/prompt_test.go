package prompt

import (
	"strings"
	"testing"

	"github.com/vinayprograms/planner/internal/plan"
)

func TestSystem_GroupsToolsByKind(t *testing.T) {
	out := System(SystemInput{
		Tools: []plan.ToolDescriptor{
			{ID: "prd.write-overview", Kind: plan.ToolKindSkill, Label: "Write overview",
				Description: "Drafts the overview.", InputArtifacts: []string{"context-summary"},
				OutputArtifact: "prd-section"},
			{ID: "prd.author", Kind: plan.ToolKindSubagent, Label: "Author",
				Description: "Writes the whole document.", OutputArtifact: "prd"},
		},
	})

	agentsAt := strings.Index(out, "Subagents")
	skillsAt := strings.Index(out, "Skills")
	if agentsAt == -1 || skillsAt == -1 {
		t.Fatal("expected both kind headings")
	}
	if agentsAt > skillsAt {
		t.Error("expected subagents listed before skills")
	}
	if !strings.Contains(out, "- prd.author (Author): Writes the whole document. (produces: prd)") {
		t.Errorf("unexpected subagent line in:\n%s", out)
	}
	if !strings.Contains(out, "(consumes: context-summary)") {
		t.Error("expected input artifacts rendered")
	}
	if !strings.Contains(out, "targetArtifact") {
		t.Error("expected output schema included")
	}
}

func TestSystem_OmitsEmptyGroups(t *testing.T) {
	out := System(SystemInput{
		Tools: []plan.ToolDescriptor{
			{ID: "a.b", Kind: plan.ToolKindSkill, Label: "B", Description: "d", OutputArtifact: "x"},
		},
	})
	if strings.Contains(out, "Subagents") {
		t.Error("expected empty subagent group omitted")
	}
}

func TestSystem_IncludesExamples(t *testing.T) {
	out := System(SystemInput{
		Examples: []WorkedExample{{Request: "write a prd", Plan: `{"steps": []}`}},
	})
	if !strings.Contains(out, "Example 1:") || !strings.Contains(out, "write a prd") {
		t.Error("expected worked example rendered")
	}
}

func TestUser_RendersSections(t *testing.T) {
	out := User(UserInput{
		Request: "Draft a PRD for the billing revamp",
		KnownArtifacts: map[string]string{
			"research-notes":  "Competitor pricing summary.",
			"context-summary": "Billing team goals.",
		},
		TargetArtifact: "prd",
	})

	if !strings.Contains(out, "Request:\nDraft a PRD") {
		t.Error("expected request section")
	}
	// Artifact kinds render sorted.
	first := strings.Index(out, "[context-summary]")
	second := strings.Index(out, "[research-notes]")
	if first == -1 || second == -1 || first > second {
		t.Errorf("expected sorted artifact sections in:\n%s", out)
	}
	if !strings.Contains(out, "Target artifact: prd") {
		t.Error("expected target hint")
	}
}

func TestUser_HistoryWindow(t *testing.T) {
	history := []Turn{
		{Role: "user", Content: "first"},
		{Role: "assistant", Content: "second"},
		{Role: "user", Content: "third"},
	}

	out := User(UserInput{Request: "r", History: history, HistoryWindow: 2})
	if strings.Contains(out, "first") {
		t.Error("expected oldest turn outside the window to be dropped")
	}
	if !strings.Contains(out, "second") || !strings.Contains(out, "third") {
		t.Error("expected the two most recent turns")
	}

	out = User(UserInput{Request: "r", History: history, HistoryWindow: 0})
	if strings.Contains(out, "Recent conversation") {
		t.Error("expected no history with a zero window")
	}
}

func TestRefinement_RendersPlanAndFeedback(t *testing.T) {
	out := Refinement(RefinementInput{
		TargetArtifact: "prd",
		Rationale:      "Analyze then draft.",
		Confidence:     0.85,
		Steps: []plan.PlanStepProposal{
			{ID: "step-1", ToolID: "prd.context-analysis", ToolType: "skill",
				Label: "Analyze", Rationale: "background"},
			{ID: "step-2", ToolID: "prd.write-overview", ToolType: "skill",
				Label: "Write", Rationale: "draft", DependsOn: []string{"step-1"}},
		},
		Feedback: "Add a security section",
		Request:  "Draft a PRD",
	})

	if !strings.Contains(out, "Confidence: 0.85") {
		t.Error("expected confidence rendered")
	}
	if !strings.Contains(out, "2. [step-2] Write (skill prd.write-overview)") {
		t.Errorf("expected numbered step line in:\n%s", out)
	}
	if !strings.Contains(out, "depends on: step-1") {
		t.Error("expected dependencies rendered")
	}
	if !strings.Contains(out, "User feedback:\nAdd a security section") {
		t.Error("expected feedback section")
	}
	if !strings.Contains(out, "complete replacement plan") {
		t.Error("expected replacement instruction footer")
	}
	if !strings.Contains(out, "Do not emit a diff") {
		t.Error("expected diff prohibition")
	}
}

func TestPromptsAreDeterministic(t *testing.T) {
	in := UserInput{
		Request: "r",
		KnownArtifacts: map[string]string{
			"a": "1", "b": "2", "c": "3", "d": "4",
		},
	}
	first := User(in)
	for i := 0; i < 10; i++ {
		if User(in) != first {
			t.Fatal("expected identical output for identical input")
		}
	}
}
