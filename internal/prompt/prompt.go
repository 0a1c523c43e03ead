// Package prompt renders the planning prompts. Every function here is a
// pure function of its inputs: no state, no model calls, no parsing.
// Missing optional inputs render as omitted sections.
package prompt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vinayprograms/planner/internal/plan"
)

const planningRules = `Planning rules:
- Use ONLY tools listed in the catalog above. Never invent tool ids.
- Every step must declare its dependencies via dependsOn. A step with no
  dependencies starts from the raw request.
- Prefer a composite subagent over a chain of atomic skills when one covers
  the target artifact.
- Order steps so each step's inputs are produced by its dependencies.
- Keep plans minimal: do not add steps the request does not need.
- The dependency graph must be acyclic. Do not create circular dependencies.
- If the request is too ambiguous to plan, return zero steps and ask
  clarification questions instead.
- Set confidence between 0 and 1 to reflect how well the plan fits the
  request.`

const outputSchema = `Respond with ONLY a JSON object (no markdown, no prose) of this shape:
{
  "targetArtifact": "<artifact kind the plan produces>",
  "overallRationale": "<why this plan satisfies the request>",
  "confidence": 0.0,
  "warnings": ["<optional caveats>"],
  "clarifications": ["<optional questions for the user>"],
  "steps": [
    {
      "id": "step-1",
      "toolId": "<tool id from the catalog>",
      "toolType": "skill|subagent",
      "label": "<short human-readable step name>",
      "rationale": "<why this step is needed>",
      "dependsOn": ["<ids of prerequisite steps>"],
      "outputArtifact": "<artifact kind this step produces>"
    }
  ]
}`

const userPromptFooter = `Produce the plan now. Respond with only the JSON object described in the
system prompt.`

const refinementFooter = `The feedback above is ADDITIONAL CONTEXT about what the user wants; it is
not a literal edit instruction. Re-plan the request from scratch taking the
feedback into account, and emit a complete replacement plan in the same JSON
format. Do not emit a diff.`

// WorkedExample is one request/plan pair embedded in the system prompt.
type WorkedExample struct {
	Request string
	Plan    string
}

// Turn is one prior conversation turn.
type Turn struct {
	Role    string
	Content string
}

// SystemInput parameterizes the system prompt.
type SystemInput struct {
	Tools    []plan.ToolDescriptor
	Examples []WorkedExample
}

// System renders the system prompt: the tool catalog grouped by kind, the
// planning ruleset, the output schema, and any worked examples.
func System(in SystemInput) string {
	var b strings.Builder

	b.WriteString("You are a planning engine. Given a user request and a catalog of\n")
	b.WriteString("available tools, you produce an ordered, dependency-annotated plan of\n")
	b.WriteString("tool invocations that satisfies the request.\n\n")

	writeToolGroup(&b, "Subagents (composite, produce one artifact end-to-end)", in.Tools, plan.ToolKindSubagent)
	writeToolGroup(&b, "Skills (atomic, single operation)", in.Tools, plan.ToolKindSkill)

	b.WriteString(planningRules)
	b.WriteString("\n\n")
	b.WriteString(outputSchema)

	for i, ex := range in.Examples {
		fmt.Fprintf(&b, "\n\nExample %d:\nRequest: %s\nPlan:\n%s", i+1, ex.Request, ex.Plan)
	}

	return b.String()
}

// writeToolGroup renders one kind's catalog section. An empty group is
// omitted entirely.
func writeToolGroup(b *strings.Builder, heading string, tools []plan.ToolDescriptor, kind plan.ToolKind) {
	var group []plan.ToolDescriptor
	for _, t := range tools {
		if t.Kind == kind {
			group = append(group, t)
		}
	}
	if len(group) == 0 {
		return
	}

	b.WriteString(heading)
	b.WriteString(":\n")
	for _, t := range group {
		fmt.Fprintf(b, "- %s (%s): %s", t.ID, t.Label, t.Description)
		if len(t.InputArtifacts) > 0 {
			fmt.Fprintf(b, " (consumes: %s)", strings.Join(t.InputArtifacts, ", "))
		}
		fmt.Fprintf(b, " (produces: %s)\n", t.OutputArtifact)
	}
	b.WriteString("\n")
}

// UserInput parameterizes the per-request user prompt.
type UserInput struct {
	Request        string
	KnownArtifacts map[string]string
	History        []Turn
	HistoryWindow  int
	TargetArtifact string
}

// User renders the user prompt: the request, known artifacts keyed by kind,
// a bounded window of the most recent conversation turns, an optional
// target hint, and the instruction footer.
func User(in UserInput) string {
	var b strings.Builder

	b.WriteString("Request:\n")
	b.WriteString(in.Request)
	b.WriteString("\n")

	if len(in.KnownArtifacts) > 0 {
		b.WriteString("\nKnown artifacts:\n")
		kinds := make([]string, 0, len(in.KnownArtifacts))
		for kind := range in.KnownArtifacts {
			kinds = append(kinds, kind)
		}
		sort.Strings(kinds)
		for _, kind := range kinds {
			fmt.Fprintf(&b, "[%s]\n%s\n", kind, in.KnownArtifacts[kind])
		}
	}

	if turns := windowTurns(in.History, in.HistoryWindow); len(turns) > 0 {
		b.WriteString("\nRecent conversation:\n")
		for _, t := range turns {
			fmt.Fprintf(&b, "%s: %s\n", t.Role, t.Content)
		}
	}

	if in.TargetArtifact != "" {
		fmt.Fprintf(&b, "\nTarget artifact: %s\n", in.TargetArtifact)
	}

	b.WriteString("\n")
	b.WriteString(userPromptFooter)
	return b.String()
}

// windowTurns returns the most recent turns bounded by window. A window of
// zero or less means no history is rendered.
func windowTurns(history []Turn, window int) []Turn {
	if window <= 0 || len(history) == 0 {
		return nil
	}
	if len(history) > window {
		return history[len(history)-window:]
	}
	return history
}

// RefinementInput parameterizes the refinement prompt.
type RefinementInput struct {
	TargetArtifact string
	Rationale      string
	Confidence     float64
	Steps          []plan.PlanStepProposal
	Feedback       string
	Request        string
}

// Refinement renders the refinement prompt: a serialized snapshot of the
// current plan, the user's feedback, the original request, and the footer
// emphasizing that feedback is context rather than a diff instruction.
func Refinement(in RefinementInput) string {
	var b strings.Builder

	b.WriteString("Current plan:\n")
	fmt.Fprintf(&b, "Target artifact: %s\n", in.TargetArtifact)
	fmt.Fprintf(&b, "Rationale: %s\n", in.Rationale)
	fmt.Fprintf(&b, "Confidence: %.2f\n", in.Confidence)
	b.WriteString("Steps:\n")
	for i, s := range in.Steps {
		fmt.Fprintf(&b, "%d. [%s] %s (%s %s)\n", i+1, s.ID, s.Label, s.ToolType, s.ToolID)
		fmt.Fprintf(&b, "   rationale: %s\n", s.Rationale)
		if len(s.DependsOn) > 0 {
			fmt.Fprintf(&b, "   depends on: %s\n", strings.Join(s.DependsOn, ", "))
		}
	}

	fmt.Fprintf(&b, "\nUser feedback:\n%s\n", in.Feedback)
	fmt.Fprintf(&b, "\nOriginal request:\n%s\n", in.Request)

	b.WriteString("\n")
	b.WriteString(refinementFooter)
	return b.String()
}
