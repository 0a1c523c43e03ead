// Translation of a validated provisional plan into the executable graph and
// the display proposals.
package resolver

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vinayprograms/planner/internal/plan"
)

// provenance tags every graph this resolver produces.
const provenance = "plan-resolver"

// Document-lifecycle skills with dedicated task kinds. Any other skill id
// maps through the write-section convention or the generic fallback.
const (
	skillClarificationCheck = "prd.clarification-check"
	skillContextAnalysis    = "prd.context-analysis"
	skillAssembleDocument   = "prd.assemble-document"
	writeSectionPrefix      = "prd.write-"
)

// Translate builds the executable graph and the proposal list from a plan
// that passed validation. Calling it with an invalid result returns an
// InvalidPlanError carrying the full error list; the orchestration loop is
// responsible for validate-then-translate ordering. The entry node is the
// first step in original order with no dependencies; a validated non-empty
// plan without one is structurally corrupt and is rejected rather than
// silently rooted at the first step.
func (r *Resolver) Translate(p *plan.RawPlanOutput, tools []plan.ToolDescriptor, v Validation, createdAt time.Time) (*plan.PlanGraph, []plan.PlanStepProposal, error) {
	if !v.Valid {
		return nil, nil, &InvalidPlanError{Errors: v.Errors}
	}

	byID := make(map[string]plan.ToolDescriptor, len(tools))
	for _, t := range tools {
		byID[t.ID] = t
	}

	nodes := make(map[string]plan.PlanNode, len(p.Steps))
	proposals := make([]plan.PlanStepProposal, 0, len(p.Steps))
	entryID := ""

	for _, step := range p.Steps {
		if entryID == "" && len(step.DependsOn) == 0 {
			entryID = step.ID
		}

		tool, known := byID[step.ToolID]
		artifact := step.OutputArtifact
		if artifact == "" && known {
			artifact = tool.OutputArtifact
		}

		nodes[step.ID] = plan.PlanNode{
			ID:        step.ID,
			Label:     step.Label,
			Task:      taskForStep(step, tool, known),
			Status:    plan.StatusPending,
			DependsOn: append([]string{}, step.DependsOn...),
			Metadata: plan.NodeMetadata{
				Rationale:    step.Rationale,
				ToolID:       step.ToolID,
				ToolKind:     plan.ToolKind(step.ToolType),
				ArtifactKind: artifact,
			},
		}

		proposals = append(proposals, plan.PlanStepProposal{
			ID:             step.ID,
			ToolID:         step.ToolID,
			ToolType:       step.ToolType,
			Label:          step.Label,
			Rationale:      step.Rationale,
			DependsOn:      append([]string{}, step.DependsOn...),
			OutputArtifact: step.OutputArtifact,
		})
	}

	if entryID == "" && len(p.Steps) > 0 {
		return nil, nil, &InvalidPlanError{
			Errors: []string{"no step without dependencies to use as entry point"},
		}
	}

	graph := &plan.PlanGraph{
		ID:           uuid.New().String(),
		ArtifactKind: p.TargetArtifact,
		EntryID:      entryID,
		CreatedAt:    createdAt,
		Version:      plan.GraphVersion,
		Nodes:        nodes,
		Metadata: plan.GraphMetadata{
			Provenance:     provenance,
			Confidence:     p.Confidence,
			Rationale:      p.OverallRationale,
			Warnings:       mergeWarnings(p.Warnings, v.Warnings),
			Clarifications: p.Clarifications,
		},
	}

	r.logger.Info("translated plan", map[string]interface{}{
		"plan":   graph.ID,
		"target": graph.ArtifactKind,
		"nodes":  len(graph.Nodes),
		"entry":  graph.EntryID,
	})
	return graph, proposals, nil
}

// taskForStep resolves the closed task variant for one step. Subagent steps
// always carry a subagent task; skill steps map through the fixed
// document-lifecycle set, then the write-section convention, then the
// generic namespace fallback.
func taskForStep(step plan.RawStep, tool plan.ToolDescriptor, known bool) plan.TaskSpec {
	if step.ToolType == string(plan.ToolKindSubagent) {
		return plan.TaskSpec{Kind: plan.TaskSubagent, AgentID: step.ToolID}
	}

	switch step.ToolID {
	case skillClarificationCheck:
		return plan.TaskSpec{Kind: plan.TaskClarificationCheck, SkillID: step.ToolID}
	case skillContextAnalysis:
		return plan.TaskSpec{Kind: plan.TaskContextAnalysis, SkillID: step.ToolID}
	case skillAssembleDocument:
		return plan.TaskSpec{Kind: plan.TaskAssembleDocument, SkillID: step.ToolID}
	}

	if strings.HasPrefix(step.ToolID, writeSectionPrefix) {
		section := ""
		if known {
			section = tool.Metadata.Section
		}
		if section == "" {
			section = strings.TrimPrefix(step.ToolID, writeSectionPrefix)
		}
		return plan.TaskSpec{Kind: plan.TaskWriteSection, SkillID: step.ToolID, Section: section}
	}

	return plan.TaskSpec{
		Kind:      plan.TaskGeneric,
		SkillID:   step.ToolID,
		Namespace: namespaceOf(step.ToolID),
	}
}

// namespaceOf returns the leading namespace segment of a tool id.
func namespaceOf(toolID string) string {
	if i := strings.IndexByte(toolID, '.'); i > 0 {
		return toolID[:i]
	}
	return toolID
}

// mergeWarnings appends resolver-computed warnings after model-supplied
// ones, without deduplication.
func mergeWarnings(fromModel, computed []string) []string {
	if len(fromModel) == 0 && len(computed) == 0 {
		return nil
	}
	merged := make([]string, 0, len(fromModel)+len(computed))
	merged = append(merged, fromModel...)
	merged = append(merged, computed...)
	return merged
}
