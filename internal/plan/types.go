// Package plan defines the planning data model: tool descriptors, raw
// model-authored plans, and the validated executable graph handed to the
// execution engine.
package plan

import "time"

// GraphVersion is the schema version tag stamped on every produced graph.
// A breaking change to the node or task shape must bump this; the external
// executor branches on it.
const GraphVersion = "4.0.0"

// ToolKind distinguishes atomic skills from composite subagents.
type ToolKind string

const (
	ToolKindSkill    ToolKind = "skill"
	ToolKindSubagent ToolKind = "subagent"
)

// ToolDescriptor is an immutable capability record exposed by the catalog.
// InputArtifacts lists the artifact kinds the tool can consume; empty means
// the tool can start from raw request text. OutputArtifact is the single
// artifact kind it produces.
type ToolDescriptor struct {
	ID             string
	Kind           ToolKind
	Label          string
	Description    string
	InputArtifacts []string
	OutputArtifact string
	Capabilities   []string
	Metadata       ToolMetadata
}

// ToolMetadata is the closed set of optional descriptor fields consumers
// read. Section names the document section a write-section skill targets.
type ToolMetadata struct {
	Section string
	Version string
}

// RawStep is one untrusted, model-authored step. It exists only transiently
// during resolution; nothing downstream of the resolver ever sees one.
type RawStep struct {
	ID             string   `json:"id"`
	ToolID         string   `json:"toolId"`
	ToolType       string   `json:"toolType"`
	Label          string   `json:"label"`
	Rationale      string   `json:"rationale"`
	DependsOn      []string `json:"dependsOn"`
	OutputArtifact string   `json:"outputArtifact,omitempty"`
}

// RawPlanOutput is the untrusted envelope parsed from model text. Once past
// parsing, every required field is present and every DependsOn list is
// non-nil.
type RawPlanOutput struct {
	TargetArtifact   string    `json:"targetArtifact"`
	OverallRationale string    `json:"overallRationale"`
	Confidence       float64   `json:"confidence"`
	Warnings         []string  `json:"warnings,omitempty"`
	Clarifications   []string  `json:"clarifications,omitempty"`
	Steps            []RawStep `json:"steps"`
}

// TaskKind tags the closed set of task variants a node can carry.
type TaskKind string

const (
	TaskSubagent           TaskKind = "subagent"
	TaskClarificationCheck TaskKind = "clarification-check"
	TaskContextAnalysis    TaskKind = "context-analysis"
	TaskAssembleDocument   TaskKind = "assemble-document"
	TaskWriteSection       TaskKind = "write-section"
	TaskGeneric            TaskKind = "generic"
)

// TaskSpec is the tagged task variant on a node. Exactly the fields relevant
// to Kind are set: AgentID for subagent tasks, Section for write-section
// tasks, SkillID for skill-backed tasks, Namespace for generic tasks.
type TaskSpec struct {
	Kind      TaskKind `json:"kind"`
	AgentID   string   `json:"agentId,omitempty"`
	SkillID   string   `json:"skillId,omitempty"`
	Section   string   `json:"section,omitempty"`
	Namespace string   `json:"namespace,omitempty"`
}

// NodeStatus is the execution state of a node. The resolver always emits
// pending; status is owned and mutated by the external executor thereafter.
type NodeStatus string

const (
	StatusPending  NodeStatus = "pending"
	StatusRunning  NodeStatus = "running"
	StatusComplete NodeStatus = "complete"
	StatusFailed   NodeStatus = "failed"
)

// NodeMetadata is the closed set of per-node annotations carried for the
// executor and for display.
type NodeMetadata struct {
	Rationale    string   `json:"rationale"`
	ToolID       string   `json:"toolId"`
	ToolKind     ToolKind `json:"toolKind"`
	ArtifactKind string   `json:"artifactKind,omitempty"`
}

// PlanNode is one trusted step of a validated graph.
type PlanNode struct {
	ID        string       `json:"id"`
	Label     string       `json:"label"`
	Task      TaskSpec     `json:"task"`
	Status    NodeStatus   `json:"status"`
	DependsOn []string     `json:"dependsOn"`
	Metadata  NodeMetadata `json:"metadata"`
}

// GraphMetadata carries plan-level annotations: provenance of the producer,
// the model's confidence and rationale, and any warnings or clarification
// questions surfaced alongside the plan.
type GraphMetadata struct {
	Provenance     string   `json:"provenance"`
	Confidence     float64  `json:"confidence"`
	Rationale      string   `json:"rationale"`
	Warnings       []string `json:"warnings,omitempty"`
	Clarifications []string `json:"clarifications,omitempty"`
}

// PlanGraph is the trusted, executable artifact. Every id referenced by a
// node's DependsOn exists in Nodes, and the subgraph reachable from EntryID
// is acyclic. Nodes is empty only for an explicitly empty plan carrying
// clarifications.
type PlanGraph struct {
	ID           string              `json:"id"`
	ArtifactKind string              `json:"artifactKind"`
	EntryID      string              `json:"entryId"`
	CreatedAt    time.Time           `json:"createdAt"`
	Version      string              `json:"version"`
	Nodes        map[string]PlanNode `json:"nodes"`
	Metadata     GraphMetadata       `json:"metadata"`
}

// PlanStepProposal is the human-readable mirror of a node, produced for
// approval workflows. Derived from the raw plan by straight projection,
// never authoritative.
type PlanStepProposal struct {
	ID             string   `json:"id"`
	ToolID         string   `json:"toolId"`
	ToolType       string   `json:"toolType"`
	Label          string   `json:"label"`
	Rationale      string   `json:"rationale"`
	DependsOn      []string `json:"dependsOn"`
	OutputArtifact string   `json:"outputArtifact,omitempty"`
}
