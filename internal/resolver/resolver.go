// Package resolver converts untrusted model output into a validated,
// executable plan graph. Resolution is three sequential duties over one
// opaque text blob: parse into a provisional plan, statically validate it,
// and translate a valid plan into a graph plus display proposals. Nothing
// here performs I/O.
package resolver

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vinayprograms/agentkit/logging"
	"github.com/vinayprograms/planner/internal/plan"
)

// Resolver runs the parse → validate → translate pipeline.
type Resolver struct {
	logger *logging.Logger
}

// New creates a resolver.
func New() *Resolver {
	return &Resolver{
		logger: logging.New().WithComponent("resolver"),
	}
}

// rawPlanWire mirrors the output schema with pointer fields so missing
// required keys are distinguishable from zero values.
type rawPlanWire struct {
	TargetArtifact   *string         `json:"targetArtifact"`
	OverallRationale *string         `json:"overallRationale"`
	Confidence       *float64        `json:"confidence"`
	Warnings         []string        `json:"warnings"`
	Clarifications   []string        `json:"clarifications"`
	Steps            json.RawMessage `json:"steps"`
}

type rawStepWire struct {
	ID             *string  `json:"id"`
	ToolID         *string  `json:"toolId"`
	ToolType       *string  `json:"toolType"`
	Label          *string  `json:"label"`
	Rationale      *string  `json:"rationale"`
	DependsOn      []string `json:"dependsOn"`
	OutputArtifact string   `json:"outputArtifact"`
}

// Parse deserializes raw model text into a provisional plan. The text may be
// wrapped in a single fenced code block (labeled json or unlabeled); the
// fence is stripped before deserialization. A step with no dependsOn is
// normalized to an empty list rather than rejected. Any missing required
// field fails with a MalformedOutputError.
func (r *Resolver) Parse(raw string) (*plan.RawPlanOutput, error) {
	text := stripFence(strings.TrimSpace(raw))

	var wire rawPlanWire
	if err := json.Unmarshal([]byte(text), &wire); err != nil {
		// Models sometimes surround the object with prose. One balanced-brace
		// extraction attempt before giving up.
		extracted := extractJSON(text)
		if extracted == "" {
			return nil, &MalformedOutputError{Reason: "response is not a JSON object", Cause: err}
		}
		if err := json.Unmarshal([]byte(extracted), &wire); err != nil {
			return nil, &MalformedOutputError{Reason: "response is not a JSON object", Cause: err}
		}
	}

	if wire.TargetArtifact == nil {
		return nil, &MalformedOutputError{Reason: "missing required field targetArtifact"}
	}
	if wire.OverallRationale == nil {
		return nil, &MalformedOutputError{Reason: "missing required field overallRationale"}
	}
	if wire.Confidence == nil {
		return nil, &MalformedOutputError{Reason: "missing numeric field confidence"}
	}
	if len(wire.Steps) == 0 {
		return nil, &MalformedOutputError{Reason: "missing field steps"}
	}

	var stepWires []rawStepWire
	if err := json.Unmarshal(wire.Steps, &stepWires); err != nil {
		return nil, &MalformedOutputError{Reason: "steps is not a list", Cause: err}
	}

	steps := make([]plan.RawStep, 0, len(stepWires))
	for i, sw := range stepWires {
		if err := requireStepFields(i, sw); err != nil {
			return nil, err
		}
		deps := sw.DependsOn
		if deps == nil {
			deps = []string{}
		}
		steps = append(steps, plan.RawStep{
			ID:             *sw.ID,
			ToolID:         *sw.ToolID,
			ToolType:       *sw.ToolType,
			Label:          *sw.Label,
			Rationale:      *sw.Rationale,
			DependsOn:      deps,
			OutputArtifact: sw.OutputArtifact,
		})
	}

	out := &plan.RawPlanOutput{
		TargetArtifact:   *wire.TargetArtifact,
		OverallRationale: *wire.OverallRationale,
		Confidence:       *wire.Confidence,
		Warnings:         wire.Warnings,
		Clarifications:   wire.Clarifications,
		Steps:            steps,
	}

	r.logger.Debug("parsed provisional plan", map[string]interface{}{
		"target":     out.TargetArtifact,
		"steps":      len(out.Steps),
		"confidence": out.Confidence,
	})
	return out, nil
}

// requireStepFields checks the per-step required fields.
func requireStepFields(index int, sw rawStepWire) error {
	missing := ""
	switch {
	case sw.ID == nil:
		missing = "id"
	case sw.ToolID == nil:
		missing = "toolId"
	case sw.ToolType == nil:
		missing = "toolType"
	case sw.Label == nil:
		missing = "label"
	case sw.Rationale == nil:
		missing = "rationale"
	}
	if missing != "" {
		return &MalformedOutputError{
			Reason: fmt.Sprintf("step %d missing required field %s", index, missing),
		}
	}
	return nil
}

// stripFence removes a single fenced code block wrapping the whole text.
// Labels on the opening fence (```json) are discarded with the fence line.
func stripFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	rest := text[3:]
	nl := strings.IndexByte(rest, '\n')
	if nl == -1 {
		return text
	}
	body := rest[nl+1:]
	end := strings.LastIndex(body, "```")
	if end == -1 {
		return text
	}
	return strings.TrimSpace(body[:end])
}

// extractJSON pulls the first balanced JSON object out of surrounding text.
func extractJSON(content string) string {
	start := strings.Index(content, "{")
	if start == -1 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(content); i++ {
		c := content[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return content[start : i+1]
			}
		}
	}
	return ""
}
